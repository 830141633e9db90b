// Package metrics exposes Prometheus counters for config storage and admin
// activity. Labels stay low-cardinality: backend kind, entity kind, action,
// result.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK       = "ok"
	ResultMissing  = "missing"
	ResultFallback = "fallback"
	ResultError    = "error"
	ResultRejected = "rejected"
)

var (
	// ConfigLoadsTotal counts config reads by backend and outcome
	// (ok, missing, fallback).
	ConfigLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_config_loads_total",
		Help: "Site config reads, by backend and result.",
	}, []string{"backend", "result"})

	// ConfigSavesTotal counts config writes by backend and outcome.
	ConfigSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_config_saves_total",
		Help: "Site config writes, by backend and result.",
	}, []string{"backend", "result"})

	// ConfigMigrationsTotal counts documents upgraded from an older schema.
	ConfigMigrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_config_migrations_total",
		Help: "Site config documents migrated on read or write, by backend.",
	}, []string{"backend"})

	// AdminActionsTotal counts entity mutations.
	AdminActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_admin_actions_total",
		Help: "Admin entity mutations, by entity kind, action and result.",
	}, []string{"kind", "action", "result"})

	// UploadsTotal counts media uploads by storage provider.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_uploads_total",
		Help: "Media uploads, by provider and result.",
	}, []string{"provider", "result"})
)
