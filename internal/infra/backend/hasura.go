package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type HasuraConfig struct {
	Endpoint    string // full GraphQL URL, e.g. https://xyz.nhost.run/v1/graphql
	AdminSecret string
	Table       string
	RecordID    int
	Timeout     time.Duration
}

// Hasura reads and upserts the document through a Hasura (or Nhost) GraphQL
// endpoint. The tracked table needs "id" (int, primary key) and "data" (jsonb).
type Hasura struct {
	client   *resty.Client
	endpoint string
	table    string
	id       int
}

func NewHasura(cfg HasuraConfig) *Hasura {
	if cfg.Table == "" {
		cfg.Table = "site_config"
	}
	if cfg.RecordID == 0 {
		cfg.RecordID = 1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-hasura-admin-secret", cfg.AdminSecret)

	return &Hasura{client: client, endpoint: cfg.Endpoint, table: cfg.Table, id: cfg.RecordID}
}

func (h *Hasura) Name() string { return KindHasura }

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (h *Hasura) Read(ctx context.Context) ([]byte, error) {
	field := h.table + "_by_pk"
	query := fmt.Sprintf(`query SiteConfig($id: Int!) { %s(id: $id) { data } }`, field)

	data, err := h.do(ctx, query, map[string]any{"id": h.id})
	if err != nil {
		return nil, err
	}

	raw, ok := data[field]
	if !ok || isJSONNull(raw) {
		return nil, ErrNotFound
	}
	var row struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("hasura decode %s: %w", field, err)
	}
	if isJSONNull(row.Data) {
		return nil, ErrNotFound
	}
	return row.Data, nil
}

func (h *Hasura) Write(ctx context.Context, doc []byte) error {
	mutation := fmt.Sprintf(
		`mutation UpsertSiteConfig($id: Int!, $data: jsonb!) { insert_%[1]s_one(object: {id: $id, data: $data}, on_conflict: {constraint: %[1]s_pkey, update_columns: [data]}) { id } }`,
		h.table,
	)
	_, err := h.do(ctx, mutation, map[string]any{"id": h.id, "data": json.RawMessage(doc)})
	return err
}

func (h *Hasura) do(ctx context.Context, query string, vars map[string]any) (map[string]json.RawMessage, error) {
	var out graphQLResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(graphQLRequest{Query: query, Variables: vars}).
		SetResult(&out).
		SetError(&out).
		Post(h.endpoint)
	if err != nil {
		return nil, fmt.Errorf("hasura request: %w", err)
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, errors.New("hasura: " + strings.Join(msgs, "; "))
	}
	if resp.IsError() {
		return nil, fmt.Errorf("hasura: %s: %s", resp.Status(), resp.String())
	}
	return out.Data, nil
}
