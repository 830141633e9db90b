package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type SupabaseConfig struct {
	URL      string // project URL, e.g. https://xyz.supabase.co
	Key      string // service role or anon key
	Table    string
	RecordID int
	Timeout  time.Duration
}

// Supabase talks to the PostgREST endpoint of a Supabase project. The table
// needs an integer primary key "id" and a jsonb column "data".
type Supabase struct {
	client *resty.Client
	table  string
	id     int
}

func NewSupabase(cfg SupabaseConfig) *Supabase {
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
		SetBaseURL(strings.TrimRight(cfg.URL, "/")+"/rest/v1").
		SetTimeout(cfg.Timeout).
		SetHeader("apikey", cfg.Key).
		SetAuthToken(cfg.Key).
		SetHeader("Accept", "application/json")

	return &Supabase{client: client, table: cfg.Table, id: cfg.RecordID}
}

func (s *Supabase) Name() string { return KindSupabase }

type supabaseRow struct {
	ID   int             `json:"id"`
	Data json.RawMessage `json:"data"`
}

func (s *Supabase) Read(ctx context.Context) ([]byte, error) {
	var rows []supabaseRow
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"id":     "eq." + strconv.Itoa(s.id),
			"select": "data",
		}).
		SetResult(&rows).
		Get("/" + s.table)
	if err != nil {
		return nil, fmt.Errorf("supabase select: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("supabase select: %s: %s", resp.Status(), resp.String())
	}

	if len(rows) == 0 || isJSONNull(rows[0].Data) {
		return nil, ErrNotFound
	}
	return rows[0].Data, nil
}

func (s *Supabase) Write(ctx context.Context, doc []byte) error {
	body := []supabaseRow{{ID: s.id, Data: json.RawMessage(doc)}}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetQueryParam("on_conflict", "id").
		SetBody(body).
		Post("/" + s.table)
	if err != nil {
		return fmt.Errorf("supabase upsert: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("supabase upsert: %s: %s", resp.Status(), resp.String())
	}
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
