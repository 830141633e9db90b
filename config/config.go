package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"storefront-cms/internal/infra/backend"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string
	LogLevel    string
	LogPretty   bool

	JWTSecret         string
	AdminPasswordHash string
	AdminPassword     string // hashed at startup when no hash is given

	Backend       string // one of backend.Kind*
	ConfigFile    string
	DBDriver      string // postgres or sqlite
	DBURL         string
	ConfigRowID   uint
	RemoteTimeout time.Duration

	Redis    RedisConfig
	Supabase SupabaseConfig
	Hasura   HasuraConfig

	UploadDir        string
	UploadBaseURL    string
	CloudinaryURL    string
	CloudinaryFolder string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

type SupabaseConfig struct {
	URL   string
	Key   string
	Table string
}

type HasuraConfig struct {
	URL         string
	AdminSecret string
	Table       string
}

// LoadEnv loads a .env file into the process environment. It reports whether
// one was found; a missing file is not an error.
func LoadEnv(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

// Load reads the configuration from the environment. Every missing or
// malformed variable is reported in the returned error.
func Load() (*Config, error) {
	var errs []error
	rowID := getInt("CONFIG_ROW_ID", 1, &errs)

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		CORSOrigins: splitList(getEnv("CORS_ORIGIN", "http://localhost:3000")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPretty:   getBool("LOG_PRETTY", false, &errs),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),

		Backend:       backend.NormalizeKind(os.Getenv("CONFIG_BACKEND")),
		ConfigFile:    getEnv("CONFIG_FILE", "data/site-config.json"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBURL:         os.Getenv("DB_URL"),
		RemoteTimeout: getDuration("REMOTE_TIMEOUT", 10*time.Second, &errs),

		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0, &errs),
			Key:      getEnv("REDIS_KEY", backend.DefaultRedisKey),
		},
		Supabase: SupabaseConfig{
			URL:   os.Getenv("SUPABASE_URL"),
			Key:   os.Getenv("SUPABASE_KEY"),
			Table: getEnv("SUPABASE_TABLE", "site_config"),
		},
		Hasura: HasuraConfig{
			URL:         os.Getenv("HASURA_GRAPHQL_URL"),
			AdminSecret: os.Getenv("HASURA_ADMIN_SECRET"),
			Table:       getEnv("HASURA_TABLE", "site_config"),
		},

		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		UploadBaseURL:    getEnv("UPLOAD_BASE_URL", "/uploads"),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "storefront"),
	}

	if rowID > 0 {
		cfg.ConfigRowID = uint(rowID)
	}

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func (c *Config) validate() []error {
	var errs []error
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("missing required environment variable: %s", key))
		}
	}

	require("JWT_SECRET", c.JWTSecret)
	if c.AdminPasswordHash == "" && c.AdminPassword == "" {
		errs = append(errs, errors.New("missing required environment variable: ADMIN_PASSWORD_HASH or ADMIN_PASSWORD"))
	}
	if c.ConfigRowID == 0 {
		errs = append(errs, errors.New("CONFIG_ROW_ID must be positive"))
	}

	switch c.Backend {
	case backend.KindMemory:
	case backend.KindFile:
		require("CONFIG_FILE", c.ConfigFile)
	case backend.KindSQL:
		require("DB_URL", c.DBURL)
		if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
			errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver))
		}
	case backend.KindRedis:
		require("REDIS_ADDR", c.Redis.Addr)
	case backend.KindSupabase:
		require("SUPABASE_URL", c.Supabase.URL)
		require("SUPABASE_KEY", c.Supabase.Key)
	case backend.KindHasura:
		require("HASURA_GRAPHQL_URL", c.Hasura.URL)
		require("HASURA_ADMIN_SECRET", c.Hasura.AdminSecret)
	default:
		errs = append(errs, fmt.Errorf("unknown CONFIG_BACKEND %q", c.Backend))
	}
	return errs
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be an integer, got %q", key, raw))
		return fallback
	}
	return v
}

func getBool(key string, fallback bool, errs *[]error) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a boolean, got %q", key, raw))
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a duration, got %q", key, raw))
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
