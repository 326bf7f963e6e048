package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "strings"

    "github.com/joho/godotenv"
)

type Server struct {
    Port     string `json:"port"`
    LogLevel string `json:"log_level"`
}

// Upstream describes the chart endpoint the function proxies to.
type Upstream struct {
    BaseURL   string `json:"base_url"`
    UserAgent string `json:"user_agent"`
    Range     string `json:"range"`
    Interval  string `json:"interval"`
}

type Config struct {
    Server   Server   `json:"server"`
    Upstream Upstream `json:"upstream"`
}

// Default targets Yahoo's v8 chart endpoint with
// 100 daily candles and a browser User-Agent.
func Default() Config {
    return Config{
        Server: Server{Port: "8080", LogLevel: "info"},
        Upstream: Upstream{
            BaseURL:   "https://query1.finance.yahoo.com/v8/finance/chart",
            UserAgent: "Mozilla/5.0",
            Range:     "100d",
            Interval:  "1d",
        },
    }
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. A .env file in the working directory is loaded first;
// environment variables then override individual fields.
func Load(path string) (Config, error) {
    cfg := Default()
    if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
        return cfg, fmt.Errorf("read .env: %w", err)
    }
    if path == "" {
        path = os.Getenv("CONFIG_FILE")
    }
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    if err := cfg.Validate(); err != nil {
        return cfg, err
    }
    return cfg, nil
}

// Validate rejects settings that would change the shape of the upstream call.
func (c Config) Validate() error {
    if strings.TrimSpace(c.Upstream.BaseURL) == "" {
        return errors.New("upstream.base_url is required")
    }
    if strings.TrimSpace(c.Upstream.Range) == "" {
        return errors.New("upstream.range is required")
    }
    if strings.TrimSpace(c.Upstream.Interval) == "" {
        return errors.New("upstream.interval is required")
    }
    return nil
}

func applyEnv(cfg *Config) {
    if v := getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := getenv("LOG_LEVEL"); v != "" { cfg.Server.LogLevel = strings.ToLower(v) }
    if v := getenv("UPSTREAM_BASE_URL"); v != "" { cfg.Upstream.BaseURL = v }
    if v := getenv("UPSTREAM_USER_AGENT"); v != "" { cfg.Upstream.UserAgent = v }
    if v := getenv("CHART_RANGE"); v != "" { cfg.Upstream.Range = v }
    if v := getenv("CHART_INTERVAL"); v != "" { cfg.Upstream.Interval = v }
}

func getenv(key string) string { return strings.TrimSpace(os.Getenv(key)) }
