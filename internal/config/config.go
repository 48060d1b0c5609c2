// Package config loads golink preferences: built-in defaults, then the
// TOML settings file, then GOLINK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultSettingsPath = "~/.config/golink/settings.toml"
	defaultLinksPath    = "~/.config/golink/links.yaml"
)

type Config struct {
	ConfigPath string // links file, "~" expanded; .yaml/.yml => YAML, else JSON

	LogLevel  string // "debug" | "info" | "warn" | "error"; empty => per-command default
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ListenAddr      string        // ex: "127.0.0.1:8080"
	ShutdownTimeout time.Duration // ex: 5s

	Debounce    time.Duration // quiet period before reloading after a change
	RenameDelay time.Duration // wait after a rename before reloading and re-watching

	// Redis (optional, empty address => usage tracking disabled)
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisConnectTimeout time.Duration
	UsageSyncInterval   time.Duration
	UsageGCInterval     time.Duration // how often stale counters are pruned by serve
	UsageRetention      time.Duration // counters of removed links are kept this long

	RateLimitBurst  int // requests allowed at once per client IP, 0 => disabled
	RateLimitPerMin int // sustained requests per minute per client IP

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

// fileConfig mirrors the TOML layout. Pointers distinguish unset keys.
type fileConfig struct {
	ConfigPath          *string  `toml:"config_path"`
	LogLevel            *string  `toml:"log_level"`
	PrettyLog           *bool    `toml:"pretty_log"`
	ListenAddr          *string  `toml:"listen_addr"`
	ShutdownTimeout     *string  `toml:"shutdown_timeout"`
	Debounce            *string  `toml:"debounce"`
	RenameDelay         *string  `toml:"rename_delay"`
	RedisAddr           *string  `toml:"redis_addr"`
	RedisPassword       *string  `toml:"redis_password"`
	RedisDB             *int     `toml:"redis_db"`
	RedisConnectTimeout *string  `toml:"redis_connect_timeout"`
	UsageSyncInterval   *string  `toml:"usage_sync_interval"`
	UsageGCInterval     *string  `toml:"usage_gc_interval"`
	UsageRetention      *string  `toml:"usage_retention"`
	RateLimitBurst      *int     `toml:"rate_limit_burst"`
	RateLimitPerMin     *int     `toml:"rate_limit_per_min"`
	AllowedHosts        []string `toml:"allowed_hosts"`
	AllowedCIDRS        []string `toml:"allowed_cidrs"`
	TrustProxy          *bool    `toml:"trust_proxy"`
}

// Default returns the built-in preferences.
func Default() Config {
	return Config{
		ConfigPath:          defaultLinksPath,
		PrettyLog:           true,
		ListenAddr:          "127.0.0.1:8080",
		ShutdownTimeout:     5 * time.Second,
		Debounce:            300 * time.Millisecond,
		RenameDelay:         500 * time.Millisecond,
		RedisConnectTimeout: 2 * time.Second,
		UsageSyncInterval:   time.Minute,
		UsageGCInterval:     24 * time.Hour,
		UsageRetention:      30 * 24 * time.Hour,
		RateLimitBurst:      30,
		RateLimitPerMin:     120,
	}
}

// DefaultSettingsPath returns the expanded location of the settings file.
func DefaultSettingsPath() (string, error) {
	return ExpandPath(defaultSettingsPath)
}

// Load reads preferences from path (or the default location when empty).
// A missing file is not an error. It returns the resolved settings path
// and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	if path == "" {
		path = getenv("GOLINK_SETTINGS", defaultSettingsPath)
	}
	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, "", false, err
	}

	exists := true
	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, "", false, fmt.Errorf("failed to read settings: %w", err)
	default:
		if err := cfg.applyTOML(data); err != nil {
			return nil, "", false, err
		}
	}

	cfg.applyEnv()

	if cfg.ConfigPath, err = ExpandPath(cfg.ConfigPath); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolved, exists, nil
}

func (c *Config) applyTOML(data []byte) error {
	var f fileConfig
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}

	setString(&c.ConfigPath, f.ConfigPath)
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.ListenAddr, f.ListenAddr)
	setString(&c.RedisAddr, f.RedisAddr)
	setString(&c.RedisPassword, f.RedisPassword)
	if f.PrettyLog != nil {
		c.PrettyLog = *f.PrettyLog
	}
	if f.TrustProxy != nil {
		c.TrustProxy = *f.TrustProxy
	}
	if f.RedisDB != nil {
		c.RedisDB = *f.RedisDB
	}
	if f.RateLimitBurst != nil {
		c.RateLimitBurst = *f.RateLimitBurst
	}
	if f.RateLimitPerMin != nil {
		c.RateLimitPerMin = *f.RateLimitPerMin
	}
	if f.AllowedHosts != nil {
		c.AllowedHosts = f.AllowedHosts
	}
	if f.AllowedCIDRS != nil {
		c.AllowedCIDRS = f.AllowedCIDRS
	}

	durations := []struct {
		key string
		src *string
		dst *time.Duration
	}{
		{"shutdown_timeout", f.ShutdownTimeout, &c.ShutdownTimeout},
		{"debounce", f.Debounce, &c.Debounce},
		{"rename_delay", f.RenameDelay, &c.RenameDelay},
		{"redis_connect_timeout", f.RedisConnectTimeout, &c.RedisConnectTimeout},
		{"usage_sync_interval", f.UsageSyncInterval, &c.UsageSyncInterval},
		{"usage_gc_interval", f.UsageGCInterval, &c.UsageGCInterval},
		{"usage_retention", f.UsageRetention, &c.UsageRetention},
	}
	for _, d := range durations {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.key, *d.src, err)
		}
		*d.dst = v
	}

	return nil
}

func (c *Config) applyEnv() {
	c.ConfigPath = getenv("GOLINK_CONFIG_PATH", c.ConfigPath)
	c.LogLevel = getenv("GOLINK_LOG_LEVEL", c.LogLevel)
	c.PrettyLog = mustBool("GOLINK_PRETTY_LOG", c.PrettyLog)

	c.ListenAddr = getenv("GOLINK_LISTEN_ADDR", c.ListenAddr)
	c.ShutdownTimeout = mustDuration("GOLINK_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)

	c.Debounce = mustDuration("GOLINK_DEBOUNCE", c.Debounce)
	c.RenameDelay = mustDuration("GOLINK_RENAME_DELAY", c.RenameDelay)

	c.RedisAddr = getenv("GOLINK_REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getenv("GOLINK_REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getenvInt("GOLINK_REDIS_DB", c.RedisDB)
	c.RedisConnectTimeout = mustDuration("GOLINK_REDIS_CONNECT_TIMEOUT", c.RedisConnectTimeout)
	c.UsageSyncInterval = mustDuration("GOLINK_USAGE_SYNC_INTERVAL", c.UsageSyncInterval)
	c.UsageGCInterval = mustDuration("GOLINK_USAGE_GC_INTERVAL", c.UsageGCInterval)
	c.UsageRetention = mustDuration("GOLINK_USAGE_RETENTION", c.UsageRetention)

	c.RateLimitBurst = getenvInt("GOLINK_RATE_LIMIT_BURST", c.RateLimitBurst)
	c.RateLimitPerMin = getenvInt("GOLINK_RATE_LIMIT_PER_MIN", c.RateLimitPerMin)

	if v := os.Getenv("GOLINK_ALLOWED_HOSTS"); v != "" {
		c.AllowedHosts = splitAndTrim(v)
	}
	if v := os.Getenv("GOLINK_ALLOWED_CIDRS"); v != "" {
		c.AllowedCIDRS = splitAndTrim(v)
	}
	c.TrustProxy = mustBool("GOLINK_TRUST_PROXY", c.TrustProxy)
}

// Validate rejects values that cannot work.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", c.LogLevel)
	}

	if c.ConfigPath == "" {
		return fmt.Errorf("config_path is empty")
	}

	for name, d := range map[string]time.Duration{
		"shutdown_timeout":      c.ShutdownTimeout,
		"debounce":              c.Debounce,
		"rename_delay":          c.RenameDelay,
		"redis_connect_timeout": c.RedisConnectTimeout,
		"usage_sync_interval":   c.UsageSyncInterval,
		"usage_gc_interval":     c.UsageGCInterval,
		"usage_retention":       c.UsageRetention,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be > 0, got %v", name, d)
		}
	}

	if c.RedisDB < 0 {
		return fmt.Errorf("redis_db must be >= 0, got %d", c.RedisDB)
	}
	if c.RateLimitBurst < 0 || c.RateLimitPerMin < 0 {
		return fmt.Errorf("rate limits must be >= 0")
	}

	for _, s := range c.AllowedCIDRS {
		if _, err := netip.ParsePrefix(s); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(s); err != nil {
			return fmt.Errorf("invalid allowed_cidrs entry %q", s)
		}
	}

	return nil
}

// UsageEnabled reports whether a Redis server is configured.
func (c *Config) UsageEnabled() bool {
	return c.RedisAddr != ""
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.RedisPassword != "" {
		c.RedisPassword = "***REDACTED***"
	}
	return c
}

// Encode renders c in the settings file format.
func (c Config) Encode() ([]byte, error) {
	f := fileConfig{
		ConfigPath:          &c.ConfigPath,
		LogLevel:            &c.LogLevel,
		PrettyLog:           &c.PrettyLog,
		ListenAddr:          &c.ListenAddr,
		ShutdownTimeout:     durationString(c.ShutdownTimeout),
		Debounce:            durationString(c.Debounce),
		RenameDelay:         durationString(c.RenameDelay),
		RedisAddr:           &c.RedisAddr,
		RedisPassword:       &c.RedisPassword,
		RedisDB:             &c.RedisDB,
		RedisConnectTimeout: durationString(c.RedisConnectTimeout),
		UsageSyncInterval:   durationString(c.UsageSyncInterval),
		UsageGCInterval:     durationString(c.UsageGCInterval),
		UsageRetention:      durationString(c.UsageRetention),
		RateLimitBurst:      &c.RateLimitBurst,
		RateLimitPerMin:     &c.RateLimitPerMin,
		AllowedHosts:        c.AllowedHosts,
		AllowedCIDRS:        c.AllowedCIDRS,
		TrustProxy:          &c.TrustProxy,
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return data, nil
}

// ExpandPath expands a leading "~" to the home directory and makes the
// path absolute.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// helpers
func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func durationString(d time.Duration) *string {
	s := d.String()
	return &s
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
