package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if exists {
		t.Error("Load() exists = true for a missing file")
	}
	if resolved != path {
		t.Errorf("Load() path = %v, want %v", resolved, path)
	}

	def := Default()
	if cfg.ListenAddr != def.ListenAddr {
		t.Errorf("ListenAddr = %v, want %v", cfg.ListenAddr, def.ListenAddr)
	}
	if cfg.Debounce != 300*time.Millisecond || cfg.RenameDelay != 500*time.Millisecond {
		t.Errorf("delays = %v/%v, want 300ms/500ms", cfg.Debounce, cfg.RenameDelay)
	}
	if !filepath.IsAbs(cfg.ConfigPath) || !strings.HasSuffix(cfg.ConfigPath, filepath.Join("golink", "links.yaml")) {
		t.Errorf("ConfigPath = %v, want an expanded default", cfg.ConfigPath)
	}
	if cfg.UsageEnabled() {
		t.Error("UsageEnabled() = true without a redis address")
	}
	if cfg.UsageGCInterval != 24*time.Hour || cfg.UsageRetention != 30*24*time.Hour {
		t.Errorf("usage gc = %v/%v, want 24h/720h", cfg.UsageGCInterval, cfg.UsageRetention)
	}
}

func TestLoad_FileValues(t *testing.T) {
	linksPath := filepath.Join(t.TempDir(), "links.json")
	path := writeSettings(t, `
config_path = "`+filepath.ToSlash(linksPath)+`"
log_level = "debug"
pretty_log = false
listen_addr = ":9090"
debounce = "1s"
rename_delay = "2s"
redis_addr = "localhost:6379"
redis_db = 3
usage_retention = "168h"
allowed_hosts = ["go.local"]
allowed_cidrs = ["10.0.0.0/8", "192.168.1.10"]
trust_proxy = true
`)

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !exists {
		t.Error("Load() exists = false")
	}

	if cfg.ConfigPath != filepath.Clean(linksPath) {
		t.Errorf("ConfigPath = %v, want %v", cfg.ConfigPath, linksPath)
	}
	if cfg.LogLevel != "debug" || cfg.PrettyLog {
		t.Errorf("logging = %q/%v, want debug/false", cfg.LogLevel, cfg.PrettyLog)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %v, want :9090", cfg.ListenAddr)
	}
	if cfg.Debounce != time.Second || cfg.RenameDelay != 2*time.Second {
		t.Errorf("delays = %v/%v, want 1s/2s", cfg.Debounce, cfg.RenameDelay)
	}
	if !cfg.UsageEnabled() || cfg.RedisDB != 3 {
		t.Errorf("redis = %q db %d, want enabled db 3", cfg.RedisAddr, cfg.RedisDB)
	}
	if cfg.UsageRetention != 7*24*time.Hour {
		t.Errorf("UsageRetention = %v, want 168h", cfg.UsageRetention)
	}
	if len(cfg.AllowedHosts) != 1 || len(cfg.AllowedCIDRS) != 2 || !cfg.TrustProxy {
		t.Errorf("access = %v %v %v", cfg.AllowedHosts, cfg.AllowedCIDRS, cfg.TrustProxy)
	}
	// unset keys keep their defaults
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeSettings(t, `
listen_addr = ":9090"
debounce = "1s"
`)
	t.Setenv("GOLINK_LISTEN_ADDR", ":7070")
	t.Setenv("GOLINK_DEBOUNCE", "50ms")
	t.Setenv("GOLINK_USAGE_GC_INTERVAL", "6h")
	t.Setenv("GOLINK_ALLOWED_HOSTS", "a.local, 'b.local'")

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %v, want :7070", cfg.ListenAddr)
	}
	if cfg.Debounce != 50*time.Millisecond {
		t.Errorf("Debounce = %v, want 50ms", cfg.Debounce)
	}
	if cfg.UsageGCInterval != 6*time.Hour {
		t.Errorf("UsageGCInterval = %v, want 6h", cfg.UsageGCInterval)
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[1] != "b.local" {
		t.Errorf("AllowedHosts = %v, want [a.local b.local]", cfg.AllowedHosts)
	}
}

func TestLoad_SettingsPathFromEnv(t *testing.T) {
	path := writeSettings(t, `listen_addr = ":6060"`)
	t.Setenv("GOLINK_SETTINGS", path)

	cfg, resolved, exists, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resolved != path || !exists {
		t.Errorf("Load() = %v, %v; want %v, true", resolved, exists, path)
	}
	if cfg.ListenAddr != ":6060" {
		t.Errorf("ListenAddr = %v, want :6060", cfg.ListenAddr)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid toml", `listen_addr = `, "failed to parse settings"},
		{"bad duration", `debounce = "soon"`, "invalid debounce"},
		{"zero duration", `rename_delay = "0s"`, "rename_delay must be > 0"},
		{"bad log level", `log_level = "loud"`, "invalid log_level"},
		{"bad cidr", `allowed_cidrs = ["nope"]`, "invalid allowed_cidrs entry"},
		{"negative db", `redis_db = -1`, "redis_db must be >= 0"},
		{"negative rate limit", `rate_limit_burst = -5`, "rate limits must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Load(writeSettings(t, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEncode_LoadsBack(t *testing.T) {
	dir := t.TempDir()

	want := Default()
	want.ConfigPath = filepath.Join(dir, "links.json")
	want.LogLevel = "debug"
	want.Debounce = 150 * time.Millisecond
	want.RedisAddr = "localhost:6379"
	want.AllowedCIDRS = []string{"10.0.0.0/8"}
	want.TrustProxy = true

	data, err := want.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), "debounce = '150ms'") && !strings.Contains(string(data), `debounce = "150ms"`) {
		t.Errorf("Encode() = %s, want a debounce duration string", data)
	}

	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	got, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !exists {
		t.Fatal("Load() exists = false")
	}
	if got.ConfigPath != want.ConfigPath || got.LogLevel != want.LogLevel || got.Debounce != want.Debounce {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if got.RedisAddr != want.RedisAddr || !got.TrustProxy || len(got.AllowedCIDRS) != 1 {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde", "~", home},
		{"tilde slash", "~/.config/golink/links.yaml", filepath.Join(home, ".config", "golink", "links.yaml")},
		{"absolute", "/tmp/x/../links.json", filepath.Clean("/tmp/links.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			if err != nil {
				t.Fatalf("ExpandPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.RedisPassword = "hunter2"

	if got := cfg.Redacted().RedisPassword; got == "hunter2" {
		t.Error("Redacted() leaked the redis password")
	}
	if cfg.RedisPassword != "hunter2" {
		t.Error("Redacted() modified the receiver")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{"empty", "", nil},
		{"single value", "value1", []string{"value1"}},
		{"multiple values", "value1, value2, value3", []string{"value1", "value2", "value3"}},
		{"quotes and blanks", `"a", ,'b'`, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.value)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() length = %v, want %v", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_INVALID", "forty")

	if got := getenvInt("TEST_INT", 1); got != 42 {
		t.Errorf("getenvInt() = %v, want 42", got)
	}
	if got := getenvInt("TEST_INT_INVALID", 7); got != 7 {
		t.Errorf("getenvInt() = %v, want 7", got)
	}
	if got := getenvInt("TEST_INT_MISSING", 9); got != 9 {
		t.Errorf("getenvInt() = %v, want 9", got)
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
