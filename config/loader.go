package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the GOCALC_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	// Mode
	if envBool("LISTEN") {
		cfg.Listen = true
	}
	if envBool("SSH") {
		cfg.SSH = true
	}
	if envBool("MCP") {
		cfg.MCP = true
	}

	// Network
	if v := env("HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("PORT"); v > 0 {
		cfg.Port = v
	}
	if envBool("KEEP_OPEN") {
		cfg.KeepOpen = true
	}
	if v := envInt("TIMEOUT"); v > 0 {
		cfg.Timeout = secondsDuration(v)
	}

	// SSH server
	if v := env("HOST_KEY"); v != "" {
		cfg.HostKeyPath = v
	}
	if v := env("AUTHORIZED_KEYS"); v != "" {
		cfg.AuthorizedKeysPath = v
	}
	if v := env("SSH_PASSWORD"); v != "" {
		cfg.SSHPassword = v
	}
	if envBool("SSH_NO_AUTH") {
		cfg.SSHNoAuth = true
	}

	// Calculator
	if strings.EqualFold(env("ANGLE_MODE"), "rad") || strings.EqualFold(env("ANGLE_MODE"), "radians") {
		cfg.Radians = true
	}
	if v, ok := envIntOK("PRECISION"); ok && v >= 0 {
		cfg.Precision = v
	}

	// Output
	if v := envInt("VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if envBool("METRICS") {
		cfg.Metrics = true
	}
	if v := envInt("DEBOUNCE_MS"); v > 0 {
		cfg.Debounce = time.Duration(v) * time.Millisecond
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func env(key string) string {
	return os.Getenv(EnvPrefix + key)
}

func envInt(key string) int {
	n, _ := envIntOK(key)
	return n
}

func envIntOK(key string) (int, bool) {
	v := env(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(key string) bool {
	v := strings.ToLower(env(key))
	return v == "1" || v == "true" || v == "yes"
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
