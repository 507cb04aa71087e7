package config

const (
	defaultServerPort = 8080

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultPageSize         = 20
	defaultProfileCacheSize = 64
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"api.base_url":                        "http://localhost:8081",
		"api.timeout":                         "30s",
		"api.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"api.circuit_breaker.timeout":         "30s",
		"api.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"api.rate_limit.requests_per_second":  0,
		"api.rate_limit.burst_size":           0,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "pythia-console",

		"console.page_size":            defaultPageSize,
		"console.search_debounce":      "500ms",
		"console.profile_cache_size":   defaultProfileCacheSize,
		"console.draft_autosave_delay": "1s",
		"console.draft_dsn":            "file:drafts.db",
	}
}
