package config

import (
	"errors"
	"fmt"
	"net/url"
)

// maxPageSize bounds the page size the backend is asked for.
const maxPageSize = 500

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.API.validate(),
		c.Telemetry.validate(),
		c.Console.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (a *APIConfig) validate() error {
	var errs []error

	if a.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url must not be empty"))
	} else if u, err := url.Parse(a.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute URL, got %q", a.BaseURL))
	}
	if a.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if a.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("api.circuit_breaker.max_failures must be >= 1, got %d",
			a.CircuitBreaker.MaxFailures))
	}
	if a.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit.requests_per_second must not be negative, got %f",
			a.RateLimit.RequestsPerSecond))
	}
	if a.RateLimit.RequestsPerSecond > 0 && a.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("api.rate_limit.burst_size must be >= 1 when rate limiting is enabled, got %d",
			a.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (c *ConsoleConfig) validate() error {
	var errs []error

	if c.PageSize < 1 || c.PageSize > maxPageSize {
		errs = append(errs, fmt.Errorf("console.page_size must be between 1 and %d, got %d", maxPageSize, c.PageSize))
	}
	if c.SearchDebounce < 0 {
		errs = append(errs, errors.New("console.search_debounce must not be negative"))
	}
	if c.ProfileCacheSize < 1 {
		errs = append(errs, fmt.Errorf("console.profile_cache_size must be >= 1, got %d", c.ProfileCacheSize))
	}
	if c.DraftAutosaveDelay < 0 {
		errs = append(errs, errors.New("console.draft_autosave_delay must not be negative"))
	}
	if c.DraftDSN == "" {
		errs = append(errs, errors.New("console.draft_dsn must not be empty"))
	}

	return errors.Join(errs...)
}
