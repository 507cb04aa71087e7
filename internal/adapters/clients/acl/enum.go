package acl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pythia-plus/console/internal/platform/logging"
)

// NormalizeEnum upper-cases raw and folds spaces and dashes to underscores,
// so "in progress", "In-Progress" and "IN_PROGRESS" compare equal.
func NormalizeEnum(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// ParseEnum looks raw up in table after NormalizeEnum. Missing or unknown
// values fall back to def with a warning; it never fails.
func ParseEnum[E ~string](ctx context.Context, logger *slog.Logger, kind, raw string, table map[string]E, def E) E {
	if v, ok := table[NormalizeEnum(raw)]; ok {
		return v
	}

	reason := "unrecognized"
	if strings.TrimSpace(raw) == "" {
		reason = "missing"
	}
	logging.OrDiscard(logger).WarnContext(ctx, "enum value defaulted",
		slog.String("enum", kind),
		slog.String("reason", reason),
		slog.String("value", raw),
		slog.String("default", string(def)),
	)
	return def
}
