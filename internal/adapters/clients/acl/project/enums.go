package project

import (
	"context"
	"log/slog"

	"github.com/pythia-plus/console/internal/adapters/clients/acl"
	dp "github.com/pythia-plus/console/internal/domain/project"
)

// Backend spellings, keyed by their normalized form.
var (
	complexityTable = map[string]dp.Complexity{
		"SIMPLE":       dp.ComplexitySimple,
		"LOW":          dp.ComplexitySimple,
		"MODERATE":     dp.ComplexityModerate,
		"MEDIUM":       dp.ComplexityModerate,
		"COMPLEX":      dp.ComplexityComplex,
		"HIGH":         dp.ComplexityComplex,
		"VERY_COMPLEX": dp.ComplexityVeryComplex,
		"VERY_HIGH":    dp.ComplexityVeryComplex,
	}

	statusTable = map[string]dp.Status{
		"PLANNING":    dp.StatusPlanning,
		"PLANNED":     dp.StatusPlanning,
		"ACTIVE":      dp.StatusActive,
		"IN_PROGRESS": dp.StatusActive,
		"ON_HOLD":     dp.StatusOnHold,
		"PAUSED":      dp.StatusOnHold,
		"COMPLETED":   dp.StatusCompleted,
		"DONE":        dp.StatusCompleted,
		"CANCELLED":   dp.StatusCancelled,
		"CANCELED":    dp.StatusCancelled,
	}

	priorityTable = map[string]dp.Priority{
		"LOW":      dp.PriorityLow,
		"MEDIUM":   dp.PriorityMedium,
		"NORMAL":   dp.PriorityMedium,
		"HIGH":     dp.PriorityHigh,
		"CRITICAL": dp.PriorityCritical,
		"URGENT":   dp.PriorityCritical,
	}
)

// ParseComplexity maps a backend complexity, defaulting to MODERATE.
func ParseComplexity(ctx context.Context, raw string, logger *slog.Logger) dp.Complexity {
	return acl.ParseEnum(ctx, logger, "project.complexity", raw, complexityTable, dp.DefaultComplexity)
}

// ParseStatus maps a backend status, defaulting to PLANNING.
func ParseStatus(ctx context.Context, raw string, logger *slog.Logger) dp.Status {
	return acl.ParseEnum(ctx, logger, "project.status", raw, statusTable, dp.DefaultStatus)
}

// ParsePriority maps a backend priority, defaulting to MEDIUM.
func ParsePriority(ctx context.Context, raw string, logger *slog.Logger) dp.Priority {
	return acl.ParseEnum(ctx, logger, "project.priority", raw, priorityTable, dp.DefaultPriority)
}
