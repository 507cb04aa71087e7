package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/domain/pagination"
	"github.com/pythia-plus/console/internal/platform/logging"
)

// paginationFields are checked in this order; the first failure wins.
var paginationFields = [...]string{"page", "size", "totalElements", "totalPages"}

// ListEnvelope is a list response that passed validation. Items and
// Analytics are still untyped; resource translators decode them.
type ListEnvelope struct {
	Items      []any
	Pagination pagination.Metadata
	Analytics  map[string]any
}

// DecodeListResponse parses data and validates it with ValidateListResponse.
// Numbers are kept exact so fractional page values are caught.
func DecodeListResponse(ctx context.Context, data []byte, collection string, logger *slog.Logger) (*ListEnvelope, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &domain.ContractError{Field: "body", Reason: fmt.Sprintf("is not valid JSON: %v", err)}
	}
	return ValidateListResponse(ctx, raw, collection, logger)
}

// ValidateListResponse checks an untrusted list payload of the shape
//
//	{<collection>: [...], pagination: {page, size, totalElements, totalPages}, analytics?: {...}}
//
// and fails fast with a *domain.ContractError naming the first offending
// field. Every pagination field must be present, a whole number and
// non-negative. A totalPages that disagrees with ceil(totalElements/size)
// is only logged: the backend's figure is kept.
func ValidateListResponse(ctx context.Context, raw any, collection string, logger *slog.Logger) (*ListEnvelope, error) {
	logger = logging.OrDiscard(logger)

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, contractErr(ctx, logger, "response", "must be an object", raw)
	}

	items, ok := obj[collection].([]any)
	if !ok {
		reason := "must be an array"
		if _, present := obj[collection]; !present {
			reason = "is missing"
		}
		return nil, contractErr(ctx, logger, collection, reason, raw)
	}

	pobj, ok := obj["pagination"].(map[string]any)
	if !ok {
		reason := "must be an object"
		if _, present := obj["pagination"]; !present {
			reason = "is missing"
		}
		return nil, contractErr(ctx, logger, "pagination", reason, raw)
	}

	var values [len(paginationFields)]int
	for i, name := range paginationFields {
		field := "pagination." + name
		v, present := pobj[name]
		if !present {
			return nil, contractErr(ctx, logger, field, "is missing", raw)
		}
		n, reason := wholeNumber(v)
		if reason != "" {
			return nil, contractErr(ctx, logger, field, reason, raw)
		}
		if n < 0 {
			return nil, contractErr(ctx, logger, field, "must not be negative", raw)
		}
		values[i] = n
	}

	meta := pagination.Metadata{
		Page:          values[0],
		Size:          values[1],
		TotalElements: values[2],
		TotalPages:    values[3],
	}

	if meta.Size > 0 {
		if want := pagination.TotalPages(meta.TotalElements, meta.Size); want != meta.TotalPages {
			logger.WarnContext(ctx, "pagination totalPages disagrees with totalElements/size",
				slog.String("collection", collection),
				slog.Int("total_pages", meta.TotalPages),
				slog.Int("expected_total_pages", want),
				slog.Int("total_elements", meta.TotalElements),
				slog.Int("size", meta.Size),
			)
		}
	}

	env := &ListEnvelope{Items: items, Pagination: meta}
	if a, ok := obj["analytics"].(map[string]any); ok {
		env.Analytics = a
	}
	return env, nil
}

// DecodeItems converts validated, untyped items into DTOs.
func DecodeItems[T any](items []any, collection string) ([]T, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("re-encoding %s: %w", collection, err)
	}

	out := make([]T, 0, len(items))
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &domain.ContractError{Field: collection, Reason: fmt.Sprintf("has malformed items: %v", err)}
	}
	return out, nil
}

// DecodeObject converts an untyped object (e.g. analytics) into a DTO.
func DecodeObject[T any](v map[string]any, field string) (*T, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("re-encoding %s: %w", field, err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &domain.ContractError{Field: field, Reason: fmt.Sprintf("is malformed: %v", err)}
	}
	return &out, nil
}

// wholeNumber accepts JSON numbers (json.Number or float64) and Go ints.
// The reason is "" on success.
func wholeNumber(v any) (int, string) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), ""
		}
		f, err := n.Float64()
		if err != nil {
			return 0, "must be a number"
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case int:
		return n, ""
	case int64:
		return int(n), ""
	default:
		return 0, fmt.Sprintf("must be a number, got %T", v)
	}
}

func floatToInt(f float64) (int, string) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, "must be a whole number"
	}
	if f < float64(math.MinInt) || f >= float64(math.MaxInt) {
		return 0, "is out of range"
	}
	return int(f), ""
}

func contractErr(ctx context.Context, logger *slog.Logger, field, reason string, raw any) error {
	err := &domain.ContractError{Field: field, Reason: reason, Payload: raw}
	logger.ErrorContext(ctx, "backend contract violation",
		slog.String("field", field),
		slog.String("reason", reason),
		slog.Any("payload", raw),
	)
	return err
}
