// Package acl is the anti-corruption layer between the console and the
// Pythia REST API. It owns the HTTP request lifecycle, maps statuses to
// domain errors and validates list envelopes before any payload is trusted.
// Resource-specific DTOs and translators live in subpackages (acl/masterdata,
// acl/project, acl/employee, acl/candidate).
package acl

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pythia-plus/console/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// errorBody covers both error envelopes the API emits: the console's
// {"message": ...} and RFC 7807 problem details with field errors.
type errorBody struct {
	Message string        `json:"message"`
	Detail  string        `json:"detail"`
	Errors  []errorDetail `json:"errors"`
}

type errorDetail struct {
	Field    string `json:"field"`
	Location string `json:"location"`
	Message  string `json:"message"`
}

// TranslateHTTPError maps a non-2xx response to a *domain.APIError wrapping
// the sentinel for its status class. For 400/422 responses that list field
// errors, the wrapped error is a *domain.ValidationError.
func TranslateHTTPError(resp *http.Response) error {
	body := parseErrorBody(resp)

	msg := body.Message
	if msg == "" {
		msg = body.Detail
	}

	apiErr := &domain.APIError{Status: resp.StatusCode, Message: msg}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Err = domain.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		apiErr.Err = domain.ErrConflict
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		if len(body.Errors) > 0 {
			apiErr.Err = toValidationError(body.Errors)
		} else {
			apiErr.Err = domain.ErrValidation
		}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		apiErr.Err = domain.ErrForbidden
	case resp.StatusCode >= http.StatusInternalServerError:
		apiErr.Err = domain.ErrServer
	default:
		apiErr.Err = domain.ErrUnexpected
	}

	return apiErr
}

// parseErrorBody reads a JSON error body. Non-JSON or unreadable bodies
// yield a zero errorBody.
func parseErrorBody(resp *http.Response) errorBody {
	if resp.Body == nil {
		return errorBody{}
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/json") && !strings.HasPrefix(ct, "application/problem+json") {
		return errorBody{}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return errorBody{}
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errorBody{}
	}
	return body
}

// toValidationError keys field errors by name, stripping the "body."
// prefix RFC 7807 locations carry.
func toValidationError(details []errorDetail) *domain.ValidationError {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		field := d.Field
		if field == "" {
			field = strings.TrimPrefix(d.Location, "body.")
		}
		fields[field] = d.Message
	}
	return &domain.ValidationError{Fields: fields}
}
