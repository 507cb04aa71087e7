package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/platform/httpclient"
	"github.com/pythia-plus/console/internal/platform/logging"
)

// APIPrefix is prepended to every resource path.
const APIPrefix = "/api/v1"

// Requester centralizes the HTTP request lifecycle for ACL clients: request
// creation, JSON encoding, execution through httpclient.Client, status
// translation, JSON decoding and body cleanup.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester creates a Requester backed by client.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	return &Requester{client: client, logger: logging.OrDiscard(logger)}
}

// Do sends method to APIPrefix+path. reqBody is JSON-encoded when non-nil;
// respBody, when non-nil, receives the decoded JSON of a 2xx response. The
// returned status is 0 when no response arrived.
//
// Every failure is a *domain.APIError: status 0 wraps domain.ErrConnection,
// non-2xx statuses go through TranslateHTTPError. A 2xx body that is not
// valid JSON yields a *domain.ContractError.
func (r *Requester) Do(ctx context.Context, method, path string, reqBody, respBody any) (int, error) {
	req, err := r.newRequest(ctx, method, path, reqBody)
	if err != nil {
		return 0, err
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		r.logger.ErrorContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return 0, &domain.APIError{Status: 0, Err: errors.Join(domain.ErrConnection, err)}
	}
	defer r.closeBody(ctx, resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		r.logger.ErrorContext(ctx, "unexpected status",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return resp.StatusCode, TranslateHTTPError(resp)
	}

	if respBody != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return resp.StatusCode, &domain.ContractError{
				Field:  "body",
				Reason: fmt.Sprintf("is not valid JSON: %v", err),
			}
		}
	}

	return resp.StatusCode, nil
}

// BaseURL returns the API root the requester talks to.
func (r *Requester) BaseURL() string {
	return r.client.BaseURL()
}

func (r *Requester) newRequest(ctx context.Context, method, path string, reqBody any) (*http.Request, error) {
	url := r.client.BaseURL() + APIPrefix + path

	if reqBody == nil {
		req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
		}
		return req, nil
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (r *Requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}
