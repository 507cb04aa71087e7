// Package candidate implements the batched candidate profile fetch used by
// the comparison view.
package candidate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pythia-plus/console/internal/adapters/clients/acl"
	"github.com/pythia-plus/console/internal/domain"
	dc "github.com/pythia-plus/console/internal/domain/candidate"
	"github.com/pythia-plus/console/internal/platform/logging"
	"github.com/pythia-plus/console/internal/ports"
)

const batchPath = "/candidates/batch-profiles"

type batchRequestDTO struct {
	IDs []string `json:"ids"`
}

type metadataDTO struct {
	Requested int      `json:"requested"`
	Found     int      `json:"found"`
	NotFound  []string `json:"notFound"`
}

type batchResponseDTO struct {
	Success    bool         `json:"success"`
	Candidates []dc.Profile `json:"candidates"`
	Error      string       `json:"error"`
	Metadata   metadataDTO  `json:"metadata"`
}

var _ ports.CandidateClient = (*Client)(nil)

// Client implements [ports.CandidateClient].
type Client struct {
	req    *acl.Requester
	logger *slog.Logger
}

// NewClient creates a batch profile client.
func NewClient(req *acl.Requester, logger *slog.Logger) *Client {
	return &Client{req: req, logger: logging.OrDiscard(logger)}
}

// BatchProfiles fetches every id in one POST. A 206 response or a non-empty
// metadata.notFound marks the result Partial. A body with success=false is
// an error even under a 2xx status.
func (c *Client) BatchProfiles(ctx context.Context, ids []string) (*ports.BatchResult, error) {
	var dto batchResponseDTO
	status, err := c.req.Do(ctx, http.MethodPost, batchPath, batchRequestDTO{IDs: ids}, &dto)
	if err != nil {
		return nil, err
	}

	if !dto.Success {
		c.logger.ErrorContext(ctx, "batch profile fetch reported failure",
			slog.Int("status", status),
			slog.String("error", dto.Error),
		)
		return nil, &domain.APIError{Status: status, Message: dto.Error, Err: domain.ErrUnexpected}
	}

	result := &ports.BatchResult{
		Profiles: dto.Candidates,
		NotFound: dto.Metadata.NotFound,
		Partial:  status == http.StatusPartialContent || len(dto.Metadata.NotFound) > 0,
	}
	if result.Partial {
		c.logger.WarnContext(ctx, "batch profile fetch returned partial results",
			slog.Int("requested", len(ids)),
			slog.Int("found", len(dto.Candidates)),
			slog.Any("not_found", dto.Metadata.NotFound),
		)
	}
	return result, nil
}
