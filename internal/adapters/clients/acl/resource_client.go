package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pythia-plus/console/internal/platform/logging"
	"github.com/pythia-plus/console/internal/ports"
)

// Codec translates one resource between its wire DTO W and domain type T.
type Codec[T, W any] struct {
	ToDomain   func(W) T
	FromDomain func(*T) W
}

// listResponse is the master-data list envelope. Total falls back to the
// item count when the backend omits it.
type listResponse[W any] struct {
	Items []W  `json:"items"`
	Total *int `json:"total"`
}

// ResourceClient implements [ports.ResourceClient] for any flat CRUD
// resource under /api/v1/{endpoint}.
type ResourceClient[T, W any] struct {
	req      *Requester
	endpoint string
	codec    Codec[T, W]
	logger   *slog.Logger
}

// NewResourceClient creates a client for endpoint ("technologies").
func NewResourceClient[T, W any](req *Requester, endpoint string, codec Codec[T, W], logger *slog.Logger) *ResourceClient[T, W] {
	return &ResourceClient[T, W]{req: req, endpoint: endpoint, codec: codec, logger: logging.OrDiscard(logger)}
}

var _ ports.ResourceClient[struct{}] = (*ResourceClient[struct{}, struct{}])(nil)

// List fetches GET /{endpoint}.
func (c *ResourceClient[T, W]) List(ctx context.Context) ([]T, int, error) {
	var dto listResponse[W]
	if _, err := c.req.Do(ctx, http.MethodGet, "/"+c.endpoint, nil, &dto); err != nil {
		return nil, 0, err
	}

	items := make([]T, len(dto.Items))
	for i := range dto.Items {
		items[i] = c.codec.ToDomain(dto.Items[i])
	}

	total := len(items)
	switch {
	case dto.Total == nil:
		c.logger.DebugContext(ctx, "list total missing, using item count",
			slog.String("endpoint", c.endpoint),
			slog.Int("items", total),
		)
	case *dto.Total != total:
		c.logger.WarnContext(ctx, "list total differs from item count",
			slog.String("endpoint", c.endpoint),
			slog.Int("total", *dto.Total),
			slog.Int("items", total),
		)
		total = *dto.Total
	}
	return items, total, nil
}

// Create posts item to /{endpoint} and returns the server's echo.
func (c *ResourceClient[T, W]) Create(ctx context.Context, item *T) (*T, error) {
	var resp W
	if _, err := c.req.Do(ctx, http.MethodPost, "/"+c.endpoint, c.codec.FromDomain(item), &resp); err != nil {
		return nil, err
	}
	out := c.codec.ToDomain(resp)
	return &out, nil
}

// Update puts item to /{endpoint}/{id} and returns the server's echo.
func (c *ResourceClient[T, W]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	var resp W
	path := fmt.Sprintf("/%s/%d", c.endpoint, id)
	if _, err := c.req.Do(ctx, http.MethodPut, path, c.codec.FromDomain(item), &resp); err != nil {
		return nil, err
	}
	out := c.codec.ToDomain(resp)
	return &out, nil
}

// Delete sends DELETE /{endpoint}/{id}.
func (c *ResourceClient[T, W]) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/%s/%d", c.endpoint, id)
	_, err := c.req.Do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
