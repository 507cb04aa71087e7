package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/metric"

	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/platform/logging"
	"github.com/pythia-plus/console/internal/platform/telemetry"
	"github.com/pythia-plus/console/internal/ports"
)

// DirectoryConfig binds a server-paged resource to its translators.
type DirectoryConfig[T, D, F any] struct {
	// Endpoint is the resource path ("projects").
	Endpoint string

	// Collection is the list envelope's item field ("projects").
	Collection string

	// MapPage decodes a validated envelope's items and analytics.
	MapPage func(ctx context.Context, env *ListEnvelope) ([]T, *F, error)

	// MapDetail decodes a GET /{endpoint}/{id} body.
	MapDetail func(ctx context.Context, raw json.RawMessage) (*D, error)
}

// DirectoryClient implements [ports.DirectoryClient]: every page passes
// through ValidateListResponse before it is mapped.
type DirectoryClient[T, D, F any] struct {
	req     *Requester
	cfg     DirectoryConfig[T, D, F]
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewDirectoryClient creates a directory client. metrics may be nil.
func NewDirectoryClient[T, D, F any](req *Requester, cfg DirectoryConfig[T, D, F], metrics *telemetry.Metrics, logger *slog.Logger) *DirectoryClient[T, D, F] {
	return &DirectoryClient[T, D, F]{req: req, cfg: cfg, metrics: metrics, logger: logging.OrDiscard(logger)}
}

var _ ports.DirectoryClient[struct{}, struct{}, struct{}] = (*DirectoryClient[struct{}, struct{}, struct{}])(nil)

// ListPage fetches GET /{endpoint}?page=&size=&sort=field,dir&search=.
func (c *DirectoryClient[T, D, F]) ListPage(ctx context.Context, q ports.PageQuery) (*ports.Page[T, F], error) {
	var raw json.RawMessage
	if _, err := c.req.Do(ctx, http.MethodGet, "/"+c.cfg.Endpoint+"?"+pageQuery(q).Encode(), nil, &raw); err != nil {
		return nil, err
	}

	env, err := DecodeListResponse(ctx, raw, c.cfg.Collection, c.logger)
	if err != nil {
		c.countViolation(ctx, err)
		return nil, err
	}

	items, facets, err := c.cfg.MapPage(ctx, env)
	if err != nil {
		c.countViolation(ctx, err)
		return nil, err
	}

	return &ports.Page[T, F]{Items: items, Pagination: env.Pagination, Facets: facets}, nil
}

// Get fetches GET /{endpoint}/{id}.
func (c *DirectoryClient[T, D, F]) Get(ctx context.Context, id int64) (*D, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/%s/%d", c.cfg.Endpoint, id)
	if _, err := c.req.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	d, err := c.cfg.MapDetail(ctx, raw)
	if err != nil {
		c.countViolation(ctx, err)
		return nil, err
	}
	return d, nil
}

func (c *DirectoryClient[T, D, F]) countViolation(ctx context.Context, err error) {
	if c.metrics == nil || !errors.Is(err, domain.ErrContract) {
		return
	}
	c.metrics.ContractViolations.Add(ctx, 1, metric.WithAttributes(telemetry.AttrResource.String(c.cfg.Endpoint)))
}

// pageQuery builds the wire query. Page is already 0-indexed.
func pageQuery(q ports.PageQuery) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	if q.SortField != "" {
		dir := q.SortDir
		if dir == "" {
			dir = ports.SortAsc
		}
		v.Set("sort", q.SortField+","+string(dir))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}
