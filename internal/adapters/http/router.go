// Package http is the console BFF's inbound adapter: routing and server
// lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pythia-plus/console/internal/adapters/http/handlers"
)

// APIPrefix is the mount point of every console route except health.
const APIPrefix = "/console/v1"

// Mountable is a handler that registers its own sub-routes.
type Mountable interface {
	Routes(r chi.Router)
}

// ResourceRoutes is a master-data handler mounted at its own Pattern.
type ResourceRoutes interface {
	Mountable
	Pattern() string
}

// Routes collects the handlers the router mounts. Nil handlers are skipped.
type Routes struct {
	Health     *handlers.HealthHandler
	Resources  []ResourceRoutes
	Employees  Mountable
	Projects   Mountable
	Comparison Mountable
	Drafts     Mountable
}

// NewRouter creates the console router. Middleware is applied globally in
// the order given; apiMiddleware only wraps the /console/v1 routes.
func NewRouter(rt Routes, middlewares []func(http.Handler) http.Handler, apiMiddleware ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	if rt.Health != nil {
		r.Get("/health/live", rt.Health.Liveness)
		r.Get("/health/ready", rt.Health.Readiness)
	}

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(apiMiddleware...)

		for _, res := range rt.Resources {
			r.Route(res.Pattern(), res.Routes)
		}
		mount(r, "/employees", rt.Employees)
		mount(r, "/projects", rt.Projects)
		mount(r, "/comparison", rt.Comparison)
		mount(r, "/drafts/employee", rt.Drafts)
	})

	return r
}

func mount(r chi.Router, pattern string, m Mountable) {
	if m == nil {
		return
	}
	r.Route(pattern, m.Routes)
}
