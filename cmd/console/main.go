// Package main is the entry point for the console backend. It wires all
// dependencies using samber/do v2, starts the HTTP server, and handles
// graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/samber/do/v2"

	"github.com/pythia-plus/console/internal/adapters/clients/acl"
	aclcandidate "github.com/pythia-plus/console/internal/adapters/clients/acl/candidate"
	aclemployee "github.com/pythia-plus/console/internal/adapters/clients/acl/employee"
	aclmd "github.com/pythia-plus/console/internal/adapters/clients/acl/masterdata"
	aclproject "github.com/pythia-plus/console/internal/adapters/clients/acl/project"
	"github.com/pythia-plus/console/internal/adapters/drafts"
	adapthttp "github.com/pythia-plus/console/internal/adapters/http"
	"github.com/pythia-plus/console/internal/adapters/http/handlers"
	"github.com/pythia-plus/console/internal/adapters/http/middleware"
	"github.com/pythia-plus/console/internal/app/comparison"
	"github.com/pythia-plus/console/internal/app/directory"
	"github.com/pythia-plus/console/internal/app/draft"
	"github.com/pythia-plus/console/internal/app/masterdata"
	"github.com/pythia-plus/console/internal/domain/employee"
	dm "github.com/pythia-plus/console/internal/domain/masterdata"
	"github.com/pythia-plus/console/internal/domain/project"
	"github.com/pythia-plus/console/internal/platform/config"
	"github.com/pythia-plus/console/internal/platform/health"
	"github.com/pythia-plus/console/internal/platform/httpclient"
	"github.com/pythia-plus/console/internal/platform/logging"
	"github.com/pythia-plus/console/internal/platform/telemetry"
	"github.com/pythia-plus/console/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	draftOpenTimeout      = 5 * time.Second
)

type (
	projectDirectory  = directory.Service[project.Project, project.Detail, project.Analytics]
	employeeDirectory = directory.Service[employee.Employee, employee.Detail, employee.Facets]
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolving the server wires the full graph.
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*httpclient.Client](injector))
	store := do.MustInvoke[*drafts.Store](injector)
	registry.Register(store)

	// A draft left by the previous run is restored before serving.
	drafter := do.MustInvoke[*draft.Service](injector)
	if restored, err := drafter.Load(ctx); err != nil {
		logger.Warn("restoring employee draft failed", slog.Any("error", err))
	} else if restored {
		logger.Info("employee draft restored")
	}

	// Master data is warmed best-effort; each store keeps its own error.
	if err := do.MustInvoke[*masterdata.Services](injector).LoadAll(ctx); err != nil {
		logger.Warn("master data warm-up incomplete", slog.Any("error", err))
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	<-serverErr

	// Flush the pending autosave before the store goes away.
	if drafter.Pending() {
		if err := drafter.Save(shutdownCtx); err != nil {
			logger.Error("flushing employee draft failed", slog.Any("error", err))
		}
	}
	drafter.Close()
	do.MustInvoke[*projectDirectory](injector).Close()
	do.MustInvoke[*employeeDirectory](injector).Close()

	if err := store.Close(); err != nil {
		logger.Error("closing draft store", slog.Any("error", err))
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	registerClients(injector, cfg, logger)
	registerServices(injector, cfg, logger)
	registerHTTP(injector, cfg, logger)
}

func registerClients(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.API, "pythia-api", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*acl.Requester, error) {
		return acl.NewRequester(do.MustInvoke[*httpclient.Client](i), logger), nil
	})

	do.Provide(injector, func(i do.Injector) (masterdata.Clients, error) {
		req := do.MustInvoke[*acl.Requester](i)
		return masterdata.Clients{
			Technologies:   acl.NewResourceClient(req, masterdata.TechnologyConfig.Endpoint, aclmd.TechnologyCodec, logger),
			Roles:          acl.NewResourceClient(req, masterdata.RoleConfig.Endpoint, aclmd.RoleCodec, logger),
			Skills:         acl.NewResourceClient(req, masterdata.SkillConfig.Endpoint, aclmd.SkillCodec, logger),
			Certifications: acl.NewResourceClient(req, masterdata.CertificationConfig.Endpoint, aclmd.CertificationCodec, logger),
			Languages:      acl.NewResourceClient(req, masterdata.LanguageConfig.Endpoint, aclmd.LanguageCodec, logger),
		}, nil
	})

	do.Provide(injector, func(i do.Injector) (*aclproject.Client, error) {
		return aclproject.NewClient(do.MustInvoke[*acl.Requester](i), do.MustInvoke[*telemetry.Metrics](i), logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*aclemployee.Client, error) {
		return aclemployee.NewClient(do.MustInvoke[*acl.Requester](i), do.MustInvoke[*telemetry.Metrics](i), logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CandidateClient, error) {
		return aclcandidate.NewClient(do.MustInvoke[*acl.Requester](i), logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (*drafts.Store, error) {
		ctx, cancel := context.WithTimeout(context.Background(), draftOpenTimeout)
		defer cancel()
		return drafts.Open(ctx, cfg.Console.DraftDSN)
	})
}

func registerServices(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*masterdata.Services, error) {
		return masterdata.NewServices(do.MustInvoke[masterdata.Clients](i), logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*projectDirectory, error) {
		client := do.MustInvoke[*aclproject.Client](i)
		return directory.New[project.Project, project.Detail, project.Analytics](client, directory.Config{
			Name:            "projects",
			PageSize:        cfg.Console.PageSize,
			SearchDelay:     cfg.Console.SearchDebounce,
			DefaultSort:     "name",
			DefaultSortDir:  ports.SortAsc,
			NotFoundMessage: "Project not found",
		}, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*employeeDirectory, error) {
		client := do.MustInvoke[*aclemployee.Client](i)
		return directory.New[employee.Employee, employee.Detail, employee.Facets](client, directory.Config{
			Name:            "employees",
			PageSize:        cfg.Console.PageSize,
			SearchDelay:     cfg.Console.SearchDebounce,
			DefaultSort:     "fullName",
			DefaultSortDir:  ports.SortAsc,
			NotFoundMessage: "Employee not found",
		}, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*comparison.Service, error) {
		opts := []comparison.Option{comparison.WithCacheSize(cfg.Console.ProfileCacheSize)}
		if metrics := do.MustInvoke[*telemetry.Metrics](i); metrics != nil {
			opts = append(opts, comparison.WithLookupCounter(metrics.ProfileCacheLookups))
		}
		return comparison.New(do.MustInvoke[ports.CandidateClient](i), logger, opts...)
	})

	do.Provide(injector, func(i do.Injector) (*draft.Service, error) {
		store := do.MustInvoke[*drafts.Store](i)
		return draft.New(store, draft.EmployeeKey, cfg.Console.DraftAutosaveDelay, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})
}

func registerHTTP(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		md := do.MustInvoke[*masterdata.Services](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		routes := adapthttp.Routes{
			Health: handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)),
			Resources: []adapthttp.ResourceRoutes{
				handlers.NewResourceHandler[dm.Technology](md.Technologies),
				handlers.NewResourceHandler[dm.Role](md.Roles),
				handlers.NewResourceHandler[dm.Skill](md.Skills),
				handlers.NewResourceHandler[dm.Certification](md.Certifications),
				handlers.NewResourceHandler[dm.Language](md.Languages),
			},
			Projects: handlers.NewDirectoryHandler[project.Project, project.Detail, project.Analytics](
				do.MustInvoke[*projectDirectory](i)),
			Employees: handlers.NewDirectoryHandler[employee.Employee, employee.Detail, employee.Facets](
				do.MustInvoke[*employeeDirectory](i)),
			Comparison: handlers.NewComparisonHandler(do.MustInvoke[*comparison.Service](i)),
			Drafts:     handlers.NewDraftHandler(do.MustInvoke[*draft.Service](i)),
		}

		return adapthttp.NewRouter(routes,
			[]func(nethttp.Handler) nethttp.Handler{
				middleware.Recovery(logger),
				middleware.RequestID(),
				middleware.OpenTelemetry(metrics),
				middleware.Logging(logger),
			},
			chimw.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
