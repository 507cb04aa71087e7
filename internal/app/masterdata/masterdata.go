// Package masterdata instantiates the generic resource store for each
// master-data resource. Resource differences live entirely in the Config
// records below.
package masterdata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pythia-plus/console/internal/app/fanout"
	"github.com/pythia-plus/console/internal/app/resource"
	"github.com/pythia-plus/console/internal/domain/masterdata"
	"github.com/pythia-plus/console/internal/ports"
)

// Resource endpoints under /api/v1.
const (
	TechnologiesEndpoint   = "technologies"
	RolesEndpoint          = "roles"
	SkillsEndpoint         = "skills"
	CertificationsEndpoint = "certifications"
	LanguagesEndpoint      = "languages"
)

var (
	TechnologyConfig = resource.Config[masterdata.Technology]{
		Endpoint:         TechnologiesEndpoint,
		SearchFields:     func(t masterdata.Technology) []string { return []string{t.Name, t.Category, t.Description} },
		NotFoundMessage:  "Technology not found",
		DuplicateMessage: "A technology with this name already exists",
	}

	RoleConfig = resource.Config[masterdata.Role]{
		Endpoint:         RolesEndpoint,
		SearchFields:     func(r masterdata.Role) []string { return []string{r.Name, r.Description} },
		NotFoundMessage:  "Role not found",
		DuplicateMessage: "A role with this name already exists",
	}

	SkillConfig = resource.Config[masterdata.Skill]{
		Endpoint:         SkillsEndpoint,
		SearchFields:     func(s masterdata.Skill) []string { return []string{s.Name, s.Category} },
		NotFoundMessage:  "Skill not found",
		DuplicateMessage: "A skill with this name already exists",
	}

	CertificationConfig = resource.Config[masterdata.Certification]{
		Endpoint:         CertificationsEndpoint,
		SearchFields:     func(c masterdata.Certification) []string { return []string{c.Name, c.Issuer} },
		NotFoundMessage:  "Certification not found",
		DuplicateMessage: "A certification with this name already exists",
	}

	LanguageConfig = resource.Config[masterdata.Language]{
		Endpoint:         LanguagesEndpoint,
		SearchFields:     func(l masterdata.Language) []string { return []string{l.Name, l.Code} },
		NotFoundMessage:  "Language not found",
		DuplicateMessage: "A language with this code already exists",
	}
)

// Clients bundles the REST ports for every master-data resource.
type Clients struct {
	Technologies   ports.ResourceClient[masterdata.Technology]
	Roles          ports.ResourceClient[masterdata.Role]
	Skills         ports.ResourceClient[masterdata.Skill]
	Certifications ports.ResourceClient[masterdata.Certification]
	Languages      ports.ResourceClient[masterdata.Language]
}

// Services holds one independent store per master-data resource.
type Services struct {
	Technologies   *resource.Store[masterdata.Technology]
	Roles          *resource.Store[masterdata.Role]
	Skills         *resource.Store[masterdata.Skill]
	Certifications *resource.Store[masterdata.Certification]
	Languages      *resource.Store[masterdata.Language]
}

// NewServices builds a fresh store per resource. Callers that need isolated
// state (tests, a second console session) simply call it again.
func NewServices(c Clients, logger *slog.Logger) *Services {
	return &Services{
		Technologies:   resource.New(c.Technologies, TechnologyConfig, logger),
		Roles:          resource.New(c.Roles, RoleConfig, logger),
		Skills:         resource.New(c.Skills, SkillConfig, logger),
		Certifications: resource.New(c.Certifications, CertificationConfig, logger),
		Languages:      resource.New(c.Languages, LanguageConfig, logger),
	}
}

// loadConcurrency bounds the parallel list calls made by LoadAll.
const loadConcurrency = 3

// LoadAll loads every resource store concurrently. Each store records its own
// error signal; the returned error joins the failures, labelled by endpoint.
func (s *Services) LoadAll(ctx context.Context) error {
	type loader interface {
		Endpoint() string
		Load(ctx context.Context) error
	}
	stores := []loader{s.Technologies, s.Roles, s.Skills, s.Certifications, s.Languages}

	tasks := make([]fanout.Task, len(stores))
	for i, st := range stores {
		tasks[i] = st.Load
	}

	var errs []error
	for i, err := range fanout.Run(ctx, loadConcurrency, tasks...) {
		if err != nil {
			errs = append(errs, fmt.Errorf("loading %s: %w", stores[i].Endpoint(), err))
		}
	}
	return errors.Join(errs...)
}
