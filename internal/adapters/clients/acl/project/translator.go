package project

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/pythia-plus/console/internal/adapters/clients/acl"
	"github.com/pythia-plus/console/internal/domain"
	dp "github.com/pythia-plus/console/internal/domain/project"
	"github.com/pythia-plus/console/internal/platform/logging"
	"github.com/pythia-plus/console/internal/platform/telemetry"
	"github.com/pythia-plus/console/internal/ports"
)

// Endpoint is the project resource path.
const Endpoint = "projects"

// Client is the project directory client.
type Client = acl.DirectoryClient[dp.Project, dp.Detail, dp.Analytics]

// NewClient wires the project translators into a directory client.
func NewClient(req *acl.Requester, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	logger = logging.OrDiscard(logger)
	return acl.NewDirectoryClient(req, acl.DirectoryConfig[dp.Project, dp.Detail, dp.Analytics]{
		Endpoint:   Endpoint,
		Collection: Collection,
		MapPage: func(ctx context.Context, env *acl.ListEnvelope) ([]dp.Project, *dp.Analytics, error) {
			dto, err := FromEnvelope(env)
			if err != nil {
				return nil, nil, err
			}
			page := MapListResponse(ctx, dto, logger)
			return page.Items, page.Facets, nil
		},
		MapDetail: func(ctx context.Context, raw json.RawMessage) (*dp.Detail, error) {
			var dto ProjectDetailDTO
			if err := json.Unmarshal(raw, &dto); err != nil {
				return nil, &domain.ContractError{Field: "project", Reason: fmt.Sprintf("is malformed: %v", err)}
			}
			d := MapProjectDetail(ctx, dto, logger)
			return &d, nil
		},
	}, metrics, logger)
}

// FromEnvelope types a validated envelope's items and analytics.
func FromEnvelope(env *acl.ListEnvelope) (ListResponseDTO, error) {
	projects, err := acl.DecodeItems[ProjectDTO](env.Items, Collection)
	if err != nil {
		return ListResponseDTO{}, err
	}
	analytics, err := acl.DecodeObject[AnalyticsDTO](env.Analytics, "analytics")
	if err != nil {
		return ListResponseDTO{}, err
	}
	return ListResponseDTO{Projects: projects, Analytics: analytics}, nil
}

// MapListResponse maps every row and the optional analytics block.
// Pagination is carried by the envelope, not remapped here.
func MapListResponse(ctx context.Context, dto ListResponseDTO, logger *slog.Logger) ports.Page[dp.Project, dp.Analytics] {
	items := make([]dp.Project, len(dto.Projects))
	for i := range dto.Projects {
		items[i] = MapProject(ctx, dto.Projects[i], logger)
	}

	page := ports.Page[dp.Project, dp.Analytics]{Items: items}
	if dto.Analytics != nil {
		a := mapAnalytics(ctx, *dto.Analytics, logger)
		page.Facets = &a
	}
	return page
}

// MapProject maps a list row. Malformed fields degrade to defaults; it
// never fails.
func MapProject(ctx context.Context, dto ProjectDTO, logger *slog.Logger) dp.Project {
	return dp.Project{
		ID:          dto.ID,
		Name:        dto.Name,
		Client:      dto.ClientName,
		Description: dto.Description,
		Status:      ParseStatus(ctx, dto.Status, logger),
		Complexity:  ParseComplexity(ctx, dto.Complexity, logger),
		Priority:    ParsePriority(ctx, dto.Priority, logger),
		Period: dp.Period{
			Start: parseDate(ctx, logger, "startDate", dto.StartDate),
			End:   parseDate(ctx, logger, "endDate", dto.EndDate),
		},
		Progress:     progress(dto.ProgressPercentage),
		Technologies: technologies(dto.TechnologyIDs, dto.TechnologyNames),
		Team: dp.TeamSummary{
			Size: dto.TeamSize,
			Lead: dto.TeamLeadName,
		},
	}
}

// MapProjectDetail maps GET /projects/{id}. Team members replace the row's
// summary size when present.
func MapProjectDetail(ctx context.Context, dto ProjectDetailDTO, logger *slog.Logger) dp.Detail {
	d := dp.Detail{
		Project:   MapProject(ctx, dto.ProjectDTO, logger),
		UpdatedAt: parseDate(ctx, logger, "updatedAt", dto.UpdatedAt),
	}

	if len(dto.TeamMembers) > 0 {
		members := make([]dp.TeamMember, len(dto.TeamMembers))
		for i, m := range dto.TeamMembers {
			members[i] = dp.TeamMember{
				EmployeeID: m.EmployeeID,
				Name:       m.FullName,
				Role:       m.RoleName,
				Allocation: m.AllocationPercentage,
			}
		}
		d.Team.Members = members
		d.Team.Size = len(members)
	}

	if dto.BudgetPlanned != nil || dto.BudgetConsumed != nil {
		d.Budget = &dp.Budget{Currency: dto.Currency}
		if dto.BudgetPlanned != nil {
			d.Budget.Planned = *dto.BudgetPlanned
		}
		if dto.BudgetConsumed != nil {
			d.Budget.Consumed = *dto.BudgetConsumed
		}
	}

	for _, m := range dto.Milestones {
		d.Milestones = append(d.Milestones, dp.Milestone{
			Name:      m.Title,
			DueDate:   parseDate(ctx, logger, "milestones.dueDate", m.DueDate),
			Completed: m.Completed,
		})
	}

	return d
}

// mapAnalytics re-keys the distributions by frontend spelling. Backend keys
// that collapse onto the same value are summed.
func mapAnalytics(ctx context.Context, dto AnalyticsDTO, logger *slog.Logger) dp.Analytics {
	a := dp.Analytics{AverageProgress: dto.AverageProgress}
	if len(dto.StatusDistribution) > 0 {
		a.ByStatus = make(map[dp.Status]int, len(dto.StatusDistribution))
		for k, n := range dto.StatusDistribution {
			a.ByStatus[ParseStatus(ctx, k, logger)] += n
		}
	}
	if len(dto.ComplexityDistribution) > 0 {
		a.ByComplexity = make(map[dp.Complexity]int, len(dto.ComplexityDistribution))
		for k, n := range dto.ComplexityDistribution {
			a.ByComplexity[ParseComplexity(ctx, k, logger)] += n
		}
	}
	return a
}

// technologies zips the parallel id/name arrays. Names win: an id with no
// name is dropped.
func technologies(ids []int64, names []string) []dp.TechnologySummary {
	out := make([]dp.TechnologySummary, 0, len(names))
	for i, name := range names {
		ts := dp.TechnologySummary{Name: name}
		if i < len(ids) {
			ts.ID = ids[i]
		}
		out = append(out, ts)
	}
	return out
}

// progress rounds and clamps to 0-100. Missing is 0.
func progress(p *float64) int {
	if p == nil || math.IsNaN(*p) {
		return 0
	}
	return int(math.Round(min(max(*p, 0), 100)))
}

// parseDate accepts a date ("2006-01-02") or an RFC 3339 timestamp.
// Anything else is dropped with a warning.
func parseDate(ctx context.Context, logger *slog.Logger, field, raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	logging.OrDiscard(logger).WarnContext(ctx, "unparseable date dropped",
		slog.String("field", field),
		slog.String("value", raw),
	)
	return nil
}
