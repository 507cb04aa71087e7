package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pythia-plus/console/internal/adapters/clients/acl"
	"github.com/pythia-plus/console/internal/domain"
	de "github.com/pythia-plus/console/internal/domain/employee"
	"github.com/pythia-plus/console/internal/platform/logging"
	"github.com/pythia-plus/console/internal/platform/telemetry"
)

// Endpoint is the employee resource path.
const Endpoint = "employees"

var (
	availabilityTable = map[string]de.Availability{
		"AVAILABLE":           de.AvailabilityAvailable,
		"FREE":                de.AvailabilityAvailable,
		"PARTIALLY_AVAILABLE": de.AvailabilityPartial,
		"PARTIAL":             de.AvailabilityPartial,
		"ASSIGNED":            de.AvailabilityAssigned,
		"FULLY_ALLOCATED":     de.AvailabilityAssigned,
		"BUSY":                de.AvailabilityAssigned,
		"ON_LEAVE":            de.AvailabilityOnLeave,
		"LEAVE":               de.AvailabilityOnLeave,
	}

	seniorityTable = map[string]de.Seniority{
		"JUNIOR":    de.SeniorityJunior,
		"MID":       de.SeniorityMid,
		"MID_LEVEL": de.SeniorityMid,
		"MEDIOR":    de.SeniorityMid,
		"SENIOR":    de.SenioritySenior,
		"LEAD":      de.SeniorityLead,
		"PRINCIPAL": de.SeniorityPrincipal,
	}
)

// ParseAvailability maps a backend availability, defaulting to AVAILABLE.
func ParseAvailability(ctx context.Context, raw string, logger *slog.Logger) de.Availability {
	return acl.ParseEnum(ctx, logger, "employee.availability", raw, availabilityTable, de.DefaultAvailability)
}

// ParseSeniority maps a backend seniority, defaulting to MID.
func ParseSeniority(ctx context.Context, raw string, logger *slog.Logger) de.Seniority {
	return acl.ParseEnum(ctx, logger, "employee.seniority", raw, seniorityTable, de.DefaultSeniority)
}

// Client is the employee directory client.
type Client = acl.DirectoryClient[de.Employee, de.Detail, de.Facets]

// NewClient wires the employee translators into a directory client.
func NewClient(req *acl.Requester, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	logger = logging.OrDiscard(logger)
	return acl.NewDirectoryClient(req, acl.DirectoryConfig[de.Employee, de.Detail, de.Facets]{
		Endpoint:   Endpoint,
		Collection: Collection,
		MapPage: func(ctx context.Context, env *acl.ListEnvelope) ([]de.Employee, *de.Facets, error) {
			rows, err := acl.DecodeItems[EmployeeDTO](env.Items, Collection)
			if err != nil {
				return nil, nil, err
			}
			analytics, err := acl.DecodeObject[AnalyticsDTO](env.Analytics, "analytics")
			if err != nil {
				return nil, nil, err
			}

			items := make([]de.Employee, len(rows))
			for i := range rows {
				items[i] = MapEmployee(ctx, rows[i], logger)
			}
			if analytics == nil {
				return items, nil, nil
			}
			facets := MapFacets(ctx, *analytics, logger)
			return items, &facets, nil
		},
		MapDetail: func(ctx context.Context, raw json.RawMessage) (*de.Detail, error) {
			var dto EmployeeDetailDTO
			if err := json.Unmarshal(raw, &dto); err != nil {
				return nil, &domain.ContractError{Field: "employee", Reason: fmt.Sprintf("is malformed: %v", err)}
			}
			d := MapEmployeeDetail(ctx, dto, logger)
			return &d, nil
		},
	}, metrics, logger)
}

// MapEmployee maps a directory row.
func MapEmployee(ctx context.Context, dto EmployeeDTO, logger *slog.Logger) de.Employee {
	return de.Employee{
		ID:           dto.ID,
		FullName:     strings.TrimSpace(dto.FirstName + " " + dto.LastName),
		Email:        dto.Email,
		Title:        dto.JobTitle,
		Department:   dto.DepartmentName,
		Location:     dto.Location,
		Seniority:    ParseSeniority(ctx, dto.SeniorityLevel, logger),
		Availability: ParseAvailability(ctx, dto.AvailabilityStatus, logger),
		Skills:       nonNil(dto.SkillNames),
		Technologies: nonNil(dto.TechnologyNames),
	}
}

// MapEmployeeDetail maps GET /employees/{id}. An unparseable hire date is
// dropped.
func MapEmployeeDetail(ctx context.Context, dto EmployeeDetailDTO, logger *slog.Logger) de.Detail {
	d := de.Detail{
		Employee:       MapEmployee(ctx, dto.EmployeeDTO, logger),
		Certifications: dto.CertificationNames,
	}

	if dto.HireDate != "" {
		if t, err := time.Parse(time.DateOnly, dto.HireDate); err == nil {
			d.HireDate = &t
		} else {
			logging.OrDiscard(logger).WarnContext(ctx, "unparseable date dropped",
				slog.String("field", "hireDate"),
				slog.String("value", dto.HireDate),
			)
		}
	}

	for _, l := range dto.Languages {
		d.Languages = append(d.Languages, de.LanguageLevel{Name: l.Language, Proficiency: acl.NormalizeEnum(l.Level)})
	}
	for _, a := range dto.ProjectAssignments {
		d.Assignments = append(d.Assignments, de.Assignment{
			ProjectID:   a.ProjectID,
			ProjectName: a.ProjectName,
			Role:        a.RoleName,
			Allocation:  a.AllocationPercentage,
		})
	}
	return d
}

// MapFacets re-keys the analytics distributions by frontend spelling.
func MapFacets(ctx context.Context, dto AnalyticsDTO, logger *slog.Logger) de.Facets {
	var f de.Facets
	if len(dto.AvailabilityDistribution) > 0 {
		f.ByAvailability = make(map[de.Availability]int, len(dto.AvailabilityDistribution))
		for k, n := range dto.AvailabilityDistribution {
			f.ByAvailability[ParseAvailability(ctx, k, logger)] += n
		}
	}
	if len(dto.SeniorityDistribution) > 0 {
		f.BySeniority = make(map[de.Seniority]int, len(dto.SeniorityDistribution))
		for k, n := range dto.SeniorityDistribution {
			f.BySeniority[ParseSeniority(ctx, k, logger)] += n
		}
	}
	return f
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
