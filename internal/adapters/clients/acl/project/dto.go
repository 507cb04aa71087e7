// Package project implements the anti-corruption layer for the backend's
// project resources: flat DTOs with backend enum spellings, mapped into the
// nested project view models.
package project

// Collection is the item field of the project list envelope.
const Collection = "projects"

// ProjectDTO matches the backend project list row. Technologies and team
// data arrive as flat, parallel arrays.
type ProjectDTO struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	ClientName         string   `json:"clientName"`
	Description        string   `json:"description"`
	Status             string   `json:"status"`
	Complexity         string   `json:"complexity"`
	Priority           string   `json:"priority"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	ProgressPercentage *float64 `json:"progressPercentage"`
	TechnologyIDs      []int64  `json:"technologyIds"`
	TechnologyNames    []string `json:"technologyNames"`
	TeamSize           int      `json:"teamSize"`
	TeamLeadName       string   `json:"teamLeadName"`
}

// TeamMemberDTO is one entry of the detail's teamMembers array.
type TeamMemberDTO struct {
	EmployeeID           int64  `json:"employeeId"`
	FullName             string `json:"fullName"`
	RoleName             string `json:"roleName"`
	AllocationPercentage int    `json:"allocationPercentage"`
}

// MilestoneDTO is one entry of the detail's milestones array.
type MilestoneDTO struct {
	Title     string `json:"title"`
	DueDate   string `json:"dueDate"`
	Completed bool   `json:"completed"`
}

// ProjectDetailDTO matches GET /projects/{id}.
type ProjectDetailDTO struct {
	ProjectDTO
	BudgetPlanned  *float64        `json:"budgetPlanned"`
	BudgetConsumed *float64        `json:"budgetConsumed"`
	Currency       string          `json:"currency"`
	TeamMembers    []TeamMemberDTO `json:"teamMembers"`
	Milestones     []MilestoneDTO  `json:"milestones"`
	UpdatedAt      string          `json:"updatedAt"`
}

// AnalyticsDTO is the optional analytics block of the list envelope.
type AnalyticsDTO struct {
	StatusDistribution     map[string]int `json:"statusDistribution"`
	ComplexityDistribution map[string]int `json:"complexityDistribution"`
	AverageProgress        float64        `json:"averageProgress"`
}

// ListResponseDTO is a validated project list envelope with typed items.
type ListResponseDTO struct {
	Projects  []ProjectDTO
	Analytics *AnalyticsDTO
}
