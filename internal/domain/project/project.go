// Package project holds the project portfolio view models. The backend's
// flat project DTOs are mapped into these by the anti-corruption layer.
package project

import "time"

// Period is a project's planned start and end. Either bound may be unknown.
type Period struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// TechnologySummary is a technology used on a project.
type TechnologySummary struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// TeamMember is an employee assigned to a project.
type TeamMember struct {
	EmployeeID int64  `json:"employeeId"`
	Name       string `json:"name"`
	Role       string `json:"role,omitempty"`
	Allocation int    `json:"allocation,omitempty"`
}

// TeamSummary aggregates a project's staffing.
type TeamSummary struct {
	Size    int          `json:"size"`
	Lead    string       `json:"lead,omitempty"`
	Members []TeamMember `json:"members,omitempty"`
}

// Project is the list-row view model.
type Project struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Client       string              `json:"client,omitempty"`
	Description  string              `json:"description,omitempty"`
	Status       Status              `json:"status"`
	Complexity   Complexity          `json:"complexity"`
	Priority     Priority            `json:"priority"`
	Period       Period              `json:"period"`
	Progress     int                 `json:"progress"`
	Technologies []TechnologySummary `json:"technologies"`
	Team         TeamSummary         `json:"team"`
}

// EntityID implements domain.Entity.
func (p Project) EntityID() int64 { return p.ID }

// Milestone is a dated checkpoint on a project.
type Milestone struct {
	Name      string     `json:"name"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Completed bool       `json:"completed"`
}

// Budget is a project's planned versus consumed budget.
type Budget struct {
	Planned  float64 `json:"planned"`
	Consumed float64 `json:"consumed"`
	Currency string  `json:"currency"`
}

// Detail is the full project view.
type Detail struct {
	Project
	Budget     *Budget     `json:"budget,omitempty"`
	Milestones []Milestone `json:"milestones,omitempty"`
	UpdatedAt  *time.Time  `json:"updatedAt,omitempty"`
}

// Analytics are the backend-aggregated facets returned next to a project page.
type Analytics struct {
	ByStatus        map[Status]int     `json:"byStatus,omitempty"`
	ByComplexity    map[Complexity]int `json:"byComplexity,omitempty"`
	AverageProgress float64            `json:"averageProgress"`
}
