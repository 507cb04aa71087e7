// Package employee holds the employee directory view models and the
// employee-creation draft.
package employee

import "time"

// Availability is an employee's staffing availability.
type Availability string

const (
	AvailabilityAvailable Availability = "AVAILABLE"
	AvailabilityPartial   Availability = "PARTIALLY_AVAILABLE"
	AvailabilityAssigned  Availability = "ASSIGNED"
	AvailabilityOnLeave   Availability = "ON_LEAVE"

	DefaultAvailability = AvailabilityAvailable
)

// Seniority is an employee's career level.
type Seniority string

const (
	SeniorityJunior    Seniority = "JUNIOR"
	SeniorityMid       Seniority = "MID"
	SenioritySenior    Seniority = "SENIOR"
	SeniorityLead      Seniority = "LEAD"
	SeniorityPrincipal Seniority = "PRINCIPAL"

	DefaultSeniority = SeniorityMid
)

// Employee is the directory row view model.
type Employee struct {
	ID           int64        `json:"id"`
	FullName     string       `json:"fullName"`
	Email        string       `json:"email"`
	Title        string       `json:"title,omitempty"`
	Department   string       `json:"department,omitempty"`
	Location     string       `json:"location,omitempty"`
	Seniority    Seniority    `json:"seniority"`
	Availability Availability `json:"availability"`
	Skills       []string     `json:"skills"`
	Technologies []string     `json:"technologies"`
}

// EntityID implements domain.Entity.
func (e Employee) EntityID() int64 { return e.ID }

// LanguageLevel is a spoken language and the proficiency in it.
type LanguageLevel struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// Assignment is a project the employee is or was staffed on.
type Assignment struct {
	ProjectID   int64  `json:"projectId"`
	ProjectName string `json:"projectName"`
	Role        string `json:"role,omitempty"`
	Allocation  int    `json:"allocation,omitempty"`
}

// Detail is the full employee profile.
type Detail struct {
	Employee
	HireDate       *time.Time      `json:"hireDate,omitempty"`
	Languages      []LanguageLevel `json:"languages,omitempty"`
	Certifications []string        `json:"certifications,omitempty"`
	Assignments    []Assignment    `json:"assignments,omitempty"`
}

// Facets are the backend-aggregated counts returned next to a directory page.
type Facets struct {
	ByAvailability map[Availability]int `json:"byAvailability,omitempty"`
	BySeniority    map[Seniority]int    `json:"bySeniority,omitempty"`
}

// Draft is the in-progress employee creation form. It is autosaved as-is;
// Validate is only enforced when the draft is submitted.
type Draft struct {
	FirstName    string    `json:"firstName" validate:"required,max=80"`
	LastName     string    `json:"lastName" validate:"required,max=80"`
	Email        string    `json:"email" validate:"required,email"`
	Title        string    `json:"title" validate:"max=120"`
	Department   string    `json:"department" validate:"max=120"`
	Seniority    Seniority `json:"seniority" validate:"omitempty,oneof=JUNIOR MID SENIOR LEAD PRINCIPAL"`
	SkillIDs     []int64   `json:"skillIds,omitempty"`
	LanguageIDs  []int64   `json:"languageIds,omitempty"`
	Certificates []int64   `json:"certificationIds,omitempty"`
}
