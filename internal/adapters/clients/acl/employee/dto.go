// Package employee implements the anti-corruption layer for the backend's
// employee directory.
package employee

// Collection is the item field of the employee list envelope.
const Collection = "employees"

// EmployeeDTO matches the backend employee list row.
type EmployeeDTO struct {
	ID                 int64    `json:"id"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	Email              string   `json:"email"`
	JobTitle           string   `json:"jobTitle"`
	DepartmentName     string   `json:"departmentName"`
	Location           string   `json:"location"`
	SeniorityLevel     string   `json:"seniorityLevel"`
	AvailabilityStatus string   `json:"availabilityStatus"`
	SkillNames         []string `json:"skillNames"`
	TechnologyNames    []string `json:"technologyNames"`
}

// LanguageDTO is one entry of the detail's languages array.
type LanguageDTO struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// AssignmentDTO is one entry of the detail's projectAssignments array.
type AssignmentDTO struct {
	ProjectID            int64  `json:"projectId"`
	ProjectName          string `json:"projectName"`
	RoleName             string `json:"roleName"`
	AllocationPercentage int    `json:"allocationPercentage"`
}

// EmployeeDetailDTO matches GET /employees/{id}.
type EmployeeDetailDTO struct {
	EmployeeDTO
	HireDate           string          `json:"hireDate"`
	Languages          []LanguageDTO   `json:"languages"`
	CertificationNames []string        `json:"certificationNames"`
	ProjectAssignments []AssignmentDTO `json:"projectAssignments"`
}

// AnalyticsDTO is the optional analytics block of the list envelope.
type AnalyticsDTO struct {
	AvailabilityDistribution map[string]int `json:"availabilityDistribution"`
	SeniorityDistribution    map[string]int `json:"seniorityDistribution"`
}
