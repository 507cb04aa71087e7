package project

// Complexity is the frontend spelling of a project's delivery complexity.
type Complexity string

const (
	ComplexitySimple      Complexity = "SIMPLE"
	ComplexityModerate    Complexity = "MODERATE"
	ComplexityComplex     Complexity = "COMPLEX"
	ComplexityVeryComplex Complexity = "VERY_COMPLEX"

	// DefaultComplexity is used for missing or unrecognised backend values.
	DefaultComplexity = ComplexityModerate
)

// Status is the frontend spelling of a project's lifecycle state.
type Status string

const (
	StatusPlanning  Status = "PLANNING"
	StatusActive    Status = "ACTIVE"
	StatusOnHold    Status = "ON_HOLD"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"

	DefaultStatus = StatusPlanning
)

// Priority is the frontend spelling of a project's priority.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"

	DefaultPriority = PriorityMedium
)

// IsValid returns true if c is one of the defined constants.
func (c Complexity) IsValid() bool {
	switch c {
	case ComplexitySimple, ComplexityModerate, ComplexityComplex, ComplexityVeryComplex:
		return true
	default:
		return false
	}
}

// IsValid returns true if s is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsValid returns true if p is one of the defined constants.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}
