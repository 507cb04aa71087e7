// Package masterdata implements the anti-corruption layer translators for
// the master-data resources (technologies, roles, skills, certifications,
// languages).
package masterdata

// TechnologyDTO matches the backend Technology schema.
type TechnologyDTO struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// RoleDTO matches the backend Role schema.
type RoleDTO struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Level       string `json:"seniorityLevel,omitempty"`
}

// SkillDTO matches the backend Skill schema. The backend calls the category
// "type".
type SkillDTO struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// CertificationDTO matches the backend Certification schema.
type CertificationDTO struct {
	ID                   int64  `json:"id,omitempty"`
	Name                 string `json:"name"`
	IssuingOrganization  string `json:"issuingOrganization"`
	ValidityPeriodMonths *int   `json:"validityPeriodMonths,omitempty"`
	URL                  string `json:"url,omitempty"`
}

// LanguageDTO matches the backend Language schema.
type LanguageDTO struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	ISOCode string `json:"isoCode"`
}
