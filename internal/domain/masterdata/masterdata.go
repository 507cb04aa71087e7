// Package masterdata holds the reference entities shared by employee and
// project records: technologies, roles, skills, certifications and languages.
package masterdata

// Technology is a tool, framework or platform employees and projects use.
type Technology struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"required,max=60"`
	Description string `json:"description,omitempty" validate:"max=500"`
	Active      bool   `json:"active"`
}

// EntityID implements domain.Entity.
func (t Technology) EntityID() int64 { return t.ID }

// Role is a job role an employee can hold on a project.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	Level       string `json:"level,omitempty" validate:"omitempty,oneof=JUNIOR MID SENIOR LEAD PRINCIPAL"`
}

// EntityID implements domain.Entity.
func (r Role) EntityID() int64 { return r.ID }

// Skill is a soft or technical competence.
type Skill struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"required,oneof=TECHNICAL SOFT DOMAIN"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// EntityID implements domain.Entity.
func (s Skill) EntityID() int64 { return s.ID }

// Certification is a professional certificate with an optional validity
// period (0 means it does not expire).
type Certification struct {
	ID             int64  `json:"id"`
	Name           string `json:"name" validate:"required,max=150"`
	Issuer         string `json:"issuer" validate:"required,max=100"`
	ValidityMonths int    `json:"validityMonths" validate:"gte=0,lte=120"`
	URL            string `json:"url,omitempty" validate:"omitempty,url"`
}

// EntityID implements domain.Entity.
func (c Certification) EntityID() int64 { return c.ID }

// Language is a spoken language identified by its ISO 639-1 code.
type Language struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=60"`
	Code string `json:"code" validate:"required,len=2,alpha"`
}

// EntityID implements domain.Entity.
func (l Language) EntityID() int64 { return l.ID }
