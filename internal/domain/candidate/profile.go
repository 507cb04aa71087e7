// Package candidate holds the full profiles fetched for side-by-side
// comparison.
package candidate

// MaxCompared is the maximum number of candidates compared at once.
const MaxCompared = 3

// SkillLevel is a skill and its 1-5 proficiency.
type SkillLevel struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Profile is the full comparison profile of a candidate. IDs are opaque
// strings on the wire.
type Profile struct {
	ID                string       `json:"id"`
	FullName          string       `json:"fullName"`
	Title             string       `json:"title,omitempty"`
	Seniority         string       `json:"seniority,omitempty"`
	YearsOfExperience int          `json:"yearsOfExperience"`
	Availability      string       `json:"availability,omitempty"`
	Skills            []SkillLevel `json:"skills"`
	Technologies      []string     `json:"technologies"`
	Languages         []string     `json:"languages"`
	Certifications    []string     `json:"certifications"`
	MatchScore        *float64     `json:"matchScore,omitempty"`
}
