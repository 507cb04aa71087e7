package masterdata

import (
	"strings"

	"github.com/pythia-plus/console/internal/adapters/clients/acl"
	dm "github.com/pythia-plus/console/internal/domain/masterdata"
)

// Codecs for acl.NewResourceClient.
var (
	TechnologyCodec    = acl.Codec[dm.Technology, TechnologyDTO]{ToDomain: ToDomainTechnology, FromDomain: ToTechnologyDTO}
	RoleCodec          = acl.Codec[dm.Role, RoleDTO]{ToDomain: ToDomainRole, FromDomain: ToRoleDTO}
	SkillCodec         = acl.Codec[dm.Skill, SkillDTO]{ToDomain: ToDomainSkill, FromDomain: ToSkillDTO}
	CertificationCodec = acl.Codec[dm.Certification, CertificationDTO]{ToDomain: ToDomainCertification, FromDomain: ToCertificationDTO}
	LanguageCodec      = acl.Codec[dm.Language, LanguageDTO]{ToDomain: ToDomainLanguage, FromDomain: ToLanguageDTO}
)

// ToDomainTechnology converts a TechnologyDTO. A missing isActive means
// active.
func ToDomainTechnology(dto TechnologyDTO) dm.Technology {
	active := true
	if dto.IsActive != nil {
		active = *dto.IsActive
	}
	return dm.Technology{
		ID:          dto.ID,
		Name:        dto.Name,
		Category:    dto.Category,
		Description: dto.Description,
		Active:      active,
	}
}

// ToTechnologyDTO converts a domain Technology for create/update.
func ToTechnologyDTO(t *dm.Technology) TechnologyDTO {
	active := t.Active
	return TechnologyDTO{
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		IsActive:    &active,
	}
}

func ToDomainRole(dto RoleDTO) dm.Role {
	return dm.Role{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Level:       acl.NormalizeEnum(dto.Level),
	}
}

func ToRoleDTO(r *dm.Role) RoleDTO {
	return RoleDTO{Name: r.Name, Description: r.Description, Level: r.Level}
}

func ToDomainSkill(dto SkillDTO) dm.Skill {
	return dm.Skill{
		ID:          dto.ID,
		Name:        dto.Name,
		Category:    acl.NormalizeEnum(dto.Type),
		Description: dto.Description,
	}
}

func ToSkillDTO(s *dm.Skill) SkillDTO {
	return SkillDTO{Name: s.Name, Type: s.Category, Description: s.Description}
}

// ToDomainCertification converts a CertificationDTO. A missing validity
// period means the certificate does not expire.
func ToDomainCertification(dto CertificationDTO) dm.Certification {
	months := 0
	if dto.ValidityPeriodMonths != nil {
		months = *dto.ValidityPeriodMonths
	}
	return dm.Certification{
		ID:             dto.ID,
		Name:           dto.Name,
		Issuer:         dto.IssuingOrganization,
		ValidityMonths: months,
		URL:            dto.URL,
	}
}

func ToCertificationDTO(c *dm.Certification) CertificationDTO {
	dto := CertificationDTO{Name: c.Name, IssuingOrganization: c.Issuer, URL: c.URL}
	if c.ValidityMonths > 0 {
		months := c.ValidityMonths
		dto.ValidityPeriodMonths = &months
	}
	return dto
}

func ToDomainLanguage(dto LanguageDTO) dm.Language {
	return dm.Language{ID: dto.ID, Name: dto.Name, Code: strings.ToLower(dto.ISOCode)}
}

func ToLanguageDTO(l *dm.Language) LanguageDTO {
	return LanguageDTO{Name: l.Name, ISOCode: strings.ToLower(l.Code)}
}
