// Package domain contains the types shared by every console feature: the
// error taxonomy, the Entity constraint used by the generic list services,
// and validation types. Entity-specific types live in sub-packages
// (domain/masterdata, domain/project, domain/employee, domain/candidate,
// domain/pagination).
package domain
