// Package apperr turns REST failures into the user-facing messages the
// console renders inline.
package apperr

import (
	"errors"
	"net/http"

	"github.com/pythia-plus/console/internal/domain"
)

// User-facing messages shared by every resource.
const (
	MsgConnection = "Connection error: please check your connection and try again"
	MsgServer     = "Server error: please try again later"
	MsgInvalid    = "Invalid data: please check your input"
	MsgContract   = "Unexpected response from the server"
	MsgGeneric    = "An unexpected error occurred"

	DefaultNotFound  = "Resource not found"
	DefaultDuplicate = "Resource already exists"
)

// Messages holds the resource-specific texts.
type Messages struct {
	NotFound  string
	Duplicate string
}

// Describe maps err to its user-facing message:
//
//	no response (status 0) -> connection error
//	404                    -> m.NotFound
//	409                    -> m.Duplicate
//	400 / client checks    -> server message, else "check your input"
//	>= 500                 -> server error
//	anything else          -> server message, else generic
func Describe(err error, m Messages) string {
	serverMsg := domain.ServerMessage(err)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrConnection):
		return MsgConnection
	case errors.Is(err, domain.ErrNotFound):
		return orDefault(m.NotFound, DefaultNotFound)
	case errors.Is(err, domain.ErrConflict):
		return orDefault(m.Duplicate, DefaultDuplicate)
	case errors.Is(err, domain.ErrValidation):
		return orDefault(serverMsg, MsgInvalid)
	case errors.Is(err, domain.ErrServer), domain.StatusOf(err) >= http.StatusInternalServerError:
		return MsgServer
	case errors.Is(err, domain.ErrContract):
		return MsgContract
	default:
		return orDefault(serverMsg, MsgGeneric)
	}
}

// Wrap returns err as a *domain.UserError carrying Describe's message.
func Wrap(err error, m Messages) error {
	if err == nil {
		return nil
	}
	return &domain.UserError{Message: Describe(err, m), Err: err}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
