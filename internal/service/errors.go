package service

import "errors"

// Error taxonomy shared by all services. Handlers translate these to HTTP
// status codes at the boundary; nothing below the handlers knows about HTTP.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// DeleteOutcome is a tagged delete result, so callers can tell "no such
// recipe" apart from "not yours" instead of decoding an affected-row count.
type DeleteOutcome int

const (
	DeleteOutcomeDeleted DeleteOutcome = iota
	DeleteOutcomeNotFound
	DeleteOutcomeForbidden
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteOutcomeDeleted:
		return "deleted"
	case DeleteOutcomeNotFound:
		return "not found"
	case DeleteOutcomeForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}
