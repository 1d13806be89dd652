package transport

import (
	"errors"
	"net/http"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

const unexpectedErrorMessage = "Unexpected error"

// UserError is an error whose message is safe to return to the client.
type UserError struct {
	Status  int
	Message string
}

// NewUserError returns a 400 UserError.
func NewUserError(message string) *UserError {
	return &UserError{Status: http.StatusBadRequest, Message: message}
}

func (e *UserError) Error() string {
	return e.Message
}

// asUserError maps resolution errors to client errors.
func asUserError(err error) (*UserError, bool) {
	var ue *UserError
	switch {
	case errors.As(err, &ue):
		return ue, true
	case errors.Is(err, model.ErrInvalidAddress):
		return NewUserError("Invalid ETH address"), true
	case errors.Is(err, model.ErrInvalidName):
		return NewUserError("Invalid domain name"), true
	default:
		return nil, false
	}
}
