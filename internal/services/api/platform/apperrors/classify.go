package apperrors

import (
	"context"
	"errors"

	"github.com/pitchsideapp/pitchside/internal/services/admin"
	"github.com/pitchsideapp/pitchside/internal/services/directory"
	"github.com/pitchsideapp/pitchside/internal/services/identity"
	"github.com/pitchsideapp/pitchside/internal/services/requests"
	"github.com/pitchsideapp/pitchside/internal/services/shortlist"
)

// Classify maps service sentinel errors onto the transport taxonomy. Already
// classified errors pass through unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) && appErr != nil {
		return appErr
	}

	switch {
	case errors.Is(err, requests.ErrValidation),
		errors.Is(err, directory.ErrValidation),
		errors.Is(err, shortlist.ErrValidation),
		errors.Is(err, identity.ErrValidation),
		errors.Is(err, admin.ErrValidation):
		return Wrap(KindInvalid, err.Error(), err)
	case errors.Is(err, requests.ErrForbidden),
		errors.Is(err, directory.ErrForbidden),
		errors.Is(err, admin.ErrForbidden):
		return Wrap(KindForbidden, err.Error(), err)
	case errors.Is(err, requests.ErrNotFound),
		errors.Is(err, directory.ErrNotFound),
		errors.Is(err, identity.ErrNotFound),
		errors.Is(err, admin.ErrNotFound):
		return Wrap(KindNotFound, err.Error(), err)
	case errors.Is(err, requests.ErrInvalidTransition),
		errors.Is(err, requests.ErrAlreadyRequested),
		errors.Is(err, identity.ErrConflict):
		return Wrap(KindConflict, err.Error(), err)
	case errors.Is(err, identity.ErrTokenInvalid),
		errors.Is(err, identity.ErrTokenExpired):
		return Wrap(KindUnauthorized, err.Error(), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Wrap(KindInternal, "request canceled", err)
	default:
		return Wrap(KindInternal, "internal error", err)
	}
}
