package rest

import (
	"errors"
	"net/http"
	"sedulurTani/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// statusFromError maps domain error kinds to HTTP statuses. Every kind keeps
// its identity all the way to the client; nothing collapses into a bare 500
// except genuinely unexpected storage failures.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAddressNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrCheckoutNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrValidation),
		domain.IsInsufficientStock(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
