package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRateUnavailable indicates that no exchange rate exists inside the conversion window.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrUpstreamUnavailable indicates that the exchange rate source could not be reached,
// kept failing after retries, or is short-circuited by the breaker.
var ErrUpstreamUnavailable = errors.New("exchange rate service unavailable")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError returns an error that matches ErrNotFound.
func NewNotFoundError(message string) error {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an error that matches ErrValidation.
func NewValidationError(message string) error {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// PurchaseNotFoundError is returned when a purchase id does not resolve to a stored purchase.
type PurchaseNotFoundError struct {
	PurchaseID string
}

func (e *PurchaseNotFoundError) Error() string {
	return fmt.Sprintf("purchase with ID '%s' was not found", e.PurchaseID)
}

func (e *PurchaseNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RateUnavailableError is returned when a purchase cannot be converted because no
// exchange rate was published within six months before its transaction date.
type RateUnavailableError struct {
	Currency     string
	PurchaseDate time.Time
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf(
		"the purchase cannot be converted to the target currency '%s': no exchange rate is available within 6 months prior to the purchase date (%s)",
		e.Currency, e.PurchaseDate.Format(time.DateOnly),
	)
}

func (e *RateUnavailableError) Is(target error) bool {
	return target == ErrRateUnavailable
}
