package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound        = errors.New("not found")
	ErrUnavailable     = errors.New("book not available")
	ErrAlreadyReturned = errors.New("reservation already returned")
	ErrInvalidArgument = errors.New("invalid argument")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeBookNotFound        = "BOOK_NOT_FOUND"
	ErrCodeReservationNotFound = "RESERVATION_NOT_FOUND"
	ErrCodeBookUnavailable     = "BOOK_UNAVAILABLE"
	ErrCodeAlreadyReturned     = "RESERVATION_ALREADY_RETURNED"
	ErrCodeInvalidArgument     = "INVALID_ARGUMENT"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
)

func WrapUserNotFound(userID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeUserNotFound,
		fmt.Sprintf("User with ID %d not found", userID),
		ErrNotFound,
	)
}

func WrapBookNotFound(externalID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeBookNotFound,
		fmt.Sprintf("Book with external ID %d not found", externalID),
		ErrNotFound,
	)
}

func WrapReservationNotFound(reservationID string) *BusinessError {
	return NewBusinessError(
		ErrCodeReservationNotFound,
		fmt.Sprintf("Reservation with ID %s not found", reservationID),
		ErrNotFound,
	)
}

func WrapBookUnavailable(title string) *BusinessError {
	return NewBusinessError(
		ErrCodeBookUnavailable,
		fmt.Sprintf("Book '%s' has no available copies", title),
		ErrUnavailable,
	)
}

func WrapAlreadyReturned(reservationID string) *BusinessError {
	return NewBusinessError(
		ErrCodeAlreadyReturned,
		fmt.Sprintf("Reservation with ID %s was already returned", reservationID),
		ErrAlreadyReturned,
	)
}

func WrapInvalidArgument(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidArgument,
		message,
		ErrInvalidArgument,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrAlreadyReturned):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the business error code carried by err, if any.
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
