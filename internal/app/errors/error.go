package errors

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindBadRequest          Kind = "BAD_REQUEST"
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindForbidden           Kind = "FORBIDDEN"
	KindNotFound            Kind = "NOT_FOUND"
	KindConflict            Kind = "CONFLICT"
	KindAlreadyRedeemed     Kind = "ALREADY_REDEEMED"
	KindInsufficientBalance Kind = "INSUFFICIENT_BALANCE"
	KindTooManyRequests     Kind = "TOO_MANY_REQUESTS"
	KindInternal            Kind = "INTERNAL"
)

type AppError struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(kind Kind, statusCode int, message string) *AppError {
	return &AppError{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(KindBadRequest, http.StatusBadRequest, message)
}

func NewUnauthorizedError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(KindUnauthorized, http.StatusUnauthorized, message[0])
	}
	return NewAppError(KindUnauthorized, http.StatusUnauthorized, "Unauthorized")
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(KindForbidden, http.StatusForbidden, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, http.StatusNotFound, message)
}

func NewConflictError(message string) *AppError {
	return NewAppError(KindConflict, http.StatusConflict, message)
}

// NewAlreadyRedeemedError is returned to every redeemer that loses the race for a coupon.
func NewAlreadyRedeemedError(token string) *AppError {
	return NewAppError(KindAlreadyRedeemed, http.StatusConflict, fmt.Sprintf("Coupon %s already redeemed", token))
}

func NewInsufficientBalanceError(balance, requested int64) *AppError {
	return NewAppError(KindInsufficientBalance, http.StatusBadRequest, fmt.Sprintf("Insufficient balance: %d available, %d requested", balance, requested))
}

func NewTooManyRequestsError(message string, limit int, reset int64) *AppError {
	return NewAppError(KindTooManyRequests, http.StatusTooManyRequests, fmt.Sprintf("%s (limit %d, resets at %d)", message, limit, reset))
}

func NewInternalServerError(originalError error, message string) *AppError {
	if originalError != nil {
		logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	}
	return NewAppError(KindInternal, http.StatusInternalServerError, message)
}

// IsKind reports whether err wraps an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// AsAppError passes AppErrors through untouched and wraps anything else as Internal.
func AsAppError(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalServerError(err, message)
}
