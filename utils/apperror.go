package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared by the service layer. Handlers translate these into
// HTTP statuses without leaking internals.
const (
	CodeValidation   = "validation"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "notFound"
	CodeConflict     = "conflict"
	CodePayment      = "paymentProvider"
	CodeInternal     = "internal"
)

// ServiceError is a typed failure raised by the service layer.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewServiceError(code, msg string) error {
	return &ServiceError{Code: code, Message: msg}
}

func ValidationError(msg string) error   { return NewServiceError(CodeValidation, msg) }
func UnauthorizedError(msg string) error { return NewServiceError(CodeUnauthorized, msg) }
func ForbiddenError(msg string) error    { return NewServiceError(CodeForbidden, msg) }
func NotFoundError(msg string) error     { return NewServiceError(CodeNotFound, msg) }
func ConflictError(msg string) error     { return NewServiceError(CodeConflict, msg) }
func PaymentError(msg string) error      { return NewServiceError(CodePayment, msg) }

// ErrorCode extracts the service error code, defaulting to internal.
func ErrorCode(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return CodeInternal
}

// HTTPStatus maps a service error to the status code reported to clients.
func HTTPStatus(err error) int {
	switch ErrorCode(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodePayment:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
