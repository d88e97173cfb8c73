package model

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("event not found")

type ValidationCode string

const (
	PriceRequired    ValidationCode = "PriceRequired"
	PriceNotAllowed  ValidationCode = "PriceNotAllowed"
	InvalidURL       ValidationCode = "InvalidUrl"
	InvalidLength    ValidationCode = "InvalidLength"
	InvalidTime      ValidationCode = "InvalidTime"
	InvalidDate      ValidationCode = "InvalidDate"
	InvalidStartDate ValidationCode = "InvalidStartDate"
	InvalidEndDate   ValidationCode = "InvalidEndDate"
	InvalidPrice     ValidationCode = "InvalidPrice"
	MissingField     ValidationCode = "MissingField"
)

// ValidationError reports the first rule an input violated.
type ValidationError struct {
	Code    ValidationCode `json:"code"`
	Field   string         `json:"field"`
	Message string         `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

func newValidationError(code ValidationCode, field, message string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: message}
}

// IsValidationCode reports whether err is a ValidationError carrying code.
func IsValidationCode(err error, code ValidationCode) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Code == code
}
