package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// AppError carries an HTTP-ish status code and a message alongside an optional cause.
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

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an error that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an error that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewDuplicateError creates an error that matches ErrDuplicate.
func NewDuplicateError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// UnknownCurrencyError is returned when a code is not in the currency registry.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency code '%s'", e.Code)
}

func (e *UnknownCurrencyError) Unwrap() error { return ErrValidation }

// IncompleteRateTableError lists the registered currencies a rate table is missing.
type IncompleteRateTableError struct {
	Missing []string
}

func (e *IncompleteRateTableError) Error() string {
	return fmt.Sprintf("rate table is missing rates for: %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteRateTableError) Unwrap() error { return ErrValidation }

// InvalidRateError is returned for a rate that is zero, negative or non-finite.
type InvalidRateError struct {
	Code string
	Rate string
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid rate %s for currency '%s': must be a finite positive number", e.Rate, e.Code)
}

func (e *InvalidRateError) Unwrap() error { return ErrValidation }

// DuplicateTransactionIDError is returned when a ledger already holds a transaction with the same ID.
type DuplicateTransactionIDError struct {
	TransactionID string
}

func (e *DuplicateTransactionIDError) Error() string {
	return fmt.Sprintf("transaction with ID '%s' already exists in ledger", e.TransactionID)
}

func (e *DuplicateTransactionIDError) Unwrap() error { return ErrDuplicate }
