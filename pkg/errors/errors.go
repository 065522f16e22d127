package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNoNextOccurrence  = errors.New("one-time bill has no next occurrence")
	ErrUnknownFrequency  = errors.New("unknown bill frequency")
	ErrInvalidDayOfMonth = errors.New("custom day of month must be 1-31 or -1")
	ErrBillNotFound      = errors.New("bill not found")
	ErrBillAlreadyPaid   = errors.New("bill is already paid")
	ErrInvalidBillAmount = errors.New("invalid bill amount")
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
	ErrCodeInvalidOperation  = "INVALID_OPERATION"
	ErrCodeInvalidArgument   = "INVALID_ARGUMENT"
	ErrCodeBillNotFound      = "BILL_NOT_FOUND"
	ErrCodeBillAlreadyPaid   = "BILL_ALREADY_PAID"
	ErrCodeInvalidBillAmount = "INVALID_BILL_AMOUNT"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapNoNextOccurrence() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidOperation,
		"a one-time bill has no next due date; terminate the series instead",
		ErrNoNextOccurrence,
	)
}

func WrapUnknownFrequency(frequency string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidArgument,
		fmt.Sprintf("Frequency %q is not a recognized billing frequency", frequency),
		ErrUnknownFrequency,
	)
}

func WrapInvalidDayOfMonth(day int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidArgument,
		fmt.Sprintf("Custom day of month %d is outside 1-31 and is not -1", day),
		ErrInvalidDayOfMonth,
	)
}

func WrapBillNotFound(billID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBillNotFound,
		fmt.Sprintf("Bill with ID %s not found", billID),
		ErrBillNotFound,
	)
}

func WrapBillAlreadyPaid(billID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBillAlreadyPaid,
		fmt.Sprintf("Bill with ID %s is already marked paid", billID),
		ErrBillAlreadyPaid,
	)
}

func WrapInvalidBillAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidBillAmount,
		fmt.Sprintf("Invalid bill amount: %s", amount),
		ErrInvalidBillAmount,
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
		"Cache operation failed",
		err,
	)
}
