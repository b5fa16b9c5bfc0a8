package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a record with the same identity is already stored.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation matches every error raised when an input violates a domain rule.
	ErrValidation = errors.New("validation failed")
	// ErrCorruptRecord marks stored data that no longer passes domain validation.
	ErrCorruptRecord = errors.New("corrupt record")
)

var (
	ErrEmptyCustomerID    = validationError("CustomerId cannot be empty")
	ErrEmptyEmail         = validationError("Email cannot be empty")
	ErrInvalidEmail       = validationError("Invalid email format")
	ErrEmptyPhoneNumber   = validationError("Phone number cannot be empty")
	ErrInvalidPhoneNumber = validationError("Invalid phone number format")
	ErrEmptyStreet        = validationError("Street cannot be empty")
	ErrEmptyCity          = validationError("City cannot be empty")
	ErrEmptyPostalCode    = validationError("Postal code cannot be empty")
	ErrEmptyCountry       = validationError("Country cannot be empty")
	ErrNegativeAmount     = validationError("Money amount cannot be negative")
	ErrNonFiniteAmount    = validationError("Money amount must be a finite number")
	ErrAmountOutOfRange   = validationError("Money amount is out of range")
	ErrCurrencyMismatch   = validationError("Cannot operate on different currencies")
	ErrEmptyCurrency      = validationError("Money currency cannot be empty")
	ErrInvalidAmount      = validationError("Money amount must be a number")
	ErrEmptyFirstName     = validationError("First name cannot be empty")
	ErrEmptyLastName      = validationError("Last name cannot be empty")
	ErrNonPositiveCredit  = validationError("Credit amount must be positive")
)

// RuleError is a broken domain rule. It always matches ErrValidation.
type RuleError struct {
	msg string
}

func validationError(msg string) *RuleError {
	return &RuleError{msg: msg}
}

func (e *RuleError) Error() string {
	return e.msg
}

// Is reports ErrValidation as the kind of every rule error.
func (e *RuleError) Is(target error) bool {
	return target == ErrValidation
}
