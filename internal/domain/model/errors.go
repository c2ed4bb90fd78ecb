package model

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidTerm     = errors.New("term must be a positive number of months")
	ErrNonPositiveRate = errors.New("monthly rate must be positive")
)

// ValidationError reports the first input field that violated a constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RefusalCode identifies which eligibility rule declined the applicant.
type RefusalCode string

const (
	RefusalUnemployed                    RefusalCode = "UNEMPLOYED"
	RefusalAmountExceedsSalary           RefusalCode = "AMOUNT_EXCEEDS_SALARY"
	RefusalAgeOutOfRange                 RefusalCode = "AGE_OUT_OF_RANGE"
	RefusalNonBinaryGender               RefusalCode = "NON_BINARY_GENDER"
	RefusalInsufficientTotalExperience   RefusalCode = "INSUFFICIENT_TOTAL_EXPERIENCE"
	RefusalInsufficientCurrentExperience RefusalCode = "INSUFFICIENT_CURRENT_EXPERIENCE"
)

// RefusalError is returned when an applicant fails an eligibility rule.
type RefusalError struct {
	Code   RefusalCode
	Reason string
}

func (e *RefusalError) Error() string { return e.Reason }

// ComputationError wraps an arithmetic failure in the payment math.
type ComputationError struct {
	Op  string
	Err error
}

func (e *ComputationError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *ComputationError) Unwrap() error { return e.Err }
