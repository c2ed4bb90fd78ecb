package valueobject

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// EmploymentStatus – immutable value object
// ---------------------------------------------------------------------------

// EmploymentStatus describes how the applicant earns income.
type EmploymentStatus struct {
	value string
}

const (
	employmentUnemployed    = "UNEMPLOYED"
	employmentSelfEmployed  = "SELF_EMPLOYED"
	employmentBusinessOwner = "BUSINESS_OWNER"
	employmentEmployed      = "EMPLOYED"
)

var (
	EmploymentUnemployed    = EmploymentStatus{value: employmentUnemployed}
	EmploymentSelfEmployed  = EmploymentStatus{value: employmentSelfEmployed}
	EmploymentBusinessOwner = EmploymentStatus{value: employmentBusinessOwner}
	EmploymentEmployed      = EmploymentStatus{value: employmentEmployed}
)

var validEmploymentStatuses = map[string]EmploymentStatus{
	employmentUnemployed:    EmploymentUnemployed,
	employmentSelfEmployed:  EmploymentSelfEmployed,
	employmentBusinessOwner: EmploymentBusinessOwner,
	employmentEmployed:      EmploymentEmployed,
}

// NewEmploymentStatus creates an EmploymentStatus from a raw string.
func NewEmploymentStatus(s string) (EmploymentStatus, error) {
	v, ok := validEmploymentStatuses[s]
	if !ok {
		return EmploymentStatus{}, fmt.Errorf("invalid employment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s EmploymentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s EmploymentStatus) IsZero() bool { return s.value == "" }

// ---------------------------------------------------------------------------
// Position – immutable value object
// ---------------------------------------------------------------------------

// Position is the applicant's seniority at the current employer.
type Position struct {
	value string
}

const (
	positionWorker     = "WORKER"
	positionMidManager = "MID_MANAGER"
	positionTopManager = "TOP_MANAGER"
	positionOwner      = "OWNER"
)

var (
	PositionWorker     = Position{value: positionWorker}
	PositionMidManager = Position{value: positionMidManager}
	PositionTopManager = Position{value: positionTopManager}
	PositionOwner      = Position{value: positionOwner}
)

var validPositions = map[string]Position{
	positionWorker:     PositionWorker,
	positionMidManager: PositionMidManager,
	positionTopManager: PositionTopManager,
	positionOwner:      PositionOwner,
}

// NewPosition creates a Position from a raw string.
func NewPosition(s string) (Position, error) {
	v, ok := validPositions[s]
	if !ok {
		return Position{}, fmt.Errorf("invalid position: %q", s)
	}
	return v, nil
}

// String returns the string representation of the position.
func (p Position) String() string { return p.value }

// IsZero returns true if the position has not been initialised.
func (p Position) IsZero() bool { return p.value == "" }

// ---------------------------------------------------------------------------
// Gender – immutable value object
// ---------------------------------------------------------------------------

// Gender as declared by the applicant.
type Gender struct {
	value string
}

const (
	genderMale      = "MALE"
	genderFemale    = "FEMALE"
	genderNonBinary = "NON_BINARY"
)

var (
	GenderMale      = Gender{value: genderMale}
	GenderFemale    = Gender{value: genderFemale}
	GenderNonBinary = Gender{value: genderNonBinary}
)

var validGenders = map[string]Gender{
	genderMale:      GenderMale,
	genderFemale:    GenderFemale,
	genderNonBinary: GenderNonBinary,
}

// NewGender creates a Gender from a raw string.
func NewGender(s string) (Gender, error) {
	v, ok := validGenders[s]
	if !ok {
		return Gender{}, fmt.Errorf("invalid gender: %q", s)
	}
	return v, nil
}

// String returns the string representation of the gender.
func (g Gender) String() string { return g.value }

// IsZero returns true if the gender has not been initialised.
func (g Gender) IsZero() bool { return g.value == "" }

// ---------------------------------------------------------------------------
// MaritalStatus – immutable value object
// ---------------------------------------------------------------------------

// MaritalStatus of the applicant.
type MaritalStatus struct {
	value string
}

const (
	maritalMarried      = "MARRIED"
	maritalDivorced     = "DIVORCED"
	maritalSingle       = "SINGLE"
	maritalWidowWidower = "WIDOW_WIDOWER"
)

var (
	MaritalMarried      = MaritalStatus{value: maritalMarried}
	MaritalDivorced     = MaritalStatus{value: maritalDivorced}
	MaritalSingle       = MaritalStatus{value: maritalSingle}
	MaritalWidowWidower = MaritalStatus{value: maritalWidowWidower}
)

var validMaritalStatuses = map[string]MaritalStatus{
	maritalMarried:      MaritalMarried,
	maritalDivorced:     MaritalDivorced,
	maritalSingle:       MaritalSingle,
	maritalWidowWidower: MaritalWidowWidower,
}

// NewMaritalStatus creates a MaritalStatus from a raw string.
func NewMaritalStatus(s string) (MaritalStatus, error) {
	v, ok := validMaritalStatuses[s]
	if !ok {
		return MaritalStatus{}, fmt.Errorf("invalid marital status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the marital status.
func (m MaritalStatus) String() string { return m.value }

// IsZero returns true if the marital status has not been initialised.
func (m MaritalStatus) IsZero() bool { return m.value == "" }
