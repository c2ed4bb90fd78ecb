package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/calculator/internal/domain/valueobject"
)

// LoanRequest is a pre-scoring request for loan offers.
type LoanRequest struct {
	Amount           decimal.Decimal
	Term             int
	FirstName        string
	LastName         string
	MiddleName       string
	Email            string
	Birthdate        Date
	InsuranceEnabled bool
	SalaryClient     bool
}

// EmploymentRecord describes the applicant's employment.
type EmploymentRecord struct {
	Status                valueobject.EmploymentStatus
	EmployerINN           string
	Salary                decimal.Decimal
	Position              valueobject.Position
	WorkExperienceTotal   int // months
	WorkExperienceCurrent int // months
}

// ScoringProfile is the full applicant profile used for credit scoring.
type ScoringProfile struct {
	LoanRequest

	Gender              valueobject.Gender
	PassportSeries      string
	PassportNumber      string
	PassportIssueDate   Date
	PassportIssueBranch string
	MaritalStatus       valueobject.MaritalStatus
	DependentAmount     int
	Employment          EmploymentRecord
	AccountNumber       string
}
