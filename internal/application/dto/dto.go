package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/calculator/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// LoanOfferRequest carries the pre-scoring data for the four loan offers.
type LoanOfferRequest struct {
	Amount             decimal.Decimal `json:"amount" validate:"required,minamount,maxamount"`
	Term               int             `json:"term" validate:"required,minterm,maxterm"`
	FirstName          string          `json:"firstName" validate:"required,min=2,max=30"`
	LastName           string          `json:"lastName" validate:"required,min=2,max=30"`
	MiddleName         string          `json:"middleName,omitempty" validate:"omitempty,min=2,max=30"`
	Email              string          `json:"email,omitempty" validate:"omitempty,email"`
	Birthdate          model.Date      `json:"birthdate" validate:"required,notfuture"`
	IsInsuranceEnabled bool            `json:"isInsuranceEnabled"`
	IsSalaryClient     bool            `json:"isSalaryClient"`
}

// EmploymentRequest describes the applicant's employment.
type EmploymentRequest struct {
	EmploymentStatus      string          `json:"employmentStatus" validate:"required,oneof=UNEMPLOYED SELF_EMPLOYED BUSINESS_OWNER EMPLOYED"`
	EmployerINN           string          `json:"employerINN,omitempty" validate:"omitempty,digits"`
	Salary                decimal.Decimal `json:"salary" validate:"required,gt=0"`
	Position              string          `json:"position" validate:"required,oneof=WORKER MID_MANAGER TOP_MANAGER OWNER"`
	WorkExperienceTotal   int             `json:"workExperienceTotal" validate:"gte=0"`
	WorkExperienceCurrent int             `json:"workExperienceCurrent" validate:"gte=0"`
}

// ScoringDataRequest carries the full applicant profile for credit scoring.
type ScoringDataRequest struct {
	Amount              decimal.Decimal    `json:"amount" validate:"required,minamount,maxamount"`
	Term                int                `json:"term" validate:"required,minterm,maxterm"`
	FirstName           string             `json:"firstName" validate:"required,min=2,max=30"`
	LastName            string             `json:"lastName" validate:"required,min=2,max=30"`
	MiddleName          string             `json:"middleName,omitempty" validate:"omitempty,min=2,max=30"`
	Gender              string             `json:"gender" validate:"required,oneof=MALE FEMALE NON_BINARY"`
	Birthdate           model.Date         `json:"birthdate" validate:"required,notfuture"`
	PassportSeries      string             `json:"passportSeries" validate:"required,len=4,digits"`
	PassportNumber      string             `json:"passportNumber" validate:"required,len=6,digits"`
	PassportIssueDate   model.Date         `json:"passportIssueDate" validate:"omitempty,notfuture"`
	PassportIssueBranch string             `json:"passportIssueBranch,omitempty"`
	MaritalStatus       string             `json:"maritalStatus" validate:"required,oneof=MARRIED DIVORCED SINGLE WIDOW_WIDOWER"`
	DependentAmount     int                `json:"dependentAmount" validate:"gte=0"`
	Employment          *EmploymentRequest `json:"employment" validate:"required"`
	AccountNumber       string             `json:"accountNumber,omitempty"`
	IsInsuranceEnabled  bool               `json:"isInsuranceEnabled"`
	IsSalaryClient      bool               `json:"isSalaryClient"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanOfferResponse is the external representation of one loan offer.
type LoanOfferResponse struct {
	RequestedAmount    decimal.Decimal `json:"requestedAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	Term               int             `json:"term"`
	MonthlyPayment     decimal.Decimal `json:"monthlyPayment"`
	Rate               decimal.Decimal `json:"rate"`
	IsInsuranceEnabled bool            `json:"isInsuranceEnabled"`
	IsSalaryClient     bool            `json:"isSalaryClient"`
}

// PaymentScheduleEntryResponse is one installment of the repayment schedule.
type PaymentScheduleEntryResponse struct {
	Number          int             `json:"number"`
	Date            model.Date      `json:"date"`
	TotalPayment    decimal.Decimal `json:"totalPayment"`
	InterestPayment decimal.Decimal `json:"interestPayment"`
	DebtPayment     decimal.Decimal `json:"debtPayment"`
	RemainingDebt   decimal.Decimal `json:"remainingDebt"`
}

// CreditResponse is the external representation of a scored credit.
type CreditResponse struct {
	Amount             decimal.Decimal                `json:"amount"`
	Term               int                            `json:"term"`
	MonthlyPayment     decimal.Decimal                `json:"monthlyPayment"`
	Rate               decimal.Decimal                `json:"rate"`
	PSK                decimal.Decimal                `json:"psk"`
	IsInsuranceEnabled bool                           `json:"isInsuranceEnabled"`
	IsSalaryClient     bool                           `json:"isSalaryClient"`
	PaymentSchedule    []PaymentScheduleEntryResponse `json:"paymentSchedule"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
