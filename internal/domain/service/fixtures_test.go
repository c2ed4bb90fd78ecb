package service_test

import (
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/calculator/internal/domain/model"
	"github.com/bibbank/calculator/internal/domain/valueobject"
)

var evaluationDate = model.NewDate(2024, time.June, 1)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// eligibleProfile is a 40-year-old married employed woman asking for
// 1,000,000 over 12 months without insurance or salary-client status.
func eligibleProfile() model.ScoringProfile {
	return model.ScoringProfile{
		LoanRequest: model.LoanRequest{
			Amount:    decimal.NewFromInt(1_000_000),
			Term:      12,
			FirstName: "Anna",
			LastName:  "Petrova",
			Email:     "anna.petrova@example.com",
			Birthdate: model.NewDate(1984, time.January, 15),
		},
		Gender:              valueobject.GenderFemale,
		PassportSeries:      "4510",
		PassportNumber:      "123456",
		PassportIssueDate:   model.NewDate(2010, time.March, 1),
		PassportIssueBranch: "Branch 12",
		MaritalStatus:       valueobject.MaritalMarried,
		DependentAmount:     1,
		Employment: model.EmploymentRecord{
			Status:                valueobject.EmploymentEmployed,
			EmployerINN:           "7707083893",
			Salary:                decimal.NewFromInt(50_000),
			Position:              valueobject.PositionWorker,
			WorkExperienceTotal:   120,
			WorkExperienceCurrent: 24,
		},
		AccountNumber: "40817810099910004312",
	}
}
