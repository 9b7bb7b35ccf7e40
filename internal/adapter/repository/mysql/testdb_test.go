package mysql

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	investmentDomain "microfinance-backoffice/internal/domain/investment"
	investorDomain "microfinance-backoffice/internal/domain/investor"
	loanDomain "microfinance-backoffice/internal/domain/loan"
	notificationDomain "microfinance-backoffice/internal/domain/notification"
	repaymentDomain "microfinance-backoffice/internal/domain/repayment"
	withdrawalDomain "microfinance-backoffice/internal/domain/withdrawal"
)

// openTestDB opens an in-memory sqlite DB and migrates the domain models.
// The schema uses plain varchar status columns, so the production models
// migrate cleanly on sqlite.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&investorDomain.Investor{},
		&investmentDomain.Investment{},
		&loanDomain.LoanApplication{},
		&repaymentDomain.LoanRepayment{},
		&withdrawalDomain.WithdrawalRequest{},
		&notificationDomain.Notification{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
