package finance

import (
	"strings"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccount is a company cash account. Balance changes additively with settlements
// and may go negative: overdraft handling belongs to the bank, not this ledger.
type BankAccount struct {
	shared.BaseAggregateRoot
	shared.BranchScoped
	AccountNumber string
	BankName      string
	HolderName    string
	Balance       decimal.Decimal
	IsActive      bool
}

// NewBankAccount creates an active bank account
func NewBankAccount(branchID uuid.UUID, accountNumber, bankName, holder string, opening decimal.Decimal) (*BankAccount, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" || len(accountNumber) > 50 {
		return nil, shared.NewValidationError("INVALID_ACCOUNT_NUMBER", "account number must be 1-50 characters")
	}
	if strings.TrimSpace(bankName) == "" {
		return nil, shared.NewValidationError("INVALID_BANK_NAME", "bank name is required")
	}
	return &BankAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchScoped:      shared.BranchScoped{BranchID: branchID},
		AccountNumber:     accountNumber,
		BankName:          strings.TrimSpace(bankName),
		HolderName:        strings.TrimSpace(holder),
		Balance:           opening,
		IsActive:          true,
	}, nil
}

// Adjust applies a signed delta to the balance
func (a *BankAccount) Adjust(delta decimal.Decimal) error {
	if !a.IsActive {
		return shared.NewConflictError("BANK_ACCOUNT_INACTIVE", "bank account %s is inactive", a.AccountNumber)
	}
	a.Balance = a.Balance.Add(delta)
	a.IncrementVersion()
	return nil
}
