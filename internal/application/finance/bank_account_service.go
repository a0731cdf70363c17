package finance

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// BankAccountService manages company bank accounts. Balances only move through settlements.
type BankAccountService struct {
	repo finance.BankAccountRepository
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(repo finance.BankAccountRepository) *BankAccountService {
	return &BankAccountService{repo: repo}
}

// Create opens a bank account with its opening balance
func (s *BankAccountService) Create(ctx context.Context, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	account, err := finance.NewBankAccount(req.BranchID, req.AccountNumber, req.BankName, req.HolderName, req.OpeningBalance)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, account); err != nil {
		return nil, err
	}
	resp := ToBankAccountResponse(account)
	return &resp, nil
}

// GetByID returns one bank account
func (s *BankAccountService) GetByID(ctx context.Context, id uuid.UUID) (*BankAccountResponse, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBankAccountResponse(account)
	return &resp, nil
}

// List returns a page of bank accounts
func (s *BankAccountService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BankAccountResponse], error) {
	filter = filter.Normalize()
	accounts, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]BankAccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, ToBankAccountResponse(&accounts[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
