package finance

import (
	"context"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// DebtFilter narrows debt record listings
type DebtFilter struct {
	shared.Filter
	PartnerID *uuid.UUID
	DebtType  DebtType
	Status    DebtStatus
}

// DebtRecordRepository persists debt records
type DebtRecordRepository interface {
	// GetOrCreateForUpdate inserts seed unless a record with the same DebtKey exists
	// (insert-on-conflict-do-nothing), then returns the stored record under a row lock
	GetOrCreateForUpdate(ctx context.Context, seed *DebtRecord) (*DebtRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*DebtRecord, error)
	FindAll(ctx context.Context, filter DebtFilter) ([]DebtRecord, int64, error)
	Save(ctx context.Context, r *DebtRecord) error
}

// DebtPaymentRepository is the append-only payment ledger
type DebtPaymentRepository interface {
	Append(ctx context.Context, p *DebtPayment) error
	ListByDebtRecord(ctx context.Context, debtRecordID uuid.UUID) ([]DebtPayment, error)
	LastPaymentDate(ctx context.Context, partnerID uuid.UUID) (*time.Time, error)
}

// BankAccountRepository persists bank accounts
type BankAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*BankAccount, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]BankAccount, int64, error)
	Save(ctx context.Context, a *BankAccount) error
}
