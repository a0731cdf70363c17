package finance

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
)

// TransactionScope runs a settlement unit of work.
// If fn returns an error every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to the ledger repositories within one database transaction.
// Row locks taken through the ForUpdate methods are held until the transaction ends.
type TransactionalRepositories interface {
	PartnerRepo() partner.PartnerRepository
	OrderRepo() trade.OrderRepository
	DebtRecordRepo() finance.DebtRecordRepository
	DebtPaymentRepo() finance.DebtPaymentRepository
	BankAccountRepo() finance.BankAccountRepository
	Sequences() shared.SequenceGenerator
}
