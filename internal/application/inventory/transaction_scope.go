package inventory

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
)

// TransactionScope provides transactional access to inventory repositories.
// When fn returns an error the transaction is rolled back and no balance, header or line survives.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all inventory repositories within a transaction.
// All repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	WarehouseRepo() inventory.WarehouseRepository
	BalanceRepo() inventory.BalanceRepository
	TransactionRepo() inventory.TransactionRepository
	ItemRepo() catalog.ItemRepository
	Sequences() shared.SequenceGenerator
}
