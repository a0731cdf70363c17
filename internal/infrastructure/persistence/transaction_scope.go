package persistence

import (
	"context"

	appfinance "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/finance"
	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	appprod "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/production"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/production"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope runs a unit of work inside one database transaction.
// If the function returns an error, the transaction is rolled back; otherwise it is committed.
// The same scope serves the finance, inventory and production services.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

func (s *GormTransactionScope) run(ctx context.Context, fn func(repos *gormTransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// Finance returns the scope as seen by the debt settlement engine.
func (s *GormTransactionScope) Finance() appfinance.TransactionScope {
	return financeScope{s}
}

// Inventory returns the scope as seen by the inventory transaction engine.
func (s *GormTransactionScope) Inventory() appinv.TransactionScope {
	return inventoryScope{s}
}

// Production returns the scope as seen by the production service.
func (s *GormTransactionScope) Production() appprod.TransactionScope {
	return productionScope{s}
}

type financeScope struct{ s *GormTransactionScope }

func (f financeScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return f.s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

type inventoryScope struct{ s *GormTransactionScope }

func (i inventoryScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return i.s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

type productionScope struct{ s *GormTransactionScope }

func (p productionScope) Execute(ctx context.Context, fn func(repos appprod.TransactionalRepositories) error) error {
	return p.s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

// gormTransactionalRepositories hands out repositories bound to the open transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) PartnerRepo() partner.PartnerRepository {
	return NewGormPartnerRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) DebtRecordRepo() finance.DebtRecordRepository {
	return NewGormDebtRecordRepository(r.tx)
}

func (r *gormTransactionalRepositories) DebtPaymentRepo() finance.DebtPaymentRepository {
	return NewGormDebtPaymentRepository(r.tx)
}

func (r *gormTransactionalRepositories) BankAccountRepo() finance.BankAccountRepository {
	return NewGormBankAccountRepository(r.tx)
}

func (r *gormTransactionalRepositories) Sequences() shared.SequenceGenerator {
	return NewGormSequenceGenerator(r.tx)
}

func (r *gormTransactionalRepositories) WarehouseRepo() inventory.WarehouseRepository {
	return NewGormWarehouseRepository(r.tx)
}

func (r *gormTransactionalRepositories) BalanceRepo() inventory.BalanceRepository {
	return NewGormBalanceRepository(r.tx)
}

func (r *gormTransactionalRepositories) TransactionRepo() inventory.TransactionRepository {
	return NewGormInventoryTransactionRepository(r.tx)
}

func (r *gormTransactionalRepositories) ItemRepo() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProductionOrderRepo() production.ProductionOrderRepository {
	return NewGormProductionOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) BOMRepo() production.BOMRepository {
	return NewGormBOMRepository(r.tx)
}

var (
	_ appfinance.TransactionScope          = financeScope{}
	_ appinv.TransactionScope              = inventoryScope{}
	_ appprod.TransactionScope             = productionScope{}
	_ appfinance.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ appprod.TransactionalRepositories    = (*gormTransactionalRepositories)(nil)
)
