package testutil

import (
	"context"
	"sort"
	"testing"
	"time"

	appfinance "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// TestBranchID is the branch every fixture belongs to
var TestBranchID = NewTestUUID("test-branch")

// VND is shorthand for a whole-dong amount
func VND(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

// SeedPartner stores a customer or supplier with an opening debt
func (s *MemStore) SeedPartner(t *testing.T, pt partner.PartnerType, code string, openingDebt decimal.Decimal) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner(TestBranchID, pt, code, "Đối tác "+code, openingDebt)
	require.NoError(t, err)
	require.NoError(t, s.PartnerRepo().Save(context.Background(), p))
	return p
}

// SeedOrder registers an order worth amount for p the way the order service does,
// raising the partner's debt. createdAt fixes the FIFO position.
func (s *MemStore) SeedOrder(t *testing.T, p *partner.Partner, amount decimal.Decimal, createdAt time.Time) *trade.Order {
	t.Helper()
	ctx := context.Background()
	dir, err := finance.DirectionFor(p.Type)
	require.NoError(t, err)

	line, err := trade.NewOrderLine(catalog.ProductRef(uuid.New()), decimal.NewFromInt(1), amount)
	require.NoError(t, err)

	var order *trade.Order
	err = s.FinanceScope().Execute(ctx, func(repos appfinance.TransactionalRepositories) error {
		code, err := shared.NextDocumentCode(ctx, repos.Sequences(), dir.OrderKind.CodePrefix(), createdAt)
		if err != nil {
			return err
		}
		order, err = trade.NewOrder(dir.OrderKind, code, p.ID, []trade.OrderLine{line}, decimal.Zero, TestUserID())
		if err != nil {
			return err
		}
		order.CreatedAt = createdAt
		order.OrderDate = createdAt
		return appfinance.RegisterOrderDebt(ctx, repos, order)
	})
	require.NoError(t, err)
	return order
}

// SeedBankAccount stores a bank account with an opening balance
func (s *MemStore) SeedBankAccount(t *testing.T, number string, balance decimal.Decimal) *finance.BankAccount {
	t.Helper()
	a, err := finance.NewBankAccount(TestBranchID, number, "Vietcombank", "Công ty Thiên Phước", balance)
	require.NoError(t, err)
	require.NoError(t, s.BankAccountRepo().Save(context.Background(), a))
	return a
}

// SeedWarehouse stores an active warehouse
func (s *MemStore) SeedWarehouse(t *testing.T, code string, wt inventory.WarehouseType) *inventory.Warehouse {
	t.Helper()
	w, err := inventory.NewWarehouse(TestBranchID, code, "Kho "+code, wt)
	require.NoError(t, err)
	require.NoError(t, s.WarehouseRepo().Save(context.Background(), w))
	return w
}

// SeedMaterial stores a raw material
func (s *MemStore) SeedMaterial(t *testing.T, code, unit string) *catalog.Material {
	t.Helper()
	m, err := catalog.NewMaterial(code, "NVL "+code, unit)
	require.NoError(t, err)
	require.NoError(t, s.ItemRepo().SaveMaterial(context.Background(), m))
	return m
}

// SeedProduct stores a finished product
func (s *MemStore) SeedProduct(t *testing.T, code string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(code, "Sản phẩm "+code, "cái")
	require.NoError(t, err)
	require.NoError(t, s.ItemRepo().SaveProduct(context.Background(), p))
	return p
}

// Partner reads the committed partner
func (s *MemStore) Partner(t *testing.T, id uuid.UUID) *partner.Partner {
	t.Helper()
	p, err := s.PartnerRepo().FindByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

// Order reads the committed order
func (s *MemStore) Order(t *testing.T, id uuid.UUID) *trade.Order {
	t.Helper()
	o, err := s.OrderRepo().FindByID(context.Background(), id)
	require.NoError(t, err)
	return o
}

// BankAccount reads the committed bank account
func (s *MemStore) BankAccount(t *testing.T, id uuid.UUID) *finance.BankAccount {
	t.Helper()
	a, err := s.BankAccountRepo().FindByID(context.Background(), id)
	require.NoError(t, err)
	return a
}

// DebtRecordFor returns the committed debt record anchored to an order, if any
func (s *MemStore) DebtRecordFor(orderID uuid.UUID) *finance.DebtRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.data.debts {
		if d.OrderID == orderID {
			return &d
		}
	}
	return nil
}

// DebtRecordCount returns how many debt records exist
func (s *MemStore) DebtRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.debts)
}

// OpenDebt sums the unpaid remainder of a partner's non-cancelled orders
func (s *MemStore) OpenDebt(partnerID uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, o := range s.data.orders {
		if o.PartnerID == partnerID && o.Status != trade.OrderStatusCancelled {
			total = total.Add(o.Remaining())
		}
	}
	return total
}

// PaymentsByOrder groups ledger amounts per order
func (s *MemStore) PaymentsByOrder() map[uuid.UUID]decimal.Decimal {
	out := map[uuid.UUID]decimal.Decimal{}
	for _, p := range s.Payments() {
		out[p.OrderID] = out[p.OrderID].Add(p.Amount)
	}
	return out
}

// Transactions returns committed inventory transactions ordered by code
func (s *MemStore) Transactions() []inventory.InventoryTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]inventory.InventoryTransaction, 0, len(s.data.txs))
	for _, tx := range s.data.txs {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
