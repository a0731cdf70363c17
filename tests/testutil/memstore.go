package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInjected is returned by repositories when a fault was injected
var ErrInjected = errors.New("injected failure")

type balanceKey struct {
	warehouseID uuid.UUID
	item        catalog.Key
}

type bomKey struct {
	productID  uuid.UUID
	materialID uuid.UUID
}

type memData struct {
	partners    map[uuid.UUID]partner.Partner
	orders      map[uuid.UUID]trade.Order
	debts       map[uuid.UUID]finance.DebtRecord
	payments    []finance.DebtPayment
	banks       map[uuid.UUID]finance.BankAccount
	warehouses  map[uuid.UUID]inventory.Warehouse
	balances    map[balanceKey]inventory.InventoryBalance
	txs         map[uuid.UUID]inventory.InventoryTransaction
	materials   map[uuid.UUID]catalog.Material
	products    map[uuid.UUID]catalog.Product
	productions map[uuid.UUID]production.ProductionOrder
	bom         map[bomKey]production.BOMLine
	seq         map[string]int64
}

func newMemData() memData {
	return memData{
		partners:    map[uuid.UUID]partner.Partner{},
		orders:      map[uuid.UUID]trade.Order{},
		debts:       map[uuid.UUID]finance.DebtRecord{},
		banks:       map[uuid.UUID]finance.BankAccount{},
		warehouses:  map[uuid.UUID]inventory.Warehouse{},
		balances:    map[balanceKey]inventory.InventoryBalance{},
		txs:         map[uuid.UUID]inventory.InventoryTransaction{},
		materials:   map[uuid.UUID]catalog.Material{},
		products:    map[uuid.UUID]catalog.Product{},
		productions: map[uuid.UUID]production.ProductionOrder{},
		bom:         map[bomKey]production.BOMLine{},
		seq:         map[string]int64{},
	}
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (d memData) clone() memData {
	return memData{
		partners:    cloneMap(d.partners),
		orders:      cloneMap(d.orders),
		debts:       cloneMap(d.debts),
		payments:    append([]finance.DebtPayment(nil), d.payments...),
		banks:       cloneMap(d.banks),
		warehouses:  cloneMap(d.warehouses),
		balances:    cloneMap(d.balances),
		txs:         cloneMap(d.txs),
		materials:   cloneMap(d.materials),
		products:    cloneMap(d.products),
		productions: cloneMap(d.productions),
		bom:         cloneMap(d.bom),
		seq:         cloneMap(d.seq),
	}
}

// MemStore keeps every repository in memory. Its transaction scopes run one unit of work
// at a time and restore the previous state when the unit of work fails.
type MemStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data memData

	balanceSavesUntilFailure int
}

// NewMemStore creates an empty store
func NewMemStore() *MemStore {
	return &MemStore{data: newMemData()}
}

// FailBalanceSaveAt makes the n-th next balance save fail with ErrInjected
func (s *MemStore) FailBalanceSaveAt(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balanceSavesUntilFailure = n
}

func (s *MemStore) run(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

type financeScope struct{ s *MemStore }

func (f financeScope) Execute(_ context.Context, fn func(appfinance.TransactionalRepositories) error) error {
	return f.s.run(func() error { return fn(f.s) })
}

type inventoryScope struct{ s *MemStore }

func (i inventoryScope) Execute(_ context.Context, fn func(appinv.TransactionalRepositories) error) error {
	return i.s.run(func() error { return fn(i.s) })
}

type productionScope struct{ s *MemStore }

func (p productionScope) Execute(_ context.Context, fn func(appprod.TransactionalRepositories) error) error {
	return p.s.run(func() error { return fn(p.s) })
}

// FinanceScope returns the settlement transaction scope
func (s *MemStore) FinanceScope() appfinance.TransactionScope { return financeScope{s} }

// InventoryScope returns the inventory transaction scope
func (s *MemStore) InventoryScope() appinv.TransactionScope { return inventoryScope{s} }

// ProductionScope returns the production transaction scope
func (s *MemStore) ProductionScope() appprod.TransactionScope { return productionScope{s} }

func (s *MemStore) PartnerRepo() partner.PartnerRepository           { return memPartners{s} }
func (s *MemStore) OrderRepo() trade.OrderRepository                 { return memOrders{s} }
func (s *MemStore) DebtRecordRepo() finance.DebtRecordRepository     { return memDebts{s} }
func (s *MemStore) DebtPaymentRepo() finance.DebtPaymentRepository   { return memPayments{s} }
func (s *MemStore) BankAccountRepo() finance.BankAccountRepository   { return memBanks{s} }
func (s *MemStore) Sequences() shared.SequenceGenerator              { return memSequences{s} }
func (s *MemStore) WarehouseRepo() inventory.WarehouseRepository     { return memWarehouses{s} }
func (s *MemStore) BalanceRepo() inventory.BalanceRepository         { return memBalances{s} }
func (s *MemStore) TransactionRepo() inventory.TransactionRepository { return memTransactions{s} }
func (s *MemStore) ItemRepo() catalog.ItemRepository                 { return memItems{s} }
func (s *MemStore) ProductionOrderRepo() production.ProductionOrderRepository {
	return memProductions{s}
}
func (s *MemStore) BOMRepo() production.BOMRepository { return memBOM{s} }

var (
	_ appfinance.TransactionalRepositories = (*MemStore)(nil)
	_ appinv.TransactionalRepositories     = (*MemStore)(nil)
	_ appprod.TransactionalRepositories    = (*MemStore)(nil)
)

func page[T any](items []T, f shared.Filter) []T {
	f = f.Normalize()
	start := f.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + f.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// partners

type memPartners struct{ s *MemStore }

func (r memPartners) FindByID(_ context.Context, id uuid.UUID) (*partner.Partner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.partners[id]
	if !ok {
		return nil, shared.NewNotFoundError("partner", id)
	}
	return &p, nil
}

func (r memPartners) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	return r.FindByID(ctx, id)
}

func (r memPartners) FindAll(_ context.Context, pt partner.PartnerType, f shared.Filter) ([]partner.Partner, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []partner.Partner
	for _, p := range r.s.data.partners {
		if pt == "" || p.Type == pt {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, f), int64(len(out)), nil
}

func (r memPartners) Save(_ context.Context, p *partner.Partner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *p
	v.PullDomainEvents()
	r.s.data.partners[p.ID] = v
	return nil
}

// orders

type memOrders struct{ s *MemStore }

func (r memOrders) FindByID(_ context.Context, id uuid.UUID) (*trade.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, shared.NewNotFoundError("order", id)
	}
	return &o, nil
}

func (r memOrders) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	return r.FindByID(ctx, id)
}

func (r memOrders) FindOpenByPartnerForUpdate(_ context.Context, partnerID uuid.UUID, kind trade.OrderKind) ([]*trade.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*trade.Order
	for _, o := range r.s.data.orders {
		if o.PartnerID == partnerID && o.Kind == kind && o.IsOpen() {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (r memOrders) FindOpenByPartner(ctx context.Context, partnerID uuid.UUID, kind trade.OrderKind) ([]*trade.Order, error) {
	return r.FindOpenByPartnerForUpdate(ctx, partnerID, kind)
}

func (r memOrders) FindAll(_ context.Context, f trade.OrderFilter) ([]trade.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []trade.Order
	for _, o := range r.s.data.orders {
		if f.Kind != "" && o.Kind != f.Kind {
			continue
		}
		if f.PartnerID != nil && o.PartnerID != *f.PartnerID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, f.Filter), int64(len(out)), nil
}

func (r memOrders) Create(ctx context.Context, o *trade.Order) error {
	return r.Save(ctx, o)
}

func (r memOrders) Save(_ context.Context, o *trade.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *o
	v.PullDomainEvents()
	r.s.data.orders[o.ID] = v
	return nil
}

// debt records

type memDebts struct{ s *MemStore }

func (r memDebts) GetOrCreateForUpdate(_ context.Context, seed *finance.DebtRecord) (*finance.DebtRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.data.debts {
		if d.DebtKey == seed.DebtKey {
			return &d, nil
		}
	}
	r.s.data.debts[seed.ID] = *seed
	v := *seed
	return &v, nil
}

func (r memDebts) FindByID(_ context.Context, id uuid.UUID) (*finance.DebtRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.data.debts[id]
	if !ok {
		return nil, shared.NewNotFoundError("debt record", id)
	}
	return &d, nil
}

func (r memDebts) FindAll(_ context.Context, f finance.DebtFilter) ([]finance.DebtRecord, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []finance.DebtRecord
	for _, d := range r.s.data.debts {
		if f.PartnerID != nil && d.PartnerID != *f.PartnerID {
			continue
		}
		if f.DebtType != "" && d.DebtType != f.DebtType {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return page(out, f.Filter), int64(len(out)), nil
}

func (r memDebts) Save(_ context.Context, d *finance.DebtRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.debts[d.ID] = *d
	return nil
}

// payments

type memPayments struct{ s *MemStore }

func (r memPayments) Append(_ context.Context, p *finance.DebtPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.payments {
		if existing.ID == p.ID {
			return shared.NewConflictError("ALREADY_EXISTS", "debt payment %s already recorded", p.ID)
		}
	}
	r.s.data.payments = append(r.s.data.payments, *p)
	return nil
}

func (r memPayments) ListByDebtRecord(_ context.Context, debtRecordID uuid.UUID) ([]finance.DebtPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []finance.DebtPayment
	for _, p := range r.s.data.payments {
		if p.DebtRecordID == debtRecordID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memPayments) LastPaymentDate(_ context.Context, partnerID uuid.UUID) (*time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var last *time.Time
	for _, p := range r.s.data.payments {
		if p.PartnerID == partnerID && (last == nil || p.PaymentDate.After(*last)) {
			d := p.PaymentDate
			last = &d
		}
	}
	return last, nil
}

// Payments returns every ledger entry in insertion order
func (s *MemStore) Payments() []finance.DebtPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]finance.DebtPayment(nil), s.data.payments...)
}

// bank accounts

type memBanks struct{ s *MemStore }

func (r memBanks) FindByID(_ context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.data.banks[id]
	if !ok {
		return nil, shared.NewNotFoundError("bank account", id)
	}
	return &a, nil
}

func (r memBanks) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	return r.FindByID(ctx, id)
}

func (r memBanks) FindAll(_ context.Context, f shared.Filter) ([]finance.BankAccount, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []finance.BankAccount
	for _, a := range r.s.data.banks {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return page(out, f), int64(len(out)), nil
}

func (r memBanks) Save(_ context.Context, a *finance.BankAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *a
	v.PullDomainEvents()
	r.s.data.banks[a.ID] = v
	return nil
}

// sequences

type memSequences struct{ s *MemStore }

func (g memSequences) Next(_ context.Context, prefix string, day time.Time) (int64, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	key := prefix + day.Format("060102")
	g.s.data.seq[key]++
	return g.s.data.seq[key], nil
}

// warehouses

type memWarehouses struct{ s *MemStore }

func (r memWarehouses) FindByID(_ context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.data.warehouses[id]
	if !ok {
		return nil, shared.NewNotFoundError("warehouse", id)
	}
	return &w, nil
}

func (r memWarehouses) FindAll(_ context.Context, f shared.Filter) ([]inventory.Warehouse, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []inventory.Warehouse
	for _, w := range r.s.data.warehouses {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, f), int64(len(out)), nil
}

func (r memWarehouses) Save(_ context.Context, w *inventory.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *w
	v.PullDomainEvents()
	r.s.data.warehouses[w.ID] = v
	return nil
}

// balances

type memBalances struct{ s *MemStore }

func (r memBalances) Quantities(_ context.Context, warehouseID uuid.UUID, items []catalog.ItemRef) (map[catalog.Key]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[catalog.Key]decimal.Decimal, len(items))
	for _, it := range items {
		out[it.Key()] = decimal.Zero
		if b, ok := r.s.data.balances[balanceKey{warehouseID, it.Key()}]; ok {
			out[it.Key()] = b.Quantity
		}
	}
	return out, nil
}

func (r memBalances) GetOrCreateForUpdate(_ context.Context, warehouseID uuid.UUID, item catalog.ItemRef) (*inventory.InventoryBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := balanceKey{warehouseID, item.Key()}
	b, ok := r.s.data.balances[key]
	if !ok {
		b = *inventory.NewInventoryBalance(warehouseID, item)
		r.s.data.balances[key] = b
	}
	return &b, nil
}

func (r memBalances) ListByWarehouse(_ context.Context, warehouseID uuid.UUID) ([]inventory.InventoryBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []inventory.InventoryBalance
	for k, b := range r.s.data.balances {
		if k.warehouseID == warehouseID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item.Key().String() < out[j].Item.Key().String() })
	return out, nil
}

func (r memBalances) Save(_ context.Context, b *inventory.InventoryBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.balanceSavesUntilFailure > 0 {
		r.s.balanceSavesUntilFailure--
		if r.s.balanceSavesUntilFailure == 0 {
			return ErrInjected
		}
	}
	if b.Quantity.IsNegative() {
		return errors.New("check constraint: quantity >= 0")
	}
	r.s.data.balances[balanceKey{b.WarehouseID, b.Item.Key()}] = *b
	return nil
}

// SetBalance seeds a committed balance
func (s *MemStore) SetBalance(warehouseID uuid.UUID, item catalog.ItemRef, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := inventory.NewInventoryBalance(warehouseID, item)
	b.Quantity = qty
	s.data.balances[balanceKey{warehouseID, item.Key()}] = *b
}

// Balance reads a committed balance, zero when absent
func (s *MemStore) Balance(warehouseID uuid.UUID, item catalog.ItemRef) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.data.balances[balanceKey{warehouseID, item.Key()}]; ok {
		return b.Quantity
	}
	return decimal.Zero
}

// transactions

type memTransactions struct{ s *MemStore }

func (r memTransactions) Create(_ context.Context, tx *inventory.InventoryTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.txs {
		if existing.Code == tx.Code {
			return shared.NewConflictError("DUPLICATE_CODE", "transaction code %s already exists", tx.Code)
		}
	}
	v := *tx
	v.PullDomainEvents()
	r.s.data.txs[tx.ID] = v
	return nil
}

func (r memTransactions) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx, ok := r.s.data.txs[id]
	if !ok {
		return nil, shared.NewNotFoundError("inventory transaction", id)
	}
	return &tx, nil
}

func (r memTransactions) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	return r.FindByID(ctx, id)
}

func (r memTransactions) UpdateStatus(_ context.Context, tx *inventory.InventoryTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.txs[tx.ID]; !ok {
		return shared.NewNotFoundError("inventory transaction", tx.ID)
	}
	v := *tx
	v.PullDomainEvents()
	r.s.data.txs[tx.ID] = v
	return nil
}

func (r memTransactions) FindAll(_ context.Context, f inventory.TransactionFilter) ([]inventory.InventoryTransaction, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []inventory.InventoryTransaction
	for _, tx := range r.s.data.txs {
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		if f.Status != "" && tx.Status != f.Status {
			continue
		}
		if f.WarehouseID != nil {
			touches := false
			for _, id := range tx.WarehouseIDs() {
				touches = touches || id == *f.WarehouseID
			}
			if !touches {
				continue
			}
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, f.Filter), int64(len(out)), nil
}

// items

type memItems struct{ s *MemStore }

func (r memItems) FindMaterial(_ context.Context, id uuid.UUID) (*catalog.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.data.materials[id]
	if !ok {
		return nil, shared.NewNotFoundError("material", id)
	}
	return &m, nil
}

func (r memItems) FindProduct(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, shared.NewNotFoundError("product", id)
	}
	return &p, nil
}

func (r memItems) Exists(_ context.Context, ref catalog.ItemRef) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ref.Kind() == catalog.ItemKindMaterial {
		_, ok := r.s.data.materials[ref.ID()]
		return ok, nil
	}
	_, ok := r.s.data.products[ref.ID()]
	return ok, nil
}

func (r memItems) ListMaterials(_ context.Context, f shared.Filter) ([]catalog.Material, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []catalog.Material
	for _, m := range r.s.data.materials {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, f), int64(len(out)), nil
}

func (r memItems) ListProducts(_ context.Context, f shared.Filter) ([]catalog.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.s.data.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, f), int64(len(out)), nil
}

func (r memItems) SaveMaterial(_ context.Context, m *catalog.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *m
	v.PullDomainEvents()
	r.s.data.materials[m.ID] = v
	return nil
}

func (r memItems) SaveProduct(_ context.Context, p *catalog.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *p
	v.PullDomainEvents()
	r.s.data.products[p.ID] = v
	return nil
}

// production orders

type memProductions struct{ s *MemStore }

func (r memProductions) Create(ctx context.Context, p *production.ProductionOrder) error {
	return r.Save(ctx, p)
}

func (r memProductions) FindByID(_ context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.productions[id]
	if !ok {
		return nil, shared.NewNotFoundError("production order", id)
	}
	p.StepLogs = append([]production.StepLog(nil), p.StepLogs...)
	return &p, nil
}

func (r memProductions) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	return r.FindByID(ctx, id)
}

func (r memProductions) Save(_ context.Context, p *production.ProductionOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *p
	v.PullDomainEvents()
	v.StepLogs = append([]production.StepLog(nil), p.StepLogs...)
	r.s.data.productions[p.ID] = v
	return nil
}

func (r memProductions) FindAll(_ context.Context, f shared.Filter) ([]production.ProductionOrder, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []production.ProductionOrder
	for _, p := range r.s.data.productions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, f), int64(len(out)), nil
}

// bill of materials

type memBOM struct{ s *MemStore }

func (r memBOM) FindByProducts(_ context.Context, productIDs []uuid.UUID) ([]production.BOMLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	var out []production.BOMLine
	for k, b := range r.s.data.bom {
		if wanted[k.productID] {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID.String() < out[j].MaterialID.String() })
	return out, nil
}

func (r memBOM) Upsert(_ context.Context, line *production.BOMLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := bomKey{line.ProductID, line.MaterialID}
	if existing, ok := r.s.data.bom[key]; ok {
		line.ID = existing.ID
	}
	r.s.data.bom[key] = *line
	return nil
}
