package storage

import (
	"context"
	"errors"
	"sync"

	appfinance "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
)

var _ appfinance.ReceiptArchive = (*MemoryReceiptArchive)(nil)

// MemoryReceiptArchive keeps receipts in process memory, keyed like the S3 archive.
// Used when object storage is not configured.
type MemoryReceiptArchive struct {
	mu       sync.RWMutex
	prefix   string
	receipts map[string]*finance.SettlementReceipt
}

// NewMemoryReceiptArchive creates an empty archive
func NewMemoryReceiptArchive(prefix string) *MemoryReceiptArchive {
	return &MemoryReceiptArchive{
		prefix:   prefix,
		receipts: make(map[string]*finance.SettlementReceipt),
	}
}

// Put stores the receipt and returns its key
func (a *MemoryReceiptArchive) Put(_ context.Context, receipt *finance.SettlementReceipt) (string, error) {
	if receipt == nil || receipt.ReceiptNo == "" {
		return "", errors.New("receipt number is required")
	}
	key := ReceiptKey(a.prefix, receipt)
	a.mu.Lock()
	a.receipts[key] = receipt
	a.mu.Unlock()
	return key, nil
}

// Get returns the receipt stored under key
func (a *MemoryReceiptArchive) Get(key string) (*finance.SettlementReceipt, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	r, ok := a.receipts[key]
	return r, ok
}

// Keys returns every stored key
func (a *MemoryReceiptArchive) Keys() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	keys := make([]string, 0, len(a.receipts))
	for k := range a.receipts {
		keys = append(keys, k)
	}
	return keys
}
