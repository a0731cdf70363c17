package finance

import (
	"sort"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationTarget is an open order competing for a share of a payment
type AllocationTarget struct {
	ID          uuid.UUID
	Code        string
	Outstanding decimal.Decimal
	CreatedAt   time.Time
}

// Allocation is the share of the payment given to one target
type Allocation struct {
	TargetID   uuid.UUID
	TargetCode string
	Amount     decimal.Decimal
	FullyPaid  bool
}

// AllocationResult is the outcome of splitting a payment
type AllocationResult struct {
	Allocations    []Allocation
	TotalAllocated decimal.Decimal
	Unallocated    decimal.Decimal
}

// AllocateFIFO applies amount to the oldest outstanding targets first and stops
// as soon as the payment is exhausted. Ties on creation time break on code.
func AllocateFIFO(amount decimal.Decimal, targets []AllocationTarget) (*AllocationResult, error) {
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "payment amount must be positive")
	}

	sorted := make([]AllocationTarget, len(targets))
	copy(sorted, targets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].Code < sorted[j].Code
	})

	result := &AllocationResult{TotalAllocated: decimal.Zero}
	remaining := amount
	for _, t := range sorted {
		if !remaining.IsPositive() {
			break
		}
		if !t.Outstanding.IsPositive() {
			continue
		}
		applied := decimal.Min(remaining, t.Outstanding)
		result.Allocations = append(result.Allocations, Allocation{
			TargetID:   t.ID,
			TargetCode: t.Code,
			Amount:     applied,
			FullyPaid:  applied.Equal(t.Outstanding),
		})
		result.TotalAllocated = result.TotalAllocated.Add(applied)
		remaining = remaining.Sub(applied)
	}
	result.Unallocated = remaining
	return result, nil
}

// OpenTotal sums what the targets still owe
func OpenTotal(targets []AllocationTarget) decimal.Decimal {
	total := decimal.Zero
	for _, t := range targets {
		if t.Outstanding.IsPositive() {
			total = total.Add(t.Outstanding)
		}
	}
	return total
}
