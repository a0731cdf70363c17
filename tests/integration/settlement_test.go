package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appfinance "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlement_AllocatesOldestOrderFirst(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	customer := s.customer(t, "KH001")
	shirt := s.product(t, "SP001")
	first := s.salesOrder(t, customer, shirt, "10", "100000")
	second := s.salesOrder(t, customer, shirt, "5", "100000")

	result, err := s.settlements.SettlePayment(ctx, appfinance.SettlePaymentRequest{
		PartnerID:   customer,
		PartnerType: "customer",
		Amount:      dec("1200000"),
		Method:      "CASH",
	}, s.actor)
	require.NoError(t, err)

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, first.ID, result.Allocations[0].OrderID)
	assert.True(t, result.Allocations[0].Applied.Equal(dec("1000000")))
	assert.Equal(t, "PAID", string(result.Allocations[0].PaymentStatus))
	assert.Equal(t, second.ID, result.Allocations[1].OrderID)
	assert.True(t, result.Allocations[1].Applied.Equal(dec("200000")))
	assert.Equal(t, "PARTIAL", string(result.Allocations[1].PaymentStatus))
	assert.True(t, result.TotalApplied.Equal(dec("1200000")))
	assert.True(t, result.PartnerDebtAfter.Equal(dec("300000")))

	partner, err := s.partners.GetByID(ctx, customer)
	require.NoError(t, err)
	assert.True(t, partner.DebtAmount.Equal(dec("300000")))

	o, err := s.orders.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, o.PaidAmount.Equal(dec("200000")))
	assert.True(t, o.Remaining.Equal(dec("300000")))

	payments, err := s.debts.Payments(ctx, result.Allocations[1].DebtRecordID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, result.SettlementID, payments[0].SettlementID)

	require.Eventually(t, func() bool {
		return len(s.archive.Keys()) == 1
	}, 5*time.Second, 20*time.Millisecond, "receipt should be archived")
}

func TestSettlement_RejectsOverpayment(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	customer := s.customer(t, "KH002")
	s.salesOrder(t, customer, s.product(t, "SP002"), "1", "500000")

	_, err := s.settlements.SettlePayment(ctx, appfinance.SettlePaymentRequest{
		PartnerID:   customer,
		PartnerType: "customer",
		Amount:      dec("500001"),
		Method:      "CASH",
	}, s.actor)
	require.Error(t, err)
	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "OVERPAYMENT", de.Code)

	partner, err := s.partners.GetByID(ctx, customer)
	require.NoError(t, err)
	assert.True(t, partner.DebtAmount.Equal(dec("500000")), "failed settlement must not touch the partner")
}

func TestSettlement_ConcurrentPaymentsNeverExceedDebt(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	customer := s.customer(t, "KH003")
	shirt := s.product(t, "SP003")
	s.salesOrder(t, customer, shirt, "5", "10000")
	s.salesOrder(t, customer, shirt, "5", "10000")

	const attempts = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.settlements.SettlePayment(ctx, appfinance.SettlePaymentRequest{
				PartnerID:   customer,
				PartnerType: "customer",
				Amount:      dec("10000"),
				Method:      "CASH",
			}, s.actor)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			succeeded++
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	require.Len(t, failures, 2)
	for _, err := range failures {
		var de *shared.DomainError
		require.True(t, errors.As(err, &de), err.Error())
		assert.Equal(t, "OVERPAYMENT", de.Code)
	}

	partner, err := s.partners.GetByID(ctx, customer)
	require.NoError(t, err)
	assert.True(t, partner.DebtAmount.IsZero())

	debts, err := s.debts.List(ctx, appfinance.DebtListFilter{PartnerID: &customer})
	require.NoError(t, err)
	require.Len(t, debts.Items, 2)
	for _, d := range debts.Items {
		assert.Equal(t, "PAID", d.Status)
		assert.True(t, d.RemainingAmount.IsZero())
	}
}
