package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Test", uuid.New())}
}

type recordingHandler struct {
	eventTypes []string
	err        error
	panicWith  any
	block      chan struct{}

	mu      sync.Mutex
	handled []shared.DomainEvent
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.block != nil {
		<-h.block
	}
	h.mu.Lock()
	h.handled = append(h.handled, event)
	h.mu.Unlock()
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.eventTypes }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{eventTypes: []string{"PaymentSettled"}}
	bus.Subscribe(h)

	e1, e2 := newTestEvent("PaymentSettled"), newTestEvent("PaymentSettled")
	require.NoError(t, bus.Publish(context.Background(), e1, e2, newTestEvent("Other")))

	require.Equal(t, 2, h.count())
	assert.Equal(t, []shared.DomainEvent{e1, e2}, h.handled)
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandlerTypes(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &recordingHandler{eventTypes: []string{"PaymentSettled"}}
	bus.Subscribe(h, "ProductionCompleted")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PaymentSettled")))
	assert.Equal(t, 0, h.count())
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("ProductionCompleted")))
	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_FailuresDoNotStopOtherHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{err: errors.New("s3 unavailable")}
	panicking := &recordingHandler{panicWith: "boom"}
	healthy := &recordingHandler{}
	bus.Subscribe(failing, "PaymentSettled")
	bus.Subscribe(panicking, "PaymentSettled")
	bus.Subscribe(healthy, "PaymentSettled")

	err := bus.Publish(context.Background(), newTestEvent("PaymentSettled"))

	require.NoError(t, err)
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, panicking.count())
	assert.Equal(t, 1, healthy.count())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{}
	bus.Subscribe(h, "PaymentSettled")

	_ = bus.Publish(context.Background(), newTestEvent("PaymentSettled"))
	bus.Unsubscribe(h)
	_ = bus.Publish(context.Background(), newTestEvent("PaymentSettled"))

	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_AsyncHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	release := make(chan struct{})
	slow := &recordingHandler{block: release}
	bus.SubscribeAsync(slow, "PaymentSettled")

	// the caller's context is cancelled as soon as Publish returns
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bus.Publish(ctx, newTestEvent("PaymentSettled")))
	cancel()
	assert.Equal(t, 0, slow.count())

	close(release)
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	require.NoError(t, bus.Stop(stopCtx))
	assert.Equal(t, 1, slow.count())
}

func TestInMemoryEventBus_Stop(t *testing.T) {
	t.Run("publish after stop is rejected", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		require.NoError(t, bus.Stop(context.Background()))
		assert.ErrorIs(t, bus.Publish(context.Background(), newTestEvent("PaymentSettled")), ErrBusStopped)
	})

	t.Run("stop gives up when ctx expires", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		release := make(chan struct{})
		defer close(release)
		bus.SubscribeAsync(&recordingHandler{block: release}, "PaymentSettled")
		require.NoError(t, bus.Publish(context.Background(), newTestEvent("PaymentSettled")))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, bus.Stop(ctx), context.DeadlineExceeded)
	})
}
