package event

import (
	"sync"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
)

type subscription struct {
	handler shared.EventHandler
	async   bool
}

// HandlerRegistry maps event types to subscriptions
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
	wildcard []subscription
}

// NewHandlerRegistry creates a new handler registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string][]subscription)}
}

// Register adds a handler for eventTypes; with none it receives all events
func (r *HandlerRegistry) Register(handler shared.EventHandler, async bool, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := subscription{handler: handler, async: async}
	if len(eventTypes) == 0 {
		r.wildcard = append(r.wildcard, sub)
		return
	}
	for _, eventType := range eventTypes {
		r.handlers[eventType] = append(r.handlers[eventType], sub)
	}
}

// Unregister removes a handler from all event types
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wildcard = removeHandler(r.wildcard, handler)
	for eventType, subs := range r.handlers {
		if rest := removeHandler(subs, handler); len(rest) > 0 {
			r.handlers[eventType] = rest
		} else {
			delete(r.handlers, eventType)
		}
	}
}

// Subscriptions returns the type-specific subscriptions followed by the wildcard ones
func (r *HandlerRegistry) Subscriptions(eventType string) []subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typed := r.handlers[eventType]
	out := make([]subscription, 0, len(typed)+len(r.wildcard))
	out = append(out, typed...)
	return append(out, r.wildcard...)
}

// Count returns the number of distinct handlers registered
func (r *HandlerRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[shared.EventHandler]struct{})
	for _, s := range r.wildcard {
		seen[s.handler] = struct{}{}
	}
	for _, subs := range r.handlers {
		for _, s := range subs {
			seen[s.handler] = struct{}{}
		}
	}
	return len(seen)
}

func removeHandler(subs []subscription, target shared.EventHandler) []subscription {
	out := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.handler != target {
			out = append(out, s)
		}
	}
	return out
}
