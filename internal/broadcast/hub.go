package broadcast

import (
	"log/slog"
	"sync"

	"github.com/shelfmarkapp/shelfmark-client/internal/id"
)

// Callback receives an entity update. Callbacks run synchronously inside
// Publish and must not block.
type Callback func(Update)

// matchAll is the internal registry key for subscribers that want every
// update (list views diff by entity id themselves).
const matchAll = "*"

// Hub routes entity updates to registered subscribers.
//
// The hub is an explicit service object passed by reference - there is no
// package-level registry. Its lifecycle is tied to the application root;
// subscriptions pair with view mount/unmount.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[string]Callback // entity id -> subscription id -> callback
	logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[string]Callback),
		logger: logger,
	}
}

// Subscription is a registered callback's handle. Cancel removes the
// callback from the hub; the hub retains nothing afterwards.
type Subscription struct {
	hub      *Hub
	entityID string
	id       string
	once     sync.Once
}

// Cancel unregisters the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.remove(s.entityID, s.id)
	})
}

// Subscribe registers a callback for updates to a single entity id.
// The returned subscription must be canceled when the view unmounts.
func (h *Hub) Subscribe(entityID string, fn Callback) *Subscription {
	return h.add(entityID, fn)
}

// SubscribeAll registers a callback for every update. List views use this
// and patch only the rows whose entity id matches.
func (h *Hub) SubscribeAll(fn Callback) *Subscription {
	return h.add(matchAll, fn)
}

func (h *Hub) add(key string, fn Callback) *Subscription {
	subID := id.MustGenerate("sub")

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[string]Callback)
	}
	h.subs[key][subID] = fn
	h.mu.Unlock()

	return &Subscription{hub: h, entityID: key, id: subID}
}

func (h *Hub) remove(key, subID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if m, ok := h.subs[key]; ok {
		delete(m, subID)
		if len(m) == 0 {
			delete(h.subs, key)
		}
	}
}

// Publish delivers an update to every matching subscriber before returning.
// Ordering across subscribers is unspecified; delivery is complete by the
// time Publish returns, so the instigating caller can render knowing all
// views are patched.
func (h *Hub) Publish(update Update) {
	// Snapshot callbacks under the read lock, invoke outside it, so a
	// callback may subscribe or cancel without deadlocking.
	h.mu.RLock()
	callbacks := make([]Callback, 0, len(h.subs[update.EntityID])+len(h.subs[matchAll]))
	for _, fn := range h.subs[update.EntityID] {
		callbacks = append(callbacks, fn)
	}
	for _, fn := range h.subs[matchAll] {
		callbacks = append(callbacks, fn)
	}
	h.mu.RUnlock()

	for _, fn := range callbacks {
		fn(update)
	}

	h.logger.Debug("update broadcast",
		slog.String("type", string(update.Type)),
		slog.String("entity_id", update.EntityID),
		slog.Int("delivered", len(callbacks)))
}

// SubscriberCount returns the number of live subscriptions.
// Used by tests to verify the hub retains nothing after cancellation.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, m := range h.subs {
		total += len(m)
	}
	return total
}
