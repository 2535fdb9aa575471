package eventbus

import (
	"sync"

	"github.com/cskr/pubsub/v2"
)

// subscriberBuffer is the channel capacity of each subscription.
// Events published to a full subscription are dropped.
const subscriberBuffer = 16

// EventPublisher represents an interface that provides an event publisher.
type EventPublisher interface {
	// Publish publishes an event to the event stream.
	Publish(id uint, name string, data any)
}

// EventSubscriber represents an interface that provides an event subscriber.
type EventSubscriber interface {
	// Subscribe subscribes to an event from the event stream.
	Subscribe(id uint, name string) SubscriberID
}

// EventHandler represents an interface that provides an event publisher and subscriber.
type EventHandler interface {
	EventPublisher
	EventSubscriber
}

// pubsubHandler is the default handler, backed by an in-process pubsub.
type pubsubHandler struct {
	ps *pubsub.PubSub[uint, any]
}

// nilHandler drops every event.
type nilHandler struct{}

var emitter struct {
	p EventPublisher
	s EventSubscriber

	mu sync.RWMutex
}

func init() {
	RegisterEventHandler(DefaultHandler())
}

// RegisterEventHandler registers the event handler interface.
// A nil handler is ignored.
func RegisterEventHandler(eh EventHandler) {
	if eh == nil {
		return
	}

	RegisterEventHandlers(eh, eh)
}

// RegisterEventHandlers registers the event publisher and subscriber interfaces separately.
// Passing nil for either disables that side.
func RegisterEventHandlers(p EventPublisher, s EventSubscriber) {
	if p == nil {
		p = nilHandler{}
	}
	if s == nil {
		s = nilHandler{}
	}

	emitter.mu.Lock()
	defer emitter.mu.Unlock()

	emitter.p = p
	emitter.s = s
}

// DisableEvents unregisters the event handler.
func DisableEvents() {
	RegisterEventHandlers(nil, nil)
}

// Publish calls the registered publisher handler.
func Publish(id EventID, data any) {
	if id == nil {
		return
	}

	emitter.mu.RLock()
	p := emitter.p
	emitter.mu.RUnlock()

	p.Publish(id.Value(), id.String(), data)
}

// Subscribe calls the registered subscriber handler.
func Subscribe(id EventID) SubscriberID {
	if id == nil {
		return nilHandler{}.Subscribe(0, "")
	}

	emitter.mu.RLock()
	s := emitter.s
	emitter.mu.RUnlock()

	return s.Subscribe(id.Value(), id.String())
}

// PublishSessionState publishes a session state transition.
func PublishSessionState(data SessionStateData) {
	Publish(SessionStateEvent, data)
}

// DefaultHandler returns the default event handler.
func DefaultHandler() EventHandler {
	return &pubsubHandler{ps: pubsub.New[uint, any](subscriberBuffer)}
}

// Publish publishes an event without blocking on slow subscribers.
func (h *pubsubHandler) Publish(id uint, _ string, data any) {
	h.ps.TryPub(data, id)
}

// Subscribe subscribes to an event from the event stream.
func (h *pubsubHandler) Subscribe(id uint, _ string) SubscriberID {
	ch := h.ps.Sub(id)

	return SubscriberID{
		C:      ch,
		active: true,
		unsub: func() {
			// Unsub blocks until the pubsub loop drains; do not hold the caller.
			go h.ps.Unsub(ch, id)
		},
	}
}

// Publish does not do anything.
func (nilHandler) Publish(uint, string, any) {}

// Subscribe returns a closed subscription.
func (nilHandler) Subscribe(uint, string) SubscriberID {
	ch := make(chan any)
	close(ch)

	return SubscriberID{C: ch}
}
