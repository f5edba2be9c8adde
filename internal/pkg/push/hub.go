package push

import (
	"context"
	"sync"
)

// Message is a push payload delivered to a device token's subscribers.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]interface{}
}

// Hub is an in-process push fan-out keyed by device token. It implements
// notification.Dispatcher and is the default dispatcher; deployments with a
// real push provider substitute the provider's client here. Delivery is
// non-blocking and lossy; the notification record remains the durable
// source of truth.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Message]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Message]struct{}),
	}
}

// Subscribe registers a subscriber for a token and returns the message
// channel and a cleanup function.
func (h *Hub) Subscribe(token string) (chan Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Message, 10)

	if h.subscribers[token] == nil {
		h.subscribers[token] = make(map[chan Message]struct{})
	}
	h.subscribers[token][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[token], ch)
		close(ch)
		if len(h.subscribers[token]) == 0 {
			delete(h.subscribers, token)
		}
	}

	return ch, cleanup
}

// Send publishes a message to all subscribers of the token. Channels that
// cannot accept the message are skipped to avoid blocking the caller.
func (h *Hub) Send(ctx context.Context, token, title, body string, data map[string]interface{}) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{Token: token, Title: title, Body: body, Data: data}
	if subs, ok := h.subscribers[token]; ok {
		for ch := range subs {
			select {
			case ch <- msg:
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
	}
	return nil
}

// SubscriberCount returns the number of active subscribers for a token.
func (h *Hub) SubscriberCount(token string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[token])
}
