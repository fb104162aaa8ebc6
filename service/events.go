package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bankist/logger"
	"bankist/model"

	"github.com/sirupsen/logrus"
)

// EventSink receives session and ledger events after the state change is done.
type EventSink interface {
	Publish(ctx context.Context, event model.Event) error
}

// FanOut delivers every event to each sink in order. Failing sinks are logged
// and do not stop delivery to the rest.
type FanOut []EventSink

func (f FanOut) Publish(ctx context.Context, event model.Event) error {
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Publish(ctx, event); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"event_type": event.Type,
				"username":   event.Username,
				"sink":       fmt.Sprintf("%T", sink),
			}).WithError(err).Warn("Event sink failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FormatCountdown renders remaining seconds as mm:ss.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

const subscriberBuffer = 32

// Hub fans events out to in-process subscribers keyed by username.
// A subscriber that falls behind loses events instead of blocking the publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[chan model.Event]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[chan model.Event]struct{})}
}

// Subscribe registers for the events of username. The returned cancel func
// unregisters and closes the channel; calling it more than once is safe.
func (h *Hub) Subscribe(username string) (<-chan model.Event, func()) {
	ch := make(chan model.Event, subscriberBuffer)

	h.mu.Lock()
	if _, ok := h.clients[username]; !ok {
		h.clients[username] = make(map[chan model.Event]struct{})
	}
	h.clients[username][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if clients, ok := h.clients[username]; ok {
				delete(clients, ch)
				if len(clients) == 0 {
					delete(h.clients, username)
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

func (h *Hub) Publish(_ context.Context, event model.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients[event.Username] {
		select {
		case ch <- event:
		default:
			logger.Log.WithFields(logrus.Fields{
				"event_type": event.Type,
				"username":   event.Username,
			}).Debug("Dropping event for slow subscriber")
		}
	}
	return nil
}

// Subscribers returns the number of live subscriptions for username.
func (h *Hub) Subscribers(username string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[username])
}
