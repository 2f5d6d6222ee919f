// Package eventstest provides an in-memory events.Publisher for tests.
package eventstest

import (
	"context"
	"sync"

	"github.com/Skotchmaster/shop_orders/pkg/events"
)

type Published struct {
	Topic string
	Key   string
	Event events.Event
}

type Recorder struct {
	mu   sync.Mutex
	msgs []Published
	Err  error
}

func (r *Recorder) PublishEvent(_ context.Context, topic, key string, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.msgs = append(r.msgs, Published{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Messages() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Published, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func (r *Recorder) Types() []string {
	var out []string
	for _, m := range r.Messages() {
		out = append(out, m.Event.Type)
	}
	return out
}
