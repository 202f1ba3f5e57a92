package searchtest

import (
	"context"
	"sync"
)

// Event is a published channel/payload pair.
type Event struct {
	Channel string
	Payload any
}

// RecordingPublisher records every published event. Set Err to make Publish fail.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

// Publish records the event, or returns Err if set.
func (p *RecordingPublisher) Publish(ctx context.Context, channel string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, Event{Channel: channel, Payload: payload})
	return nil
}

// Events returns a copy of the recorded events.
func (p *RecordingPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}
