// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Sink receives events once the debounce window closes.
type Sink interface {
	Dispatch(ctx context.Context, event *Event) error
}

// DebounceConfig holds debouncer configuration.
type DebounceConfig struct {
	// Interval is the debounce window duration.
	// Events within this window will be coalesced into a single event.
	Interval time.Duration
	// MaxWait is the maximum time to wait before dispatching.
	// Even if events keep coming, dispatch after this time.
	MaxWait time.Duration
}

// DefaultDebounceConfig returns default debounce configuration.
func DefaultDebounceConfig() DebounceConfig {
	return DebounceConfig{
		Interval: 1 * time.Second,
		MaxWait:  5 * time.Second,
	}
}

type pendingEvent struct {
	event     *Event
	timer     *time.Timer
	firstSeen time.Time
}

// Debouncer coalesces rapid updates of the same entity into one delivery.
type Debouncer struct {
	sink    Sink
	config  DebounceConfig
	pending map[string]*pendingEvent
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewDebouncer creates a new event debouncer in front of sink.
func NewDebouncer(sink Sink, config DebounceConfig) *Debouncer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Debouncer{
		sink:    sink,
		config:  config,
		pending: make(map[string]*pendingEvent),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// eventKey groups events by entity, so every change to one entity shares a
// single pending slot. Events without an entity are keyed by type alone.
func eventKey(event *Event) string {
	switch data := event.Data.(type) {
	case ContentEventData:
		return fmt.Sprintf("content:%s:%d", data.Family, data.ID)
	case *ContentEventData:
		return fmt.Sprintf("content:%s:%d", data.Family, data.ID)
	case UploadEventData:
		return "upload:" + data.URL
	default:
		return event.Type
	}
}

// merge returns the event to keep when next arrives while prev is pending.
// The latest event wins, except that an update to a still-pending creation
// is delivered as the creation.
func merge(prev, next *Event) *Event {
	if prev.Type == EventContentCreated && next.Type == EventContentUpdated {
		merged := *next
		merged.Type = EventContentCreated
		return &merged
	}
	return next
}

// Dispatch queues an event for debounced delivery. A pending event for the
// same entity is merged with it and its window restarted, up to MaxWait.
// Events for one entity in separate windows are not ordered relative to
// each other.
func (d *Debouncer) Dispatch(_ context.Context, event *Event) error {
	key := eventKey(event)
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.pending[key]; ok {
		existing.event = merge(existing.event, event)
		if now.Sub(existing.firstSeen) >= d.config.MaxWait {
			d.dispatchLocked(key)
			return nil
		}
		existing.timer.Reset(d.config.Interval)
		return nil
	}

	pe := &pendingEvent{event: event, firstSeen: now}
	pe.timer = time.AfterFunc(d.config.Interval, func() {
		d.mu.Lock()
		d.dispatchLocked(key)
		d.mu.Unlock()
	})
	d.pending[key] = pe
	return nil
}

// DispatchEvent is a convenience method to dispatch an event with debouncing.
func (d *Debouncer) DispatchEvent(ctx context.Context, eventType string, data any) error {
	return d.Dispatch(ctx, NewEvent(eventType, data))
}

// dispatchLocked hands a pending event to the sink. Must be called with lock held.
func (d *Debouncer) dispatchLocked(key string) {
	pe, ok := d.pending[key]
	if !ok {
		return
	}
	pe.timer.Stop()
	delete(d.pending, key)

	d.wg.Add(1)
	go func(event *Event) {
		defer d.wg.Done()
		_ = d.sink.Dispatch(d.ctx, event)
	}(pe.event)
}

// Flush immediately dispatches all pending events.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key := range d.pending {
		d.dispatchLocked(key)
	}
}

// Stop flushes pending events and waits for them to reach the sink.
func (d *Debouncer) Stop() {
	d.Flush()
	d.wg.Wait()
	d.cancel()
}
