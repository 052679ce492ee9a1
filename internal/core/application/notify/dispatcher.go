// Package notify delivers order status notifications without letting delivery
// failures or broker latency reach the callers that changed the order.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/ports"
)

// DefaultBufferSize bounds the number of events waiting to be published.
const DefaultBufferSize = 1024

// Dispatcher queues status change events and publishes them through a
// ports.Notifier from a background worker, so Dispatch never waits for the
// broker. Events that fail stay queued, in order, until Redeliver succeeds.
// When the queue is full the oldest event is dropped.
//
// Example:
//
//	d := notify.NewDispatcher(publisher, logger, notify.DefaultBufferSize)
//	d.Start()
//	defer d.Close()
//	d.Dispatch(ctx, aggregate.DomainEvents()...)
type Dispatcher struct {
	notifier ports.Notifier
	logger   *slog.Logger
	capacity int
	wake     chan struct{}

	mu      sync.Mutex
	pending []order.StatusChangedEvent
	cancel  context.CancelFunc
	done    chan struct{}

	// publishing serializes Redeliver calls so events leave in queue order.
	publishing sync.Mutex
}

// NewDispatcher creates a dispatcher holding at most capacity events;
// capacity <= 0 means DefaultBufferSize. Events are only published once Start
// has been called or Redeliver runs.
func NewDispatcher(notifier ports.Notifier, logger *slog.Logger, capacity int) *Dispatcher {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		notifier: notifier,
		logger:   logger.With("component", "notify.Dispatcher"),
		capacity: capacity,
		wake:     make(chan struct{}, 1),
	}
}

// Start launches the worker that publishes dispatched events. Calling it again
// has no effect.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})
	go d.run(ctx, d.done)
}

// Close stops the worker and waits for it. Queued events stay available to
// Redeliver.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (d *Dispatcher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.wake:
			d.Redeliver(ctx)
		}
	}
}

// Dispatch queues events for publishing and returns immediately. It never
// fails: the status change they describe is already committed.
func (d *Dispatcher) Dispatch(ctx context.Context, events ...order.StatusChangedEvent) {
	if len(events) == 0 {
		return
	}

	d.mu.Lock()
	d.pending = d.bounded(append(d.pending, events...))
	d.mu.Unlock()

	d.logger.DebugContext(ctx, "order status changes queued", "count", len(events))

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Redeliver publishes queued events in order and returns how many were
// published. It stops at the first failure and keeps that event and the ones
// after it queued.
func (d *Dispatcher) Redeliver(ctx context.Context) int {
	d.publishing.Lock()
	defer d.publishing.Unlock()

	d.mu.Lock()
	batch := d.pending
	d.pending = nil
	d.mu.Unlock()

	for i, event := range batch {
		err := ctx.Err()
		if err == nil {
			err = d.notifier.Publish(ctx, event)
		}
		if err != nil {
			d.logger.WarnContext(ctx, "failed to publish order status change, kept for redelivery",
				"order_id", event.OrderID.String(),
				"status", event.To.String(),
				"queued", len(batch)-i,
				"error", err,
			)
			d.putBack(batch[i:])
			return i
		}
	}

	return len(batch)
}

// Pending returns the number of events not yet published.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// putBack places events ahead of those dispatched while they were in flight.
func (d *Dispatcher) putBack(events []order.StatusChangedEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	queue := make([]order.StatusChangedEvent, 0, len(events)+len(d.pending))
	queue = append(queue, events...)
	d.pending = d.bounded(append(queue, d.pending...))
}

// bounded drops the oldest events beyond capacity. d.mu must be held.
func (d *Dispatcher) bounded(queue []order.StatusChangedEvent) []order.StatusChangedEvent {
	overflow := len(queue) - d.capacity
	if overflow <= 0 {
		return queue
	}

	for _, dropped := range queue[:overflow] {
		d.logger.Error("notification buffer is full, dropping oldest event",
			"order_id", dropped.OrderID.String(),
			"status", dropped.To.String(),
		)
	}
	return queue[overflow:]
}
