package service

import "eyecare/internal/core/timekeeper"

// subscriptionBuffer is how many undelivered events a subscription holds.
const subscriptionBuffer = 16

// Subscription is a detachable view on the timer events.
//
// A slow reader never blocks the timer. When its buffer is full, pending
// ticks and snapshots that a newer event already supersedes are dropped;
// started, phase_change and stopped events are kept in order.
type Subscription struct {
	events chan timekeeper.Event
	svc    *Service
	closed bool
}

// Events returns the channel of events. It is closed on Close or when the
// service terminates.
func (sub *Subscription) Events() <-chan timekeeper.Event {
	return sub.events
}

// Close detaches the subscriber. It is safe to call more than once.
func (sub *Subscription) Close() {
	sub.svc.unsubscribe(sub)
}

// offer must be called with the service lock held.
func (sub *Subscription) offer(event timekeeper.Event) {
	if sub.closed {
		return
	}
	select {
	case sub.events <- event:
		return
	default:
	}

	// The service lock is the only writer. The reader may still take events
	// while the buffer is drained, which keeps the order intact.
	pending := make([]timekeeper.Event, 0, cap(sub.events)+1)
drain:
	for {
		select {
		case queued := <-sub.events:
			pending = append(pending, queued)
		default:
			break drain
		}
	}
	for _, event := range compact(append(pending, event), cap(sub.events)) {
		sub.events <- event
	}
}

func (sub *Subscription) closeLocked() {
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.events)
}

// compact drops state-only events that are followed by a newer event, then
// the oldest events if the rest still exceeds size.
func compact(events []timekeeper.Event, size int) []timekeeper.Event {
	kept := events[:0]
	for i, event := range events {
		last := i == len(events)-1
		if !last && supersedable(event.Type) {
			continue
		}
		kept = append(kept, event)
	}
	if len(kept) > size {
		kept = kept[len(kept)-size:]
	}
	return kept
}

func supersedable(eventType timekeeper.EventType) bool {
	return eventType == timekeeper.EventTick || eventType == timekeeper.EventSnapshot
}
