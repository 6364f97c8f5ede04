package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eyecare/internal/core/timekeeper"
)

func TestCompact(t *testing.T) {
	const (
		snapshot = timekeeper.EventSnapshot
		started  = timekeeper.EventStarted
		tick     = timekeeper.EventTick
		change   = timekeeper.EventPhaseChange
		stopped  = timekeeper.EventStopped
	)

	tests := map[string]struct {
		events []timekeeper.EventType
		size   int
		exp    []timekeeper.EventType
	}{
		"Ticks followed by a newer event should be dropped.": {
			events: []timekeeper.EventType{snapshot, started, tick, tick, change, tick},
			size:   4,
			exp:    []timekeeper.EventType{started, change, tick},
		},
		"A phase change should never be replaced by a tick.": {
			events: []timekeeper.EventType{change, tick, tick},
			size:   2,
			exp:    []timekeeper.EventType{change, tick},
		},
		"Stopped should be kept after pending changes.": {
			events: []timekeeper.EventType{tick, change, tick, stopped},
			size:   4,
			exp:    []timekeeper.EventType{change, stopped},
		},
		"Too many lasting events should keep the newest.": {
			events: []timekeeper.EventType{started, change, change, change},
			size:   2,
			exp:    []timekeeper.EventType{change, change},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			events := make([]timekeeper.Event, 0, len(test.events))
			for _, eventType := range test.events {
				events = append(events, timekeeper.Event{Type: eventType})
			}

			var got []timekeeper.EventType
			for _, event := range compact(events, test.size) {
				got = append(got, event.Type)
			}
			assert.Equal(t, test.exp, got)
		})
	}
}
