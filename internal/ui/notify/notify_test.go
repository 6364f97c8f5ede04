package notify_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eyecare/internal/core/timekeeper"
	"eyecare/internal/ui/notify"
)

type fakeNotifier struct {
	err  error
	sent [][2]string
}

func (n *fakeNotifier) Send(title, message string) error {
	n.sent = append(n.sent, [2]string{title, message})
	return n.err
}

func (n *fakeNotifier) Supported() bool { return true }

func TestAnnouncerHandle(t *testing.T) {
	breakState := timekeeper.State{
		Phase: timekeeper.PhaseBreak, Running: true,
		Remaining: 20 * time.Second, Total: 20 * time.Second,
	}
	workState := timekeeper.State{
		Phase: timekeeper.PhaseContinuous, Running: true,
		Remaining: 20 * time.Minute, Total: 20 * time.Minute,
	}

	tests := map[string]struct {
		event   timekeeper.Event
		sendErr error
		expSent [][2]string
	}{
		"Entering a break should notify.": {
			event:   timekeeper.Event{Type: timekeeper.EventPhaseChange, State: breakState},
			expSent: [][2]string{{"Time for a break", "Look at something 20 feet away for 00:20."}},
		},
		"Leaving a break should notify.": {
			event:   timekeeper.Event{Type: timekeeper.EventPhaseChange, State: workState},
			expSent: [][2]string{{"Break is over", "Next break in 20:00."}},
		},
		"Ticks should not notify.": {
			event: timekeeper.Event{Type: timekeeper.EventTick, State: breakState},
		},
		"Stopping should not notify.": {
			event: timekeeper.Event{Type: timekeeper.EventStopped, State: timekeeper.StoppedState()},
		},
		"A failing notifier should not panic.": {
			event:   timekeeper.Event{Type: timekeeper.EventPhaseChange, State: breakState},
			sendErr: errors.New("denied"),
			expSent: [][2]string{{"Time for a break", "Look at something 20 feet away for 00:20."}},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			notifier := &fakeNotifier{err: test.sendErr}
			announcer := notify.NewAnnouncer(notifier, nil)

			announcer.Handle(test.event)

			assert.Equal(t, test.expSent, notifier.sent)
		})
	}
}

func TestNoopIsUnsupported(t *testing.T) {
	announcer := notify.NewAnnouncer(nil, nil)

	assert.False(t, announcer.Supported())
	assert.Equal(t, notify.UnsupportedWarning, announcer.Warning())
	assert.NotPanics(t, func() {
		announcer.Handle(timekeeper.Event{Type: timekeeper.EventPhaseChange})
	})
	assert.False(t, notify.NewFyne(nil).Supported())
}

func TestAnnouncerSetNotifier(t *testing.T) {
	announcer := notify.NewAnnouncer(nil, nil)
	notifier := &fakeNotifier{}

	announcer.SetNotifier(notifier)
	announcer.Handle(timekeeper.Event{Type: timekeeper.EventPhaseChange, State: timekeeper.State{Phase: timekeeper.PhaseBreak}})
	assert.True(t, announcer.Supported())
	assert.Len(t, notifier.sent, 1)

	announcer.SetNotifier(nil)
	announcer.Handle(timekeeper.Event{Type: timekeeper.EventPhaseChange})
	assert.False(t, announcer.Supported())
	assert.Len(t, notifier.sent, 1)
}

func TestAnnouncerWarning(t *testing.T) {
	tests := map[string]struct {
		notifier notify.Notifier
		expWarn  string
	}{
		"A supported notifier should not warn.": {
			notifier: &fakeNotifier{},
			expWarn:  "",
		},
		"Disabled notifications should warn.": {
			notifier: notify.Noop,
			expWarn:  notify.UnsupportedWarning,
		},
		"A missing application should warn.": {
			notifier: notify.NewFyne(nil),
			expWarn:  notify.UnsupportedWarning,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			announcer := notify.NewAnnouncer(nil, nil)
			announcer.SetNotifier(test.notifier)

			assert.Equal(t, test.expWarn, announcer.Warning())
		})
	}
}
