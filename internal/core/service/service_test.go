package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eyecare/internal/core/model"
	"eyecare/internal/core/service"
	"eyecare/internal/core/timekeeper"
	"eyecare/internal/core/timekeeper/timekeepertest"
)

func newTestService(t *testing.T) (*service.Service, *timekeepertest.ManualClock) {
	t.Helper()

	clock := timekeepertest.NewManualClock(time.Second)
	svc, err := service.New(service.Config{
		Timer: model.TimerConfig{
			Continuous:   10 * time.Second,
			Break:        5 * time.Second,
			TickInterval: time.Second,
		},
		Clock: clock,
	})
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	return svc, clock
}

// waitFor reads events until one matches, failing on timeout or a closed channel.
func waitFor(t *testing.T, sub *service.Subscription, match func(timekeeper.Event) bool) timekeeper.Event {
	t.Helper()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case event, ok := <-sub.Events():
			require.True(t, ok, "subscription closed")
			if match(event) {
				return event
			}
		case <-timeout:
			t.Fatal("timeout waiting for event")
		}
	}
}

func TestServiceConfigValidation(t *testing.T) {
	tests := map[string]struct {
		config service.Config
		expErr bool
	}{
		"Valid config should not fail.": {
			config: service.Config{Timer: model.DefaultTimerConfig()},
		},
		"Missing tick interval should use the default.": {
			config: service.Config{Timer: model.TimerConfig{Continuous: time.Minute, Break: time.Second}},
		},
		"Missing continuous duration should fail.": {
			config: service.Config{Timer: model.TimerConfig{Break: time.Second}},
			expErr: true,
		},
		"Negative break duration should fail.": {
			config: service.Config{Timer: model.TimerConfig{Continuous: time.Minute, Break: -time.Second}},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			svc, err := service.New(test.config)

			if test.expErr {
				assert.Error(err)
				assert.ErrorIs(err, model.ErrInvalidConfig)
			} else if assert.NoError(err) {
				svc.Close()
			}
		})
	}
}

func TestServiceSubscribeReplaysCurrentState(t *testing.T) {
	svc, clock := newTestService(t)

	idle := svc.Subscribe()
	event := waitFor(t, idle, func(timekeeper.Event) bool { return true })
	assert.Equal(t, timekeeper.EventSnapshot, event.Type)
	assert.Equal(t, timekeeper.StoppedState(), event.State)
	idle.Close()

	svc.Start()
	for i := 0; i < 3; i++ {
		require.NoError(t, clock.Tick())
	}
	require.Eventually(t, func() bool {
		return svc.State().Remaining == 7*time.Second
	}, time.Second, 5*time.Millisecond)

	late := svc.Subscribe()
	defer late.Close()
	event = waitFor(t, late, func(timekeeper.Event) bool { return true })
	assert.Equal(t, timekeeper.EventSnapshot, event.Type)
	assert.True(t, event.State.Running)
	assert.Equal(t, timekeeper.PhaseContinuous, event.State.Phase)
	assert.Equal(t, 7*time.Second, event.State.Remaining)
}

func TestServiceRelaysPhaseChanges(t *testing.T) {
	svc, clock := newTestService(t)
	sub := svc.Subscribe()
	defer sub.Close()

	svc.Start()
	for i := 0; i < 10; i++ {
		require.NoError(t, clock.Tick())
	}

	event := waitFor(t, sub, func(e timekeeper.Event) bool {
		return e.State.Phase == timekeeper.PhaseBreak
	})
	assert.Equal(t, timekeeper.EventPhaseChange, event.Type)
	assert.Equal(t, 5*time.Second, event.State.Remaining)

	for i := 0; i < 5; i++ {
		require.NoError(t, clock.Tick())
	}
	event = waitFor(t, sub, func(e timekeeper.Event) bool {
		return e.Type == timekeeper.EventPhaseChange && e.State.Phase == timekeeper.PhaseContinuous
	})
	assert.Equal(t, 10*time.Second, event.State.Remaining)
	assert.Equal(t, 2, event.State.Cycle)
}

func TestServiceSlowSubscriberKeepsPhaseChanges(t *testing.T) {
	svc, clock := newTestService(t)
	sub := svc.Subscribe()
	defer sub.Close()
	waitFor(t, sub, func(e timekeeper.Event) bool { return e.Type == timekeeper.EventSnapshot })

	// Nobody reads while the timer goes through two breaks and gets stopped.
	svc.Start()
	for i := 0; i < 28; i++ {
		require.NoError(t, clock.Tick())
	}
	require.Eventually(t, func() bool {
		state := svc.State()
		return state.Phase == timekeeper.PhaseBreak && state.Remaining == 2*time.Second
	}, time.Second, 5*time.Millisecond)
	svc.Stop()

	var events []timekeeper.Event
	for len(sub.Events()) > 0 {
		events = append(events, <-sub.Events())
	}

	require.NotEmpty(t, events)
	assert.Equal(t, timekeeper.EventStarted, events[0].Type)
	assert.Equal(t, timekeeper.EventStopped, events[len(events)-1].Type)

	var phases []timekeeper.Phase
	for _, event := range events {
		if event.Type == timekeeper.EventPhaseChange {
			phases = append(phases, event.State.Phase)
		}
	}
	assert.Equal(t, []timekeeper.Phase{
		timekeeper.PhaseBreak,
		timekeeper.PhaseContinuous,
		timekeeper.PhaseBreak,
	}, phases)
}

func TestServiceDetachedSubscriberDoesNotAffectTimer(t *testing.T) {
	svc, clock := newTestService(t)
	sub := svc.Subscribe()

	svc.Start()
	require.NoError(t, clock.Tick())
	sub.Close()
	sub.Close()

	_, ok := <-sub.Events()
	for ok {
		_, ok = <-sub.Events()
	}

	require.NoError(t, clock.Tick())
	require.Eventually(t, func() bool {
		return svc.State().Remaining == 8*time.Second
	}, time.Second, 5*time.Millisecond)
	assert.True(t, svc.State().Running)
}

func TestServiceStopNotifiesSubscribers(t *testing.T) {
	svc, clock := newTestService(t)
	sub := svc.Subscribe()
	defer sub.Close()

	svc.Start()
	require.NoError(t, clock.Tick())
	svc.Stop()
	svc.Stop()

	event := waitFor(t, sub, func(e timekeeper.Event) bool { return e.Type == timekeeper.EventStopped })
	assert.Equal(t, timekeeper.StoppedState(), event.State)
	assert.Equal(t, timekeeper.StoppedState(), svc.State())
}

func TestServiceStartIsIdempotent(t *testing.T) {
	svc, clock := newTestService(t)

	svc.Start()
	id := svc.State().CountdownID
	svc.Start()

	assert.Equal(t, 1, clock.Tickers())
	assert.Equal(t, id, svc.State().CountdownID)
}

func TestServiceCloseTerminatesSubscriptions(t *testing.T) {
	svc, clock := newTestService(t)
	sub := svc.Subscribe()
	svc.Start()

	svc.Close()

	var last timekeeper.Event
	for event := range sub.Events() {
		last = event
	}
	assert.Equal(t, timekeeper.EventStopped, last.Type)
	assert.False(t, svc.State().Running)

	after := svc.Subscribe()
	_, ok := <-after.Events()
	assert.False(t, ok)

	svc.Start()
	assert.False(t, svc.State().Running)
	assert.Equal(t, 1, clock.Tickers())
}

func TestServiceRunClosesOnContextDone(t *testing.T) {
	svc, _ := newTestService(t)
	sub := svc.Subscribe()
	svc.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- svc.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("service did not stop")
	}

	for range sub.Events() {
	}
	assert.False(t, svc.State().Running)
}

func TestServiceUpdateTimer(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.UpdateTimer(model.TimerConfig{Continuous: time.Minute, Break: 0})
	assert.ErrorIs(t, err, model.ErrInvalidConfig)

	err = svc.UpdateTimer(model.TimerConfig{Continuous: time.Minute, Break: 30 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, svc.Timer().Continuous)

	svc.Start()
	assert.Equal(t, time.Minute, svc.State().Remaining)
}
