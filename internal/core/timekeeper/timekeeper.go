package timekeeper

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"eyecare/internal/core/model"
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	Clock Clock
	Sink  Sink
}

type countdown struct {
	id        string
	phase     Phase
	total     time.Duration
	deadline  time.Time
	remaining time.Duration
}

// TimeKeeper is a state machine alternating a continuous-use countdown with a
// break countdown until stopped. At most one countdown exists at a time.
//
// Countdowns run against a deadline taken from the clock, so the remaining
// time does not depend on how many ticks were delivered.
type TimeKeeper struct {
	mu        sync.Mutex
	config    model.TimerConfig
	options   Config
	countdown *countdown
	cycle     int
	stopCh    chan struct{}
	closed    bool
}

// New creates a stopped TimeKeeper with the provided configuration.
func New(config model.TimerConfig, options Config) (*TimeKeeper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.Sink == nil {
		options.Sink = discardSink{}
	}

	return &TimeKeeper{
		config:  config,
		options: options,
	}, nil
}

// Start begins a continuous-phase countdown. It is a no-op while running or
// after Close.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.countdown != nil || keeper.closed {
		keeper.mu.Unlock()
		return
	}
	now := keeper.options.Clock.Now()
	keeper.cycle = 0
	keeper.countdown = keeper.newCountdownLocked(PhaseContinuous, now)
	stopCh := make(chan struct{})
	keeper.stopCh = stopCh
	ticker := keeper.options.Clock.NewTicker(keeper.config.TickInterval)
	keeper.emitLocked(EventStarted, now)
	keeper.mu.Unlock()

	go keeper.run(ticker, stopCh)
}

// Stop cancels the active countdown and resets to the stopped state. It is a
// no-op while stopped.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.stopLocked()
}

// Close stops the timer for good: later calls to Start do nothing.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.closed = true
	keeper.stopLocked()
}

// State returns a snapshot of the current timer state.
func (keeper *TimeKeeper) State() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.stateLocked()
}

// Running reports whether a countdown is active.
func (keeper *TimeKeeper) Running() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.countdown != nil
}

// UpdateConfig replaces the phase durations. The active countdown keeps its
// length; the next one uses the new values. A missing tick interval keeps the
// current one, the ticker is not recreated.
func (keeper *TimeKeeper) UpdateConfig(config model.TimerConfig) error {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if config.TickInterval == 0 {
		config.TickInterval = keeper.config.TickInterval
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("could not update timer: %w", err)
	}
	keeper.config = config
	return nil
}

// Config returns the current configuration.
func (keeper *TimeKeeper) Config() model.TimerConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config
}

func (keeper *TimeKeeper) run(ticker Ticker, stopCh chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C():
			keeper.tick(stopCh, tickTime)
		}
	}
}

func (keeper *TimeKeeper) tick(stopCh chan struct{}, tickTime time.Time) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	// A tick racing with Stop (or with Stop then Start) belongs to a dead run.
	if keeper.countdown == nil || keeper.stopCh != stopCh {
		return
	}
	keeper.advanceLocked(tickTime)
}

func (keeper *TimeKeeper) advanceLocked(now time.Time) {
	remaining := keeper.countdown.deadline.Sub(now)
	if remaining > 0 {
		keeper.countdown.remaining = remaining
		keeper.emitLocked(EventTick, now)
		return
	}

	// Whole rounds missed while no tick arrived (a suspended laptop) are
	// skipped, the phase parity is kept.
	round := keeper.config.Continuous + keeper.config.Break
	if overshoot := -remaining; overshoot >= round {
		rounds := overshoot / round
		keeper.countdown.deadline = keeper.countdown.deadline.Add(rounds * round)
		keeper.cycle += 2 * int(rounds)
	}

	// Every new countdown starts at the previous deadline so the overshoot of
	// a late tick is carried over.
	for !keeper.countdown.deadline.After(now) {
		previous := keeper.countdown
		keeper.countdown = nil
		keeper.cycle++
		keeper.countdown = keeper.newCountdownLocked(previous.phase.Next(), previous.deadline)
		keeper.countdown.remaining = keeper.countdown.deadline.Sub(now)
		keeper.emitLocked(EventPhaseChange, now)
	}
}

func (keeper *TimeKeeper) stopLocked() {
	if keeper.countdown == nil {
		return
	}
	close(keeper.stopCh)
	keeper.stopCh = nil
	keeper.countdown = nil
	keeper.cycle = 0
	keeper.emitLocked(EventStopped, keeper.options.Clock.Now())
}

func (keeper *TimeKeeper) newCountdownLocked(phase Phase, start time.Time) *countdown {
	total := keeper.config.Continuous
	if phase == PhaseBreak {
		total = keeper.config.Break
	}
	return &countdown{
		id:        ulid.Make().String(),
		phase:     phase,
		total:     total,
		deadline:  start.Add(total),
		remaining: total,
	}
}

func (keeper *TimeKeeper) stateLocked() State {
	if keeper.countdown == nil {
		return StoppedState()
	}
	return State{
		Phase:       keeper.countdown.phase,
		Remaining:   keeper.countdown.remaining,
		Total:       keeper.countdown.total,
		Running:     true,
		CountdownID: keeper.countdown.id,
		Cycle:       keeper.cycle,
	}
}

func (keeper *TimeKeeper) emitLocked(eventType EventType, at time.Time) {
	keeper.options.Sink.Publish(Event{
		Type:  eventType,
		State: keeper.stateLocked(),
		At:    at,
	})
}
