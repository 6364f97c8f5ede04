// Package service hosts the timer for as long as the process lives and relays
// its events to any number of subscribers.
//
// Screens come and go (a window is closed, a terminal session ends) while the
// Service keeps the countdown running. A subscriber that joins late receives
// the current state straight away, and a subscriber that leaves has no effect
// on the timer.
package service

import (
	"context"
	"fmt"
	"sync"

	"eyecare/internal/core/model"
	"eyecare/internal/core/timekeeper"
	"eyecare/internal/log"
)

// Config is the Service configuration.
type Config struct {
	Timer  model.TimerConfig
	Clock  timekeeper.Clock
	Logger log.Logger
}

func (c *Config) defaults() error {
	if err := c.Timer.Validate(); err != nil {
		return err
	}
	if c.Clock == nil {
		c.Clock = timekeeper.SystemClock
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "service.Service"})
	return nil
}

// Service owns the single TimeKeeper of the process.
type Service struct {
	keeper *timekeeper.TimeKeeper
	logger log.Logger

	mu     sync.Mutex
	last   timekeeper.Event
	subs   map[*Subscription]struct{}
	closed bool
}

// New returns a new Service with a stopped timer.
func New(config Config) (*Service, error) {
	if err := config.defaults(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	svc := &Service{
		logger: config.Logger,
		subs:   map[*Subscription]struct{}{},
		last: timekeeper.Event{
			Type:  timekeeper.EventSnapshot,
			State: timekeeper.StoppedState(),
			At:    config.Clock.Now(),
		},
	}
	keeper, err := timekeeper.New(config.Timer, timekeeper.Config{
		Clock: config.Clock,
		Sink:  svc,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	svc.keeper = keeper

	return svc, nil
}

// Start starts the timer. Starting a running timer, or a closed service, does
// nothing.
func (s *Service) Start() {
	s.keeper.Start()
}

// Stop stops the timer. Stopping a stopped timer does nothing.
func (s *Service) Stop() {
	s.keeper.Stop()
}

// State returns the current timer state.
func (s *Service) State() timekeeper.State {
	return s.keeper.State()
}

// Timer returns the active timer configuration.
func (s *Service) Timer() model.TimerConfig {
	return s.keeper.Config()
}

// UpdateTimer replaces the phase durations, effective from the next countdown.
func (s *Service) UpdateTimer(config model.TimerConfig) error {
	if err := s.keeper.UpdateConfig(config); err != nil {
		return err
	}
	config = s.keeper.Config()
	s.logger.Infof("Timer updated: continuous %s, break %s", config.Continuous, config.Break)
	return nil
}

// Publish satisfies timekeeper.Sink. It is called with the TimeKeeper lock held
// and never blocks.
func (s *Service) Publish(event timekeeper.Event) {
	s.logEvent(event)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = event
	for sub := range s.subs {
		sub.offer(event)
	}
}

// Subscribe registers a new subscriber. The current state is delivered first
// as a snapshot event.
func (s *Service) Subscribe() *Subscription {
	sub := &Subscription{
		events: make(chan timekeeper.Event, subscriptionBuffer),
		svc:    s,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		sub.closed = true
		close(sub.events)
		return sub
	}

	snapshot := s.last
	snapshot.Type = timekeeper.EventSnapshot
	sub.offer(snapshot)
	s.subs[sub] = struct{}{}
	s.logger.Debugf("Subscriber attached (%d active)", len(s.subs))

	return sub
}

// Close terminates the service: the timer is stopped, subscribers receive the
// stopped event and then their channels are closed.
func (s *Service) Close() {
	// A closed keeper ignores Start.
	s.keeper.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for sub := range s.subs {
		sub.closeLocked()
	}
	s.subs = map[*Subscription]struct{}{}
	s.logger.Infof("Service closed")
}

// Run blocks until the context is done and then closes the service.
func (s *Service) Run(ctx context.Context) error {
	<-ctx.Done()
	s.Close()
	return nil
}

func (s *Service) unsubscribe(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub]; !ok {
		return
	}
	delete(s.subs, sub)
	sub.closeLocked()
	s.logger.Debugf("Subscriber detached (%d active)", len(s.subs))
}

func (s *Service) logEvent(event timekeeper.Event) {
	logger := s.logger.WithValues(log.Kv{
		"phase":     event.State.Phase,
		"countdown": event.State.CountdownID,
	})
	switch event.Type {
	case timekeeper.EventStarted:
		logger.Infof("Timer started, next break in %s", timekeeper.FormatRemaining(event.State.Remaining))
	case timekeeper.EventPhaseChange:
		logger.Infof("Phase changed to %s for %s", event.State.Phase, timekeeper.FormatRemaining(event.State.Remaining))
	case timekeeper.EventStopped:
		logger.Infof("Timer stopped")
	case timekeeper.EventTick:
		logger.Debugf("Tick %s", timekeeper.FormatRemaining(event.State.Remaining))
	}
}
