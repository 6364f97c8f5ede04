package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a timer configuration cannot drive a countdown.
var ErrInvalidConfig = errors.New("invalid timer config")

const (
	// DefaultContinuous is the screen-use interval before a break is due.
	DefaultContinuous = 20 * time.Minute
	// DefaultBreak is the rest interval.
	DefaultBreak = 20 * time.Second
	// DefaultTickInterval is how often remaining time is reported.
	DefaultTickInterval = time.Second
)

// TimerConfig contains the phase durations for the TimeKeeper.
type TimerConfig struct {
	Continuous   time.Duration
	Break        time.Duration
	TickInterval time.Duration
}

// DefaultTimerConfig returns the 20-20-20 defaults.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Continuous:   DefaultContinuous,
		Break:        DefaultBreak,
		TickInterval: DefaultTickInterval,
	}
}

// Validate checks every duration is positive and fills a missing tick interval.
func (config *TimerConfig) Validate() error {
	if config.TickInterval == 0 {
		config.TickInterval = DefaultTickInterval
	}
	if config.Continuous <= 0 {
		return fmt.Errorf("%w: continuous duration must be positive, got %s", ErrInvalidConfig, config.Continuous)
	}
	if config.Break <= 0 {
		return fmt.Errorf("%w: break duration must be positive, got %s", ErrInvalidConfig, config.Break)
	}
	if config.TickInterval < 0 {
		return fmt.Errorf("%w: tick interval must be positive, got %s", ErrInvalidConfig, config.TickInterval)
	}
	return nil
}
