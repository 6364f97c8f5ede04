package preferences

import (
	"time"

	"eyecare/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Continuous    time.Duration
	Break         time.Duration
	Notifications bool
}

// DefaultSettings returns default settings for EyeCare.
func DefaultSettings() Settings {
	return Settings{
		Continuous:    model.DefaultContinuous,
		Break:         model.DefaultBreak,
		Notifications: true,
	}
}

// TimerConfig converts settings to a timer configuration.
func (settings Settings) TimerConfig(tickInterval time.Duration) model.TimerConfig {
	return model.TimerConfig{
		Continuous:   settings.Continuous,
		Break:        settings.Break,
		TickInterval: tickInterval,
	}
}

// WithOverrides returns a copy with the non-zero durations replacing the
// stored ones.
func (settings Settings) WithOverrides(continuous, breakDuration time.Duration) Settings {
	if continuous != 0 {
		settings.Continuous = continuous
	}
	if breakDuration != 0 {
		settings.Break = breakDuration
	}
	return settings
}
