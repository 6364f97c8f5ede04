package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"eyecare/internal/core/model"
	"eyecare/internal/core/service"
	"eyecare/internal/log"
	"eyecare/internal/storage"
	"eyecare/internal/ui/preferences"
)

const (
	// AppName names the settings directory and the instance lock.
	AppName = "EyeCare"

	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ConfigPath string
	Continuous time.Duration
	Break      time.Duration
	Tick       time.Duration

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultConfigPath := storage.DefaultPath(AppName)
	app.Flag("config", "Path to the YAML settings file.").Default(defaultConfigPath).StringVar(&c.ConfigPath)
	app.Flag("continuous", "Screen time before a break (overrides the settings file).").DurationVar(&c.Continuous)
	app.Flag("break", "Break length (overrides the settings file).").DurationVar(&c.Break)
	app.Flag("tick", "How often the remaining time is refreshed.").Default(model.DefaultTickInterval.String()).DurationVar(&c.Tick)

	return c
}

// LoadSettings reads the settings file and applies the flag overrides.
func (c RootCommand) LoadSettings() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	if c.ConfigPath != "" {
		loaded, err := storage.LoadSettings(c.ConfigPath)
		if err != nil {
			return settings, fmt.Errorf("could not load settings: %w", err)
		}
		settings = loaded
	}

	return settings.WithOverrides(c.Continuous, c.Break), nil
}

// NewService builds the timer service for the given settings.
func (c RootCommand) NewService(settings preferences.Settings) (*service.Service, error) {
	svc, err := service.New(service.Config{
		Timer:  settings.TimerConfig(c.Tick),
		Logger: c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create timer service: %w", err)
	}
	return svc, nil
}
