package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"eyecare/internal/core/timekeeper"
	"eyecare/internal/ui/notify"
)

// RunCommand runs the timer without a screen, printing every phase change.
type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}
	c.Cmd = app.Command("run", "Run the timer headless and print phase changes.")
	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	settings, err := c.rootCmd.LoadSettings()
	if err != nil {
		return err
	}

	svc, err := c.rootCmd.NewService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	logger.Warningf("Desktop notifications are not available in headless mode")

	sub := svc.Subscribe()
	defer sub.Close()
	svc.Start()

	fmt.Fprintf(c.rootCmd.Stdout, "Break every %s for %s. Press Ctrl+C to stop.\n",
		timekeeper.FormatRemaining(settings.Continuous), timekeeper.FormatRemaining(settings.Break))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if event.Type != timekeeper.EventPhaseChange {
				continue
			}
			title, message := notify.Message(event.State)
			fmt.Fprintf(c.rootCmd.Stdout, "%s: %s\n", title, message)
		}
	}
}
