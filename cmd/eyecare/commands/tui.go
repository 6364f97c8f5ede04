package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"

	"eyecare/internal/ui/terminal"
)

// TUICommand shows the timer in the terminal.
type TUICommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	start bool
}

// NewTUICommand returns the tui command.
func NewTUICommand(rootCmd *RootCommand, app *kingpin.Application) *TUICommand {
	c := &TUICommand{rootCmd: rootCmd}
	c.Cmd = app.Command("tui", "Show the timer in the terminal.")
	c.Cmd.Flag("start", "Start the timer right away.").BoolVar(&c.start)
	return c
}

func (c TUICommand) Name() string { return c.Cmd.FullCommand() }

func (c TUICommand) Run(ctx context.Context) error {
	settings, err := c.rootCmd.LoadSettings()
	if err != nil {
		return err
	}

	svc, err := c.rootCmd.NewService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	if c.start {
		svc.Start()
	}

	model := terminal.New(svc, "Desktop notifications are not available in the terminal.")
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(c.rootCmd.Stdin),
		tea.WithOutput(c.rootCmd.Stdout),
	)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal screen failed: %w", err)
	}
	return nil
}
