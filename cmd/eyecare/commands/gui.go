package commands

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/alecthomas/kingpin/v2"

	"eyecare/internal/platform"
	"eyecare/internal/storage"
	"eyecare/internal/ui/notify"
	"eyecare/internal/ui/preferences"
	"eyecare/internal/ui/screen"
	"eyecare/internal/ui/tray"
)

// GUICommand shows the timer window and the tray icon. fyne needs the main
// goroutine, so main runs it outside the run group.
type GUICommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	start bool
}

// NewGUICommand returns the gui command.
func NewGUICommand(rootCmd *RootCommand, app *kingpin.Application) *GUICommand {
	c := &GUICommand{rootCmd: rootCmd}
	c.Cmd = app.Command("gui", "Show the timer window (default).").Default()
	c.Cmd.Flag("start", "Start the timer right away.").BoolVar(&c.start)
	return c
}

func (c GUICommand) Name() string { return c.Cmd.FullCommand() }

func (c GUICommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	lock, err := platform.AcquireInstanceLock(AppName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = lock.Release()
	}()

	settings, err := c.rootCmd.LoadSettings()
	if err != nil {
		return err
	}

	svc, err := c.rootCmd.NewService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	fyneApp := fyneapp.NewWithID("com.eyecare.app")
	fyneApp.SetIcon(theme.VisibilityIcon())

	announcer := notify.NewAnnouncer(nil, logger)
	timerScreen := screen.New(fyneApp, svc)
	applyNotifications := func(enabled bool) {
		notifier := notify.Noop
		if enabled {
			notifier = notify.NewFyne(fyneApp)
		}
		announcer.SetNotifier(notifier)

		warning := announcer.Warning()
		timerScreen.SetWarning(warning)
		if warning != "" {
			logger.Warningf("Notifications are unavailable")
		}
	}
	applyNotifications(settings.Notifications)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := svc.UpdateTimer(updated.TimerConfig(c.rootCmd.Tick)); err != nil {
			logger.Errorf("Could not apply settings: %v", err)
			return
		}
		applyNotifications(updated.Notifications)
		if err := storage.SaveSettings(c.rootCmd.ConfigPath, updated); err != nil {
			logger.Errorf("Could not save settings: %v", err)
		}
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        timerScreen.Show,
			OnStart:       svc.Start,
			OnStop:        svc.Stop,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.VisibilityIcon())
	} else {
		logger.Warningf("System tray unsupported on this platform")
		timerScreen.QuitOnClose(fyneApp)
	}

	// The background subscriber keeps the tray and notifications in sync even
	// while the timer window is hidden.
	background := svc.Subscribe()
	defer background.Close()
	go func() {
		for event := range background.Events() {
			announcer.Handle(event)
			if trayManager == nil {
				continue
			}
			fyne.Do(func() {
				trayManager.SetStatus(screen.Status(event.State))
				trayManager.SetRunning(event.State.Running)
			})
		}
	}()

	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	if c.start {
		svc.Start()
	}
	timerScreen.Show()
	fyneApp.Run()

	return nil
}
