// Package screen is the main timer window: a progress bar, the remaining time,
// the phase label and start/stop buttons.
package screen

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"eyecare/internal/core/service"
	"eyecare/internal/core/timekeeper"
)

// Controller is the part of the timer service the screen needs.
type Controller interface {
	Start()
	Stop()
	Subscribe() *service.Subscription
}

// Window manages the timer screen. The screen only observes the timer while it
// is visible; hiding it detaches without touching the countdown.
type Window struct {
	window     fyne.Window
	controller Controller

	phaseLabel  *widget.Label
	timerLabel  *canvas.Text
	progress    *widget.ProgressBar
	startButton *widget.Button
	stopButton  *widget.Button
	banner      *widget.Label

	subscription *service.Subscription
}

// New creates the timer window.
func New(app fyne.App, controller Controller) *Window {
	window := app.NewWindow("20-20-20")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	phaseLabel := widget.NewLabelWithStyle("Stopped", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	timerLabel := canvas.NewText("00:00", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 48

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	banner := widget.NewLabel("")
	banner.Importance = widget.WarningImportance
	banner.Wrapping = fyne.TextWrapWord
	banner.Hide()

	screen := &Window{
		window:      window,
		controller:  controller,
		phaseLabel:  phaseLabel,
		timerLabel:  timerLabel,
		progress:    progress,
		banner:      banner,
		startButton: widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), controller.Start),
		stopButton:  widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), controller.Stop),
	}
	screen.startButton.Importance = widget.HighImportance

	content := container.NewBorder(
		banner,
		container.NewGridWithColumns(2, screen.startButton, screen.stopButton),
		nil,
		nil,
		container.NewVBox(timerLabel, phaseLabel, progress),
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(320, 240))
	window.SetCloseIntercept(screen.Hide)

	screen.render(timekeeper.StoppedState())
	return screen
}

// Show displays the window and attaches it to the timer.
func (screen *Window) Show() {
	if screen.subscription == nil {
		screen.subscription = screen.controller.Subscribe()
		go screen.watch(screen.subscription)
	}
	screen.window.Show()
	screen.window.RequestFocus()
}

// Hide hides the window and detaches it from the timer.
func (screen *Window) Hide() {
	if screen.subscription != nil {
		screen.subscription.Close()
		screen.subscription = nil
	}
	screen.window.Hide()
}

// QuitOnClose makes closing the window quit the application, for platforms
// without a tray to bring it back.
func (screen *Window) QuitOnClose(app fyne.App) {
	screen.window.SetCloseIntercept(func() {
		screen.Hide()
		app.Quit()
	})
}

// SetWarning shows a warning banner; an empty message hides it.
func (screen *Window) SetWarning(message string) {
	screen.banner.SetText(message)
	if message == "" {
		screen.banner.Hide()
		return
	}
	screen.banner.Show()
}

func (screen *Window) watch(subscription *service.Subscription) {
	for event := range subscription.Events() {
		fyne.Do(func() {
			screen.render(event.State)
		})
	}
}

func (screen *Window) render(state timekeeper.State) {
	view := ViewFor(state)

	screen.timerLabel.Text = view.Time
	screen.timerLabel.Refresh()
	screen.phaseLabel.SetText(view.Phase)
	screen.progress.SetValue(view.Progress)

	if view.CanStart {
		screen.startButton.Enable()
	} else {
		screen.startButton.Disable()
	}
	if view.CanStop {
		screen.stopButton.Enable()
	} else {
		screen.stopButton.Disable()
	}
}
