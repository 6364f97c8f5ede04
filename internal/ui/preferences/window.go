package preferences

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/xhit/go-str2duration/v2"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	continuous    *widget.Entry
	breakDuration *widget.Entry
	notifications *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("EyeCare Settings")

	continuous := widget.NewEntry()
	continuous.SetPlaceHolder("20m")
	breakDuration := widget.NewEntry()
	breakDuration.SetPlaceHolder("20s")
	notifications := widget.NewCheck("Notify when a phase changes", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Break every", continuous),
			widget.NewFormItem("Break length", breakDuration),
		),
		notifications,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 220))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		continuous:    continuous,
		breakDuration: breakDuration,
		notifications: notifications,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.continuous.SetText(formatDuration(settings.Continuous))
	prefs.breakDuration.SetText(formatDuration(settings.Break))
	prefs.notifications.SetChecked(settings.Notifications)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if continuous, ok := parsePositiveDuration(prefs.continuous.Text); ok {
		settings.Continuous = continuous
	}
	if breakDuration, ok := parsePositiveDuration(prefs.breakDuration.Text); ok {
		settings.Break = breakDuration
	}
	settings.Notifications = prefs.notifications.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// formatDuration renders whole seconds, "20m" or "1m30s".
func formatDuration(d time.Duration) string {
	return str2duration.String(d.Round(time.Second))
}

// parsePositiveDuration accepts the same forms as formatDuration plus a bare
// number of seconds.
func parsePositiveDuration(value string) (time.Duration, bool) {
	parsed, err := str2duration.ParseDuration(value)
	if err != nil {
		seconds, convErr := strconv.Atoi(value)
		if convErr != nil {
			return 0, false
		}
		parsed = time.Duration(seconds) * time.Second
	}
	if parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
