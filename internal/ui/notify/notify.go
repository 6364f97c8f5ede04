// Package notify sends desktop notifications when the timer changes phase.
package notify

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"eyecare/internal/core/timekeeper"
	"eyecare/internal/log"
)

// UnsupportedWarning tells the user breaks are only announced on screen.
const UnsupportedWarning = "Notifications are off. Breaks will only show in this window."

// Notifier delivers a notification to the user.
type Notifier interface {
	Send(title, message string) error
	// Supported reports whether notifications can reach the user at all.
	Supported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(string, string) error { return nil }
func (noopNotifier) Supported() bool           { return false }

// Noop is a notifier that drops everything.
var Noop Notifier = noopNotifier{}

type fyneNotifier struct {
	app fyne.App
}

// NewFyne returns a notifier backed by the fyne application.
func NewFyne(app fyne.App) Notifier {
	if app == nil {
		return Noop
	}
	return fyneNotifier{app: app}
}

func (notifier fyneNotifier) Send(title, message string) error {
	notifier.app.SendNotification(fyne.NewNotification(title, message))
	return nil
}

func (fyneNotifier) Supported() bool { return true }

// Announcer turns phase changes into notifications.
type Announcer struct {
	mu       sync.Mutex
	notifier Notifier
	logger   log.Logger
}

// NewAnnouncer returns an Announcer. A nil notifier disables notifications.
func NewAnnouncer(notifier Notifier, logger log.Logger) *Announcer {
	if notifier == nil {
		notifier = Noop
	}
	if logger == nil {
		logger = log.Noop
	}
	return &Announcer{notifier: notifier, logger: logger}
}

// SetNotifier swaps the notifier, for instance when the user turns
// notifications on or off. A nil notifier disables notifications.
func (announcer *Announcer) SetNotifier(notifier Notifier) {
	if notifier == nil {
		notifier = Noop
	}
	announcer.mu.Lock()
	defer announcer.mu.Unlock()
	announcer.notifier = notifier
}

// Supported reports whether announcements reach the user.
func (announcer *Announcer) Supported() bool {
	announcer.mu.Lock()
	defer announcer.mu.Unlock()
	return announcer.notifier.Supported()
}

// Warning returns the text to show the user when announcements cannot reach
// them, or an empty string when they can.
func (announcer *Announcer) Warning() string {
	if announcer.Supported() {
		return ""
	}
	return UnsupportedWarning
}

// Handle sends a notification for phase-change events and ignores the rest.
func (announcer *Announcer) Handle(event timekeeper.Event) {
	if event.Type != timekeeper.EventPhaseChange {
		return
	}
	announcer.mu.Lock()
	notifier := announcer.notifier
	announcer.mu.Unlock()

	title, message := Message(event.State)
	if err := notifier.Send(title, message); err != nil {
		announcer.logger.Warningf("Could not send notification: %v", err)
	}
}

// Message returns the notification text for entering the state's phase.
func Message(state timekeeper.State) (title, message string) {
	if state.Phase == timekeeper.PhaseBreak {
		return "Time for a break",
			fmt.Sprintf("Look at something 20 feet away for %s.", timekeeper.FormatRemaining(state.Total))
	}
	return "Break is over",
		fmt.Sprintf("Next break in %s.", timekeeper.FormatRemaining(state.Total))
}
