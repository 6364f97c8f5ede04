package screen

import "eyecare/internal/core/timekeeper"

// View is what the timer screen shows for a given state.
type View struct {
	Time     string
	Phase    string
	Progress float64
	CanStart bool
	CanStop  bool
}

// ViewFor derives the screen contents from a timer state.
func ViewFor(state timekeeper.State) View {
	if !state.Running {
		return View{
			Time:     timekeeper.FormatRemaining(0),
			Phase:    "Stopped",
			CanStart: true,
		}
	}
	return View{
		Time:     timekeeper.FormatRemaining(state.Remaining),
		Phase:    state.Phase.Label(),
		Progress: state.Progress(),
		CanStop:  true,
	}
}

// Status is the one-line summary used by the tray menu.
func Status(state timekeeper.State) string {
	if !state.Running {
		return "stopped"
	}
	if state.Phase == timekeeper.PhaseBreak {
		return "break ends in " + timekeeper.FormatRemaining(state.Remaining)
	}
	return "next break in " + timekeeper.FormatRemaining(state.Remaining)
}
