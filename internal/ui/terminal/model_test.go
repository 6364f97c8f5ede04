package terminal_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eyecare/internal/core/model"
	"eyecare/internal/core/service"
	"eyecare/internal/core/timekeeper"
	"eyecare/internal/core/timekeeper/timekeepertest"
	"eyecare/internal/ui/terminal"
)

func newTestService(t *testing.T) *service.Service {
	t.Helper()

	svc, err := service.New(service.Config{
		Timer: model.TimerConfig{
			Continuous:   10 * time.Second,
			Break:        5 * time.Second,
			TickInterval: time.Second,
		},
		Clock: timekeepertest.NewManualClock(time.Second),
	})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func keyPress(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

// next runs the pending command and feeds its message back to the model.
func next(t *testing.T, m tea.Model, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- cmd() }()
	select {
	case msg := <-msgs:
		return m.Update(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("command did not return")
		return nil, nil
	}
}

func TestModelRendersSnapshotOnInit(t *testing.T) {
	svc := newTestService(t)
	m := terminal.New(svc, "")

	updated, _ := next(t, m, m.Init())

	state := updated.(terminal.Model).State()
	assert.Equal(t, timekeeper.StoppedState(), state)
	assert.Contains(t, updated.View(), "00:00")
	assert.Contains(t, updated.View(), "Stopped")
}

func TestModelStartAndStopKeys(t *testing.T) {
	svc := newTestService(t)
	var m tea.Model = terminal.New(svc, "")
	m, cmd := next(t, m, m.Init())

	m, _ = m.Update(keyPress("s"))
	require.True(t, svc.State().Running)

	m, cmd = next(t, m, cmd)
	state := m.(terminal.Model).State()
	assert.True(t, state.Running)
	assert.Equal(t, 10*time.Second, state.Remaining)
	assert.Contains(t, m.View(), "00:10")
	assert.Contains(t, m.View(), "Keep working")

	m, _ = m.Update(keyPress("x"))
	assert.False(t, svc.State().Running)

	m, _ = next(t, m, cmd)
	assert.False(t, m.(terminal.Model).State().Running)
}

func TestModelQuitDetachesWithoutStoppingTimer(t *testing.T) {
	svc := newTestService(t)
	svc.Start()
	var m tea.Model = terminal.New(svc, "notifications unavailable")
	assert.Contains(t, m.View(), "notifications unavailable")

	_, cmd := m.Update(keyPress("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, svc.State().Running)
}

func TestModelQuitsWhenServiceCloses(t *testing.T) {
	svc := newTestService(t)
	var m tea.Model = terminal.New(svc, "")
	m, cmd := next(t, m, m.Init())

	svc.Close()

	_, cmd = next(t, m, cmd)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
