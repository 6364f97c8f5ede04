// Package timekeepertest provides a hand-driven clock for tests of code built
// on top of the timekeeper.
package timekeepertest

import (
	"fmt"
	"sync"
	"time"

	"eyecare/internal/core/timekeeper"
)

// ManualClock hands out tickers that only fire when Tick is called.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	step    time.Duration
	tickers []*manualTicker
}

// NewManualClock returns a clock starting at the Unix epoch that advances by
// step on every Tick.
func NewManualClock(step time.Duration) *ManualClock {
	return &ManualClock{now: time.Unix(0, 0), step: step}
}

// NewTicker satisfies timekeeper.Clock.
func (c *ManualClock) NewTicker(time.Duration) timekeeper.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	ticker := &manualTicker{c: make(chan time.Time), stop: make(chan struct{})}
	c.tickers = append(c.tickers, ticker)
	return ticker
}

// Now satisfies timekeeper.Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Tickers returns how many tickers were created.
func (c *ManualClock) Tickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// Tick advances the clock and fires the newest live ticker, waiting until the
// timer loop has received the tick.
func (c *ManualClock) Tick() error {
	c.mu.Lock()
	c.now = c.now.Add(c.step)
	now := c.now
	var ticker *manualTicker
	for i := len(c.tickers) - 1; i >= 0; i-- {
		if !c.tickers[i].isStopped() {
			ticker = c.tickers[i]
			break
		}
	}
	c.mu.Unlock()

	if ticker == nil {
		return fmt.Errorf("no live ticker")
	}

	select {
	case ticker.c <- now:
		return nil
	case <-ticker.stop:
		return fmt.Errorf("ticker stopped")
	case <-time.After(time.Second):
		return fmt.Errorf("tick not received")
	}
}

type manualTicker struct {
	c        chan time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func (t *manualTicker) C() <-chan time.Time { return t.c }

func (t *manualTicker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

func (t *manualTicker) isStopped() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}
