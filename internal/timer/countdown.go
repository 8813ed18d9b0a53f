// Package timer implements the focus-session countdown as a plain state
// machine. Scheduling of ticks is left to the caller; every tick carries the
// run ID it was scheduled for so ticks from an earlier run are ignored.
package timer

import "github.com/sandeepkv93/focusnova/internal/model"

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateExpired State = "expired"
)

type Countdown struct {
	durationMin int
	secondsLeft int
	state       State
	runID       uint64
}

// New returns an idle countdown. An invalid duration falls back to the default.
func New(durationMin int) *Countdown {
	if model.ValidateDuration(durationMin) != nil {
		durationMin = model.DefaultDurationMinutes
	}
	return &Countdown{
		durationMin: durationMin,
		secondsLeft: durationMin * 60,
		state:       StateIdle,
	}
}

func (c *Countdown) DurationMinutes() int { return c.durationMin }
func (c *Countdown) TotalSeconds() int    { return c.durationMin * 60 }
func (c *Countdown) SecondsLeft() int     { return c.secondsLeft }
func (c *Countdown) State() State         { return c.state }
func (c *Countdown) Running() bool        { return c.state == StateRunning }
func (c *Countdown) RunID() uint64        { return c.runID }

// Progress is the elapsed fraction of the current block in [0, 1].
func (c *Countdown) Progress() float64 {
	total := c.TotalSeconds()
	if total <= 0 {
		return 0
	}
	p := float64(total-c.secondsLeft) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Start begins a new run and returns its ID. Starting a running countdown
// keeps the current run.
func (c *Countdown) Start() uint64 {
	if c.state == StateRunning {
		return c.runID
	}
	if c.secondsLeft <= 0 {
		c.secondsLeft = c.TotalSeconds()
	}
	c.runID++
	c.state = StateRunning
	return c.runID
}

func (c *Countdown) Pause() {
	if c.state == StateRunning {
		c.state = StateIdle
	}
}

func (c *Countdown) Reset() {
	c.state = StateIdle
	c.secondsLeft = c.TotalSeconds()
}

// Tick advances the run identified by runID by one second. It reports true
// exactly once, when the countdown reaches zero.
func (c *Countdown) Tick(runID uint64) bool {
	if c.state != StateRunning || runID != c.runID {
		return false
	}
	if c.secondsLeft > 0 {
		c.secondsLeft--
	}
	if c.secondsLeft > 0 {
		return false
	}
	c.state = StateExpired
	return true
}

// SetDuration changes the block length. When not running the remaining time
// is reset; a running countdown keeps its remaining time, clamped to the new
// total.
func (c *Countdown) SetDuration(minutes int) error {
	if err := model.ValidateDuration(minutes); err != nil {
		return err
	}
	c.durationMin = minutes
	if c.state != StateRunning {
		c.secondsLeft = c.TotalSeconds()
		if c.state == StateExpired {
			c.state = StateIdle
		}
		return nil
	}
	if c.secondsLeft > c.TotalSeconds() {
		c.secondsLeft = c.TotalSeconds()
	}
	return nil
}
