// Package pomodoro implements the countdown behind `focus pomodoro`. The
// Timer is a plain state machine; the caller drives Tick once per second.
package pomodoro

import (
	"errors"
	"fmt"
	"time"

	"github.com/fastygo/focus/internal/validate"
)

const DefaultDuration = 25 * time.Minute

// Bell is written to the terminal while the alarm rings.
const Bell = "\a"

// ErrRinging is returned by controls used before the alarm is dismissed.
var ErrRinging = errors.New("dismiss the alarm first")

// Presets are the quick-pick durations.
var Presets = []time.Duration{
	15 * time.Minute,
	30 * time.Minute,
	45 * time.Minute,
	60 * time.Minute,
	75 * time.Minute,
}

type Timer struct {
	initial   time.Duration
	remaining time.Duration
	running   bool
	ringing   bool
}

func New() *Timer {
	return &Timer{initial: DefaultDuration, remaining: DefaultDuration}
}

// SelectPreset loads one of Presets and stops the timer.
func (t *Timer) SelectPreset(d time.Duration) error {
	if t.ringing {
		return ErrRinging
	}
	for _, p := range Presets {
		if p == d {
			t.load(d)
			t.running = false
			return nil
		}
	}
	return fmt.Errorf("%s is not a preset", d)
}

// SetCustom loads minutes:seconds and starts counting down.
func (t *Timer) SetCustom(minutes, seconds int) error {
	if t.ringing {
		return ErrRinging
	}
	total, err := validate.TimerDuration(minutes, seconds)
	if err != nil {
		return err
	}
	t.load(time.Duration(total) * time.Second)
	t.running = true
	return nil
}

func (t *Timer) load(d time.Duration) {
	t.initial = d
	t.remaining = d
}

// Toggle starts or pauses. A finished countdown cannot be started until
// it is reset or reloaded.
func (t *Timer) Toggle() {
	if t.ringing || (!t.running && t.remaining <= 0) {
		return
	}
	t.running = !t.running
}

// Reset restores the last selected duration and stops. It does nothing
// while the alarm rings.
func (t *Timer) Reset() {
	if t.ringing {
		return
	}
	t.remaining = t.initial
	t.running = false
}

// Tick advances one second. It reports true on the tick that reaches zero.
func (t *Timer) Tick() bool {
	if !t.running {
		return false
	}
	t.remaining -= time.Second
	if t.remaining > 0 {
		return false
	}
	t.remaining = 0
	t.running = false
	t.ringing = true
	return true
}

// Dismiss silences the alarm. It is the only control accepted while ringing.
func (t *Timer) Dismiss() {
	t.ringing = false
}

func (t *Timer) Running() bool            { return t.running }
func (t *Timer) Ringing() bool            { return t.ringing }
func (t *Timer) Initial() time.Duration   { return t.initial }
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Progress is the elapsed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	if t.initial <= 0 {
		return 0
	}
	return float64(t.initial-t.remaining) / float64(t.initial)
}

// Format renders the remaining time as MM:SS; minutes may exceed 59.
func (t *Timer) Format() string {
	return FormatDuration(t.remaining)
}

func FormatDuration(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
