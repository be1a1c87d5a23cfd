package mission

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/portal/internal/models"
)

// FailureSchedule is the wait after the nth consecutive mismatch. Streaks
// longer than the schedule stay on the last step.
var FailureSchedule = []time.Duration{
	1 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
	15 * time.Minute,
	20 * time.Minute,
}

// SuccessCooldown is the flat wait after a successful validation
const SuccessCooldown = 15 * time.Minute

// FailureWait returns the wait owed after failures consecutive mismatches
func FailureWait(failures int) time.Duration {
	if failures <= 0 {
		return 0
	}
	idx := failures - 1
	if idx >= len(FailureSchedule) {
		idx = len(FailureSchedule) - 1
	}
	return FailureSchedule[idx]
}

// CooldownKind names which gate is blocking a scanner
type CooldownKind string

const (
	CooldownNone    CooldownKind = "none"
	CooldownFailure CooldownKind = "failure"
	CooldownSuccess CooldownKind = "success"
)

// Cooldown is the scanner's gate state at a point in time
type Cooldown struct {
	Kind  CooldownKind
	Until time.Time

	// Streak is the consecutive failure count behind a failure wait
	Streak int
}

// Active reports whether the gate blocks a scan at now
func (c Cooldown) Active(now time.Time) bool {
	return c.Kind != CooldownNone && now.Before(c.Until)
}

// Remaining is the time left on the gate, never negative
func (c Cooldown) Remaining(now time.Time) time.Duration {
	if !c.Active(now) {
		return 0
	}
	return c.Until.Sub(now)
}

// CooldownFor derives the gate for a player. The failure gate is checked
// before the success gate.
func CooldownFor(p *models.Player, now time.Time) Cooldown {
	if p == nil {
		return Cooldown{Kind: CooldownNone}
	}

	if p.ConsecutiveFailures > 0 && p.LastScanAttemptAt != nil {
		until := p.LastScanAttemptAt.Add(FailureWait(p.ConsecutiveFailures))
		if now.Before(until) {
			return Cooldown{Kind: CooldownFailure, Until: until, Streak: p.ConsecutiveFailures}
		}
	}

	if p.LastValidationAt != nil {
		until := p.LastValidationAt.Add(SuccessCooldown)
		if now.Before(until) {
			return Cooldown{Kind: CooldownSuccess, Until: until}
		}
	}

	return Cooldown{Kind: CooldownNone}
}

// CooldownError reports a blocked scan; it matches ErrCooldownActive
type CooldownError struct {
	Kind      CooldownKind
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	wait := formatWait(e.Remaining)
	if e.Kind == CooldownSuccess {
		return fmt.Sprintf("you just completed a mission; wait %s before scanning again", wait)
	}
	return fmt.Sprintf("too many wrong scans; wait %s before trying again", wait)
}

func (e *CooldownError) Unwrap() error {
	return ErrCooldownActive
}

// Public marks the error as safe to show to players
func (e *CooldownError) Public() bool {
	return true
}

// formatWait rounds up to whole seconds, e.g. "4m30s"
func formatWait(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	rounded := d.Truncate(time.Second)
	if rounded < d {
		rounded += time.Second
	}
	return rounded.String()
}
