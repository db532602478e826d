package sdram

import (
	"errors"
	"time"

	"github.com/jpillora/backoff"
)

// ErrControllerUnresponsive means the busy flag never cleared within the
// wait policy's budget: a clocking or wiring defect, not a logic error.
var ErrControllerUnresponsive = errors.New("controller busy flag never cleared")

// WaitPolicy bounds the busy-flag poll loop.
//
// The zero value spins without limit, which is what bare-metal bring-up
// does. MaxPolls > 0 turns exhaustion into a hardware fault. A non-zero
// Min sleeps between polls, growing by Factor up to Max.
type WaitPolicy struct {
	MaxPolls int
	Min      time.Duration
	Max      time.Duration
	Factor   float64
}

// Unbounded polls until the controller reports not-busy.
func Unbounded() WaitPolicy { return WaitPolicy{} }

// Bounded gives up after maxPolls polls, backing off from min to max.
func Bounded(maxPolls int, min, max time.Duration) WaitPolicy {
	return WaitPolicy{MaxPolls: maxPolls, Min: min, Max: max, Factor: 2}
}

// Bounded reports whether the policy can give up.
func (p WaitPolicy) Bounded() bool { return p.MaxPolls > 0 }

// newBackoff returns nil for pure spinning.
func (p WaitPolicy) newBackoff() *backoff.Backoff {
	if p.Min <= 0 {
		return nil
	}
	max := p.Max
	if max < p.Min {
		max = p.Min
	}
	factor := p.Factor
	if factor < 1 {
		factor = 2
	}
	return &backoff.Backoff{Min: p.Min, Max: max, Factor: factor, Jitter: false}
}
