package timex

import "time"

// Clock is the time source used by drivers that must wait on hardware.
// Sleep must block for at least d; over-sleeping is acceptable.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// System is the wall clock backed by the runtime.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// AtLeast returns d raised to floor.
func AtLeast(d, floor time.Duration) time.Duration {
	if d < floor {
		return floor
	}
	return d
}
