// Package sim is a software model of an FMC SDRAM controller and the
// device behind it. It records every register access against a fake clock
// and flags protocol violations, so bring-up can be exercised without
// hardware.
package sim

import (
	"fmt"
	"time"

	"sdramctl-go/drivers/sdram"
	"sdramctl-go/x/timex"
)

// Ensure the model satisfies the driver contracts at compile time.
var (
	_ sdram.Registers     = (*Controller)(nil)
	_ sdram.BusController = (*Controller)(nil)
	_ timex.Clock         = (*Clock)(nil)
)

// DeviceInitDelay is the power-up wait an SDRAM device needs between
// clock enable and its first precharge.
const DeviceInitDelay = 100 * time.Microsecond

// OpKind classifies a recorded access.
type OpKind uint8

const (
	OpBusStart OpKind = iota
	OpBankConfig
	OpCommand
	OpRefreshTimer
	OpPoll
	OpSleep
)

func (k OpKind) String() string {
	switch k {
	case OpBusStart:
		return "bus_start"
	case OpBankConfig:
		return "bank_config"
	case OpCommand:
		return "command"
	case OpRefreshTimer:
		return "refresh_timer"
	case OpPoll:
		return "poll"
	case OpSleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// Op is one recorded access. Only the fields relevant to Kind are set.
type Op struct {
	Kind OpKind
	At   time.Duration // fake time since the model was created

	Bank    sdram.Bank
	Control uint32
	Timing  uint32

	Command sdram.Command
	Reload  uint32
	Busy    bool
	Sleep   time.Duration
}

func (o Op) String() string {
	switch o.Kind {
	case OpBankConfig:
		return fmt.Sprintf("%8v bank_config %s sdcr=0x%04X sdtr=0x%07X", o.At, o.Bank, o.Control, o.Timing)
	case OpCommand:
		c := o.Command
		s := fmt.Sprintf("%8v command %s %s", o.At, c.Mode, c.Target)
		switch c.Mode {
		case sdram.ModeLoadMode:
			s += fmt.Sprintf(" mrd=0x%04X", c.Payload)
		case sdram.ModeAutoRefresh:
			s += fmt.Sprintf(" nrfs=%d", c.Payload)
		}
		return s
	case OpRefreshTimer:
		return fmt.Sprintf("%8v refresh_timer 0x%04X", o.At, o.Reload)
	case OpPoll:
		return fmt.Sprintf("%8v poll busy=%t", o.At, o.Busy)
	case OpSleep:
		return fmt.Sprintf("%8v sleep %v", o.At, o.Sleep)
	default:
		return fmt.Sprintf("%8v %s", o.At, o.Kind)
	}
}

// Clock is a fake timex.Clock. Sleep advances time instantly.
type Clock struct {
	start, now time.Time
	onSleep    func(d time.Duration)
}

// NewClock returns a fake clock starting at the Unix epoch.
func NewClock() *Clock {
	t := time.Unix(0, 0)
	return &Clock{start: t, now: t}
}

func (c *Clock) Now() time.Time { return c.now }

func (c *Clock) Sleep(d time.Duration) {
	if d < 0 {
		d = 0
	}
	if c.onSleep != nil {
		c.onSleep(d)
	}
	c.now = c.now.Add(d)
}

// Advance moves time forward without recording a sleep.
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Elapsed returns fake time since the clock was created.
func (c *Clock) Elapsed() time.Duration { return c.now.Sub(c.start) }
