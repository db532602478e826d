package sim

import (
	"time"

	"sdramctl-go/drivers/sdram"
)

// Config tunes the controller model.
type Config struct {
	// BusyPolls is how many polls report busy after each command.
	BusyPolls int
	// Stuck keeps the busy flag raised forever.
	Stuck bool
	// PollCost is fake time consumed by every status read.
	PollCost time.Duration
	// MinPrimes is the AutoRefresh count the device needs before LoadMode.
	// Zero means 2.
	MinPrimes int
	// BusUp reports the owning bus controller as already started.
	BusUp bool
}

// Controller models the SDRAM block of an FMC and the device behind it.
type Controller struct {
	cfg   Config
	clock *Clock

	busUp   bool
	pending int // polls left until busy clears
	lastCmd sdram.Command
	hasCmd  bool

	ops        []Op
	violations []string
	dev        deviceModel

	// FailWrites, when set, is returned by every register write.
	FailWrites error
	// FailReads, when set, is returned by every status read.
	FailReads error
}

// deviceModel follows the SDRAM device through its power-up protocol.
type deviceModel struct {
	banksConfigured [sdram.NumBanks]bool
	clockOnAt       time.Time
	clockOn         bool
	precharged      bool
	refreshes       int
	modeSet         bool
	mode            uint32
	timerSet        bool
	reload          uint32
}

// New returns a model with its own fake clock.
func New(cfg Config) *Controller {
	if cfg.MinPrimes == 0 {
		cfg.MinPrimes = 2
	}
	c := &Controller{cfg: cfg, clock: NewClock(), busUp: cfg.BusUp}
	c.clock.onSleep = func(d time.Duration) {
		c.record(Op{Kind: OpSleep, Sleep: d})
	}
	return c
}

// Clock returns the fake clock shared with the model. Sleeps taken on it
// appear in the trace.
func (c *Controller) Clock() *Clock { return c.clock }

// Started implements sdram.BusController.
func (c *Controller) Started() bool { return c.busUp }

// Start implements sdram.BusController.
func (c *Controller) Start() error {
	c.busUp = true
	c.record(Op{Kind: OpBusStart})
	return nil
}

// WriteBankConfig implements sdram.Registers.
func (c *Controller) WriteBankConfig(b sdram.Bank, control, timing uint32) error {
	if c.FailWrites != nil {
		return c.FailWrites
	}
	c.record(Op{Kind: OpBankConfig, Bank: b, Control: control, Timing: timing})
	if !c.busUp {
		c.violate("bank configuration before bus start")
	}
	if b < sdram.NumBanks {
		c.dev.banksConfigured[b] = true
	}
	return nil
}

// WriteCommand implements sdram.Registers.
func (c *Controller) WriteCommand(cmd sdram.Command) error {
	if c.FailWrites != nil {
		return c.FailWrites
	}
	c.record(Op{Kind: OpCommand, Command: cmd})
	c.checkCommand(cmd)
	c.lastCmd, c.hasCmd = cmd, true
	c.pending = c.cfg.BusyPolls
	return nil
}

// WriteRefreshTimer implements sdram.Registers.
func (c *Controller) WriteRefreshTimer(reload uint32) error {
	if c.FailWrites != nil {
		return c.FailWrites
	}
	c.record(Op{Kind: OpRefreshTimer, Reload: reload})
	if c.pending > 0 || c.cfg.Stuck {
		c.violate("refresh timer written while busy")
	}
	c.dev.timerSet, c.dev.reload = true, reload
	return nil
}

// Busy implements sdram.Registers.
func (c *Controller) Busy() (bool, error) {
	if c.FailReads != nil {
		return false, c.FailReads
	}
	busy := c.cfg.Stuck || c.pending > 0
	if c.pending > 0 {
		c.pending--
	}
	c.record(Op{Kind: OpPoll, Busy: busy})
	c.clock.Advance(c.cfg.PollCost)
	return busy, nil
}

func (c *Controller) checkCommand(cmd sdram.Command) {
	backToBackRefresh := c.hasCmd && cmd.Mode == sdram.ModeAutoRefresh &&
		c.lastCmd.Mode == sdram.ModeAutoRefresh
	if (c.pending > 0 || c.cfg.Stuck) && !backToBackRefresh {
		c.violate(cmd.Mode.String() + " issued while busy")
	}
	if !c.dev.banksConfigured[sdram.Bank0] || !c.dev.banksConfigured[sdram.Bank1] {
		c.violate(cmd.Mode.String() + " before bank configuration")
	}

	d := &c.dev
	switch cmd.Mode {
	case sdram.ModeClockEnable:
		d.clockOn, d.clockOnAt = true, c.clock.Now()
	case sdram.ModePrechargeAll:
		if !d.clockOn {
			c.violate("precharge before clock enable")
		} else if c.clock.Now().Sub(d.clockOnAt) < DeviceInitDelay {
			c.violate("precharge before power-up wait elapsed")
		}
		d.precharged = true
	case sdram.ModeAutoRefresh:
		if !d.precharged {
			c.violate("auto-refresh before precharge")
		}
		d.refreshes++
	case sdram.ModeLoadMode:
		if d.refreshes < c.cfg.MinPrimes {
			c.violate("load mode before refresh priming")
		}
		d.modeSet, d.mode = true, cmd.Payload
	}
}

func (c *Controller) record(op Op) {
	op.At = c.clock.Elapsed()
	c.ops = append(c.ops, op)
}

func (c *Controller) violate(msg string) { c.violations = append(c.violations, msg) }

// Trace returns every recorded access in order.
func (c *Controller) Trace() []Op { return append([]Op(nil), c.ops...) }

// Writes returns the trace without polls, i.e. everything that changed
// hardware state or time.
func (c *Controller) Writes() []Op {
	var out []Op
	for _, op := range c.ops {
		if op.Kind != OpPoll {
			out = append(out, op)
		}
	}
	return out
}

// Commands returns the commands written, in order.
func (c *Controller) Commands() []sdram.Command {
	var out []sdram.Command
	for _, op := range c.ops {
		if op.Kind == OpCommand {
			out = append(out, op.Command)
		}
	}
	return out
}

// ClearTrace drops recorded accesses but keeps the device model.
func (c *Controller) ClearTrace() { c.ops = nil }

// Violations lists protocol violations seen so far.
func (c *Controller) Violations() []string { return append([]string(nil), c.violations...) }

// Operational reports whether the modelled device finished bring-up.
func (c *Controller) Operational() bool {
	d := c.dev
	return d.clockOn && d.precharged && d.refreshes >= c.cfg.MinPrimes &&
		d.modeSet && d.timerSet && len(c.violations) == 0
}

// ModeRegister returns the payload of the last LoadMode.
func (c *Controller) ModeRegister() uint32 { return c.dev.mode }

// RefreshReload returns the last refresh-timer reload written.
func (c *Controller) RefreshReload() uint32 { return c.dev.reload }
