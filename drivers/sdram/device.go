package sdram

import (
	"sdramctl-go/errcode"
	"sdramctl-go/x/timex"
)

// State is the coarse lifecycle of the SDRAM device.
type State uint8

const (
	Uninitialized State = iota // owning bus controller not confirmed up
	Idle                       // registers unprogrammed or stopped
	Ready                      // bring-up complete; memory is usable
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Option customises a Device.
type Option func(*Device)

// WithWaitPolicy replaces the default unbounded busy poll.
func WithWaitPolicy(p WaitPolicy) Option { return func(d *Device) { d.wait = p } }

// WithClock replaces the system clock.
func WithClock(c timex.Clock) Option { return func(d *Device) { d.clk = c } }

// OnTransition registers fn to be called after every state change.
func OnTransition(fn func(from, to State)) Option {
	return func(d *Device) { d.observe = fn }
}

// Device is the lifecycle controller of one SDRAM population. It is not
// safe for concurrent use; bring-up runs before anything else can touch
// the memory.
type Device struct {
	regs Registers
	bus  BusController
	clk  timex.Clock
	wait WaitPolicy
	seq  *Sequencer

	state   State
	cfg     Config
	observe func(from, to State)
}

// New constructs a Device in the Uninitialized state. It does not touch
// the hardware.
func New(regs Registers, bus BusController, opts ...Option) *Device {
	d := &Device{regs: regs, bus: bus, clk: timex.System}
	for _, o := range opts {
		o(d)
	}
	d.seq = NewSequencer(regs, d.clk, d.wait)
	return d
}

// State returns the current lifecycle state.
func (d *Device) State() State { return d.state }

// Config returns the configuration of the current Ready session.
func (d *Device) Config() (Config, bool) {
	if d.state != Ready {
		return Config{}, false
	}
	return d.cfg, true
}

// Target returns the banks addressed by the current Ready session.
func (d *Device) Target() TargetMask {
	if d.state != Ready {
		return 0
	}
	return d.cfg.Target()
}

// Sequencer exposes the command sequencer bound to this device.
func (d *Device) Sequencer() *Sequencer { return d.seq }

// Init makes sure the owning bus controller runs and moves the device to
// Idle. Calling it again has no effect.
func (d *Device) Init() error {
	if !d.bus.Started() {
		if err := d.bus.Start(); err != nil {
			return errcode.Wrap(errcode.BusNotReady, "sdram.init", err)
		}
	}
	if d.state == Uninitialized {
		d.set(Idle)
	}
	return nil
}

// Start programs both banks and runs the bring-up protocol. On a Ready
// device it returns at once without touching the hardware, since running
// the protocol again would corrupt live memory.
//
// Start panics if the device was never initialised.
func (d *Device) Start(cfg Config) error {
	switch d.state {
	case Ready:
		return nil
	case Idle:
	default:
		panic(&errcode.E{C: errcode.InvalidState, Op: "sdram.start", Msg: d.state.String()})
	}
	if err := cfg.Validate(); err != nil {
		return &errcode.E{C: errcode.InvalidParams, Op: "sdram.start", Err: err}
	}

	// Shared fields live in bank 1's registers, so both banks are written
	// even when only one is populated.
	for b := Bank(0); b < NumBanks; b++ {
		if err := d.regs.WriteBankConfig(b, cfg.Control, cfg.Timing); err != nil {
			return errcode.Wrap(errcode.HardwareFault, "sdram.bank_config", err)
		}
	}

	if err := d.seq.RunBringUp(cfg.Target(), cfg); err != nil {
		return err
	}
	d.cfg = cfg
	d.set(Ready)
	return nil
}

// Stop returns a Ready device to Idle. The transition is logical only: no
// self-refresh or power-down command reaches the memory.
//
// Stop panics if the device was never initialised.
func (d *Device) Stop() {
	switch d.state {
	case Ready:
		d.set(Idle)
	case Idle:
	default:
		panic(&errcode.E{C: errcode.InvalidState, Op: "sdram.stop", Msg: d.state.String()})
	}
}

func (d *Device) set(s State) {
	from := d.state
	d.state = s
	if d.observe != nil && from != s {
		d.observe(from, s)
	}
}
