package sdram

import (
	"sdramctl-go/errcode"
	"sdramctl-go/x/timex"
)

// Sequencer issues the SDRAM bring-up protocol. It keeps no state between
// calls apart from its collaborators.
type Sequencer struct {
	regs Registers
	clk  timex.Clock
	wait WaitPolicy
}

// NewSequencer binds a Sequencer to a register backend and clock.
func NewSequencer(regs Registers, clk timex.Clock, wait WaitPolicy) *Sequencer {
	if clk == nil {
		clk = timex.System
	}
	return &Sequencer{regs: regs, clk: clk, wait: wait}
}

// WaitReady polls until the controller reports not-busy.
func (s *Sequencer) WaitReady() error {
	bo := s.wait.newBackoff()
	for polls := 1; ; polls++ {
		busy, err := s.regs.Busy()
		if err != nil {
			return errcode.Wrap(errcode.HardwareFault, "sdram.wait", err)
		}
		if !busy {
			return nil
		}
		if s.wait.Bounded() && polls >= s.wait.MaxPolls {
			return &errcode.E{C: errcode.HardwareFault, Op: "sdram.wait", Err: ErrControllerUnresponsive}
		}
		if bo != nil {
			s.clk.Sleep(bo.Duration())
		}
	}
}

// Issue waits for the controller and writes c.
func (s *Sequencer) Issue(c Command) error {
	if err := s.WaitReady(); err != nil {
		return err
	}
	return s.write(c)
}

func (s *Sequencer) write(c Command) error {
	return errcode.Wrap(errcode.HardwareFault, "sdram.command", s.regs.WriteCommand(c))
}

// RunBringUp executes the power-up sequence on target. The first failure
// aborts it; no step is retried.
func (s *Sequencer) RunBringUp(target TargetMask, cfg Config) error {
	// Clock enable, then hold for the device's power-up time.
	if err := s.Issue(ClockEnable(target)); err != nil {
		return err
	}
	s.clk.Sleep(cfg.powerUpDelay())

	if err := s.Issue(PrechargeAll(target)); err != nil {
		return err
	}

	// Priming refreshes go back-to-back after a single ready check.
	if err := s.WaitReady(); err != nil {
		return err
	}
	ar := AutoRefresh(target, cfg.AutoRefreshCycles)
	for i := uint8(0); i < cfg.RefreshPrimes; i++ {
		if err := s.write(ar); err != nil {
			return err
		}
	}

	if err := s.Issue(LoadMode(target, cfg.ModeRegister)); err != nil {
		return err
	}

	if err := s.WaitReady(); err != nil {
		return err
	}
	if err := s.regs.WriteRefreshTimer(cfg.RefreshTimer); err != nil {
		return errcode.Wrap(errcode.HardwareFault, "sdram.refresh_timer", err)
	}

	return s.WaitReady()
}
