// Package fmc provides register backends for the SDRAM block of an
// STM32-style Flexible Memory Controller.
//
// All backends share one register layout and differ only in how a 32-bit
// register is reached: volatile loads on the MCU itself, an mmap of
// /dev/mem on a Linux host, or an I2C bridge into an FPGA soft controller.
package fmc

import "sdramctl-go/drivers/sdram"

// Register offsets from the start of the SDRAM block.
const (
	OffSDCR1 = 0x00
	OffSDCR2 = 0x04
	OffSDTR1 = 0x08
	OffSDTR2 = 0x0C
	OffSDCMR = 0x10
	OffSDRTR = 0x14
	OffSDSR  = 0x18

	BlockSize = 0x1C
)

// Base addresses of the SDRAM block on known parts.
const (
	BaseSTM32F4 = 0xA0000140 // FMC_Bank5_6 on F42x/F43x
	BaseSTM32F7 = 0xA0000140
	BaseSTM32H7 = 0x52004140
)

// Window is a 32-bit register space addressed by byte offset.
type Window interface {
	Load(off uint32) (uint32, error)
	Store(off uint32, v uint32) error
}

// Regs implements sdram.Registers over any Window.
type Regs struct {
	W Window
}

var _ sdram.Registers = Regs{}

// NewRegs wraps w.
func NewRegs(w Window) Regs { return Regs{W: w} }

func (r Regs) WriteCommand(c sdram.Command) error {
	return r.W.Store(OffSDCMR, c.Word())
}

func (r Regs) Busy() (bool, error) {
	v, err := r.W.Load(OffSDSR)
	if err != nil {
		return false, err
	}
	return sdram.StatusBusySet(v), nil
}

func (r Regs) WriteRefreshTimer(reload uint32) error {
	return r.W.Store(OffSDRTR, sdram.RefreshTimerWord(reload))
}

func (r Regs) WriteBankConfig(b sdram.Bank, control, timing uint32) error {
	var cr, tr uint32
	switch b {
	case sdram.Bank0:
		cr, tr = OffSDCR1, OffSDTR1
	case sdram.Bank1:
		cr, tr = OffSDCR2, OffSDTR2
	default:
		return ErrBank
	}
	if err := r.W.Store(cr, control&sdram.ControlMask); err != nil {
		return err
	}
	return r.W.Store(tr, timing&sdram.TimingMask)
}

// Snapshot reads every register of the block, for diagnostics.
type Snapshot struct {
	SDCR  [sdram.NumBanks]uint32
	SDTR  [sdram.NumBanks]uint32
	SDCMR uint32
	SDRTR uint32
	SDSR  uint32
}

// ReadSnapshot reads the whole block through r.
func (r Regs) ReadSnapshot() (Snapshot, error) {
	var s Snapshot
	offs := []struct {
		off uint32
		dst *uint32
	}{
		{OffSDCR1, &s.SDCR[0]}, {OffSDCR2, &s.SDCR[1]},
		{OffSDTR1, &s.SDTR[0]}, {OffSDTR2, &s.SDTR[1]},
		{OffSDCMR, &s.SDCMR}, {OffSDRTR, &s.SDRTR}, {OffSDSR, &s.SDSR},
	}
	for _, o := range offs {
		v, err := r.W.Load(o.off)
		if err != nil {
			return Snapshot{}, err
		}
		*o.dst = v
	}
	return s, nil
}
