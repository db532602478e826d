//go:build tinygo && stm32f4

package fmc

import (
	"runtime/volatile"
	"unsafe"
)

// RCC AHB3 clock enable register and its FMC bit on STM32F42x/F43x.
const (
	rccAHB3ENR = 0x40023838
	rccFMCEN   = 1 << 0
)

// MMIO is the on-chip register block accessed with volatile loads/stores.
type MMIO struct {
	base uintptr
}

var _ Window = MMIO{}

// NewMMIO addresses the block at base (BaseSTM32F4 on F42x/F43x).
func NewMMIO(base uintptr) MMIO { return MMIO{base: base} }

func (m MMIO) reg(off uint32) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(m.base + uintptr(off)))
}

func (m MMIO) Load(off uint32) (uint32, error) {
	if off%4 != 0 || off >= BlockSize {
		return 0, ErrOffset
	}
	return m.reg(off).Get(), nil
}

func (m MMIO) Store(off uint32, v uint32) error {
	if off%4 != 0 || off >= BlockSize {
		return ErrOffset
	}
	m.reg(off).Set(v)
	return nil
}

// FMCClock gates the FMC peripheral clock in RCC.
type FMCClock struct{}

func (FMCClock) enr() *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(rccAHB3ENR)))
}

// Started reports whether the FMC clock is enabled.
func (c FMCClock) Started() bool { return c.enr().HasBits(rccFMCEN) }

// Start enables the FMC clock and waits for the write to land.
func (c FMCClock) Start() error {
	c.enr().SetBits(rccFMCEN)
	for !c.enr().HasBits(rccFMCEN) {
	}
	return nil
}
