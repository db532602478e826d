package fmc

import (
	"errors"

	"tinygo.org/x/drivers"
)

// BridgeAddressDefault is the 7-bit address FPGA bridge images answer on.
const BridgeAddressDefault = 0x2A

var (
	ErrBank   = errors.New("fmc: no such bank")
	ErrOffset = errors.New("fmc: offset outside register block")
)

// I2CBridge reaches the register block through an I2C slave that maps
// register index (offset/4) to a 32-bit little-endian word.
//
// Tx MUST perform a write followed by a repeated-start read when both w and
// r are provided.
type I2CBridge struct {
	i2c  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [5]byte
	r [4]byte
}

var _ Window = (*I2CBridge)(nil)

// NewI2CBridge binds a bridge at addr (0 selects BridgeAddressDefault).
func NewI2CBridge(i2c drivers.I2C, addr uint16) *I2CBridge {
	if addr == 0 {
		addr = BridgeAddressDefault
	}
	return &I2CBridge{i2c: i2c, addr: addr}
}

func (b *I2CBridge) index(off uint32) (byte, error) {
	if off%4 != 0 || off >= BlockSize {
		return 0, ErrOffset
	}
	return byte(off / 4), nil
}

// Load reads one register.
func (b *I2CBridge) Load(off uint32) (uint32, error) {
	idx, err := b.index(off)
	if err != nil {
		return 0, err
	}
	b.w[0] = idx
	if err := b.i2c.Tx(b.addr, b.w[:1], b.r[:4]); err != nil {
		return 0, err
	}
	return uint32(b.r[0]) | uint32(b.r[1])<<8 | uint32(b.r[2])<<16 | uint32(b.r[3])<<24, nil
}

// Store writes one register.
func (b *I2CBridge) Store(off uint32, v uint32) error {
	idx, err := b.index(off)
	if err != nil {
		return err
	}
	b.w[0] = idx
	b.w[1] = byte(v)
	b.w[2] = byte(v >> 8)
	b.w[3] = byte(v >> 16)
	b.w[4] = byte(v >> 24)
	return b.i2c.Tx(b.addr, b.w[:5], nil)
}
