//go:build linux && !tinygo

package fmc

import (
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DevMem maps the SDRAM register block through /dev/mem. It needs
// CAP_SYS_RAWIO and a kernel without STRICT_DEVMEM for the FMC range.
type DevMem struct {
	f    *os.File
	mem  []byte
	regs unsafe.Pointer // first register of the block
}

var _ Window = (*DevMem)(nil)

// OpenDevMem maps the page holding base.
func OpenDevMem(base uintptr) (*DevMem, error) {
	return openMem("/dev/mem", base)
}

func openMem(path string, base uintptr) (*DevMem, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	page := uintptr(os.Getpagesize())
	start := base &^ (page - 1)
	length := int((base - start + BlockSize + page - 1) &^ (page - 1))
	mem, err := unix.Mmap(int(f.Fd()), int64(start), length,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &DevMem{
		f:    f,
		mem:  mem,
		regs: unsafe.Pointer(&mem[base-start]),
	}, nil
}

func (d *DevMem) reg(off uint32) (*uint32, error) {
	if off%4 != 0 || off >= BlockSize {
		return nil, ErrOffset
	}
	return (*uint32)(unsafe.Add(d.regs, off)), nil
}

// Load reads one register with a single 32-bit access.
func (d *DevMem) Load(off uint32) (uint32, error) {
	p, err := d.reg(off)
	if err != nil {
		return 0, err
	}
	return atomic.LoadUint32(p), nil
}

// Store writes one register with a single 32-bit access.
func (d *DevMem) Store(off uint32, v uint32) error {
	p, err := d.reg(off)
	if err != nil {
		return err
	}
	atomic.StoreUint32(p, v)
	return nil
}

// Close unmaps the window.
func (d *DevMem) Close() error {
	err := unix.Munmap(d.mem)
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	return err
}
