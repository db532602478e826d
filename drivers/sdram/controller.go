package sdram

// Registers is the register-level boundary of the memory controller.
// Memory-mapped backends never fail; bridged backends (I2C, SPI) may.
type Registers interface {
	// WriteCommand performs one atomic write to the shared command register.
	WriteCommand(c Command) error
	// Busy reads the controller's busy flag without side effects.
	Busy() (bool, error)
	// WriteRefreshTimer programs the refresh-timer reload value.
	WriteRefreshTimer(reload uint32) error
	// WriteBankConfig programs one bank's static control and timing registers.
	WriteBankConfig(b Bank, control, timing uint32) error
}

// BusController is the external-bus fabric that owns the SDRAM block.
type BusController interface {
	Started() bool
	Start() error
}

// StaticBus is a BusController whose clocking is owned by someone else
// (boot ROM, kernel, FPGA bitstream). Start only flips the flag.
type StaticBus struct{ Up bool }

func (b *StaticBus) Started() bool { return b.Up }
func (b *StaticBus) Start() error  { b.Up = true; return nil }
