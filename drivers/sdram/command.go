package sdram

// Bank identifies one physical SDRAM bank of the controller.
// Bank0 is the controller's first SDRAM bank (SDCR1/SDTR1, CTB1);
// Bank1 is the second (SDCR2/SDTR2, CTB2).
type Bank uint8

const (
	Bank0 Bank = iota
	Bank1

	NumBanks = 2
)

func (b Bank) String() string {
	switch b {
	case Bank0:
		return "bank0"
	case Bank1:
		return "bank1"
	default:
		return "bank?"
	}
}

// TargetMask is the set of banks a command applies to.
type TargetMask uint8

// MaskOf builds a TargetMask from banks. Out-of-range banks are ignored.
func MaskOf(banks ...Bank) TargetMask {
	var m TargetMask
	for _, b := range banks {
		if b < NumBanks {
			m |= 1 << b
		}
	}
	return m
}

// AllBanks targets every bank of the controller.
const AllBanks TargetMask = 1<<NumBanks - 1

func (m TargetMask) Has(b Bank) bool { return b < NumBanks && m&(1<<b) != 0 }
func (m TargetMask) Empty() bool     { return m&AllBanks == 0 }

// Banks lists the members of m in ascending order.
func (m TargetMask) Banks() []Bank {
	out := make([]Bank, 0, NumBanks)
	for b := Bank(0); b < NumBanks; b++ {
		if m.Has(b) {
			out = append(out, b)
		}
	}
	return out
}

func (m TargetMask) String() string {
	s := "{"
	for i, b := range m.Banks() {
		if i > 0 {
			s += ","
		}
		s += b.String()
	}
	return s + "}"
}

// bits returns the CTB1/CTB2 field of the command register.
func (m TargetMask) bits() uint32 {
	var v uint32
	if m.Has(Bank0) {
		v |= cmdCTB1
	}
	if m.Has(Bank1) {
		v |= cmdCTB2
	}
	return v
}

// Command is one write to the controller's shared command register.
//
// Payload meaning depends on Mode: for ModeAutoRefresh it is the NRFS field
// (consecutive auto-refresh cycles minus one); for ModeLoadMode it is the
// mode-register value. Other modes ignore it.
type Command struct {
	Mode    Mode
	Target  TargetMask
	Payload uint32
}

// Word encodes c as an SDCMR value.
func (c Command) Word() uint32 {
	w := uint32(c.Mode)&cmdModeMask | c.Target.bits()
	switch c.Mode {
	case ModeAutoRefresh:
		w |= (c.Payload & cmdNRFSMask) << cmdNRFSPos
	case ModeLoadMode:
		w |= (c.Payload & cmdMRDMask) << cmdMRDPos
	}
	return w
}

// DecodeCommand is the inverse of Command.Word.
func DecodeCommand(w uint32) Command {
	c := Command{Mode: Mode(w & cmdModeMask)}
	if w&cmdCTB1 != 0 {
		c.Target |= MaskOf(Bank0)
	}
	if w&cmdCTB2 != 0 {
		c.Target |= MaskOf(Bank1)
	}
	switch c.Mode {
	case ModeAutoRefresh:
		c.Payload = (w >> cmdNRFSPos) & cmdNRFSMask
	case ModeLoadMode:
		c.Payload = (w >> cmdMRDPos) & cmdMRDMask
	}
	return c
}

// Command constructors for the bring-up protocol and the power-management
// modes the controller also accepts.

func ClockEnable(t TargetMask) Command  { return Command{Mode: ModeClockEnable, Target: t} }
func PrechargeAll(t TargetMask) Command { return Command{Mode: ModePrechargeAll, Target: t} }
func SelfRefresh(t TargetMask) Command  { return Command{Mode: ModeSelfRefresh, Target: t} }
func PowerDown(t TargetMask) Command    { return Command{Mode: ModePowerDown, Target: t} }
func Normal(t TargetMask) Command       { return Command{Mode: ModeNormal, Target: t} }

// AutoRefresh issues cycles back-to-back refresh cycles (1..16; 0 means 1).
func AutoRefresh(t TargetMask, cycles uint8) Command {
	if cycles == 0 {
		cycles = 1
	}
	return Command{Mode: ModeAutoRefresh, Target: t, Payload: uint32(cycles-1) & cmdNRFSMask}
}

// LoadMode programs the device mode register with mrd.
func LoadMode(t TargetMask, mrd uint32) Command {
	return Command{Mode: ModeLoadMode, Target: t, Payload: mrd & cmdMRDMask}
}
