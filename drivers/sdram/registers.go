// Package sdram brings an SDRAM device behind an FMC-style external memory
// controller from power-up to operational state.
//
// The Sequencer issues the fixed bring-up protocol through the Registers
// primitives; Device owns the coarse lifecycle (Uninitialized, Idle, Ready)
// and programs the static bank registers before delegating to the Sequencer.
//
// The package avoids fmt and logging so it builds for TinyGo targets.
package sdram

// Mode is the command-mode field of the command register.
type Mode uint8

const (
	ModeNormal       Mode = 0
	ModeClockEnable  Mode = 1
	ModePrechargeAll Mode = 2
	ModeAutoRefresh  Mode = 3
	ModeLoadMode     Mode = 4
	ModeSelfRefresh  Mode = 5
	ModePowerDown    Mode = 6
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeClockEnable:
		return "clock_enable"
	case ModePrechargeAll:
		return "precharge_all"
	case ModeAutoRefresh:
		return "auto_refresh"
	case ModeLoadMode:
		return "load_mode"
	case ModeSelfRefresh:
		return "self_refresh"
	case ModePowerDown:
		return "power_down"
	default:
		return "unknown"
	}
}

// --- SDCMR (command register) ---
const (
	cmdModeMask = 0x7
	cmdCTB2     = 1 << 3
	cmdCTB1     = 1 << 4
	cmdNRFSPos  = 5
	cmdNRFSMask = 0xF
	cmdMRDPos   = 9
	cmdMRDMask  = 0x1FFF
)

// --- SDRTR (refresh timer) ---
const (
	RefreshCountMax = 0x1FFF // COUNT[13:1]
	rtrCountPos     = 1
)

// --- SDSR (status) ---
const (
	StatusBusy = 1 << 5
)

// --- SDCR (per-bank control) ---
const (
	ctlNCPos     = 0  // column address bits, 2 bits
	ctlNRPos     = 2  // row address bits, 2 bits
	ctlMWIDPos   = 4  // memory data width, 2 bits
	ctlNBPos     = 6  // internal banks, 1 bit
	ctlCASPos    = 7  // CAS latency, 2 bits
	ctlWPPos     = 9  // write protection, 1 bit
	ctlSDCLKPos  = 10 // SDRAM clock period, 2 bits
	ctlRBURSTPos = 12 // read burst, 1 bit
	ctlRPIPEPos  = 13 // read pipe, 2 bits

	ControlMask = 0x7FFF
)

// --- SDTR (per-bank timing); every field is (cycles-1) in 4 bits ---
const (
	tmgTMRDPos = 0
	tmgTXSRPos = 4
	tmgTRASPos = 8
	tmgTRCPos  = 12
	tmgTWRPos  = 16
	tmgTRPPos  = 20
	tmgTRCDPos = 24

	TimingMask = 0x0FFFFFFF
)

// ModeRegisterMax is the widest payload a LoadMode command can carry.
const ModeRegisterMax = cmdMRDMask

// RefreshTimerWord returns the SDRTR value that programs reload.
func RefreshTimerWord(reload uint32) uint32 {
	return (reload & RefreshCountMax) << rtrCountPos
}

// StatusBusySet reports whether an SDSR value has the busy flag raised.
func StatusBusySet(sdsr uint32) bool { return sdsr&StatusBusy != 0 }
