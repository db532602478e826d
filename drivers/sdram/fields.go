package sdram

import "errors"

var ErrFieldRange = errors.New("field value out of range")

// ControlFields is the unpacked form of the SDCR payload.
type ControlFields struct {
	ColumnBits    uint8 // 8..11
	RowBits       uint8 // 11..13
	DataWidth     uint8 // 8, 16 or 32
	InternalBanks uint8 // 2 or 4
	CASLatency    uint8 // 1..3 memory clocks
	WriteProtect  bool
	ClockPeriod   uint8 // 0 (clock off), 2 or 3 HCLK periods
	ReadBurst     bool
	ReadPipe      uint8 // 0..2 HCLK delay
}

// Encode packs f into an SDCR payload.
func (f ControlFields) Encode() (uint32, error) {
	if f.ColumnBits < 8 || f.ColumnBits > 11 ||
		f.RowBits < 11 || f.RowBits > 13 ||
		f.CASLatency < 1 || f.CASLatency > 3 ||
		f.ReadPipe > 2 {
		return 0, ErrFieldRange
	}
	var mwid uint32
	switch f.DataWidth {
	case 8:
		mwid = 0
	case 16:
		mwid = 1
	case 32:
		mwid = 2
	default:
		return 0, ErrFieldRange
	}
	var nb uint32
	switch f.InternalBanks {
	case 2:
	case 4:
		nb = 1
	default:
		return 0, ErrFieldRange
	}
	switch f.ClockPeriod {
	case 0, 2, 3:
	default:
		return 0, ErrFieldRange
	}
	v := uint32(f.ColumnBits-8)<<ctlNCPos |
		uint32(f.RowBits-11)<<ctlNRPos |
		mwid<<ctlMWIDPos |
		nb<<ctlNBPos |
		uint32(f.CASLatency)<<ctlCASPos |
		uint32(f.ClockPeriod)<<ctlSDCLKPos |
		uint32(f.ReadPipe)<<ctlRPIPEPos
	if f.WriteProtect {
		v |= 1 << ctlWPPos
	}
	if f.ReadBurst {
		v |= 1 << ctlRBURSTPos
	}
	return v, nil
}

// DecodeControl unpacks an SDCR payload. Reserved encodings decode to zero
// values that Encode rejects.
func DecodeControl(v uint32) ControlFields {
	f := ControlFields{
		ColumnBits:   uint8(v>>ctlNCPos&0x3) + 8,
		RowBits:      uint8(v>>ctlNRPos&0x3) + 11,
		CASLatency:   uint8(v >> ctlCASPos & 0x3),
		WriteProtect: v>>ctlWPPos&1 != 0,
		ClockPeriod:  uint8(v >> ctlSDCLKPos & 0x3),
		ReadBurst:    v>>ctlRBURSTPos&1 != 0,
		ReadPipe:     uint8(v >> ctlRPIPEPos & 0x3),
	}
	switch v >> ctlMWIDPos & 0x3 {
	case 0:
		f.DataWidth = 8
	case 1:
		f.DataWidth = 16
	case 2:
		f.DataWidth = 32
	}
	if v>>ctlNBPos&1 != 0 {
		f.InternalBanks = 4
	} else {
		f.InternalBanks = 2
	}
	return f
}

// TimingFields is the unpacked form of the SDTR payload, in memory clock
// cycles (1..16 each).
type TimingFields struct {
	LoadToActive    uint8 // TMRD
	ExitSelfRefresh uint8 // TXSR
	SelfRefreshTime uint8 // TRAS
	RowCycle        uint8 // TRC
	WriteRecovery   uint8 // TWR
	RPDelay         uint8 // TRP
	RCDDelay        uint8 // TRCD
}

func (f TimingFields) cycles() [7]uint8 {
	return [7]uint8{f.LoadToActive, f.ExitSelfRefresh, f.SelfRefreshTime,
		f.RowCycle, f.WriteRecovery, f.RPDelay, f.RCDDelay}
}

var timingPos = [7]uint{tmgTMRDPos, tmgTXSRPos, tmgTRASPos, tmgTRCPos, tmgTWRPos, tmgTRPPos, tmgTRCDPos}

// Encode packs f into an SDTR payload.
func (f TimingFields) Encode() (uint32, error) {
	var v uint32
	for i, c := range f.cycles() {
		if c < 1 || c > 16 {
			return 0, ErrFieldRange
		}
		v |= uint32(c-1) << timingPos[i]
	}
	return v, nil
}

// DecodeTiming unpacks an SDTR payload.
func DecodeTiming(v uint32) TimingFields {
	var c [7]uint8
	for i, pos := range timingPos {
		c[i] = uint8(v>>pos&0xF) + 1
	}
	return TimingFields{
		LoadToActive:    c[0],
		ExitSelfRefresh: c[1],
		SelfRefreshTime: c[2],
		RowCycle:        c[3],
		WriteRecovery:   c[4],
		RPDelay:         c[5],
		RCDDelay:        c[6],
	}
}

// ModeRegisterFields is the JEDEC mode register as sent by LoadMode.
type ModeRegisterFields struct {
	BurstLength      uint8 // 1, 2, 4 or 8
	Interleaved      bool
	CASLatency       uint8 // 2 or 3
	SingleWriteBurst bool
}

// Encode packs f into a LoadMode payload.
func (f ModeRegisterFields) Encode() (uint32, error) {
	var bl uint32
	switch f.BurstLength {
	case 1:
		bl = 0
	case 2:
		bl = 1
	case 4:
		bl = 2
	case 8:
		bl = 3
	default:
		return 0, ErrFieldRange
	}
	if f.CASLatency != 2 && f.CASLatency != 3 {
		return 0, ErrFieldRange
	}
	v := bl | uint32(f.CASLatency)<<4
	if f.Interleaved {
		v |= 1 << 3
	}
	if f.SingleWriteBurst {
		v |= 1 << 9
	}
	return v, nil
}

// DecodeModeRegister unpacks a LoadMode payload.
func DecodeModeRegister(v uint32) ModeRegisterFields {
	return ModeRegisterFields{
		BurstLength:      1 << (v & 0x3),
		Interleaved:      v>>3&1 != 0,
		CASLatency:       uint8(v >> 4 & 0x7),
		SingleWriteBurst: v>>9&1 != 0,
	}
}
