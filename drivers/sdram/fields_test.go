package sdram

import (
	"errors"
	"testing"
)

// STM32F429I-DISCO IS42S16400J population.
var discoControl = ControlFields{
	ColumnBits:    8,
	RowBits:       12,
	DataWidth:     16,
	InternalBanks: 4,
	CASLatency:    3,
	ClockPeriod:   2,
	ReadPipe:      1,
}

var discoTiming = TimingFields{
	LoadToActive:    2,
	ExitSelfRefresh: 7,
	SelfRefreshTime: 4,
	RowCycle:        7,
	WriteRecovery:   2,
	RPDelay:         2,
	RCDDelay:        2,
}

func TestControlEncode(t *testing.T) {
	v, err := discoControl.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v != 0x29D4 {
		t.Fatalf("SDCR = 0x%X, want 0x29D4", v)
	}
	if got := DecodeControl(v); got != discoControl {
		t.Fatalf("DecodeControl = %+v, want %+v", got, discoControl)
	}
}

func TestControlEncodeRejects(t *testing.T) {
	cases := map[string]func(*ControlFields){
		"columns":  func(f *ControlFields) { f.ColumnBits = 12 },
		"rows":     func(f *ControlFields) { f.RowBits = 10 },
		"width":    func(f *ControlFields) { f.DataWidth = 24 },
		"banks":    func(f *ControlFields) { f.InternalBanks = 8 },
		"cas":      func(f *ControlFields) { f.CASLatency = 0 },
		"clock":    func(f *ControlFields) { f.ClockPeriod = 1 },
		"readpipe": func(f *ControlFields) { f.ReadPipe = 3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := discoControl
			mutate(&f)
			if _, err := f.Encode(); !errors.Is(err, ErrFieldRange) {
				t.Fatalf("want ErrFieldRange, got %v", err)
			}
		})
	}
}

func TestTimingEncode(t *testing.T) {
	v, err := discoTiming.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v != 0x01116361 {
		t.Fatalf("SDTR = 0x%X, want 0x01116361", v)
	}
	if got := DecodeTiming(v); got != discoTiming {
		t.Fatalf("DecodeTiming = %+v", got)
	}

	bad := discoTiming
	bad.RowCycle = 17
	if _, err := bad.Encode(); !errors.Is(err, ErrFieldRange) {
		t.Fatalf("want ErrFieldRange, got %v", err)
	}
	bad = discoTiming
	bad.RPDelay = 0
	if _, err := bad.Encode(); !errors.Is(err, ErrFieldRange) {
		t.Fatalf("want ErrFieldRange for zero cycles, got %v", err)
	}
}

func TestModeRegisterEncode(t *testing.T) {
	f := ModeRegisterFields{BurstLength: 2, CASLatency: 3, SingleWriteBurst: true}
	v, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v != 0x0231 {
		t.Fatalf("MRD = 0x%04X, want 0x0231", v)
	}
	if got := DecodeModeRegister(v); got != f {
		t.Fatalf("DecodeModeRegister = %+v", got)
	}
	if _, err := (ModeRegisterFields{BurstLength: 3, CASLatency: 2}).Encode(); !errors.Is(err, ErrFieldRange) {
		t.Fatalf("burst length 3 accepted: %v", err)
	}
	if _, err := (ModeRegisterFields{BurstLength: 4, CASLatency: 1}).Encode(); !errors.Is(err, ErrFieldRange) {
		t.Fatalf("CAS 1 accepted: %v", err)
	}
}

func TestCommandWord(t *testing.T) {
	cases := []struct {
		name string
		cmd  Command
		want uint32
	}{
		{"clock enable bank0", ClockEnable(MaskOf(Bank0)), 0x1 | cmdCTB1},
		{"precharge bank1", PrechargeAll(MaskOf(Bank1)), 0x2 | cmdCTB2},
		{"auto refresh both x4", AutoRefresh(AllBanks, 4), 0x3 | cmdCTB1 | cmdCTB2 | 3<<5},
		{"auto refresh default cycles", AutoRefresh(MaskOf(Bank0), 0), 0x3 | cmdCTB1},
		{"load mode", LoadMode(MaskOf(Bank1), 0x231), 0x4 | cmdCTB2 | 0x231<<9},
		{"self refresh", SelfRefresh(MaskOf(Bank0)), 0x5 | cmdCTB1},
		{"power down", PowerDown(MaskOf(Bank0)), 0x6 | cmdCTB1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cmd.Word(); got != tc.want {
				t.Fatalf("Word() = 0x%X, want 0x%X", got, tc.want)
			}
			if got := DecodeCommand(tc.want); got != tc.cmd {
				t.Fatalf("DecodeCommand = %+v, want %+v", got, tc.cmd)
			}
		})
	}
}

func TestTargetMask(t *testing.T) {
	m := MaskOf(Bank1, Bank0, Bank(7))
	if m != AllBanks {
		t.Fatalf("MaskOf = %b", m)
	}
	if s := m.String(); s != "{bank0,bank1}" {
		t.Fatalf("String = %q", s)
	}
	if !TargetMask(0).Empty() || MaskOf(Bank1).Empty() {
		t.Fatal("Empty misreports")
	}
	if MaskOf(Bank1).Has(Bank0) {
		t.Fatal("Has(Bank0) on {bank1}")
	}
}

func TestConfigValidate(t *testing.T) {
	good := Config{
		Populated:     MaskOf(Bank0),
		Control:       0x29D4,
		Timing:        0x01116361,
		ModeRegister:  0x0231,
		RefreshTimer:  0x0603,
		RefreshPrimes: 2,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no banks", func(c *Config) { c.Populated = 0 }, ErrNoBanks},
		{"unknown bank", func(c *Config) { c.Populated = 0x5 }, ErrUnknownBank},
		{"control", func(c *Config) { c.Control = 1 << 15 }, ErrControlRange},
		{"timing", func(c *Config) { c.Timing = 1 << 28 }, ErrTimingRange},
		{"mode register", func(c *Config) { c.ModeRegister = 0x2000 }, ErrModeRegisterRange},
		{"refresh timer", func(c *Config) { c.RefreshTimer = 0x2000 }, ErrRefreshTimerRange},
		{"primes", func(c *Config) { c.RefreshPrimes = 0 }, ErrRefreshPrimesZero},
		{"cycles", func(c *Config) { c.AutoRefreshCycles = 17 }, ErrAutoRefreshCycles},
		{"delay", func(c *Config) { c.PowerUpDelay = -1 }, ErrPowerUpDelay},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := good
			tc.mutate(&c)
			if err := c.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("Validate = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestPowerUpDelayFloor(t *testing.T) {
	if d := (Config{}).powerUpDelay(); d != MinPowerUpDelay {
		t.Fatalf("zero delay -> %v", d)
	}
	if d := (Config{PowerUpDelay: 3 * MinPowerUpDelay}).powerUpDelay(); d != 3*MinPowerUpDelay {
		t.Fatalf("long delay -> %v", d)
	}
}
