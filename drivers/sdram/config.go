package sdram

import (
	"errors"
	"time"

	"sdramctl-go/x/timex"
)

// MinPowerUpDelay is the shortest wait after ClockEnable. Devices ask for
// 100 µs; 1 ms leaves margin for coarse platform sleeps.
const MinPowerUpDelay = time.Millisecond

var (
	// Sentinel errors (TinyGo-safe; no fmt)
	ErrNoBanks           = errors.New("no populated banks")
	ErrUnknownBank       = errors.New("populated mask names a bank the controller lacks")
	ErrControlRange      = errors.New("control payload exceeds SDCR field width")
	ErrTimingRange       = errors.New("timing payload exceeds SDTR field width")
	ErrModeRegisterRange = errors.New("mode register payload exceeds 13 bits")
	ErrRefreshTimerRange = errors.New("refresh timer reload exceeds 13 bits")
	ErrRefreshPrimesZero = errors.New("refresh primes must be at least 1")
	ErrAutoRefreshCycles = errors.New("auto-refresh cycles must be 1..16")
	ErrPowerUpDelay      = errors.New("power-up delay must not be negative")
)

// Config describes one SDRAM population. Both banks receive the same
// Control and Timing payloads.
type Config struct {
	Populated TargetMask

	Control uint32 // SDCR payload
	Timing  uint32 // SDTR payload

	ModeRegister uint32 // LoadMode payload (MRD)
	RefreshTimer uint32 // SDRTR COUNT reload

	RefreshPrimes     uint8 // AutoRefresh commands in the priming step
	AutoRefreshCycles uint8 // cycles per AutoRefresh command; 0 means 1

	PowerUpDelay time.Duration // raised to MinPowerUpDelay
}

// Validate checks field widths and required fields. It does not judge
// whether the timings suit the device.
func (c Config) Validate() error {
	if c.Populated.Empty() {
		return ErrNoBanks
	}
	if c.Populated&^AllBanks != 0 {
		return ErrUnknownBank
	}
	if c.Control&^ControlMask != 0 {
		return ErrControlRange
	}
	if c.Timing&^TimingMask != 0 {
		return ErrTimingRange
	}
	if c.ModeRegister > ModeRegisterMax {
		return ErrModeRegisterRange
	}
	if c.RefreshTimer > RefreshCountMax {
		return ErrRefreshTimerRange
	}
	if c.RefreshPrimes == 0 {
		return ErrRefreshPrimesZero
	}
	if c.AutoRefreshCycles > 16 {
		return ErrAutoRefreshCycles
	}
	if c.PowerUpDelay < 0 {
		return ErrPowerUpDelay
	}
	return nil
}

// powerUpDelay is the delay actually slept after ClockEnable.
func (c Config) powerUpDelay() time.Duration {
	return timex.AtLeast(c.PowerUpDelay, MinPowerUpDelay)
}

// Target returns the mask every bring-up command is sent to.
func (c Config) Target() TargetMask { return c.Populated & AllBanks }
