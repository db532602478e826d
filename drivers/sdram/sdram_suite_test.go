package sdram_test

import (
	"errors"
	"testing"

	"sdramctl-go/drivers/sdram"
	"sdramctl-go/drivers/sdram/sim"
	"sdramctl-go/errcode"

	"github.com/stretchr/testify/require"
)

//go:generate mockgen -destination "mock_sdram_test.go" -package $GOPACKAGE -write_package_comment=false sdramctl-go/drivers/sdram Registers,BusController

// scenarioConfig is the single-bank population used throughout the tests.
func scenarioConfig() sdram.Config {
	return sdram.Config{
		Populated:     sdram.MaskOf(sdram.Bank0),
		Control:       0x29D4,
		Timing:        0x01116361,
		ModeRegister:  0x0231,
		RefreshTimer:  0x0603,
		RefreshPrimes: 2,
	}
}

// newRig wires a Device to a simulated controller sharing its fake clock.
func newRig(t *testing.T, sc sim.Config, opts ...sdram.Option) (*sim.Controller, *sdram.Device) {
	t.Helper()
	ctl := sim.New(sc)
	opts = append([]sdram.Option{sdram.WithClock(ctl.Clock())}, opts...)
	return ctl, sdram.New(ctl, ctl, opts...)
}

// faultOf runs fn and returns the code of the *errcode.E it panics with.
func faultOf(t *testing.T, fn func()) (code errcode.Code) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected an invalid-state fault")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		var e *errcode.E
		require.True(t, errors.As(err, &e), "panic value %v is not *errcode.E", err)
		code = e.C
	}()
	fn()
	return ""
}
