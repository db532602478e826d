package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":             OK,
		"unsupported":    Unsupported,
		"invalid_params": InvalidParams,
		"invalid_state":  InvalidState,
		"hardware_fault": HardwareFault,
		"bus_not_ready":  BusNotReady,
		"unknown_board":  UnknownBoard,
		"timeout":        Timeout,
		"error":          Error,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	cause := errors.New("i2c nack")
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, OK},
		{"bare code", InvalidState, InvalidState},
		{"wrapper", &E{C: HardwareFault, Op: "sdram.wait", Err: cause}, HardwareFault},
		{"foreign", cause, Error},
		{"wrapped wrapper", fmt.Errorf("bank1: start: %w", &E{C: InvalidParams, Err: cause}), InvalidParams},
		{"outermost wins", &E{C: BusNotReady, Err: &E{C: HardwareFault}}, BusNotReady},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Of(tc.err); got != tc.want {
				t.Fatalf("Of() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("stuck")
	err := Wrap(HardwareFault, "sdram.wait", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	if !Is(err, HardwareFault) {
		t.Fatalf("code lost: %v", err)
	}
	if got, want := err.Error(), "sdram.wait: hardware_fault: stuck"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if Wrap(HardwareFault, "x", nil) != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
}
