//go:build !linux

package cmd

import (
	"errors"
	"io"

	"sdramctl-go/drivers/sdram/fmc"
)

func openDevMem(uintptr) (fmc.Window, io.Closer, error) {
	return nil, nil, errors.New("devmem backend needs linux")
}
