//go:build linux

package cmd

import (
	"io"

	"sdramctl-go/drivers/sdram/fmc"
)

func openDevMem(base uintptr) (fmc.Window, io.Closer, error) {
	d, err := fmc.OpenDevMem(base)
	if err != nil {
		return nil, nil, err
	}
	return d, d, nil
}
