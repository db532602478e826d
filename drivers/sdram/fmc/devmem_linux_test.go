//go:build linux && !tinygo

package fmc

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A regular file stands in for /dev/mem; the mapping logic is the same.
func TestDevMemWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem")
	page := os.Getpagesize()
	require.NoError(t, os.WriteFile(path, make([]byte, 2*page), 0o600))

	base := uintptr(page + 0x140)
	d, err := openMem(path, base)
	require.NoError(t, err)

	require.NoError(t, d.Store(OffSDRTR, 0x0C06))
	v, err := d.Load(OffSDRTR)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0C06), v)

	_, err = d.Load(BlockSize)
	assert.ErrorIs(t, err, ErrOffset)
	require.NoError(t, d.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	at := int(base) + OffSDRTR
	assert.Equal(t, uint32(0x0C06), binary.NativeEndian.Uint32(raw[at:at+4]))
}

func TestOpenDevMemMissingFile(t *testing.T) {
	_, err := openMem(filepath.Join(t.TempDir(), "absent"), 0)
	assert.Error(t, err)
}
