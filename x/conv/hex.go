package conv

const hexd = "0123456789ABCDEF"

// U32Hex writes 8-digit uppercase hex without 0x, zero-padded.
func U32Hex(buf []byte, n uint32) []byte {
	return hexN(buf, uint64(n), 8)
}

// Hex32 returns "0x" followed by 8 hex digits. Allocates once.
func Hex32(n uint32) string {
	var b [10]byte
	b[0], b[1] = '0', 'x'
	U32Hex(b[2:], n)
	return string(b[:])
}

func hexN(buf []byte, n uint64, digits int) []byte {
	if len(buf) < digits {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < digits; j++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}
