// Package mask provides small bit-manipulation helpers used by the flag
// and register arithmetic.
package mask

// Bit reports whether bit n of b is set, using LSB-0 numbering (bit 0 is the
// least significant bit). This is the numbering the LR35902's BIT/RES/SET
// instructions and the flag register layout use.
func Bit(b byte, n byte) bool {
	return b&(1<<n) != 0
}

// SetBit returns b with bit n (LSB-0) set to value.
func SetBit(b byte, n byte, value bool) byte {
	if value {
		return b | (1 << n)
	}
	return b &^ (1 << n)
}

// Nibble extracts the low nibble (bits 3..0) of b. It is a named
// convenience for the half-carry computations that dominate flag
// arithmetic: (a & 0xF) style expressions in a C-family implementation are
// easy to typo into (a && 0xF); this spells out the same mask without &&.
func Nibble(b byte) byte {
	return b & 0x0F
}
