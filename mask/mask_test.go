package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBit(t *testing.T) {
	// 0b1011_0000: bit 7 (Z), bit 5 (H) and bit 4 (C) set, LSB-0 numbering
	assert.True(t, Bit(0b1011_0000, 7))
	assert.False(t, Bit(0b1011_0000, 6))
	assert.True(t, Bit(0b1011_0000, 5))
	assert.True(t, Bit(0b1011_0000, 4))
	assert.False(t, Bit(0b1011_0000, 0))

	assert.Equal(t, byte(0b1000_0000), SetBit(0, 7, true))
	assert.Equal(t, byte(0b0000_0001), SetBit(0, 0, true))
	assert.Equal(t, byte(0b0000_0000), SetBit(0b1000_0000, 7, false))
}

func TestNibble(t *testing.T) {
	assert.Equal(t, byte(0x0F), Nibble(0xFF))
	assert.Equal(t, byte(0x05), Nibble(0x15))
	assert.Equal(t, byte(0x00), Nibble(0xF0))
}
