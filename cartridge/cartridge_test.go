package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBank0AlwaysMapped(t *testing.T) {
	rom := make([]byte, bankSize*3)
	rom[0x0100] = 0xAA
	c := New(rom)
	assert.Equal(t, byte(0xAA), c.MapRead(0x0100))
}

func TestBankSwitching(t *testing.T) {
	rom := make([]byte, bankSize*4)
	rom[bankSize*2] = 0xBB   // start of bank 2
	rom[bankSize*3-1] = 0xCC // end of bank 2

	c := New(rom)
	c.MapWrite(0x2000, 2)
	assert.Equal(t, byte(0xBB), c.MapRead(bankSize))
	assert.Equal(t, byte(0xCC), c.MapRead(bankSize*2-1))
}

func TestBankZeroSelectsBankOne(t *testing.T) {
	rom := make([]byte, bankSize*2)
	rom[bankSize] = 0xEE

	c := New(rom)
	c.MapWrite(0x2000, 0)
	assert.Equal(t, byte(0xEE), c.MapRead(bankSize))
}

func TestExternalRAMReadWrite(t *testing.T) {
	c := New(make([]byte, bankSize*2))
	c.MapWrite(0xA123, 0x42)
	assert.Equal(t, byte(0x42), c.MapRead(0xA123))
}

func TestShortROMIsPadded(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03})
	assert.Equal(t, byte(0x01), c.MapRead(0x0000))
	assert.Equal(t, byte(0x00), c.MapRead(bankSize)) // padded zero
}
