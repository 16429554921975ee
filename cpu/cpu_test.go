package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dmg/cartridge"
	"dmg/mem"
)

// newTestCPU wires a CPU to a bus backed by a cartridge holding rom,
// loaded so that execution starts at the documented reset vector 0x0100.
func newTestCPU(rom []byte) *CPU {
	padded := make([]byte, 0x4000)
	copy(padded[0x0100:], rom)
	bus := &mem.Bus{Cartridge: cartridge.New(padded)}
	return New(bus)
}

func TestSmallProgramEndToEnd(t *testing.T) {
	// LD A,5; LD B,3; ADD A,B; INC B; HALT
	c := newTestCPU([]byte{0x3E, 0x05, 0x06, 0x03, 0x80, 0x04, 0x76})

	for _, step := range []struct {
		name   string
		A, B   byte
		PC     uint16
		Halted bool
	}{
		{"LD A,d8", 0x05, 0x00, 0x0102, false},
		{"LD B,d8", 0x05, 0x03, 0x0104, false},
		{"ADD A,B", 0x08, 0x03, 0x0105, false},
		{"INC B", 0x08, 0x04, 0x0106, false},
		{"HALT", 0x08, 0x04, 0x0107, true},
	} {
		_, err := c.Step()
		assert.NoError(t, err)
		assert.Equal(t, step.A, c.A, "A after %s", step.name)
		assert.Equal(t, step.B, c.B, "B after %s", step.name)
		assert.Equal(t, step.PC, c.PC, "PC after %s", step.name)
		assert.Equal(t, step.Halted, c.Halted, "Halted after %s", step.name)
	}
}

func TestRegisterPairRoundTrips(t *testing.T) {
	c := newTestCPU(nil)

	c.SetBC(0x1234)
	assert.Equal(t, byte(0x12), c.B)
	assert.Equal(t, byte(0x34), c.C)
	assert.Equal(t, uint16(0x1234), c.BC())

	c.SetAF(0xABCD)
	assert.Equal(t, byte(0xAB), c.A)
	// low nibble of F is always masked to zero
	assert.Equal(t, byte(0xC0), c.Flags.byte())
	assert.Equal(t, uint16(0xABC0), c.AF())
}

func TestPushPopRoundTrip(t *testing.T) {
	c := newTestCPU(nil)
	c.SP = 0xFFFE

	c.push16(0xBEEF)
	assert.Equal(t, uint16(0xFFFC), c.SP)
	assert.Equal(t, uint16(0xBEEF), c.pop16())
	assert.Equal(t, uint16(0xFFFE), c.SP)
}

func TestPopAFMasksLowNibble(t *testing.T) {
	// PUSH BC (with C = 0x0F, an illegal low nibble); POP AF
	c := newTestCPU([]byte{
		0x06, 0xAB, // LD B,0xAB
		0x0E, 0x0F, // LD C,0x0F
		0xC5, // PUSH BC
		0xF1, // POP AF
	})
	for range 4 {
		_, err := c.Step()
		assert.NoError(t, err)
	}
	assert.Equal(t, byte(0xAB), c.A)
	assert.Equal(t, byte(0x00), c.Flags.byte()&0x0F)
}

func TestConditionalJumpNotTaken(t *testing.T) {
	// reset leaves Z=1, so JR NZ,+2 must not branch
	c := newTestCPU([]byte{0x20, 0x02, 0x04})
	assert.True(t, c.Flags.Z)

	cycles, err := c.Step() // JR NZ not taken
	assert.NoError(t, err)
	assert.Equal(t, 2, cycles)
	assert.Equal(t, uint16(0x0102), c.PC)
}

func TestConditionalJumpTaken(t *testing.T) {
	// JR NZ,+2 lands at 0x0104, skipping INC B (0x0102) and INC C (0x0103)
	c := newTestCPU([]byte{0x20, 0x02, 0x04, 0x0C})
	c.Flags.Z = false

	cycles, err := c.Step() // JR NZ taken
	assert.NoError(t, err)
	assert.Equal(t, 3, cycles)
	assert.Equal(t, uint16(0x0104), c.PC)
}

func TestCBPrefixedBit(t *testing.T) {
	// LD A,0x80; CB BIT 7,A
	c := newTestCPU([]byte{0x3E, 0x80, 0xCB, 0x7F})
	_, err := c.Step()
	assert.NoError(t, err)
	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, byte(2), byte(cycles))
	assert.False(t, c.Flags.Z)
	assert.True(t, c.Flags.H)
}

func TestUnimplementedOpcodeReturnsError(t *testing.T) {
	c := newTestCPU([]byte{0xD3})
	_, err := c.Step()
	var unimpl *UnimplementedOpcodeError
	assert.ErrorAs(t, err, &unimpl)
	assert.Equal(t, byte(0xD3), unimpl.Opcode)
}

func TestInterruptDispatchRespectsPriority(t *testing.T) {
	c := newTestCPU([]byte{0x00}) // NOP, never reached before dispatch
	c.IME = true
	vblankMask := byte(1) << IntVBlank
	timerMask := byte(1) << IntTimer
	c.Bus.IE = vblankMask | timerMask
	c.Bus.IF = vblankMask | timerMask

	cycles, serviced := c.serviceInterrupt()
	assert.True(t, serviced)
	assert.Equal(t, 5, cycles)
	assert.Equal(t, uint16(0x0040), c.PC) // V-Blank, highest priority
	assert.False(t, c.IME)
	assert.Equal(t, timerMask, c.Bus.IF) // only V-Blank cleared
}

func TestHaltWakesOnPendingInterruptEvenWithIMEOff(t *testing.T) {
	c := newTestCPU([]byte{0x76}) // HALT
	_, err := c.Step()
	assert.NoError(t, err)
	assert.True(t, c.Halted)

	c.IME = false
	c.Bus.IE = byte(1) << IntTimer
	c.Bus.IF = byte(1) << IntTimer

	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.False(t, c.Halted)
	assert.Equal(t, 1, cycles) // unhalted this step, dispatch waits for IME
}

func TestEIDelaysIMEByOneInstruction(t *testing.T) {
	c := newTestCPU([]byte{0xFB, 0x00, 0x00}) // EI; NOP; NOP
	_, err := c.Step()
	assert.NoError(t, err)
	assert.False(t, c.IME, "IME must not be set immediately after EI")

	_, err = c.Step()
	assert.NoError(t, err)
	assert.True(t, c.IME, "IME takes effect after the instruction following EI")
}
