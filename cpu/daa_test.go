package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDAAAfterAddition(t *testing.T) {
	for _, tc := range []struct {
		name       string
		a, addend  byte
		wantA      byte
		wantC      bool
	}{
		{"half carry from low nibble", 0x38, 0x38, 0x76, false},
		{"low nibble only", 0x15, 0x27, 0x42, false},
		{"high nibble carry", 0x90, 0x90, 0x80, true},
	} {
		c := newTestCPU(nil)
		c.A = tc.a
		c.opADD(tc.addend)
		c.daa()
		assert.Equal(t, tc.wantA, c.A, tc.name)
		assert.Equal(t, tc.wantC, c.Flags.C, "%s: C", tc.name)
		assert.False(t, c.Flags.H, "%s: H always cleared by DAA", tc.name)
		assert.Equal(t, tc.wantA == 0, c.Flags.Z, "%s: Z", tc.name)
	}
}

func TestDAAAfterSubtraction(t *testing.T) {
	c := newTestCPU(nil)
	c.A = 0x45
	c.opSUB(0x17)
	c.daa()
	assert.Equal(t, byte(0x28), c.A)
	assert.True(t, c.Flags.N)
	assert.False(t, c.Flags.Z)
	assert.False(t, c.Flags.C)
}

func TestDAARoundTripsDecimalAddSubtract(t *testing.T) {
	// (0x15 + 0x27) then DAA, then subtract the same BCD addend back
	// through DAA, should recover the original value.
	c := newTestCPU(nil)
	c.A = 0x15
	c.opADD(0x27)
	c.daa()
	assert.Equal(t, byte(0x42), c.A)

	c.opSUB(0x27)
	c.daa()
	assert.Equal(t, byte(0x15), c.A)
}
