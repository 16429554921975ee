// Package cpu implements the LR35902 register file, flag logic, and
// instruction executor: the fetch-decode-execute loop driving the bus
// (package dmg/mem) and the two 256-entry opcode tables (the base page
// and the CB-prefixed page).
package cpu

import (
	"dmg/mask"
	"dmg/mem"
)

// Flags holds the four architectural bits of the F register (bits 7..4:
// Z, N, H, C). The low nibble of F always reads as zero; representing
// flags as named bools instead of a raw byte makes that invariant
// structural instead of a convention every call site has to uphold by
// hand.
type Flags struct {
	Z bool // zero
	N bool // subtract
	H bool // half-carry
	C bool // carry
}

func flagsFromByte(b byte) Flags {
	return Flags{
		Z: mask.Bit(b, 7),
		N: mask.Bit(b, 6),
		H: mask.Bit(b, 5),
		C: mask.Bit(b, 4),
	}
}

func (f Flags) byte() byte {
	var b byte
	b = mask.SetBit(b, 7, f.Z)
	b = mask.SetBit(b, 6, f.N)
	b = mask.SetBit(b, 5, f.H)
	b = mask.SetBit(b, 4, f.C)
	return b
}

// CPU is the architectural register file plus the bus it executes
// against. A CPU is never a package-level singleton — IME and every
// other piece of state lives on the instance — so multiple CPUs can
// coexist, e.g. one per test.
type CPU struct {
	Bus *mem.Bus

	A, B, C, D, E, H, L byte
	Flags               Flags
	SP, PC              uint16

	IME bool

	eiPending bool // EI delays enabling IME by one instruction
	Halted    bool
}

// New constructs a CPU wired to bus and brings it to the post-boot-ROM
// reset state.
func New(bus *mem.Bus) *CPU {
	c := &CPU{Bus: bus}
	c.Reset()
	return c
}

// Reset restores the documented post-boot-ROM register state.
func (c *CPU) Reset() {
	c.A = 0x01
	c.Flags = flagsFromByte(0xB0)
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = false
	c.eiPending = false
	c.Halted = false
}

func word(hi, lo byte) uint16       { return uint16(hi)<<8 | uint16(lo) }
func hiLo(v uint16) (hi, lo byte)   { return byte(v >> 8), byte(v) }
func boolToByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// AF returns the combined accumulator/flags register. POP AF must mask
// the low nibble of F to zero; since Flags never represents those bits,
// SetAF does so structurally.
func (c *CPU) AF() uint16 { return word(c.A, c.Flags.byte()) }

func (c *CPU) SetAF(v uint16) {
	hi, lo := hiLo(v)
	c.A = hi
	c.Flags = flagsFromByte(lo)
}

func (c *CPU) BC() uint16     { return word(c.B, c.C) }
func (c *CPU) SetBC(v uint16) { c.B, c.C = hiLo(v) }

func (c *CPU) DE() uint16     { return word(c.D, c.E) }
func (c *CPU) SetDE(v uint16) { c.D, c.E = hiLo(v) }

func (c *CPU) HL() uint16     { return word(c.H, c.L) }
func (c *CPU) SetHL(v uint16) { c.H, c.L = hiLo(v) }
