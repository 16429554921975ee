// Package cpu continues in this file with the fetch-decode-execute loop,
// interrupt dispatch, and HALT/STOP handling for the Sharp LR35902, the
// CPU at the heart of the original Game Boy.
package cpu

import (
	"fmt"
	"time"
)

// https://gbdev.io/pandocs/CPU_Registers_and_Flags.html
// https://gbdev.io/pandocs/Interrupts.html

// ClockHz is the DMG CPU clock frequency; one M-cycle is 4 of these
// T-states.
const ClockHz = 4194304

// Tick is the wall-clock duration of one M-cycle at native speed, used
// by Run to pace execution in real time.
var Tick = time.Second / (ClockHz / 4)

// Interrupt bit positions within IF (0xFF0F) and IE (0xFFFF), matching
// the shift-amount argument bus.RaiseInterrupt expects, in dispatch
// priority order (lowest bit wins when more than one is pending).
const (
	IntVBlank byte = iota
	IntLCDStat
	IntTimer
	IntSerial
	IntJoypad
)

var interruptVectors = []struct {
	bit  byte // shift amount, not a mask
	addr uint16
}{
	{IntVBlank, 0x0040},
	{IntLCDStat, 0x0048},
	{IntTimer, 0x0050},
	{IntSerial, 0x0058},
	{IntJoypad, 0x0060},
}

// UnimplementedOpcodeError reports a byte the LR35902 instruction set
// never defines (11 base-page opcodes have no meaning).
type UnimplementedOpcodeError struct {
	Opcode     byte
	CBPrefixed bool
}

func (e *UnimplementedOpcodeError) Error() string {
	if e.CBPrefixed {
		return fmt.Sprintf("cpu: unimplemented opcode 0xCB 0x%02X", e.Opcode)
	}
	return fmt.Sprintf("cpu: unimplemented opcode 0x%02X", e.Opcode)
}

// invariantViolation panics; it is reserved for states the decoder
// itself guarantees cannot occur (e.g. F's low nibble becoming
// nonzero), as opposed to UnimplementedOpcodeError which is an ordinary
// returned error a caller can catch and report.
func invariantViolation(format string, args ...any) {
	panic(fmt.Sprintf("cpu: invariant violation: "+format, args...))
}

// RaiseInterrupt sets the named bit in IF, requesting that interrupt be
// serviced the next time Step checks for pending work.
func (c *CPU) RaiseInterrupt(bit byte) {
	c.Bus.RaiseInterrupt(bit)
}

// Step executes exactly one instruction, or, when IME is set and an
// interrupt is pending, dispatches that interrupt instead and returns
// without executing an instruction; it reports the M-cycles consumed.
// A HALTed CPU with no interrupt pending consumes one idle cycle without
// fetching anything, mirroring real hardware parking the instruction
// fetch.
func (c *CPU) Step() (int, error) {
	if cycles, serviced := c.serviceInterrupt(); serviced {
		return cycles, nil
	}

	if c.Halted {
		if c.pendingInterruptBits() != 0 {
			c.Halted = false
		} else {
			return 1, nil
		}
	}

	applyEI := c.eiPending
	c.eiPending = false

	opcodeByte := c.fetch8()
	entry := baseOpcodes[opcodeByte]
	if entry.Exec == nil {
		return 0, &UnimplementedOpcodeError{Opcode: opcodeByte}
	}
	cycles := entry.Exec(c)

	if applyEI {
		c.IME = true
	}

	if c.Flags.byte()&0x0F != 0 {
		invariantViolation("F low nibble is nonzero: %#02x", c.Flags.byte())
	}

	return int(cycles), nil
}

// stepCB executes the opcode following a 0xCB prefix byte. It is invoked
// from the base table's 0xCB entry, so Step never special-cases the
// prefix itself.
func (c *CPU) stepCB() byte {
	opcodeByte := c.fetch8()
	entry := cbOpcodes[opcodeByte]
	if entry.Exec == nil {
		// every byte 0x00-0xFF is defined on the CB page; this is
		// unreachable unless buildCBOpcodes failed to populate a slot.
		invariantViolation("CB page has no entry for 0x%02X", opcodeByte)
	}
	return entry.Exec(c)
}

func (c *CPU) pendingInterruptBits() byte {
	return c.Bus.IE & c.Bus.IF & 0x1F
}

// serviceInterrupt dispatches the highest-priority pending interrupt if
// IME is set, in fixed vector priority order. Dispatch costs 5 M-cycles:
// two wasted cycles, a stack push, and a jump.
func (c *CPU) serviceInterrupt() (int, bool) {
	if !c.IME {
		return 0, false
	}
	pending := c.pendingInterruptBits()
	if pending == 0 {
		return 0, false
	}
	for _, v := range interruptVectors {
		mask := byte(1) << v.bit
		if pending&mask == 0 {
			continue
		}
		c.IME = false
		c.Halted = false
		c.Bus.IF &^= mask
		c.push16(c.PC)
		c.PC = v.addr
		return 5, true
	}
	invariantViolation("pending interrupt bits %#02x matched no vector", pending)
	return 0, false
}

func (c *CPU) jr() {
	offset := int8(c.fetch8())
	c.PC = uint16(int32(c.PC) + int32(offset))
}

func (c *CPU) jrCond(cond func(c *CPU) bool) byte {
	offset := int8(c.fetch8())
	if !cond(c) {
		return 2
	}
	c.PC = uint16(int32(c.PC) + int32(offset))
	return 3
}

func (c *CPU) jpCond(cond func(c *CPU) bool) byte {
	addr := c.fetch16()
	if !cond(c) {
		return 3
	}
	c.PC = addr
	return 4
}

func (c *CPU) callCond(cond func(c *CPU) bool) byte {
	addr := c.fetch16()
	if !cond(c) {
		return 3
	}
	c.push16(c.PC)
	c.PC = addr
	return 6
}

func (c *CPU) retCond(cond func(c *CPU) bool) byte {
	if !cond(c) {
		return 2
	}
	c.PC = c.pop16()
	return 5
}

func (c *CPU) rst(addr uint16) {
	c.push16(c.PC)
	c.PC = addr
}

// Run steps the CPU forever at native speed, sleeping between steps to
// match real hardware timing. Callers that just want to drive a test ROM
// to completion should call Step directly instead.
func (c *CPU) Run() error {
	for {
		cycles, err := c.Step()
		if err != nil {
			return err
		}
		time.Sleep(Tick * time.Duration(cycles))
	}
}
