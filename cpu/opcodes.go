package cpu

// Opcode is one entry of the base or CB-prefixed dispatch table: a name
// for disassembly/debugging and the handler that performs the effect
// and reports how many M-cycles it consumed (conditional control flow
// consumes a different count depending on whether the branch is taken).
// Dispatch is two fixed [256]Opcode arrays rather than a sparse map,
// since every LR35902 opcode byte is a valid table index and the
// base/CB split is architectural, not incidental.
//
// A zero-value entry (Name == "") marks an opcode the LR35902 never
// defines; Step reports UnimplementedOpcodeError rather than calling Exec.
type Opcode struct {
	Name string
	Exec func(c *CPU) byte
}

var baseOpcodes [256]Opcode
var cbOpcodes [256]Opcode

func op(table *[256]Opcode, code byte, name string, exec func(c *CPU) byte) {
	table[code] = Opcode{Name: name, Exec: exec}
}

func init() {
	buildBaseOpcodes()
	buildCBOpcodes()
}

// ldReg8Cycles reports the cost of LD dst,src given which operands touch
// (HL): 1 cycle register-to-register, 2 cycles if either side is memory.
func ldReg8Cycles(dst, src reg8) byte {
	if dst.name == memHL.name || src.name == memHL.name {
		return 2
	}
	return 1
}

func buildBaseOpcodes() {
	t := &baseOpcodes

	op(t, 0x00, "NOP", func(c *CPU) byte { return 1 })
	op(t, 0x01, "LD BC,d16", func(c *CPU) byte { c.SetBC(c.fetch16()); return 3 })
	op(t, 0x02, "LD (BC),A", func(c *CPU) byte { c.Bus.Write8(c.BC(), c.A); return 2 })
	op(t, 0x03, "INC BC", func(c *CPU) byte { c.inc16(pairBC); return 2 })
	op(t, 0x04, "INC B", func(c *CPU) byte { c.inc8(regB); return 1 })
	op(t, 0x05, "DEC B", func(c *CPU) byte { c.dec8(regB); return 1 })
	op(t, 0x06, "LD B,d8", func(c *CPU) byte { c.B = c.fetch8(); return 2 })
	op(t, 0x07, "RLCA", func(c *CPU) byte { c.rlca(); return 1 })
	op(t, 0x08, "LD (a16),SP", func(c *CPU) byte { c.Bus.Write16(c.fetch16(), c.SP); return 5 })
	op(t, 0x09, "ADD HL,BC", func(c *CPU) byte { c.addHL(pairBC); return 2 })
	op(t, 0x0A, "LD A,(BC)", func(c *CPU) byte { c.A = c.Bus.Read8(c.BC()); return 2 })
	op(t, 0x0B, "DEC BC", func(c *CPU) byte { c.dec16(pairBC); return 2 })
	op(t, 0x0C, "INC C", func(c *CPU) byte { c.inc8(regC); return 1 })
	op(t, 0x0D, "DEC C", func(c *CPU) byte { c.dec8(regC); return 1 })
	op(t, 0x0E, "LD C,d8", func(c *CPU) byte { c.C = c.fetch8(); return 2 })
	op(t, 0x0F, "RRCA", func(c *CPU) byte { c.rrca(); return 1 })

	op(t, 0x10, "STOP", func(c *CPU) byte { c.fetch8(); c.Halted = true; return 1 })
	op(t, 0x11, "LD DE,d16", func(c *CPU) byte { c.SetDE(c.fetch16()); return 3 })
	op(t, 0x12, "LD (DE),A", func(c *CPU) byte { c.Bus.Write8(c.DE(), c.A); return 2 })
	op(t, 0x13, "INC DE", func(c *CPU) byte { c.inc16(pairDE); return 2 })
	op(t, 0x14, "INC D", func(c *CPU) byte { c.inc8(regD); return 1 })
	op(t, 0x15, "DEC D", func(c *CPU) byte { c.dec8(regD); return 1 })
	op(t, 0x16, "LD D,d8", func(c *CPU) byte { c.D = c.fetch8(); return 2 })
	op(t, 0x17, "RLA", func(c *CPU) byte { c.rla(); return 1 })
	op(t, 0x18, "JR r8", func(c *CPU) byte { c.jr(); return 3 })
	op(t, 0x19, "ADD HL,DE", func(c *CPU) byte { c.addHL(pairDE); return 2 })
	op(t, 0x1A, "LD A,(DE)", func(c *CPU) byte { c.A = c.Bus.Read8(c.DE()); return 2 })
	op(t, 0x1B, "DEC DE", func(c *CPU) byte { c.dec16(pairDE); return 2 })
	op(t, 0x1C, "INC E", func(c *CPU) byte { c.inc8(regE); return 1 })
	op(t, 0x1D, "DEC E", func(c *CPU) byte { c.dec8(regE); return 1 })
	op(t, 0x1E, "LD E,d8", func(c *CPU) byte { c.E = c.fetch8(); return 2 })
	op(t, 0x1F, "RRA", func(c *CPU) byte { c.rra(); return 1 })

	op(t, 0x20, "JR NZ,r8", func(c *CPU) byte { return c.jrCond(condNZ) })
	op(t, 0x21, "LD HL,d16", func(c *CPU) byte { c.SetHL(c.fetch16()); return 3 })
	op(t, 0x22, "LD (HL+),A", func(c *CPU) byte { c.Bus.Write8(c.HL(), c.A); c.SetHL(c.HL() + 1); return 2 })
	op(t, 0x23, "INC HL", func(c *CPU) byte { c.inc16(pairHL); return 2 })
	op(t, 0x24, "INC H", func(c *CPU) byte { c.inc8(regH); return 1 })
	op(t, 0x25, "DEC H", func(c *CPU) byte { c.dec8(regH); return 1 })
	op(t, 0x26, "LD H,d8", func(c *CPU) byte { c.H = c.fetch8(); return 2 })
	op(t, 0x27, "DAA", func(c *CPU) byte { c.daa(); return 1 })
	op(t, 0x28, "JR Z,r8", func(c *CPU) byte { return c.jrCond(condZ) })
	op(t, 0x29, "ADD HL,HL", func(c *CPU) byte { c.addHL(pairHL); return 2 })
	op(t, 0x2A, "LD A,(HL+)", func(c *CPU) byte { c.A = c.Bus.Read8(c.HL()); c.SetHL(c.HL() + 1); return 2 })
	op(t, 0x2B, "DEC HL", func(c *CPU) byte { c.dec16(pairHL); return 2 })
	op(t, 0x2C, "INC L", func(c *CPU) byte { c.inc8(regL); return 1 })
	op(t, 0x2D, "DEC L", func(c *CPU) byte { c.dec8(regL); return 1 })
	op(t, 0x2E, "LD L,d8", func(c *CPU) byte { c.L = c.fetch8(); return 2 })
	op(t, 0x2F, "CPL", func(c *CPU) byte { c.cpl(); return 1 })

	op(t, 0x30, "JR NC,r8", func(c *CPU) byte { return c.jrCond(condNC) })
	op(t, 0x31, "LD SP,d16", func(c *CPU) byte { c.SP = c.fetch16(); return 3 })
	op(t, 0x32, "LD (HL-),A", func(c *CPU) byte { c.Bus.Write8(c.HL(), c.A); c.SetHL(c.HL() - 1); return 2 })
	op(t, 0x33, "INC SP", func(c *CPU) byte { c.SP++; return 2 })
	op(t, 0x34, "INC (HL)", func(c *CPU) byte { c.inc8(memHL); return 3 })
	op(t, 0x35, "DEC (HL)", func(c *CPU) byte { c.dec8(memHL); return 3 })
	op(t, 0x36, "LD (HL),d8", func(c *CPU) byte { c.Bus.Write8(c.HL(), c.fetch8()); return 3 })
	op(t, 0x37, "SCF", func(c *CPU) byte { c.scf(); return 1 })
	op(t, 0x38, "JR C,r8", func(c *CPU) byte { return c.jrCond(condC) })
	op(t, 0x39, "ADD HL,SP", func(c *CPU) byte { c.addHL(pairSP); return 2 })
	op(t, 0x3A, "LD A,(HL-)", func(c *CPU) byte { c.A = c.Bus.Read8(c.HL()); c.SetHL(c.HL() - 1); return 2 })
	op(t, 0x3B, "DEC SP", func(c *CPU) byte { c.SP--; return 2 })
	op(t, 0x3C, "INC A", func(c *CPU) byte { c.inc8(regA); return 1 })
	op(t, 0x3D, "DEC A", func(c *CPU) byte { c.dec8(regA); return 1 })
	op(t, 0x3E, "LD A,d8", func(c *CPU) byte { c.A = c.fetch8(); return 2 })
	op(t, 0x3F, "CCF", func(c *CPU) byte { c.ccf(); return 1 })

	buildLD8Block(t)
	buildALUBlock(t)

	op(t, 0xC0, "RET NZ", func(c *CPU) byte { return c.retCond(condNZ) })
	op(t, 0xC1, "POP BC", func(c *CPU) byte { c.SetBC(c.pop16()); return 3 })
	op(t, 0xC2, "JP NZ,a16", func(c *CPU) byte { return c.jpCond(condNZ) })
	op(t, 0xC3, "JP a16", func(c *CPU) byte { c.PC = c.fetch16(); return 4 })
	op(t, 0xC4, "CALL NZ,a16", func(c *CPU) byte { return c.callCond(condNZ) })
	op(t, 0xC5, "PUSH BC", func(c *CPU) byte { c.push16(c.BC()); return 4 })
	op(t, 0xC6, "ADD A,d8", func(c *CPU) byte { c.opADD(c.fetch8()); return 2 })
	op(t, 0xC7, "RST 00H", func(c *CPU) byte { c.rst(0x00); return 4 })
	op(t, 0xC8, "RET Z", func(c *CPU) byte { return c.retCond(condZ) })
	op(t, 0xC9, "RET", func(c *CPU) byte { c.PC = c.pop16(); return 4 })
	op(t, 0xCA, "JP Z,a16", func(c *CPU) byte { return c.jpCond(condZ) })
	op(t, 0xCB, "PREFIX CB", func(c *CPU) byte { return c.stepCB() })
	op(t, 0xCC, "CALL Z,a16", func(c *CPU) byte { return c.callCond(condZ) })
	op(t, 0xCD, "CALL a16", func(c *CPU) byte { addr := c.fetch16(); c.push16(c.PC); c.PC = addr; return 6 })
	op(t, 0xCE, "ADC A,d8", func(c *CPU) byte { c.opADC(c.fetch8()); return 2 })
	op(t, 0xCF, "RST 08H", func(c *CPU) byte { c.rst(0x08); return 4 })

	op(t, 0xD0, "RET NC", func(c *CPU) byte { return c.retCond(condNC) })
	op(t, 0xD1, "POP DE", func(c *CPU) byte { c.SetDE(c.pop16()); return 3 })
	op(t, 0xD2, "JP NC,a16", func(c *CPU) byte { return c.jpCond(condNC) })
	op(t, 0xD4, "CALL NC,a16", func(c *CPU) byte { return c.callCond(condNC) })
	op(t, 0xD5, "PUSH DE", func(c *CPU) byte { c.push16(c.DE()); return 4 })
	op(t, 0xD6, "SUB d8", func(c *CPU) byte { c.opSUB(c.fetch8()); return 2 })
	op(t, 0xD7, "RST 10H", func(c *CPU) byte { c.rst(0x10); return 4 })
	op(t, 0xD8, "RET C", func(c *CPU) byte { return c.retCond(condC) })
	op(t, 0xD9, "RETI", func(c *CPU) byte { c.PC = c.pop16(); c.IME = true; return 4 })
	op(t, 0xDA, "JP C,a16", func(c *CPU) byte { return c.jpCond(condC) })
	op(t, 0xDC, "CALL C,a16", func(c *CPU) byte { return c.callCond(condC) })
	op(t, 0xDE, "SBC A,d8", func(c *CPU) byte { c.opSBC(c.fetch8()); return 2 })
	op(t, 0xDF, "RST 18H", func(c *CPU) byte { c.rst(0x18); return 4 })

	op(t, 0xE0, "LDH (a8),A", func(c *CPU) byte { c.Bus.Write8(0xFF00+uint16(c.fetch8()), c.A); return 3 })
	op(t, 0xE1, "POP HL", func(c *CPU) byte { c.SetHL(c.pop16()); return 3 })
	op(t, 0xE2, "LD (C),A", func(c *CPU) byte { c.Bus.Write8(0xFF00+uint16(c.C), c.A); return 2 })
	op(t, 0xE5, "PUSH HL", func(c *CPU) byte { c.push16(c.HL()); return 4 })
	op(t, 0xE6, "AND d8", func(c *CPU) byte { c.opAND(c.fetch8()); return 2 })
	op(t, 0xE7, "RST 20H", func(c *CPU) byte { c.rst(0x20); return 4 })
	op(t, 0xE8, "ADD SP,r8", func(c *CPU) byte {
		res, fl := UpdateSPOffset(c.SP, int8(c.fetch8()))
		c.SP, c.Flags = res, fl
		return 4
	})
	op(t, 0xE9, "JP HL", func(c *CPU) byte { c.PC = c.HL(); return 1 })
	op(t, 0xEA, "LD (a16),A", func(c *CPU) byte { c.Bus.Write8(c.fetch16(), c.A); return 4 })
	op(t, 0xEE, "XOR d8", func(c *CPU) byte { c.opXOR(c.fetch8()); return 2 })
	op(t, 0xEF, "RST 28H", func(c *CPU) byte { c.rst(0x28); return 4 })

	op(t, 0xF0, "LDH A,(a8)", func(c *CPU) byte { c.A = c.Bus.Read8(0xFF00 + uint16(c.fetch8())); return 3 })
	op(t, 0xF1, "POP AF", func(c *CPU) byte { c.SetAF(c.pop16()); return 3 })
	op(t, 0xF2, "LD A,(C)", func(c *CPU) byte { c.A = c.Bus.Read8(0xFF00 + uint16(c.C)); return 2 })
	op(t, 0xF3, "DI", func(c *CPU) byte { c.IME = false; c.eiPending = false; return 1 })
	op(t, 0xF5, "PUSH AF", func(c *CPU) byte { c.push16(c.AF()); return 4 })
	op(t, 0xF6, "OR d8", func(c *CPU) byte { c.opOR(c.fetch8()); return 2 })
	op(t, 0xF7, "RST 30H", func(c *CPU) byte { c.rst(0x30); return 4 })
	op(t, 0xF8, "LD HL,SP+r8", func(c *CPU) byte {
		res, fl := UpdateSPOffset(c.SP, int8(c.fetch8()))
		c.SetHL(res)
		c.Flags = fl
		return 3
	})
	op(t, 0xF9, "LD SP,HL", func(c *CPU) byte { c.SP = c.HL(); return 2 })
	op(t, 0xFA, "LD A,(a16)", func(c *CPU) byte { c.A = c.Bus.Read8(c.fetch16()); return 4 })
	op(t, 0xFB, "EI", func(c *CPU) byte { c.eiPending = true; return 1 })
	op(t, 0xFE, "CP d8", func(c *CPU) byte { c.opCP(c.fetch8()); return 2 })
	op(t, 0xFF, "RST 38H", func(c *CPU) byte { c.rst(0x38); return 4 })
}

// buildLD8Block fills 0x40-0x7F: LD r,r' over the canonical operand
// order B,C,D,E,H,L,(HL),A for both destination rows and source columns,
// with 0x76 (what would be LD (HL),(HL)) replaced by HALT.
func buildLD8Block(t *[256]Opcode) {
	operands := []reg8{regB, regC, regD, regE, regH, regL, memHL, regA}
	for row, dst := range operands {
		for col, src := range operands {
			code := byte(0x40 + row*8 + col)
			if code == 0x76 {
				op(t, code, "HALT", func(c *CPU) byte { c.Halted = true; return 1 })
				continue
			}
			dst, src := dst, src
			op(t, code, "LD "+dst.name+","+src.name, func(c *CPU) byte {
				dst.set(c, src.get(c))
				return ldReg8Cycles(dst, src)
			})
		}
	}
}

// buildALUBlock fills 0x80-0xBF: eight ALU operations against A, each
// over the same eight-operand order as the LD block.
func buildALUBlock(t *[256]Opcode) {
	operands := []reg8{regB, regC, regD, regE, regH, regL, memHL, regA}
	groups := []struct {
		name string
		op   func(c *CPU, v byte)
	}{
		{"ADD A", (*CPU).opADD},
		{"ADC A", (*CPU).opADC},
		{"SUB", (*CPU).opSUB},
		{"SBC A", (*CPU).opSBC},
		{"AND", (*CPU).opAND},
		{"XOR", (*CPU).opXOR},
		{"OR", (*CPU).opOR},
		{"CP", (*CPU).opCP},
	}
	for row, g := range groups {
		for col, src := range operands {
			code := byte(0x80 + row*8 + col)
			g, src := g, src
			cycles := byte(1)
			if src.name == memHL.name {
				cycles = 2
			}
			op(t, code, g.name+","+src.name, func(c *CPU) byte {
				g.op(c, src.get(c))
				return cycles
			})
		}
	}
}

func buildCBOpcodes() {
	t := &cbOpcodes
	operands := []reg8{regB, regC, regD, regE, regH, regL, memHL, regA}
	shiftGroups := []struct {
		name string
		fn   func(c *CPU, r reg8)
	}{
		{"RLC", (*CPU).rlc},
		{"RRC", (*CPU).rrc},
		{"RL", (*CPU).rl},
		{"RR", (*CPU).rr},
		{"SLA", (*CPU).sla},
		{"SRA", (*CPU).sra},
		{"SWAP", (*CPU).swap},
		{"SRL", (*CPU).srl},
	}
	for row, g := range shiftGroups {
		for col, r := range operands {
			code := byte(row*8 + col)
			g, r := g, r
			cycles := byte(2)
			if r.name == memHL.name {
				cycles = 4
			}
			op(t, code, g.name+" "+r.name, func(c *CPU) byte {
				g.fn(c, r)
				return cycles
			})
		}
	}

	// 0x40-0x7F BIT, 0x80-0xBF RES, 0xC0-0xFF SET: each spans bits 0-7
	// across the same eight-operand column order.
	for bit := byte(0); bit < 8; bit++ {
		for col, r := range operands {
			r := r
			bitCode := byte(0x40 + int(bit)*8 + col)
			resCode := byte(0x80 + int(bit)*8 + col)
			setCode := byte(0xC0 + int(bit)*8 + col)
			b := bit

			bitCycles := byte(2)
			rwCycles := byte(2)
			if r.name == memHL.name {
				bitCycles = 3
				rwCycles = 4
			}

			op(t, bitCode, bitName(b, r), func(c *CPU) byte { c.bit(b, r); return bitCycles })
			op(t, resCode, resName(b, r), func(c *CPU) byte { c.res(b, r); return rwCycles })
			op(t, setCode, setName(b, r), func(c *CPU) byte { c.set(b, r); return rwCycles })
		}
	}
}

func bitName(b byte, r reg8) string { return "BIT " + digit(b) + "," + r.name }
func resName(b byte, r reg8) string { return "RES " + digit(b) + "," + r.name }
func setName(b byte, r reg8) string { return "SET " + digit(b) + "," + r.name }

func digit(b byte) string { return string(rune('0' + b)) }
