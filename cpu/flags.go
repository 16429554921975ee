package cpu

import "dmg/mask"

// UpdateAdd8 computes a 8-bit addition with an optional incoming carry
// (used by both ADD and ADC) and the flags it produces.
func UpdateAdd8(a, b, carryIn byte) (byte, Flags) {
	sum := uint16(a) + uint16(b) + uint16(carryIn)
	result := byte(sum)
	return result, Flags{
		Z: result == 0,
		N: false,
		H: mask.Nibble(a)+mask.Nibble(b)+carryIn > 0x0F,
		C: sum > 0xFF,
	}
}

// UpdateSub8 computes an 8-bit subtraction with an optional incoming
// borrow (used by both SUB and SBC, and by CP which discards the
// numeric result and keeps only the flags).
func UpdateSub8(a, b, carryIn byte) (byte, Flags) {
	diff := int(a) - int(b) - int(carryIn)
	result := byte(diff)
	return result, Flags{
		Z: result == 0,
		N: true,
		H: int(mask.Nibble(a))-int(mask.Nibble(b))-int(carryIn) < 0,
		C: diff < 0,
	}
}

// UpdateAdd16 computes a 16-bit addition (ADD HL,rr). Z is preserved by
// every caller, never computed here; zBefore is threaded through only
// so the return shape matches the other flag helpers.
func UpdateAdd16(a, b uint16, zBefore bool) (uint16, Flags) {
	sum := uint32(a) + uint32(b)
	return uint16(sum), Flags{
		Z: zBefore,
		N: false,
		H: (a&0x0FFF)+(b&0x0FFF) > 0x0FFF,
		C: sum > 0xFFFF,
	}
}

// UpdateSPOffset computes SP+e8 (ADD SP,e8 and LD HL,SP+e8). H and C are
// derived from an 8-bit add of SP's low byte and the offset's unsigned
// byte pattern, never from the signed 16-bit result — real hardware
// computes the flags on the low byte add the same way it would for any
// other 8-bit ADD, before propagating the carry into the high byte.
func UpdateSPOffset(sp uint16, offset int8) (uint16, Flags) {
	e := uint16(uint8(offset))
	h := (sp&0x0F)+(e&0x0F) > 0x0F
	c := (sp&0xFF)+(e&0xFF) > 0xFF
	result := uint16(int32(sp) + int32(offset))
	return result, Flags{Z: false, N: false, H: h, C: c}
}
