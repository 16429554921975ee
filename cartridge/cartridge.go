// Package cartridge implements the bus's Cartridge collaborator: a ROM
// image backing store plus a single bank-select register. It is a
// deliberate simplification of real MBC (memory bank controller) chips —
// MBC1/MBC3/MBC5 bank-switching timing and RAM-enable latches are named
// Non-goals of the core this package plugs into — but it keeps the shape
// real MBC hardware has, so the bus's bank-control-hint write path has
// somewhere real to land.
package cartridge

const (
	bankSize     = 0x4000 // 0x4000-0x7FFF window size
	externalSize = 0x2000 // 0xA000-0xBFFF
)

// Cartridge holds a ROM image and a single external-RAM bank. Bank 0 is
// always mapped at 0x0000-0x3FFF; the selectable bank is mapped at
// 0x4000-0x7FFF.
type Cartridge struct {
	rom []byte
	ram [externalSize]byte

	currentBank byte // 1-indexed; bank 0 is never selectable (hardware quirk)
}

// New wraps a raw ROM image. Images shorter than two banks are zero-padded
// up to bankSize*2 so bank-0/bank-1 reads never go out of range.
func New(rom []byte) *Cartridge {
	if len(rom) < bankSize*2 {
		padded := make([]byte, bankSize*2)
		copy(padded, rom)
		rom = padded
	}
	return &Cartridge{rom: rom, currentBank: 1}
}

// MapRead implements mem.Cartridge.
func (c *Cartridge) MapRead(addr uint16) byte {
	switch {
	case addr < bankSize:
		return c.rom[addr]
	case addr < bankSize*2:
		offset := int(c.currentBank)*bankSize + int(addr-bankSize)
		if offset >= len(c.rom) {
			return 0xFF
		}
		return c.rom[offset]
	default: // external RAM, 0xA000-0xBFFF
		return c.ram[addr-0xA000]
	}
}

// MapWrite implements mem.Cartridge. Writes into the ROM range are
// bank-control hints, not data stores: any write at 0x2000 or above
// selects a new bank using the low 5 bits of value, the convention
// every ROM-only or MBC1 title tolerates. Bank 0 is never selectable;
// selecting it is treated as selecting bank 1 (the same hardware quirk
// real MBC1 chips implement).
func (c *Cartridge) MapWrite(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		// RAM-enable gating is a named Non-goal; external RAM is
		// always writable through this collaborator.
	case addr < bankSize*2:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		c.currentBank = bank
	default: // external RAM
		c.ram[addr-0xA000] = value
	}
}
