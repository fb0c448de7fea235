// Package cartridge models a GBA cartridge: immutable ROM bytes, a parsed
// header, one of four backup-media variants, and an optional GPIO register
// file feeding an on-cartridge peripheral.
package cartridge

import (
	"github.com/thelolagemann/goadvance/internal/types"
)

const (
	romWindowMask     uint32 = 0x01FF_FFFF
	sramWindowMask    uint32 = 0x7FFF
	flashWindowMask   uint32 = 0xFFFF
	eepromSmallCutoff uint32 = 16 * 1024 * 1024
)

// Cartridge owns ROM bytes, header metadata, the active backup medium and
// an optional GPIO register file, and routes the gamepak/SRAM address
// ranges the system bus forwards to it (spec.md §4.3).
type Cartridge struct {
	rom []byte

	Header Header
	Backup BackupMedia
	Gpio   *Gpio

	// ROMHash is a cheap xxhash digest of the ROM bytes, used by
	// telemetry/tooling as a session key without re-hashing the image.
	ROMHash string

	warnLogger func(format string, args ...interface{})
}

// Size returns the ROM image's length in bytes.
func (c *Cartridge) Size() int {
	return len(c.rom)
}

// eepromAddressable reports whether addr (top byte 0x0D) currently falls
// inside the EEPROM window, which depends on ROM size per spec.md §4.3/§6.
func (c *Cartridge) eepromAddressable(addr uint32) bool {
	if uint32(len(c.rom)) <= eepromSmallCutoff {
		return true
	}
	return addr >= 0x0DFF_FF00
}

// isGpioOffset reports whether offset (already masked to the ROM window)
// names one of the three GPIO register aliases.
func isGpioOffset(offset uint32) bool {
	switch offset {
	case types.GPIODataOffset, types.GPIODirectionOffset, types.GPIOControlOffset:
		return true
	}
	return false
}

// Read8 reads a byte from the gamepak/SRAM address space.
func (c *Cartridge) Read8(addr uint32) uint8 {
	page := types.PageOf(addr)
	if page == types.PageSRAMLo || page == types.PageSRAMHi {
		return c.readSram(addr)
	}

	// EEPROM and GPIO are only ever accessed 16 bits at a time on real
	// hardware; an 8-bit read falls through to the ROM byte underneath.
	offset := addr & romWindowMask
	return c.readRomByte(offset)
}

// Read16 reads a 16-bit halfword, routing to GPIO or EEPROM when the
// address names one of those windows.
func (c *Cartridge) Read16(addr uint32) uint16 {
	page := types.PageOf(addr)
	if page == types.PageSRAMLo || page == types.PageSRAMHi {
		b := c.readSram(addr)
		return uint16(b) | uint16(b)<<8
	}

	offset := addr & romWindowMask
	if c.Gpio != nil && isGpioOffset(offset) {
		if !c.Gpio.IsReadable() {
			c.warn("cartridge: GPIO read while control register denies reads at offset %#x", offset)
		}
		return c.Gpio.Read(offset)
	}

	if page == types.PageGamepakWS2H && c.Backup.Kind == BackupEeprom && c.eepromAddressable(addr) {
		return c.Backup.Eeprom.ReadHalf()
	}

	lo := c.readRomByte(offset)
	hi := c.readRomByte(offset + 1)
	return uint16(lo) | uint16(hi)<<8
}

// Read32 reads a 32-bit word as two halfwords; GPIO/EEPROM are never
// accessed at this width on real hardware, so it falls straight to ROM.
func (c *Cartridge) Read32(addr uint32) uint32 {
	page := types.PageOf(addr)
	if page == types.PageSRAMLo || page == types.PageSRAMHi {
		b := c.readSram(addr)
		w := uint32(b)
		return w | w<<8 | w<<16 | w<<24
	}

	offset := addr & romWindowMask
	lo := uint32(c.readRomByte(offset)) | uint32(c.readRomByte(offset+1))<<8
	hi := uint32(c.readRomByte(offset+2)) | uint32(c.readRomByte(offset+3))<<8
	return lo | hi<<16
}

// DebugRead8 is the side-effect-free variant used by introspection tooling:
// it never triggers a GPIO-read warning, EEPROM bit consumption or the
// open-bus synthesis that a real fetch performs past the end of the ROM
// image, returning zero there instead.
func (c *Cartridge) DebugRead8(addr uint32) uint8 {
	page := types.PageOf(addr)
	if page == types.PageSRAMLo || page == types.PageSRAMHi {
		return c.readSram(addr)
	}
	offset := addr & romWindowMask
	if offset < uint32(len(c.rom)) {
		return c.rom[offset]
	}
	return 0
}

func (c *Cartridge) readSram(addr uint32) uint8 {
	switch c.Backup.Kind {
	case BackupSram:
		return c.Backup.Sram.Read(addr & sramWindowMask)
	case BackupFlash:
		return c.Backup.Flash.Read(addr & flashWindowMask)
	default:
		return 0
	}
}

// readRomByte returns the ROM byte at offset, or a synthetic open-bus value
// when offset runs past the loaded image — the documented GBA behavior
// (addr/2 & 0xFFFF, split by byte lane) rather than a fixed placeholder,
// per the resolved open question on this point.
func (c *Cartridge) readRomByte(offset uint32) uint8 {
	if offset < uint32(len(c.rom)) {
		return c.rom[offset]
	}
	word := (offset / 2) & 0xFFFF
	if offset&1 != 0 {
		return uint8(word >> 8)
	}
	return uint8(word)
}

// Write8 writes a byte into the SRAM region; all other 8-bit cartridge
// writes are dropped.
func (c *Cartridge) Write8(addr uint32, value uint8) {
	page := types.PageOf(addr)
	if page == types.PageSRAMLo || page == types.PageSRAMHi {
		c.writeSram(addr, value)
	}
}

// Write16 writes a halfword, routing to GPIO or EEPROM as Read16 does.
func (c *Cartridge) Write16(addr uint32, value uint16) {
	page := types.PageOf(addr)
	if page == types.PageSRAMLo || page == types.PageSRAMHi {
		c.writeSram(addr, uint8(value))
		return
	}

	offset := addr & romWindowMask
	if c.Gpio != nil && isGpioOffset(offset) {
		c.Gpio.Write(offset, value)
		return
	}

	if page == types.PageGamepakWS2H && c.Backup.Kind == BackupEeprom && c.eepromAddressable(addr) {
		c.Backup.Eeprom.WriteHalf(value)
	}
}

// Write32 writes a word to SRAM (low byte only); other 32-bit writes drop.
func (c *Cartridge) Write32(addr uint32, value uint32) {
	page := types.PageOf(addr)
	if page == types.PageSRAMLo || page == types.PageSRAMHi {
		c.writeSram(addr, uint8(value))
	}
}

func (c *Cartridge) writeSram(addr uint32, value uint8) {
	switch c.Backup.Kind {
	case BackupSram:
		c.Backup.Sram.Write(addr&sramWindowMask, value)
	case BackupFlash:
		c.Backup.Flash.Write(addr&flashWindowMask, value)
	}
}

func (c *Cartridge) warn(format string, args ...interface{}) {
	if c.warnLogger != nil {
		c.warnLogger(format, args...)
	}
}
