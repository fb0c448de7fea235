// Package bus implements the GBA system bus: address decoding across the
// ten logical regions, wait-state cycle accounting, BIOS-protection and
// open-bus emulation, delegating gamepak/SRAM traffic to the cartridge and
// PALRAM/VRAM/OAM traffic to a named graphics collaborator.
package bus

import (
	"github.com/thelolagemann/goadvance/internal/cartridge"
	"github.com/thelolagemann/goadvance/internal/io"
	"github.com/thelolagemann/goadvance/internal/ram"
	"github.com/thelolagemann/goadvance/internal/types"
	"github.com/thelolagemann/goadvance/pkg/log"
)

// Bus owns BIOS ROM, onboard/internal work RAM, the I/O block, the
// cartridge, the cycle lookup tables, and the BIOS-protection cache
// (spec.md §3). It holds a non-owning back-reference to the CPU's
// pipeline, installed via SetPipelineSource once both exist.
type Bus struct {
	bios  []byte
	ewram *ram.Ram
	iwram *ram.Ram
	io    *io.Block

	graphics Graphics
	cart     *cartridge.Cartridge
	cycles   *CycleLookupTables

	lastBIOSWord uint32
	pipeline     PipelineSource

	telemetry Telemetry

	log log.Logger
}

// Telemetry observes every GetCycles call, mirroring bus traffic to a
// debug sink without influencing the cycle count itself.
type Telemetry interface {
	Record(addr uint32, access types.AccessType, width types.AccessWidth, cost uint)
}

// SetTelemetry installs (or clears, with nil) the telemetry sink.
func (b *Bus) SetTelemetry(t Telemetry) {
	b.telemetry = t
}

// New returns a Bus wired to the given BIOS image, cartridge and graphics
// collaborator. The cycle tables start at their static RAM defaults, with
// gamepak timings computed from a WAITCNT of zero; call OnWaitcntWritten
// (or let a WAITCNT write through the I/O block do it) to reprogram them.
func New(bios []byte, cart *cartridge.Cartridge, graphics Graphics, logger log.Logger) *Bus {
	if logger == nil {
		logger = log.NewNullLogger()
	}

	b := &Bus{
		bios:     bios,
		ewram:    ram.NewRAM(types.EWRAMSize),
		iwram:    ram.NewRAM(types.IWRAMSize),
		io:       io.NewBlock(),
		graphics: graphics,
		cart:     cart,
		cycles:   NewCycleLookupTables(),
		log:      logger,
	}
	b.io.SetWaitcntListener(b.OnWaitcntWritten)
	return b
}

// Cycles returns the bus's cycle lookup tables, for introspection tooling
// such as pkg/chart.
func (b *Bus) Cycles() *CycleLookupTables {
	return b.cycles
}

// OnWaitcntWritten recomputes the gamepak rows of the cycle lookup tables
// from a freshly-written WAITCNT value.
func (b *Bus) OnWaitcntWritten(w types.WaitControl) {
	b.cycles.UpdateGamepakWaitstates(w)
}

// GetCycles returns the cost of a single access at addr, mirroring the
// event to the telemetry sink when one is installed.
func (b *Bus) GetCycles(addr uint32, access types.AccessType, width types.AccessWidth) uint {
	cost := b.cycles.GetCycles(addr, access, width)
	if b.telemetry != nil {
		b.telemetry.Record(addr, access, width, cost)
	}
	return cost
}

func (b *Bus) ioOffset(addr uint32) uint32 {
	if addr&0xFFFF == 0x8000 {
		return 0x800
	}
	return addr & 0x3FF
}

// Read8 reads a byte from the bus.
func (b *Bus) Read8(addr uint32) uint8 {
	switch types.PageOf(addr) {
	case types.PageBIOS:
		return uint8(b.readBIOS(addr, types.Width8))
	case types.PageEWRAM:
		return b.ewram.Read(addr)
	case types.PageIWRAM:
		return b.iwram.Read(addr)
	case types.PageIOMEM:
		return b.io.Read8(b.ioOffset(addr))
	case types.PagePALRAM:
		return b.graphics.ReadPalette8(addr)
	case types.PageVRAM:
		return b.graphics.ReadVRAM8(addr)
	case types.PageOAM:
		return b.graphics.ReadOAM8(addr)
	case types.PageGamepakWS0L, types.PageGamepakWS0H,
		types.PageGamepakWS1L, types.PageGamepakWS1H,
		types.PageGamepakWS2L, types.PageGamepakWS2H,
		types.PageSRAMLo, types.PageSRAMHi:
		return b.cart.Read8(addr)
	default:
		return uint8(b.openBusRead(addr, types.Width8))
	}
}

// Read16 reads a halfword from the bus, clearing the address's low bit.
func (b *Bus) Read16(addr uint32) uint16 {
	addr &^= 1
	switch types.PageOf(addr) {
	case types.PageBIOS:
		return uint16(b.readBIOS(addr, types.Width16))
	case types.PageEWRAM:
		return uint16(b.ewram.Read(addr)) | uint16(b.ewram.Read(addr+1))<<8
	case types.PageIWRAM:
		return uint16(b.iwram.Read(addr)) | uint16(b.iwram.Read(addr+1))<<8
	case types.PageIOMEM:
		return b.io.Read16(b.ioOffset(addr))
	case types.PagePALRAM:
		return b.graphics.ReadPalette16(addr)
	case types.PageVRAM:
		return b.graphics.ReadVRAM16(addr)
	case types.PageOAM:
		return b.graphics.ReadOAM16(addr)
	case types.PageGamepakWS0L, types.PageGamepakWS0H,
		types.PageGamepakWS1L, types.PageGamepakWS1H,
		types.PageGamepakWS2L, types.PageGamepakWS2H,
		types.PageSRAMLo, types.PageSRAMHi:
		return b.cart.Read16(addr)
	default:
		return uint16(b.openBusRead(addr, types.Width16))
	}
}

// Read32 reads a word from the bus, clearing the address's two low bits.
func (b *Bus) Read32(addr uint32) uint32 {
	addr &^= 3
	switch types.PageOf(addr) {
	case types.PageBIOS:
		return b.readBIOS(addr, types.Width32)
	case types.PageEWRAM:
		return uint32(b.ewram.Read(addr)) | uint32(b.ewram.Read(addr+1))<<8 |
			uint32(b.ewram.Read(addr+2))<<16 | uint32(b.ewram.Read(addr+3))<<24
	case types.PageIWRAM:
		return uint32(b.iwram.Read(addr)) | uint32(b.iwram.Read(addr+1))<<8 |
			uint32(b.iwram.Read(addr+2))<<16 | uint32(b.iwram.Read(addr+3))<<24
	case types.PageIOMEM:
		return b.io.Read32(b.ioOffset(addr))
	case types.PagePALRAM:
		return b.graphics.ReadPalette32(addr)
	case types.PageVRAM:
		return b.graphics.ReadVRAM32(addr)
	case types.PageOAM:
		return b.graphics.ReadOAM32(addr)
	case types.PageGamepakWS0L, types.PageGamepakWS0H,
		types.PageGamepakWS1L, types.PageGamepakWS1H,
		types.PageGamepakWS2L, types.PageGamepakWS2H,
		types.PageSRAMLo, types.PageSRAMHi:
		return b.cart.Read32(addr)
	default:
		return b.openBusRead(addr, types.Width32)
	}
}

// readBIOS implements the BIOS-protection rule from spec.md §4.2: a read
// is only honored while the CPU is executing out of BIOS; otherwise the
// last cached word is returned. Every honored read fetches a full
// 32-bit-aligned word, mirroring the real bus's fixed internal width.
func (b *Bus) readBIOS(addr uint32, width types.AccessWidth) uint32 {
	offset := addr & 0x00FF_FFFF
	if offset >= types.BIOSSize {
		return b.openBusRead(addr, width)
	}

	if b.pipeline != nil && b.pipeline.PC() < types.BIOSSize {
		base := offset &^ 3
		var word uint32
		for i := uint32(0); i < 4 && base+i < uint32(len(b.bios)); i++ {
			word |= uint32(b.bios[base+i]) << (8 * i)
		}
		b.lastBIOSWord = word
	}

	shift := (addr & 3) * 8
	val := b.lastBIOSWord >> shift
	switch width {
	case types.Width8:
		return val & 0xFF
	case types.Width16:
		return val & 0xFFFF
	default:
		return val
	}
}

// Write8 writes a byte to the bus. BIOS and ROM writes are silently
// dropped per spec.md §7.
func (b *Bus) Write8(addr uint32, value uint8) {
	switch types.PageOf(addr) {
	case types.PageBIOS:
		// read-only
	case types.PageEWRAM:
		b.ewram.Write(addr, value)
	case types.PageIWRAM:
		b.iwram.Write(addr, value)
	case types.PageIOMEM:
		b.io.Write8(b.ioOffset(addr), value)
	case types.PagePALRAM:
		b.graphics.WritePalette8(addr, value)
	case types.PageVRAM:
		b.graphics.WriteVRAM8(addr, value)
	case types.PageOAM:
		b.graphics.WriteOAM8(addr, value)
	case types.PageGamepakWS0L, types.PageGamepakWS0H,
		types.PageGamepakWS1L, types.PageGamepakWS1H,
		types.PageGamepakWS2L, types.PageGamepakWS2H,
		types.PageSRAMLo, types.PageSRAMHi:
		b.cart.Write8(addr, value)
	}
}

// Write16 writes a halfword to the bus, clearing the address's low bit.
func (b *Bus) Write16(addr uint32, value uint16) {
	addr &^= 1
	switch types.PageOf(addr) {
	case types.PageBIOS:
	case types.PageEWRAM:
		b.ewram.Write(addr, uint8(value))
		b.ewram.Write(addr+1, uint8(value>>8))
	case types.PageIWRAM:
		b.iwram.Write(addr, uint8(value))
		b.iwram.Write(addr+1, uint8(value>>8))
	case types.PageIOMEM:
		b.io.Write16(b.ioOffset(addr), value)
	case types.PagePALRAM:
		b.graphics.WritePalette16(addr, value)
	case types.PageVRAM:
		b.graphics.WriteVRAM16(addr, value)
	case types.PageOAM:
		b.graphics.WriteOAM16(addr, value)
	case types.PageGamepakWS0L, types.PageGamepakWS0H,
		types.PageGamepakWS1L, types.PageGamepakWS1H,
		types.PageGamepakWS2L, types.PageGamepakWS2H,
		types.PageSRAMLo, types.PageSRAMHi:
		b.cart.Write16(addr, value)
	}
}

// Write32 writes a word to the bus, clearing the address's two low bits.
func (b *Bus) Write32(addr uint32, value uint32) {
	addr &^= 3
	switch types.PageOf(addr) {
	case types.PageBIOS:
	case types.PageEWRAM:
		b.ewram.Write(addr, uint8(value))
		b.ewram.Write(addr+1, uint8(value>>8))
		b.ewram.Write(addr+2, uint8(value>>16))
		b.ewram.Write(addr+3, uint8(value>>24))
	case types.PageIWRAM:
		b.iwram.Write(addr, uint8(value))
		b.iwram.Write(addr+1, uint8(value>>8))
		b.iwram.Write(addr+2, uint8(value>>16))
		b.iwram.Write(addr+3, uint8(value>>24))
	case types.PageIOMEM:
		b.io.Write32(b.ioOffset(addr), value)
	case types.PagePALRAM:
		b.graphics.WritePalette32(addr, value)
	case types.PageVRAM:
		b.graphics.WriteVRAM32(addr, value)
	case types.PageOAM:
		b.graphics.WriteOAM32(addr, value)
	case types.PageGamepakWS0L, types.PageGamepakWS0H,
		types.PageGamepakWS1L, types.PageGamepakWS1H,
		types.PageGamepakWS2L, types.PageGamepakWS2H,
		types.PageSRAMLo, types.PageSRAMHi:
		b.cart.Write32(addr, value)
	}
}

// DebugRead8 reads a byte without side effects: no BIOS-protection cache
// update, no open-bus synthesis, no GPIO-read warnings or EEPROM bit
// consumption.
func (b *Bus) DebugRead8(addr uint32) uint8 {
	switch types.PageOf(addr) {
	case types.PageBIOS:
		offset := addr & 0x00FF_FFFF
		if offset < uint32(len(b.bios)) {
			return b.bios[offset]
		}
		return 0
	case types.PageEWRAM:
		return b.ewram.Read(addr)
	case types.PageIWRAM:
		return b.iwram.Read(addr)
	case types.PageIOMEM:
		return b.io.Read8(b.ioOffset(addr))
	case types.PagePALRAM:
		return b.graphics.ReadPalette8(addr)
	case types.PageVRAM:
		return b.graphics.ReadVRAM8(addr)
	case types.PageOAM:
		return b.graphics.ReadOAM8(addr)
	case types.PageGamepakWS0L, types.PageGamepakWS0H,
		types.PageGamepakWS1L, types.PageGamepakWS1H,
		types.PageGamepakWS2L, types.PageGamepakWS2H,
		types.PageSRAMLo, types.PageSRAMHi:
		return b.cart.DebugRead8(addr)
	default:
		return 0
	}
}
