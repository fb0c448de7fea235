// Package video is a minimal stand-in for the graphics pipeline the core
// bus named as an external collaborator (spec.md §1/§4.2): it owns
// PALRAM/VRAM/OAM storage and their mirroring rules, with no pixel
// pipeline behind them. A real PPU implementation would satisfy the same
// bus.Graphics contract.
package video

import "github.com/thelolagemann/goadvance/internal/ram"

const (
	palRAMSize = 1 * 1024
	vramWindow = 128 * 1024
	vramUsable = 96 * 1024
	oamSize    = 1 * 1024
)

// Stub holds PALRAM/VRAM/OAM as flat RAM blocks and implements VRAM's
// documented mirroring: the unused 32 KiB of its 128 KiB window mirrors
// bytes 0x10000..0x18000 rather than wrapping the whole block.
type Stub struct {
	pal  *ram.Ram
	vram *ram.Ram
	oam  *ram.Ram
}

// New returns a Stub with zeroed PALRAM/VRAM/OAM.
func New() *Stub {
	return &Stub{
		pal:  ram.NewRAM(palRAMSize),
		vram: ram.NewRAM(vramUsable),
		oam:  ram.NewRAM(oamSize),
	}
}

func vramOffset(offset uint32) uint32 {
	offset %= vramWindow
	if offset >= vramUsable {
		offset = vramUsable - 0x8000 + (offset % 0x8000)
	}
	return offset
}

func (s *Stub) ReadPalette8(offset uint32) uint8  { return s.pal.Read(offset % palRAMSize) }
func (s *Stub) ReadPalette16(offset uint32) uint16 {
	o := offset % palRAMSize
	return uint16(s.pal.Read(o)) | uint16(s.pal.Read(o+1))<<8
}
func (s *Stub) ReadPalette32(offset uint32) uint32 {
	o := offset % palRAMSize
	return uint32(s.pal.Read(o)) | uint32(s.pal.Read(o+1))<<8 |
		uint32(s.pal.Read(o+2))<<16 | uint32(s.pal.Read(o+3))<<24
}
func (s *Stub) WritePalette8(offset uint32, value uint8) { s.pal.Write(offset%palRAMSize, value) }
func (s *Stub) WritePalette16(offset uint32, value uint16) {
	o := offset % palRAMSize
	s.pal.Write(o, uint8(value))
	s.pal.Write(o+1, uint8(value>>8))
}
func (s *Stub) WritePalette32(offset uint32, value uint32) {
	o := offset % palRAMSize
	s.pal.Write(o, uint8(value))
	s.pal.Write(o+1, uint8(value>>8))
	s.pal.Write(o+2, uint8(value>>16))
	s.pal.Write(o+3, uint8(value>>24))
}

func (s *Stub) ReadVRAM8(offset uint32) uint8 { return s.vram.Read(vramOffset(offset)) }
func (s *Stub) ReadVRAM16(offset uint32) uint16 {
	o := vramOffset(offset)
	return uint16(s.vram.Read(o)) | uint16(s.vram.Read(o+1))<<8
}
func (s *Stub) ReadVRAM32(offset uint32) uint32 {
	o := vramOffset(offset)
	return uint32(s.vram.Read(o)) | uint32(s.vram.Read(o+1))<<8 |
		uint32(s.vram.Read(o+2))<<16 | uint32(s.vram.Read(o+3))<<24
}
func (s *Stub) WriteVRAM8(offset uint32, value uint8) { s.vram.Write(vramOffset(offset), value) }
func (s *Stub) WriteVRAM16(offset uint32, value uint16) {
	o := vramOffset(offset)
	s.vram.Write(o, uint8(value))
	s.vram.Write(o+1, uint8(value>>8))
}
func (s *Stub) WriteVRAM32(offset uint32, value uint32) {
	o := vramOffset(offset)
	s.vram.Write(o, uint8(value))
	s.vram.Write(o+1, uint8(value>>8))
	s.vram.Write(o+2, uint8(value>>16))
	s.vram.Write(o+3, uint8(value>>24))
}

func (s *Stub) ReadOAM8(offset uint32) uint8 { return s.oam.Read(offset % oamSize) }
func (s *Stub) ReadOAM16(offset uint32) uint16 {
	o := offset % oamSize
	return uint16(s.oam.Read(o)) | uint16(s.oam.Read(o+1))<<8
}
func (s *Stub) ReadOAM32(offset uint32) uint32 {
	o := offset % oamSize
	return uint32(s.oam.Read(o)) | uint32(s.oam.Read(o+1))<<8 |
		uint32(s.oam.Read(o+2))<<16 | uint32(s.oam.Read(o+3))<<24
}
func (s *Stub) WriteOAM8(offset uint32, value uint8) { s.oam.Write(offset%oamSize, value) }
func (s *Stub) WriteOAM16(offset uint32, value uint16) {
	o := offset % oamSize
	s.oam.Write(o, uint8(value))
	s.oam.Write(o+1, uint8(value>>8))
}
func (s *Stub) WriteOAM32(offset uint32, value uint32) {
	o := offset % oamSize
	s.oam.Write(o, uint8(value))
	s.oam.Write(o+1, uint8(value>>8))
	s.oam.Write(o+2, uint8(value>>16))
	s.oam.Write(o+3, uint8(value>>24))
}
