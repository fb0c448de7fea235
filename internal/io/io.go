// Package io models the memory-mapped I/O device block the system bus
// delegates the 0x0400_0000 page to. Most registers are specified here
// only via their read/write contract (spec.md §4.2); WAITCNT is the one
// register this core cares about the side effects of.
package io

import "github.com/thelolagemann/goadvance/internal/types"

// WaitcntListener is invoked with the structured view of a freshly-written
// WAITCNT value.
type WaitcntListener func(types.WaitControl)

// Block is a flat, byte-addressable register file backing the I/O page.
// Reads/writes to ordinary registers just touch the backing array; WAITCNT
// additionally fires the registered listener so the bus can refresh its
// gamepak cycle tables.
type Block struct {
	regs [0x400]byte

	onWaitcnt WaitcntListener
}

// NewBlock returns a zeroed I/O register block.
func NewBlock() *Block {
	return &Block{}
}

// SetWaitcntListener installs the callback fired on every write that
// touches the WAITCNT register.
func (b *Block) SetWaitcntListener(fn WaitcntListener) {
	b.onWaitcnt = fn
}

func (b *Block) mask(offset uint32) uint32 {
	return offset & 0x3FF
}

// Read8 returns the register byte at offset.
func (b *Block) Read8(offset uint32) uint8 {
	return b.regs[b.mask(offset)]
}

// Read16 returns the register halfword at offset.
func (b *Block) Read16(offset uint32) uint16 {
	off := b.mask(offset)
	return uint16(b.regs[off]) | uint16(b.regs[off+1])<<8
}

// Read32 returns the register word at offset.
func (b *Block) Read32(offset uint32) uint32 {
	off := b.mask(offset)
	return uint32(b.regs[off]) | uint32(b.regs[off+1])<<8 |
		uint32(b.regs[off+2])<<16 | uint32(b.regs[off+3])<<24
}

// Write8 stores value at offset, firing the WAITCNT listener if the write
// touches either byte of that register.
func (b *Block) Write8(offset uint32, value uint8) {
	off := b.mask(offset)
	b.regs[off] = value
	b.maybeFireWaitcnt(off)
}

// Write16 stores value at offset.
func (b *Block) Write16(offset uint32, value uint16) {
	off := b.mask(offset)
	b.regs[off] = uint8(value)
	b.regs[off+1] = uint8(value >> 8)
	b.maybeFireWaitcnt(off)
}

// Write32 stores value at offset.
func (b *Block) Write32(offset uint32, value uint32) {
	off := b.mask(offset)
	b.regs[off] = uint8(value)
	b.regs[off+1] = uint8(value >> 8)
	b.regs[off+2] = uint8(value >> 16)
	b.regs[off+3] = uint8(value >> 24)
	b.maybeFireWaitcnt(off)
}

func (b *Block) maybeFireWaitcnt(off uint32) {
	if b.onWaitcnt == nil {
		return
	}
	if off != types.WaitcntOffset && off != types.WaitcntOffset+1 {
		return
	}
	v := uint16(b.regs[types.WaitcntOffset]) | uint16(b.regs[types.WaitcntOffset+1])<<8
	b.onWaitcnt(types.ParseWaitControl(v))
}
