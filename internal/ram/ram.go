// Package ram provides a flat, fixed-size RAM block for the GBA's onboard
// and internal work RAM. Addresses are uint32 here (rather than the uint16
// of a Game Boy's 64kB space) since EWRAM alone is 256kB.
package ram

// RAM represents a block of RAM addressed by a local offset relative to
// its base. Read/Write mirror the offset modulo the block's size
// themselves, so callers can pass a raw bus-relative offset without
// pre-masking it to the region's size.
type RAM interface {
	Read(address uint32) uint8
	Write(address uint32, value uint8)
	Size() uint32
}

type Ram struct {
	data []byte
}

// NewRAM returns a new zero-filled RAM block of the given size.
func NewRAM(size uint32) *Ram {
	return &Ram{data: make([]byte, size)}
}

// Read returns the byte at the given local offset.
func (r *Ram) Read(address uint32) uint8 {
	return r.data[address%uint32(len(r.data))]
}

// Write stores the byte at the given local offset.
func (r *Ram) Write(address uint32, value uint8) {
	r.data[address%uint32(len(r.data))] = value
}

// Size returns the RAM block's length in bytes.
func (r *Ram) Size() uint32 {
	return uint32(len(r.data))
}
