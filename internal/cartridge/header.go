package cartridge

import (
	"fmt"
	"strings"
)

// headerSize is the size of the parsed cartridge header region,
// 0x000-0x0BF, per spec.
const headerSize = 0xC0

// Header represents the parsed fixed portion of a GBA ROM's header,
// located at offset 0x000 in the cartridge image.
type Header struct {
	// Title is the 12-ASCII-character game title at 0x0A0-0x0AC.
	Title string
	// GameCode is the 4-ASCII-character game code at 0x0AC-0x0B0.
	GameCode string
	// MakerCode is the 2-ASCII-character maker code at 0x0B0-0x0B2.
	MakerCode string
	// HeaderChecksum is the checksum byte stored at 0x0BD.
	HeaderChecksum uint8

	raw [headerSize]byte
}

// ErrShortROM is returned when a ROM image is too small to contain a
// header.
var ErrShortROM = fmt.Errorf("cartridge: ROM is shorter than the minimum header size (%d bytes)", headerSize)

// ParseHeader parses the fixed header region out of rom.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < headerSize {
		return Header{}, ErrShortROM
	}

	var h Header
	copy(h.raw[:], rom[:headerSize])

	h.Title = cleanASCII(rom[0x0A0:0x0AC])
	h.GameCode = cleanASCII(rom[0x0AC:0x0B0])
	h.MakerCode = cleanASCII(rom[0x0B0:0x0B2])
	h.HeaderChecksum = rom[0x0BD]

	return h, nil
}

// cleanASCII trims trailing NUL padding from a fixed-width ASCII field.
func cleanASCII(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}

// computeChecksum implements the header checksum formula from spec.md §6:
// the sum, masked to 8 bits, of (-1 - byte) over 0xA0..0xBD.
func computeChecksum(raw [headerSize]byte) uint8 {
	var sum uint8
	for _, b := range raw[0xA0:0xBD] {
		sum += uint8(-1 - int16(b))
	}
	return sum
}

// Validate reports whether the header checksum byte matches the computed
// checksum. A mismatch is not fatal — real hardware doesn't check it either
// — callers should log it and continue loading, matching how
// rustboyadvance-ng's CartridgeHeader only warns on a bad checksum.
func (h Header) Validate() error {
	want := computeChecksum(h.raw)
	if want != h.HeaderChecksum {
		return fmt.Errorf("cartridge: header checksum mismatch: stored %#02x, computed %#02x", h.HeaderChecksum, want)
	}
	return nil
}

func (h Header) String() string {
	return fmt.Sprintf("%s (%s/%s)", h.Title, h.GameCode, h.MakerCode)
}
