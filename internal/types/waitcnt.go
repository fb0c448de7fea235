package types

import "github.com/thelolagemann/goadvance/pkg/bits"

// WaitControl is the structured view of the 16-bit WAITCNT register
// (I/O offset 0x204). Writing WAITCNT recomputes the gamepak portion of
// the cycle lookup tables — see bus.OnWaitcntWritten.
type WaitControl struct {
	SRAMWait    uint8 // bits 0-1
	WS0First    uint8 // bits 2-3
	WS0Second   uint8 // bit 4
	WS1First    uint8 // bits 5-6
	WS1Second   uint8 // bit 7
	WS2First    uint8 // bits 8-9
	WS2Second   uint8 // bit 10
	PHITerminal uint8 // bits 11-12
	Prefetch    bool  // bit 14
	GamepakType bool  // bit 15 (read-only, 0=GBA, 1=GBC)

	Raw uint16
}

// ParseWaitControl decodes a raw WAITCNT value into its fields.
func ParseWaitControl(v uint16) WaitControl {
	raw := uint32(v)
	return WaitControl{
		SRAMWait:    uint8(bits.Field(raw, 0, 2)),
		WS0First:    uint8(bits.Field(raw, 2, 2)),
		WS0Second:   uint8(bits.Field(raw, 4, 1)),
		WS1First:    uint8(bits.Field(raw, 5, 2)),
		WS1Second:   uint8(bits.Field(raw, 7, 1)),
		WS2First:    uint8(bits.Field(raw, 8, 2)),
		WS2Second:   uint8(bits.Field(raw, 10, 1)),
		PHITerminal: uint8(bits.Field(raw, 11, 2)),
		Prefetch:    bits.Test(uint8(v>>8), 6), // bit 14 overall, bit 6 of the high byte
		GamepakType: bits.Test(uint8(v>>8), 7), // bit 15 overall, bit 7 of the high byte
		Raw:         v,
	}
}
