package cartridge

import "github.com/thelolagemann/goadvance/pkg/bits"

// Gpio is the optional on-cartridge I/O register file described in
// spec.md §2/§4.3: three 16-bit registers (data, direction, control)
// aliased into the ROM window at GPIODataOffset/GPIODirectionOffset/
// GPIOControlOffset. When present it shadows ROM bytes at those offsets.
type Gpio struct {
	data      uint16
	direction uint16
	control   uint16

	rtc *Rtc // nil when no peripheral is wired to the pins
}

// NewGpio returns a Gpio register file with no peripheral attached.
func NewGpio() *Gpio {
	return &Gpio{}
}

// NewGpioWithRTC returns a Gpio register file with an S-3511-style RTC
// chip wired to the data pins, the on-cartridge peripheral spec.md §2
// names as an example.
func NewGpioWithRTC() *Gpio {
	return &Gpio{rtc: NewRtc()}
}

// IsReadable reports whether the control register currently permits GPIO
// register reads.
func (g *Gpio) IsReadable() bool {
	return bits.Test(uint8(g.control), 0)
}

// Read returns the register value at the given ROM-window offset
// (GPIODataOffset/GPIODirectionOffset/GPIOControlOffset).
func (g *Gpio) Read(offset uint32) uint16 {
	switch offset {
	case 0xC4:
		if g.rtc != nil {
			g.data = (g.data &^ 0x0007) | g.rtc.ReadPins(g.data, g.direction)
		}
		return g.data
	case 0xC6:
		return g.direction
	case 0xC8:
		return g.control
	}
	return 0
}

// Write stores to the register at the given ROM-window offset, regardless
// of IsReadable — writes are always allowed per spec.md §4.3.
func (g *Gpio) Write(offset uint32, value uint16) {
	switch offset {
	case 0xC4:
		g.data = value & 0x000F
		if g.rtc != nil {
			g.rtc.WritePins(g.data, g.direction)
		}
	case 0xC6:
		g.direction = value & 0x000F
	case 0xC8:
		g.control = value & 0x0001
	}
}
