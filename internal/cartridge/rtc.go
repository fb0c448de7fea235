package cartridge

import (
	"time"

	"github.com/thelolagemann/goadvance/pkg/bits"
)

// Rtc is a minimal, simplified stand-in for the Seiko S-3511 real-time
// clock chip some GBA cartridges wire to their GPIO pins (spec.md §2).
// It is not bit-for-bit accurate to the chip's 3-wire serial protocol;
// it models the same command/register shape (a command byte selecting a
// register, followed by that register's parameter bytes) without exact
// clock-edge timing, which is adequate for a cartridge feature the core
// bus/cycle-accounting spec never requires cycle-exact.
type Rtc struct {
	lastPins uint16 // previous data-register value, to detect SCK edges

	selected   bool
	cmdBits    uint8
	cmdByte    uint8
	params     []byte
	paramIndex int
	control    uint8
}

const (
	rtcPinSCK = 1 << 0
	rtcPinSIO = 1 << 1
	rtcPinCS  = 1 << 2
)

// NewRtc returns an Rtc chip with its control register at its power-on
// default.
func NewRtc() *Rtc {
	return &Rtc{control: 0x00}
}

// WritePins observes a GPIO data-register write. Only pins configured as
// GBA outputs (direction bit set) are treated as driven; the others are
// ignored, since the chip itself would be driving them.
func (r *Rtc) WritePins(data, direction uint16) {
	driven := data & direction
	prevDriven := r.lastPins & direction
	r.lastPins = data

	csHigh := bits.Test(uint8(driven), 2)
	if !csHigh {
		r.selected = false
		r.cmdBits = 0
		return
	}

	sckRose := bits.Test(uint8(driven), 0) && !bits.Test(uint8(prevDriven), 0)
	if !sckRose {
		return
	}

	bit := bits.Val(uint8(driven), 1)

	if !r.selected {
		r.selected = true
		r.cmdBits = 0
		r.cmdByte = 0
	}

	if r.cmdBits < 8 {
		r.cmdByte = (r.cmdByte << 1) | bit
		r.cmdBits++
		if r.cmdBits == 8 {
			r.dispatch()
		}
	}
}

// ReadPins returns the SIO bit (and the rest of the pin state unchanged)
// for a GPIO data-register read while a parameter byte is being clocked
// out. Only the 3 low bits the chip drives are meaningful.
func (r *Rtc) ReadPins(data, direction uint16) uint16 {
	if r.cmdByte&0x01 == 0 || r.paramIndex >= len(r.params) {
		return data & 0x0007
	}
	// reading register parameters: present the current parameter byte's
	// top bit on SIO, simplified to whole-byte granularity rather than
	// true bit-serial shifting.
	b := r.params[r.paramIndex]
	bit := uint16(0)
	if b&0x80 != 0 {
		bit = rtcPinSIO
	}
	return (data &^ rtcPinSIO) | bit
}

// dispatch interprets a completed command byte: bits [3:1] select the
// register, bit 0 selects read (1) vs write (0).
func (r *Rtc) dispatch() {
	reg := (r.cmdByte >> 1) & 0x7
	isRead := r.cmdByte&0x01 != 0
	r.paramIndex = 0

	switch reg {
	case 0: // control/status
		if isRead {
			r.params = []byte{r.control}
		} else {
			r.params = make([]byte, 1)
		}
	case 2: // date + time
		if isRead {
			r.params = encodeDateTime(time.Now())
		} else {
			r.params = make([]byte, 7)
		}
	case 3: // time only
		if isRead {
			r.params = encodeTime(time.Now())
		} else {
			r.params = make([]byte, 3)
		}
	default:
		r.params = nil
	}
}

func toBCD(v int) byte {
	return byte((v/10)<<4 | (v % 10))
}

func encodeDateTime(t time.Time) []byte {
	y := t.Year() % 100
	return []byte{
		toBCD(y),
		toBCD(int(t.Month())),
		toBCD(t.Day()),
		toBCD(int(t.Weekday())),
		toBCD(t.Hour()),
		toBCD(t.Minute()),
		toBCD(t.Second()),
	}
}

func encodeTime(t time.Time) []byte {
	return []byte{toBCD(t.Hour()), toBCD(t.Minute()), toBCD(t.Second())}
}
