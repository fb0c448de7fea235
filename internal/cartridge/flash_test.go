package cartridge

import "testing"

func sendFlashCmd(f *Flash, value uint8) {
	f.Write(flashCmdAddr1, 0xAA)
	f.Write(flashCmdAddr2, 0x55)
	f.Write(0x0000, value)
}

func TestFlashChipID64K(t *testing.T) {
	f := NewFlash(Flash64K, nil)
	sendFlashCmd(f, 0x90)
	if got := f.Read(0x0000); got != flashManufacturerID {
		t.Errorf("manufacturer ID = %#02x, want %#02x", got, flashManufacturerID)
	}
	if got := f.Read(0x0001); got != flashDeviceID64K {
		t.Errorf("device ID = %#02x, want %#02x", got, flashDeviceID64K)
	}
	sendFlashCmd(f, 0xF0)
	if f.idMode {
		t.Error("idMode still set after 0xF0 exit command")
	}
}

func TestFlashChipID128K(t *testing.T) {
	f := NewFlash(Flash128K, nil)
	sendFlashCmd(f, 0x90)
	if got := f.Read(0x0001); got != flashDeviceID128K {
		t.Errorf("device ID = %#02x, want %#02x", got, flashDeviceID128K)
	}
}

func TestFlashByteProgramOnlyClearsBits(t *testing.T) {
	f := NewFlash(Flash64K, nil)
	f.bytes[0x10] = 0xFF
	sendFlashCmd(f, 0xA0)
	f.Write(0x10, 0x0F)
	if got := f.Read(0x10); got != 0x0F {
		t.Errorf("Read(0x10) = %#02x, want 0x0F", got)
	}

	// programming again with a value that would set bits must not set
	// them back: flash can only clear bits until an erase.
	sendFlashCmd(f, 0xA0)
	f.Write(0x10, 0xFF)
	if got := f.Read(0x10); got != 0x0F {
		t.Errorf("Read(0x10) after no-op program = %#02x, want 0x0F (bits cannot be set by programming)", got)
	}
}

func TestFlashSectorErase(t *testing.T) {
	f := NewFlash(Flash64K, nil)
	for i := range f.bytes {
		f.bytes[i] = 0x00
	}

	sendFlashCmd(f, 0x80)
	sendFlashCmd(f, 0x30) // erase sector containing offset 0

	if got := f.Read(0x0500); got != 0xFF {
		t.Errorf("Read(0x0500) after sector erase = %#02x, want 0xFF", got)
	}
	if got := f.Read(0x1500); got != 0x00 {
		t.Errorf("Read(0x1500) outside erased sector = %#02x, want untouched 0x00", got)
	}
}

func TestFlashChipErase(t *testing.T) {
	f := NewFlash(Flash64K, nil)
	f.bytes[0x4000] = 0x00

	sendFlashCmd(f, 0x80)
	sendFlashCmd(f, 0x10) // erase entire chip

	if got := f.Read(0x4000); got != 0xFF {
		t.Errorf("Read(0x4000) after chip erase = %#02x, want 0xFF", got)
	}
}

func TestFlashBankSwitch128K(t *testing.T) {
	f := NewFlash(Flash128K, nil)
	f.bytes[flashBankSize+0x10] = 0xAB

	sendFlashCmd(f, 0xB0)
	f.Write(0x0000, 0x01)

	if got := f.Read(0x10); got != 0xAB {
		t.Errorf("Read(0x10) after bank switch to 1 = %#02x, want 0xAB", got)
	}
}

func TestFlashBankSwitchRejectedOn64K(t *testing.T) {
	f := NewFlash(Flash64K, nil)
	var warned string
	f.SetWarnLogger(func(format string, args ...interface{}) { warned = format })

	sendFlashCmd(f, 0xB0)
	if warned == "" {
		t.Error("expected a warning for bank-switch command on a non-bank-switching chip")
	}
}

func TestFlashProtocolResetOnBadHandshake(t *testing.T) {
	f := NewFlash(Flash64K, nil)
	f.Write(flashCmdAddr1, 0xAA)
	f.Write(0x1234, 0x00) // wrong address for the second handshake byte

	if f.state != flashIdle {
		t.Errorf("state = %v, want flashIdle after a broken handshake", f.state)
	}
}
