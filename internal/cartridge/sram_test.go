package cartridge

import "testing"

func TestSramReadWriteRoundTrip(t *testing.T) {
	s := NewSram(nil)
	s.Write(0x10, 0x42)
	if got := s.Read(0x10); got != 0x42 {
		t.Errorf("Read(0x10) = %#02x, want 0x42", got)
	}
}

func TestSramMirrorsModuloSize(t *testing.T) {
	s := NewSram(nil)
	s.Write(0x10, 0x99)
	if got := s.Read(0x10 + sramSize); got != 0x99 {
		t.Errorf("Read wrapped offset = %#02x, want 0x99 (mirrored)", got)
	}
}

func TestSramSeededFromSave(t *testing.T) {
	save := make([]byte, sramSize)
	save[5] = 0x7E
	s := NewSram(save)
	if got := s.Read(5); got != 0x7E {
		t.Errorf("Read(5) = %#02x, want 0x7E", got)
	}
}

func TestSramSavePersistsWrites(t *testing.T) {
	s := NewSram(nil)
	s.Write(100, 0x55)
	out := s.Save()
	if len(out) != sramSize {
		t.Fatalf("Save() length = %d, want %d", len(out), sramSize)
	}
	if out[100] != 0x55 {
		t.Errorf("Save()[100] = %#02x, want 0x55", out[100])
	}
}
