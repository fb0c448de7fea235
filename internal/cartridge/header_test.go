package cartridge

import "testing"

func makeROM(size int) []byte {
	rom := make([]byte, size)
	copy(rom[0x0A0:0x0AC], "MYGAME")
	copy(rom[0x0AC:0x0B0], "ABCD")
	copy(rom[0x0B0:0x0B2], "01")
	return rom
}

func TestParseHeaderShortROM(t *testing.T) {
	_, err := ParseHeader(make([]byte, headerSize-1))
	if err != ErrShortROM {
		t.Fatalf("expected ErrShortROM, got %v", err)
	}
}

func TestParseHeaderFields(t *testing.T) {
	rom := makeROM(0x200)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Title != "MYGAME" {
		t.Errorf("Title = %q, want MYGAME", h.Title)
	}
	if h.GameCode != "ABCD" {
		t.Errorf("GameCode = %q, want ABCD", h.GameCode)
	}
	if h.MakerCode != "01" {
		t.Errorf("MakerCode = %q, want 01", h.MakerCode)
	}
}

func TestHeaderValidateRoundTrip(t *testing.T) {
	rom := makeROM(0x200)
	var raw [headerSize]byte
	copy(raw[:], rom[:headerSize])
	rom[0x0BD] = computeChecksum(raw)

	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if err := h.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for a correctly-computed checksum", err)
	}
}

func TestHeaderValidateMismatch(t *testing.T) {
	rom := makeROM(0x200)
	rom[0x0BD] = 0xFF
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if err := h.Validate(); err == nil {
		t.Error("Validate() = nil, want mismatch error for a corrupted checksum byte")
	}
}

func TestHeaderString(t *testing.T) {
	rom := makeROM(0x200)
	h, _ := ParseHeader(rom)
	want := "MYGAME (ABCD/01)"
	if got := h.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
