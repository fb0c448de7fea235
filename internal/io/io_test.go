package io

import (
	"testing"

	"github.com/thelolagemann/goadvance/internal/types"
)

func TestBlockReadWriteRoundTrip(t *testing.T) {
	b := NewBlock()
	b.Write32(0x100, 0xAABBCCDD)
	if got := b.Read32(0x100); got != 0xAABBCCDD {
		t.Errorf("Read32 = %#08x, want 0xAABBCCDD", got)
	}
	if got := b.Read8(0x100); got != 0xDD {
		t.Errorf("Read8(low byte) = %#02x, want 0xDD", got)
	}
}

func TestBlockMasksOffsetToRegisterFile(t *testing.T) {
	b := NewBlock()
	b.Write8(0x400, 0x55) // wraps to offset 0
	if got := b.Read8(0); got != 0x55 {
		t.Errorf("Read8(0) = %#02x, want 0x55 (offset 0x400 masks to 0)", got)
	}
}

func TestBlockFiresWaitcntListenerOnWrite16(t *testing.T) {
	b := NewBlock()
	var got types.WaitControl
	var fired bool
	b.SetWaitcntListener(func(w types.WaitControl) {
		fired = true
		got = w
	})

	b.Write16(types.WaitcntOffset, 0b0000_0000_0001_1101)
	if !fired {
		t.Fatal("expected the WAITCNT listener to fire on a write to its offset")
	}
	if got.SRAMWait != 1 {
		t.Errorf("SRAMWait = %d, want 1", got.SRAMWait)
	}
}

func TestBlockDoesNotFireWaitcntListenerForUnrelatedWrites(t *testing.T) {
	b := NewBlock()
	fired := false
	b.SetWaitcntListener(func(types.WaitControl) { fired = true })

	b.Write8(0x000, 0x12)
	if fired {
		t.Error("WAITCNT listener fired for an unrelated register write")
	}
}

func TestBlockFiresWaitcntListenerOnEitherByte(t *testing.T) {
	b := NewBlock()
	count := 0
	b.SetWaitcntListener(func(types.WaitControl) { count++ })

	b.Write8(types.WaitcntOffset, 0x01)
	b.Write8(types.WaitcntOffset+1, 0x00)
	if count != 2 {
		t.Errorf("listener fired %d times, want 2 (one per byte write)", count)
	}
}
