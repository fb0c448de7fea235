package bus

import (
	"testing"

	"github.com/thelolagemann/goadvance/internal/types"
)

func TestNewCycleLookupTablesStaticRAMDefaults(t *testing.T) {
	tab := NewCycleLookupTables()
	if tab.NCycles16[types.PageEWRAM] != 3 || tab.SCycles16[types.PageEWRAM] != 3 {
		t.Errorf("EWRAM 16-bit = (%d,%d), want (3,3)", tab.NCycles16[types.PageEWRAM], tab.SCycles16[types.PageEWRAM])
	}
	if tab.NCycles32[types.PageEWRAM] != 6 || tab.SCycles32[types.PageEWRAM] != 6 {
		t.Errorf("EWRAM 32-bit = (%d,%d), want (6,6)", tab.NCycles32[types.PageEWRAM], tab.SCycles32[types.PageEWRAM])
	}
	if tab.NCycles16[types.PageVRAM] != 1 || tab.NCycles32[types.PageVRAM] != 2 {
		t.Errorf("VRAM = (%d,%d), want (1,2)", tab.NCycles16[types.PageVRAM], tab.NCycles32[types.PageVRAM])
	}
	if tab.NCycles16[types.PageBIOS] != 1 {
		t.Errorf("BIOS N16 = %d, want 1", tab.NCycles16[types.PageBIOS])
	}
}

func TestUpdateGamepakWaitstatesWS0Default(t *testing.T) {
	tab := NewCycleLookupTables()
	// WAITCNT == 0 leaves WS0First=0 (4 cycles), WS0Second=0 (2 cycles).
	if got := tab.NCycles16[types.PageGamepakWS0L]; got != waitStateN[0]+1 {
		t.Errorf("WS0L N16 = %d, want %d", got, waitStateN[0]+1)
	}
	if got := tab.SCycles16[types.PageGamepakWS0L]; got != waitStateS0[0]+1 {
		t.Errorf("WS0L S16 = %d, want %d", got, waitStateS0[0]+1)
	}
}

func TestUpdateGamepakWaitstatesReprogram(t *testing.T) {
	tab := NewCycleLookupTables()
	// first=3 (8 cycles), second=1 (1 cycle) for WS0.
	w := types.ParseWaitControl(0b0000_0000_0001_1100)
	tab.UpdateGamepakWaitstates(w)

	wantN16 := waitStateN[3] + 1
	wantS16 := waitStateS0[1] + 1
	if got := tab.NCycles16[types.PageGamepakWS0L]; got != wantN16 {
		t.Errorf("WS0L N16 = %d, want %d", got, wantN16)
	}
	if got := tab.SCycles16[types.PageGamepakWS0L]; got != wantS16 {
		t.Errorf("WS0L S16 = %d, want %d", got, wantS16)
	}
	wantN32 := wantN16 + wantS16
	wantS32 := 2 * wantS16
	if got := tab.NCycles32[types.PageGamepakWS0L]; got != wantN32 {
		t.Errorf("WS0L N32 = %d, want %d", got, wantN32)
	}
	if got := tab.SCycles32[types.PageGamepakWS0L]; got != wantS32 {
		t.Errorf("WS0L S32 = %d, want %d", got, wantS32)
	}

	// WS0 low/high mirrors must stay identical.
	if tab.NCycles16[types.PageGamepakWS0L] != tab.NCycles16[types.PageGamepakWS0H] {
		t.Error("WS0L and WS0H N16 diverged, want identical mirrors")
	}
}

func TestUpdateGamepakWaitstatesSRAMRow(t *testing.T) {
	tab := NewCycleLookupTables()
	w := types.ParseWaitControl(0b11) // SRAMWait = 3 -> 8 cycle wait
	tab.UpdateGamepakWaitstates(w)

	want := waitStateN[3] + 1
	for _, got := range []uint{
		tab.NCycles16[types.PageSRAMLo], tab.SCycles16[types.PageSRAMLo],
		tab.NCycles32[types.PageSRAMLo], tab.SCycles32[types.PageSRAMLo],
		tab.NCycles16[types.PageSRAMHi],
	} {
		if got != want {
			t.Errorf("SRAM row entry = %d, want uniform %d", got, want)
		}
	}
}

func TestGetCyclesUnmappedPageFlatCost(t *testing.T) {
	tab := NewCycleLookupTables()
	if got := tab.GetCycles(0x1000_0000, types.NonSeq, types.Width32); got != 1 {
		t.Errorf("GetCycles(unmapped) = %d, want 1", got)
	}
}

func TestGetCyclesRoutesByWidthAndAccess(t *testing.T) {
	tab := NewCycleLookupTables()
	tab.NCycles16[types.PageEWRAM] = 3
	tab.SCycles16[types.PageEWRAM] = 3
	tab.NCycles32[types.PageEWRAM] = 6
	tab.SCycles32[types.PageEWRAM] = 6

	addr := uint32(0x0200_0000)
	if got := tab.GetCycles(addr, types.NonSeq, types.Width8); got != 3 {
		t.Errorf("8-bit N = %d, want 3 (shares the 16-bit row)", got)
	}
	if got := tab.GetCycles(addr, types.Seq, types.Width32); got != 6 {
		t.Errorf("32-bit S = %d, want 6", got)
	}
}
