package bus

import "github.com/thelolagemann/goadvance/internal/types"

// waitStateN maps a 2-bit first-access field to its non-sequential wait
// count; waitStateS0/S1/S2 map the 1-bit second-access field to its
// sequential wait count. Every cost below additionally carries the
// mandatory +1 base bus cycle.
var waitStateN = [4]uint{4, 3, 2, 8}
var waitStateS0 = [2]uint{2, 1}
var waitStateS1 = [2]uint{4, 1}
var waitStateS2 = [2]uint{8, 1}

// CycleLookupTables holds the four page-indexed cost tables described in
// spec.md §4.1: one array each for (non-sequential, sequential) x
// (16-bit, 32-bit). They're plain contiguous arrays, not wrapped in any
// lookup abstraction, sized to the 16 logical pages; accesses to page
// indices beyond that range are open-bus and cost a flat 1 cycle,
// returned by GetCycles rather than stored in the arrays.
type CycleLookupTables struct {
	NCycles16 [16]uint
	SCycles16 [16]uint
	NCycles32 [16]uint
	SCycles32 [16]uint
}

// NewCycleLookupTables returns tables initialised to the static RAM
// timings, with the gamepak and SRAM rows computed from a WAITCNT value
// of zero until the first WAITCNT write.
func NewCycleLookupTables() *CycleLookupTables {
	t := &CycleLookupTables{}
	t.init()
	return t
}

func (t *CycleLookupTables) init() {
	for p := 0; p < 16; p++ {
		t.NCycles16[p] = 1
		t.SCycles16[p] = 1
		t.NCycles32[p] = 1
		t.SCycles32[p] = 1
	}

	t.setUniform(types.PageEWRAM, 3, 3, 6, 6)

	t.setUniform(types.PagePALRAM, 1, 1, 2, 2)
	t.setUniform(types.PageVRAM, 1, 1, 2, 2)
	t.setUniform(types.PageOAM, 1, 1, 2, 2)

	t.UpdateGamepakWaitstates(types.ParseWaitControl(0))
}

func (t *CycleLookupTables) setUniform(page types.Page, n16, s16, n32, s32 uint) {
	t.NCycles16[page] = n16
	t.SCycles16[page] = s16
	t.NCycles32[page] = n32
	t.SCycles32[page] = s32
}

// UpdateGamepakWaitstates recomputes the WS0/WS1/WS2 and SRAM rows from a
// freshly-written WAITCNT value, per spec.md §4.1. Both mirrors of each
// waitstate (low/high page) share identical tables.
func (t *CycleLookupTables) UpdateGamepakWaitstates(w types.WaitControl) {
	sram := waitStateN[w.SRAMWait] + 1
	t.setUniform(types.PageSRAMLo, sram, sram, sram, sram)
	t.setUniform(types.PageSRAMHi, sram, sram, sram, sram)

	t.applyWaitstate(types.PageGamepakWS0L, w.WS0First, w.WS0Second, waitStateS0)
	t.applyWaitstate(types.PageGamepakWS0H, w.WS0First, w.WS0Second, waitStateS0)
	t.applyWaitstate(types.PageGamepakWS1L, w.WS1First, w.WS1Second, waitStateS1)
	t.applyWaitstate(types.PageGamepakWS1H, w.WS1First, w.WS1Second, waitStateS1)
	t.applyWaitstate(types.PageGamepakWS2L, w.WS2First, w.WS2Second, waitStateS2)
	t.applyWaitstate(types.PageGamepakWS2H, w.WS2First, w.WS2Second, waitStateS2)
}

func (t *CycleLookupTables) applyWaitstate(page types.Page, first, second uint8, sTable [2]uint) {
	n16 := waitStateN[first] + 1
	s16 := sTable[second] + 1
	t.NCycles16[page] = n16
	t.SCycles16[page] = s16
	// non-sequential 32-bit = 1N + 1S; sequential 32-bit = 2S, per spec.md §4.1.
	t.NCycles32[page] = n16 + s16
	t.SCycles32[page] = 2 * s16
}

// GetCycles returns the cost of a single access of the given type and
// width at addr. Pages beyond the 16 logical regions (or any access that
// otherwise falls outside the tables) cost a flat 1 cycle.
func (t *CycleLookupTables) GetCycles(addr uint32, access types.AccessType, width types.AccessWidth) uint {
	page := types.PageOf(addr)
	if page > 0x0F {
		return 1
	}

	switch width {
	case types.Width32:
		if access == types.Seq {
			return t.SCycles32[page]
		}
		return t.NCycles32[page]
	default: // 8 and 16-bit share the same row
		if access == types.Seq {
			return t.SCycles16[page]
		}
		return t.NCycles16[page]
	}
}
