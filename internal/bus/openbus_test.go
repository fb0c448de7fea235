package bus

import (
	"testing"

	"github.com/thelolagemann/goadvance/internal/types"
)

type fakePipeline struct {
	pc         uint32
	state      CPUState
	prefetched uint32
	decoded    uint32
}

func (f fakePipeline) PC() uint32          { return f.pc }
func (f fakePipeline) State() CPUState     { return f.state }
func (f fakePipeline) Prefetched() uint32  { return f.prefetched }
func (f fakePipeline) Decoded() uint32     { return f.decoded }

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	return &Bus{
		cycles: NewCycleLookupTables(),
	}
}

func TestOpenBusARMUsesPrefetched(t *testing.T) {
	b := newTestBus(t)
	b.SetPipelineSource(fakePipeline{state: StateARM, prefetched: 0xDEADBEEF})
	if got := b.openBusRead(0x1000_0000, types.Width32); got != 0xDEADBEEF {
		t.Errorf("openBusRead = %#08x, want 0xDEADBEEF", got)
	}
}

func TestOpenBusARMShiftsByAlignment(t *testing.T) {
	b := newTestBus(t)
	b.SetPipelineSource(fakePipeline{state: StateARM, prefetched: 0x11223344})
	if got := b.openBusRead(0x1000_0002, types.Width16); got != 0x1122 {
		t.Errorf("openBusRead(+2, 16-bit) = %#04x, want 0x1122", got)
	}
}

func TestOpenBusThumbEWRAMCombinesPrefetchTwice(t *testing.T) {
	b := newTestBus(t)
	b.SetPipelineSource(fakePipeline{pc: 0x0200_0010, state: StateTHUMB, prefetched: 0xABCD})
	got := b.openBusRead(0x1000_0000, types.Width32)
	want := uint32(0xABCD)<<16 | 0xABCD
	if got != want {
		t.Errorf("THUMB EWRAM open bus = %#08x, want %#08x", got, want)
	}
}

func TestOpenBusThumbIWRAMAligned(t *testing.T) {
	b := newTestBus(t)
	b.SetPipelineSource(fakePipeline{pc: 0x0300_0000, state: StateTHUMB, prefetched: 0x1111, decoded: 0x2222})
	got := b.openBusRead(0x1000_0000, types.Width32)
	want := uint32(0x2222)<<16 | 0x1111
	if got != want {
		t.Errorf("THUMB IWRAM aligned open bus = %#08x, want %#08x", got, want)
	}
}

func TestOpenBusThumbIWRAMUnaligned(t *testing.T) {
	b := newTestBus(t)
	b.SetPipelineSource(fakePipeline{pc: 0x0300_0002, state: StateTHUMB, prefetched: 0x1111, decoded: 0x2222})
	got := b.openBusRead(0x1000_0000, types.Width32)
	want := uint32(0x1111)<<16 | 0x2222
	if got != want {
		t.Errorf("THUMB IWRAM unaligned open bus = %#08x, want %#08x", got, want)
	}
}

func TestOpenBusNoPipelineSourceZero(t *testing.T) {
	b := newTestBus(t)
	if got := b.openBusRead(0x1000_0000, types.Width32); got != 0 {
		t.Errorf("openBusRead with no pipeline = %#08x, want 0", got)
	}
}
