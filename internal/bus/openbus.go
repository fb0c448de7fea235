package bus

import "github.com/thelolagemann/goadvance/internal/types"

// CPUState distinguishes the ARM and THUMB instruction sets, which drive
// different open-bus reconstruction rules.
type CPUState uint8

const (
	StateARM CPUState = iota
	StateTHUMB
)

// PipelineSource exposes the CPU's fetch pipeline for open-bus emulation.
// The bus holds a non-owning back-reference to it, established once after
// both the CPU and bus are constructed (spec.md §9) — the alternative of
// passing a pipeline snapshot into every read was rejected in favor of a
// narrower call signature on the hot path.
type PipelineSource interface {
	PC() uint32
	State() CPUState
	// Prefetched is the most recently fetched opcode: 32 bits in ARM
	// state, or the halfword at pc+4 in THUMB state.
	Prefetched() uint32
	// Decoded is the halfword at pc+2, meaningful only in THUMB state.
	Decoded() uint32
}

// SetPipelineSource installs the CPU's pipeline as the bus's open-bus
// source. Must be called once before any unmapped-page read.
func (b *Bus) SetPipelineSource(p PipelineSource) {
	b.pipeline = p
}

// openBusRead reconstructs a value for an address with no mapped device,
// per spec.md §4.2, then right-shifts it by (addr&3)*8 bits and truncates
// it to the requested width.
func (b *Bus) openBusRead(addr uint32, width types.AccessWidth) uint32 {
	var word uint32
	if b.pipeline == nil {
		word = 0
	} else if b.pipeline.State() == StateARM {
		word = b.pipeline.Prefetched()
	} else {
		word = b.openBusThumb(addr)
	}

	shift := (addr & 3) * 8
	word = word >> shift

	switch width {
	case types.Width8:
		return word & 0xFF
	case types.Width16:
		return word & 0xFFFF
	default:
		return word
	}
}

// openBusThumb implements the page-dependent combination rules for THUMB
// state described in spec.md §4.2.
func (b *Bus) openBusThumb(addr uint32) uint32 {
	pc := b.pipeline.PC()
	prefetched := b.pipeline.Prefetched() & 0xFFFF
	decoded := b.pipeline.Decoded() & 0xFFFF
	aligned := pc&3 == 0

	switch types.PageOf(pc) {
	case types.PageEWRAM, types.PagePALRAM, types.PageVRAM,
		types.PageGamepakWS0L, types.PageGamepakWS0H,
		types.PageGamepakWS1L, types.PageGamepakWS1H,
		types.PageGamepakWS2L, types.PageGamepakWS2H:
		return prefetched<<16 | prefetched

	case types.PageBIOS, types.PageOAM:
		if aligned {
			hi := uint32(b.Read16(pc+6)) & 0xFFFF
			return hi<<16 | prefetched
		}
		return prefetched<<16 | decoded

	case types.PageIWRAM:
		if aligned {
			return decoded<<16 | prefetched
		}
		return prefetched<<16 | decoded

	default:
		return prefetched<<16 | prefetched
	}
}
