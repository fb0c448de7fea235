// Package cpu implements the small ARM7TDMI pipeline subset spec.md §4.5
// needs to exercise the bus: program counter and instruction-set state
// tracking, the two-deep prefetch queue the bus consults for open-bus
// reconstruction, and cycle-accounting for branches, data-processing and
// single-data-transfer instructions. Full ARM/THUMB decode and execution
// are out of scope.
package cpu

import (
	"github.com/thelolagemann/goadvance/internal/bus"
	"github.com/thelolagemann/goadvance/internal/types"
)

// MemoryBus is the subset of the system bus the CPU drives.
type MemoryBus interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, value uint8)
	Write16(addr uint32, value uint16)
	Write32(addr uint32, value uint32)
	GetCycles(addr uint32, access types.AccessType, width types.AccessWidth) uint
}

// PipelineAction tells the driving loop what to do after an instruction
// executes: IncPC means advance normally and keep the prefetch queue
// sliding; Flush means the instruction retargeted the PC, so the queue
// must be refilled from the new address before the next decode.
type PipelineAction uint8

const (
	IncPC PipelineAction = iota
	Flush
)

// CPU tracks just enough ARM7TDMI state to drive bus traffic and expose
// open-bus reconstruction data: the 16 general registers (R15 doubling as
// the program counter), the THUMB state bit, the two-deep fetch queue,
// and an accumulated cycle counter.
type CPU struct {
	r     [16]uint32
	thumb bool

	decoded    uint32
	prefetched uint32

	cycles uint64

	bus MemoryBus
}

// New returns a CPU whose PC starts at startPC, pre-filling the pipeline
// as if it had just been flushed to that address.
func New(bus MemoryBus, thumb bool, startPC uint32) *CPU {
	c := &CPU{bus: bus, thumb: thumb}
	c.r[15] = startPC
	c.refillPipeline()
	return c
}

// PC implements bus.PipelineSource.
func (c *CPU) PC() uint32 { return c.r[15] }

// State implements bus.PipelineSource.
func (c *CPU) State() bus.CPUState {
	if c.thumb {
		return bus.StateTHUMB
	}
	return bus.StateARM
}

// Prefetched implements bus.PipelineSource.
func (c *CPU) Prefetched() uint32 { return c.prefetched }

// Decoded implements bus.PipelineSource.
func (c *CPU) Decoded() uint32 { return c.decoded }

// Cycles returns the running cycle count.
func (c *CPU) Cycles() uint64 { return c.cycles }

// SetThumb switches instruction-set state; callers are responsible for
// flushing the pipeline afterward (e.g. via BX's Flush action).
func (c *CPU) SetThumb(thumb bool) { c.thumb = thumb }

func (c *CPU) instrSize() uint32 {
	if c.thumb {
		return 2
	}
	return 4
}

func (c *CPU) width() types.AccessWidth {
	if c.thumb {
		return types.Width16
	}
	return types.Width32
}

// refillPipeline reloads the fetch queue from the current PC, as if a
// pipeline flush had just occurred.
func (c *CPU) refillPipeline() {
	pc := c.r[15]
	if c.thumb {
		c.decoded = uint32(c.bus.Read16(pc + 2))
		c.prefetched = uint32(c.bus.Read16(pc + 4))
	} else {
		c.prefetched = c.bus.Read32(pc + 4)
	}
}

// Advance applies an IncPC action: steps the PC by one instruction width
// and slides the fetch queue forward by one slot.
func (c *CPU) Advance() {
	c.r[15] += c.instrSize()
	if c.thumb {
		c.decoded = c.prefetched
		c.prefetched = uint32(c.bus.Read16(c.r[15] + 4))
	} else {
		c.prefetched = c.bus.Read32(c.r[15] + 4)
	}
}

// Flush sets the PC to target and refills the pipeline from there, as
// branches, BX and PC-writing data-processing/load instructions require.
func (c *CPU) Flush(target uint32) {
	c.r[15] = target
	c.refillPipeline()
}

func (c *CPU) addCycle() {
	c.cycles++
}

func (c *CPU) addCycles(addr uint32, access types.AccessType, width types.AccessWidth) {
	c.cycles += uint64(c.bus.GetCycles(addr, access, width))
}
