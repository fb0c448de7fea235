package cpu

import "github.com/thelolagemann/goadvance/internal/types"

// ExecuteBranch charges the cycle cost of B/BL/BX: +1N on the old PC for
// the instruction that just ran, then +2S as the pipeline refills from
// the new target, per spec.md §4.5. It flushes the pipeline to target and
// always returns Flush.
func (c *CPU) ExecuteBranch(target uint32) PipelineAction {
	oldPC := c.r[15]
	c.addCycles(oldPC, types.NonSeq, c.width())

	c.Flush(target)

	c.addCycles(c.r[15], types.Seq, c.width())
	c.addCycles(c.r[15]+c.instrSize(), types.Seq, c.width())
	return Flush
}

// ExecuteDataProcessing charges a data-processing instruction: the base
// +1S opcode fetch, an extra +1I when the second operand is
// register-shifted, and, when the destination register is PC, the
// +1N+1S pipeline-flush penalty.
func (c *CPU) ExecuteDataProcessing(regShiftedOperand, destIsPC bool, target uint32) PipelineAction {
	c.addCycles(c.r[15], types.Seq, c.width())
	if regShiftedOperand {
		c.addCycle()
	}
	if !destIsPC {
		return IncPC
	}

	c.addCycles(c.r[15], types.NonSeq, c.width())
	c.Flush(target)
	c.addCycles(c.r[15], types.Seq, c.width())
	return Flush
}

// ExecuteLoad charges a single-data-transfer load: +1N for the memory
// access, +1S for the subsequent opcode fetch, +1I, and, when the
// destination is PC, an additional +1S+1N for the pipeline refill.
func (c *CPU) ExecuteLoad(addr uint32, width types.AccessWidth, destIsPC bool, target uint32) PipelineAction {
	c.addCycles(addr, types.NonSeq, width)
	c.addCycles(c.r[15], types.Seq, c.width())
	c.addCycle()

	if !destIsPC {
		return IncPC
	}

	c.addCycles(c.r[15], types.Seq, c.width())
	c.addCycles(c.r[15], types.NonSeq, c.width())
	c.Flush(target)
	return Flush
}

// ExecuteStore charges a single-data-transfer store: a flat +2N, per
// spec.md §4.5 (the write itself plus the non-sequential opcode re-fetch
// it forces).
func (c *CPU) ExecuteStore(addr uint32, width types.AccessWidth) PipelineAction {
	c.addCycles(addr, types.NonSeq, width)
	c.addCycles(c.r[15], types.NonSeq, c.width())
	return IncPC
}
