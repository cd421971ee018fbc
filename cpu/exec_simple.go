package cpu

// execSimple implements the no-operand control instructions: NOP, RTS,
// RTE, RTR, TRAPV, ILLEGAL and RESET.
func (c *CPU) execSimple(ops Operands) int {
	switch ops.OpBase {
	case OPNOP:
		return c.variant.InstructionBaseCycles("nop", SizeWord, 4)

	case OPRTS:
		pc, ok := c.popLong()
		if !ok {
			return 0
		}
		c.pc = pc
		return c.variant.InstructionBaseCycles("rts", SizeWord, 16)

	case OPRTE:
		if !c.supervisor() {
			c.QueueException(vecPrivilege)
			return c.variant.InstructionBaseCycles("rte", SizeWord, 20)
		}
		sr, ok := c.popWord()
		if !ok {
			return 0
		}
		pc, ok := c.popLong()
		if !ok {
			return 0
		}
		c.setSR(sr)
		c.pc = pc
		return c.variant.InstructionBaseCycles("rte", SizeWord, 20)

	case OPRTR:
		ccr, ok := c.popWord()
		if !ok {
			return 0
		}
		pc, ok := c.popLong()
		if !ok {
			return 0
		}
		c.setCCR(uint8(ccr))
		c.pc = pc
		return c.variant.InstructionBaseCycles("rtr", SizeWord, 20)

	case OPTRAPV:
		if c.sr&SRV != 0 {
			c.QueueException(vecTrapVInstr)
		}
		return c.variant.InstructionBaseCycles("trapv", SizeWord, 4)

	case OPILLEGAL:
		c.QueueException(vecIllegalInstr)
		return c.variant.InstructionBaseCycles("illegal", SizeWord, 4)

	default: // OPRESET
		if !c.supervisor() {
			c.QueueException(vecPrivilege)
			return c.variant.InstructionBaseCycles("reset", SizeWord, 132)
		}
		c.bus.ResetInstruction()
		return c.variant.InstructionBaseCycles("reset", SizeWord, 132)
	}
}

// execStop implements STOP: it loads SR from the immediate operand and
// parks the core until an interrupt or reset wakes it, exactly like a
// real 68000 waiting out its bus cycle with /HALT asserted.
func (c *CPU) execStop(ops Operands) int {
	if !c.supervisor() {
		c.QueueException(vecPrivilege)
		return c.variant.InstructionBaseCycles("stop", SizeWord, 4)
	}
	c.setSR(uint16(ops.Data))
	c.stopped = true
	return c.variant.InstructionBaseCycles("stop", SizeWord, 4)
}
