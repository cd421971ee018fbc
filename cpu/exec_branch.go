package cpu

// execBranch implements BRA, BSR and Bcc. Condition 0 is always-true
// (BRA) and 1 is always-false at the CCR level, but decode.go passes the
// condition through unchanged and this function treats 1 as BSR rather
// than a branch that's never taken.
func (c *CPU) execBranch(ops Operands) int {
	target := c.curPC + 2 + uint32(ops.Data)

	if ops.Condition == 1 {
		c.pushLong(c.pc)
		c.pc = target
		return c.variant.InstructionBaseCycles("bsr", SizeWord, 18)
	}
	if ops.Condition == 0 || c.testCondition(ops.Condition) {
		c.pc = target
		return c.variant.InstructionBaseCycles("bcc.taken", SizeWord, 10)
	}
	return c.variant.InstructionBaseCycles("bcc.not", SizeWord, 8)
}

// execDBcc implements DBcc: false condition decrements the loop counter
// and branches while it hasn't wrapped from 0 to -1; a true condition
// (or a counter that just expired) falls through.
func (c *CPU) execDBcc(ops Operands) int {
	if c.testCondition(ops.Condition) {
		return c.variant.InstructionBaseCycles("dbcc", SizeWord, 10)
	}

	count := int16(uint16(c.d[ops.Reg]))
	count--
	c.d[ops.Reg] = (c.d[ops.Reg] &^ 0xFFFF) | uint32(uint16(count))

	if count != -1 {
		c.pc = c.curPC + 2 + uint32(ops.Data)
		return c.variant.InstructionBaseCycles("dbcc", SizeWord, 10)
	}
	return c.variant.InstructionBaseCycles("dbcc", SizeWord, 14)
}

// execJump implements JMP and JSR; JSR additionally pushes the address
// of the following instruction.
func (c *CPU) execJump(ops Operands) int {
	ea := c.resolveEA(ops.EA, SizeLong)
	target := ea.addr

	if ops.OpBase == OPJSR {
		c.pushLong(c.pc)
		c.pc = target
		return c.variant.InstructionBaseCycles("jsr", SizeLong, 16) + c.eaCycles(ops.EA, SizeLong, false)
	}
	c.pc = target
	return c.variant.InstructionBaseCycles("jmp", SizeLong, 8) + c.eaCycles(ops.EA, SizeLong, false)
}

// execTrap implements TRAP #n, queuing the corresponding vector in the
// 32-47 software trap range for the scheduler to service.
func (c *CPU) execTrap(ops Operands) int {
	c.QueueException(vecTrap0 + uint8(ops.Data))
	return c.variant.InstructionBaseCycles("trap", SizeWord, 34)
}
