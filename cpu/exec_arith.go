package cpu

// execEAToReg implements the register/EA arithmetic and logical family
// that can run in either direction: ADD, SUB, AND, OR, EOR, CMP. OpBase
// names which one decode.go matched.
func (c *CPU) execEAToReg(ops Operands) int {
	switch ops.OpBase {
	case OPADD:
		return c.execAddSub(ops, true)
	case OPSUB:
		return c.execAddSub(ops, false)
	case OPAND:
		return c.execLogicalDyadic(ops, func(a, b uint32) uint32 { return a & b })
	case OPOR:
		return c.execLogicalDyadic(ops, func(a, b uint32) uint32 { return a | b })
	case OPEOR:
		return c.execLogicalDyadic(ops, func(a, b uint32) uint32 { return a ^ b })
	case OPCMP:
		ea := c.resolveEA(ops.EA, ops.Size)
		src, ok := ea.read(ops.EA)
		if !ok {
			return 0
		}
		dst := c.d[ops.Reg] & ops.Size.Mask()
		result := dst - src
		c.setFlagsCmp(src, dst, result, ops.Size)
		return c.variant.InstructionBaseCycles("cmp", ops.Size, 4) + c.eaCycles(ops.EA, ops.Size, false)
	}
	return 4
}

func (c *CPU) execAddSub(ops Operands, add bool) int {
	ea := c.resolveEA(ops.EA, ops.Size)
	eaVal, ok := ea.read(ops.EA)
	if !ok {
		return 0
	}

	family := "add.mem"
	if ops.EA.Mode == uint8(ModeData) {
		family = "add.reg"
	}
	if !add {
		family = "sub.mem"
		if ops.EA.Mode == uint8(ModeData) {
			family = "sub.reg"
		}
	}

	if ops.Direction == DirEAToReg {
		dst := c.d[ops.Reg] & ops.Size.Mask()
		var result uint32
		if add {
			result = dst + eaVal
			c.setFlagsAdd(eaVal, dst, result, ops.Size)
		} else {
			result = dst - eaVal
			c.setFlagsSub(eaVal, dst, result, ops.Size)
		}
		mask := ops.Size.Mask()
		c.d[ops.Reg] = (c.d[ops.Reg] &^ mask) | (result & mask)
		return c.variant.InstructionBaseCycles(family, ops.Size, 4) + c.eaCycles(ops.EA, ops.Size, false)
	}

	srcVal := c.d[ops.Reg] & ops.Size.Mask()
	var result uint32
	if add {
		result = eaVal + srcVal
		c.setFlagsAdd(srcVal, eaVal, result, ops.Size)
	} else {
		result = eaVal - srcVal
		c.setFlagsSub(srcVal, eaVal, result, ops.Size)
	}
	ea.write(result)
	return c.variant.InstructionBaseCycles(family, ops.Size, 8) + c.eaCycles(ops.EA, ops.Size, true)
}

func (c *CPU) execLogicalDyadic(ops Operands, op func(a, b uint32) uint32) int {
	ea := c.resolveEA(ops.EA, ops.Size)
	eaVal, ok := ea.read(ops.EA)
	if !ok {
		return 0
	}
	reg := c.d[ops.Reg] & ops.Size.Mask()
	result := op(eaVal, reg) & ops.Size.Mask()

	family := "and.mem"
	if ops.EA.Mode == uint8(ModeData) {
		family = "and.reg"
	}

	if ops.Direction == DirEAToReg {
		mask := ops.Size.Mask()
		c.d[ops.Reg] = (c.d[ops.Reg] &^ mask) | result
		c.setFlagsLogical(result, ops.Size)
		return c.variant.InstructionBaseCycles(family, ops.Size, 4) + c.eaCycles(ops.EA, ops.Size, false)
	}
	ea.write(result)
	c.setFlagsLogical(result, ops.Size)
	return c.variant.InstructionBaseCycles(family, ops.Size, 8) + c.eaCycles(ops.EA, ops.Size, true)
}

// execImmediateToEA implements ANDI/ORI/EORI/ADDI/SUBI/CMPI, plus the
// three to-CCR and three to-SR word forms (disambiguated by OpBase).
func (c *CPU) execImmediateToEA(ops Operands) int {
	switch ops.OpBase {
	case OPANDItoCCR, OPORItoCCR, OPEORItoCCR:
		c.setCCR(applyLogicalOp(ops.OpBase, uint8(c.sr), uint8(ops.Data)))
		return c.variant.InstructionBaseCycles("andi", SizeByte, 20)
	case OPANDItoSR, OPORItoSR, OPEORItoSR:
		if !c.supervisor() {
			c.QueueException(vecPrivilege)
			return c.variant.InstructionBaseCycles("andi", SizeWord, 20)
		}
		c.setSR(applyLogicalOp16(ops.OpBase, c.sr, uint16(ops.Data)))
		return c.variant.InstructionBaseCycles("andi", SizeWord, 20)
	}

	imm := uint32(ops.Data)
	ea := c.resolveEA(ops.EA, ops.Size)
	eaVal, ok := ea.read(ops.EA)
	if !ok {
		return 0
	}

	switch ops.OpBase {
	case OPANDI & 0xFF00:
		result := (eaVal & imm) & ops.Size.Mask()
		ea.write(result)
		c.setFlagsLogical(result, ops.Size)
	case OPORI & 0xFF00:
		result := (eaVal | imm) & ops.Size.Mask()
		ea.write(result)
		c.setFlagsLogical(result, ops.Size)
	case OPEORI & 0xFF00:
		result := (eaVal ^ imm) & ops.Size.Mask()
		ea.write(result)
		c.setFlagsLogical(result, ops.Size)
	case OPADDI & 0xFF00:
		result := eaVal + imm
		ea.write(result)
		c.setFlagsAdd(imm, eaVal, result, ops.Size)
	case OPSUBI & 0xFF00:
		result := eaVal - imm
		ea.write(result)
		c.setFlagsSub(imm, eaVal, result, ops.Size)
	case OPCMPI & 0xFF00:
		result := eaVal - imm
		c.setFlagsCmp(imm, eaVal, result, ops.Size)
	}
	return c.variant.InstructionBaseCycles("addi", ops.Size, 8) + c.eaCycles(ops.EA, ops.Size, true)
}

func applyLogicalOp(base uint16, a, b uint8) uint8 {
	switch base {
	case OPANDItoCCR:
		return a & b
	case OPORItoCCR:
		return a | b
	default:
		return a ^ b
	}
}

func applyLogicalOp16(base uint16, a, b uint16) uint16 {
	switch base {
	case OPANDItoSR:
		return a & b
	case OPORItoSR:
		return a | b
	default:
		return a ^ b
	}
}

// execQuickToEA implements ADDQ/SUBQ: a 3-bit immediate (1-8) folded
// directly into the opcode word, applied straight to the EA.
func (c *CPU) execQuickToEA(ops Operands) int {
	ea := c.resolveEA(ops.EA, ops.Size)
	eaVal, ok := ea.read(ops.EA)
	if !ok {
		return 0
	}
	imm := uint32(ops.Data)

	if ops.EA.Mode == uint8(ModeAddr) {
		// ADDQ/SUBQ to An: always long, never touches flags.
		if ops.OpBase == OPADDQ {
			ea.write(eaVal + imm)
		} else {
			ea.write(eaVal - imm)
		}
		return c.variant.InstructionBaseCycles("addq.reg", SizeLong, 8)
	}

	var result uint32
	if ops.OpBase == OPADDQ {
		result = eaVal + imm
		c.setFlagsAdd(imm, eaVal, result, ops.Size)
	} else {
		result = eaVal - imm
		c.setFlagsSub(imm, eaVal, result, ops.Size)
	}
	ea.write(result)
	family := "addq.mem"
	if ops.EA.Mode == uint8(ModeData) {
		family = "addq.reg"
	}
	return c.variant.InstructionBaseCycles(family, ops.Size, 4) + c.eaCycles(ops.EA, ops.Size, true)
}

// execAddxSubx implements ADDX/SUBX across both of their source forms
// (Dy,Dx and -(Ay),-(Ax)), folding the X flag into the result.
func (c *CPU) execAddxSubx(ops Operands) int {
	var src, dst uint32
	var dstEA, srcEA ea
	if ops.Direction == DirRegToEA {
		srcEA = c.resolveEA(EAField{Mode: uint8(ModeAddrPreDec), Reg: ops.Reg2}, ops.Size)
		dstEA = c.resolveEA(EAField{Mode: uint8(ModeAddrPreDec), Reg: ops.Reg}, ops.Size)
		src, _ = srcEA.read(EAField{})
		dst, _ = dstEA.read(EAField{})
	} else {
		src = c.d[ops.Reg2] & ops.Size.Mask()
		dst = c.d[ops.Reg] & ops.Size.Mask()
	}

	extend := uint32(0)
	if c.sr&SRX != 0 {
		extend = 1
	}

	var result uint32
	if ops.OpBase == OPADDX {
		result = dst + src + extend
		c.setFlagsAdd(src, dst, result, ops.Size)
	} else {
		result = dst - src - extend
		c.setFlagsSub(src, dst, result, ops.Size)
	}
	if result&ops.Size.Mask() != 0 {
		c.sr &^= SRZ
	}

	if ops.Direction == DirRegToEA {
		dstEA.write(result)
	} else {
		mask := ops.Size.Mask()
		c.d[ops.Reg] = (c.d[ops.Reg] &^ mask) | (result & mask)
	}
	family := "addx.reg"
	switch {
	case ops.OpBase == OPADDX && ops.Direction == DirRegToEA:
		family = "addx.mem"
	case ops.OpBase == OPSUBX && ops.Direction == DirEAToReg:
		family = "subx.reg"
	case ops.OpBase == OPSUBX && ops.Direction == DirRegToEA:
		family = "subx.mem"
	}
	return c.variant.InstructionBaseCycles(family, ops.Size, 4)
}

func (c *CPU) execCmpm(ops Operands) int {
	srcEA := c.resolveEA(EAField{Mode: uint8(ModeAddrPostInc), Reg: ops.Reg2}, ops.Size)
	dstEA := c.resolveEA(EAField{Mode: uint8(ModeAddrPostInc), Reg: ops.Reg}, ops.Size)
	src, _ := srcEA.read(EAField{})
	dst, _ := dstEA.read(EAField{})
	result := dst - src
	c.setFlagsCmp(src, dst, result, ops.Size)
	return c.variant.InstructionBaseCycles("cmpm", ops.Size, 12)
}

// execMulDiv implements MULS/MULU/DIVS/DIVU. Division by zero queues a
// trap instead of writing a result; the scheduler services it at the
// next instruction boundary like any other pending exception.
func (c *CPU) execMulDiv(ops Operands) int {
	ea := c.resolveEA(ops.EA, SizeWord)
	src, ok := ea.read(ops.EA)
	if !ok {
		return 0
	}

	switch ops.OpBase {
	case OPMULU:
		result := (c.d[ops.Reg] & 0xFFFF) * (src & 0xFFFF)
		c.d[ops.Reg] = result
		c.setFlagsLogical(result, SizeLong)
		return c.variant.InstructionBaseCycles("mulu", SizeWord, 70)
	case OPMULS:
		result := uint32(int32(int16(c.d[ops.Reg])) * int32(int16(src)))
		c.d[ops.Reg] = result
		c.setFlagsLogical(result, SizeLong)
		return c.variant.InstructionBaseCycles("muls", SizeWord, 70)
	case OPDIVU:
		if uint16(src) == 0 {
			c.QueueException(vecZeroDivide)
			return c.variant.InstructionBaseCycles("divu", SizeWord, 140)
		}
		dividend := c.d[ops.Reg]
		divisor := uint32(uint16(src))
		if dividend/divisor > 0xFFFF {
			c.sr |= SRV
			return c.variant.InstructionBaseCycles("divu", SizeWord, 140)
		}
		q := dividend / divisor
		r := dividend % divisor
		c.d[ops.Reg] = (r << 16) | (q & 0xFFFF)
		c.setFlagsLogical(q, SizeWord)
		return c.variant.InstructionBaseCycles("divu", SizeWord, 140)
	default: // OPDIVS
		if int16(src) == 0 {
			c.QueueException(vecZeroDivide)
			return c.variant.InstructionBaseCycles("divs", SizeWord, 158)
		}
		dividend := int32(c.d[ops.Reg])
		divisor := int32(int16(src))
		q := dividend / divisor
		r := dividend % divisor
		if q > 32767 || q < -32768 {
			c.sr |= SRV
			return c.variant.InstructionBaseCycles("divs", SizeWord, 158)
		}
		c.d[ops.Reg] = (uint32(uint16(r)) << 16) | uint32(uint16(q))
		c.setFlagsLogical(uint32(uint16(q)), SizeWord)
		return c.variant.InstructionBaseCycles("divs", SizeWord, 158)
	}
}

// execChk traps if Dn is negative or greater than the EA source, per the
// CHK bounds-check instruction.
func (c *CPU) execChk(ops Operands) int {
	ea := c.resolveEA(ops.EA, SizeWord)
	bound, ok := ea.read(ops.EA)
	if !ok {
		return 0
	}
	v := int16(c.d[ops.Reg])
	if v < 0 {
		c.sr |= SRN
		c.QueueException(vecCHKInstr)
	} else if v > int16(bound) {
		c.sr &^= SRN
		c.QueueException(vecCHKInstr)
	}
	return c.variant.InstructionBaseCycles("chk", SizeWord, 10) + c.eaCycles(ops.EA, SizeWord, false)
}
