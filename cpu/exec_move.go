package cpu

import "math/bits"

// execMove implements MOVE <ea>,<ea>: the only instruction whose decoded
// form carries two independent effective addresses.
func (c *CPU) execMove(ops Operands) int {
	src := c.resolveEA(ops.EA, ops.Size)
	v, ok := src.read(ops.EA)
	if !ok {
		return 0
	}
	c.setFlagsLogical(v, ops.Size)

	dst := c.resolveEA(ops.EA2, ops.Size)
	dst.write(v)

	base := c.variant.InstructionBaseCycles("move.mem", ops.Size, 8)
	if ops.EA2.Mode == uint8(ModeData) {
		base = c.variant.InstructionBaseCycles("move.reg", ops.Size, 4)
	}
	return base + c.eaCycles(ops.EA, ops.Size, false) + c.eaCycles(ops.EA2, ops.Size, true)
}

// execMovea implements MOVEA: like MOVE but the destination is always an
// address register, sign-extended from word size, and flags are never
// touched.
func (c *CPU) execMovea(ops Operands) int {
	src := c.resolveEA(ops.EA, ops.Size)
	v, ok := src.read(ops.EA)
	if !ok {
		return 0
	}
	if ops.Size == SizeWord {
		v = uint32(int32(int16(v)))
	}
	c.a[ops.Reg] = v
	return c.variant.InstructionBaseCycles("movea", ops.Size, 4) + c.eaCycles(ops.EA, ops.Size, false)
}

func (c *CPU) execMoveq(ops Operands) int {
	v := uint32(ops.Data)
	c.d[ops.Reg] = v
	c.setFlagsLogical(v, SizeLong)
	return c.variant.InstructionBaseCycles("moveq", SizeLong, 4)
}

// execMovem implements MOVEM. The register list's bit order runs low-to-
// high for every mode except predecrement, where it runs high-to-low, so
// the registers end up in ascending order in memory either way.
func (c *CPU) execMovem(ops Operands) int {
	regCount := bits.OnesCount16(ops.RegList)
	step := int32(ops.Size.Bytes())

	if ops.EA.Mode == uint8(ModeAddrPreDec) {
		// -(An)'s register list runs bit0=A7,bit1=A6,...,bit7=A0,bit8=D7,
		// ...,bit15=D0 — the reverse of every other mode's D0..D7,A0..A7 —
		// so that registers still land in ascending order as the address
		// counts down.
		addr := c.a[ops.EA.Reg]
		mask := ops.RegList
		for reg := 7; reg >= 0; reg-- {
			if mask&1 != 0 {
				addr -= uint32(step)
				writeOperandAt(c, addr, c.a[reg], ops.Size)
			}
			mask >>= 1
		}
		for reg := 7; reg >= 0; reg-- {
			if mask&1 != 0 {
				addr -= uint32(step)
				writeOperandAt(c, addr, c.d[reg], ops.Size)
			}
			mask >>= 1
		}
		c.a[ops.EA.Reg] = addr
		return c.variant.InstructionBaseCycles("movem.mem", ops.Size, 8) + regCount*movemPerReg(ops.Size)
	}

	if ops.Direction == DirEAToReg {
		ea := c.resolveEA(ops.EA, ops.Size)
		addr := ea.addr
		if ea.regDirect {
			addr = 0
		}
		for bit := uint(0); bit < 16; bit++ {
			if ops.RegList&(1<<bit) == 0 {
				continue
			}
			v, ok := readOperandAt(c, addr, ops.Size)
			if !ok {
				return 0
			}
			if bit < 8 {
				c.d[bit] = v
			} else {
				c.a[bit-8] = v
			}
			addr += uint32(step)
		}
		if ops.EA.Mode == uint8(ModeAddrPostInc) {
			c.a[ops.EA.Reg] = addr
		}
		return c.variant.InstructionBaseCycles("movem.reg", ops.Size, 8) + regCount*movemPerReg(ops.Size)
	}

	ea := c.resolveEA(ops.EA, ops.Size)
	addr := ea.addr
	for bit := uint(0); bit < 16; bit++ {
		if ops.RegList&(1<<bit) == 0 {
			continue
		}
		var v uint32
		if bit < 8 {
			v = c.d[bit]
		} else {
			v = c.a[bit-8]
		}
		writeOperandAt(c, addr, v, ops.Size)
		addr += uint32(step)
	}
	return c.variant.InstructionBaseCycles("movem.mem", ops.Size, 8) + regCount*movemPerReg(ops.Size)
}

func movemPerReg(sz Size) int {
	if sz == SizeLong {
		return 8
	}
	return 4
}

func readOperandAt(c *CPU, addr uint32, sz Size) (uint32, bool) {
	if sz == SizeLong {
		return c.readBusLong(addr)
	}
	v, ok := c.readBusWord(addr)
	return uint32(int32(int16(v))), ok
}

func writeOperandAt(c *CPU, addr uint32, v uint32, sz Size) {
	if sz == SizeLong {
		c.writeBusLong(addr, v)
		return
	}
	c.writeBusWord(addr, uint16(v))
}

// execMovep implements MOVEP: alternating bytes of a data register
// transferred to/from memory at d16(An), high byte first.
func (c *CPU) execMovep(ops Operands) int {
	addr := c.a[ops.EA.Reg] + ops.EA.Extra
	if ops.Direction == DirRegToEA {
		v := c.d[ops.Reg]
		if ops.Size == SizeLong {
			c.writeBusByte(addr, uint8(v>>24))
			c.writeBusByte(addr+2, uint8(v>>16))
			c.writeBusByte(addr+4, uint8(v>>8))
			c.writeBusByte(addr+6, uint8(v))
		} else {
			c.writeBusByte(addr, uint8(v>>8))
			c.writeBusByte(addr+2, uint8(v))
		}
	} else {
		if ops.Size == SizeLong {
			b0, _ := c.readBusByte(addr)
			b1, _ := c.readBusByte(addr + 2)
			b2, _ := c.readBusByte(addr + 4)
			b3, _ := c.readBusByte(addr + 6)
			c.d[ops.Reg] = uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)
		} else {
			b0, _ := c.readBusByte(addr)
			b1, _ := c.readBusByte(addr + 2)
			c.d[ops.Reg] = (c.d[ops.Reg] &^ 0xFFFF) | uint32(b0)<<8 | uint32(b1)
		}
	}
	return c.variant.InstructionBaseCycles("movep", ops.Size, 16)
}

func (c *CPU) execLea(ops Operands) int {
	ea := c.resolveEA(ops.EA, SizeLong)
	c.a[ops.Reg] = ea.addr
	return c.variant.InstructionBaseCycles("lea", SizeLong, 4) + c.eaCycles(ops.EA, SizeLong, false)
}

func (c *CPU) execPea(ops Operands) int {
	ea := c.resolveEA(ops.EA, SizeLong)
	c.pushLong(ea.addr)
	return c.variant.InstructionBaseCycles("pea", SizeLong, 12) + c.eaCycles(ops.EA, SizeLong, false)
}

func (c *CPU) execLink(ops Operands) int {
	c.pushLong(c.a[ops.Reg])
	c.a[ops.Reg] = c.a[7]
	c.a[7] += uint32(ops.Data)
	return c.variant.InstructionBaseCycles("link", SizeLong, 16)
}

func (c *CPU) execUnlk(ops Operands) int {
	c.a[7] = c.a[ops.Reg]
	v, _ := c.popLong()
	c.a[ops.Reg] = v
	return c.variant.InstructionBaseCycles("unlk", SizeLong, 12)
}

func (c *CPU) execExg(ops Operands) int {
	switch ops.OpBase {
	case 0:
		c.d[ops.Reg], c.d[ops.Reg2] = c.d[ops.Reg2], c.d[ops.Reg]
	case 1:
		c.a[ops.Reg], c.a[ops.Reg2] = c.a[ops.Reg2], c.a[ops.Reg]
	default:
		c.d[ops.Reg], c.a[ops.Reg2] = c.a[ops.Reg2], c.d[ops.Reg]
	}
	return c.variant.InstructionBaseCycles("exg", SizeLong, 6)
}

func (c *CPU) execExt(ops Operands) int {
	if ops.Size == SizeWord {
		v := int16(int8(c.d[ops.Reg]))
		c.d[ops.Reg] = (c.d[ops.Reg] &^ 0xFFFF) | uint32(uint16(v))
		c.setFlagsLogical(uint32(uint16(v)), SizeWord)
	} else {
		v := int32(int16(c.d[ops.Reg]))
		c.d[ops.Reg] = uint32(v)
		c.setFlagsLogical(uint32(v), SizeLong)
	}
	return c.variant.InstructionBaseCycles("ext", ops.Size, 4)
}

func (c *CPU) execSwap(ops Operands) int {
	v := c.d[ops.Reg]
	c.d[ops.Reg] = v<<16 | v>>16
	c.setFlagsLogical(c.d[ops.Reg], SizeLong)
	return c.variant.InstructionBaseCycles("swap", SizeLong, 4)
}

func (c *CPU) execMoveToFromSR(ops Operands) int {
	switch ops.OpBase {
	case OPMOVEFromSR:
		ea := c.resolveEA(ops.EA, SizeWord)
		v := uint32(c.sr)
		if c.variant.SRReadWidth() == SizeByte {
			v &= 0xFF00 | uint32(ccrFlags)
		}
		ea.write(v)
		return c.variant.InstructionBaseCycles("move.sr", SizeWord, 4) + c.eaCycles(ops.EA, SizeWord, true)
	case OPMOVEToSR:
		if !c.supervisor() {
			c.QueueException(vecPrivilege)
			return c.variant.InstructionBaseCycles("move.sr", SizeWord, 4)
		}
		ea := c.resolveEA(ops.EA, SizeWord)
		v, ok := ea.read(ops.EA)
		if !ok {
			return 0
		}
		c.setSR(uint16(v))
		return c.variant.InstructionBaseCycles("move.sr", SizeWord, 4) + c.eaCycles(ops.EA, SizeWord, false)
	case OPMOVEToCCR:
		ea := c.resolveEA(ops.EA, SizeWord)
		v, ok := ea.read(ops.EA)
		if !ok {
			return 0
		}
		c.setCCR(uint8(v))
		return c.variant.InstructionBaseCycles("move.ccr", SizeWord, 4) + c.eaCycles(ops.EA, SizeWord, false)
	case OPMOVEFromUSP:
		if !c.supervisor() {
			c.QueueException(vecPrivilege)
			return c.variant.InstructionBaseCycles("move.usp", SizeLong, 4)
		}
		c.a[ops.Reg] = c.usp
		return c.variant.InstructionBaseCycles("move.usp", SizeLong, 4)
	default: // OPMOVEToUSP
		if !c.supervisor() {
			c.QueueException(vecPrivilege)
			return c.variant.InstructionBaseCycles("move.usp", SizeLong, 4)
		}
		c.usp = c.a[ops.Reg]
		return c.variant.InstructionBaseCycles("move.usp", SizeLong, 4)
	}
}
