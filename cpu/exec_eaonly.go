package cpu

// execEAOnly implements every instruction that reads, transforms and
// writes back a single effective address: CLR, NOT, NEG, NEGX, TST, NBCD,
// TAS and Scc. OpBase names which one decode.go matched.
func (c *CPU) execEAOnly(ops Operands) int {
	switch ops.OpBase {
	case OPCLR:
		ea := c.resolveEA(ops.EA, ops.Size)
		ea.read(ops.EA) // CLR still performs the read cycle on real hardware
		ea.write(0)
		c.sr &^= SRN | SRV | SRC
		c.sr |= SRZ
		return c.variant.InstructionBaseCycles("clr", ops.Size, 4) + c.eaCycles(ops.EA, ops.Size, true)

	case OPNOT:
		ea := c.resolveEA(ops.EA, ops.Size)
		v, ok := ea.read(ops.EA)
		if !ok {
			return 0
		}
		result := ^v & ops.Size.Mask()
		ea.write(result)
		c.setFlagsLogical(result, ops.Size)
		return c.variant.InstructionBaseCycles("not", ops.Size, 4) + c.eaCycles(ops.EA, ops.Size, true)

	case OPNEG:
		ea := c.resolveEA(ops.EA, ops.Size)
		v, ok := ea.read(ops.EA)
		if !ok {
			return 0
		}
		result := uint32(0) - v
		ea.write(result)
		c.setFlagsSub(v, 0, result, ops.Size)
		return c.variant.InstructionBaseCycles("neg", ops.Size, 4) + c.eaCycles(ops.EA, ops.Size, true)

	case OPNEGX:
		ea := c.resolveEA(ops.EA, ops.Size)
		v, ok := ea.read(ops.EA)
		if !ok {
			return 0
		}
		extend := uint32(0)
		if c.sr&SRX != 0 {
			extend = 1
		}
		result := uint32(0) - v - extend
		ea.write(result)
		c.setFlagsSub(v, 0, result, ops.Size)
		if result&ops.Size.Mask() != 0 {
			c.sr &^= SRZ
		}
		return c.variant.InstructionBaseCycles("negx", ops.Size, 4) + c.eaCycles(ops.EA, ops.Size, true)

	case OPTST:
		ea := c.resolveEA(ops.EA, ops.Size)
		v, ok := ea.read(ops.EA)
		if !ok {
			return 0
		}
		c.setFlagsLogical(v, ops.Size)
		return c.variant.InstructionBaseCycles("tst", ops.Size, 4) + c.eaCycles(ops.EA, ops.Size, false)

	case OPNBCD:
		ea := c.resolveEA(ops.EA, SizeByte)
		v, ok := ea.read(ops.EA)
		if !ok {
			return 0
		}
		extend := c.sr&SRX != 0
		result, borrow := bcdSub(0, uint8(v), extend)
		ea.write(uint32(result))
		if borrow {
			c.sr |= SRX | SRC
		} else {
			c.sr &^= SRX | SRC
		}
		if result != 0 {
			c.sr &^= SRZ
		}
		family := "nbcd"
		return c.variant.InstructionBaseCycles(family, SizeByte, 6) + c.eaCycles(ops.EA, SizeByte, true)

	case OPTAS:
		ea := c.resolveEA(ops.EA, SizeByte)
		v, ok := ea.read(ops.EA)
		if !ok {
			return 0
		}
		c.setFlagsLogical(v, SizeByte)
		ea.write(v | 0x80)
		return c.variant.InstructionBaseCycles("tas", SizeByte, 4) + c.eaCycles(ops.EA, SizeByte, true)

	default: // Scc
		ea := c.resolveEA(ops.EA, SizeByte)
		var v uint32
		if c.testCondition(ops.Condition) {
			v = 0xFF
		}
		ea.write(v)
		return c.variant.InstructionBaseCycles("scc", SizeByte, 4) + c.eaCycles(ops.EA, SizeByte, true)
	}
}
