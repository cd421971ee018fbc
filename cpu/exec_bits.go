package cpu

// execBitOp implements BTST/BCHG/BCLR/BSET in both their static (#imm,
// Direction DirEAToReg) and dynamic (Dn, Direction DirRegToEA) forms. A
// data-register destination tests/modifies one of 32 bits; a memory
// destination is always byte-wide, so the bit number wraps modulo 8
// instead.
func (c *CPU) execBitOp(ops Operands) int {
	regDest := ops.EA.Mode == uint8(ModeData)

	var bitNum uint8
	if ops.Direction == DirRegToEA {
		bitNum = uint8(c.d[ops.Reg])
	} else {
		bitNum = uint8(ops.Data)
	}

	sz := SizeByte
	if regDest {
		sz = SizeLong
		bitNum &= 31
	} else {
		bitNum &= 7
	}

	ea := c.resolveEA(ops.EA, sz)
	v, ok := ea.read(ops.EA)
	if !ok {
		return 0
	}
	mask := uint32(1) << bitNum
	c.sr &^= SRZ
	if v&mask == 0 {
		c.sr |= SRZ
	}

	switch ops.OpBase {
	case OPBCHG:
		ea.write(v ^ mask)
	case OPBCLR:
		ea.write(v &^ mask)
	case OPBSET:
		ea.write(v | mask)
	}

	family := "bit.mem"
	fallback := 4
	if regDest {
		family = "bit.reg"
		fallback = 6
	}
	return c.variant.InstructionBaseCycles(family, sz, fallback) + c.eaCycles(ops.EA, sz, ops.OpBase != OPBTST)
}
