package cpu

// bcdAdd and bcdSub implement the packed-BCD digit-wise adjust ABCD, SBCD
// and NBCD all need: each nibble is added/subtracted independently and
// corrected back into the 0-9 range, carrying into the next nibble
// exactly as a decimal adder would.
func bcdAdd(dst, src uint8, extend bool) (result uint8, carry bool) {
	x := uint16(0)
	if extend {
		x = 1
	}
	lo := uint16(dst&0xF) + uint16(src&0xF) + x
	var loCarry uint16
	if lo > 9 {
		lo -= 10
		loCarry = 1
	}
	hi := uint16(dst>>4) + uint16(src>>4) + loCarry
	if hi > 9 {
		hi -= 10
		carry = true
	}
	result = uint8(hi<<4) | uint8(lo)
	return
}

func bcdSub(dst, src uint8, extend bool) (result uint8, borrow bool) {
	x := int16(0)
	if extend {
		x = 1
	}
	lo := int16(dst&0xF) - int16(src&0xF) - x
	var loBorrow int16
	if lo < 0 {
		lo += 10
		loBorrow = 1
	}
	hi := int16(dst>>4) - int16(src>>4) - loBorrow
	if hi < 0 {
		hi += 10
		borrow = true
	}
	result = uint8(hi)<<4 | uint8(lo)
	return
}

// execAbcd and execSbcd implement ABCD/SBCD Dy,Dx or -(Ay),-(Ax). OpBase
// 0 selects the register form (Reg is Dx, Reg2 is Dy); OpBase 1 selects
// the predecrement memory form (Reg is Ax, Reg2 is Ay).
func (c *CPU) execAbcd(ops Operands) int { return c.execBcdOp(ops, true) }
func (c *CPU) execSbcd(ops Operands) int { return c.execBcdOp(ops, false) }

func (c *CPU) execBcdOp(ops Operands, add bool) int {
	extend := c.sr&SRX != 0

	var dst, src uint8
	var write func(uint8)
	family := "abcd.reg"
	if ops.OpBase == 0 {
		dst = uint8(c.d[ops.Reg])
		src = uint8(c.d[ops.Reg2])
		reg := ops.Reg
		write = func(v uint8) {
			c.d[reg] = (c.d[reg] &^ 0xFF) | uint32(v)
		}
	} else {
		family = "abcd.mem"
		c.a[ops.Reg2] -= 1
		c.a[ops.Reg] -= 1
		src, _ = c.readBusByte(c.a[ops.Reg2])
		dst, _ = c.readBusByte(c.a[ops.Reg])
		addr := c.a[ops.Reg]
		write = func(v uint8) {
			c.writeBusByte(addr, v)
		}
	}

	var result uint8
	var carry bool
	if add {
		result, carry = bcdAdd(dst, src, extend)
	} else {
		result, carry = bcdSub(dst, src, extend)
	}
	write(result)

	if carry {
		c.sr |= SRX | SRC
	} else {
		c.sr &^= SRX | SRC
	}
	if result != 0 {
		c.sr &^= SRZ
	}
	if result&0x80 != 0 {
		c.sr |= SRN
	} else {
		c.sr &^= SRN
	}

	return c.variant.InstructionBaseCycles(family, SizeByte, 6)
}
