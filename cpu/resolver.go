package cpu

// ea is a resolved effective address: either a register slot or a bus
// address, computed and (for the auto-increment/decrement modes)
// side-effected exactly once by resolveEA. exec_*.go calls read/write on
// it as many times as an instruction's semantics require (e.g. a
// read-modify-write CLR still only decrements -(An) once).
type ea struct {
	c         *CPU
	regDirect bool
	addrReg   bool
	reg       uint8
	addr      uint32
	sz        Size
	ok        bool
}

// resolveEA computes the address or register a decoded EAField refers
// to, applying (An)+ and -(An) side effects immediately, matching real
// hardware timing where the address register updates before the access
// completes.
func (c *CPU) resolveEA(f EAField, sz Size) ea {
	switch f.Mode {
	case uint8(ModeData):
		return ea{c: c, regDirect: true, reg: f.Reg, sz: sz, ok: true}
	case uint8(ModeAddr):
		return ea{c: c, regDirect: true, addrReg: true, reg: f.Reg, sz: sz, ok: true}
	case uint8(ModeAddrInd):
		return ea{c: c, addr: c.a[f.Reg], sz: sz, ok: true}
	case uint8(ModeAddrPostInc):
		addr := c.a[f.Reg]
		c.a[f.Reg] += incrementFor(f.Reg, sz)
		return ea{c: c, addr: addr, sz: sz, ok: true}
	case uint8(ModeAddrPreDec):
		c.a[f.Reg] -= incrementFor(f.Reg, sz)
		return ea{c: c, addr: c.a[f.Reg], sz: sz, ok: true}
	case uint8(ModeAddrDisp):
		addr := c.a[f.Reg] + f.Extra
		return ea{c: c, addr: addr, sz: sz, ok: true}
	case uint8(ModeAddrIndex):
		addr := c.a[f.Reg] + c.indexedDisplacement(f.ExtWord)
		return ea{c: c, addr: addr, sz: sz, ok: true}
	case uint8(ModeOther):
		switch f.Reg {
		case uint8(RegAbsShort):
			return ea{c: c, addr: f.Extra, sz: sz, ok: true}
		case uint8(RegAbsLong):
			return ea{c: c, addr: f.Extra, sz: sz, ok: true}
		case uint8(RegPCDisp):
			return ea{c: c, addr: f.ExtPC + f.Extra, sz: sz, ok: true}
		case uint8(RegPCIndex):
			addr := f.ExtPC + c.indexedDisplacement(f.ExtWord)
			return ea{c: c, addr: addr, sz: sz, ok: true}
		case uint8(RegImmediate):
			return ea{c: c, addr: 0, sz: sz, ok: true, regDirect: false, reg: 0xFF /* sentinel: immediate */}
		}
	}
	return ea{ok: false}
}

// incrementFor returns how far (An)+ / -(An) move the address register:
// the operand size, except that byte-sized accesses through A7 always
// move by 2 to keep the stack pointer word-aligned.
func incrementFor(reg uint8, sz Size) uint32 {
	if reg == 7 && sz == SizeByte {
		return 2
	}
	return sz.Bytes()
}

// indexedDisplacement decodes a brief extension word: an 8-bit signed
// displacement plus the value of the selected index register, sign- or
// zero-extended per its W/L bit. This core does not implement the
// 68020+ full extension word format (scale factor, base suppression);
// every variant it models predates that encoding.
func (c *CPU) indexedDisplacement(ext uint16) uint32 {
	disp := int32(int8(ext & 0xFF))
	idxReg := uint8((ext >> 12) & 7)
	isAddr := ext&0x8000 != 0
	long := ext&0x0800 != 0

	var idxVal uint32
	if isAddr {
		idxVal = c.a[idxReg]
	} else {
		idxVal = c.d[idxReg]
	}
	if !long {
		idxVal = uint32(int32(int16(idxVal)))
	}
	return uint32(disp) + idxVal
}

// read loads the operand's current value, zero-extended into a uint32.
func (e ea) read(field EAField) (uint32, bool) {
	if field.Mode == uint8(ModeOther) && field.Reg == uint8(RegImmediate) {
		return field.Extra, true
	}
	if e.regDirect {
		if e.addrReg {
			return e.c.a[e.reg], true
		}
		return e.c.d[e.reg] & e.sz.Mask(), true
	}
	switch e.sz {
	case SizeByte:
		v, ok := e.c.readBusByte(e.addr)
		return uint32(v), ok
	case SizeWord:
		v, ok := e.c.readBusWord(e.addr)
		return uint32(v), ok
	default:
		v, ok := e.c.readBusLong(e.addr)
		return v, ok
	}
}

// write stores value into the operand. For a data register destination,
// only the bytes matching sz change; for an address register (MOVEA-style
// writers only), word values are sign-extended to fill the register.
func (e ea) write(value uint32) bool {
	if e.regDirect {
		if e.addrReg {
			if e.sz == SizeWord {
				value = uint32(int32(int16(value)))
			}
			e.c.a[e.reg] = value
			return true
		}
		mask := e.sz.Mask()
		e.c.d[e.reg] = (e.c.d[e.reg] &^ mask) | (value & mask)
		return true
	}
	switch e.sz {
	case SizeByte:
		return e.c.writeBusByte(e.addr, uint8(value))
	case SizeWord:
		return e.c.writeBusWord(e.addr, uint16(value))
	default:
		return e.c.writeBusLong(e.addr, value)
	}
}
