package cpu

import "errors"

// ErrTruncated is returned by Decode when a fetch ran off the end of
// readable memory (or, for the disassembler's slice-backed Fetcher, off
// the end of the buffer) while consuming an opcode or its extension
// words.
var ErrTruncated = errors.New("m68000: truncated instruction")

// ErrLineA and ErrLineF are returned by Decode for the two opcode lines
// the 68000 reserves as emulator traps rather than defining instructions
// for. The scheduler turns these into the LineA/LineF exception vectors;
// a host emulating a coprocessor or OS trap convention intercepts them
// before they ever reach the exception engine, by inspecting the opcode.
var ErrLineA = errors.New("m68000: line-1010 opcode reserved for emulator trap")
var ErrLineF = errors.New("m68000: line-1111 opcode reserved for emulator trap")

// Fetcher supplies the words Decode consumes. CPU implements it directly
// against live memory; the disassembler package implements it over a
// byte slice so the exact same decode logic produces both execution and
// disassembly.
type Fetcher interface {
	NextWord() (uint16, bool)
	PeekWord() (uint16, bool)
	// Here returns the address NextWord will read from next, used to
	// anchor the two PC-relative addressing modes to the extension
	// word's own address rather than the instruction's start.
	Here() uint32
}

// NextWord implements Fetcher by fetching from PC and advancing it.
func (c *CPU) NextWord() (uint16, bool) { return c.fetchPC() }

// PeekWord implements Fetcher by reading the word at PC without
// advancing it.
func (c *CPU) PeekWord() (uint16, bool) { return c.peekPC() }

// Here implements Fetcher.
func (c *CPU) Here() uint32 { return c.pc }

func nextLong(f Fetcher) (uint32, bool) {
	hi, ok := f.NextWord()
	if !ok {
		return 0, false
	}
	lo, ok := f.NextWord()
	if !ok {
		return 0, false
	}
	return uint32(hi)<<16 | uint32(lo), true
}

// decodeEA consumes whatever extension words the given mode/register
// pair requires and returns the resulting EAField. It never resolves a
// register-dependent address: that is resolver.go's job at execute time.
func decodeEA(f Fetcher, mode, reg uint8, sz Size) (EAField, bool) {
	ea := EAField{Mode: mode, Reg: reg}
	switch mode {
	case 0, 1, 2, 3, 4:
		// Dn, An, (An), (An)+, -(An): no extension words.
	case 5:
		w, ok := f.NextWord()
		if !ok {
			return ea, false
		}
		ea.Extra = uint32(int32(int16(w)))
	case 6:
		w, ok := f.NextWord()
		if !ok {
			return ea, false
		}
		ea.ExtWord = w
	case 7:
		switch reg {
		case uint8(RegAbsShort):
			w, ok := f.NextWord()
			if !ok {
				return ea, false
			}
			ea.Extra = uint32(int32(int16(w)))
		case uint8(RegAbsLong):
			l, ok := nextLong(f)
			if !ok {
				return ea, false
			}
			ea.Extra = l
		case uint8(RegPCDisp):
			ea.ExtPC = f.Here()
			w, ok := f.NextWord()
			if !ok {
				return ea, false
			}
			ea.Extra = uint32(int32(int16(w)))
		case uint8(RegPCIndex):
			ea.ExtPC = f.Here()
			w, ok := f.NextWord()
			if !ok {
				return ea, false
			}
			ea.ExtWord = w
		case uint8(RegImmediate):
			switch sz {
			case SizeByte:
				w, ok := f.NextWord()
				if !ok {
					return ea, false
				}
				ea.Extra = uint32(w & 0xFF)
			case SizeWord:
				w, ok := f.NextWord()
				if !ok {
					return ea, false
				}
				ea.Extra = uint32(w)
			default:
				l, ok := nextLong(f)
				if !ok {
					return ea, false
				}
				ea.Extra = l
			}
		}
	}
	return ea, true
}

// Decode reads one instruction from f, starting at pc. It performs no
// side effects beyond consuming words from f: no register, memory, or
// flag state changes. Both the execution core and the disassembler
// build their view of an instruction by calling this function.
func Decode(f Fetcher, pc uint32) (Instruction, error) {
	opcode, ok := f.NextWord()
	if !ok {
		return Instruction{}, ErrTruncated
	}
	inst := Instruction{Opcode: opcode, PC: pc}

	var ops Operands
	var ok2 bool
	switch opcode >> 12 {
	case 0x0:
		ops, ok2 = decodeLine0(f, opcode)
	case 0x1, 0x2, 0x3:
		ops, ok2 = decodeMove(f, opcode)
	case 0x4:
		ops, ok2 = decodeLine4(f, opcode)
	case 0x5:
		ops, ok2 = decodeLine5(f, opcode)
	case 0x6:
		ops, ok2 = decodeLine6(f, opcode)
	case 0x7:
		ops, ok2 = decodeMoveq(opcode)
	case 0x8:
		ops, ok2 = decodeLine8(f, opcode)
	case 0x9:
		ops, ok2 = decodeLine9D(f, opcode, OPSUB, OPSUBA, OPSUBX)
	case 0xA:
		return Instruction{}, ErrLineA
	case 0xB:
		ops, ok2 = decodeLineB(f, opcode)
	case 0xC:
		ops, ok2 = decodeLineC(f, opcode)
	case 0xD:
		ops, ok2 = decodeLine9D(f, opcode, OPADD, OPADDA, OPADDX)
	case 0xE:
		ops, ok2 = decodeLineE(f, opcode)
	case 0xF:
		return Instruction{}, ErrLineF
	}
	if !ok2 {
		return Instruction{}, ErrTruncated
	}
	inst.Operands = ops
	return inst, nil
}

// decodeLine0 handles the ORI/ANDI/EORI/ADDI/SUBI/CMPI immediate-to-EA
// family, the to-CCR/to-SR variants, the static and dynamic bit
// instructions, and MOVEP. All share opcode bits 15-12 == 0.
func decodeLine0(f Fetcher, opcode uint16) (Operands, bool) {
	mode := uint8((opcode >> 3) & 7)
	reg := uint8(opcode & 7)

	if bitOp, isDynamic, ok := classifyBitOp(opcode); ok && mode != 1 {
		srcReg := uint8((opcode >> 9) & 7)
		if isDynamic {
			ea, fok := decodeEA(f, mode, reg, SizeByte)
			if !fok {
				return Operands{}, false
			}
			return Operands{Kind: KindBitOp, Size: SizeLong, Direction: DirRegToEA, EA: ea, Reg: srcReg, OpBase: bitOp}, true
		}
	}
	// Static bit ops: 0000 1000 ooxxxxxx #imm.
	if opcode&0xFF00 == 0x0800 {
		imm, ok := f.NextWord()
		if !ok {
			return Operands{}, false
		}
		op := opcode & 0x00C0
		var base uint16
		switch op {
		case 0x0000:
			base = OPBTST
		case 0x0040:
			base = OPBCHG
		case 0x0080:
			base = OPBCLR
		case 0x00C0:
			base = OPBSET
		}
		ea, fok := decodeEA(f, mode, reg, SizeByte)
		if !fok {
			return Operands{}, false
		}
		return Operands{Kind: KindBitOp, Size: SizeLong, EA: ea, Data: int32(imm & 0x3F), OpBase: base}, true
	}

	// MOVEP: 0000 ddd1 oo001 aaa.
	if opcode&0xF138 == 0x0108 {
		dReg := uint8((opcode >> 9) & 7)
		direction := DirEAToReg
		if opcode&0x80 != 0 {
			direction = DirRegToEA
		}
		sz := SizeWord
		if opcode&0x40 != 0 {
			sz = SizeLong
		}
		disp, ok := f.NextWord()
		if !ok {
			return Operands{}, false
		}
		return Operands{
			Kind:      KindMovep,
			Size:      sz,
			Direction: direction,
			Reg:       dReg,
			EA:        EAField{Mode: 5, Reg: reg, Extra: uint32(int32(int16(disp)))},
		}, true
	}

	// ANDI/ORI/EORI/ADDI/SUBI/CMPI #imm,<ea>, plus the CCR/SR word forms.
	sizeBits := uint16((opcode >> 6) & 3)
	sz := sizeFromOpBits(sizeBits)
	opGroup := opcode & 0xFF00

	if mode == 7 && reg == 4 {
		// Store the exact (unmasked) opcode as OpBase here: opGroup (the
		// top byte only) is the same for e.g. ANDI #imm,CCR and
		// ANDI #imm,Dn, since only the low byte tells them apart. Using
		// the full opcode keeps execImmediateToEA's dispatch unambiguous.
		if opcode == OPANDItoCCR || opcode == OPORItoCCR || opcode == OPEORItoCCR {
			imm, ok := f.NextWord()
			if !ok {
				return Operands{}, false
			}
			return Operands{Kind: KindImmediateToEA, Size: SizeByte, Data: int32(imm & 0xFF), OpBase: opcode}, true
		}
		if opcode == OPANDItoSR || opcode == OPORItoSR || opcode == OPEORItoSR {
			imm, ok := f.NextWord()
			if !ok {
				return Operands{}, false
			}
			return Operands{Kind: KindImmediateToEA, Size: SizeWord, Data: int32(imm), OpBase: opcode}, true
		}
	}

	if sz == SizeInvalid {
		return Operands{}, false
	}
	imm, ok := fetchImmediate(f, sz)
	if !ok {
		return Operands{}, false
	}
	ea, fok := decodeEA(f, mode, reg, sz)
	if !fok {
		return Operands{}, false
	}
	return Operands{Kind: KindImmediateToEA, Size: sz, EA: ea, Data: imm, OpBase: opGroup}, true
}

func classifyBitOp(opcode uint16) (base uint16, dynamic bool, ok bool) {
	if opcode&0xF1C0 == 0x0100 {
		return OPBTST, true, true
	}
	if opcode&0xF1C0 == 0x0140 {
		return OPBCHG, true, true
	}
	if opcode&0xF1C0 == 0x0180 {
		return OPBCLR, true, true
	}
	if opcode&0xF1C0 == 0x01C0 {
		return OPBSET, true, true
	}
	return 0, false, false
}

func fetchImmediate(f Fetcher, sz Size) (int32, bool) {
	switch sz {
	case SizeByte:
		w, ok := f.NextWord()
		if !ok {
			return 0, false
		}
		return int32(int8(w & 0xFF)), true
	case SizeWord:
		w, ok := f.NextWord()
		if !ok {
			return 0, false
		}
		return int32(int16(w)), true
	case SizeLong:
		l, ok := nextLong(f)
		if !ok {
			return 0, false
		}
		return int32(l), true
	}
	return 0, false
}

// decodeMove handles lines 1-3: MOVE and MOVEA.
func decodeMove(f Fetcher, opcode uint16) (Operands, bool) {
	sz := sizeFromMoveBits(uint16((opcode >> 12) & 3))
	if sz == SizeInvalid {
		return Operands{}, false
	}
	srcMode := uint8((opcode >> 3) & 7)
	srcReg := uint8(opcode & 7)
	dstReg := uint8((opcode >> 9) & 7)
	dstMode := uint8((opcode >> 6) & 7)

	src, ok := decodeEA(f, srcMode, srcReg, sz)
	if !ok {
		return Operands{}, false
	}
	dst, ok := decodeEA(f, dstMode, dstReg, sz)
	if !ok {
		return Operands{}, false
	}
	if dstMode == 1 {
		return Operands{Kind: KindMovea, Size: sz.AsWordLong(), EA: src, Reg: dstReg}, true
	}
	return Operands{Kind: KindEAToEA, Size: sz, EA: src, EA2: dst}, true
}

func decodeMoveq(opcode uint16) (Operands, bool) {
	return Operands{
		Kind: KindMoveq,
		Size: SizeLong,
		Reg:  uint8((opcode >> 9) & 7),
		Data: int32(int8(opcode & 0xFF)),
	}, true
}

// decodeLine4 handles the large "miscellaneous" line: NEGX/CLR/NEG/NOT/
// TST, LEA/PEA, LINK/UNLK, MOVEM, CHK, JMP/JSR, SWAP/EXT, NBCD/TAS,
// TRAP/TRAPV/RTE/RTS/RTR/RESET/STOP/NOP/ILLEGAL, and MOVE to/from SR/
// CCR/USP.
func decodeLine4(f Fetcher, opcode uint16) (Operands, bool) {
	mode := uint8((opcode >> 3) & 7)
	reg := uint8(opcode & 7)

	switch opcode {
	case OPNOP:
		return Operands{Kind: KindSimple, OpBase: OPNOP}, true
	case OPRTS:
		return Operands{Kind: KindSimple, OpBase: OPRTS}, true
	case OPRTE:
		return Operands{Kind: KindSimple, OpBase: OPRTE}, true
	case OPRTR:
		return Operands{Kind: KindSimple, OpBase: OPRTR}, true
	case OPTRAPV:
		return Operands{Kind: KindSimple, OpBase: OPTRAPV}, true
	case OPILLEGAL:
		return Operands{Kind: KindSimple, OpBase: OPILLEGAL}, true
	case OPRESET:
		return Operands{Kind: KindSimple, OpBase: OPRESET}, true
	case OPSTOP:
		imm, ok := f.NextWord()
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindStop, Data: int32(imm)}, true
	}

	if opcode&0xFFF8 == OPSWAP {
		return Operands{Kind: KindSwap, Reg: reg}, true
	}
	if opcode&0xFFF8 == OPUNLK {
		return Operands{Kind: KindUnlk, Reg: reg}, true
	}
	if opcode&0xFFF8 == OPLINK {
		disp, ok := f.NextWord()
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindLink, Reg: reg, Data: int32(int16(disp))}, true
	}
	if opcode&0xFFB8 == 0x4880 {
		// EXT Dn: 0100 100o oo000 rrr (o = 010 word, 011 long).
		sz := SizeWord
		if opcode&0x0040 != 0 {
			sz = SizeLong
		}
		return Operands{Kind: KindExt, Size: sz, Reg: reg}, true
	}
	if opcode&0xFFF8 == OPMOVEFromUSP || opcode&0xFFF8 == OPMOVEToUSP {
		return Operands{Kind: KindMoveToFromSR, Reg: reg, OpBase: opcode &^ 7}, true
	}
	if opcode&0xFFC0 == OPMOVEFromSR {
		ea, ok := decodeEA(f, mode, reg, SizeWord)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindMoveToFromSR, Size: SizeWord, EA: ea, OpBase: OPMOVEFromSR}, true
	}
	if opcode&0xFFC0 == OPMOVEToSR {
		ea, ok := decodeEA(f, mode, reg, SizeWord)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindMoveToFromSR, Size: SizeWord, EA: ea, OpBase: OPMOVEToSR}, true
	}
	if opcode&0xFFC0 == OPMOVEToCCR {
		ea, ok := decodeEA(f, mode, reg, SizeWord)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindMoveToFromSR, Size: SizeByte, EA: ea, OpBase: OPMOVEToCCR}, true
	}
	if opcode&0xF1C0 == OPLEA {
		ea, ok := decodeEA(f, mode, reg, SizeLong)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindLea, EA: ea, Reg: uint8((opcode >> 9) & 7)}, true
	}
	if opcode&0xFFC0 == OPPEA {
		ea, ok := decodeEA(f, mode, reg, SizeLong)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindPea, EA: ea}, true
	}
	if opcode&0xFB80 == OPMOVEM {
		list, ok := f.NextWord()
		if !ok {
			return Operands{}, false
		}
		sz := SizeWord
		if opcode&0x0040 != 0 {
			sz = SizeLong
		}
		dir := DirEAToReg
		if opcode&0x0400 == 0 {
			dir = DirRegToEA
		}
		ea, ok := decodeEA(f, mode, reg, sz)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindMovem, Size: sz, Direction: dir, EA: ea, RegList: list}, true
	}
	if opcode&0xF1C0 == OPCHK {
		ea, ok := decodeEA(f, mode, reg, SizeWord)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindChk, Size: SizeWord, EA: ea, Reg: uint8((opcode >> 9) & 7)}, true
	}
	if opcode&0xFFC0 == OPJMP || opcode&0xFFC0 == OPJSR {
		ea, ok := decodeEA(f, mode, reg, SizeLong)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindJump, EA: ea, OpBase: opcode & 0xFFC0}, true
	}
	if opcode&0xFFC0 == OPTAS {
		ea, ok := decodeEA(f, mode, reg, SizeByte)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindEAOnly, Size: SizeByte, EA: ea, OpBase: OPTAS}, true
	}
	if opcode&0xFFF0 == OPTRAP {
		// TRAP #n.
		return Operands{Kind: KindTrap, Data: int32(opcode & 0xF)}, true
	}

	// NBCD: 0100 1000 00mm mrrr. It shares its top byte with EXT/SWAP,
	// both of which returned above, so whatever reaches here with that
	// top byte is NBCD.
	if opcode&0xFFC0 == 0x4800 {
		ea, ok := decodeEA(f, mode, reg, SizeByte)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindEAOnly, Size: SizeByte, EA: ea, OpBase: OPNBCD}, true
	}

	// NEGX/CLR/NEG/NOT/TST share the 0100 oooo ssxxxxxx shape.
	sizeBits := uint16((opcode >> 6) & 3)
	group := opcode & 0xFF00
	var base uint16
	switch group {
	case OPNEGX & 0xFF00:
		base = OPNEGX
	case OPCLR & 0xFF00:
		base = OPCLR
	case OPNEG & 0xFF00:
		base = OPNEG
	case OPNOT & 0xFF00:
		base = OPNOT
	case OPTST & 0xFF00:
		base = OPTST
	default:
		return Operands{}, false
	}
	sz := sizeFromOpBits(sizeBits)
	if sz == SizeInvalid {
		return Operands{}, false
	}
	ea, ok := decodeEA(f, mode, reg, sz)
	if !ok {
		return Operands{}, false
	}
	return Operands{Kind: KindEAOnly, Size: sz, EA: ea, OpBase: base}, true
}

// decodeLine5 handles ADDQ/SUBQ, Scc, and DBcc, which all share the 0101
// top nibble.
func decodeLine5(f Fetcher, opcode uint16) (Operands, bool) {
	mode := uint8((opcode >> 3) & 7)
	reg := uint8(opcode & 7)
	sizeBits := uint16((opcode >> 6) & 3)

	if sizeBits == 3 {
		if mode == 1 {
			disp, ok := f.NextWord()
			if !ok {
				return Operands{}, false
			}
			return Operands{
				Kind:      KindDBcc,
				Reg:       reg,
				Condition: uint8((opcode >> 8) & 0xF),
				Data:      int32(int16(disp)),
			}, true
		}
		ea, ok := decodeEA(f, mode, reg, SizeByte)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindEAOnly, Size: SizeByte, EA: ea, Condition: uint8((opcode >> 8) & 0xF), OpBase: OPScc}, true
	}

	sz := sizeFromOpBits(sizeBits)
	data := (opcode >> 9) & 7
	if data == 0 {
		data = 8
	}
	ea, ok := decodeEA(f, mode, reg, sz)
	if !ok {
		return Operands{}, false
	}
	base := uint16(OPADDQ)
	if opcode&0x0100 != 0 {
		base = OPSUBQ
	}
	return Operands{Kind: KindQuickToEA, Size: sz, EA: ea, Data: int32(data), OpBase: base}, true
}

func decodeLine6(f Fetcher, opcode uint16) (Operands, bool) {
	cond := uint8((opcode >> 8) & 0xF)
	disp := int32(int8(opcode & 0xFF))
	if disp == 0 {
		w, ok := f.NextWord()
		if !ok {
			return Operands{}, false
		}
		disp = int32(int16(w))
	}
	return Operands{Kind: KindBranch, Condition: cond, Data: disp, OpBase: opcode & 0xFF00}, true
}

// decodeLine8 handles OR, DIVS/DIVU, and SBCD, which share the 1000 top
// nibble.
func decodeLine8(f Fetcher, opcode uint16) (Operands, bool) {
	opmode := (opcode >> 6) & 7
	reg := uint8((opcode >> 9) & 7)
	mode := uint8((opcode >> 3) & 7)
	eaReg := uint8(opcode & 7)

	if opmode == 3 || opmode == 7 {
		sz := SizeWord
		kind := OperandKind(KindMulDiv)
		base := uint16(OPDIVU)
		if opmode == 7 {
			base = OPDIVS
		}
		ea, ok := decodeEA(f, mode, eaReg, sz)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: kind, Size: sz, EA: ea, Reg: reg, OpBase: base}, true
	}
	if opcode&0xF1F0 == 0x8100 {
		regForm := opcode&0x0008 == 0
		return Operands{
			Kind:   KindSbcd,
			Reg:    reg,
			Reg2:   eaReg,
			OpBase: boolPick(regForm, 0, 1),
		}, true
	}
	sz := sizeFromOpBits(opmode & 3)
	if sz == SizeInvalid {
		return Operands{}, false
	}
	dir := DirEAToReg
	if opmode&4 != 0 {
		dir = DirRegToEA
	}
	ea, ok := decodeEA(f, mode, eaReg, sz)
	if !ok {
		return Operands{}, false
	}
	return Operands{Kind: KindEAToReg, Size: sz, Direction: dir, EA: ea, Reg: reg, OpBase: OPOR}, true
}

func boolPick(cond bool, t, f uint16) uint16 {
	if cond {
		return t
	}
	return f
}

// decodeLine9D handles SUB/SUBA/SUBX (line 9) and ADD/ADDA/ADDX (line D),
// which share an identical bit layout differing only in the base opcode
// passed in by the caller.
func decodeLine9D(f Fetcher, opcode uint16, base, baseA, baseX uint16) (Operands, bool) {
	opmode := (opcode >> 6) & 7
	reg := uint8((opcode >> 9) & 7)
	mode := uint8((opcode >> 3) & 7)
	eaReg := uint8(opcode & 7)

	if opmode == 3 || opmode == 7 {
		sz := SizeWord
		if opmode == 7 {
			sz = SizeLong
		}
		ea, ok := decodeEA(f, mode, eaReg, sz)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindMovea, Size: sz, EA: ea, Reg: reg, OpBase: baseA}, true
	}
	if mode == 0 && (opmode == 4 || opmode == 5 || opmode == 6) {
		// ADDX/SUBX Dy,Dx (register form); the -(Ay),-(Ax) form uses
		// mode 1, handled in the branch below.
		sz := sizeFromOpBits(opmode & 3)
		return Operands{Kind: KindAddxSubx, Size: sz, Reg: reg, Reg2: eaReg, OpBase: baseX}, true
	}
	if mode == 1 && (opmode == 4 || opmode == 5 || opmode == 6) {
		sz := sizeFromOpBits(opmode & 3)
		return Operands{Kind: KindAddxSubx, Size: sz, Reg: reg, Reg2: eaReg, OpBase: baseX, Direction: DirRegToEA}, true
	}
	sz := sizeFromOpBits(opmode & 3)
	if sz == SizeInvalid {
		return Operands{}, false
	}
	dir := DirEAToReg
	if opmode&4 != 0 {
		dir = DirRegToEA
	}
	ea, ok := decodeEA(f, mode, eaReg, sz)
	if !ok {
		return Operands{}, false
	}
	return Operands{Kind: KindEAToReg, Size: sz, Direction: dir, EA: ea, Reg: reg, OpBase: base}, true
}

// decodeLineB handles CMP/CMPA/CMPM and EOR.
func decodeLineB(f Fetcher, opcode uint16) (Operands, bool) {
	opmode := (opcode >> 6) & 7
	reg := uint8((opcode >> 9) & 7)
	mode := uint8((opcode >> 3) & 7)
	eaReg := uint8(opcode & 7)

	if opmode == 3 || opmode == 7 {
		sz := SizeWord
		if opmode == 7 {
			sz = SizeLong
		}
		ea, ok := decodeEA(f, mode, eaReg, sz)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindMovea, Size: sz, EA: ea, Reg: reg, OpBase: OPCMPA}, true
	}
	if mode == 1 && opmode >= 4 {
		sz := sizeFromOpBits(opmode & 3)
		return Operands{Kind: KindCmpm, Size: sz, Reg: reg, Reg2: eaReg}, true
	}
	sz := sizeFromOpBits(opmode & 3)
	if sz == SizeInvalid {
		return Operands{}, false
	}
	ea, ok := decodeEA(f, mode, eaReg, sz)
	if !ok {
		return Operands{}, false
	}
	if opmode >= 4 {
		return Operands{Kind: KindEAToReg, Size: sz, Direction: DirRegToEA, EA: ea, Reg: reg, OpBase: OPEOR}, true
	}
	return Operands{Kind: KindEAToReg, Size: sz, Direction: DirEAToReg, EA: ea, Reg: reg, OpBase: OPCMP}, true
}

// decodeLineC handles AND, MULS/MULU, ABCD, and EXG.
func decodeLineC(f Fetcher, opcode uint16) (Operands, bool) {
	opmode := (opcode >> 6) & 7
	reg := uint8((opcode >> 9) & 7)
	mode := uint8((opcode >> 3) & 7)
	eaReg := uint8(opcode & 7)

	if opmode == 3 || opmode == 7 {
		sz := SizeWord
		base := uint16(OPMULU)
		if opmode == 7 {
			base = OPMULS
		}
		ea, ok := decodeEA(f, mode, eaReg, sz)
		if !ok {
			return Operands{}, false
		}
		return Operands{Kind: KindMulDiv, Size: sz, EA: ea, Reg: reg, OpBase: base}, true
	}
	if opcode&0xF1F0 == 0xC100 {
		regForm := opcode&0x0008 == 0
		return Operands{
			Kind:   KindAbcd,
			Reg:    reg,
			Reg2:   eaReg,
			OpBase: boolPick(regForm, 0, 1),
		}, true
	}
	if opcode&0xF130 == 0xC100 && (opcode&0xF1F8) != 0xC108 {
		var mode2 uint8
		switch opcode & 0x01F8 {
		case 0x0140:
			mode2 = 0 // EXG Dx,Dy
		case 0x0148:
			mode2 = 1 // EXG Ax,Ay
		case 0x0188:
			mode2 = 2 // EXG Dx,Ay
		default:
			return Operands{}, false
		}
		return Operands{Kind: KindExg, Reg: reg, Reg2: eaReg, OpBase: uint16(mode2)}, true
	}
	sz := sizeFromOpBits(opmode & 3)
	if sz == SizeInvalid {
		return Operands{}, false
	}
	dir := DirEAToReg
	if opmode&4 != 0 {
		dir = DirRegToEA
	}
	ea, ok := decodeEA(f, mode, eaReg, sz)
	if !ok {
		return Operands{}, false
	}
	return Operands{Kind: KindEAToReg, Size: sz, Direction: dir, EA: ea, Reg: reg, OpBase: OPAND}, true
}

// decodeLineE handles the shift/rotate family, both the register-count
// and memory-by-1 forms.
func decodeLineE(f Fetcher, opcode uint16) (Operands, bool) {
	sizeBits := uint16((opcode >> 6) & 3)
	if sizeBits == 3 {
		// Memory shift-by-1: 1110 ooo1 11xxxxxx (direction/op in bits 9-8).
		mode := uint8((opcode >> 3) & 7)
		eaReg := uint8(opcode & 7)
		ea, ok := decodeEA(f, mode, eaReg, SizeWord)
		if !ok {
			return Operands{}, false
		}
		opField := (opcode >> 9) & 3
		left := opcode&0x0100 != 0
		return Operands{
			Kind:   KindShiftRotateMem,
			Size:   SizeWord,
			EA:     ea,
			OpBase: shiftOpBase(opField, left),
		}, true
	}

	sz := sizeFromOpBits(sizeBits)
	reg := uint8(opcode & 7)
	countOrReg := uint8((opcode >> 9) & 7)
	useReg := opcode&0x0020 != 0
	opField := (opcode >> 3) & 3
	left := opcode&0x0100 != 0

	data := int32(countOrReg)
	if data == 0 && !useReg {
		data = 8
	}
	return Operands{
		Kind:      KindShiftRotateReg,
		Size:      sz,
		Reg:       reg,
		Reg2:      countOrReg,
		Direction: boolDir(useReg),
		Data:      data,
		OpBase:    shiftOpBase(opField, left),
	}, true
}

func boolDir(useReg bool) Direction {
	if useReg {
		return DirRegToEA
	}
	return DirEAToReg
}

func shiftOpBase(opField uint16, left bool) uint16 {
	switch opField {
	case 0:
		if left {
			return OPASL
		}
		return OPASR
	case 1:
		if left {
			return OPLSL
		}
		return OPLSR
	case 2:
		if left {
			return OPROXL
		}
		return OPROXR
	default:
		if left {
			return OPROL
		}
		return OPROR
	}
}
