package disassembler

import (
	"fmt"
	"math/bits"

	"github.com/Stovent/m68000/cpu"
)

// conditionNames mirrors cpu.ConditionCodes, indexed by the 4-bit condition
// field so Bcc/Scc/DBcc formatting doesn't have to walk the map.
var conditionNames = [16]string{
	"t", "f", "hi", "ls", "cc", "cs", "ne", "eq",
	"vc", "vs", "pl", "mi", "ge", "lt", "gt", "le",
}

// Disassemble renders a single decoded instruction the way decode.go and
// execute.go already understand it: the same Operands value the execution
// core dispatches on, rather than a second, independent re-reading of the
// opcode bits.
func Disassemble(inst *cpu.Instruction) string {
	mnemonic, operands := render(inst.Operands)
	if operands == "" {
		return mnemonic
	}
	return fmt.Sprintf("%-8s %s", mnemonic, operands)
}

func render(ops cpu.Operands) (string, string) {
	switch ops.Kind {
	case cpu.KindEAOnly:
		return renderEAOnly(ops)
	case cpu.KindEAToReg:
		return renderEAToReg(ops)
	case cpu.KindEAToEA:
		return "move" + ops.Size.Suffix(), fmt.Sprintf("%s,%s", formatEA(ops.EA, ops.Size), formatEA(ops.EA2, ops.Size))
	case cpu.KindMovea:
		return renderMovea(ops)
	case cpu.KindImmediateToEA:
		return renderImmediateToEA(ops)
	case cpu.KindQuickToEA:
		mn := "addq"
		if ops.OpBase == cpu.OPSUBQ {
			mn = "subq"
		}
		return mn + ops.Size.Suffix(), fmt.Sprintf("#%d,%s", ops.Data, formatEA(ops.EA, ops.Size))
	case cpu.KindMoveq:
		return "moveq", fmt.Sprintf("#%d,d%d", ops.Data, ops.Reg)
	case cpu.KindMovem:
		return renderMovem(ops)
	case cpu.KindMovep:
		return renderMovep(ops)
	case cpu.KindBranch:
		return renderBranch(ops)
	case cpu.KindDBcc:
		return fmt.Sprintf("db%s", conditionNames[ops.Condition]), fmt.Sprintf("d%d,%d", ops.Reg, ops.Data)
	case cpu.KindShiftRotateReg, cpu.KindShiftRotateMem:
		return renderShift(ops)
	case cpu.KindBitOp:
		return renderBitOp(ops)
	case cpu.KindExg:
		return "exg", renderExg(ops)
	case cpu.KindExt:
		if ops.Size == cpu.SizeLong {
			return "ext.l", fmt.Sprintf("d%d", ops.Reg)
		}
		return "ext.w", fmt.Sprintf("d%d", ops.Reg)
	case cpu.KindLink:
		return "link", fmt.Sprintf("a%d,#%d", ops.Reg, ops.Data)
	case cpu.KindUnlk:
		return "unlk", fmt.Sprintf("a%d", ops.Reg)
	case cpu.KindTrap:
		return "trap", fmt.Sprintf("#%d", ops.Data)
	case cpu.KindJump:
		if ops.OpBase == cpu.OPJSR {
			return "jsr", formatEA(ops.EA, cpu.SizeLong)
		}
		return "jmp", formatEA(ops.EA, cpu.SizeLong)
	case cpu.KindLea:
		return "lea", fmt.Sprintf("%s,a%d", formatEA(ops.EA, cpu.SizeLong), ops.Reg)
	case cpu.KindPea:
		return "pea", formatEA(ops.EA, cpu.SizeLong)
	case cpu.KindMoveToFromSR:
		return renderMoveToFromSR(ops)
	case cpu.KindMulDiv:
		mn := "mulu"
		switch ops.OpBase {
		case cpu.OPMULS:
			mn = "muls"
		case cpu.OPDIVU:
			mn = "divu"
		case cpu.OPDIVS:
			mn = "divs"
		}
		return mn, fmt.Sprintf("%s,d%d", formatEA(ops.EA, cpu.SizeWord), ops.Reg)
	case cpu.KindChk:
		return "chk", fmt.Sprintf("%s,d%d", formatEA(ops.EA, cpu.SizeWord), ops.Reg)
	case cpu.KindAbcd:
		return "abcd", renderBcdOperands(ops)
	case cpu.KindSbcd:
		return "sbcd", renderBcdOperands(ops)
	case cpu.KindAddxSubx:
		return renderAddxSubx(ops)
	case cpu.KindCmpm:
		return "cmpm" + ops.Size.Suffix(), fmt.Sprintf("(a%d)+,(a%d)+", ops.Reg2, ops.Reg)
	case cpu.KindSimple:
		return renderSimple(ops), ""
	case cpu.KindStop:
		return "stop", fmt.Sprintf("#$%x", uint16(ops.Data))
	case cpu.KindSwap:
		return "swap", fmt.Sprintf("d%d", ops.Reg)
	}
	return "dc.w", fmt.Sprintf("$%04x", 0)
}

func renderEAOnly(ops cpu.Operands) (string, string) {
	switch ops.OpBase {
	case cpu.OPCLR:
		return "clr" + ops.Size.Suffix(), formatEA(ops.EA, ops.Size)
	case cpu.OPNOT:
		return "not" + ops.Size.Suffix(), formatEA(ops.EA, ops.Size)
	case cpu.OPNEG:
		return "neg" + ops.Size.Suffix(), formatEA(ops.EA, ops.Size)
	case cpu.OPNEGX:
		return "negx" + ops.Size.Suffix(), formatEA(ops.EA, ops.Size)
	case cpu.OPTST:
		return "tst" + ops.Size.Suffix(), formatEA(ops.EA, ops.Size)
	case cpu.OPNBCD:
		return "nbcd", formatEA(ops.EA, cpu.SizeByte)
	case cpu.OPTAS:
		return "tas", formatEA(ops.EA, cpu.SizeByte)
	default: // Scc
		return fmt.Sprintf("s%s", conditionNames[ops.Condition]), formatEA(ops.EA, cpu.SizeByte)
	}
}

func renderEAToReg(ops cpu.Operands) (string, string) {
	mn := "or"
	switch ops.OpBase {
	case cpu.OPADD:
		mn = "add"
	case cpu.OPSUB:
		mn = "sub"
	case cpu.OPAND:
		mn = "and"
	case cpu.OPEOR:
		mn = "eor"
	case cpu.OPCMP:
		mn = "cmp"
	}
	mn += ops.Size.Suffix()
	if ops.Direction == cpu.DirRegToEA {
		return mn, fmt.Sprintf("d%d,%s", ops.Reg, formatEA(ops.EA, ops.Size))
	}
	return mn, fmt.Sprintf("%s,d%d", formatEA(ops.EA, ops.Size), ops.Reg)
}

func renderMovea(ops cpu.Operands) (string, string) {
	mn := "movea"
	switch ops.OpBase {
	case cpu.OPADDA:
		mn = "adda"
	case cpu.OPSUBA:
		mn = "suba"
	case cpu.OPCMPA:
		mn = "cmpa"
	}
	return mn + ops.Size.Suffix(), fmt.Sprintf("%s,a%d", formatEA(ops.EA, ops.Size), ops.Reg)
}

func renderImmediateToEA(ops cpu.Operands) (string, string) {
	switch ops.OpBase {
	case cpu.OPANDItoCCR:
		return "andi", fmt.Sprintf("#%d,ccr", uint8(ops.Data))
	case cpu.OPORItoCCR:
		return "ori", fmt.Sprintf("#%d,ccr", uint8(ops.Data))
	case cpu.OPEORItoCCR:
		return "eori", fmt.Sprintf("#%d,ccr", uint8(ops.Data))
	case cpu.OPANDItoSR:
		return "andi", fmt.Sprintf("#$%x,sr", uint16(ops.Data))
	case cpu.OPORItoSR:
		return "ori", fmt.Sprintf("#$%x,sr", uint16(ops.Data))
	case cpu.OPEORItoSR:
		return "eori", fmt.Sprintf("#$%x,sr", uint16(ops.Data))
	}
	mn := "ori"
	switch uint16(ops.OpBase) {
	case cpu.OPANDI:
		mn = "andi"
	case cpu.OPSUBI:
		mn = "subi"
	case cpu.OPADDI:
		mn = "addi"
	case cpu.OPEORI:
		mn = "eori"
	case cpu.OPCMPI:
		mn = "cmpi"
	}
	return mn + ops.Size.Suffix(), fmt.Sprintf("#%d,%s", ops.Data, formatEA(ops.EA, ops.Size))
}

func renderMovem(ops cpu.Operands) (string, string) {
	mn := "movem" + ops.Size.Suffix()
	mask := ops.RegList
	if ops.EA.Mode == uint8(cpu.ModeAddrPreDec) {
		// -(An) encodes its register list bit0=A7,...,bit15=D0; reversing
		// all 16 bits (its own inverse) gets back to the canonical
		// D0-D7/A0-A7 order movemMaskToList expects.
		mask = bits.Reverse16(mask)
	}
	list := movemMaskToList(mask)
	if ops.Direction == cpu.DirEAToReg {
		return mn, fmt.Sprintf("%s,%s", formatEA(ops.EA, ops.Size), list)
	}
	return mn, fmt.Sprintf("%s,%s", list, formatEA(ops.EA, ops.Size))
}

func renderMovep(ops cpu.Operands) (string, string) {
	mem := fmt.Sprintf("(%s,a%d)", formatDisp16(int16(ops.EA.Extra)), ops.EA.Reg)
	reg := fmt.Sprintf("d%d", ops.Reg)
	mn := "movep" + ops.Size.Suffix()
	if ops.Direction == cpu.DirRegToEA {
		return mn, fmt.Sprintf("%s,%s", reg, mem)
	}
	return mn, fmt.Sprintf("%s,%s", mem, reg)
}

func renderBranch(ops cpu.Operands) (string, string) {
	disp := fmt.Sprintf("%s", formatDisp(int64(ops.Data)))
	switch ops.Condition {
	case 0:
		return "bra", disp
	case 1:
		return "bsr", disp
	default:
		return fmt.Sprintf("b%s", conditionNames[ops.Condition]), disp
	}
}

func renderShift(ops cpu.Operands) (string, string) {
	mn := shiftMnemonic(ops.OpBase)
	if ops.Kind == cpu.KindShiftRotateMem {
		return mn + ".w", formatEA(ops.EA, cpu.SizeWord)
	}
	mn += ops.Size.Suffix()
	if ops.Direction == cpu.DirRegToEA {
		return mn, fmt.Sprintf("d%d,d%d", ops.Reg2, ops.Reg)
	}
	return mn, fmt.Sprintf("#%d,d%d", ops.Data, ops.Reg)
}

func shiftMnemonic(base uint16) string {
	switch base {
	case cpu.OPASL:
		return "asl"
	case cpu.OPASR:
		return "asr"
	case cpu.OPLSL:
		return "lsl"
	case cpu.OPLSR:
		return "lsr"
	case cpu.OPROL:
		return "rol"
	case cpu.OPROR:
		return "ror"
	case cpu.OPROXL:
		return "roxl"
	default: // cpu.OPROXR
		return "roxr"
	}
}

func renderBitOp(ops cpu.Operands) (string, string) {
	mn := "btst"
	switch ops.OpBase {
	case cpu.OPBCHG:
		mn = "bchg"
	case cpu.OPBCLR:
		mn = "bclr"
	case cpu.OPBSET:
		mn = "bset"
	}
	if ops.Direction == cpu.DirRegToEA {
		// Dynamic form: long on a data register, byte on memory.
		if ops.EA.Mode == uint8(cpu.ModeData) {
			mn += ".l"
		} else {
			mn += ".b"
		}
		return mn, fmt.Sprintf("d%d,%s", ops.Reg, formatEA(ops.EA, cpu.SizeByte))
	}
	return mn, fmt.Sprintf("#%d,%s", ops.Data, formatEA(ops.EA, cpu.SizeByte))
}

func renderExg(ops cpu.Operands) string {
	switch ops.OpBase {
	case 1:
		return fmt.Sprintf("a%d,a%d", ops.Reg, ops.Reg2)
	case 2:
		return fmt.Sprintf("d%d,a%d", ops.Reg, ops.Reg2)
	default:
		return fmt.Sprintf("d%d,d%d", ops.Reg, ops.Reg2)
	}
}

func renderMoveToFromSR(ops cpu.Operands) (string, string) {
	switch ops.OpBase {
	case cpu.OPMOVEFromSR:
		return "move", fmt.Sprintf("sr,%s", formatEA(ops.EA, cpu.SizeWord))
	case cpu.OPMOVEToSR:
		return "move", fmt.Sprintf("%s,sr", formatEA(ops.EA, cpu.SizeWord))
	case cpu.OPMOVEToCCR:
		return "move", fmt.Sprintf("%s,ccr", formatEA(ops.EA, cpu.SizeWord))
	case cpu.OPMOVEFromUSP:
		return "move.l", fmt.Sprintf("usp,a%d", ops.Reg)
	default: // OPMOVEToUSP
		return "move.l", fmt.Sprintf("a%d,usp", ops.Reg)
	}
}

func renderBcdOperands(ops cpu.Operands) string {
	if ops.OpBase == 0 {
		return fmt.Sprintf("d%d,d%d", ops.Reg2, ops.Reg)
	}
	return fmt.Sprintf("-(a%d),-(a%d)", ops.Reg2, ops.Reg)
}

func renderAddxSubx(ops cpu.Operands) (string, string) {
	mn := "subx"
	if ops.OpBase == cpu.OPADDX {
		mn = "addx"
	}
	mn += ops.Size.Suffix()
	if ops.Direction == cpu.DirRegToEA {
		return mn, fmt.Sprintf("-(a%d),-(a%d)", ops.Reg2, ops.Reg)
	}
	return mn, fmt.Sprintf("d%d,d%d", ops.Reg2, ops.Reg)
}

func renderSimple(ops cpu.Operands) string {
	switch ops.OpBase {
	case cpu.OPNOP:
		return "nop"
	case cpu.OPRTS:
		return "rts"
	case cpu.OPRTE:
		return "rte"
	case cpu.OPRTR:
		return "rtr"
	case cpu.OPTRAPV:
		return "trapv"
	case cpu.OPILLEGAL:
		return "illegal"
	default: // OPRESET
		return "reset"
	}
}

// formatEA renders an already-resolved effective address field the way
// decode.go produced it: Extra/ExtWord/ExtPC carry whatever the original
// extension words held, so no bytes are re-read here.
func formatEA(f cpu.EAField, sz cpu.Size) string {
	switch uint16(f.Mode) {
	case cpu.ModeData:
		return fmt.Sprintf("d%d", f.Reg)
	case cpu.ModeAddr:
		return fmt.Sprintf("a%d", f.Reg)
	case cpu.ModeAddrInd:
		return fmt.Sprintf("(a%d)", f.Reg)
	case cpu.ModeAddrPostInc:
		return fmt.Sprintf("(a%d)+", f.Reg)
	case cpu.ModeAddrPreDec:
		return fmt.Sprintf("-(a%d)", f.Reg)
	case cpu.ModeAddrDisp:
		return fmt.Sprintf("(%s,a%d)", formatDisp16(int16(f.Extra)), f.Reg)
	case cpu.ModeAddrIndex:
		return fmt.Sprintf("(%s,a%d,%s)", formatDisp8(int8(f.ExtWord&0xFF)), f.Reg, indexRegName(f.ExtWord))
	case cpu.ModeOther:
		switch uint16(f.Reg) {
		case cpu.RegAbsShort:
			return fmt.Sprintf("$%x.w", uint16(f.Extra))
		case cpu.RegAbsLong:
			return fmt.Sprintf("$%x.l", f.Extra)
		case cpu.RegPCDisp:
			return fmt.Sprintf("(%s,pc)", formatDisp16(int16(f.Extra)))
		case cpu.RegPCIndex:
			return fmt.Sprintf("(%s,pc,%s)", formatDisp8(int8(f.ExtWord&0xFF)), indexRegName(f.ExtWord))
		case cpu.RegImmediate:
			return fmt.Sprintf("#%d", int32(f.Extra))
		}
	}
	return fmt.Sprintf("(ea mode=%d reg=%d)", f.Mode, f.Reg)
}

func indexRegName(ext uint16) string {
	idx := (ext >> 12) & 7
	sizeChar := "w"
	if ext&0x0800 != 0 {
		sizeChar = "l"
	}
	regType := "d"
	if ext&0x8000 != 0 {
		regType = "a"
	}
	return fmt.Sprintf("%s%d.%s", regType, idx, sizeChar)
}
