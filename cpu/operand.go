package cpu

// Instruction is the allocation-light decoded form produced by decode.go.
// It carries no side effects of its own: building one never touches
// registers, memory, or flags, beyond consuming the bytes decode.go read
// to build it. Both the execution core (exec_*.go) and the disassembler
// package consume the same Instruction value, so neither can drift from
// the other's idea of what an opcode means.
type Instruction struct {
	Opcode   uint16
	PC       uint32
	Operands Operands
}

// OperandKind discriminates the shape Operands holds. Instruction
// families that share an addressing pattern share a Kind; OpBase and
// Condition disambiguate within it (e.g. KindEAToReg covers ADD, SUB,
// AND, OR, EOR and CMP alike).
type OperandKind uint8

const (
	KindNone OperandKind = iota
	KindEAOnly            // CLR/NOT/NEG/NEGX/TST/NBCD/TAS/Scc/single-operand EA
	KindEAToReg           // <ea>,Dn  or  Dn,<ea> (Direction selects which)
	KindEAToEA            // MOVE <ea>,<ea>
	KindMovea             // MOVEA <ea>,An
	KindImmediateToEA     // ANDI/ORI/EORI/ADDI/SUBI/CMPI #imm,<ea>
	KindQuickToEA         // ADDQ/SUBQ #data,<ea>
	KindMoveq             // MOVEQ #data,Dn
	KindMovem             // MOVEM list,<ea> / <ea>,list
	KindMovep             // MOVEP Dn,d16(An) / d16(An),Dn
	KindBranch            // BRA/BSR/Bcc disp
	KindDBcc              // DBcc Dn,disp
	KindShiftRotateReg    // shift/rotate, count or Dn in register, Dn target
	KindShiftRotateMem    // shift/rotate by 1 on a memory <ea>
	KindBitOp             // BTST/BCHG/BCLR/BSET, static (#imm) or dynamic (Dn)
	KindExg               // EXG Rx,Ry
	KindExt               // EXT Dn
	KindLink              // LINK An,#disp
	KindUnlk              // UNLK An
	KindTrap              // TRAP #n
	KindJump              // JMP/JSR <ea>
	KindLea               // LEA <ea>,An
	KindPea               // PEA <ea>
	KindMoveToFromSR      // MOVE to/from SR/CCR, MOVE to/from USP
	KindMulDiv            // MULS/MULU/DIVS/DIVU <ea>,Dn
	KindChk               // CHK <ea>,Dn
	KindAbcd              // ABCD Dy,Dx or -(Ay),-(Ax)
	KindSbcd              // SBCD Dy,Dx or -(Ay),-(Ax)
	KindAddxSubx          // ADDX/SUBX Dy,Dx or -(Ay),-(Ax)
	KindCmpm              // CMPM (Ay)+,(Ax)+
	KindSimple            // NOP/RTS/RTR/RTE/TRAPV/ILLEGAL/RESET, no operands
	KindStop              // STOP #imm
	KindSwap              // SWAP Dn
)

// Direction distinguishes which side of an EA/register pair is the
// source for instruction families that can run either way (arithmetic,
// logical, and MOVEM's list/memory order).
type Direction uint8

const (
	DirEAToReg Direction = iota // <ea> is the source, register is the destination
	DirRegToEA                  // register is the source, <ea> is the destination
)

// EAField is a decoded effective address operand: the raw mode/register
// fields from the opcode word, plus whatever the addressing mode needed
// out of the extension words (already consumed by decode.go).
type EAField struct {
	Mode uint8 // 0-7, the three-bit mode field
	Reg  uint8 // 0-7, the three-bit register field (or the derived RegAbsShort etc. for mode 7)

	// Extra holds mode-dependent static data decode.go already read:
	// the sign-extended displacement for d16(An)/d16(PC), the absolute
	// address for (xxx).W/(xxx).L, or the immediate value for #<data>.
	Extra uint32

	// ExtWord is the raw brief extension word for indexed modes
	// (d8(An,Xn) and d8(PC,Xn)), kept whole so resolver.go can pull out
	// the index register, size and scale, and so the disassembler can
	// render it without re-deriving those fields.
	ExtWord uint16

	// ExtPC is the address of the displacement/extension word itself,
	// for the two PC-relative modes: the 68000 adds d16/d8 to the
	// address of that word, not to the start of the instruction.
	ExtPC uint32
}

// Operands is the tagged union of every instruction's decoded operands.
// Only the fields relevant to Kind are meaningful; the rest are zero.
type Operands struct {
	Kind      OperandKind
	Size      Size
	Direction Direction

	EA  EAField // primary (often the only) effective address
	EA2 EAField // secondary effective address, MOVE <ea>,<ea> only

	Reg  uint8 // primary register operand (Dn/An, or Dx for two-register forms)
	Reg2 uint8 // secondary register operand (Dy for EXG/ABCD/SBCD/ADDX/SUBX)

	Condition uint8 // 4-bit condition code, Bcc/Scc/DBcc

	Data int32 // immediate, quick data, trap number, or branch/DBcc displacement

	RegList uint16 // MOVEM register mask, bit order per the EA's direction

	OpBase uint16 // the base opcode decode.go matched, disambiguates within a Kind
}
