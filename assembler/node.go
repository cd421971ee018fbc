package assembler

// NodeType defines the type of an assembly node.
type NodeType int

const (
	// NodeInstruction type.
	NodeInstruction NodeType = iota
	// NodeLabel type.
	NodeLabel
	// NodeDirective type.
	NodeDirective
)

// Node represents one parsed element from the assembly source.
type Node struct {
	Type     NodeType
	Label    string
	Mnemonic Mnemonic
	Operands []Operand
	Parts    []string
	Size     uint32 // Still used to track size between passes
}

// branchMnemonics lists every instruction whose own encoding depends on a
// size decision (short vs. word displacement) made ahead of generation,
// rather than one derivable purely from its operands.
var branchMnemonics = map[string]bool{
	"bra": true, "bsr": true, "bhi": true, "bls": true, "bcc": true,
	"bcs": true, "bne": true, "beq": true, "bvc": true, "bvs": true,
	"bpl": true, "bmi": true, "bge": true, "blt": true, "bgt": true, "ble": true,
}

// GetSize computes a node's encoded byte size for the label-resolution
// convergence loop in Assemble. Directives delegate to getDirectiveSize.
// Branches delegate to getSizeBra, since assembleBra needs the size
// decision handed to it rather than deriving it from the encoded result.
// Every other instruction is sized by generating its code and measuring
// it, the same path the final code-generation pass takes.
func (n *Node) GetSize(asm *Assembler, pc uint32) (uint32, error) {
	if n.Type == NodeDirective {
		return asm.getDirectiveSize(n, pc)
	}
	if branchMnemonics[n.Mnemonic.Value] {
		return getSizeBra(n, asm, pc), nil
	}
	code, err := asm.generateInstructionCode(n, pc)
	if err != nil {
		return 0, err
	}
	return uint32(len(code)) * 2, nil
}
