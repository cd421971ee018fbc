package disassembler

import (
	"strconv"
	"strings"
)

// isBranchMnemonic checks if an instruction is a form of branch.
func isBranchMnemonic(val string) bool {
	switch val {
	case "bra", "bsr", "bhi", "bls", "bcc", "bcs", "bne", "beq", "bvc", "bvs", "bpl", "bmi", "bge", "blt", "bgt", "ble":
		return true
	default:
		return strings.HasPrefix(val, "db")
	}
}

// parseBranchOffset is more robust than naive fmt.Sscanf.
func parseBranchOffset(tok string) int32 {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0
	}
	if strings.HasPrefix(tok, "loc_") {
		return 0
	}
	if tok[0] == '+' {
		tok = tok[1:]
	}
	i, err := strconv.ParseInt(tok, 0, 64)
	if err != nil {
		return 0
	}
	return int32(i)
}
