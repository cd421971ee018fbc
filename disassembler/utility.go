package disassembler

import (
	"fmt"
	"strings"
)

// SizeSuffix returns the canonical size suffix (.b, .w, .l).
func SizeSuffix(bits uint16) string {
	switch bits {
	case 0:
		return ".b"
	case 1:
		return ".w"
	case 2:
		return ".l"
	default:
		return ""
	}
}

// movemMaskToList converts a register mask into a canonical, human-readable string list (e.g., "d0-d3/a0/a6").
func movemMaskToList(mask uint16) string {
	dRegs := make([]int, 0, 8)
	aRegs := make([]int, 0, 8)

	// The mask is always encoded in the same canonical order:
	// Bits 0-7 -> D0-D7
	// Bits 8-15 -> A0-A7
	for i := 0; i < 8; i++ {
		if (mask & (1 << i)) != 0 {
			dRegs = append(dRegs, i)
		}
		if (mask & (1 << (i + 8))) != 0 {
			aRegs = append(aRegs, i)
		}
	}

	var parts []string
	if len(dRegs) > 0 {
		parts = append(parts, formatRegRange("d", dRegs)...)
	}
	if len(aRegs) > 0 {
		parts = append(parts, formatRegRange("a", aRegs)...)
	}

	return strings.Join(parts, "/")
}

// formatRegRange is a helper to turn a list of register numbers into ranges.
func formatRegRange(prefix string, regs []int) []string {
	if len(regs) == 0 {
		return nil
	}
	var parts []string
	start, end := regs[0], regs[0]

	for i := 1; i < len(regs); i++ {
		if regs[i] == end+1 {
			end = regs[i]
		} else {
			if start == end {
				parts = append(parts, fmt.Sprintf("%s%d", prefix, start))
			} else {
				parts = append(parts, fmt.Sprintf("%s%d-%s%d", prefix, start, prefix, end))
			}
			start, end = regs[i], regs[i]
		}
	}
	if start == end {
		parts = append(parts, fmt.Sprintf("%s%d", prefix, start))
	} else {
		parts = append(parts, fmt.Sprintf("%s%d-%s%d", prefix, start, prefix, end))
	}
	return parts
}

func formatDisp8(v int8) string {
	if v >= -9 && v <= 9 {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("$%x", uint8(v))
}

func formatDisp16(v int16) string {
	if v >= -9 && v <= 9 {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("$%x", uint16(v))
}

func formatDisp(v int64) string {
	if v >= 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

// labelName generates a label string based on the address and its context.
func labelName(addr uint32, labelType LabelType) string {
	prefix := "loc_"
	switch labelType {
	case SubroutineEntry:
		prefix = "sub_"
	}
	return fmt.Sprintf("%s%04X", prefix, addr)
}
