package cpu

// SCC68070 is Philips/Signetics' CMOS 68000 core used in the CD-i player
// family: same instruction set and programmer's model as the MC68000,
// but a different bus implementation (16-bit external, with on-chip
// peripherals) gives it different addressing-mode and exception timings,
// and its documented exception frame additionally carries the faulting
// opcode word.
type SCC68070 struct{}

var _ Variant = SCC68070{}

func (SCC68070) Name() string { return "SCC68070" }

func (SCC68070) StackFormatKind() StackFormat { return StackFormatSCC68070 }

func (SCC68070) ResetCycles() int { return 64 }

func (SCC68070) ExceptionCycles(vector uint8) int {
	switch {
	case vector == vecBusError || vector == vecAddressError:
		return 68
	case vector >= vecAutoVector1 && vector <= vecAutoVector1+6:
		return 52
	case vector >= vecTrap0 && vector < vecTrap0+16:
		return 42
	default:
		return 42
	}
}

func (SCC68070) EAFetchCycles(mode, reg uint8, sz Size) int {
	return mc68000EACycles(mode, reg, sz, scc68070EAFetchBase)
}

func (SCC68070) EAWriteCycles(mode, reg uint8, sz Size) int {
	return mc68000EACycles(mode, reg, sz, scc68070EAWriteBase)
}

func (SCC68070) InstructionBaseCycles(family string, sz Size, fallback int) int {
	if t, ok := scc68070InstructionCycles[family]; ok {
		if sz == SizeLong {
			return t.long
		}
		return t.wordByte
	}
	// No SCC68070-specific entry: fall back to the MC68000 table scaled
	// for the narrower on-chip bus, rather than the caller's raw guess.
	if t, ok := mc68000InstructionCycles[family]; ok {
		if sz == SizeLong {
			return t.long + scc68070BusPenalty
		}
		return t.wordByte + scc68070BusPenalty
	}
	return fallback
}

func (SCC68070) SRReadWidth() Size { return SizeWord }

// scc68070BusPenalty approximates the SCC68070's extra bus-request
// latency relative to the MC68000's external bus, per the datasheet's
// bus cycle timing section. It is deliberately coarse: a flat per-access
// penalty rather than a full per-instruction retable, see DESIGN.md.
const scc68070BusPenalty = 2

// scc68070EAFetchBase / scc68070EAWriteBase start from the MC68000 table
// and add the bus penalty to every memory-referencing mode (register
// direct modes stay free).
var scc68070EAFetchBase = scc68070ScaleTable(mc68000EAFetchBase)
var scc68070EAWriteBase = scc68070ScaleTable(mc68000EAWriteBase)

func scc68070ScaleTable(base [8][8]int) [8][8]int {
	var out [8][8]int
	for mode := range base {
		for reg := range base[mode] {
			v := base[mode][reg]
			if v > 0 {
				v += scc68070BusPenalty
			}
			out[mode][reg] = v
		}
	}
	return out
}

// scc68070InstructionCycles holds only the families whose timing differs
// materially from the scaled MC68000 fallback above: multiply and divide
// run noticeably faster on the SCC68070's hardware sequencer, and RESET
// has its own fixed count.
var scc68070InstructionCycles = map[string]instrCycles{
	"muls": {58, 58},
	"mulu": {58, 58},
	"divs": {130, 130},
	"divu": {118, 118},
	"reset": {100, 100},
}
