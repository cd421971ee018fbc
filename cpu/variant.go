package cpu

// StackFormat selects the exception stack frame layout pushed by the
// exception engine (exception.go).
type StackFormat uint8

const (
	// StackFormatShort is the classic MC68000 frame: PC (long), SR (word)
	// for ordinary exceptions, and the 7-word long frame for bus/address
	// errors.
	StackFormatShort StackFormat = iota
	// StackFormatSCC68070 extends the bus/address error long frame with
	// the faulting opcode word, as documented for the SCC68070 since its
	// v0.2.2 exception format revision.
	StackFormatSCC68070
)

// Variant is the CPU-variant descriptor referenced throughout spec.md:
// the decode/execute/exception core is identical between variants, only
// timing and stack-frame shape differ. Implementations are stateless value
// types, not a base class — callers select MC68000{} or SCC68070{}, or
// supply their own.
type Variant interface {
	// Name identifies the variant for diagnostics.
	Name() string

	// StackFormatKind selects the exception stack frame layout.
	StackFormatKind() StackFormat

	// ResetCycles is the time taken to process the Reset vector.
	ResetCycles() int

	// ExceptionCycles returns the processing latency (in addition to the
	// stack push and vector fetch bus cycles already accounted for by the
	// exception engine) for the given vector number.
	ExceptionCycles(vector uint8) int

	// EAFetchCycles returns the addressing-mode calculation time for a
	// source (read) operand. Register-direct modes return 0.
	EAFetchCycles(mode, reg uint8, sz Size) int

	// EAWriteCycles returns the addressing-mode calculation time for a
	// destination (write) operand.
	EAWriteCycles(mode, reg uint8, sz Size) int

	// InstructionBaseCycles returns the base execution time of the
	// instruction family identified by opcode, before adding any EA
	// timing. Families not present in the table return the given
	// fallback unchanged, so callers can layer a default on top.
	InstructionBaseCycles(family string, sz Size, fallback int) int

	// SRReadWidth is the width used when materializing "MOVE from SR" /
	// "MOVE from CCR" results: the MC68000 only guarantees the low byte
	// of the CCR-only variant, exposing indeterminate upper bits, while
	// the SCC68070 always returns the full word. This core makes the
	// upper byte deterministic either way, driven by this method.
	SRReadWidth() Size
}
