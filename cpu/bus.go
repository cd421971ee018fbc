package cpu

// Bus is the host-provided memory map the core reads and writes.
// Addresses are 24 bits wide; the core masks every address before calling
// through to the bus. Word and Long accesses to an odd address are
// rejected by the core itself (as an Address Error) before Read/Write is
// ever called — the bus only needs to worry about out-of-range accesses.
//
// AccessError reports whether the access failed at the bus level (e.g. no
// device mapped at that address). A failing Read's returned value is
// ignored by the core.
type Bus interface {
	ReadByte(addr uint32) (uint8, bool)
	ReadWord(addr uint32) (uint16, bool)
	ReadLong(addr uint32) (uint32, bool)
	WriteByte(addr uint32, v uint8) bool
	WriteWord(addr uint32, v uint16) bool
	WriteLong(addr uint32, v uint32) bool

	// ResetInstruction is invoked by the RESET opcode. The core does not
	// interpret its effect; it is purely a signal to the host to reset
	// whatever peripherals it is modeling.
	ResetInstruction()
}

// CycleBus is optionally implemented by a Bus that needs to know the
// current cycle count on every access, e.g. to model DMA/device bus
// contention. If a Bus also implements CycleBus, the core prefers the
// cycle-aware methods.
type CycleBus interface {
	Bus
	ReadByteCycle(cycle uint64, addr uint32) (uint8, bool)
	ReadWordCycle(cycle uint64, addr uint32) (uint16, bool)
	ReadLongCycle(cycle uint64, addr uint32) (uint32, bool)
	WriteByteCycle(cycle uint64, addr uint32, v uint8) bool
	WriteWordCycle(cycle uint64, addr uint32, v uint16) bool
	WriteLongCycle(cycle uint64, addr uint32, v uint32) bool
}
