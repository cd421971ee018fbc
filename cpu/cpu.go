package cpu

// CPU is a decode/execute/exception core shared by every supported
// variant. A CPU value is not safe for concurrent use; callers owning
// multiple cores (e.g. a multiprocessor host) create one CPU per core.
type CPU struct {
	d [8]uint32
	a [8]uint32

	usp uint32
	ssp uint32
	pc  uint32
	sr  uint16

	bus      Bus
	cycleBus CycleBus
	variant  Variant

	cycle uint64

	pending    []PendingException
	faultDepth int
	lastFault  busFault

	curOpcode uint16
	curPC     uint32

	stopped bool
	halted  bool
}

// Option configures New.
type Option func(*cpuConfig)

type cpuConfig struct {
	resetOnNew bool
}

// WithoutReset skips the implicit hardware reset sequence New otherwise
// runs, leaving every register zeroed. Intended for callers that load a
// register snapshot themselves (tests, Deserialize, a disassembler-only
// harness that never calls Step).
func WithoutReset() Option {
	return func(cfg *cpuConfig) { cfg.resetOnNew = false }
}

// New creates a CPU wired to bus and configured for variant. Unless
// WithoutReset is given, it immediately runs the hardware reset sequence:
// SSP and PC are loaded from the variant's reset vectors (0 and 1) and SR
// is set to supervisor mode with interrupts masked at level 7, exactly as
// the real hardware does when RESET* is asserted.
func New(bus Bus, variant Variant, opts ...Option) *CPU {
	c := &CPU{bus: bus, variant: variant}
	if cb, ok := bus.(CycleBus); ok {
		c.cycleBus = cb
	}

	cfg := cpuConfig{resetOnNew: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.resetOnNew {
		c.Reset()
	}
	return c
}

// Reset runs the hardware reset sequence: it discards any pending
// exceptions, reloads SSP and PC from the vector table, and resets SR.
// It also calls the bus's ResetInstruction so peripheral state clears
// along with the core, mirroring what happens when the RESET opcode
// executes, since both paths assert the same hardware signal.
func (c *CPU) Reset() {
	c.pending = c.pending[:0]
	c.faultDepth = 0
	c.stopped = false
	c.halted = false

	c.sr = srResetValue

	ssp, ok := c.readBusLong(uint32(vecResetSSP) * 4)
	if ok {
		c.ssp = ssp
		c.a[7] = ssp
	}
	pc, ok := c.readBusLong(uint32(vecResetPC) * 4)
	if ok {
		c.pc = pc
	}

	c.bus.ResetInstruction()
}

// Variant returns the variant descriptor the CPU was constructed with.
func (c *CPU) Variant() Variant { return c.variant }

// Halted reports whether the core has halted after a double bus fault.
// A halted core no longer fetches instructions; only Reset clears it.
func (c *CPU) Halted() bool { return c.halted }

// Stopped reports whether the core is parked in a STOP instruction,
// waiting for an interrupt or reset to resume.
func (c *CPU) Stopped() bool { return c.stopped }

// Registers is an immutable snapshot of the programmer's model, used by
// Registers()/SetState() and by disassembler/monitor tooling that wants
// to display or restore CPU state without reaching into CPU internals.
type Registers struct {
	D   [8]uint32
	A   [8]uint32
	USP uint32
	SSP uint32
	PC  uint32
	SR  uint16
}

// StatusFlags decomposes a status register into its named bits.
type StatusFlags struct {
	Trace      bool
	Supervisor bool
	IntMask    uint8
	Extend     bool
	Negative   bool
	Zero       bool
	Overflow   bool
	Carry      bool
}

// Flags decomposes SR into StatusFlags.
func (r Registers) Flags() StatusFlags {
	return StatusFlags{
		Trace:      r.SR&SRT != 0,
		Supervisor: r.SR&SRS != 0,
		IntMask:    uint8((r.SR & SRIMask) >> 8),
		Extend:     r.SR&SRX != 0,
		Negative:   r.SR&SRN != 0,
		Zero:       r.SR&SRZ != 0,
		Overflow:   r.SR&SRV != 0,
		Carry:      r.SR&SRC != 0,
	}
}

// Registers snapshots the current programmer's model. A7 is reported
// under whichever of USP/SSP is not currently active in A, so both
// stack pointers are always visible regardless of CPU mode.
func (c *CPU) Registers() Registers {
	r := Registers{D: c.d, A: c.a, PC: c.pc, SR: c.sr}
	if c.supervisor() {
		r.SSP = c.a[7]
		r.USP = c.usp
	} else {
		r.USP = c.a[7]
		r.SSP = c.ssp
	}
	return r
}

// SetState loads a Registers snapshot, taking the same care with A7/USP/
// SSP that Registers() does when reading it back.
func (c *CPU) SetState(r Registers) {
	c.d = r.D
	c.a = r.A
	c.usp = r.USP
	c.ssp = r.SSP
	c.pc = r.PC
	c.sr = r.SR & srValidMask
	if c.supervisor() {
		c.a[7] = c.ssp
	} else {
		c.a[7] = c.usp
	}
}

// maskAddr enforces the 24-bit address bus shared by every variant this
// core models.
func (c *CPU) maskAddr(addr uint32) uint32 {
	return addr & 0x00FFFFFF
}

func (c *CPU) faultAddress(addr uint32, write bool) {
	c.lastFault = busFault{Address: addr, Instruction: c.curOpcode, Opcode: c.curOpcode, Write: write}
	c.QueueException(vecAddressError)
}

func (c *CPU) faultBus(addr uint32, write bool) {
	c.lastFault = busFault{Address: addr, Instruction: c.curOpcode, Opcode: c.curOpcode, Write: write}
	c.QueueException(vecBusError)
}

func (c *CPU) readBusByte(addr uint32) (uint8, bool) {
	addr = c.maskAddr(addr)
	var v uint8
	var ok bool
	if c.cycleBus != nil {
		v, ok = c.cycleBus.ReadByteCycle(c.cycle, addr)
	} else {
		v, ok = c.bus.ReadByte(addr)
	}
	if !ok {
		c.faultBus(addr, false)
	}
	return v, ok
}

func (c *CPU) readBusWord(addr uint32) (uint16, bool) {
	addr = c.maskAddr(addr)
	if addr&1 != 0 {
		c.faultAddress(addr, false)
		return 0, false
	}
	var v uint16
	var ok bool
	if c.cycleBus != nil {
		v, ok = c.cycleBus.ReadWordCycle(c.cycle, addr)
	} else {
		v, ok = c.bus.ReadWord(addr)
	}
	if !ok {
		c.faultBus(addr, false)
	}
	return v, ok
}

func (c *CPU) readBusLong(addr uint32) (uint32, bool) {
	addr = c.maskAddr(addr)
	if addr&1 != 0 {
		c.faultAddress(addr, false)
		return 0, false
	}
	var v uint32
	var ok bool
	if c.cycleBus != nil {
		v, ok = c.cycleBus.ReadLongCycle(c.cycle, addr)
	} else {
		v, ok = c.bus.ReadLong(addr)
	}
	if !ok {
		c.faultBus(addr, false)
	}
	return v, ok
}

func (c *CPU) writeBusByte(addr uint32, val uint8) bool {
	addr = c.maskAddr(addr)
	var ok bool
	if c.cycleBus != nil {
		ok = c.cycleBus.WriteByteCycle(c.cycle, addr, val)
	} else {
		ok = c.bus.WriteByte(addr, val)
	}
	if !ok {
		c.faultBus(addr, true)
	}
	return ok
}

func (c *CPU) writeBusWord(addr uint32, val uint16) bool {
	addr = c.maskAddr(addr)
	if addr&1 != 0 {
		c.faultAddress(addr, true)
		return false
	}
	var ok bool
	if c.cycleBus != nil {
		ok = c.cycleBus.WriteWordCycle(c.cycle, addr, val)
	} else {
		ok = c.bus.WriteWord(addr, val)
	}
	if !ok {
		c.faultBus(addr, true)
	}
	return ok
}

func (c *CPU) writeBusLong(addr uint32, val uint32) bool {
	addr = c.maskAddr(addr)
	if addr&1 != 0 {
		c.faultAddress(addr, true)
		return false
	}
	var ok bool
	if c.cycleBus != nil {
		ok = c.cycleBus.WriteLongCycle(c.cycle, addr, val)
	} else {
		ok = c.bus.WriteLong(addr, val)
	}
	if !ok {
		c.faultBus(addr, true)
	}
	return ok
}

// fetchPC reads the word at PC and advances PC by 2. Every instruction
// and extension word is consumed this way, so decode.go never computes
// an address itself.
func (c *CPU) fetchPC() (uint16, bool) {
	w, ok := c.readBusWord(c.pc)
	c.pc += 2
	return w, ok
}

// fetchPCLong reads two consecutive words as a big-endian long, matching
// the 68000's word-order-first memory layout.
func (c *CPU) fetchPCLong() (uint32, bool) {
	hi, ok := c.fetchPC()
	if !ok {
		return 0, false
	}
	lo, ok := c.fetchPC()
	if !ok {
		return 0, false
	}
	return uint32(hi)<<16 | uint32(lo), true
}

// peekPC reads the word at PC without advancing it, used by the
// scheduler's PeekNextWord and by trace/disassembly tooling.
func (c *CPU) peekPC() (uint16, bool) {
	return c.readBusWord(c.pc)
}

func (c *CPU) pushWord(v uint16) bool {
	c.a[7] -= 2
	return c.writeBusWord(c.a[7], v)
}

func (c *CPU) pushLong(v uint32) bool {
	c.a[7] -= 4
	return c.writeBusLong(c.a[7], v)
}

func (c *CPU) popWord() (uint16, bool) {
	v, ok := c.readBusWord(c.a[7])
	c.a[7] += 2
	return v, ok
}

func (c *CPU) popLong() (uint32, bool) {
	v, ok := c.readBusLong(c.a[7])
	c.a[7] += 4
	return v, ok
}
