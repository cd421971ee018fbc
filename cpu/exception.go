package cpu

// Exception vector numbers, as indices into the 256-entry vector table
// (each entry is a 4-byte long word address).
const (
	vecResetSSP       uint8 = 0
	vecResetPC        uint8 = 1
	vecBusError       uint8 = 2
	vecAddressError   uint8 = 3
	vecIllegalInstr   uint8 = 4
	vecZeroDivide     uint8 = 5
	vecCHKInstr       uint8 = 6
	vecTrapVInstr     uint8 = 7
	vecPrivilege      uint8 = 8
	vecTrace          uint8 = 9
	vecLine1010       uint8 = 10
	vecLine1111       uint8 = 11
	vecUninitialized  uint8 = 15
	vecSpuriousIntr   uint8 = 24
	vecAutoVector1    uint8 = 25
	vecAutoVector7    uint8 = 31
	vecTrap0          uint8 = 32
)

// PendingException queues an exception for the scheduler to service at
// the next instruction boundary (or, for a level-7 interrupt, immediately
// after the current instruction completes). Priority follows the standard
// 68000 ordering: lower value serviced first.
type PendingException struct {
	Vector   uint8
	Priority int
}

// exceptionPriority ranks a vector for queue ordering. Group boundaries,
// not exact numbers, are what matters: reset first, then bus/address
// errors, then trace, then interrupts, then everything else.
func exceptionPriority(vector uint8) int {
	switch {
	case vector == vecResetSSP || vector == vecResetPC:
		return 0
	case vector == vecBusError || vector == vecAddressError:
		return 1
	case vector == vecTrace:
		return 2
	case vector >= vecAutoVector1 && vector <= vecAutoVector7:
		return 3
	default:
		return 4
	}
}

// QueueException appends an exception to the pending queue, keeping it
// sorted by priority. Called by both the execution units (e.g. DIVU by
// zero queues vecZeroDivide) and by the host (interrupt requests).
func (c *CPU) QueueException(vector uint8) {
	p := exceptionPriority(vector)
	pe := PendingException{Vector: vector, Priority: p}

	i := len(c.pending)
	for i > 0 && c.pending[i-1].Priority > p {
		i--
	}
	c.pending = append(c.pending, PendingException{})
	copy(c.pending[i+1:], c.pending[i:])
	c.pending[i] = pe
}

// nextPending pops the highest-priority queued exception that is not a
// masked interrupt, if any. An interrupt of level 1-6 at or below SR.I
// stays queued; level 7 is always taken.
func (c *CPU) nextPending() (PendingException, bool) {
	for i, pe := range c.pending {
		if pe.Vector >= vecAutoVector1 && pe.Vector < vecAutoVector7 && pe.Vector-vecAutoVector1+1 <= c.InterruptMask() {
			continue
		}
		c.pending = append(c.pending[:i], c.pending[i+1:]...)
		return pe, true
	}
	return PendingException{}, false
}

// exception pushes the appropriate stack frame for vector, switches to
// supervisor mode, clears the trace bit, and loads PC from the vector
// table. It returns the number of cycles consumed and a bool reporting
// whether a second fault occurred while building the frame (double
// fault), in which case the CPU halts rather than looping forever.
func (c *CPU) exception(vector uint8) (cycles int, halted bool) {
	sr := c.sr
	wasSupervisor := c.supervisor()
	c.setSR(sr | SRS)
	c.sr &^= SRT

	if vector >= vecAutoVector1 && vector <= vecAutoVector7 {
		// Mask SR.I to the interrupt's own level so an equal-or-lower
		// priority interrupt can't re-enter before this handler's RTE
		// restores the old SR.
		c.setInterruptMask(vector - vecAutoVector1 + 1)
	}

	faultDepth := c.faultDepth
	c.faultDepth++
	defer func() { c.faultDepth = faultDepth }()
	if c.faultDepth > 1 {
		return 0, true
	}

	switch c.variant.StackFormatKind() {
	case StackFormatSCC68070:
		if vector == vecBusError || vector == vecAddressError {
			if !c.pushLongFrameSCC(vector, sr, wasSupervisor) {
				return 0, true
			}
			break
		}
		if !c.pushShortFrame(vector, sr) {
			return 0, true
		}
	default:
		if vector == vecBusError || vector == vecAddressError {
			if !c.pushLongFrameClassic(vector, sr, wasSupervisor) {
				return 0, true
			}
			break
		}
		if !c.pushShortFrame(vector, sr) {
			return 0, true
		}
	}

	addr, ok := c.readBusLong(uint32(vector) * 4)
	if !ok {
		return 0, true
	}
	c.pc = addr

	return c.variant.ExceptionCycles(vector), false
}

// pushShortFrame pushes the ordinary 4-byte PC + 2-byte SR frame shared
// by every non-bus/address exception on both variants.
func (c *CPU) pushShortFrame(vector uint8, sr uint16) bool {
	if !c.pushLong(c.pc) {
		return false
	}
	return c.pushWord(sr)
}

// pushLongFrameClassic pushes the MC68000's 7-word bus/address error
// frame: access address, instruction register, status register, PC, and
// a status word describing the faulting access (function code, R/W,
// instruction/not).
func (c *CPU) pushLongFrameClassic(vector uint8, sr uint16, wasSupervisor bool) bool {
	fault := c.lastFault
	statusWord := faultStatusWord(fault, wasSupervisor)
	if !c.pushWord(statusWord) {
		return false
	}
	if !c.pushLong(fault.Address) {
		return false
	}
	if !c.pushWord(fault.Instruction) {
		return false
	}
	if !c.pushWord(sr) {
		return false
	}
	return c.pushLong(c.pc)
}

// pushLongFrameSCC additionally pushes the faulting opcode word ahead of
// the classic long frame, per the SCC68070 exception format.
func (c *CPU) pushLongFrameSCC(vector uint8, sr uint16, wasSupervisor bool) bool {
	if !c.pushWord(c.lastFault.Opcode) {
		return false
	}
	return c.pushLongFrameClassic(vector, sr, wasSupervisor)
}

// busFault records the information needed to build a bus/address error
// stack frame: the access that failed, whether it was a read or write,
// and the instruction word being executed when it failed.
type busFault struct {
	Address     uint32
	Instruction uint16
	Opcode      uint16
	Write       bool
	InProgress  bool
}

func faultStatusWord(f busFault, supervisor bool) uint16 {
	var w uint16
	if !f.Write {
		w |= 1 << 4
	}
	if supervisor {
		w |= 1 << 5
	}
	if f.InProgress {
		w |= 1 << 3
	}
	return w
}
