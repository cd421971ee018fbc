package cpu

// Step decodes and executes exactly one instruction, services any
// exception the decode/execute cycle raised (including a queued external
// interrupt that clears SR.I's mask), and returns the number of cycles
// it consumed. It is the single entry point every other scheduler method
// builds on.
func (c *CPU) Step() int {
	cycles, _ := c.StepException()
	if vec, ok := c.nextPending(); ok {
		extra, halted := c.exception(vec.Vector)
		cycles += extra
		if halted {
			c.halted = true
		}
	}
	return cycles
}

// StepException decodes and executes one instruction like Step, but
// leaves any exception it raised queued rather than servicing it,
// returning the vector so the caller can inspect or process it itself
// via ServiceException. vector is 0 if no exception was raised.
func (c *CPU) StepException() (cycles int, vector uint8) {
	if c.halted {
		return 0, 0
	}

	c.deliverPendingInterrupt()
	if c.stopped {
		return 0, 0
	}

	traceArmed := c.sr&SRT != 0
	pendingBefore := len(c.pending)

	pc := c.pc
	inst, err := Decode(c, pc)
	if err != nil {
		c.classifyDecodeError(err, pendingBefore)
	} else {
		cycles = c.execute(inst)
	}

	if len(c.pending) > pendingBefore {
		return cycles, c.pending[len(c.pending)-1].Vector
	}
	if traceArmed && !c.stopped {
		c.QueueException(vecTrace)
		return cycles, vecTrace
	}
	return cycles, 0
}

// classifyDecodeError turns a Decode failure into the CPU exception it
// represents. ErrLineA/ErrLineF map directly to their reserved vectors.
// ErrTruncated means the fetch ran off the edge of memory, unless the
// lower-level bus helpers already queued a bus/address error while
// fetching (readBusWord/readBusLong do this themselves), in which case
// re-raising here would double-fault on a perfectly ordinary bus fault.
func (c *CPU) classifyDecodeError(err error, pendingBefore int) {
	switch err {
	case ErrLineA:
		c.QueueException(vecLine1010)
	case ErrLineF:
		c.QueueException(vecLine1111)
	default:
		if len(c.pending) == pendingBefore {
			c.QueueException(vecIllegalInstr)
		}
	}
}

// deliverPendingInterrupt promotes the highest-priority queued interrupt
// into service if its level exceeds SR.I (or is the non-maskable level
// 7), waking a STOPped core in the process.
func (c *CPU) deliverPendingInterrupt() {
	if len(c.pending) == 0 {
		return
	}
	pe := c.pending[0]
	if pe.Vector < vecAutoVector1 || pe.Vector > vecAutoVector7 {
		return
	}
	level := uint8(pe.Vector - vecAutoVector1 + 1)
	if level < 7 && level <= c.InterruptMask() {
		return
	}
	c.stopped = false
}

// RunCycles runs whole instructions until at least budget cycles have
// elapsed, stopping early if the core halts or parks in STOP. Surplus
// cycles past budget are discarded rather than carried into the next
// call, per the documented "at least" contract.
func (c *CPU) RunCycles(budget int) int {
	total := 0
	for total < budget {
		if c.halted || c.stopped {
			break
		}
		total += c.Step()
	}
	return total
}

// RunUntilExceptionOrStop runs instructions until one raises an
// exception (the vector is returned, 0 meaning STOP or halt rather than
// a fault) or the core enters the STOPped/halted state on its own.
func (c *CPU) RunUntilExceptionOrStop() (cycles int, vector uint8) {
	for {
		if c.halted {
			return cycles, 0
		}
		if c.stopped {
			return cycles, 0
		}
		n, vec := c.StepException()
		cycles += n
		if vec != 0 {
			pe, ok := c.nextPending()
			if ok {
				extra, halted := c.exception(pe.Vector)
				cycles += extra
				if halted {
					c.halted = true
				}
			}
			return cycles, vec
		}
	}
}

// PeekNextWord returns the word at PC without consuming it.
func (c *CPU) PeekNextWord() (uint16, bool) { return c.peekPC() }

// GetNextWord fetches the word at PC and advances PC by 2.
func (c *CPU) GetNextWord() (uint16, bool) { return c.fetchPC() }

// GetNextLong fetches the long word at PC and advances PC by 4.
func (c *CPU) GetNextLong() (uint32, bool) { return c.fetchPCLong() }
