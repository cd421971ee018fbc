package cpu_test

import (
	"testing"

	"github.com/Stovent/m68000/cpu"
	"github.com/Stovent/m68000/membus"
)

// newTestCPU builds a CPU over a small flat RAM with the reset vectors
// seeded so New's implicit reset lands PC at loadAddr in supervisor mode.
func newTestCPU(t *testing.T, loadAddr uint32, program []byte) (*cpu.CPU, *membus.RAM) {
	t.Helper()
	ram := membus.New(0x10000)
	if !ram.WriteLong(0, 0x10000) { // SSP: top of the 64K bank
		t.Fatal("failed to seed SSP vector")
	}
	if !ram.WriteLong(4, loadAddr) {
		t.Fatal("failed to seed PC vector")
	}
	if err := ram.Load(loadAddr, program); err != nil {
		t.Fatalf("failed to load program: %v", err)
	}
	return cpu.New(ram, cpu.MC68000{}), ram
}

func TestResetLoadsSSPAndPC(t *testing.T) {
	c, _ := newTestCPU(t, 0x400, []byte{0x4E, 0x71}) // NOP
	r := c.Registers()
	if r.PC != 0x400 {
		t.Fatalf("PC = %#x, want 0x400", r.PC)
	}
	if r.SSP != 0x10000 {
		t.Fatalf("SSP = %#x, want 0x10000", r.SSP)
	}
	if !r.Flags().Supervisor {
		t.Fatalf("expected supervisor mode immediately after reset")
	}
}

func TestStepNOPAdvancesPC(t *testing.T) {
	c, _ := newTestCPU(t, 0x400, []byte{0x4E, 0x71}) // NOP
	cycles := c.Step()
	if cycles <= 0 {
		t.Fatalf("Step() returned %d cycles, want > 0", cycles)
	}
	if pc := c.Registers().PC; pc != 0x402 {
		t.Fatalf("PC after NOP = %#x, want 0x402", pc)
	}
}

func TestRTEFromUserModeIsPrivilegeViolation(t *testing.T) {
	// RTE, opcode 0x4E73.
	c, ram := newTestCPU(t, 0x400, []byte{0x4E, 0x73})

	r := c.Registers()
	r.SR &^= cpu.SRS // drop into user mode before executing RTE
	c.SetState(r)

	// Vector 8 (privilege violation) points at 0x800; put an RTS there
	// (unused) just so a runaway test doesn't wander into garbage.
	ram.WriteLong(8*4, 0x800)

	c.Step()

	if !c.Registers().Flags().Supervisor {
		t.Fatalf("expected the privilege-violation exception to re-enter supervisor mode")
	}
	if pc := c.Registers().PC; pc != 0x800 {
		t.Fatalf("PC = %#x, want 0x800 (privilege violation vector)", pc)
	}
}

func TestStopParksCoreUntilInterrupt(t *testing.T) {
	// STOP #$2000, opcode 0x4E72 followed by the immediate SR value.
	c, _ := newTestCPU(t, 0x400, []byte{0x4E, 0x72, 0x27, 0x00})
	c.Step()
	if !c.Stopped() {
		t.Fatalf("expected the core to be parked after STOP")
	}

	c.QueueException(31) // level 7 autovector, non-maskable
	c.Step()
	if c.Stopped() {
		t.Fatalf("expected a queued level-7 interrupt to wake the core")
	}
}

func TestAutovectorInterruptSetsInterruptMask(t *testing.T) {
	// NOP at the load address so the interrupt is serviced at the next
	// instruction boundary; vector 26 is autovector level 2.
	c, ram := newTestCPU(t, 0x400, []byte{0x4E, 0x71})
	ram.WriteLong(26*4, 0x800)

	// Reset leaves SR.I at 7; lower it so a level-2 interrupt is accepted.
	r := c.Registers()
	r.SR &^= cpu.SRIMask
	c.SetState(r)

	if c.Registers().Flags().IntMask != 0 {
		t.Fatalf("IntMask before the interrupt = %d, want 0", c.Registers().Flags().IntMask)
	}

	c.QueueException(26) // autovector level 2
	c.Step()

	if got := c.Registers().Flags().IntMask; got != 2 {
		t.Fatalf("IntMask after servicing a level-2 autovector = %d, want 2", got)
	}
	if pc := c.Registers().PC; pc != 0x800 {
		t.Fatalf("PC = %#x, want 0x800 (autovector 26's handler)", pc)
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	c, _ := newTestCPU(t, 0x400, []byte{0x4E, 0x71})
	r := c.Registers()
	r.D[3] = 0xDEADBEEF
	r.A[5] = 0x00123456
	c.SetState(r)
	c.QueueException(9) // arbitrary nonzero vector to exercise the pending list

	buf := make([]byte, cpu.SerializeSize)
	if err := c.Serialize(buf); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	restored, _ := newTestCPU(t, 0x400, []byte{0x4E, 0x71})
	if err := restored.Deserialize(buf); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	got := restored.Registers()
	if got.D[3] != 0xDEADBEEF || got.A[5] != 0x00123456 {
		t.Fatalf("Registers after round trip = %+v, want D3=0xdeadbeef A5=0x123456", got)
	}
}

func TestSerializeRejectsShortBuffer(t *testing.T) {
	c, _ := newTestCPU(t, 0x400, []byte{0x4E, 0x71})
	if err := c.Serialize(make([]byte, 4)); err == nil {
		t.Fatalf("expected an error serializing into a too-small buffer")
	}
}
