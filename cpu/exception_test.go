package cpu

import "testing"

func TestQueueExceptionOrdersByPriority(t *testing.T) {
	c := &CPU{}
	c.QueueException(vecIllegalInstr) // priority 4
	c.QueueException(vecTrace)        // priority 2
	c.QueueException(vecBusError)     // priority 1
	c.QueueException(vecAutoVector1)  // priority 3

	want := []uint8{vecBusError, vecTrace, vecAutoVector1, vecIllegalInstr}
	for _, w := range want {
		pe, ok := c.nextPending()
		if !ok {
			t.Fatalf("expected a pending exception, queue drained early")
		}
		if pe.Vector != w {
			t.Fatalf("nextPending() = vector %d, want %d", pe.Vector, w)
		}
	}
	if _, ok := c.nextPending(); ok {
		t.Fatalf("expected the queue to be empty")
	}
}

func TestTestCondition(t *testing.T) {
	cases := []struct {
		name string
		sr   uint16
		cc   uint8
		want bool
	}{
		{"T always true", 0, 0, true},
		{"F always false", SRN | SRZ | SRV | SRC, 1, false},
		{"EQ set", SRZ, 7, true},
		{"EQ clear", 0, 7, false},
		{"NE", 0, 6, true},
		{"CS", SRC, 5, true},
		{"CC", 0, 4, true},
		{"GE equal signs", SRN | SRV, 12, true},
		{"LT differing signs", SRN, 13, true},
		{"GT", 0, 14, true},
		{"GT false when zero", SRZ, 14, false},
		{"LE via zero", SRZ, 15, true},
	}
	for _, c := range cases {
		cpu := &CPU{sr: c.sr}
		if got := cpu.testCondition(c.cc); got != c.want {
			t.Errorf("%s: testCondition(%d) with SR=%#04x = %v, want %v", c.name, c.cc, c.sr, got, c.want)
		}
	}
}
