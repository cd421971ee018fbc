// Package membus provides a flat, linear memory implementation of
// cpu.Bus for the demonstration hosts (cmd/run68, cmd/mon68). It is not
// part of the emulation core: real embedders supply their own cpu.Bus
// wired to whatever address map their system needs.
package membus

import (
	"encoding/binary"
	"fmt"
)

// RAM is a fixed-size, zero-initialized block of memory mapped at
// address 0. Reads and writes outside its bounds fail rather than
// panicking, so the core turns them into bus-error exceptions instead
// of crashing the host, mirroring beevik-go6502's RAM/Memory banks
// adapted to the 68000's flat 24-bit address space.
type RAM struct {
	buf []byte
}

// New creates a RAM bank of the given size in bytes.
func New(size int) *RAM {
	return &RAM{buf: make([]byte, size)}
}

// Load copies data into the RAM starting at addr, for seeding a program
// image before Reset/Step runs. It returns an error instead of panicking
// if the image doesn't fit.
func (m *RAM) Load(addr uint32, data []byte) error {
	if int(addr)+len(data) > len(m.buf) {
		return fmt.Errorf("membus: load of %d bytes at %#x exceeds %d-byte RAM", len(data), addr, len(m.buf))
	}
	copy(m.buf[addr:], data)
	return nil
}

// Bytes returns the live backing slice, for a monitor's memory-dump
// command. Callers must not retain it past the next Load/Write call.
func (m *RAM) Bytes() []byte { return m.buf }

func (m *RAM) inBounds(addr uint32, width int) bool {
	return int(addr)+width <= len(m.buf)
}

func (m *RAM) ReadByte(addr uint32) (uint8, bool) {
	if !m.inBounds(addr, 1) {
		return 0, false
	}
	return m.buf[addr], true
}

func (m *RAM) ReadWord(addr uint32) (uint16, bool) {
	if !m.inBounds(addr, 2) {
		return 0, false
	}
	return binary.BigEndian.Uint16(m.buf[addr:]), true
}

func (m *RAM) ReadLong(addr uint32) (uint32, bool) {
	if !m.inBounds(addr, 4) {
		return 0, false
	}
	return binary.BigEndian.Uint32(m.buf[addr:]), true
}

func (m *RAM) WriteByte(addr uint32, v uint8) bool {
	if !m.inBounds(addr, 1) {
		return false
	}
	m.buf[addr] = v
	return true
}

func (m *RAM) WriteWord(addr uint32, v uint16) bool {
	if !m.inBounds(addr, 2) {
		return false
	}
	binary.BigEndian.PutUint16(m.buf[addr:], v)
	return true
}

func (m *RAM) WriteLong(addr uint32, v uint32) bool {
	if !m.inBounds(addr, 4) {
		return false
	}
	binary.BigEndian.PutUint32(m.buf[addr:], v)
	return true
}

// ResetInstruction satisfies cpu.Bus. Plain RAM has no peripherals to
// reset.
func (m *RAM) ResetInstruction() {}
