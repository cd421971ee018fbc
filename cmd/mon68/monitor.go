package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/cmd"

	"github.com/Stovent/m68000/cpu"
	"github.com/Stovent/m68000/disassembler"
	"github.com/Stovent/m68000/membus"
)

// Monitor is the debugger's session state: the emulated core plus
// whatever the command handlers need to remember between lines
// (breakpoints, "continue from here" addresses). Command dispatch and
// tree shape mirror beevik-go6502's host package.
type Monitor struct {
	cpu *cpu.CPU
	ram *membus.RAM

	breakpoints map[uint32]bool
	lastDumpPC  uint32
	lastDisasm  uint32
	quit        bool
}

// commandFunc is the signature every leaf command in the tree is stored
// as, following beevik-go6502's `(*Host).cmdXxx` method-expression idiom.
type commandFunc func(*Monitor, cmd.Selection) error

var monitorTree = buildTree()

func buildTree() *cmd.Tree {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "mon68"})

	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Brief:       "Display help",
		Description: "Display help for a command, or list all commands.",
		Usage:       "help [<command>]",
		Data:        commandFunc((*Monitor).cmdHelp),
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "registers",
		Brief:       "Display CPU registers",
		Description: "Display the data/address registers, PC, SR and its decomposed flags.",
		Usage:       "registers",
		Data:        commandFunc((*Monitor).cmdRegisters),
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "step",
		Brief:       "Single-step one instruction",
		Description: "Decode and execute exactly one instruction, servicing any exception it raises.",
		Usage:       "step",
		Data:        commandFunc((*Monitor).cmdStep),
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "run",
		Brief: "Run until a breakpoint or exception",
		Description: "Run the CPU until it hits an enabled breakpoint, raises an" +
			" exception, or parks in STOP/halts.",
		Usage: "run",
		Data:  commandFunc((*Monitor).cmdRun),
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "disassemble",
		Brief:       "Disassemble at an address",
		Description: "Disassemble instructions starting at the given address, or at PC if omitted.",
		Usage:       "disassemble [<address>] [<count>]",
		Data:        commandFunc((*Monitor).cmdDisassemble),
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the monitor",
		Description: "Exit mon68.",
		Usage:       "quit",
		Data:        commandFunc((*Monitor).cmdQuit),
	})

	mem := root.AddSubtree(cmd.TreeDescriptor{Name: "memory", Brief: "Memory commands"})
	mem.AddCommand(cmd.CommandDescriptor{
		Name:        "dump",
		Brief:       "Dump memory",
		Description: "Dump bytes of memory starting at the given address, or where the last dump left off.",
		Usage:       "memory dump [<address>] [<bytes>]",
		Data:        commandFunc((*Monitor).cmdMemoryDump),
	})
	mem.AddCommand(cmd.CommandDescriptor{
		Name:        "set",
		Brief:       "Write bytes to memory",
		Description: "Write one or more byte values starting at the given address.",
		Usage:       "memory set <address> <byte> [<byte> ...]",
		Data:        commandFunc((*Monitor).cmdMemorySet),
	})

	bp := root.AddSubtree(cmd.TreeDescriptor{Name: "breakpoint", Brief: "Breakpoint commands"})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List breakpoints",
		Description: "List all currently set breakpoints.",
		Usage:       "breakpoint list",
		Data:        commandFunc((*Monitor).cmdBreakpointList),
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "add",
		Brief:       "Add a breakpoint",
		Description: "Set a breakpoint at the given address.",
		Usage:       "breakpoint add <address>",
		Data:        commandFunc((*Monitor).cmdBreakpointAdd),
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a breakpoint",
		Description: "Clear the breakpoint at the given address.",
		Usage:       "breakpoint remove <address>",
		Data:        commandFunc((*Monitor).cmdBreakpointRemove),
	})

	root.AddShortcut("r", "registers")
	root.AddShortcut("s", "step")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("b", "breakpoint")
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("q", "quit")
	root.AddShortcut("?", "help")

	return root
}

// dispatch looks up line in the command tree and runs its handler,
// printing the same "not found"/"ambiguous" diagnostics beevik-go6502's
// host loop does.
func (m *Monitor) dispatch(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	sel, err := monitorTree.Lookup(line)
	switch {
	case err == cmd.ErrNotFound:
		fmt.Println("command not found")
		return
	case err == cmd.ErrAmbiguous:
		fmt.Println("command is ambiguous")
		return
	case err != nil:
		fmt.Printf("error: %v\n", err)
		return
	}
	if sel.Command == nil {
		return
	}
	handler := sel.Command.Data.(commandFunc)
	if err := handler(m, sel); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func (m *Monitor) cmdHelp(sel cmd.Selection) error {
	if len(sel.Args) == 0 {
		fmt.Println("commands: help registers step run disassemble quit " +
			"memory dump, memory set, breakpoint list/add/remove")
		fmt.Println("type 'help <command>' for details")
		return nil
	}
	found, err := monitorTree.Lookup(strings.Join(sel.Args, " "))
	if err != nil || found.Command == nil {
		fmt.Println("no such command")
		return nil
	}
	fmt.Println(found.Command.Usage)
	fmt.Println(found.Command.Description)
	return nil
}

func (m *Monitor) cmdRegisters(cmd.Selection) error {
	r := m.cpu.Registers()
	f := r.Flags()
	for i := 0; i < 8; i++ {
		fmt.Printf("D%d=%08X  A%d=%08X\n", i, r.D[i], i, r.A[i])
	}
	fmt.Printf("PC=%08X  SR=%04X  USP=%08X  SSP=%08X\n", r.PC, r.SR, r.USP, r.SSP)
	fmt.Printf("T=%v S=%v I=%d X=%v N=%v Z=%v V=%v C=%v\n",
		f.Trace, f.Supervisor, f.IntMask, f.Extend, f.Negative, f.Zero, f.Overflow, f.Carry)
	return nil
}

func (m *Monitor) cmdStep(cmd.Selection) error {
	cycles := m.cpu.Step()
	fmt.Printf("stepped %d cycles\n", cycles)
	return m.cmdRegisters(cmd.Selection{})
}

// cmdRun steps one instruction at a time rather than calling
// RunUntilExceptionOrStop, since breakpoints have no meaning to the
// scheduler itself — only the monitor checks PC against them between
// instructions.
func (m *Monitor) cmdRun(cmd.Selection) error {
	for {
		if m.cpu.Halted() {
			fmt.Println("core halted (double bus fault)")
			return nil
		}
		if m.cpu.Stopped() {
			fmt.Println("core parked in STOP")
			return nil
		}
		m.cpu.Step()
		pc := m.cpu.Registers().PC
		if m.breakpoints[pc] {
			fmt.Printf("breakpoint hit at %08X\n", pc)
			return m.cmdRegisters(cmd.Selection{})
		}
	}
}

func (m *Monitor) cmdDisassemble(sel cmd.Selection) error {
	addr := m.lastDisasm
	if len(sel.Args) == 0 {
		addr = m.cpu.Registers().PC
	}
	count := 10
	if len(sel.Args) > 0 {
		a, err := parseAddr(sel.Args[0])
		if err != nil {
			return err
		}
		addr = a
	}
	if len(sel.Args) > 1 {
		n, err := strconv.Atoi(sel.Args[1])
		if err != nil {
			return err
		}
		count = n
	}

	code := m.ram.Bytes()
	pc := int(addr)
	for i := 0; i < count && pc+1 < len(code); i++ {
		mn, ops, used := disassembler.DisassembleAt(code, pc)
		if ops != "" {
			fmt.Printf("%08X  %-8s %s\n", pc, mn, ops)
		} else {
			fmt.Printf("%08X  %s\n", pc, mn)
		}
		pc += 2 + used
	}
	m.lastDisasm = uint32(pc)
	return nil
}

func (m *Monitor) cmdQuit(cmd.Selection) error {
	m.quit = true
	return nil
}

func (m *Monitor) cmdMemoryDump(sel cmd.Selection) error {
	addr := m.lastDumpPC
	if len(sel.Args) > 0 {
		a, err := parseAddr(sel.Args[0])
		if err != nil {
			return err
		}
		addr = a
	}
	length := uint32(64)
	if len(sel.Args) > 1 {
		n, err := strconv.ParseUint(sel.Args[1], 0, 32)
		if err != nil {
			return err
		}
		length = uint32(n)
	}

	buf := m.ram.Bytes()
	for row := uint32(0); row < length; row += 16 {
		fmt.Printf("%08X  ", addr+row)
		for col := uint32(0); col < 16 && row+col < length; col++ {
			a := addr + row + col
			if int(a) < len(buf) {
				fmt.Printf("%02X ", buf[a])
			} else {
				fmt.Print("?? ")
			}
		}
		fmt.Println()
	}
	m.lastDumpPC = addr + length
	return nil
}

func (m *Monitor) cmdMemorySet(sel cmd.Selection) error {
	if len(sel.Args) < 2 {
		return fmt.Errorf("usage: memory set <address> <byte> [<byte> ...]")
	}
	addr, err := parseAddr(sel.Args[0])
	if err != nil {
		return err
	}
	for i, tok := range sel.Args[1:] {
		v, err := strconv.ParseUint(tok, 0, 8)
		if err != nil {
			return fmt.Errorf("byte %d: %w", i, err)
		}
		if !m.ram.WriteByte(addr+uint32(i), uint8(v)) {
			return fmt.Errorf("address %08X out of range", addr+uint32(i))
		}
	}
	return nil
}

func (m *Monitor) cmdBreakpointList(cmd.Selection) error {
	addrs := make([]uint32, 0, len(m.breakpoints))
	for a := range m.breakpoints {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, a := range addrs {
		fmt.Printf("%08X\n", a)
	}
	return nil
}

func (m *Monitor) cmdBreakpointAdd(sel cmd.Selection) error {
	if len(sel.Args) < 1 {
		return fmt.Errorf("usage: breakpoint add <address>")
	}
	addr, err := parseAddr(sel.Args[0])
	if err != nil {
		return err
	}
	m.breakpoints[addr] = true
	return nil
}

func (m *Monitor) cmdBreakpointRemove(sel cmd.Selection) error {
	if len(sel.Args) < 1 {
		return fmt.Errorf("usage: breakpoint remove <address>")
	}
	addr, err := parseAddr(sel.Args[0])
	if err != nil {
		return err
	}
	delete(m.breakpoints, addr)
	return nil
}

func parseAddr(tok string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(tok, "$"), 16, 32)
	if err != nil {
		v2, err2 := strconv.ParseUint(tok, 0, 32)
		if err2 != nil {
			return 0, fmt.Errorf("bad address %q", tok)
		}
		return uint32(v2), nil
	}
	return uint32(v), nil
}
