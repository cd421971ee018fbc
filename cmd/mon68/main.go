// Command mon68 is an interactive REPL debugger for the emulator: load a
// flat binary image, then inspect and step it via the same public
// cpu package scheduler API cmd/run68 uses. Command dispatch follows
// beevik-go6502's host/cmds.go tree design; the terminal is put into raw
// mode the way IntuitionAmiga-IntuitionEngine's terminal_host.go does,
// so this program handles backspace/line editing itself instead of the
// OS tty driver, restoring cooked mode on exit or panic.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/beevik/cmd"
	"golang.org/x/term"

	"github.com/Stovent/m68000/cpu"
	"github.com/Stovent/m68000/membus"
)

func main() {
	var (
		ramSize  = flag.Int("ram", 1<<20, "RAM size in bytes")
		loadAddr = flag.Uint("addr", 0x1000, "address to load the image at, and initial PC")
		variant  = flag.String("variant", "mc68000", "CPU variant: mc68000 or scc68070")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <image>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	image, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("mon68: %v", err)
	}

	var v cpu.Variant
	switch *variant {
	case "mc68000":
		v = cpu.MC68000{}
	case "scc68070":
		v = cpu.SCC68070{}
	default:
		log.Fatalf("mon68: unknown variant %q", *variant)
	}

	ram := membus.New(*ramSize)
	binary.BigEndian.PutUint32(ram.Bytes()[0:], uint32(*ramSize))
	binary.BigEndian.PutUint32(ram.Bytes()[4:], uint32(*loadAddr))
	if err := ram.Load(uint32(*loadAddr), image); err != nil {
		log.Fatalf("mon68: %v", err)
	}

	mon := &Monitor{
		cpu:         cpu.New(ram, v),
		ram:         ram,
		breakpoints: make(map[uint32]bool),
	}

	fmt.Printf("mon68 -- %s, %d bytes RAM, image loaded at %#x\n", v.Name(), *ramSize, *loadAddr)
	mon.cmdRegisters(cmd.Selection{})

	runREPL(mon)
}

// runREPL puts stdin into raw mode and reads lines a byte at a time,
// echoing input and handling backspace/Ctrl-C/Ctrl-D itself, then
// dispatches each completed line through the monitor's command tree.
// Raw mode is restored before returning, including on the panic path.
func runREPL(mon *Monitor) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		runLineMode(mon)
		return
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mon68: failed to set raw mode: %v\n", err)
		runLineMode(mon)
		return
	}
	defer term.Restore(fd, oldState)

	var line []byte
	buf := make([]byte, 1)
	prompt := func() { fmt.Print("\r\nmon68> ") }
	prompt()

	for !mon.quit {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			break
		}
		b := buf[0]
		switch {
		case b == 0x03: // Ctrl-C
			fmt.Print("\r\n")
			return
		case b == 0x04: // Ctrl-D / EOF
			fmt.Print("\r\n")
			return
		case b == '\r' || b == '\n':
			fmt.Print("\r\n")
			term.Restore(fd, oldState)
			mon.dispatch(string(line))
			term.MakeRaw(fd)
			line = line[:0]
			if !mon.quit {
				prompt()
			}
		case b == 0x7F || b == 0x08: // DEL or backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
				fmt.Print("\b \b")
			}
		default:
			line = append(line, b)
			os.Stdout.Write(buf)
		}
	}
}

// runLineMode is the fallback used when stdin isn't a terminal (piped
// scripts, tests): plain buffered line reads, no raw-mode dance.
func runLineMode(mon *Monitor) {
	buf := make([]byte, 0, 256)
	one := make([]byte, 1)
	fmt.Print("mon68> ")
	for !mon.quit {
		n, err := os.Stdin.Read(one)
		if n == 0 || err != nil {
			return
		}
		if one[0] == '\n' {
			mon.dispatch(string(buf))
			buf = buf[:0]
			if !mon.quit {
				fmt.Print("mon68> ")
			}
			continue
		}
		buf = append(buf, one[0])
	}
}
