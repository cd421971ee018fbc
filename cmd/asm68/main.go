// Command asm68 assembles a 68000 source file into its encoded bytes,
// printed as hex words (or written to a file with -out).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Stovent/m68000/assembler"
)

func main() {
	var (
		loadAddr = flag.Uint("addr", 0x1000, "address labels and PC-relative branches are assembled against")
		outFile  = flag.String("out", "", "write the assembled hex words here instead of stdout")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <source.s>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("asm68: %v", err)
	}

	asm := assembler.New()
	code, err := asm.Assemble(string(data), uint32(*loadAddr))
	if err != nil {
		log.Fatalf("asm68: %v", err)
	}

	text := hexWords(code)
	if *outFile == "" {
		fmt.Println(text)
		return
	}
	if err := os.WriteFile(*outFile, []byte(text+"\n"), 0644); err != nil {
		log.Fatalf("asm68: %v", err)
	}
}

// hexWords renders an encoded instruction stream as space-separated hex
// words, matching the odd trailing byte (a dangling dc.b) with a single pair.
func hexWords(code []byte) string {
	var sb []byte
	for i := 0; i < len(code); i += 2 {
		if i > 0 {
			sb = append(sb, ' ')
		}
		if i+1 < len(code) {
			sb = append(sb, fmt.Sprintf("%02x%02x", code[i], code[i+1])...)
		} else {
			sb = append(sb, fmt.Sprintf("%02x", code[i])...)
		}
	}
	return string(sb)
}
