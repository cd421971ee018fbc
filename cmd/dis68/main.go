// Command dis68 disassembles a flat binary image, printing the result
// to stdout or to a file with -out.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Stovent/m68000/disassembler"
)

func main() {
	outFile := flag.String("out", "", "write the disassembly here instead of stdout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <image>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	code, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("dis68: %v", err)
	}

	text, err := disassembler.DisassembleRange(code)
	if err != nil {
		log.Fatalf("dis68: %v", err)
	}

	if *outFile == "" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(*outFile, []byte(text), 0644); err != nil {
		log.Fatalf("dis68: %v", err)
	}
	fmt.Printf("disassembly written to %s\n", *outFile)
}
