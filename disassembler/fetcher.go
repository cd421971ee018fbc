package disassembler

import (
	"encoding/binary"
	"fmt"

	"github.com/Stovent/m68000/cpu"
)

// sliceFetcher implements cpu.Fetcher over a flat byte slice, so Decode
// runs identically whether it's fed by live memory or a file on disk.
type sliceFetcher struct {
	code []byte
	pos  uint32
}

func (s *sliceFetcher) NextWord() (uint16, bool) {
	if int(s.pos)+2 > len(s.code) {
		return 0, false
	}
	w := binary.BigEndian.Uint16(s.code[s.pos:])
	s.pos += 2
	return w, true
}

func (s *sliceFetcher) PeekWord() (uint16, bool) {
	if int(s.pos)+2 > len(s.code) {
		return 0, false
	}
	return binary.BigEndian.Uint16(s.code[s.pos:]), true
}

func (s *sliceFetcher) Here() uint32 { return s.pos }

// decodeAt decodes a single instruction starting at byte offset pc in code,
// returning the rendered mnemonic, operand text, and number of bytes
// consumed beyond the opcode word itself.
func decodeAt(code []byte, pc int) (mnemonic, operands string, used int) {
	f := &sliceFetcher{code: code, pos: uint32(pc)}
	inst, err := cpu.Decode(f, uint32(pc))
	if err != nil {
		return "dc.w", fmtHexWord(code, pc), 0
	}
	mnemonic, operands = render(inst.Operands)
	return mnemonic, operands, int(f.pos) - pc - 2
}

// DisassembleAt decodes a single instruction at byte offset pc in code,
// for callers (the monitor) that want one instruction at a time instead
// of DisassembleRange's full-buffer sweep.
func DisassembleAt(code []byte, pc int) (mnemonic, operands string, used int) {
	return decodeAt(code, pc)
}

func fmtHexWord(code []byte, pc int) string {
	if pc+2 > len(code) {
		return "$0000"
	}
	return fmt.Sprintf("$%04x", binary.BigEndian.Uint16(code[pc:]))
}
