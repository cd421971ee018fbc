package cpu

// MC68000 is the original 1979 CPU variant: short exception frames, the
// classic PRM instruction timings.
type MC68000 struct{}

var _ Variant = MC68000{}

func (MC68000) Name() string { return "MC68000" }

func (MC68000) StackFormatKind() StackFormat { return StackFormatShort }

func (MC68000) ResetCycles() int { return 40 }

func (MC68000) ExceptionCycles(vector uint8) int {
	switch {
	case vector == vecBusError || vector == vecAddressError:
		return 50
	case vector >= vecAutoVector1 && vector <= vecAutoVector1+6:
		return 44
	case vector >= vecTrap0 && vector < vecTrap0+16:
		return 34
	default:
		return 34
	}
}

func (MC68000) EAFetchCycles(mode, reg uint8, sz Size) int {
	return mc68000EACycles(mode, reg, sz, mc68000EAFetchBase)
}

func (MC68000) EAWriteCycles(mode, reg uint8, sz Size) int {
	return mc68000EACycles(mode, reg, sz, mc68000EAWriteBase)
}

func (MC68000) InstructionBaseCycles(family string, sz Size, fallback int) int {
	if t, ok := mc68000InstructionCycles[family]; ok {
		if sz == SizeLong {
			return t.long
		}
		return t.wordByte
	}
	return fallback
}

func (MC68000) SRReadWidth() Size { return SizeByte }

// mc68000EAFetchBase / mc68000EAWriteBase hold the PRM Table 8-1 byte/word
// addressing-mode calculation times; Long adds 4 to any non-zero entry.
var mc68000EAFetchBase = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0}, // mode 0: Dn
	{0, 0, 0, 0, 0, 0, 0, 0}, // mode 1: An
	{4, 4, 4, 4, 4, 4, 4, 4}, // mode 2: (An)
	{4, 4, 4, 4, 4, 4, 4, 4}, // mode 3: (An)+
	{6, 6, 6, 6, 6, 6, 6, 6}, // mode 4: -(An)
	{8, 8, 8, 8, 8, 8, 8, 8}, // mode 5: d16(An)
	{10, 10, 10, 10, 10, 10, 10, 10}, // mode 6: d8(An,Xn)
	{8, 12, 8, 10, 4, 0, 0, 0}, // mode 7: abs.W, abs.L, d16(PC), d8(PC,Xn), #imm
}

var mc68000EAWriteBase = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
	{4, 4, 4, 4, 4, 4, 4, 4},
	{4, 4, 4, 4, 4, 4, 4, 4},
	{4, 4, 4, 4, 4, 4, 4, 4},
	{8, 8, 8, 8, 8, 8, 8, 8},
	{10, 10, 10, 10, 10, 10, 10, 10},
	{8, 12, 0, 0, 0, 0, 0, 0},
}

func mc68000EACycles(mode, reg uint8, sz Size, table [8][8]int) int {
	if mode > 7 || reg > 7 {
		return 0
	}
	base := table[mode][reg]
	if sz == SizeLong && base > 0 {
		base += 4
	}
	return base
}

// instrCycles holds the byte/word and long base execution times for an
// instruction family, indexed by a short family tag (see exec_*.go).
type instrCycles struct {
	wordByte int
	long     int
}

// mc68000InstructionCycles is a representative subset of the full PRM
// instruction timing tables: enough to give every implemented opcode a
// plausible, internally consistent cycle count. It intentionally does not
// reach the granularity of the original Rust crate's per-addressing-mode
// CpuDetails trait (hundreds of named constants) — see DESIGN.md.
var mc68000InstructionCycles = map[string]instrCycles{
	"move.reg":   {4, 4},
	"move.mem":   {8, 12},
	"movea":      {4, 4},
	"moveq":      {4, 4},
	"lea":        {4, 4},
	"pea":        {12, 12},
	"clr":        {4, 6},
	"add.reg":    {4, 6},
	"add.mem":    {8, 12},
	"adda":       {8, 6},
	"addi":       {8, 16},
	"addq.reg":   {4, 8},
	"addq.mem":   {8, 12},
	"addx.reg":   {4, 8},
	"addx.mem":   {18, 30},
	"sub.reg":    {4, 6},
	"sub.mem":    {8, 12},
	"cmp":        {4, 6},
	"cmpa":       {6, 6},
	"cmpi":       {8, 14},
	"cmpm":       {12, 20},
	"muls":       {70, 70},
	"mulu":       {70, 70},
	"divs":       {158, 158},
	"divu":       {140, 140},
	"chk":        {10, 10},
	"and.reg":    {4, 6},
	"and.mem":    {8, 12},
	"or.reg":     {4, 6},
	"or.mem":     {8, 12},
	"eor.reg":    {4, 8},
	"eor.mem":    {8, 12},
	"andi":       {8, 16},
	"ori":        {8, 16},
	"eori":       {8, 16},
	"not":        {4, 6},
	"neg":        {4, 6},
	"negx":       {4, 6},
	"tst":        {4, 4},
	"tas":        {4, 4},
	"scc":        {4, 4},
	"dbcc":       {10, 10},
	"bcc.taken":  {10, 10},
	"bcc.not":    {8, 8},
	"bsr":        {18, 18},
	"bra":        {10, 10},
	"jmp":        {8, 8},
	"jsr":        {16, 16},
	"rts":        {16, 16},
	"rtr":        {20, 20},
	"rte":        {20, 20},
	"nop":        {4, 4},
	"trap":       {34, 34},
	"trapv":      {4, 4},
	"link":       {16, 16},
	"unlk":       {12, 12},
	"swap":       {4, 4},
	"ext":        {4, 4},
	"exg":        {6, 6},
	"movem.reg":  {8, 8}, // plus 4/8 per register, applied by exec_move.go
	"movem.mem":  {12, 12},
	"movep":      {16, 24},
	"shift.reg":  {6, 8}, // plus 2 per shift applied by exec_shift.go
	"shift.mem":  {8, 8},
	"bit.reg":    {6, 0},
	"bit.mem":    {4, 0},
	"abcd.reg":   {6, 6},
	"abcd.mem":   {18, 18},
	"nbcd":       {6, 6},
	"move.sr":    {4, 4},
	"move.ccr":   {4, 4},
	"move.usp":   {4, 4},
	"stop":       {4, 4},
	"reset":      {132, 132},
	"illegal":    {4, 4},
}
