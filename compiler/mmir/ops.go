package mmir

type (
	Mutability int
	BinOp      int
	UnOp       int
	NullOp     int
	BorrowKind int
	RetagKind  int
)

const (
	Not Mutability = iota
	Mut
)

const (
	Add BinOp = iota
	AddUnchecked
	AddWithOverflow
	Sub
	SubUnchecked
	SubWithOverflow
	Mul
	MulUnchecked
	MulWithOverflow
	Div
	Rem
	BitXor
	BitAnd
	BitOr
	Shl
	ShlUnchecked
	Shr
	ShrUnchecked
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Offset
	Cmp
	BinOpUnknown
)

const (
	UnNot UnOp = iota
	UnNeg
	UnPtrMetadata
	UnOpUnknown
)

const (
	SizeOf NullOp = iota
	AlignOf
	UbChecks
	NullOpUnknown
)

const (
	BorrowShared BorrowKind = iota
	BorrowFake
	BorrowMut
	BorrowUnknown
)

const (
	RetagFnEntry RetagKind = iota
	RetagTwoPhase
	RetagRaw
	RetagDefault
	RetagUnknown
)

var (
	mutabilityNames = []string{"Not", "Mut"}

	binOpNames = []string{
		"Add", "AddUnchecked", "AddWithOverflow",
		"Sub", "SubUnchecked", "SubWithOverflow",
		"Mul", "MulUnchecked", "MulWithOverflow",
		"Div", "Rem",
		"BitXor", "BitAnd", "BitOr",
		"Shl", "ShlUnchecked", "Shr", "ShrUnchecked",
		"Eq", "Ne", "Lt", "Le", "Gt", "Ge",
		"Offset", "Cmp",
		"Unknown",
	}

	unOpNames      = []string{"Not", "Neg", "PtrMetadata", "Unknown"}
	nullOpNames    = []string{"SizeOf", "AlignOf", "UbChecks", "Unknown"}
	borrowNames    = []string{"Shared", "Fake", "Mut", "Unknown"}
	retagKindNames = []string{"FnEntry", "TwoPhase", "Raw", "Default", "Unknown"}
)

func (x Mutability) String() string { return name(mutabilityNames, int(x)) }
func (x BinOp) String() string      { return name(binOpNames, int(x)) }
func (x UnOp) String() string       { return name(unOpNames, int(x)) }
func (x NullOp) String() string     { return name(nullOpNames, int(x)) }
func (x BorrowKind) String() string { return name(borrowNames, int(x)) }
func (x RetagKind) String() string  { return name(retagKindNames, int(x)) }

// ParseBinOp returns BinOpUnknown for names it doesn't know.
func ParseBinOp(s string) BinOp { return BinOp(parse(binOpNames, s)) }

func ParseUnOp(s string) UnOp { return UnOp(parse(unOpNames, s)) }

func ParseNullOp(s string) NullOp { return NullOp(parse(nullOpNames, s)) }

func ParseBorrowKind(s string) BorrowKind { return BorrowKind(parse(borrowNames, s)) }

func ParseRetagKind(s string) RetagKind { return RetagKind(parse(retagKindNames, s)) }

func name(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "Unknown"
	}

	return names[i]
}

// parse returns the index of s, the last index (Unknown) if missing.
func parse(names []string, s string) int {
	for i, n := range names[:len(names)-1] {
		if n == s {
			return i
		}
	}

	return len(names) - 1
}
