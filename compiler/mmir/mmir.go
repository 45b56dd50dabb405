// Package mmir is the portable schema of a transcoded function body.
//
// Every sum type is a closed interface with one struct per variant and exactly
// one Unknown variant. Values never share substructure and carry no references
// back into the compiler that produced them. Identifiers are dense 0-based
// uint32 indexes meaningful only inside the Body they come from.
package mmir

// Version of the schema. It changes whenever the wire shape changes.
const Version = "1.0.0"

type (
	BlockID uint32
	Local   uint32
	ScopeID uint32

	Output struct {
		Version string `json:"version"`
		Crate   string `json:"crate"`
		Bodies  []Body `json:"bodies"`
	}

	Body struct {
		Blocks       []BasicBlock   `json:"blocks"`
		LocalDecls   []LocalDecl    `json:"local_decls"`
		ArgCount     uint32         `json:"arg_count"`
		VarDebugInfo []VarDebugInfo `json:"var_debug_info"`
		SpreadArg    *Local         `json:"spread_arg"`
		Span         Span           `json:"span"`
	}

	BasicBlock struct {
		Statements []Statement `json:"statements"`
		IsCleanup  bool        `json:"is_cleanup"`
	}

	Statement struct {
		Kind  StatementKind `json:"kind"`
		Span  Span          `json:"span"`
		Scope ScopeID       `json:"scope"`
	}

	// Span is a byte offset range, Lo <= Hi.
	Span struct {
		Lo uint32 `json:"lo"`
		Hi uint32 `json:"hi"`
	}

	Place struct {
		Local Local        `json:"local"`
		Proj  []Projection `json:"proj"`
	}

	LocalDecl struct {
		Scope ScopeID    `json:"scope"`
		Info  LocalInfo  `json:"info"`
		Typ   Typ        `json:"typ"`
		Mut   Mutability `json:"mut"`
	}

	VarDebugInfo struct {
		Content   VarDebugInfoContent   `json:"content"`
		Scope     ScopeID               `json:"scope"`
		Name      string                `json:"name"`
		ArgIndex  *uint32               `json:"arg_index"`
		Composite *VarDebugInfoFragment `json:"composite"`
	}

	VarDebugInfoFragment struct {
		Typ  Typ          `json:"typ"`
		Proj []Projection `json:"proj"`
	}

	// Targets routes Values[i] to Targets[i].
	// Targets has one extra trailing element: the otherwise branch.
	Targets struct {
		Targets []BlockID `json:"targets"`
		Values  []uint32  `json:"values"`
	}
)

// StatementKind covers both plain statements and block terminators.
//
//sumtype:decl
type StatementKind interface {
	statementKind()
}

type (
	Assign struct {
		Place  Place
		Rvalue Rvalue
	}

	SetDiscriminant struct {
		Place   Place
		Variant uint32
	}

	Deinit struct {
		Place Place
	}

	StorageLive struct {
		Local Local
	}

	StorageDead struct {
		Local Local
	}

	Retag struct {
		Kind  RetagKind
		Place Place
	}

	PlaceMention struct {
		Place Place
	}

	Intrinsic struct {
		Kind IntrinsicKind
	}

	Nop              struct{}
	ConstEvalCounter struct{}

	Goto struct {
		Target BlockID
	}

	SwitchInt struct {
		Discr   Operand
		Targets Targets
	}

	UnwindResume    struct{}
	UnwindTerminate struct{}
	Unreachable     struct{}
	CoroutineDrop   struct{}
	Return          struct{}

	Drop struct {
		Place     Place
		Target    BlockID
		Unwind    UnwindAction
		Replace   bool
		AsyncDrop *BlockID
	}

	// Call with no Target diverges.
	Call struct {
		Func   Operand
		Args   []Operand
		Dest   Place
		Target *BlockID
		Unwind UnwindAction
		Span   Span
	}

	Assert struct {
		Cond     Operand
		Expected bool
		Msg      AssertKind
		Target   BlockID
		Unwind   UnwindAction
	}

	StatementUnknown struct{}
)

//sumtype:decl
type IntrinsicKind interface {
	intrinsicKind()
}

type (
	Assume struct {
		Op Operand
	}

	CopyNonOverlapping struct {
		Src, Dst, Count Operand
	}

	IntrinsicUnknown struct{}
)

//sumtype:decl
type UnwindAction interface {
	unwindAction()
}

type (
	UnwindContinue         struct{}
	UnwindUnreachable      struct{}
	UnwindTerminateProcess struct{}

	UnwindCleanup struct {
		Block BlockID
	}

	UnwindUnknown struct{}
)

//sumtype:decl
type AssertKind interface {
	assertKind()
}

type (
	BoundsCheck struct {
		Len, Index Operand
	}

	Overflow struct {
		Op   BinOp
		L, R Operand
	}

	OverflowNeg struct {
		Op Operand
	}

	DivisionByZero struct {
		Op Operand
	}

	RemainderByZero struct {
		Op Operand
	}

	MisalignedPointerDereference struct {
		Required, Found Operand
	}

	NullPointerDereference struct{}

	AssertUnknown struct{}
)

//sumtype:decl
type Operand interface {
	operand()
}

type (
	Copy struct {
		Place Place
	}

	Move struct {
		Place Place
	}

	Constant struct {
		Const Const
	}
)

//sumtype:decl
type Rvalue interface {
	rvalue()
}

type (
	Use struct {
		Op Operand
	}

	Repeat struct {
		Op    Operand
		Count Const
	}

	Ref struct {
		Kind  BorrowKind
		Place Place
	}

	RawPtr struct {
		Mut   Mutability
		Place Place
	}

	Len struct {
		Place Place
	}

	BinaryOp struct {
		Op   BinOp
		L, R Operand
	}

	NullaryOp struct {
		Op NullOp
	}

	UnaryOp struct {
		Op UnOp
		X  Operand
	}

	Discriminant struct {
		Place Place
	}

	ShallowInitBox struct {
		Op  Operand
		Typ Typ
	}

	CopyForDeref struct {
		Place Place
	}

	WrapUnsafeBinder struct {
		Op  Operand
		Typ Typ
	}

	RvalueUnknown struct{}
)

//sumtype:decl
type Projection interface {
	projection()
}

type (
	Deref struct{}

	Field struct {
		Index uint32
		Typ   Typ
	}

	Index struct {
		Local Local
	}

	ConstantIndex struct {
		Offset    uint32
		MinLength uint32
		FromEnd   bool
	}

	Subslice struct {
		From    uint32
		To      uint32
		FromEnd bool
	}

	Downcast struct {
		Variant uint32
	}

	OpaqueCast struct {
		Typ Typ
	}

	Subtype struct {
		Typ Typ
	}

	UnwrapUnsafeBinder struct {
		Typ Typ
	}

	ProjectionUnknown struct{}
)

//sumtype:decl
type LocalInfo interface {
	localInfo()
}

type (
	User          struct{}
	Boring        struct{}
	AggregateTemp struct{}
	DerefTemp     struct{}
	FakeBorrow    struct{}

	ConstRef struct {
		Def uint32
	}

	StaticRef struct {
		Def uint32
	}

	LocalInfoUnknown struct{}
)

//sumtype:decl
type VarDebugInfoContent interface {
	varDebugInfoContent()
}

type (
	DebugPlace struct {
		Place Place
	}

	DebugConst struct {
		Const Const
	}

	DebugUnknown struct{}
)

func (Assign) statementKind()           {}
func (SetDiscriminant) statementKind()  {}
func (Deinit) statementKind()           {}
func (StorageLive) statementKind()      {}
func (StorageDead) statementKind()      {}
func (Retag) statementKind()            {}
func (PlaceMention) statementKind()     {}
func (Intrinsic) statementKind()        {}
func (Nop) statementKind()              {}
func (ConstEvalCounter) statementKind() {}
func (Goto) statementKind()             {}
func (SwitchInt) statementKind()        {}
func (UnwindResume) statementKind()     {}
func (UnwindTerminate) statementKind()  {}
func (Unreachable) statementKind()      {}
func (CoroutineDrop) statementKind()    {}
func (Return) statementKind()           {}
func (Drop) statementKind()             {}
func (Call) statementKind()             {}
func (Assert) statementKind()           {}
func (StatementUnknown) statementKind() {}

func (Assume) intrinsicKind()             {}
func (CopyNonOverlapping) intrinsicKind() {}
func (IntrinsicUnknown) intrinsicKind()   {}

func (UnwindContinue) unwindAction()         {}
func (UnwindUnreachable) unwindAction()      {}
func (UnwindTerminateProcess) unwindAction() {}
func (UnwindCleanup) unwindAction()          {}
func (UnwindUnknown) unwindAction()          {}

func (BoundsCheck) assertKind()                  {}
func (Overflow) assertKind()                     {}
func (OverflowNeg) assertKind()                  {}
func (DivisionByZero) assertKind()               {}
func (RemainderByZero) assertKind()              {}
func (MisalignedPointerDereference) assertKind() {}
func (NullPointerDereference) assertKind()       {}
func (AssertUnknown) assertKind()                {}

func (Copy) operand()     {}
func (Move) operand()     {}
func (Constant) operand() {}

func (Use) rvalue()              {}
func (Repeat) rvalue()           {}
func (Ref) rvalue()              {}
func (RawPtr) rvalue()           {}
func (Len) rvalue()              {}
func (BinaryOp) rvalue()         {}
func (NullaryOp) rvalue()        {}
func (UnaryOp) rvalue()          {}
func (Discriminant) rvalue()     {}
func (ShallowInitBox) rvalue()   {}
func (CopyForDeref) rvalue()     {}
func (WrapUnsafeBinder) rvalue() {}
func (RvalueUnknown) rvalue()    {}

func (Deref) projection()              {}
func (Field) projection()              {}
func (Index) projection()              {}
func (ConstantIndex) projection()      {}
func (Subslice) projection()           {}
func (Downcast) projection()           {}
func (OpaqueCast) projection()         {}
func (Subtype) projection()            {}
func (UnwrapUnsafeBinder) projection() {}
func (ProjectionUnknown) projection()  {}

func (User) localInfo()             {}
func (Boring) localInfo()           {}
func (AggregateTemp) localInfo()    {}
func (DerefTemp) localInfo()        {}
func (FakeBorrow) localInfo()       {}
func (ConstRef) localInfo()         {}
func (StaticRef) localInfo()        {}
func (LocalInfoUnknown) localInfo() {}

func (DebugPlace) varDebugInfoContent()   {}
func (DebugConst) varDebugInfoContent()   {}
func (DebugUnknown) varDebugInfoContent() {}

// IsTerminator reports whether k ends a block.
func IsTerminator(k StatementKind) bool {
	switch k.(type) {
	case Goto, SwitchInt, UnwindResume, UnwindTerminate, Unreachable,
		CoroutineDrop, Return, Drop, Call, Assert:
		return true
	}

	return false
}

// Terminator returns the last statement of the block if it is a terminator.
func (bb *BasicBlock) Terminator() (Statement, bool) {
	if len(bb.Statements) == 0 {
		return Statement{}, false
	}

	s := bb.Statements[len(bb.Statements)-1]

	return s, IsTerminator(s.Kind)
}
