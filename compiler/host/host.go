package host

// Host IR as written by the compiler driver.
// Sum-typed node kinds are plain values of the types listed next to them.
// A shape the decoder doesn't recognize is kept as Opaque.

type (
	DefID   uint64
	Local   uint64
	BlockID uint64
	Scope   uint64
	Ty      uint64
	AllocID uint64

	Unit struct {
		Context

		Items []Item
	}

	Item struct {
		DefID DefID
		Name  string
		Body  *Body
	}

	Span struct {
		Lo uint64 `json:"lo"`
		Hi uint64 `json:"hi"`
	}

	SourceInfo struct {
		Span  Span  `json:"span"`
		Scope Scope `json:"scope"`
	}

	Body struct {
		Blocks       []BasicBlockData
		Locals       []LocalDecl
		ArgCount     uint64
		VarDebugInfo []VarDebugInfo
		SpreadArg    *Local
		Span         Span
	}

	BasicBlockData struct {
		Statements []Statement
		Terminator *Terminator
		IsCleanup  bool
	}

	Statement struct {
		Kind       any // StatementKind
		SourceInfo SourceInfo
	}

	Terminator struct {
		Kind       any // TerminatorKind
		SourceInfo SourceInfo
	}

	LocalDecl struct {
		Mutability Mutability
		Ty         Ty
		SourceInfo SourceInfo
		LocalInfo  any // LocalInfo
	}

	VarDebugInfo struct {
		Name          string
		SourceInfo    SourceInfo
		Composite     *VarDebugInfoFragment
		Value         any // Place | ConstOperand
		ArgumentIndex *uint64
	}

	VarDebugInfoFragment struct {
		Ty         Ty
		Projection []any // PlaceElem
	}

	Place struct {
		Local      Local
		Projection []any // PlaceElem
	}

	// Opaque is a node of a kind the decoder doesn't know.
	Opaque struct {
		Tag string
		Raw []byte
	}

	Mutability string
)

const (
	Not Mutability = "Not"
	Mut Mutability = "Mut"
)

// StatementKind.
type (
	Assign struct {
		Place  Place
		Rvalue any
	}

	SetDiscriminant struct {
		Place        Place
		VariantIndex uint64
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
		Kind  string // FnEntry | TwoPhase | Raw | Default
		Place Place
	}

	PlaceMention struct {
		Place Place
	}

	Intrinsic struct {
		Intrinsic any // Assume | CopyNonOverlapping
	}

	Nop              struct{}
	ConstEvalCounter struct{}

	Assume struct {
		Op any
	}

	CopyNonOverlapping struct {
		Src, Dst, Count any
	}
)

// TerminatorKind.
type (
	Goto struct {
		Target BlockID
	}

	SwitchInt struct {
		Discr   any
		Targets SwitchTargets
	}

	// SwitchTargets has one more target than values: the last one is otherwise.
	SwitchTargets struct {
		Values  []Uint128
		Targets []BlockID
	}

	UnwindResume    struct{}
	UnwindTerminate struct{}
	Return          struct{}
	Unreachable     struct{}
	CoroutineDrop   struct{}

	Drop struct {
		Place   Place
		Target  BlockID
		Unwind  any // UnwindAction
		Replace bool
		Drop    *BlockID
	}

	Call struct {
		Func        any
		Args        []any // Operand
		Destination Place
		Target      *BlockID
		Unwind      any
		FnSpan      Span
	}

	Assert struct {
		Cond     any
		Expected bool
		Msg      any // AssertMessage
		Target   BlockID
		Unwind   any
	}
)

// UnwindAction.
type (
	Continue          struct{}
	UnwindUnreachable struct{}
	Terminate         struct{}

	Cleanup struct {
		Block BlockID
	}
)

// AssertMessage.
type (
	BoundsCheck struct {
		Len, Index any
	}

	Overflow struct {
		Op   string
		L, R any
	}

	OverflowNeg struct {
		Op any
	}

	DivisionByZero struct {
		Op any
	}

	RemainderByZero struct {
		Op any
	}

	MisalignedPointerDereference struct {
		Required, Found any
	}

	NullPointerDereference struct{}
)

// PlaceElem.
type (
	Deref struct{}

	Field struct {
		Index uint64
		Ty    Ty
	}

	Index struct {
		Local Local
	}

	ConstantIndex struct {
		Offset    uint64
		MinLength uint64
		FromEnd   bool
	}

	Subslice struct {
		From    uint64
		To      uint64
		FromEnd bool
	}

	Downcast struct {
		Name    string
		Variant uint64
	}

	OpaqueCast struct {
		Ty Ty
	}

	Subtype struct {
		Ty Ty
	}

	UnwrapUnsafeBinder struct {
		Ty Ty
	}
)

// Operand.
type (
	Copy struct {
		Place Place
	}

	Move struct {
		Place Place
	}

	Constant struct {
		Const ConstOperand
	}

	ConstOperand struct {
		Span  Span
		Const any // MirConst
	}
)

// Rvalue.
type (
	Use struct {
		Op any
	}

	Repeat struct {
		Op    any
		Count any // TyConst
	}

	Ref struct {
		Kind  string // Shared | Fake | Mut
		Place Place
	}

	RawPtr struct {
		Kind  string // Mut | Const | FakeForPtrMetadata
		Place Place
	}

	Len struct {
		Place Place
	}

	BinaryOp struct {
		Op   string
		L, R any
	}

	NullaryOp struct {
		Op string
		Ty Ty
	}

	UnaryOp struct {
		Op string
		X  any
	}

	Discriminant struct {
		Place Place
	}

	ShallowInitBox struct {
		Op any
		Ty Ty
	}

	CopyForDeref struct {
		Place Place
	}

	WrapUnsafeBinder struct {
		Op any
		Ty Ty
	}
)

// LocalInfo.
type (
	User          struct{}
	Boring        struct{}
	AggregateTemp struct{}
	DerefTemp     struct{}
	FakeBorrow    struct{}

	ConstRef struct {
		DefID DefID
	}

	StaticRef struct {
		DefID DefID
	}
)
