package mmir

// Typ covers scalar, pointer and layout-relevant shapes.
// Everything else is TyUnknown.
//
//sumtype:decl
type Typ interface {
	typ()
}

type (
	TyBool  struct{}
	TyChar  struct{}
	TyIsize struct{}
	TyUsize struct{}
	TyStr   struct{}

	TyInt struct {
		Bits uint32
	}

	TyUint struct {
		Bits uint32
	}

	TyFloat struct {
		Bits uint32
	}

	TyArray struct {
		Elem Typ
		Len  Const
	}

	TySlice struct {
		Elem Typ
	}

	TyRawPtr struct {
		Elem Typ
		Mut  Mutability
	}

	TyRef struct {
		Elem Typ
		Mut  Mutability
	}

	TyTuple struct {
		Elems []Typ
	}

	TyUnknown struct{}
)

//sumtype:decl
type Const interface {
	constant()
}

type (
	// ConstTyped is a type-level constant, as array lengths and const generic args.
	ConstTyped struct {
		Typ   Typ
		Const Const
	}

	ConstValue struct {
		Val ConstVal
		Typ Typ
	}

	ConstParam struct {
		Index uint32
	}

	// ConstExpr is an unevaluated constant expression.
	ConstExpr struct {
		Kind ExprKind
		Args []Arg
	}

	ConstUnknown struct{}

	Arg struct {
		Typ   Typ   `json:"typ"`
		Const Const `json:"const"`
	}
)

// ConstVal is the abstract value of a compile-time constant.
// Memory contents are never embedded.
//
//sumtype:decl
type ConstVal interface {
	constVal()
}

type (
	ScalarInt struct {
		Value uint32
	}

	ScalarPtr struct {
		Alloc  uint32
		Offset uint32
		Size   uint8
	}

	ZeroSized struct{}

	SliceVal struct {
		Len uint32
		Mut Mutability
	}

	Indirect struct {
		Alloc  uint32
		Offset uint32
	}

	ConstValUnknown struct{}
)

//sumtype:decl
type ExprKind interface {
	exprKind()
}

type (
	ExprBinOp struct {
		Op BinOp
	}

	ExprUnOp struct {
		Op UnOp
	}

	ExprFunctionCall struct{}
	ExprCastAs       struct{}
	ExprCastUse      struct{}
	ExprUnknown      struct{}
)

func (TyBool) typ()    {}
func (TyChar) typ()    {}
func (TyIsize) typ()   {}
func (TyUsize) typ()   {}
func (TyStr) typ()     {}
func (TyInt) typ()     {}
func (TyUint) typ()    {}
func (TyFloat) typ()   {}
func (TyArray) typ()   {}
func (TySlice) typ()   {}
func (TyRawPtr) typ()  {}
func (TyRef) typ()     {}
func (TyTuple) typ()   {}
func (TyUnknown) typ() {}

func (ConstTyped) constant()   {}
func (ConstValue) constant()   {}
func (ConstParam) constant()   {}
func (ConstExpr) constant()    {}
func (ConstUnknown) constant() {}

func (ScalarInt) constVal()       {}
func (ScalarPtr) constVal()       {}
func (ZeroSized) constVal()       {}
func (SliceVal) constVal()        {}
func (Indirect) constVal()        {}
func (ConstValUnknown) constVal() {}

func (ExprBinOp) exprKind()        {}
func (ExprUnOp) exprKind()         {}
func (ExprFunctionCall) exprKind() {}
func (ExprCastAs) exprKind()       {}
func (ExprCastUse) exprKind()      {}
func (ExprUnknown) exprKind()      {}
