package host

import (
	"math/big"
	"strconv"
)

type (
	// Uint128 is a host integer up to 128 bits wide, kept as decimal text.
	Uint128 string

	IntTy   string // Isize | I8 | I16 | I32 | I64 | I128
	UintTy  string // Usize | U8 | ...
	FloatTy string // F16 | F32 | F64 | F128
)

// TyKind.
type (
	Bool  struct{}
	Char  struct{}
	Str   struct{}
	Never struct{}

	Int struct {
		Ty IntTy
	}

	Uint struct {
		Ty UintTy
	}

	Float struct {
		Ty FloatTy
	}

	Array struct {
		Elem Ty
		Len  any // TyConst
	}

	Slice struct {
		Elem Ty
	}

	RawPtrTy struct {
		Pointee Ty
		Mut     Mutability
	}

	RefTy struct {
		Pointee Ty
		Mut     Mutability
	}

	Tuple struct {
		Elems []Ty
	}
)

// TyConst (ty::Const kinds).
type (
	ParamConst struct {
		Index uint64
		Name  string
	}

	ValueConst struct {
		Ty     Ty
		ValTree any // Leaf | Opaque
	}

	Leaf struct {
		Scalar ScalarInt
	}

	ExprConst struct {
		Kind any // ExprBinop | ExprUnOp | ExprFunctionCall | ExprCast
		Args []ExprArg
	}

	ExprArg struct {
		Ty    Ty
		Const any // TyConst
	}

	ExprBinop struct {
		Op string
	}

	ExprUnOp struct {
		Op string
	}

	ExprFunctionCall struct{}

	ExprCast struct {
		Kind string // As | Use
	}
)

// MirConst (mir::Const).
type (
	TyMirConst struct {
		Ty    Ty
		Const any // TyConst
	}

	ValMirConst struct {
		Val any // ConstValue
		Ty  Ty
	}
)

// ConstValue.
type (
	Scalar struct {
		Scalar any // ScalarInt | ScalarPtr
	}

	ScalarInt struct {
		Data Uint128
		Size uint64
	}

	ScalarPtr struct {
		Ptr  Pointer
		Size uint64
	}

	Pointer struct {
		AllocID AllocID
		Offset  uint64
	}

	ZeroSized struct{}

	SliceValue struct {
		Data AllocID
		Meta uint64
	}

	Indirect struct {
		AllocID AllocID
		Offset  uint64
	}
)

// Uint32 returns the low 32 bits of x.
// Anything that is not a decimal integer is 0.
func (x Uint128) Uint32() uint32 {
	if v, err := strconv.ParseUint(string(x), 10, 64); err == nil {
		return uint32(v)
	}

	var b big.Int

	if _, ok := b.SetString(string(x), 10); !ok {
		return 0
	}

	if b.Sign() < 0 {
		b.Add(&b, new(big.Int).Lsh(big.NewInt(1), 128))
	}

	b.And(&b, big.NewInt(0xffffffff))

	return uint32(b.Uint64())
}
