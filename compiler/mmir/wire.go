package mmir

import (
	"github.com/goccy/go-json"
	"tlog.app/go/errors"
)

// Wire shape.
// A variant is {"tag": name, "args": [payload...]}, args omitted when empty.
// A record is an object with fields in declaration order.
// An absent option is null.

type tagged struct {
	Tag  string `json:"tag"`
	Args []any  `json:"args,omitempty"`
}

func tag(name string, args ...any) ([]byte, error) {
	return json.Marshal(tagged{Tag: name, Args: args})
}

func Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal")
	}

	return data, nil
}

func (x Mutability) MarshalJSON() ([]byte, error) { return tag(x.String()) }
func (x BinOp) MarshalJSON() ([]byte, error)      { return tag(x.String()) }
func (x UnOp) MarshalJSON() ([]byte, error)       { return tag(x.String()) }
func (x NullOp) MarshalJSON() ([]byte, error)     { return tag(x.String()) }
func (x BorrowKind) MarshalJSON() ([]byte, error) { return tag(x.String()) }
func (x RetagKind) MarshalJSON() ([]byte, error)  { return tag(x.String()) }

func (x Assign) MarshalJSON() ([]byte, error) { return tag("Assign", x.Place, x.Rvalue) }
func (x Deinit) MarshalJSON() ([]byte, error) { return tag("Deinit", x.Place) }
func (x Retag) MarshalJSON() ([]byte, error)  { return tag("Retag", x.Kind, x.Place) }
func (x Goto) MarshalJSON() ([]byte, error)   { return tag("Goto", x.Target) }
func (x Nop) MarshalJSON() ([]byte, error)    { return tag("Nop") }
func (x Return) MarshalJSON() ([]byte, error) { return tag("Return") }

func (x SetDiscriminant) MarshalJSON() ([]byte, error) {
	return tag("SetDiscriminant", x.Place, x.Variant)
}

func (x StorageLive) MarshalJSON() ([]byte, error)  { return tag("StorageLive", x.Local) }
func (x StorageDead) MarshalJSON() ([]byte, error)  { return tag("StorageDead", x.Local) }
func (x PlaceMention) MarshalJSON() ([]byte, error) { return tag("PlaceMention", x.Place) }
func (x Intrinsic) MarshalJSON() ([]byte, error)    { return tag("Intrinsic", x.Kind) }

func (x ConstEvalCounter) MarshalJSON() ([]byte, error) { return tag("ConstEvalCounter") }
func (x UnwindResume) MarshalJSON() ([]byte, error)     { return tag("UnwindResume") }
func (x UnwindTerminate) MarshalJSON() ([]byte, error)  { return tag("UnwindTerminate") }
func (x Unreachable) MarshalJSON() ([]byte, error)      { return tag("Unreachable") }
func (x CoroutineDrop) MarshalJSON() ([]byte, error)    { return tag("CoroutineDrop") }
func (x StatementUnknown) MarshalJSON() ([]byte, error) { return tag("Unknown") }

func (x SwitchInt) MarshalJSON() ([]byte, error) {
	return tag("SwitchInt", x.Discr, x.Targets)
}

func (x Drop) MarshalJSON() ([]byte, error) {
	return tag("Drop", x.Place, x.Target, x.Unwind, x.Replace, x.AsyncDrop)
}

func (x Call) MarshalJSON() ([]byte, error) {
	return tag("Call", x.Func, x.Args, x.Dest, x.Target, x.Unwind, x.Span)
}

func (x Assert) MarshalJSON() ([]byte, error) {
	return tag("Assert", x.Cond, x.Expected, x.Msg, x.Target, x.Unwind)
}

func (x Assume) MarshalJSON() ([]byte, error) { return tag("Assume", x.Op) }

func (x CopyNonOverlapping) MarshalJSON() ([]byte, error) {
	return tag("CopyNonOverlapping", x.Src, x.Dst, x.Count)
}

func (x IntrinsicUnknown) MarshalJSON() ([]byte, error) { return tag("Unknown") }

func (x UnwindContinue) MarshalJSON() ([]byte, error)         { return tag("Continue") }
func (x UnwindUnreachable) MarshalJSON() ([]byte, error)      { return tag("Unreachable") }
func (x UnwindTerminateProcess) MarshalJSON() ([]byte, error) { return tag("Terminate") }
func (x UnwindCleanup) MarshalJSON() ([]byte, error)          { return tag("Cleanup", x.Block) }
func (x UnwindUnknown) MarshalJSON() ([]byte, error)          { return tag("Unknown") }

func (x BoundsCheck) MarshalJSON() ([]byte, error) { return tag("BoundsCheck", x.Len, x.Index) }
func (x Overflow) MarshalJSON() ([]byte, error)    { return tag("Overflow", x.Op, x.L, x.R) }
func (x OverflowNeg) MarshalJSON() ([]byte, error) { return tag("OverflowNeg", x.Op) }

func (x DivisionByZero) MarshalJSON() ([]byte, error)  { return tag("DivisionByZero", x.Op) }
func (x RemainderByZero) MarshalJSON() ([]byte, error) { return tag("RemainderByZero", x.Op) }

func (x MisalignedPointerDereference) MarshalJSON() ([]byte, error) {
	return tag("MisalignedPointerDereference", x.Required, x.Found)
}

func (x NullPointerDereference) MarshalJSON() ([]byte, error) { return tag("NullPointerDereference") }
func (x AssertUnknown) MarshalJSON() ([]byte, error)          { return tag("Unknown") }

func (x Copy) MarshalJSON() ([]byte, error)     { return tag("Copy", x.Place) }
func (x Move) MarshalJSON() ([]byte, error)     { return tag("Move", x.Place) }
func (x Constant) MarshalJSON() ([]byte, error) { return tag("Constant", x.Const) }

func (x Use) MarshalJSON() ([]byte, error)          { return tag("Use", x.Op) }
func (x Repeat) MarshalJSON() ([]byte, error)       { return tag("Repeat", x.Op, x.Count) }
func (x Ref) MarshalJSON() ([]byte, error)          { return tag("Ref", x.Kind, x.Place) }
func (x RawPtr) MarshalJSON() ([]byte, error)       { return tag("RawPtr", x.Mut, x.Place) }
func (x Len) MarshalJSON() ([]byte, error)          { return tag("Len", x.Place) }
func (x BinaryOp) MarshalJSON() ([]byte, error)     { return tag("BinaryOp", x.Op, x.L, x.R) }
func (x NullaryOp) MarshalJSON() ([]byte, error)    { return tag("NullaryOp", x.Op) }
func (x UnaryOp) MarshalJSON() ([]byte, error)      { return tag("UnaryOp", x.Op, x.X) }
func (x Discriminant) MarshalJSON() ([]byte, error) { return tag("Discriminant", x.Place) }
func (x CopyForDeref) MarshalJSON() ([]byte, error) { return tag("CopyForDeref", x.Place) }

func (x ShallowInitBox) MarshalJSON() ([]byte, error) {
	return tag("ShallowInitBox", x.Op, x.Typ)
}

func (x WrapUnsafeBinder) MarshalJSON() ([]byte, error) {
	return tag("WrapUnsafeBinder", x.Op, x.Typ)
}

func (x RvalueUnknown) MarshalJSON() ([]byte, error) { return tag("Unknown") }

func (x Deref) MarshalJSON() ([]byte, error)      { return tag("Deref") }
func (x Field) MarshalJSON() ([]byte, error)      { return tag("Field", x.Index, x.Typ) }
func (x Index) MarshalJSON() ([]byte, error)      { return tag("Index", x.Local) }
func (x Downcast) MarshalJSON() ([]byte, error)   { return tag("Downcast", x.Variant) }
func (x OpaqueCast) MarshalJSON() ([]byte, error) { return tag("OpaqueCast", x.Typ) }
func (x Subtype) MarshalJSON() ([]byte, error)    { return tag("Subtype", x.Typ) }

func (x ConstantIndex) MarshalJSON() ([]byte, error) {
	return tag("ConstantIndex", x.Offset, x.MinLength, x.FromEnd)
}

func (x Subslice) MarshalJSON() ([]byte, error) {
	return tag("Subslice", x.From, x.To, x.FromEnd)
}

func (x UnwrapUnsafeBinder) MarshalJSON() ([]byte, error) {
	return tag("UnwrapUnsafeBinder", x.Typ)
}

func (x ProjectionUnknown) MarshalJSON() ([]byte, error) { return tag("Unknown") }

func (x User) MarshalJSON() ([]byte, error)             { return tag("User") }
func (x Boring) MarshalJSON() ([]byte, error)           { return tag("Boring") }
func (x AggregateTemp) MarshalJSON() ([]byte, error)    { return tag("AggregateTemp") }
func (x DerefTemp) MarshalJSON() ([]byte, error)        { return tag("DerefTemp") }
func (x FakeBorrow) MarshalJSON() ([]byte, error)       { return tag("FakeBorrow") }
func (x ConstRef) MarshalJSON() ([]byte, error)         { return tag("ConstRef", x.Def) }
func (x StaticRef) MarshalJSON() ([]byte, error)        { return tag("StaticRef", x.Def) }
func (x LocalInfoUnknown) MarshalJSON() ([]byte, error) { return tag("Unknown") }

func (x DebugPlace) MarshalJSON() ([]byte, error)   { return tag("Place", x.Place) }
func (x DebugConst) MarshalJSON() ([]byte, error)   { return tag("Const", x.Const) }
func (x DebugUnknown) MarshalJSON() ([]byte, error) { return tag("Unknown") }

func (x TyBool) MarshalJSON() ([]byte, error)    { return tag("Bool") }
func (x TyChar) MarshalJSON() ([]byte, error)    { return tag("Char") }
func (x TyIsize) MarshalJSON() ([]byte, error)   { return tag("Isize") }
func (x TyUsize) MarshalJSON() ([]byte, error)   { return tag("USize") }
func (x TyStr) MarshalJSON() ([]byte, error)     { return tag("Str") }
func (x TyInt) MarshalJSON() ([]byte, error)     { return tag("I", x.Bits) }
func (x TyUint) MarshalJSON() ([]byte, error)    { return tag("U", x.Bits) }
func (x TyFloat) MarshalJSON() ([]byte, error)   { return tag("F", x.Bits) }
func (x TyArray) MarshalJSON() ([]byte, error)   { return tag("Array", x.Elem, x.Len) }
func (x TySlice) MarshalJSON() ([]byte, error)   { return tag("Slice", x.Elem) }
func (x TyRawPtr) MarshalJSON() ([]byte, error)  { return tag("RawPtr", x.Elem, x.Mut) }
func (x TyRef) MarshalJSON() ([]byte, error)     { return tag("Ref", x.Elem, x.Mut) }
func (x TyTuple) MarshalJSON() ([]byte, error)   { return tag("Tuple", x.Elems) }
func (x TyUnknown) MarshalJSON() ([]byte, error) { return tag("Unknown") }

func (x ConstTyped) MarshalJSON() ([]byte, error)   { return tag("Ty", x.Typ, x.Const) }
func (x ConstValue) MarshalJSON() ([]byte, error)   { return tag("Val", x.Val, x.Typ) }
func (x ConstParam) MarshalJSON() ([]byte, error)   { return tag("Param", x.Index) }
func (x ConstExpr) MarshalJSON() ([]byte, error)    { return tag("Expr", x.Kind, x.Args) }
func (x ConstUnknown) MarshalJSON() ([]byte, error) { return tag("Unknown") }

func (x ScalarInt) MarshalJSON() ([]byte, error) { return tag("ScalarInt", x.Value) }
func (x ZeroSized) MarshalJSON() ([]byte, error) { return tag("ZeroSized") }
func (x SliceVal) MarshalJSON() ([]byte, error)  { return tag("Slice", x.Len, x.Mut) }
func (x Indirect) MarshalJSON() ([]byte, error)  { return tag("Indirect", x.Alloc, x.Offset) }

func (x ScalarPtr) MarshalJSON() ([]byte, error) {
	return tag("ScalarPtr", x.Alloc, x.Offset, x.Size)
}

func (x ConstValUnknown) MarshalJSON() ([]byte, error) { return tag("Unknown") }

func (x ExprBinOp) MarshalJSON() ([]byte, error)        { return tag("BinOp", x.Op) }
func (x ExprUnOp) MarshalJSON() ([]byte, error)         { return tag("UnOp", x.Op) }
func (x ExprFunctionCall) MarshalJSON() ([]byte, error) { return tag("FunctionCall") }
func (x ExprCastAs) MarshalJSON() ([]byte, error)       { return tag("CastAs") }
func (x ExprCastUse) MarshalJSON() ([]byte, error)      { return tag("CastUse") }
func (x ExprUnknown) MarshalJSON() ([]byte, error)      { return tag("Unknown") }
