package translate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/mmir/compiler/host"
	"github.com/slowlang/mmir/compiler/mmir"
)

type variantCase struct {
	name string
	node string
	want any
}

const variantTypes = `[
	{"id":0,"kind":{"Tuple":[]}},
	{"id":1,"kind":{"Int":"I32"}},
	{"id":2,"kind":{"RawPtr":[1,"Mut"]}},
	{"id":3,"kind":{"Uint":"Usize"}},
	{"id":4,"kind":"Bool"},
	{"id":5,"kind":{"Ref":["ReErased",1,"Not"]}},
	{"id":6,"kind":{"Uint":"U128"}},
	{"id":7,"kind":{"Array":[1,{"Value":[3,{"Leaf":{"data":"4","size":8}}]}]}},
	{"id":8,"kind":{"Slice":1}},
	{"id":9,"kind":"Char"},
	{"id":10,"kind":"Str"},
	{"id":11,"kind":"Never"},
	{"id":12,"kind":{"Int":"Isize"}},
	{"id":13,"kind":{"Float":"F64"}},
	{"id":14,"kind":{"Uint":"U8"}},
	{"id":15,"kind":{"Adt":[1,[]]}}
]`

func jplace(l int, proj ...string) string {
	return fmt.Sprintf(`{"local":%d,"projection":[%s]}`, l, strings.Join(proj, ","))
}

func jcopy(l int) string { return `{"Copy":` + jplace(l) + `}` }
func jmove(l int) string { return `{"Move":` + jplace(l) + `}` }

func jconst(c string) string {
	return `{"Constant":{"span":{"lo":0,"hi":0},"const_":` + c + `}}`
}

func jint(v string, ty int) string {
	return jconst(fmt.Sprintf(`{"Val":[{"Scalar":{"Int":{"data":"%s","size":4}}},%d]}`, v, ty))
}

func jassign(l int, rv string) string {
	return fmt.Sprintf(`{"Assign":[%s,%s]}`, jplace(l), rv)
}

func jstmt(kind string) string {
	return `{"kind":` + kind + `,"source_info":{"span":{"lo":1,"hi":2},"scope":0}}`
}

// variantUnit wraps a statement and a terminator into a four block body
// over locals _0.._5 of types 0..5.
func variantUnit(stmt, term string) string {
	var stmts string
	if stmt != "" {
		stmts = jstmt(stmt)
	}

	ret := `{"statements":[],"terminator":` + jstmt(`"Return"`) + `,"is_cleanup":false}`

	locals := make([]string, 6)
	for i := range locals {
		locals[i] = fmt.Sprintf(`{"mutability":"Mut","ty":%d,"source_info":{"span":{"lo":0,"hi":0},"scope":0},"local_info":"Boring"}`, i)
	}

	return `{
	"crate":"variants",
	"items":[{"def_id":1,"name":"f","body":{
		"blocks":[{"statements":[` + stmts + `],"terminator":` + jstmt(term) + `,"is_cleanup":false},` + ret + `,` + ret + `,` + ret + `],
		"locals":[` + strings.Join(locals, ",") + `],
		"arg_count":1,
		"var_debug_info":[],
		"spread_arg":null,
		"span":{"lo":0,"hi":10}
	}}],
	"types":` + variantTypes + `,
	"allocs":[{"id":9,"mutability":"Mut","size":16},{"id":10,"mutability":"Not","size":4}]
}`
}

func translateUnit(t *testing.T, data string) mmir.Body {
	t.Helper()

	u, err := host.DecodeBytes([]byte(data))
	require.NoError(t, err)
	require.Len(t, u.Items, 1)

	b := Body(&u.Context, u.Items[0].DefID, u.Items[0].Body)

	assert.Empty(t, mmir.Check(&b))

	out, err := mmir.Marshal(&mmir.Output{Version: mmir.Version, Crate: u.Crate, Bodies: []mmir.Body{b}})
	require.NoError(t, err)
	assert.NoError(t, mmir.ValidateJSON(out))

	return b
}

func runStatements(t *testing.T, cases []variantCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := translateUnit(t, variantUnit(tc.node, `"Return"`))

			require.Len(t, b.Blocks[0].Statements, 2)
			assert.Equal(t, tc.want, b.Blocks[0].Statements[0].Kind)
		})
	}
}

func cval(v mmir.ConstVal, typ mmir.Typ) mmir.Constant {
	return mmir.Constant{Const: mmir.ConstValue{Val: v, Typ: typ}}
}

func TestStatementVariants(t *testing.T) {
	runStatements(t, []variantCase{
		{"set_discriminant", `{"SetDiscriminant":{"place":` + jplace(1) + `,"variant_index":2}}`, mmir.SetDiscriminant{Place: mp(1), Variant: 2}},
		{"deinit", `{"Deinit":` + jplace(1) + `}`, mmir.Deinit{Place: mp(1)}},
		{"place_mention", `{"PlaceMention":` + jplace(5) + `}`, mmir.PlaceMention{Place: mp(5)}},
		{"storage_live", `{"StorageLive":3}`, mmir.StorageLive{Local: 3}},
		{"storage_dead", `{"StorageDead":3}`, mmir.StorageDead{Local: 3}},
		{"retag", `{"Retag":["TwoPhase",` + jplace(2) + `]}`, mmir.Retag{Kind: mmir.RetagTwoPhase, Place: mp(2)}},
		{"retag_fn_entry", `{"Retag":["FnEntry",` + jplace(5) + `]}`, mmir.Retag{Kind: mmir.RetagFnEntry, Place: mp(5)}},
		{"assume", `{"Intrinsic":{"Assume":` + jcopy(4) + `}}`, mmir.Intrinsic{Kind: mmir.Assume{Op: mmir.Copy{Place: mp(4)}}}},
		{"copy_nonoverlapping", `{"Intrinsic":{"CopyNonOverlapping":{"src":` + jcopy(2) + `,"dst":` + jmove(2) + `,"count":` + jint("1", 3) + `}}}`,
			mmir.Intrinsic{Kind: mmir.CopyNonOverlapping{
				Src:   mmir.Copy{Place: mp(2)},
				Dst:   mmir.Move{Place: mp(2)},
				Count: cval(mmir.ScalarInt{Value: 1}, mmir.TyUsize{}),
			}}},
		{"intrinsic_unknown", `{"Intrinsic":{"Prefetch":0}}`, mmir.Intrinsic{Kind: mmir.IntrinsicUnknown{}}},
		{"nop", `"Nop"`, mmir.Nop{}},
		{"const_eval_counter", `"ConstEvalCounter"`, mmir.ConstEvalCounter{}},
		{"coverage", `{"Coverage":{"kind":"CounterIncrement"}}`, mmir.StatementUnknown{}},
	})
}

func TestRvalueVariants(t *testing.T) {
	i32 := mmir.TyInt{Bits: 32}
	seven := cval(mmir.ScalarInt{Value: 7}, i32)

	assign := func(rv mmir.Rvalue) mmir.Assign {
		return mmir.Assign{Place: mp(1), Rvalue: rv}
	}

	runStatements(t, []variantCase{
		{"use_move", jassign(1, `{"Use":`+jmove(1)+`}`), assign(mmir.Use{Op: mmir.Move{Place: mp(1)}})},
		{"repeat", jassign(1, `{"Repeat":[`+jint("7", 1)+`,{"Value":[3,{"Leaf":{"data":"4","size":8}}]}]}`),
			assign(mmir.Repeat{Op: seven, Count: mmir.ConstValue{Val: mmir.ScalarInt{Value: 4}, Typ: mmir.TyUsize{}}})},
		{"ref_shared", jassign(5, `{"Ref":["ReErased","Shared",`+jplace(1)+`]}`), mmir.Assign{Place: mp(5), Rvalue: mmir.Ref{Kind: mmir.BorrowShared, Place: mp(1)}}},
		{"ref_fake", jassign(5, `{"Ref":["ReErased",{"Fake":"Deep"},`+jplace(1)+`]}`), mmir.Assign{Place: mp(5), Rvalue: mmir.Ref{Kind: mmir.BorrowFake, Place: mp(1)}}},
		{"ref_mut", jassign(5, `{"Ref":["ReErased",{"Mut":{"kind":"TwoPhaseBorrow"}},`+jplace(1)+`]}`), mmir.Assign{Place: mp(5), Rvalue: mmir.Ref{Kind: mmir.BorrowMut, Place: mp(1)}}},
		{"raw_ptr", jassign(2, `{"RawPtr":["Mut",`+jplace(1)+`]}`), mmir.Assign{Place: mp(2), Rvalue: mmir.RawPtr{Mut: mmir.Mut, Place: mp(1)}}},
		{"raw_ptr_const", jassign(2, `{"RawPtr":["Const",`+jplace(1)+`]}`), mmir.Assign{Place: mp(2), Rvalue: mmir.RawPtr{Mut: mmir.Not, Place: mp(1)}}},
		{"len", jassign(3, `{"Len":`+jplace(5, `"Deref"`)+`}`), mmir.Assign{Place: mp(3), Rvalue: mmir.Len{Place: mp(5, mmir.Deref{})}}},
		{"discriminant", jassign(3, `{"Discriminant":`+jplace(1)+`}`), mmir.Assign{Place: mp(3), Rvalue: mmir.Discriminant{Place: mp(1)}}},
		{"copy_for_deref", jassign(2, `{"CopyForDeref":`+jplace(2)+`}`), mmir.Assign{Place: mp(2), Rvalue: mmir.CopyForDeref{Place: mp(2)}}},
		{"binary_op", jassign(1, `{"BinaryOp":["AddWithOverflow",[`+jcopy(1)+`,`+jint("7", 1)+`]]}`),
			assign(mmir.BinaryOp{Op: mmir.AddWithOverflow, L: mmir.Copy{Place: mp(1)}, R: seven})},
		{"binary_op_unknown", jassign(1, `{"BinaryOp":["Frobnicate",[`+jcopy(1)+`,`+jcopy(1)+`]]}`),
			assign(mmir.BinaryOp{Op: mmir.BinOpUnknown, L: mmir.Copy{Place: mp(1)}, R: mmir.Copy{Place: mp(1)}})},
		{"size_of", jassign(3, `{"NullaryOp":["SizeOf",1]}`), mmir.Assign{Place: mp(3), Rvalue: mmir.NullaryOp{Op: mmir.SizeOf}}},
		{"ub_checks", jassign(4, `{"NullaryOp":["UbChecks",4]}`), mmir.Assign{Place: mp(4), Rvalue: mmir.NullaryOp{Op: mmir.UbChecks}}},
		{"unary_op", jassign(3, `{"UnaryOp":["PtrMetadata",`+jcopy(2)+`]}`), mmir.Assign{Place: mp(3), Rvalue: mmir.UnaryOp{Op: mmir.UnPtrMetadata, X: mmir.Copy{Place: mp(2)}}}},
		{"shallow_init_box", jassign(2, `{"ShallowInitBox":[`+jmove(2)+`,1]}`),
			mmir.Assign{Place: mp(2), Rvalue: mmir.ShallowInitBox{Op: mmir.Move{Place: mp(2)}, Typ: i32}}},
		{"wrap_unsafe_binder", jassign(2, `{"WrapUnsafeBinder":[`+jcopy(2)+`,2]}`),
			mmir.Assign{Place: mp(2), Rvalue: mmir.WrapUnsafeBinder{Op: mmir.Copy{Place: mp(2)}, Typ: mmir.TyRawPtr{Elem: i32, Mut: mmir.Mut}}}},
		{"aggregate", jassign(0, `{"Aggregate":["Tuple",[]]}`), mmir.Assign{Place: mp(0), Rvalue: mmir.RvalueUnknown{}}},
		{"operand_unknown", jassign(1, `{"Use":{"RuntimeChecks":"UbChecks"}}`), assign(mmir.Use{Op: mmir.Constant{Const: mmir.ConstUnknown{}}})},
	})
}

func TestProjectionVariants(t *testing.T) {
	i32 := mmir.TyInt{Bits: 32}

	for _, tc := range []variantCase{
		{"deref", `"Deref"`, mmir.Deref{}},
		{"field", `{"Field":[1,1]}`, mmir.Field{Index: 1, Typ: i32}},
		{"index", `{"Index":3}`, mmir.Index{Local: 3}},
		{"constant_index", `{"ConstantIndex":{"offset":1,"min_length":3,"from_end":true}}`, mmir.ConstantIndex{Offset: 1, MinLength: 3, FromEnd: true}},
		{"subslice", `{"Subslice":{"from":1,"to":2,"from_end":false}}`, mmir.Subslice{From: 1, To: 2}},
		{"downcast", `{"Downcast":["Some",1]}`, mmir.Downcast{Variant: 1}},
		{"downcast_unnamed", `{"Downcast":[null,0]}`, mmir.Downcast{Variant: 0}},
		{"opaque_cast", `{"OpaqueCast":1}`, mmir.OpaqueCast{Typ: i32}},
		{"subtype", `{"Subtype":2}`, mmir.Subtype{Typ: mmir.TyRawPtr{Elem: i32, Mut: mmir.Mut}}},
		{"unwrap_unsafe_binder", `{"UnwrapUnsafeBinder":15}`, mmir.UnwrapUnsafeBinder{Typ: mmir.TyUnknown{}}},
		{"unknown", `{"Weird":1}`, mmir.ProjectionUnknown{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stmt := jassign(1, `{"Use":{"Copy":`+jplace(5, tc.node)+`}}`)

			b := translateUnit(t, variantUnit(stmt, `"Return"`))

			assert.Equal(t, mmir.Assign{
				Place:  mp(1),
				Rvalue: mmir.Use{Op: mmir.Copy{Place: mp(5, tc.want.(mmir.Projection))}},
			}, b.Blocks[0].Statements[0].Kind)
		})
	}
}

func TestConstVariants(t *testing.T) {
	i32 := mmir.TyInt{Bits: 32}
	usize := mmir.TyUsize{}

	param := `{"Param":{"index":0,"name":"N"}}`
	leaf := func(v string) string { return `{"Value":[3,{"Leaf":{"data":"` + v + `","size":8}}]}` }
	expr := func(kind string, args ...string) string {
		return `{"Ty":[3,{"Expr":{"kind":` + kind + `,"args":[` + strings.Join(args, ",") + `]}}]}`
	}

	typed := func(c mmir.Const) mmir.Const { return mmir.ConstTyped{Typ: usize, Const: c} }
	args := []mmir.Arg{
		{Typ: usize, Const: mmir.ConstParam{Index: 0}},
		{Typ: usize, Const: mmir.ConstValue{Val: mmir.ScalarInt{Value: 1}, Typ: usize}},
	}

	for _, tc := range []variantCase{
		{"int_u128", `{"Val":[{"Scalar":{"Int":{"data":"340282366920938463463374607431768211455","size":16}}},6]}`,
			mmir.ConstValue{Val: mmir.ScalarInt{Value: 0xffffffff}, Typ: mmir.TyUint{Bits: 128}}},
		{"ptr", `{"Val":[{"Scalar":{"Ptr":[{"alloc_id":9,"offset":4},8]}},2]}`,
			mmir.ConstValue{Val: mmir.ScalarPtr{Alloc: 9, Offset: 4, Size: 8}, Typ: mmir.TyRawPtr{Elem: i32, Mut: mmir.Mut}}},
		{"scalar_unknown", `{"Val":[{"Scalar":{"Float":1}},1]}`, mmir.ConstValue{Val: mmir.ConstValUnknown{}, Typ: i32}},
		{"zero_sized", `{"Val":["ZeroSized",0]}`, mmir.ConstValue{Val: mmir.ZeroSized{}, Typ: mmir.TyTuple{Elems: []mmir.Typ{}}}},
		{"slice_mut", `{"Val":[{"Slice":{"data":9,"meta":5}},8]}`, mmir.ConstValue{Val: mmir.SliceVal{Len: 5, Mut: mmir.Mut}, Typ: mmir.TySlice{Elem: i32}}},
		{"slice_not", `{"Val":[{"Slice":{"data":10,"meta":3}},10]}`, mmir.ConstValue{Val: mmir.SliceVal{Len: 3, Mut: mmir.Not}, Typ: mmir.TyStr{}}},
		{"slice_missing_alloc", `{"Val":[{"Slice":{"data":77,"meta":3}},10]}`, mmir.ConstValue{Val: mmir.SliceVal{Len: 3, Mut: mmir.Not}, Typ: mmir.TyStr{}}},
		{"indirect", `{"Val":[{"Indirect":{"alloc_id":9,"offset":2}},7]}`,
			mmir.ConstValue{Val: mmir.Indirect{Alloc: 9, Offset: 2}, Typ: mmir.TyArray{Elem: i32, Len: mmir.ConstValue{Val: mmir.ScalarInt{Value: 4}, Typ: usize}}}},
		{"missing_type", `{"Val":["ZeroSized",99]}`, mmir.ConstValue{Val: mmir.ZeroSized{}, Typ: mmir.TyUnknown{}}},
		{"ty_param", `{"Ty":[3,` + param + `]}`, typed(mmir.ConstParam{Index: 0})},
		{"ty_leaf", `{"Ty":[3,` + leaf("3") + `]}`, typed(mmir.ConstValue{Val: mmir.ScalarInt{Value: 3}, Typ: usize})},
		{"ty_branch", `{"Ty":[3,{"Value":[3,{"Branch":[]}]}]}`, typed(mmir.ConstValue{Val: mmir.ConstValUnknown{}, Typ: usize})},
		{"ty_unevaluated", `{"Ty":[3,{"Unevaluated":{"def":4,"args":[]}}]}`, typed(mmir.ConstUnknown{})},
		{"expr_binop", expr(`{"Binop":"Add"}`, `[3,`+param+`]`, `[3,`+leaf("1")+`]`), typed(mmir.ConstExpr{Kind: mmir.ExprBinOp{Op: mmir.Add}, Args: args})},
		{"expr_unop", expr(`{"UnOp":"Neg"}`, `[3,`+param+`]`), typed(mmir.ConstExpr{Kind: mmir.ExprUnOp{Op: mmir.UnNeg}, Args: args[:1]})},
		{"expr_call", expr(`"FunctionCall"`), typed(mmir.ConstExpr{Kind: mmir.ExprFunctionCall{}, Args: []mmir.Arg{}})},
		{"expr_cast_as", expr(`{"Cast":"As"}`, `[3,`+leaf("1")+`]`), typed(mmir.ConstExpr{Kind: mmir.ExprCastAs{}, Args: args[1:]})},
		{"expr_cast_use", expr(`{"Cast":"Use"}`, `[3,`+leaf("1")+`]`), typed(mmir.ConstExpr{Kind: mmir.ExprCastUse{}, Args: args[1:]})},
		{"expr_cast_unknown", expr(`{"Cast":"Transmute"}`), typed(mmir.ConstExpr{Kind: mmir.ExprUnknown{}, Args: []mmir.Arg{}})},
		{"unevaluated", `{"Unevaluated":[{"def":4,"args":[],"promoted":null},3]}`, mmir.ConstUnknown{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stmt := jassign(1, `{"Use":`+jconst(tc.node)+`}`)

			b := translateUnit(t, variantUnit(stmt, `"Return"`))

			assert.Equal(t, mmir.Assign{
				Place:  mp(1),
				Rvalue: mmir.Use{Op: mmir.Constant{Const: tc.want.(mmir.Const)}},
			}, b.Blocks[0].Statements[0].Kind)
		})
	}
}

func TestTerminatorVariants(t *testing.T) {
	i32 := mmir.TyInt{Bits: 32}
	usize := mmir.TyUsize{}

	mb := func(b mmir.BlockID) *mmir.BlockID { return &b }

	jassert := func(msg string) string {
		return `{"Assert":{"cond":` + jcopy(4) + `,"expected":true,"msg":` + msg + `,"target":1,"unwind":"Continue"}}`
	}

	massert := func(m mmir.AssertKind) mmir.Assert {
		return mmir.Assert{Cond: mmir.Copy{Place: mp(4)}, Expected: true, Msg: m, Target: 1, Unwind: mmir.UnwindContinue{}}
	}

	call := func(target, unwind string, args ...string) string {
		return `{"Call":{"func":` + jconst(`{"Val":["ZeroSized",15]}`) + `,"args":[` + strings.Join(args, ",") + `],"destination":` + jplace(1) +
			`,"target":` + target + `,"unwind":` + unwind + `,"fn_span":{"lo":9,"hi":4}}}`
	}

	arg := func(op string) string { return `{"node":` + op + `,"span":{"lo":0,"hi":0}}` }

	mcall := func(target *mmir.BlockID, unwind mmir.UnwindAction, args ...mmir.Operand) mmir.Call {
		if args == nil {
			args = []mmir.Operand{}
		}

		return mmir.Call{
			Func:   cval(mmir.ZeroSized{}, mmir.TyUnknown{}),
			Args:   args,
			Dest:   mp(1),
			Target: target,
			Unwind: unwind,
			Span:   mmir.Span{Lo: 4, Hi: 9},
		}
	}

	for _, tc := range []variantCase{
		{"goto", `{"Goto":{"target":2}}`, mmir.Goto{Target: 2}},
		{"switch_int", `{"SwitchInt":{"discr":` + jcopy(1) + `,"targets":{"values":["0","1","340282366920938463463374607431768211455"],"targets":[1,2,3,1]}}}`,
			mmir.SwitchInt{Discr: mmir.Copy{Place: mp(1)}, Targets: mmir.Targets{
				Values:  []uint32{0, 1, 0xffffffff},
				Targets: []mmir.BlockID{1, 2, 3, 1},
			}}},
		{"switch_int_otherwise", `{"SwitchInt":{"discr":` + jmove(4) + `,"targets":{"values":[],"targets":[3]}}}`,
			mmir.SwitchInt{Discr: mmir.Move{Place: mp(4)}, Targets: mmir.Targets{Values: []uint32{}, Targets: []mmir.BlockID{3}}}},
		{"unwind_resume", `"UnwindResume"`, mmir.UnwindResume{}},
		{"unwind_terminate", `{"UnwindTerminate":"InCleanup"}`, mmir.UnwindTerminate{}},
		{"unreachable", `"Unreachable"`, mmir.Unreachable{}},
		{"coroutine_drop", `"CoroutineDrop"`, mmir.CoroutineDrop{}},
		{"drop_cleanup", `{"Drop":{"place":` + jplace(5, `"Deref"`) + `,"target":1,"unwind":{"Cleanup":3},"replace":true,"drop":2}}`,
			mmir.Drop{Place: mp(5, mmir.Deref{}), Target: 1, Unwind: mmir.UnwindCleanup{Block: 3}, Replace: true, AsyncDrop: mb(2)}},
		{"drop_unreachable", `{"Drop":{"place":` + jplace(1) + `,"target":2,"unwind":"Unreachable","replace":false,"drop":null}}`,
			mmir.Drop{Place: mp(1), Target: 2, Unwind: mmir.UnwindUnreachable{}}},
		{"call_cleanup", call("1", `{"Cleanup":3}`, arg(jmove(1)), arg(jcopy(2))),
			mcall(mb(1), mmir.UnwindCleanup{Block: 3}, mmir.Move{Place: mp(1)}, mmir.Copy{Place: mp(2)})},
		{"call_terminate", call("null", `{"Terminate":"Abi"}`, arg(jint("5", 1))),
			mcall(nil, mmir.UnwindTerminateProcess{}, cval(mmir.ScalarInt{Value: 5}, i32))},
		{"call_continue", call("2", `"Continue"`), mcall(mb(2), mmir.UnwindContinue{})},
		{"call_unwind_unknown", call("2", `{"Weird":1}`), mcall(mb(2), mmir.UnwindUnknown{})},
		{"bounds_check", jassert(`{"BoundsCheck":{"len":` + jmove(3) + `,"index":` + jcopy(3) + `}}`),
			massert(mmir.BoundsCheck{Len: mmir.Move{Place: mp(3)}, Index: mmir.Copy{Place: mp(3)}})},
		{"overflow", jassert(`{"Overflow":["Mul",` + jcopy(1) + `,` + jint("2", 1) + `]}`),
			massert(mmir.Overflow{Op: mmir.Mul, L: mmir.Copy{Place: mp(1)}, R: cval(mmir.ScalarInt{Value: 2}, i32)})},
		{"overflow_neg", jassert(`{"OverflowNeg":` + jcopy(1) + `}`), massert(mmir.OverflowNeg{Op: mmir.Copy{Place: mp(1)}})},
		{"division_by_zero", jassert(`{"DivisionByZero":` + jcopy(1) + `}`), massert(mmir.DivisionByZero{Op: mmir.Copy{Place: mp(1)}})},
		{"remainder_by_zero", jassert(`{"RemainderByZero":` + jcopy(1) + `}`), massert(mmir.RemainderByZero{Op: mmir.Copy{Place: mp(1)}})},
		{"null_pointer", jassert(`"NullPointerDereference"`), massert(mmir.NullPointerDereference{})},
		{"misaligned", jassert(`{"MisalignedPointerDereference":{"required":` + jint("4", 3) + `,"found":` + jcopy(3) + `}}`),
			massert(mmir.MisalignedPointerDereference{Required: cval(mmir.ScalarInt{Value: 4}, usize), Found: mmir.Copy{Place: mp(3)}})},
		{"assert_unknown", jassert(`{"ResumedAfterReturn":"Coroutine"}`), massert(mmir.AssertUnknown{})},
		{"inline_asm", `{"InlineAsm":{"template":[]}}`, mmir.StatementUnknown{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := translateUnit(t, variantUnit(`"Nop"`, tc.node))

			st := b.Blocks[0].Statements
			require.Len(t, st, 2)

			assert.Equal(t, tc.want, st[1].Kind)
			assert.Equal(t, mmir.Span{Lo: 1, Hi: 2}, st[1].Span)

			_, ok := b.Blocks[0].Terminator()
			assert.Equal(t, tc.want != mmir.StatementUnknown{}, ok)
		})
	}
}

func TestBodyVariants(t *testing.T) {
	i32 := mmir.TyInt{Bits: 32}

	locals := []string{
		`{"mutability":"Mut","ty":0,"source_info":{"span":{"lo":0,"hi":0},"scope":0},"local_info":"Boring"}`,
		`{"mutability":"Not","ty":5,"source_info":{"span":{"lo":0,"hi":0},"scope":0},"local_info":"User"}`,
		`{"mutability":"Not","ty":9,"source_info":{"span":{"lo":0,"hi":0},"scope":1},"local_info":"AggregateTemp"}`,
		`{"mutability":"Mut","ty":10,"source_info":{"span":{"lo":0,"hi":0},"scope":1},"local_info":"DerefTemp"}`,
		`{"mutability":"Mut","ty":11,"source_info":{"span":{"lo":0,"hi":0},"scope":2},"local_info":"FakeBorrow"}`,
		`{"mutability":"Mut","ty":12,"source_info":{"span":{"lo":0,"hi":0},"scope":2},"local_info":{"ConstRef":{"def_id":11}}}`,
		`{"mutability":"Mut","ty":13,"source_info":{"span":{"lo":0,"hi":0},"scope":2},"local_info":{"StaticRef":{"def_id":12,"is_thread_local":false}}}`,
		`{"mutability":"Mut","ty":14,"source_info":{"span":{"lo":0,"hi":0},"scope":2},"local_info":{"IfThenRescopeTemp":{"if_then":3}}}`,
	}

	debug := []string{
		`{"name":"a","source_info":{"span":{"lo":3,"hi":4},"scope":1},"composite":{"ty":1,"projection":[{"Field":[1,1]}]},"value":{"Place":` + jplace(2, `"Deref"`) + `},"argument_index":2}`,
		`{"name":"N","source_info":{"span":{"lo":5,"hi":6},"scope":0},"composite":null,"value":{"Const":{"span":{"lo":5,"hi":6},"const_":{"Val":[{"Scalar":{"Int":{"data":"7","size":8}}},3]}}},"argument_index":null}`,
		`{"name":"z","source_info":{"span":{"lo":7,"hi":8},"scope":2},"composite":null,"value":{"Weird":0},"argument_index":null}`,
	}

	data := `{
	"crate":"variants",
	"items":[{"def_id":1,"name":"closure","body":{
		"blocks":[{"statements":[],"terminator":` + jstmt(`"Return"`) + `,"is_cleanup":true}],
		"locals":[` + strings.Join(locals, ",") + `],
		"arg_count":2,
		"var_debug_info":[` + strings.Join(debug, ",") + `],
		"spread_arg":2,
		"span":{"lo":40,"hi":12}
	}}],
	"types":` + variantTypes + `,
	"allocs":[]
}`

	b := translateUnit(t, data)

	assert.Equal(t, mmir.Span{Lo: 12, Hi: 40}, b.Span)
	assert.Equal(t, uint32(2), b.ArgCount)
	require.NotNil(t, b.SpreadArg)
	assert.Equal(t, mmir.Local(2), *b.SpreadArg)
	assert.True(t, b.Blocks[0].IsCleanup)

	assert.Equal(t, []mmir.LocalDecl{
		{Scope: 0, Info: mmir.Boring{}, Typ: mmir.TyTuple{Elems: []mmir.Typ{}}, Mut: mmir.Mut},
		{Scope: 0, Info: mmir.User{}, Typ: mmir.TyRef{Elem: i32, Mut: mmir.Not}, Mut: mmir.Not},
		{Scope: 1, Info: mmir.AggregateTemp{}, Typ: mmir.TyChar{}, Mut: mmir.Not},
		{Scope: 1, Info: mmir.DerefTemp{}, Typ: mmir.TyStr{}, Mut: mmir.Mut},
		{Scope: 2, Info: mmir.FakeBorrow{}, Typ: mmir.TyUnknown{}, Mut: mmir.Mut},
		{Scope: 2, Info: mmir.ConstRef{Def: 11}, Typ: mmir.TyIsize{}, Mut: mmir.Mut},
		{Scope: 2, Info: mmir.StaticRef{Def: 12}, Typ: mmir.TyFloat{Bits: 64}, Mut: mmir.Mut},
		{Scope: 2, Info: mmir.LocalInfoUnknown{}, Typ: mmir.TyUint{Bits: 8}, Mut: mmir.Mut},
	}, b.LocalDecls)

	argIndex := uint32(2)

	assert.Equal(t, []mmir.VarDebugInfo{
		{
			Content:  mmir.DebugPlace{Place: mp(2, mmir.Deref{})},
			Scope:    1,
			Name:     "a",
			ArgIndex: &argIndex,
			Composite: &mmir.VarDebugInfoFragment{
				Typ:  i32,
				Proj: []mmir.Projection{mmir.Field{Index: 1, Typ: i32}},
			},
		},
		{
			Content: mmir.DebugConst{Const: mmir.ConstValue{Val: mmir.ScalarInt{Value: 7}, Typ: mmir.TyUsize{}}},
			Scope:   0,
			Name:    "N",
		},
		{
			Content: mmir.DebugUnknown{},
			Scope:   2,
			Name:    "z",
		},
	}, b.VarDebugInfo)
}
