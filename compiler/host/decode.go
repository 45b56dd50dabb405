package host

import (
	"bytes"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

type (
	raw = json.RawMessage

	wireUnit struct {
		Crate  string      `json:"crate"`
		Items  []wireItem  `json:"items"`
		Types  []wireType  `json:"types"`
		Allocs []wireAlloc `json:"allocs"`
	}

	wireItem struct {
		DefID DefID     `json:"def_id"`
		Name  string    `json:"name"`
		Body  *wireBody `json:"body"`
	}

	wireType struct {
		ID   Ty  `json:"id"`
		Kind raw `json:"kind"`
	}

	wireAlloc struct {
		ID         AllocID    `json:"id"`
		Mutability Mutability `json:"mutability"`
		Size       uint64     `json:"size"`
	}

	wireBody struct {
		Blocks       []wireBlock        `json:"blocks"`
		Locals       []wireLocal        `json:"locals"`
		ArgCount     uint64             `json:"arg_count"`
		VarDebugInfo []wireVarDebugInfo `json:"var_debug_info"`
		SpreadArg    *Local             `json:"spread_arg"`
		Span         Span               `json:"span"`
	}

	wireBlock struct {
		Statements []wireStatement `json:"statements"`
		Terminator *wireStatement  `json:"terminator"`
		IsCleanup  bool            `json:"is_cleanup"`
	}

	wireStatement struct {
		Kind       raw        `json:"kind"`
		SourceInfo SourceInfo `json:"source_info"`
	}

	wireLocal struct {
		Mutability Mutability `json:"mutability"`
		Ty         Ty         `json:"ty"`
		SourceInfo SourceInfo `json:"source_info"`
		LocalInfo  raw        `json:"local_info"`
	}

	wireVarDebugInfo struct {
		Name          string        `json:"name"`
		SourceInfo    SourceInfo    `json:"source_info"`
		Composite     *wireFragment `json:"composite"`
		Value         raw           `json:"value"`
		ArgumentIndex *uint64       `json:"argument_index"`
	}

	wireFragment struct {
		Ty         Ty    `json:"ty"`
		Projection []raw `json:"projection"`
	}

	wirePlace struct {
		Local      Local `json:"local"`
		Projection []raw `json:"projection"`
	}

	wireConstOperand struct {
		Span  Span `json:"span"`
		Const raw  `json:"const_"`
	}
)

// Decode reads a host dump.
// Malformed JSON or records are errors.
// Node kinds the decoder doesn't know become Opaque values,
// as well as known kinds with a payload of unexpected shape.
func Decode(r io.Reader) (*Unit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	return DecodeBytes(data)
}

func DecodeBytes(data []byte) (_ *Unit, err error) {
	var w wireUnit

	err = json.Unmarshal(data, &w)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal dump")
	}

	u := &Unit{
		Context: *NewContext(w.Crate),
	}

	for _, t := range w.Types {
		if _, ok := u.Types[t.ID]; ok {
			continue
		}

		k, err := decodeTyKind(t.Kind)
		if err != nil {
			return nil, errors.Wrap(err, "type %d", t.ID)
		}

		u.Define(t.ID, k)
	}

	for _, a := range w.Allocs {
		u.Allocs[a.ID] = Alloc{Mutability: a.Mutability, Size: a.Size}
	}

	u.Items = make([]Item, len(w.Items))

	for i, it := range w.Items {
		u.Items[i] = Item{DefID: it.DefID, Name: it.Name}

		if it.Body == nil {
			continue
		}

		u.Items[i].Body, err = decodeBody(it.Body)
		if err != nil {
			return nil, errors.Wrap(err, "item %v (%v)", it.Name, it.DefID)
		}
	}

	return u, nil
}

func decodeBody(w *wireBody) (_ *Body, err error) {
	b := &Body{
		Blocks:       make([]BasicBlockData, len(w.Blocks)),
		Locals:       make([]LocalDecl, len(w.Locals)),
		ArgCount:     w.ArgCount,
		VarDebugInfo: make([]VarDebugInfo, len(w.VarDebugInfo)),
		SpreadArg:    w.SpreadArg,
		Span:         w.Span,
	}

	for i, wb := range w.Blocks {
		bb := &b.Blocks[i]
		bb.IsCleanup = wb.IsCleanup
		bb.Statements = make([]Statement, len(wb.Statements))

		for j, s := range wb.Statements {
			bb.Statements[j].SourceInfo = s.SourceInfo

			bb.Statements[j].Kind, err = decodeStatementKind(s.Kind)
			if err != nil {
				return nil, errors.Wrap(err, "bb%d: statement %d", i, j)
			}
		}

		if wb.Terminator == nil {
			continue
		}

		bb.Terminator = &Terminator{SourceInfo: wb.Terminator.SourceInfo}

		bb.Terminator.Kind, err = decodeTerminatorKind(wb.Terminator.Kind)
		if err != nil {
			return nil, errors.Wrap(err, "bb%d: terminator", i)
		}
	}

	for i, l := range w.Locals {
		b.Locals[i] = LocalDecl{
			Mutability: l.Mutability,
			Ty:         l.Ty,
			SourceInfo: l.SourceInfo,
		}

		b.Locals[i].LocalInfo, err = decodeLocalInfo(l.LocalInfo)
		if err != nil {
			return nil, errors.Wrap(err, "local _%d", i)
		}
	}

	for i, v := range w.VarDebugInfo {
		b.VarDebugInfo[i], err = decodeVarDebugInfo(v)
		if err != nil {
			return nil, errors.Wrap(err, "debug info %v", v.Name)
		}
	}

	return b, nil
}

func decodeVarDebugInfo(w wireVarDebugInfo) (v VarDebugInfo, err error) {
	v = VarDebugInfo{
		Name:          w.Name,
		SourceInfo:    w.SourceInfo,
		ArgumentIndex: w.ArgumentIndex,
	}

	if w.Composite != nil {
		v.Composite = &VarDebugInfoFragment{Ty: w.Composite.Ty}

		v.Composite.Projection, err = decodeProjection(w.Composite.Projection)
		if err != nil {
			return v, errors.Wrap(err, "composite")
		}
	}

	tag, p, err := variant(w.Value)
	if err != nil {
		return v, errors.Wrap(err, "value")
	}

	switch tag {
	case "Place":
		var pl wirePlace

		if err = fields(p, &pl); err == nil {
			v.Value, err = decodePlace(pl)
		}
	case "Const":
		var c wireConstOperand

		if err = fields(p, &c); err == nil {
			v.Value, err = decodeConstOperand(c)
		}
	default:
		v.Value = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		v.Value = degrade(tag, p, err)
	}

	return v, nil
}

func decodeStatementKind(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	var pl wirePlace

	switch tag {
	case "Assign":
		var rv raw

		if err = fields(p, &pl, &rv); err != nil {
			break
		}

		var s Assign

		if s.Place, err = decodePlace(pl); err != nil {
			break
		}

		s.Rvalue, err = decodeRvalue(rv)
		x = s
	case "SetDiscriminant":
		var w struct {
			Place        wirePlace `json:"place"`
			VariantIndex uint64    `json:"variant_index"`
		}

		if err = fields(p, &w); err != nil {
			break
		}

		s := SetDiscriminant{VariantIndex: w.VariantIndex}
		s.Place, err = decodePlace(w.Place)
		x = s
	case "Deinit", "PlaceMention":
		if err = fields(p, &pl); err != nil {
			break
		}

		var place Place

		place, err = decodePlace(pl)

		if tag == "Deinit" {
			x = Deinit{Place: place}
		} else {
			x = PlaceMention{Place: place}
		}
	case "StorageLive":
		var l Local

		err = fields(p, &l)
		x = StorageLive{Local: l}
	case "StorageDead":
		var l Local

		err = fields(p, &l)
		x = StorageDead{Local: l}
	case "Retag":
		var k raw

		if err = fields(p, &k, &pl); err != nil {
			break
		}

		s := Retag{}

		if s.Kind, _, err = variant(k); err != nil {
			break
		}

		s.Place, err = decodePlace(pl)
		x = s
	case "Intrinsic":
		var in any

		in, err = decodeIntrinsic(p)
		x = Intrinsic{Intrinsic: in}
	case "Nop":
		x = Nop{}
	case "ConstEvalCounter":
		x = ConstEvalCounter{}
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeIntrinsic(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "Assume":
		var op any

		op, err = decodeOperand(p)
		x = Assume{Op: op}
	case "CopyNonOverlapping":
		var w struct {
			Src   raw `json:"src"`
			Dst   raw `json:"dst"`
			Count raw `json:"count"`
		}

		if err = fields(p, &w); err != nil {
			break
		}

		var c CopyNonOverlapping

		if c.Src, err = decodeOperand(w.Src); err != nil {
			break
		}

		if c.Dst, err = decodeOperand(w.Dst); err != nil {
			break
		}

		c.Count, err = decodeOperand(w.Count)
		x = c
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeTerminatorKind(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "Goto":
		var w struct {
			Target BlockID `json:"target"`
		}

		err = fields(p, &w)
		x = Goto{Target: w.Target}
	case "SwitchInt":
		var w struct {
			Discr   raw `json:"discr"`
			Targets struct {
				Values  []Uint128 `json:"values"`
				Targets []BlockID `json:"targets"`
			} `json:"targets"`
		}

		if err = fields(p, &w); err != nil {
			break
		}

		s := SwitchInt{Targets: SwitchTargets{Values: w.Targets.Values, Targets: w.Targets.Targets}}
		s.Discr, err = decodeOperand(w.Discr)
		x = s
	case "UnwindResume":
		x = UnwindResume{}
	case "UnwindTerminate":
		x = UnwindTerminate{}
	case "Return":
		x = Return{}
	case "Unreachable":
		x = Unreachable{}
	case "CoroutineDrop":
		x = CoroutineDrop{}
	case "Drop":
		var w struct {
			Place   wirePlace `json:"place"`
			Target  BlockID   `json:"target"`
			Unwind  raw       `json:"unwind"`
			Replace bool      `json:"replace"`
			Drop    *BlockID  `json:"drop"`
		}

		if err = fields(p, &w); err != nil {
			break
		}

		d := Drop{Target: w.Target, Replace: w.Replace, Drop: w.Drop}

		if d.Place, err = decodePlace(w.Place); err != nil {
			break
		}

		d.Unwind, err = decodeUnwindAction(w.Unwind)
		x = d
	case "Call":
		x, err = decodeCall(p)
	case "Assert":
		var w struct {
			Cond     raw     `json:"cond"`
			Expected bool    `json:"expected"`
			Msg      raw     `json:"msg"`
			Target   BlockID `json:"target"`
			Unwind   raw     `json:"unwind"`
		}

		if err = fields(p, &w); err != nil {
			break
		}

		a := Assert{Expected: w.Expected, Target: w.Target}

		if a.Cond, err = decodeOperand(w.Cond); err != nil {
			break
		}

		if a.Msg, err = decodeAssertMessage(w.Msg); err != nil {
			break
		}

		a.Unwind, err = decodeUnwindAction(w.Unwind)
		x = a
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeCall(p raw) (_ any, err error) {
	var w struct {
		Func raw `json:"func"`
		Args []struct {
			Node raw  `json:"node"`
			Span Span `json:"span"`
		} `json:"args"`
		Destination wirePlace `json:"destination"`
		Target      *BlockID  `json:"target"`
		Unwind      raw       `json:"unwind"`
		FnSpan      Span      `json:"fn_span"`
	}

	if err = fields(p, &w); err != nil {
		return nil, err
	}

	c := Call{
		Args:   make([]any, len(w.Args)),
		Target: w.Target,
		FnSpan: w.FnSpan,
	}

	if c.Func, err = decodeOperand(w.Func); err != nil {
		return nil, errors.Wrap(err, "func")
	}

	for i, a := range w.Args {
		if c.Args[i], err = decodeOperand(a.Node); err != nil {
			return nil, errors.Wrap(err, "arg %d", i)
		}
	}

	if c.Destination, err = decodePlace(w.Destination); err != nil {
		return nil, errors.Wrap(err, "destination")
	}

	if c.Unwind, err = decodeUnwindAction(w.Unwind); err != nil {
		return nil, errors.Wrap(err, "unwind")
	}

	return c, nil
}

func decodeUnwindAction(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "Continue":
		x = Continue{}
	case "Unreachable":
		x = UnwindUnreachable{}
	case "Terminate":
		x = Terminate{}
	case "Cleanup":
		var bb BlockID

		err = fields(p, &bb)
		x = Cleanup{Block: bb}
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeAssertMessage(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	var a, b raw

	switch tag {
	case "BoundsCheck":
		var w struct {
			Len   raw `json:"len"`
			Index raw `json:"index"`
		}

		if err = fields(p, &w); err != nil {
			break
		}

		var m BoundsCheck

		if m.Len, err = decodeOperand(w.Len); err != nil {
			break
		}

		m.Index, err = decodeOperand(w.Index)
		x = m
	case "Overflow":
		var op raw

		if err = fields(p, &op, &a, &b); err != nil {
			break
		}

		m := Overflow{}

		if m.Op, _, err = variant(op); err != nil {
			break
		}

		if m.L, err = decodeOperand(a); err != nil {
			break
		}

		m.R, err = decodeOperand(b)
		x = m
	case "OverflowNeg", "DivisionByZero", "RemainderByZero":
		var op any

		if op, err = decodeOperand(p); err != nil {
			break
		}

		switch tag {
		case "OverflowNeg":
			x = OverflowNeg{Op: op}
		case "DivisionByZero":
			x = DivisionByZero{Op: op}
		default:
			x = RemainderByZero{Op: op}
		}
	case "MisalignedPointerDereference":
		var w struct {
			Required raw `json:"required"`
			Found    raw `json:"found"`
		}

		if err = fields(p, &w); err != nil {
			break
		}

		var m MisalignedPointerDereference

		if m.Required, err = decodeOperand(w.Required); err != nil {
			break
		}

		m.Found, err = decodeOperand(w.Found)
		x = m
	case "NullPointerDereference":
		x = NullPointerDereference{}
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeLocalInfo(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	var w struct {
		DefID DefID `json:"def_id"`
	}

	switch tag {
	case "User":
		x = User{}
	case "Boring":
		x = Boring{}
	case "AggregateTemp":
		x = AggregateTemp{}
	case "DerefTemp":
		x = DerefTemp{}
	case "FakeBorrow":
		x = FakeBorrow{}
	case "ConstRef":
		err = fields(p, &w)
		x = ConstRef{DefID: w.DefID}
	case "StaticRef":
		err = fields(p, &w)
		x = StaticRef{DefID: w.DefID}
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodePlace(w wirePlace) (p Place, err error) {
	p.Local = w.Local

	p.Projection, err = decodeProjection(w.Projection)
	if err != nil {
		return p, errors.Wrap(err, "place _%d", w.Local)
	}

	return p, nil
}

func decodeProjection(l []raw) (_ []any, err error) {
	if l == nil {
		return nil, nil
	}

	proj := make([]any, len(l))

	for i, r := range l {
		proj[i], err = decodePlaceElem(r)
		if err != nil {
			return nil, errors.Wrap(err, "projection %d", i)
		}
	}

	return proj, nil
}

func decodePlaceElem(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	var t Ty

	switch tag {
	case "Deref":
		x = Deref{}
	case "Field":
		var f Field

		err = fields(p, &f.Index, &f.Ty)
		x = f
	case "Index":
		var l Local

		err = fields(p, &l)
		x = Index{Local: l}
	case "ConstantIndex":
		var w struct {
			Offset    uint64 `json:"offset"`
			MinLength uint64 `json:"min_length"`
			FromEnd   bool   `json:"from_end"`
		}

		err = fields(p, &w)
		x = ConstantIndex(w)
	case "Subslice":
		var w struct {
			From    uint64 `json:"from"`
			To      uint64 `json:"to"`
			FromEnd bool   `json:"from_end"`
		}

		err = fields(p, &w)
		x = Subslice(w)
	case "Downcast":
		var name *string
		var d Downcast

		err = fields(p, &name, &d.Variant)
		if name != nil {
			d.Name = *name
		}

		x = d
	case "OpaqueCast":
		err = fields(p, &t)
		x = OpaqueCast{Ty: t}
	case "Subtype":
		err = fields(p, &t)
		x = Subtype{Ty: t}
	case "UnwrapUnsafeBinder":
		err = fields(p, &t)
		x = UnwrapUnsafeBinder{Ty: t}
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeOperand(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	var pl wirePlace

	switch tag {
	case "Copy", "Move":
		if err = fields(p, &pl); err != nil {
			break
		}

		var place Place

		place, err = decodePlace(pl)

		if tag == "Copy" {
			x = Copy{Place: place}
		} else {
			x = Move{Place: place}
		}
	case "Constant":
		var c wireConstOperand

		if err = fields(p, &c); err != nil {
			break
		}

		var co ConstOperand

		co, err = decodeConstOperand(c)
		x = Constant{Const: co}
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeConstOperand(w wireConstOperand) (c ConstOperand, err error) {
	c.Span = w.Span
	c.Const, err = decodeMirConst(w.Const)

	return c, err
}

func decodeMirConst(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	var a raw

	switch tag {
	case "Ty":
		var c TyMirConst

		if err = fields(p, &c.Ty, &a); err != nil {
			break
		}

		c.Const, err = decodeTyConst(a)
		x = c
	case "Val":
		var c ValMirConst

		if err = fields(p, &a, &c.Ty); err != nil {
			break
		}

		c.Val, err = decodeConstValue(a)
		x = c
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeTyConst(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "Param":
		var w struct {
			Index uint64 `json:"index"`
			Name  string `json:"name"`
		}

		err = fields(p, &w)
		x = ParamConst(w)
	case "Value":
		var c ValueConst
		var vt raw

		if err = fields(p, &c.Ty, &vt); err != nil {
			break
		}

		c.ValTree, err = decodeValTree(vt)
		x = c
	case "Expr":
		x, err = decodeExprConst(p)
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeValTree(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "Leaf":
		var s ScalarInt

		err = decodeScalarInt(p, &s)
		x = Leaf{Scalar: s}
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeExprConst(p raw) (_ any, err error) {
	var w struct {
		Kind raw     `json:"kind"`
		Args [][]raw `json:"args"`
	}

	if err = fields(p, &w); err != nil {
		return nil, err
	}

	var e ExprConst

	if e.Kind, err = decodeExprKind(w.Kind); err != nil {
		return nil, errors.Wrap(err, "kind")
	}

	e.Args = make([]ExprArg, len(w.Args))

	for i, a := range w.Args {
		if len(a) != 2 {
			return nil, errors.New("arg %d: expected (ty, const) pair, got %d fields", i, len(a))
		}

		if err = json.Unmarshal(a[0], &e.Args[i].Ty); err != nil {
			return nil, errors.Wrap(err, "arg %d: ty", i)
		}

		if e.Args[i].Const, err = decodeTyConst(a[1]); err != nil {
			return nil, errors.Wrap(err, "arg %d: const", i)
		}
	}

	return e, nil
}

func decodeExprKind(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	var op raw

	switch tag {
	case "Binop":
		if err = fields(p, &op); err != nil {
			break
		}

		k := ExprBinop{}
		k.Op, _, err = variant(op)
		x = k
	case "UnOp":
		if err = fields(p, &op); err != nil {
			break
		}

		k := ExprUnOp{}
		k.Op, _, err = variant(op)
		x = k
	case "FunctionCall":
		x = ExprFunctionCall{}
	case "Cast":
		if err = fields(p, &op); err != nil {
			break
		}

		k := ExprCast{}
		k.Kind, _, err = variant(op)
		x = k
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeConstValue(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "Scalar":
		x, err = decodeScalar(p)
	case "ZeroSized":
		x = ZeroSized{}
	case "Slice":
		var w struct {
			Data AllocID `json:"data"`
			Meta uint64  `json:"meta"`
		}

		err = fields(p, &w)
		x = SliceValue(w)
	case "Indirect":
		var w struct {
			AllocID AllocID `json:"alloc_id"`
			Offset  uint64  `json:"offset"`
		}

		err = fields(p, &w)
		x = Indirect(w)
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeScalar(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "Int":
		var s ScalarInt

		err = decodeScalarInt(p, &s)
		x = Scalar{Scalar: s}
	case "Ptr":
		var w struct {
			AllocID AllocID `json:"alloc_id"`
			Offset  uint64  `json:"offset"`
		}

		var s ScalarPtr

		err = fields(p, &w, &s.Size)
		s.Ptr = Pointer(w)
		x = Scalar{Scalar: s}
	default:
		x = Scalar{Scalar: Opaque{Tag: tag, Raw: p}}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeScalarInt(p raw, s *ScalarInt) error {
	var w struct {
		Data Uint128 `json:"data"`
		Size uint64  `json:"size"`
	}

	err := fields(p, &w)
	*s = ScalarInt(w)

	return err
}

func decodeRvalue(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	var pl wirePlace
	var a, b raw
	var t Ty

	switch tag {
	case "Use":
		var op any

		op, err = decodeOperand(p)
		x = Use{Op: op}
	case "Repeat":
		var v Repeat

		if err = fields(p, &a, &b); err != nil {
			break
		}

		if v.Op, err = decodeOperand(a); err != nil {
			break
		}

		v.Count, err = decodeTyConst(b)
		x = v
	case "Ref":
		var region raw

		if err = fields(p, &region, &a, &pl); err != nil {
			break
		}

		var v Ref

		if v.Kind, _, err = variant(a); err != nil {
			break
		}

		v.Place, err = decodePlace(pl)
		x = v
	case "RawPtr":
		if err = fields(p, &a, &pl); err != nil {
			break
		}

		var v RawPtr

		if v.Kind, _, err = variant(a); err != nil {
			break
		}

		v.Place, err = decodePlace(pl)
		x = v
	case "Len", "Discriminant", "CopyForDeref":
		if err = fields(p, &pl); err != nil {
			break
		}

		var place Place

		place, err = decodePlace(pl)

		switch tag {
		case "Len":
			x = Len{Place: place}
		case "Discriminant":
			x = Discriminant{Place: place}
		default:
			x = CopyForDeref{Place: place}
		}
	case "BinaryOp":
		var ops []raw

		if err = fields(p, &a, &ops); err != nil {
			break
		}

		if len(ops) != 2 {
			err = errors.New("expected 2 operands, got %d", len(ops))
			break
		}

		var v BinaryOp

		if v.Op, _, err = variant(a); err != nil {
			break
		}

		if v.L, err = decodeOperand(ops[0]); err != nil {
			break
		}

		v.R, err = decodeOperand(ops[1])
		x = v
	case "NullaryOp":
		if err = fields(p, &a, &t); err != nil {
			break
		}

		v := NullaryOp{Ty: t}
		v.Op, _, err = variant(a)
		x = v
	case "UnaryOp":
		if err = fields(p, &a, &b); err != nil {
			break
		}

		var v UnaryOp

		if v.Op, _, err = variant(a); err != nil {
			break
		}

		v.X, err = decodeOperand(b)
		x = v
	case "ShallowInitBox", "WrapUnsafeBinder":
		if err = fields(p, &a, &t); err != nil {
			break
		}

		var op any

		op, err = decodeOperand(a)

		if tag == "ShallowInitBox" {
			x = ShallowInitBox{Op: op, Ty: t}
		} else {
			x = WrapUnsafeBinder{Op: op, Ty: t}
		}
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

func decodeTyKind(r raw) (x any, err error) {
	tag, p, err := variant(r)
	if err != nil {
		return nil, err
	}

	var a raw
	var t Ty
	var m Mutability

	switch tag {
	case "Bool":
		x = Bool{}
	case "Char":
		x = Char{}
	case "Str":
		x = Str{}
	case "Never":
		x = Never{}
	case "Int":
		var k string

		if k, _, err = variant(p); err == nil {
			x = Int{Ty: IntTy(k)}
		}
	case "Uint":
		var k string

		if k, _, err = variant(p); err == nil {
			x = Uint{Ty: UintTy(k)}
		}
	case "Float":
		var k string

		if k, _, err = variant(p); err == nil {
			x = Float{Ty: FloatTy(k)}
		}
	case "Array":
		if err = fields(p, &t, &a); err != nil {
			break
		}

		v := Array{Elem: t}
		v.Len, err = decodeTyConst(a)
		x = v
	case "Slice":
		err = fields(p, &t)
		x = Slice{Elem: t}
	case "RawPtr":
		err = fields(p, &t, &m)
		x = RawPtrTy{Pointee: t, Mut: m}
	case "Ref":
		var region raw

		err = fields(p, &region, &t, &m)
		x = RefTy{Pointee: t, Mut: m}
	case "Tuple":
		var l []Ty

		err = fields(p, &l)
		x = Tuple{Elems: l}
	default:
		x = Opaque{Tag: tag, Raw: p}
	}

	if err != nil {
		return degrade(tag, p, err), nil
	}

	return x, nil
}

// degrade keeps a known node with undecodable payload in place.
func degrade(tag string, p raw, err error) Opaque {
	tlog.V("unknown").Printw("undecodable payload", "tag", tag, "err", err, "from", loc.Caller(1))

	return Opaque{Tag: tag, Raw: p}
}

// variant splits an externally tagged enum value into its tag and payload.
// Anything that is not a string or a single-key object has an empty tag.
func variant(r raw) (tag string, p raw, err error) {
	r = bytes.TrimSpace(r)

	if len(r) == 0 || string(r) == "null" {
		return "", nil, nil
	}

	switch r[0] {
	case '"':
		err = json.Unmarshal(r, &tag)

		return tag, nil, err
	case '{':
		var m map[string]raw

		err = json.Unmarshal(r, &m)
		if err != nil {
			return "", nil, err
		}

		if len(m) != 1 {
			return "", r, nil
		}

		for k, v := range m {
			return k, v, nil
		}
	}

	return "", r, nil
}

// fields decodes a variant payload.
// A single destination takes the whole payload, several ones take array elements.
func fields(p raw, dst ...any) error {
	if len(p) == 0 {
		return errors.New("missing payload")
	}

	if len(dst) == 1 {
		return json.Unmarshal(p, dst[0])
	}

	var l []raw

	err := json.Unmarshal(p, &l)
	if err != nil {
		return err
	}

	if len(l) != len(dst) {
		return errors.New("expected %d fields, got %d", len(dst), len(l))
	}

	for i, r := range l {
		err = json.Unmarshal(r, dst[i])
		if err != nil {
			return errors.Wrap(err, "field %d", i)
		}
	}

	return nil
}

func (x *Uint128) UnmarshalJSON(b []byte) error {
	*x = Uint128(strings.Trim(string(bytes.TrimSpace(b)), `"`))

	return nil
}
