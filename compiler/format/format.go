// Package format renders mmir bodies as MIR-like text.
package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/mmir/compiler/mmir"
)

type (
	// Func is a named body.
	Func struct {
		Name string
		Body *mmir.Body
	}
)

func Format(ctx context.Context, b []byte, x any) ([]byte, error) {
	return format(ctx, b, x, 0)
}

func format(ctx context.Context, b []byte, x any, d int) (_ []byte, err error) {
	switch x := x.(type) {
	case []Func:
		for i, f := range x {
			if i != 0 {
				b = append(b, '\n')
			}

			b, err = format(ctx, b, f, d)
			if err != nil {
				return nil, errors.Wrap(err, "func %v", f.Name)
			}
		}

		return b, nil
	case Func:
		return formatFunc(ctx, b, x.Name, x.Body, d), nil
	case *mmir.Body:
		return formatFunc(ctx, b, "_", x, d), nil
	case mmir.Body:
		return formatFunc(ctx, b, "_", &x, d), nil
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatFunc(ctx context.Context, b []byte, name string, x *mmir.Body, d int) []byte {
	b = app(b, d, "fn %s(", name)

	for i := 1; i <= int(x.ArgCount) && i < len(x.LocalDecls); i++ {
		if i != 1 {
			b = append(b, ", "...)
		}

		b = app(b, 0, "_%d: ", i)
		b = typ(b, x.LocalDecls[i].Typ)
	}

	b = append(b, ")"...)

	if len(x.LocalDecls) != 0 {
		b = append(b, " -> "...)
		b = typ(b, x.LocalDecls[0].Typ)
	}

	b = app(b, 0, " { // %d..%d\n", x.Span.Lo, x.Span.Hi)

	for _, v := range x.VarDebugInfo {
		b = app(b, d+1, "debug %s => ", v.Name)

		switch c := v.Content.(type) {
		case mmir.DebugPlace:
			b = place(b, c.Place)
		case mmir.DebugConst:
			b = constant(b, c.Const)
		default:
			b = append(b, "Unknown"...)
		}

		b = append(b, ";\n"...)
	}

	for i, l := range x.LocalDecls {
		if i == 0 || i <= int(x.ArgCount) {
			continue
		}

		b = app(b, d+1, "let ")

		if l.Mut == mmir.Mut {
			b = append(b, "mut "...)
		}

		b = app(b, 0, "_%d: ", i)
		b = typ(b, l.Typ)
		b = app(b, 0, "; // %s\n", infoName(l.Info))
	}

	for i := range x.Blocks {
		b = append(b, '\n')
		b = formatBlock(ctx, b, i, &x.Blocks[i], d+1)
	}

	b = app(b, d, "}\n")

	return b
}

func formatBlock(ctx context.Context, b []byte, id int, x *mmir.BasicBlock, d int) []byte {
	b = app(b, d, "bb%d", id)

	if x.IsCleanup {
		b = append(b, " (cleanup)"...)
	}

	b = append(b, ": {\n"...)

	for _, s := range x.Statements {
		b = app(b, d+1, "")
		b = statement(b, s.Kind)
		b = app(b, 0, "; // scope %d at %d..%d\n", s.Scope, s.Span.Lo, s.Span.Hi)
	}

	b = app(b, d, "}\n")

	return b
}

func statement(b []byte, k mmir.StatementKind) []byte {
	switch k := k.(type) {
	case mmir.Assign:
		b = place(b, k.Place)
		b = append(b, " = "...)
		b = rvalue(b, k.Rvalue)
	case mmir.SetDiscriminant:
		b = append(b, "discriminant("...)
		b = place(b, k.Place)
		b = app(b, 0, ") = %d", k.Variant)
	case mmir.Deinit:
		b = call(b, "Deinit", k.Place)
	case mmir.StorageLive:
		b = app(b, 0, "StorageLive(_%d)", k.Local)
	case mmir.StorageDead:
		b = app(b, 0, "StorageDead(_%d)", k.Local)
	case mmir.Retag:
		b = app(b, 0, "Retag(%s, ", k.Kind.String())
		b = place(b, k.Place)
		b = append(b, ")"...)
	case mmir.PlaceMention:
		b = call(b, "PlaceMention", k.Place)
	case mmir.Intrinsic:
		switch x := k.Kind.(type) {
		case mmir.Assume:
			b = append(b, "assume("...)
			b = operand(b, x.Op)
			b = append(b, ")"...)
		case mmir.CopyNonOverlapping:
			b = append(b, "copy_nonoverlapping(dst = "...)
			b = operand(b, x.Dst)
			b = append(b, ", src = "...)
			b = operand(b, x.Src)
			b = append(b, ", count = "...)
			b = operand(b, x.Count)
			b = append(b, ")"...)
		default:
			b = append(b, "intrinsic(Unknown)"...)
		}
	case mmir.Nop:
		b = append(b, "nop"...)
	case mmir.ConstEvalCounter:
		b = append(b, "ConstEvalCounter"...)
	case mmir.Goto:
		b = app(b, 0, "goto -> bb%d", k.Target)
	case mmir.SwitchInt:
		b = append(b, "switchInt("...)
		b = operand(b, k.Discr)
		b = append(b, ") -> ["...)

		for i, t := range k.Targets.Targets {
			if i != 0 {
				b = append(b, ", "...)
			}

			if i < len(k.Targets.Values) {
				b = app(b, 0, "%d: bb%d", k.Targets.Values[i], t)
			} else {
				b = app(b, 0, "otherwise: bb%d", t)
			}
		}

		b = append(b, "]"...)
	case mmir.UnwindResume:
		b = append(b, "resume"...)
	case mmir.UnwindTerminate:
		b = append(b, "terminate"...)
	case mmir.Unreachable:
		b = append(b, "unreachable"...)
	case mmir.CoroutineDrop:
		b = append(b, "coroutine_drop"...)
	case mmir.Return:
		b = append(b, "return"...)
	case mmir.Drop:
		b = call(b, "drop", k.Place)
		b = app(b, 0, " -> [return: bb%d", k.Target)
		b = unwind(b, k.Unwind)

		if k.Replace {
			b = append(b, ", replace"...)
		}

		if k.AsyncDrop != nil {
			b = app(b, 0, ", drop: bb%d", *k.AsyncDrop)
		}

		b = append(b, "]"...)
	case mmir.Call:
		b = place(b, k.Dest)
		b = append(b, " = "...)
		b = operand(b, k.Func)
		b = append(b, "("...)

		for i, a := range k.Args {
			if i != 0 {
				b = append(b, ", "...)
			}

			b = operand(b, a)
		}

		b = append(b, ") -> ["...)

		if k.Target != nil {
			b = app(b, 0, "return: bb%d", *k.Target)
		} else {
			b = append(b, "diverges"...)
		}

		b = unwind(b, k.Unwind)
		b = append(b, "]"...)
	case mmir.Assert:
		b = append(b, "assert("...)

		if !k.Expected {
			b = append(b, '!')
		}

		b = operand(b, k.Cond)
		b = append(b, ", "...)
		b = assertKind(b, k.Msg)
		b = app(b, 0, ") -> [success: bb%d", k.Target)
		b = unwind(b, k.Unwind)
		b = append(b, "]"...)
	default:
		b = append(b, "Unknown"...)
	}

	return b
}

func unwind(b []byte, u mmir.UnwindAction) []byte {
	switch u := u.(type) {
	case mmir.UnwindContinue:
		return append(b, ", unwind continue"...)
	case mmir.UnwindUnreachable:
		return append(b, ", unwind unreachable"...)
	case mmir.UnwindTerminateProcess:
		return append(b, ", unwind terminate"...)
	case mmir.UnwindCleanup:
		return app(b, 0, ", unwind: bb%d", u.Block)
	default:
		return append(b, ", unwind Unknown"...)
	}
}

func assertKind(b []byte, m mmir.AssertKind) []byte {
	switch m := m.(type) {
	case mmir.BoundsCheck:
		b = append(b, "BoundsCheck(len = "...)
		b = operand(b, m.Len)
		b = append(b, ", index = "...)
		b = operand(b, m.Index)
	case mmir.Overflow:
		b = app(b, 0, "Overflow(%s, ", m.Op.String())
		b = operand(b, m.L)
		b = append(b, ", "...)
		b = operand(b, m.R)
	case mmir.OverflowNeg:
		b = append(b, "OverflowNeg("...)
		b = operand(b, m.Op)
	case mmir.DivisionByZero:
		b = append(b, "DivisionByZero("...)
		b = operand(b, m.Op)
	case mmir.RemainderByZero:
		b = append(b, "RemainderByZero("...)
		b = operand(b, m.Op)
	case mmir.MisalignedPointerDereference:
		b = append(b, "MisalignedPointerDereference(required = "...)
		b = operand(b, m.Required)
		b = append(b, ", found = "...)
		b = operand(b, m.Found)
	case mmir.NullPointerDereference:
		return append(b, "NullPointerDereference"...)
	default:
		return append(b, "Unknown"...)
	}

	return append(b, ")"...)
}

func rvalue(b []byte, r mmir.Rvalue) []byte {
	switch r := r.(type) {
	case mmir.Use:
		return operand(b, r.Op)
	case mmir.Repeat:
		b = append(b, '[')
		b = operand(b, r.Op)
		b = append(b, "; "...)
		b = constant(b, r.Count)
		return append(b, ']')
	case mmir.Ref:
		switch r.Kind {
		case mmir.BorrowShared:
			b = append(b, '&')
		case mmir.BorrowFake:
			b = append(b, "&fake "...)
		case mmir.BorrowMut:
			b = append(b, "&mut "...)
		default:
			b = append(b, "&? "...)
		}

		return place(b, r.Place)
	case mmir.RawPtr:
		if r.Mut == mmir.Mut {
			b = append(b, "&raw mut "...)
		} else {
			b = append(b, "&raw const "...)
		}

		return place(b, r.Place)
	case mmir.Len:
		return call(b, "Len", r.Place)
	case mmir.BinaryOp:
		b = app(b, 0, "%s(", r.Op.String())
		b = operand(b, r.L)
		b = append(b, ", "...)
		b = operand(b, r.R)
		return append(b, ')')
	case mmir.NullaryOp:
		return app(b, 0, "%s()", r.Op.String())
	case mmir.UnaryOp:
		b = app(b, 0, "%s(", r.Op.String())
		b = operand(b, r.X)
		return append(b, ')')
	case mmir.Discriminant:
		return call(b, "discriminant", r.Place)
	case mmir.ShallowInitBox:
		b = append(b, "ShallowInitBox("...)
		b = operand(b, r.Op)
		b = append(b, ", "...)
		b = typ(b, r.Typ)
		return append(b, ')')
	case mmir.CopyForDeref:
		b = append(b, "deref_copy "...)
		return place(b, r.Place)
	case mmir.WrapUnsafeBinder:
		b = append(b, "wrap_binder!("...)
		b = operand(b, r.Op)
		b = append(b, "; "...)
		b = typ(b, r.Typ)
		return append(b, ')')
	default:
		return append(b, "Unknown"...)
	}
}

func operand(b []byte, op mmir.Operand) []byte {
	switch op := op.(type) {
	case mmir.Copy:
		b = append(b, "copy "...)
		return place(b, op.Place)
	case mmir.Move:
		b = append(b, "move "...)
		return place(b, op.Place)
	case mmir.Constant:
		b = append(b, "const "...)
		return constant(b, op.Const)
	default:
		return append(b, "Unknown"...)
	}
}

func call(b []byte, name string, p mmir.Place) []byte {
	b = append(b, name...)
	b = append(b, '(')
	b = place(b, p)
	return append(b, ')')
}

func place(b []byte, p mmir.Place) []byte {
	for i := len(p.Proj) - 1; i >= 0; i-- {
		switch p.Proj[i].(type) {
		case mmir.Deref:
			b = append(b, "(*"...)
		case mmir.Field, mmir.Downcast, mmir.OpaqueCast, mmir.Subtype, mmir.UnwrapUnsafeBinder:
			b = append(b, '(')
		}
	}

	b = app(b, 0, "_%d", p.Local)

	for _, e := range p.Proj {
		switch e := e.(type) {
		case mmir.Deref:
			b = append(b, ')')
		case mmir.Field:
			b = app(b, 0, ".%d: ", e.Index)
			b = typ(b, e.Typ)
			b = append(b, ')')
		case mmir.Index:
			b = app(b, 0, "[_%d]", e.Local)
		case mmir.ConstantIndex:
			if e.FromEnd {
				b = app(b, 0, "[-%d of %d]", e.Offset, e.MinLength)
			} else {
				b = app(b, 0, "[%d of %d]", e.Offset, e.MinLength)
			}
		case mmir.Subslice:
			if e.FromEnd {
				b = app(b, 0, "[%d:-%d]", e.From, e.To)
			} else {
				b = app(b, 0, "[%d..%d]", e.From, e.To)
			}
		case mmir.Downcast:
			b = app(b, 0, " as variant#%d)", e.Variant)
		case mmir.OpaqueCast:
			b = append(b, " as "...)
			b = typ(b, e.Typ)
			b = append(b, ')')
		case mmir.Subtype:
			b = append(b, " as subtype "...)
			b = typ(b, e.Typ)
			b = append(b, ')')
		case mmir.UnwrapUnsafeBinder:
			b = append(b, " unwrap "...)
			b = typ(b, e.Typ)
			b = append(b, ')')
		default:
			b = append(b, ".?"...)
		}
	}

	return b
}

func typ(b []byte, t mmir.Typ) []byte {
	switch t := t.(type) {
	case mmir.TyBool:
		return append(b, "bool"...)
	case mmir.TyChar:
		return append(b, "char"...)
	case mmir.TyIsize:
		return append(b, "isize"...)
	case mmir.TyUsize:
		return append(b, "usize"...)
	case mmir.TyStr:
		return append(b, "str"...)
	case mmir.TyInt:
		return app(b, 0, "i%d", t.Bits)
	case mmir.TyUint:
		return app(b, 0, "u%d", t.Bits)
	case mmir.TyFloat:
		return app(b, 0, "f%d", t.Bits)
	case mmir.TyArray:
		b = append(b, '[')
		b = typ(b, t.Elem)
		b = append(b, "; "...)
		b = constant(b, t.Len)
		return append(b, ']')
	case mmir.TySlice:
		b = append(b, '[')
		b = typ(b, t.Elem)
		return append(b, ']')
	case mmir.TyRawPtr:
		if t.Mut == mmir.Mut {
			b = append(b, "*mut "...)
		} else {
			b = append(b, "*const "...)
		}

		return typ(b, t.Elem)
	case mmir.TyRef:
		if t.Mut == mmir.Mut {
			b = append(b, "&mut "...)
		} else {
			b = append(b, '&')
		}

		return typ(b, t.Elem)
	case mmir.TyTuple:
		b = append(b, '(')

		for i, e := range t.Elems {
			if i != 0 {
				b = append(b, ", "...)
			}

			b = typ(b, e)
		}

		if len(t.Elems) == 1 {
			b = append(b, ',')
		}

		return append(b, ')')
	default:
		return append(b, '?')
	}
}

func constant(b []byte, c mmir.Const) []byte {
	switch c := c.(type) {
	case mmir.ConstTyped:
		return constant(b, c.Const)
	case mmir.ConstValue:
		switch v := c.Val.(type) {
		case mmir.ScalarInt:
			if _, ok := c.Typ.(mmir.TyBool); ok {
				if v.Value != 0 {
					return append(b, "true"...)
				}

				return append(b, "false"...)
			}

			b = app(b, 0, "%d_", v.Value)

			return typ(b, c.Typ)
		case mmir.ZeroSized:
			if t, ok := c.Typ.(mmir.TyTuple); ok && len(t.Elems) == 0 {
				return append(b, "()"...)
			}

			b = append(b, "ZeroSized: "...)

			return typ(b, c.Typ)
		case mmir.ScalarPtr:
			return app(b, 0, "{alloc%d+%d: ptr%d}", v.Alloc, v.Offset, v.Size)
		case mmir.SliceVal:
			return app(b, 0, "{slice len %d %s}", v.Len, v.Mut.String())
		case mmir.Indirect:
			return app(b, 0, "{alloc%d+%d}", v.Alloc, v.Offset)
		default:
			return append(b, "Unknown"...)
		}
	case mmir.ConstParam:
		return app(b, 0, "P%d", c.Index)
	case mmir.ConstExpr:
		b = append(b, "expr "...)

		switch k := c.Kind.(type) {
		case mmir.ExprBinOp:
			b = app(b, 0, "%s", k.Op.String())
		case mmir.ExprUnOp:
			b = app(b, 0, "%s", k.Op.String())
		case mmir.ExprFunctionCall:
			b = append(b, "call"...)
		case mmir.ExprCastAs:
			b = append(b, "as"...)
		case mmir.ExprCastUse:
			b = append(b, "use"...)
		default:
			b = append(b, "Unknown"...)
		}

		b = append(b, '(')

		for i, a := range c.Args {
			if i != 0 {
				b = append(b, ", "...)
			}

			b = constant(b, a.Const)
		}

		return append(b, ')')
	default:
		return append(b, "Unknown"...)
	}
}

func infoName(i mmir.LocalInfo) string {
	switch i := i.(type) {
	case mmir.User:
		return "user"
	case mmir.Boring:
		return "temp"
	case mmir.AggregateTemp:
		return "aggregate temp"
	case mmir.DerefTemp:
		return "deref temp"
	case mmir.FakeBorrow:
		return "fake borrow"
	case mmir.ConstRef:
		return string(hfmt.Appendf(nil, "const ref %d", i.Def))
	case mmir.StaticRef:
		return string(hfmt.Appendf(nil, "static ref %d", i.Def))
	default:
		return "unknown"
	}
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
