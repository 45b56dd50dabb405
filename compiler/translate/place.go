package translate

import (
	"github.com/slowlang/mmir/compiler/host"
	"github.com/slowlang/mmir/compiler/mmir"
)

func (s *state) place(p host.Place) mmir.Place {
	return mmir.Place{
		Local: local(p.Local),
		Proj:  s.projection(p.Projection),
	}
}

func (s *state) projection(l []any) []mmir.Projection {
	r := make([]mmir.Projection, len(l))

	for i, e := range l {
		r[i] = s.placeElem(e)
	}

	return r
}

func (s *state) placeElem(e any) mmir.Projection {
	switch e := e.(type) {
	case host.Deref:
		return mmir.Deref{}
	case host.Field:
		return mmir.Field{Index: narrow(e.Index), Typ: s.typ(e.Ty)}
	case host.Index:
		return mmir.Index{Local: local(e.Local)}
	case host.ConstantIndex:
		return mmir.ConstantIndex{Offset: narrow(e.Offset), MinLength: narrow(e.MinLength), FromEnd: e.FromEnd}
	case host.Subslice:
		return mmir.Subslice{From: narrow(e.From), To: narrow(e.To), FromEnd: e.FromEnd}
	case host.Downcast:
		return mmir.Downcast{Variant: narrow(e.Variant)}
	case host.OpaqueCast:
		return mmir.OpaqueCast{Typ: s.typ(e.Ty)}
	case host.Subtype:
		return mmir.Subtype{Typ: s.typ(e.Ty)}
	case host.UnwrapUnsafeBinder:
		return mmir.UnwrapUnsafeBinder{Typ: s.typ(e.Ty)}
	}

	s.unknown("projection", e)

	return mmir.ProjectionUnknown{}
}

// operand has no Unknown variant of its own.
// Unrecognized operands read an unknown constant.
func (s *state) operand(op any) mmir.Operand {
	switch op := op.(type) {
	case host.Copy:
		return mmir.Copy{Place: s.place(op.Place)}
	case host.Move:
		return mmir.Move{Place: s.place(op.Place)}
	case host.Constant:
		return mmir.Constant{Const: s.mirConst(op.Const.Const)}
	}

	s.unknown("operand", op)

	return mmir.Constant{Const: mmir.ConstUnknown{}}
}

func (s *state) rvalue(r any) mmir.Rvalue {
	switch r := r.(type) {
	case host.Use:
		return mmir.Use{Op: s.operand(r.Op)}
	case host.Repeat:
		return mmir.Repeat{Op: s.operand(r.Op), Count: s.tyConst(r.Count)}
	case host.Ref:
		return mmir.Ref{Kind: mmir.ParseBorrowKind(r.Kind), Place: s.place(r.Place)}
	case host.RawPtr:
		return mmir.RawPtr{Mut: mutability(host.Mutability(r.Kind)), Place: s.place(r.Place)}
	case host.Len:
		return mmir.Len{Place: s.place(r.Place)}
	case host.BinaryOp:
		return mmir.BinaryOp{Op: mmir.ParseBinOp(r.Op), L: s.operand(r.L), R: s.operand(r.R)}
	case host.NullaryOp:
		return mmir.NullaryOp{Op: mmir.ParseNullOp(r.Op)}
	case host.UnaryOp:
		return mmir.UnaryOp{Op: mmir.ParseUnOp(r.Op), X: s.operand(r.X)}
	case host.Discriminant:
		return mmir.Discriminant{Place: s.place(r.Place)}
	case host.ShallowInitBox:
		return mmir.ShallowInitBox{Op: s.operand(r.Op), Typ: s.typ(r.Ty)}
	case host.CopyForDeref:
		return mmir.CopyForDeref{Place: s.place(r.Place)}
	case host.WrapUnsafeBinder:
		return mmir.WrapUnsafeBinder{Op: s.operand(r.Op), Typ: s.typ(r.Ty)}
	}

	s.unknown("rvalue", r)

	return mmir.RvalueUnknown{}
}
