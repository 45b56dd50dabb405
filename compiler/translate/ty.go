package translate

import (
	"tlog.app/go/tlog"

	"github.com/slowlang/mmir/compiler/host"
	"github.com/slowlang/mmir/compiler/mmir"
)

// typ resolves t and copies it by value.
// Missing, cyclic and too deep types are TyUnknown.
func (s *state) typ(t host.Ty) mmir.Typ {
	k, ok := s.tcx.Kind(t)
	if !ok {
		tlog.V("unknown").Printw("unresolved type", "ty", t, "def", s.def)
		return mmir.TyUnknown{}
	}

	slot := s.slot(t)

	if s.depth >= MaxTypeDepth || !s.path.Add(slot) {
		tlog.V("unknown").Printw("recursive type", "ty", t, "depth", s.depth, "path", s.path, "def", s.def)
		return mmir.TyUnknown{}
	}

	s.depth++

	defer func() {
		s.depth--
		s.path.Clear(slot)
	}()

	return s.tyKind(k)
}

// slot numbers types in order of first use.
// The context is never modified.
func (s *state) slot(t host.Ty) int {
	if i, ok := s.slots[t]; ok {
		return i
	}

	if s.slots == nil {
		s.slots = make(map[host.Ty]int)
	}

	i := len(s.slots)
	s.slots[t] = i

	return i
}

func (s *state) tyKind(k any) mmir.Typ {
	switch k := k.(type) {
	case host.Bool:
		return mmir.TyBool{}
	case host.Char:
		return mmir.TyChar{}
	case host.Str:
		return mmir.TyStr{}
	case host.Int:
		if k.Ty == "Isize" {
			return mmir.TyIsize{}
		}

		if b := bits(string(k.Ty), 'I'); b != 0 {
			return mmir.TyInt{Bits: b}
		}
	case host.Uint:
		if k.Ty == "Usize" {
			return mmir.TyUsize{}
		}

		if b := bits(string(k.Ty), 'U'); b != 0 {
			return mmir.TyUint{Bits: b}
		}
	case host.Float:
		if b := bits(string(k.Ty), 'F'); b != 0 {
			return mmir.TyFloat{Bits: b}
		}
	case host.Array:
		return mmir.TyArray{Elem: s.typ(k.Elem), Len: s.tyConst(k.Len)}
	case host.Slice:
		return mmir.TySlice{Elem: s.typ(k.Elem)}
	case host.RawPtrTy:
		return mmir.TyRawPtr{Elem: s.typ(k.Pointee), Mut: mutability(k.Mut)}
	case host.RefTy:
		return mmir.TyRef{Elem: s.typ(k.Pointee), Mut: mutability(k.Mut)}
	case host.Tuple:
		l := make([]mmir.Typ, len(k.Elems))

		for i, e := range k.Elems {
			l[i] = s.typ(e)
		}

		return mmir.TyTuple{Elems: l}
	}

	s.unknown("type", k)

	return mmir.TyUnknown{}
}

// bits parses widths like I32 or U128.
func bits(name string, pref byte) uint32 {
	switch name {
	case string(pref) + "8":
		return 8
	case string(pref) + "16":
		return 16
	case string(pref) + "32":
		return 32
	case string(pref) + "64":
		return 64
	case string(pref) + "128":
		return 128
	}

	return 0
}

func (s *state) mirConst(c any) mmir.Const {
	switch c := c.(type) {
	case host.TyMirConst:
		return mmir.ConstTyped{Typ: s.typ(c.Ty), Const: s.tyConst(c.Const)}
	case host.ValMirConst:
		return mmir.ConstValue{Val: s.constValue(c.Val), Typ: s.typ(c.Ty)}
	}

	s.unknown("const", c)

	return mmir.ConstUnknown{}
}

func (s *state) tyConst(c any) mmir.Const {
	switch c := c.(type) {
	case host.ParamConst:
		return mmir.ConstParam{Index: narrow(c.Index)}
	case host.ValueConst:
		leaf, ok := c.ValTree.(host.Leaf)
		if !ok {
			s.unknown("valtree", c.ValTree)

			return mmir.ConstValue{Val: mmir.ConstValUnknown{}, Typ: s.typ(c.Ty)}
		}

		return mmir.ConstValue{Val: mmir.ScalarInt{Value: leaf.Scalar.Data.Uint32()}, Typ: s.typ(c.Ty)}
	case host.ExprConst:
		args := make([]mmir.Arg, len(c.Args))

		for i, a := range c.Args {
			args[i] = mmir.Arg{Typ: s.typ(a.Ty), Const: s.tyConst(a.Const)}
		}

		return mmir.ConstExpr{Kind: s.exprKind(c.Kind), Args: args}
	}

	s.unknown("ty const", c)

	return mmir.ConstUnknown{}
}

func (s *state) exprKind(k any) mmir.ExprKind {
	switch k := k.(type) {
	case host.ExprBinop:
		return mmir.ExprBinOp{Op: mmir.ParseBinOp(k.Op)}
	case host.ExprUnOp:
		return mmir.ExprUnOp{Op: mmir.ParseUnOp(k.Op)}
	case host.ExprFunctionCall:
		return mmir.ExprFunctionCall{}
	case host.ExprCast:
		switch k.Kind {
		case "As":
			return mmir.ExprCastAs{}
		case "Use":
			return mmir.ExprCastUse{}
		}
	}

	s.unknown("expr", k)

	return mmir.ExprUnknown{}
}

// constValue never embeds memory contents.
func (s *state) constValue(v any) mmir.ConstVal {
	switch v := v.(type) {
	case host.Scalar:
		switch x := v.Scalar.(type) {
		case host.ScalarInt:
			return mmir.ScalarInt{Value: x.Data.Uint32()}
		case host.ScalarPtr:
			return mmir.ScalarPtr{
				Alloc:  narrow(uint64(x.Ptr.AllocID)),
				Offset: narrow(x.Ptr.Offset),
				Size:   uint8(x.Size),
			}
		}

		s.unknown("scalar", v.Scalar)

		return mmir.ConstValUnknown{}
	case host.ZeroSized:
		return mmir.ZeroSized{}
	case host.SliceValue:
		a, _ := s.tcx.Alloc(v.Data)

		return mmir.SliceVal{Len: narrow(v.Meta), Mut: mutability(a.Mutability)}
	case host.Indirect:
		return mmir.Indirect{Alloc: narrow(uint64(v.AllocID)), Offset: narrow(v.Offset)}
	}

	s.unknown("const value", v)

	return mmir.ConstValUnknown{}
}
