// Package translate maps host IR bodies into mmir.
//
// Every function here is total: a host node it doesn't cover becomes
// the Unknown variant at the same position. Output depends only on the node
// and the Context passed in.
package translate

import (
	"math"

	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/slowlang/mmir/compiler/host"
	"github.com/slowlang/mmir/compiler/mmir"
	"github.com/slowlang/mmir/compiler/set"
)

type (
	state struct {
		tcx *host.Context
		def host.DefID

		// dense per-call ids of types seen, for path
		slots map[host.Ty]int

		// types being resolved on the current path
		path  set.Bitmap
		depth int
	}
)

// MaxTypeDepth bounds type resolution nesting. Deeper types become TyUnknown.
const MaxTypeDepth = 64

// Body translates b owned by def.
// tcx resolves type and allocation ids, it may be nil.
func Body(tcx *host.Context, def host.DefID, b *host.Body) mmir.Body {
	s := &state{tcx: tcx, def: def}

	if b == nil {
		return s.empty()
	}

	r := mmir.Body{
		Blocks:       make([]mmir.BasicBlock, len(b.Blocks)),
		LocalDecls:   make([]mmir.LocalDecl, len(b.Locals)),
		ArgCount:     narrow(b.ArgCount),
		VarDebugInfo: make([]mmir.VarDebugInfo, len(b.VarDebugInfo)),
		Span:         s.span(b.Span),
	}

	if b.SpreadArg != nil {
		l := mmir.Local(narrow(uint64(*b.SpreadArg)))
		r.SpreadArg = &l
	}

	for i := range b.Blocks {
		r.Blocks[i] = s.block(&b.Blocks[i])
	}

	for i, l := range b.Locals {
		r.LocalDecls[i] = s.localDecl(l)
	}

	for i, v := range b.VarDebugInfo {
		r.VarDebugInfo[i] = s.varDebugInfo(v)
	}

	return r
}

func (s *state) empty() mmir.Body {
	return mmir.Body{
		Blocks:       []mmir.BasicBlock{},
		LocalDecls:   []mmir.LocalDecl{},
		VarDebugInfo: []mmir.VarDebugInfo{},
	}
}

func (s *state) block(bb *host.BasicBlockData) mmir.BasicBlock {
	n := len(bb.Statements)
	if bb.Terminator != nil {
		n++
	}

	r := mmir.BasicBlock{
		Statements: make([]mmir.Statement, 0, n),
		IsCleanup:  bb.IsCleanup,
	}

	for _, st := range bb.Statements {
		r.Statements = append(r.Statements, mmir.Statement{
			Kind:  s.statementKind(st.Kind),
			Span:  s.span(st.SourceInfo.Span),
			Scope: mmir.ScopeID(narrow(uint64(st.SourceInfo.Scope))),
		})
	}

	if t := bb.Terminator; t != nil {
		r.Statements = append(r.Statements, mmir.Statement{
			Kind:  s.terminatorKind(t.Kind),
			Span:  s.span(t.SourceInfo.Span),
			Scope: mmir.ScopeID(narrow(uint64(t.SourceInfo.Scope))),
		})
	}

	return r
}

func (s *state) statementKind(k any) mmir.StatementKind {
	switch k := k.(type) {
	case host.Assign:
		return mmir.Assign{Place: s.place(k.Place), Rvalue: s.rvalue(k.Rvalue)}
	case host.SetDiscriminant:
		return mmir.SetDiscriminant{Place: s.place(k.Place), Variant: narrow(k.VariantIndex)}
	case host.Deinit:
		return mmir.Deinit{Place: s.place(k.Place)}
	case host.StorageLive:
		return mmir.StorageLive{Local: local(k.Local)}
	case host.StorageDead:
		return mmir.StorageDead{Local: local(k.Local)}
	case host.Retag:
		return mmir.Retag{Kind: mmir.ParseRetagKind(k.Kind), Place: s.place(k.Place)}
	case host.PlaceMention:
		return mmir.PlaceMention{Place: s.place(k.Place)}
	case host.Intrinsic:
		return mmir.Intrinsic{Kind: s.intrinsic(k.Intrinsic)}
	case host.Nop:
		return mmir.Nop{}
	case host.ConstEvalCounter:
		return mmir.ConstEvalCounter{}
	}

	s.unknown("statement", k)

	return mmir.StatementUnknown{}
}

func (s *state) intrinsic(k any) mmir.IntrinsicKind {
	switch k := k.(type) {
	case host.Assume:
		return mmir.Assume{Op: s.operand(k.Op)}
	case host.CopyNonOverlapping:
		return mmir.CopyNonOverlapping{
			Src:   s.operand(k.Src),
			Dst:   s.operand(k.Dst),
			Count: s.operand(k.Count),
		}
	}

	s.unknown("intrinsic", k)

	return mmir.IntrinsicUnknown{}
}

func (s *state) terminatorKind(k any) mmir.StatementKind {
	switch k := k.(type) {
	case host.Goto:
		return mmir.Goto{Target: block(k.Target)}
	case host.SwitchInt:
		return mmir.SwitchInt{Discr: s.operand(k.Discr), Targets: s.targets(k.Targets)}
	case host.UnwindResume:
		return mmir.UnwindResume{}
	case host.UnwindTerminate:
		return mmir.UnwindTerminate{}
	case host.Return:
		return mmir.Return{}
	case host.Unreachable:
		return mmir.Unreachable{}
	case host.CoroutineDrop:
		return mmir.CoroutineDrop{}
	case host.Drop:
		return mmir.Drop{
			Place:     s.place(k.Place),
			Target:    block(k.Target),
			Unwind:    s.unwind(k.Unwind),
			Replace:   k.Replace,
			AsyncDrop: optBlock(k.Drop),
		}
	case host.Call:
		args := make([]mmir.Operand, len(k.Args))

		for i, a := range k.Args {
			args[i] = s.operand(a)
		}

		return mmir.Call{
			Func:   s.operand(k.Func),
			Args:   args,
			Dest:   s.place(k.Destination),
			Target: optBlock(k.Target),
			Unwind: s.unwind(k.Unwind),
			Span:   s.span(k.FnSpan),
		}
	case host.Assert:
		return mmir.Assert{
			Cond:     s.operand(k.Cond),
			Expected: k.Expected,
			Msg:      s.assert(k.Msg),
			Target:   block(k.Target),
			Unwind:   s.unwind(k.Unwind),
		}
	}

	s.unknown("terminator", k)

	return mmir.StatementUnknown{}
}

// targets keeps all host targets, the trailing one being otherwise.
func (s *state) targets(t host.SwitchTargets) mmir.Targets {
	r := mmir.Targets{
		Values:  make([]uint32, len(t.Values)),
		Targets: make([]mmir.BlockID, len(t.Targets)),
	}

	for i, v := range t.Values {
		r.Values[i] = v.Uint32()
	}

	for i, b := range t.Targets {
		r.Targets[i] = block(b)
	}

	if len(r.Targets) != len(r.Values)+1 {
		tlog.V("unknown").Printw("unusual switch targets", "values", len(r.Values), "targets", len(r.Targets), "def", s.def)
	}

	return r
}

func (s *state) unwind(u any) mmir.UnwindAction {
	switch u := u.(type) {
	case host.Continue:
		return mmir.UnwindContinue{}
	case host.UnwindUnreachable:
		return mmir.UnwindUnreachable{}
	case host.Terminate:
		return mmir.UnwindTerminateProcess{}
	case host.Cleanup:
		return mmir.UnwindCleanup{Block: block(u.Block)}
	}

	s.unknown("unwind", u)

	return mmir.UnwindUnknown{}
}

func (s *state) assert(m any) mmir.AssertKind {
	switch m := m.(type) {
	case host.BoundsCheck:
		return mmir.BoundsCheck{Len: s.operand(m.Len), Index: s.operand(m.Index)}
	case host.Overflow:
		return mmir.Overflow{Op: mmir.ParseBinOp(m.Op), L: s.operand(m.L), R: s.operand(m.R)}
	case host.OverflowNeg:
		return mmir.OverflowNeg{Op: s.operand(m.Op)}
	case host.DivisionByZero:
		return mmir.DivisionByZero{Op: s.operand(m.Op)}
	case host.RemainderByZero:
		return mmir.RemainderByZero{Op: s.operand(m.Op)}
	case host.MisalignedPointerDereference:
		return mmir.MisalignedPointerDereference{Required: s.operand(m.Required), Found: s.operand(m.Found)}
	case host.NullPointerDereference:
		return mmir.NullPointerDereference{}
	}

	s.unknown("assert", m)

	return mmir.AssertUnknown{}
}

func (s *state) localDecl(l host.LocalDecl) mmir.LocalDecl {
	return mmir.LocalDecl{
		Scope: mmir.ScopeID(narrow(uint64(l.SourceInfo.Scope))),
		Info:  s.localInfo(l.LocalInfo),
		Typ:   s.typ(l.Ty),
		Mut:   mutability(l.Mutability),
	}
}

func (s *state) localInfo(i any) mmir.LocalInfo {
	switch i := i.(type) {
	case host.User:
		return mmir.User{}
	case host.Boring:
		return mmir.Boring{}
	case host.AggregateTemp:
		return mmir.AggregateTemp{}
	case host.DerefTemp:
		return mmir.DerefTemp{}
	case host.FakeBorrow:
		return mmir.FakeBorrow{}
	case host.ConstRef:
		return mmir.ConstRef{Def: narrow(uint64(i.DefID))}
	case host.StaticRef:
		return mmir.StaticRef{Def: narrow(uint64(i.DefID))}
	}

	s.unknown("local info", i)

	return mmir.LocalInfoUnknown{}
}

func (s *state) varDebugInfo(v host.VarDebugInfo) mmir.VarDebugInfo {
	r := mmir.VarDebugInfo{
		Scope: mmir.ScopeID(narrow(uint64(v.SourceInfo.Scope))),
		Name:  v.Name,
	}

	switch x := v.Value.(type) {
	case host.Place:
		r.Content = mmir.DebugPlace{Place: s.place(x)}
	case host.ConstOperand:
		r.Content = mmir.DebugConst{Const: s.mirConst(x.Const)}
	default:
		s.unknown("debug info", x)

		r.Content = mmir.DebugUnknown{}
	}

	if v.ArgumentIndex != nil {
		i := narrow(*v.ArgumentIndex)
		r.ArgIndex = &i
	}

	if c := v.Composite; c != nil {
		r.Composite = &mmir.VarDebugInfoFragment{
			Typ:  s.typ(c.Ty),
			Proj: s.projection(c.Projection),
		}
	}

	return r
}

func (s *state) span(sp host.Span) mmir.Span {
	lo, hi := narrow(sp.Lo), narrow(sp.Hi)

	if lo > hi {
		lo, hi = hi, lo
	}

	return mmir.Span{Lo: lo, Hi: hi}
}

func (s *state) unknown(what string, x any) {
	if o, ok := x.(host.Opaque); ok {
		tlog.V("unknown").Printw("unknown host node", "what", what, "tag", o.Tag, "def", s.def, "from", loc.Caller(1))
		return
	}

	tlog.V("unknown").Printw("unknown host node", "what", what, "typ", tlog.NextAsType, x, "def", s.def, "from", loc.Caller(1))
}

// narrow truncates a host integer to 32 bits.
func narrow(x uint64) uint32 {
	return uint32(x & math.MaxUint32)
}

func local(l host.Local) mmir.Local { return mmir.Local(narrow(uint64(l))) }

func block(b host.BlockID) mmir.BlockID { return mmir.BlockID(narrow(uint64(b))) }

func optBlock(b *host.BlockID) *mmir.BlockID {
	if b == nil {
		return nil
	}

	r := block(*b)

	return &r
}

// mutability maps anything but Mut to Not.
func mutability(m host.Mutability) mmir.Mutability {
	if m == host.Mut {
		return mmir.Mut
	}

	return mmir.Not
}
