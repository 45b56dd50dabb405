package mmir

import (
	"fmt"

	"github.com/nikandfor/hacked/hfmt"
)

type (
	// Violation of a Body invariant.
	// Stmt is -1 for block and body level problems, Block is -1 for body level ones.
	Violation struct {
		Block  int
		Stmt   int
		Reason string
	}

	checker struct {
		b *Body

		bb, st int

		vs []Violation
	}
)

// Check reports every invariant the body breaks.
// A well-formed body yields nil.
func Check(b *Body) []Violation {
	c := &checker{b: b, bb: -1, st: -1}

	c.span(b.Span)

	if b.SpreadArg != nil {
		c.local(*b.SpreadArg)
	}

	if int(b.ArgCount) >= len(b.LocalDecls) && b.ArgCount != 0 {
		c.fail("arg_count %d out of %d locals", b.ArgCount, len(b.LocalDecls))
	}

	for _, v := range b.VarDebugInfo {
		switch x := v.Content.(type) {
		case DebugPlace:
			c.place(x.Place)
		}

		if v.Composite != nil {
			c.proj(v.Composite.Proj)
		}
	}

	for i := range b.Blocks {
		c.bb = i

		for j, s := range b.Blocks[i].Statements {
			c.st = j

			c.span(s.Span)

			if IsTerminator(s.Kind) && j != len(b.Blocks[i].Statements)-1 {
				c.fail("terminator %T is not the last statement", s.Kind)
			}

			c.kind(s.Kind)
		}

		c.st = -1
	}

	return c.vs
}

func (v Violation) Error() string {
	return string(v.AppendText(nil))
}

func (v Violation) AppendText(b []byte) []byte {
	switch {
	case v.Block < 0:
	case v.Stmt < 0:
		b = hfmt.Appendf(b, "bb%d: ", v.Block)
	default:
		b = hfmt.Appendf(b, "bb%d[%d]: ", v.Block, v.Stmt)
	}

	return append(b, v.Reason...)
}

func (c *checker) fail(format string, args ...any) {
	c.vs = append(c.vs, Violation{
		Block:  c.bb,
		Stmt:   c.st,
		Reason: fmt.Sprintf(format, args...),
	})
}

func (c *checker) span(s Span) {
	if s.Lo > s.Hi {
		c.fail("span %d..%d: lo > hi", s.Lo, s.Hi)
	}
}

func (c *checker) local(l Local) {
	if int(l) >= len(c.b.LocalDecls) {
		c.fail("local _%d out of %d", l, len(c.b.LocalDecls))
	}
}

func (c *checker) block(id BlockID) {
	if int(id) >= len(c.b.Blocks) {
		c.fail("block bb%d out of %d", id, len(c.b.Blocks))
	}
}

func (c *checker) optBlock(id *BlockID) {
	if id != nil {
		c.block(*id)
	}
}

func (c *checker) place(p Place) {
	c.local(p.Local)
	c.proj(p.Proj)
}

func (c *checker) proj(ps []Projection) {
	for _, p := range ps {
		if x, ok := p.(Index); ok {
			c.local(x.Local)
		}
	}
}

func (c *checker) operand(op Operand) {
	switch x := op.(type) {
	case Copy:
		c.place(x.Place)
	case Move:
		c.place(x.Place)
	}
}

func (c *checker) unwind(u UnwindAction) {
	if x, ok := u.(UnwindCleanup); ok {
		c.block(x.Block)
	}
}

func (c *checker) kind(k StatementKind) {
	switch k := k.(type) {
	case Assign:
		c.place(k.Place)
		c.rvalue(k.Rvalue)
	case SetDiscriminant:
		c.place(k.Place)
	case Deinit:
		c.place(k.Place)
	case StorageLive:
		c.local(k.Local)
	case StorageDead:
		c.local(k.Local)
	case Retag:
		c.place(k.Place)
	case PlaceMention:
		c.place(k.Place)
	case Intrinsic:
		switch x := k.Kind.(type) {
		case Assume:
			c.operand(x.Op)
		case CopyNonOverlapping:
			c.operand(x.Src)
			c.operand(x.Dst)
			c.operand(x.Count)
		}
	case Goto:
		c.block(k.Target)
	case SwitchInt:
		c.operand(k.Discr)

		if len(k.Targets.Targets) != len(k.Targets.Values)+1 {
			c.fail("switch: %d targets for %d values", len(k.Targets.Targets), len(k.Targets.Values))
		}

		for _, t := range k.Targets.Targets {
			c.block(t)
		}
	case Drop:
		c.place(k.Place)
		c.block(k.Target)
		c.unwind(k.Unwind)
		c.optBlock(k.AsyncDrop)
	case Call:
		c.operand(k.Func)

		for _, a := range k.Args {
			c.operand(a)
		}

		c.place(k.Dest)
		c.optBlock(k.Target)
		c.unwind(k.Unwind)
		c.span(k.Span)
	case Assert:
		c.operand(k.Cond)
		c.assert(k.Msg)
		c.block(k.Target)
		c.unwind(k.Unwind)
	}
}

func (c *checker) assert(m AssertKind) {
	switch x := m.(type) {
	case BoundsCheck:
		c.operand(x.Len)
		c.operand(x.Index)
	case Overflow:
		c.operand(x.L)
		c.operand(x.R)
	case OverflowNeg:
		c.operand(x.Op)
	case DivisionByZero:
		c.operand(x.Op)
	case RemainderByZero:
		c.operand(x.Op)
	case MisalignedPointerDereference:
		c.operand(x.Required)
		c.operand(x.Found)
	}
}

func (c *checker) rvalue(r Rvalue) {
	switch x := r.(type) {
	case Use:
		c.operand(x.Op)
	case Repeat:
		c.operand(x.Op)
	case Ref:
		c.place(x.Place)
	case RawPtr:
		c.place(x.Place)
	case Len:
		c.place(x.Place)
	case BinaryOp:
		c.operand(x.L)
		c.operand(x.R)
	case UnaryOp:
		c.operand(x.X)
	case Discriminant:
		c.place(x.Place)
	case ShallowInitBox:
		c.operand(x.Op)
	case CopyForDeref:
		c.place(x.Place)
	case WrapUnsafeBinder:
		c.operand(x.Op)
	}
}
