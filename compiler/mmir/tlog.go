package mmir

import (
	"tlog.app/go/tlog/tlwire"
)

func (s Span) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendFormat(b, "%d..%d", s.Lo, s.Hi)
}

func (p Place) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	if len(p.Proj) == 0 {
		return e.AppendFormat(b, "_%d", p.Local)
	}

	b = e.AppendMap(b, 2)
	b = e.AppendKeyInt64(b, "local", int64(p.Local))
	b = e.AppendKeyInt64(b, "proj", int64(len(p.Proj)))

	return b
}

func (v Violation) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendString(b, v.Error())
}

func (x Targets) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 2)
	b = e.AppendKeyInt64(b, "values", int64(len(x.Values)))
	b = e.AppendKeyInt64(b, "targets", int64(len(x.Targets)))

	return b
}
