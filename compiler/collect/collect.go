// Package collect drives one extraction: run the host compiler analysis once,
// translate every body it reports, in the order it reports them.
package collect

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/mmir/compiler/host"
	"github.com/slowlang/mmir/compiler/mmir"
	"github.com/slowlang/mmir/compiler/translate"
)

type (
	// Host runs the compiler analysis pass and returns the finalized IR.
	// Codegen is never performed.
	Host interface {
		Analyze(ctx context.Context, args []string) (*host.Unit, error)
	}

	Collector struct {
		Host      Host
		Toolchain Toolchain

		// Strict makes invariant violations an error.
		Strict bool
	}

	Function struct {
		Name string
		Def  host.DefID
		Body mmir.Body
	}

	ViolationsError struct {
		Name       string
		Violations []mmir.Violation
	}
)

func New(h Host, tc Toolchain) *Collector {
	return &Collector{
		Host:      h,
		Toolchain: tc,
	}
}

// Extract returns bodies of all analyzable functions of input.
// Order is the host enumeration order which may differ between host versions.
func (c *Collector) Extract(ctx context.Context, input string) ([]mmir.Body, error) {
	fs, err := c.Collect(ctx, input)
	if err != nil {
		return nil, err
	}

	bs := make([]mmir.Body, len(fs))

	for i, f := range fs {
		bs[i] = f.Body
	}

	return bs, nil
}

func (c *Collector) Collect(ctx context.Context, input string) (fs []Function, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "collect", "input", input)
	defer tr.Finish("err", &err)

	u, err := c.Host.Analyze(ctx, c.Toolchain.CmdArgs(input))
	if err != nil {
		return nil, errors.Wrap(err, "analyze")
	}

	fs = make([]Function, 0, len(u.Items))

	for _, it := range u.Items {
		if it.Body == nil {
			tr.V("collect").Printw("no body", "item", it.Name, "def", it.DefID)
			continue
		}

		b := translate.Body(&u.Context, it.DefID, it.Body)

		if vs := mmir.Check(&b); len(vs) != 0 {
			tr.Printw("invariant violations", "item", it.Name, "def", it.DefID, "violations", vs)

			if c.Strict {
				return nil, &ViolationsError{Name: it.Name, Violations: vs}
			}
		}

		if tr.If("dump_mir") {
			tr.Printw("body", "item", it.Name, "def", it.DefID, "blocks", len(b.Blocks), "locals", len(b.LocalDecls), "span", b.Span, "fingerprint", mmir.Fingerprint(&b))
		}

		fs = append(fs, Function{
			Name: it.Name,
			Def:  it.DefID,
			Body: b,
		})
	}

	tr.V("collect").Printw("collected", "crate", u.Crate, "items", len(u.Items), "bodies", len(fs))

	return fs, nil
}

func (e *ViolationsError) Error() string {
	b := []byte(e.Name)
	b = append(b, ": invariant violations: "...)

	for i, v := range e.Violations {
		if i != 0 {
			b = append(b, "; "...)
		}

		b = v.AppendText(b)
	}

	return string(b)
}
