package collect

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/mmir/compiler/host"
)

type (
	// Driver runs the compiler driver executable
	// which prints the host dump to stdout.
	Driver struct {
		Path string
		Env  []string // appended to the process environment
	}

	// Dump reads a host dump recorded earlier.
	Dump struct {
		Path string
	}

	// ToolchainError is a fatal compiler diagnostic.
	// No bodies are produced in that case.
	ToolchainError struct {
		Code   int
		Stderr string
	}
)

func (d *Driver) Analyze(ctx context.Context, args []string) (u *host.Unit, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "driver", "path", d.Path, "args", args)
	defer tr.Finish("err", &err)

	cmd := exec.CommandContext(ctx, d.Path, args...)
	cmd.Env = append(os.Environ(), d.Env...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	var exit *exec.ExitError

	if errors.As(err, &exit) {
		return nil, &ToolchainError{Code: exit.ExitCode(), Stderr: stderr.String()}
	}
	if err != nil {
		return nil, errors.Wrap(err, "run %v", d.Path)
	}

	if tr.If("driver_stderr") && stderr.Len() != 0 {
		tr.Printw("driver stderr", "stderr", stderr.String())
	}

	tr.V("driver").Printw("dump received", "size", stdout.Len())

	u, err = host.DecodeBytes(stdout.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "decode dump")
	}

	return u, nil
}

func (d *Dump) Analyze(ctx context.Context, args []string) (u *host.Unit, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "dump", "path", d.Path, "args", args)
	defer tr.Finish("err", &err)

	f, err := os.Open(d.Path)
	if err != nil {
		return nil, errors.Wrap(err, "open dump")
	}

	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = errors.Wrap(e, "close dump")
		}
	}()

	u, err = host.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "decode %v", d.Path)
	}

	return u, nil
}

func (e *ToolchainError) Error() string {
	msg := strings.TrimSpace(e.Stderr)

	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}

	b := hfmt.Appendf(nil, "toolchain: exit code %d", e.Code)

	if msg != "" {
		b = hfmt.Appendf(b, ": %s", msg)
	}

	return string(b)
}
