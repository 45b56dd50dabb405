package compiler

import (
	"context"
	"os"
	"path/filepath"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/mmir/compiler/collect"
	"github.com/slowlang/mmir/compiler/mmir"
)

// ExtractFile runs the driver of tc over the named source file.
func ExtractFile(ctx context.Context, name string, tc collect.Toolchain) ([]mmir.Body, error) {
	tc = tc.WithDefaults()

	tlog.SpanFromContext(ctx).Printw("extract file", "name", name, "driver", tc.Driver, "sysroot", tc.Sysroot)

	return collect.New(tc.NewDriver(), tc).Extract(ctx, name)
}

// Extract is ExtractFile for source text which is not on disk.
func Extract(ctx context.Context, name string, text []byte, tc collect.Toolchain) (bs []mmir.Body, err error) {
	dir, err := os.MkdirTemp("", "mmir")
	if err != nil {
		return nil, errors.Wrap(err, "make temp dir")
	}

	defer func() {
		e := os.RemoveAll(dir)
		if err == nil && e != nil {
			err = errors.Wrap(e, "remove temp dir")
		}
	}()

	path := filepath.Join(dir, filepath.Base(name))

	err = os.WriteFile(path, text, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "write source")
	}

	tlog.SpanFromContext(ctx).Printw("write source", "size", len(text), "name", name, "path", path)

	return ExtractFile(ctx, path, tc)
}
