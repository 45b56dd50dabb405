package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/mmir/compiler/collect"
	"github.com/slowlang/mmir/compiler/format"
	"github.com/slowlang/mmir/compiler/mmir"
)

func main() {
	toolchainFlags := []*cli.Flag{
		cli.NewFlag("sysroot", "", "rust toolchain sysroot (default $RUSTC_SYSROOT or "+collect.DefaultSysroot+")"),
		cli.NewFlag("driver", "", "compiler driver executable (default $MMIR_DRIVER or "+collect.DefaultDriver+")"),
		cli.NewFlag("edition", "", "rust edition"),
		cli.NewFlag("config,c", "", "yaml config file"),
		cli.NewFlag("dump", "", "read recorded host dump instead of running the driver"),
		cli.NewFlag("sort", false, "order bodies by source position"),
		cli.NewFlag("check", false, "fail on invariant violations"),
	}

	extractCmd := &cli.Command{
		Name:        "extract",
		Description: "extract portable mir of all functions",
		Action:      extractAct,
		Args:        cli.Args{},
		Flags: append(toolchainFlags,
			cli.NewFlag("format,f", "json", "output format: json or yaml"),
			cli.NewFlag("validate", false, "validate output against the schema"),
			cli.NewFlag("output,o", "-", "output file"),
		),
	}

	dumpCmd := &cli.Command{
		Name:        "dump",
		Description: "print mir-like text of all functions",
		Action:      dumpAct,
		Args:        cli.Args{},
		Flags:       toolchainFlags,
	}

	schemaCmd := &cli.Command{
		Name:        "schema",
		Description: "print the output json schema",
		Action:      schemaAct,
	}

	app := &cli.Command{
		Name:        "mmir",
		Description: "mmir extracts rust compiler mir into portable json",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("verbosity,v", "", "logger verbosity topics"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			extractCmd,
			dumpCmd,
			schemaCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func extractAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	out := mmir.Output{
		Version: mmir.Version,
		Bodies:  []mmir.Body{},
	}

	for _, a := range c.Args {
		fs, err := collectFile(ctx, c, a)
		if err != nil {
			return errors.Wrap(err, "extract %v", a)
		}

		if out.Crate == "" {
			out.Crate = crateName(a)
		}

		for _, f := range fs {
			out.Bodies = append(out.Bodies, f.Body)
		}
	}

	data, err := mmir.Marshal(&out)
	if err != nil {
		return errors.Wrap(err, "marshal")
	}

	if c.Bool("validate") {
		err = mmir.ValidateJSON(data)
		if err != nil {
			return errors.Wrap(err, "validate")
		}
	}

	switch q := c.String("format"); q {
	case "json":
		data = append(data, '\n')
	case "yaml":
		data, err = toYAML(data)
		if err != nil {
			return errors.Wrap(err, "yaml")
		}
	default:
		return errors.New("unsupported format: %v", q)
	}

	return writeOutput(c.String("output"), data)
}

func dumpAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	var b []byte

	for _, a := range c.Args {
		fs, err := collectFile(ctx, c, a)
		if err != nil {
			return errors.Wrap(err, "dump %v", a)
		}

		ff := make([]format.Func, len(fs))

		for i := range fs {
			ff[i] = format.Func{Name: fs[i].Name, Body: &fs[i].Body}
		}

		b, err = format.Format(ctx, b, ff)
		if err != nil {
			return errors.Wrap(err, "format %v", a)
		}
	}

	_, err = os.Stdout.Write(b)

	return err
}

func schemaAct(c *cli.Command) error {
	_, err := os.Stdout.Write(mmir.Schema())

	return err
}

func collectFile(ctx context.Context, c *cli.Command, name string) ([]collect.Function, error) {
	tc := collect.ToolchainFromEnv(os.Getenv)

	if q := c.String("config"); q != "" {
		cfg, err := collect.LoadConfig(q)
		if err != nil {
			return nil, err
		}

		tc = cfg.Apply(tc)
	}

	if q := c.String("sysroot"); q != "" {
		tc.Sysroot = collect.ExpandHome(q)
	}

	if q := c.String("driver"); q != "" {
		tc.Driver = q
	}

	if q := c.String("edition"); q != "" {
		tc.Edition = q
	}

	var h collect.Host = tc.NewDriver()

	if q := c.String("dump"); q != "" {
		h = &collect.Dump{Path: q}
	}

	col := collect.New(h, tc)
	col.Strict = c.Bool("check")

	fs, err := col.Collect(ctx, name)
	if err != nil {
		return nil, err
	}

	if c.Bool("sort") {
		collect.SortBySpan(fs)
	}

	return fs, nil
}

// crateName is the rustc default crate name for the input file.
func crateName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return strings.ReplaceAll(base, "-", "_")
}

func toYAML(data []byte) ([]byte, error) {
	var v any

	err := json.Unmarshal(data, &v)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal json")
	}

	return yaml.Marshal(v)
}

func writeOutput(name string, data []byte) error {
	if name == "" || name == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	err := os.WriteFile(name, data, 0o644)
	if err != nil {
		return errors.Wrap(err, "write output")
	}

	return nil
}
