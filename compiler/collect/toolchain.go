package collect

import (
	"os"
	"path/filepath"
	"strings"
)

type (
	Toolchain struct {
		Sysroot string
		Driver  string
		Edition string

		Args []string // extra compiler args
		Env  []string
	}
)

const (
	DefaultSysroot = "~/.rustup/toolchains/stable-x86_64-unknown-linux-gnu/"
	DefaultDriver  = "mmir-rustc"
	DefaultEdition = "2024"
)

// ToolchainFromEnv takes the sysroot from RUSTC_SYSROOT and the driver from MMIR_DRIVER.
// getenv is usually os.Getenv.
func ToolchainFromEnv(getenv func(string) string) Toolchain {
	tc := Toolchain{
		Sysroot: getenv("RUSTC_SYSROOT"),
		Driver:  getenv("MMIR_DRIVER"),
	}

	return tc.WithDefaults()
}

func (tc Toolchain) WithDefaults() Toolchain {
	if tc.Sysroot == "" {
		tc.Sysroot = DefaultSysroot
	}

	if tc.Driver == "" {
		tc.Driver = DefaultDriver
	}

	if tc.Edition == "" {
		tc.Edition = DefaultEdition
	}

	tc.Sysroot = ExpandHome(tc.Sysroot)

	return tc
}

// CmdArgs is the compiler invocation for input.
// It always stops after analysis.
func (tc Toolchain) CmdArgs(input string) []string {
	edition := tc.Edition
	if edition == "" {
		edition = DefaultEdition
	}

	args := []string{
		input,
		"--emit=mir",
		"--crate-type=bin",
		"--edition=" + edition,
	}

	if tc.Sysroot != "" {
		args = append(args, "--sysroot", tc.Sysroot)
	}

	return append(args, tc.Args...)
}

func (tc Toolchain) NewDriver() *Driver {
	return &Driver{
		Path: tc.Driver,
		Env:  tc.Env,
	}
}

// ExpandHome replaces leading ~ with the user home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}

	if p == "~" {
		return home
	}

	return filepath.Join(home, p[2:]) + trailingSlash(p)
}

func trailingSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return "/"
	}

	return ""
}
