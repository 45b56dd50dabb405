package collect

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"
	"tlog.app/go/errors"
)

type (
	// Config is the optional yaml config file.
	//
	//	driver: /usr/local/bin/mmir-rustc
	//	sysroot: ~/.rustup/toolchains/nightly-x86_64-unknown-linux-gnu
	//	edition: "2021"
	//	args: [-Zmir-opt-level=0]
	//	env:
	//	  RUST_BACKTRACE: "1"
	Config struct {
		Driver  string            `yaml:"driver"`
		Sysroot string            `yaml:"sysroot"`
		Edition string            `yaml:"edition"`
		Args    []string          `yaml:"args"`
		Env     map[string]string `yaml:"env"`
	}
)

func LoadConfig(name string) (*Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	c, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrap(err, "config %v", name)
	}

	return c, nil
}

func ParseConfig(data []byte) (*Config, error) {
	var c Config

	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal")
	}

	return &c, nil
}

// Apply overrides tc fields set in the config.
func (c *Config) Apply(tc Toolchain) Toolchain {
	if c == nil {
		return tc
	}

	if c.Driver != "" {
		tc.Driver = c.Driver
	}

	if c.Sysroot != "" {
		tc.Sysroot = ExpandHome(c.Sysroot)
	}

	if c.Edition != "" {
		tc.Edition = c.Edition
	}

	tc.Args = append(tc.Args[:len(tc.Args):len(tc.Args)], c.Args...)

	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	tc.Env = tc.Env[:len(tc.Env):len(tc.Env)]

	for _, k := range keys {
		tc.Env = append(tc.Env, k+"="+c.Env[k])
	}

	return tc
}
