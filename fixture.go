package wafengine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// directiveFixture is the on-disk shape LoadDirectiveFixture decodes: a
// flat YAML sequence-of-sequences per directive kind, mirroring the
// already-tokenized "[][]string" Compile expects. This is not a
// configuration-file language or tokenizer — no quoting rules, no
// Caddyfile-style grammar — it only carries arguments a host already
// split, per spec.md §1's "consumes already-split directive argument
// arrays."
//
// Adapted from feng2208-adblocker's config-file loading shape
// (config.Manager.Load), using the same
// os.ReadFile + yaml.Unmarshal pair.
type directiveFixture struct {
	MainRules  [][]string `yaml:"main_rules"`
	CheckRules [][]string `yaml:"check_rules"`
	BasicRules [][]string `yaml:"basic_rules"`
}

// LoadDirectiveFixture reads a YAML file at path shaped like
// directiveFixture and returns its three directive-argument streams ready
// to pass to RuleCompiler.Compile. Used by this repo's own tests and as
// RuleFileWatcher's default rule-file format.
func LoadDirectiveFixture(path string) (mainRules, checkRules, basicRules [][]string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load directive fixture: %w", err)
	}

	var fixture directiveFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, nil, nil, fmt.Errorf("parse directive fixture: %w", err)
	}

	return fixture.MainRules, fixture.CheckRules, fixture.BasicRules, nil
}
