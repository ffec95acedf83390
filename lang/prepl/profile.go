package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// profile holds user settings for P.REPL, read from a YAML file:
//
//	trace: Info
//	prompt: "pl> "
//	init:
//	  - lib/strings.pl
//
// Init scripts are run before anything else. Relative paths are resolved
// against the directory of the profile.
type profile struct {
	Trace  string   `yaml:"trace"`
	Prompt string   `yaml:"prompt"`
	Init   []string `yaml:"init"`
}

func loadProfile(path string) (*profile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("profile: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	prof := &profile{}
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(prof); err != nil {
		return nil, fmt.Errorf("profile: parse %s: %w", abs, err)
	}
	dir := filepath.Dir(abs)
	for i, script := range prof.Init {
		if !filepath.IsAbs(script) {
			prof.Init[i] = filepath.Join(dir, script)
		}
	}
	return prof, nil
}

// settle fills in defaults and lets command line options override settings.
func (prof *profile) settle(opts *options) {
	if opts.trace != "" {
		prof.Trace = opts.trace
	}
	if prof.Trace == "" {
		prof.Trace = "Error"
	}
	if prof.Prompt == "" {
		prof.Prompt = defaultPrompt
	}
}
