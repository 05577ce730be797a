// Package config holds the checker's configurable behavior switches,
// loaded from a struct-tagged YAML file via gopkg.in/yaml.v3, and an
// unused test-mode flag.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Options are the five named checker behavior switches from SPEC_FULL.md
// §6.
type Options struct {
	StrictOptional     bool `yaml:"strict_optional"`
	GradualAnyIsError  bool `yaml:"gradual_any_is_error"`
	RedefinitionAllowed bool `yaml:"redefinition_allowed"`
	VarianceCheck      bool `yaml:"variance_check"`
	ImplicitOptional   bool `yaml:"implicit_optional"`
}

// Default matches mypy's conventional defaults: strict-optional and
// variance checking on, the others off.
func Default() Options {
	return Options{
		StrictOptional: true,
		VarianceCheck:  true,
	}
}

// Load reads a funxytc.yaml file, if present, and overlays it onto
// Default(). A missing file is not an error; callers get defaults.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// IsTestMode is a package-level test-mode flag. Nothing in the module
// reads it: diagnostic ordering and color do not depend on it.
var IsTestMode bool

// SourceFileExt is the canonical extension for checked source files;
// SourceFileExtensions lists every extension the loader recognizes.
const SourceFileExt = ".fxt"

var SourceFileExtensions = []string{".fxt", ".py"}

// HasSourceExt reports whether path ends in a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// TrimSourceExt strips a recognized source extension from name, if present.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) > len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
