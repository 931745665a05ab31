package generator

import (
	"path"
	"strings"
)

const DefaultVolatileImport = "runtime/volatile"

type Options struct {
	WithFields       bool `yaml:"withFields"`
	GroupFields      bool `yaml:"groupFields"`
	BoolFields       bool `yaml:"boolFields"`
	GroupPeripherals bool `yaml:"groupPeripherals"`
	WithDoc          bool `yaml:"withDoc"`
	WithEnums        bool `yaml:"withEnums"`
	WithInterrupts   bool `yaml:"withInterrupts"`
	IgnoreFields     bool `yaml:"ignoreFields"`
	// WithPointers adds a Ptr<R> method returning the raw register
	// address. Accesses through it bypass the volatile package.
	WithPointers bool `yaml:"withPointers"`

	Package        string `yaml:"package"`
	BuildTag       string `yaml:"buildTag"`
	VolatileImport string `yaml:"volatileImport"`
	Format         bool   `yaml:"format"`
}

// DefaultOptions enables every generator feature.
func DefaultOptions() Options {
	return Options{
		WithFields:       true,
		GroupFields:      true,
		BoolFields:       true,
		GroupPeripherals: true,
		WithDoc:          true,
		WithEnums:        true,
		WithInterrupts:   true,
		VolatileImport:   DefaultVolatileImport,
	}
}

func (o Options) packageName(device string) string {
	if len(o.Package) > 0 {
		return o.Package
	}
	return strings.ToLower(cleanIdentifier(device))
}

func (o Options) volatileImport() string {
	if len(o.VolatileImport) > 0 {
		return o.VolatileImport
	}
	return DefaultVolatileImport
}

// volatileAlias returns the alias needed to refer to the volatile package
// as "volatile", or an empty string if none is required.
func (o Options) volatileAlias() string {
	if path.Base(o.volatileImport()) == "volatile" {
		return ""
	}
	return "volatile"
}
