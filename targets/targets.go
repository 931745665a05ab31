package targets

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/svdgen/generator"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets
var ErrTargetNotFound = errors.New("target not found")

func All() Targets {
	return targets
}

// Targets is the catalogue of output flavours. A flavour decides which
// volatile package the generated code imports and which build tags guard it.
type Targets []TargetInfo
type TargetInfo struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Series         []string `yaml:"series"`
	VolatileImport string   `yaml:"volatileImport"`
	Package        string   `yaml:"package"`
	Tags           []string `yaml:"tags"`
}

// BuildTag returns the build constraint expression requiring every tag.
func (t TargetInfo) BuildTag() string {
	return strings.Join(t.Tags, " && ")
}

// Apply returns opts with the target's settings in place of the matching
// options. Settings the target leaves empty keep the option's value.
func (t TargetInfo) Apply(opts generator.Options) generator.Options {
	if len(t.VolatileImport) > 0 {
		opts.VolatileImport = t.VolatileImport
	}
	if len(t.Package) > 0 {
		opts.Package = t.Package
	}
	if len(t.Tags) > 0 {
		opts.BuildTag = t.BuildTag()
	}
	return opts
}

func (t Targets) FindByName(name string) (TargetInfo, error) {
	for _, target := range t {
		if target.Name == strings.ToLower(name) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: %q", ErrTargetNotFound, name)
}

// FindBySeries returns the first target listing the device series.
func (t Targets) FindBySeries(series string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Series, strings.ToLower(series)) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: series %q", ErrTargetNotFound, series)
}

// Names lists the target names in catalogue order.
func (t Targets) Names() []string {
	names := make([]string, len(t))
	for i, target := range t {
		names[i] = target.Name
	}
	return names
}

func init() {
	var t struct {
		Elements []TargetInfo `yaml:"targets"`
	}
	if err := yaml.Unmarshal(rawTargets, &t); err != nil {
		panic(err)
	}

	targets = t.Elements
}
