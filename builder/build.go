package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"omibyte.io/svdgen/cascade"
	"omibyte.io/svdgen/generator"
	"omibyte.io/svdgen/resolver"
	"omibyte.io/svdgen/svd"
	"omibyte.io/svdgen/targets"
	"omibyte.io/svdgen/xmltree"
)

// AutoTarget selects the target listing the device series.
const AutoTarget = "auto"

// Load parses a document and returns the device with every derivation
// resolved and every property cascaded.
func Load(ctx context.Context, r io.Reader, opts Options) (*svd.Device, error) {
	logger := opts.logger()

	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, errors.Join(ErrParserError, err)
	}

	device, err := svd.FromElement(root)
	if err != nil {
		return nil, errors.Join(ErrParserError, err)
	}
	logger.Debug("parsed device", "device", device.Name, "peripherals", len(device.Peripherals))

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if err = resolver.Resolve(device); err != nil {
		return nil, fmt.Errorf("device %s: %w", device.Name, err)
	}
	logger.Debug("resolved derivations", "device", device.Name)

	cascade.Apply(device)
	logger.Debug("cascaded properties", "device", device.Name)
	return device, nil
}

// Build runs the pipeline on one document read from r and writes the
// generated source, or the model when DumpModel is set, to w. Nothing is
// written to w if any stage fails.
func Build(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	_, err := build(ctx, r, w, opts)
	return err
}

func build(ctx context.Context, r io.Reader, w io.Writer, opts Options) (*svd.Device, error) {
	device, err := Load(ctx, r, opts)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if opts.DumpModel {
		return device, dumpModel(w, device)
	}

	genOpts, err := generatorOptions(device, opts)
	if err != nil {
		return nil, err
	}

	if err = generator.Generate(w, device, genOpts); err != nil {
		return nil, fmt.Errorf("device %s: %w", device.Name, err)
	}
	opts.logger().Debug("generated accessors", "device", device.Name, "package", genOpts.Package)
	return device, nil
}

// generatorOptions applies the selected target to the generator options.
// Without a target the environment decides.
func generatorOptions(device *svd.Device, opts Options) (generator.Options, error) {
	switch opts.target() {
	case "":
		return opts.Generator, nil
	case AutoTarget:
		target, err := targets.All().FindBySeries(device.Series)
		if err != nil {
			opts.logger().Debug("no target for series", "device", device.Name, "series", device.Series)
			return opts.Generator, nil
		}
		return target.Apply(opts.Generator), nil
	default:
		target, err := targets.All().FindByName(opts.target())
		if err != nil {
			return opts.Generator, err
		}
		return target.Apply(opts.Generator), nil
	}
}

func dumpModel(w io.Writer, device *svd.Device) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(device); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// ExpandInputs expands glob patterns. A pattern matching nothing is kept
// as is so opening it reports the missing file.
func ExpandInputs(patterns []string) ([]string, error) {
	var result []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		result = append(result, matches...)
	}
	return result, nil
}

// BuildFiles builds every input document concurrently and writes one file
// per document, named after the device, into the output directory. The
// first failure cancels the remaining builds.
func BuildFiles(ctx context.Context, opts Options) error {
	inputs, err := ExpandInputs(opts.Inputs)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return ErrNoInput
	}

	if info, err := os.Stat(opts.Output); err == nil && !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrUnexpectedOutputPath, opts.Output)
	}
	if err = os.MkdirAll(opts.Output, 0750); err != nil {
		return err
	}

	outputs := &outputSet{paths: map[string]string{}}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			if err := buildFile(ctx, input, outputs, opts); err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// outputSet records which input owns each output path.
type outputSet struct {
	mu    sync.Mutex
	paths map[string]string
}

// reserve claims path for input. Two documents naming the same device
// would otherwise overwrite each other.
func (s *outputSet) reserve(path, input string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.paths[path]; ok && owner != input {
		return fmt.Errorf("%w: %s is also written by %s", ErrUnexpectedOutputPath, path, owner)
	}
	s.paths[path] = input
	return nil
}

func buildFile(ctx context.Context, input string, outputs *outputSet, opts Options) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	device, err := build(ctx, f, &buf, opts)
	if err != nil {
		return err
	}

	ext := ".go"
	if opts.DumpModel {
		ext = ".yaml"
	}
	output := filepath.Join(opts.Output, strings.ToLower(device.Name)+ext)
	if err = outputs.reserve(output, input); err != nil {
		return err
	}
	if err = os.WriteFile(output, buf.Bytes(), 0640); err != nil {
		return err
	}

	opts.logger().Info("wrote output", "input", input, "output", output)
	return nil
}
