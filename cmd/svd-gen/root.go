package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"omibyte.io/svdgen/builder"
	"omibyte.io/svdgen/targets"
)

type rootOptions struct {
	inputs    []string
	output    string
	config    string
	target    string
	dumpModel bool
	format    bool
	verbose   bool
	jobs      int

	fields           bool
	groupFields      bool
	boolFields       bool
	groupPeripherals bool
	doc              bool
	enums            bool
	interrupts       bool
	ignoreFields     bool
	pointers         bool
	pkg              string
	buildTag         string
	volatileImport   string
}

func newRootCmd() *cobra.Command {
	env := builder.Environment()
	opts := rootOptions{}

	cmd := &cobra.Command{
		Use:   "svd-gen [flags] [documents]",
		Short: "Generate Go register accessors from device descriptions",
		Long: `svd-gen reads SVD device descriptions and generates Go source with
volatile register accessors. Without inputs the document is read from
stdin and the source is written to stdout.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			builderOptions, err := opts.builderOptions(cmd, args)
			if err != nil {
				return err
			}
			builderOptions.Logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
			return run(cmd, builderOptions)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.inputs, "in", "i", nil, "input documents, glob patterns allowed")
	flags.StringVarP(&opts.output, "out", "o", "", "output directory receiving one file per document")
	flags.StringVar(&opts.config, "config", env.Value(builder.EnvConfig), "YAML configuration file")
	flags.StringVarP(&opts.target, "target", "t", "", fmt.Sprintf(`output target (%s), "auto" selects by device series, defaults to $%s`,
		strings.Join(targets.All().Names(), ", "), builder.EnvTarget))
	flags.BoolVar(&opts.dumpModel, "dump-model", false, "write the resolved model as YAML instead of code")
	flags.BoolVar(&opts.format, "format", false, "format the generated code")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every pipeline stage")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "number of documents processed concurrently")

	flags.BoolVar(&opts.fields, "fields", true, "generate field accessors")
	flags.BoolVar(&opts.groupFields, "group-fields", true, "generate indexed accessors for numbered fields")
	flags.BoolVar(&opts.boolFields, "bool-fields", true, "use bool for single bit fields")
	flags.BoolVar(&opts.groupPeripherals, "group-peripherals", true, "share one type between similar peripherals")
	flags.BoolVar(&opts.doc, "doc", true, "emit descriptions as comments")
	flags.BoolVar(&opts.enums, "enums", true, "emit enumerated value constants")
	flags.BoolVar(&opts.interrupts, "interrupts", true, "emit interrupt number constants")
	flags.BoolVar(&opts.ignoreFields, "ignore-fields", false, "ignore field layouts when grouping peripherals")
	flags.BoolVar(&opts.pointers, "pointers", false, "emit raw register pointer accessors")
	flags.StringVar(&opts.pkg, "package", "", "package name, defaults to the device name")
	flags.StringVar(&opts.buildTag, "build-tag", "", "build constraint of the generated file")
	flags.StringVar(&opts.volatileImport, "volatile-import", "", "import path of the volatile package")

	cmd.AddCommand(newEnvCmd(env))
	return cmd
}

// builderOptions layers the environment, the configuration file and every
// flag set explicitly on the command line, in that order.
func (o rootOptions) builderOptions(cmd *cobra.Command, args []string) (builder.Options, error) {
	config := builder.DefaultConfig()
	if len(o.config) > 0 {
		var err error
		if config, err = builder.LoadConfig(o.config); err != nil {
			return builder.Options{}, err
		}
	}

	result := config.Apply(builder.Options{
		Inputs:      append(o.inputs, args...),
		Output:      o.output,
		Target:      o.target,
		DumpModel:   o.dumpModel,
		NumJobs:     o.jobs,
		Environment: builder.Environment(),
	})

	flags := cmd.Flags()
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"out", func() { result.Output = o.output }},
		{"target", func() { result.Target = o.target }},
		{"jobs", func() { result.NumJobs = o.jobs }},
		{"format", func() { result.Generator.Format = o.format }},
		{"fields", func() { result.Generator.WithFields = o.fields }},
		{"group-fields", func() { result.Generator.GroupFields = o.groupFields }},
		{"bool-fields", func() { result.Generator.BoolFields = o.boolFields }},
		{"group-peripherals", func() { result.Generator.GroupPeripherals = o.groupPeripherals }},
		{"doc", func() { result.Generator.WithDoc = o.doc }},
		{"enums", func() { result.Generator.WithEnums = o.enums }},
		{"interrupts", func() { result.Generator.WithInterrupts = o.interrupts }},
		{"ignore-fields", func() { result.Generator.IgnoreFields = o.ignoreFields }},
		{"pointers", func() { result.Generator.WithPointers = o.pointers }},
		{"package", func() { result.Generator.Package = o.pkg }},
		{"build-tag", func() { result.Generator.BuildTag = o.buildTag }},
		{"volatile-import", func() { result.Generator.VolatileImport = o.volatileImport }},
	}
	for _, override := range overrides {
		if flags.Changed(override.flag) {
			override.apply()
		}
	}
	return result, nil
}

func run(cmd *cobra.Command, opts builder.Options) error {
	ctx := cmd.Context()

	if len(opts.Output) > 0 {
		return builder.BuildFiles(ctx, opts)
	}

	inputs, err := builder.ExpandInputs(opts.Inputs)
	if err != nil {
		return err
	}

	switch len(inputs) {
	case 0:
		return builder.Build(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
	case 1:
		f, err := os.Open(inputs[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return builder.Build(ctx, f, cmd.OutOrStdout(), opts)
	default:
		return fmt.Errorf("%w: %d documents need an output directory", builder.ErrUnexpectedOutputPath, len(inputs))
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
