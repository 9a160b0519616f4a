// Package cli wires flag parsing, batch configuration and the generation
// runner behind one cobra command.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/seitarof/defunc/internal/generator"
	"github.com/seitarof/defunc/internal/scanner"
	"github.com/seitarof/defunc/internal/validate"
)

// NewCommand builds the defunc root command.
func NewCommand(version string) *cobra.Command {
	cfg := &Config{}
	var (
		configPath  string
		verbose     bool
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:           "defunc",
		Short:         "Convert a package of functions sharing a call signature into a tagged union",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			runner := NewRunner(scanner.New(), validate.New(), newGenerator(cfg.DryRun))
			if configPath != "" {
				fc, err := LoadConfigFile(configPath)
				if err != nil {
					return err
				}
				return runner.RunAll(fc, cfg.DryRun)
			}

			if err := cfg.normalize(); err != nil {
				return err
			}
			return runner.Run(cfg)
		},
	}

	fl := pflag.NewFlagSet("generation", pflag.ContinueOnError)
	fl.StringVarP(&cfg.Group, "group", "g", "", "group package pattern or directory")
	fl.StringVarP(&cfg.Out, "out", "o", "", "output file name")
	fl.StringVarP(&cfg.Package, "package", "p", "", "output package name (default: base of the output directory)")
	fl.StringVarP(&cfg.Signature, "signature", "s", "", "shared call signature (overrides the //defunc:signature directive)")
	fl.StringVarP(&cfg.Name, "name", "n", "", "union type name (used verbatim, overrides the signature's name)")
	fl.BoolVar(&cfg.DryRun, "dry-run", false, "print generated code instead of writing it")
	cmd.Flags().AddFlagSet(fl)

	cmd.Flags().StringVar(&configPath, "config", "", "YAML batch file listing groups to generate")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version")
	return cmd
}

func newGenerator(dryRun bool) generator.Generator {
	w := generator.NewFileWriter()
	if dryRun {
		w = generator.NewStdoutWriter()
	}
	return generator.New(generator.NewGoimportsFormatter(), w)
}
