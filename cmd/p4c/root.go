package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/dfrunza/p4c/internal/compile"
	"github.com/dfrunza/p4c/internal/config"
	"github.com/dfrunza/p4c/internal/diag"
	"github.com/dfrunza/p4c/internal/errors"
)

// Main runs the driver and returns the process exit code: 0 on success,
// 1 on any diagnostic (spec §6).
func Main() int {
	cmd := newRootCmd()
	args, err := expandArgsFiles(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// expandArgsFiles replaces any argument of the form "@path" with the
// shell-split contents of the file at path, the response-file convention
// SPEC_FULL.md's domain-stack table names for invocations too long for
// a single command line. Only a leading "@" argument is special; "@" is
// not otherwise a meaningful character to this driver.
func expandArgsFiles(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		if len(a) == 0 || a[0] != '@' {
			out = append(out, a)
			continue
		}
		data, err := os.ReadFile(a[1:])
		if err != nil {
			return nil, fmt.Errorf("reading args file %s: %w", a[1:], err)
		}
		fields, err := shlex.Split(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing args file %s: %w", a[1:], err)
		}
		out = append(out, fields...)
	}
	return out, nil
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		recovery    bool
		maxErrors   int
		arenaBudget int
	)

	cmd := &cobra.Command{
		Use:           "p4c <source.p4>",
		Short:         "compile a P4-16 source file through the lexer, parser, and type checker",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			flags := cmd.Flags()

			cfg, err := loadConfig(configPath, filename)
			if err != nil {
				return err
			}
			if flags.Changed("recovery") {
				cfg.Recovery = recovery
			}
			if flags.Changed("max-errors") {
				cfg.MaxErrors = maxErrors
			}
			if flags.Changed("arena-page-budget") {
				cfg.ArenaPageBudget = arenaBudget
			}

			src, err := os.ReadFile(filename)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStderr(), err)
				return err
			}

			if _, compileErr := compile.Source(cfg, filename, src); compileErr != nil {
				list := &errors.List{}
				list.Add(compileErr)
				diag.Print(cmd.OutOrStderr(), list)
				return compileErr
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to a .p4c.yaml configuration file (default: .p4c.yaml next to the source)")
	flags.BoolVar(&recovery, "recovery", false, "lexer recovery setting (accepted; the first lexical error still halts compilation)")
	flags.IntVar(&maxErrors, "max-errors", 0, "lexical error bound (accepted; no lexical errors are accumulated)")
	flags.IntVar(&arenaBudget, "arena-page-budget", 0, "advisory total byte budget for the arena allocator")

	return cmd
}

// loadConfig reads explicitPath if given, otherwise a .p4c.yaml file next
// to source, falling back to config.Default when neither exists.
func loadConfig(explicitPath, source string) (config.Config, error) {
	if explicitPath != "" {
		return config.Load(explicitPath)
	}
	return config.Load(filepath.Join(filepath.Dir(source), ".p4c.yaml"))
}
