// specgap warns about public Ruby methods that have no matching spec.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phobologic/specgap/internal/config"
	"github.com/phobologic/specgap/internal/coverage"
	"github.com/phobologic/specgap/internal/gitdiff"
	"github.com/phobologic/specgap/internal/report"
)

var version = "dev"

// errUncovered is returned in --strict mode when any warning was reported.
var errUncovered = errors.New("public methods without specs")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(context.Background())
}

type checkFlags struct {
	configPath  string
	base        string
	all         bool
	format      string
	strict      bool
	maxFileSize int
	workers     int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		flags   checkFlags
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "specgap [path]",
		Short: "Report public Ruby methods without a spec",
		Long: `specgap finds the public methods declared by each class and module of a
Ruby repository and warns about every one that has no matching
describe "#method" or describe ".method" block in its companion spec file.

With --base (or base in .specgap.toml) only methods whose def lines were
added since that git ref are checked.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			logger := newLogger(stderr, verbose)
			return runCheck(cmd.Context(), root, flags, cmd.Flags().Changed("max-file-size"), stdout, logger)
		},
	}
	cmd.SetVersionTemplate("specgap {{.Version}}\n")

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug details to stderr")

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file (default <path>/"+config.FileName+")")
	cmd.Flags().StringVarP(&flags.base, "base", "b", "", "only check methods added since this git ref")
	cmd.Flags().BoolVar(&flags.all, "all", false, "check every public method, ignoring any configured base")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(report.Plain), "output format: plain, table or toon")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when any warning is reported")
	cmd.Flags().IntVar(&flags.maxFileSize, "max-file-size", 0, "skip files larger than this many bytes")
	cmd.Flags().IntVarP(&flags.workers, "jobs", "j", 0, "number of files analyzed in parallel (default GOMAXPROCS)")

	cmd.AddCommand(newMethodsCmd(stdout, stderr, &verbose))
	cmd.AddCommand(newInitCmd(stdout, stderr))

	return cmd
}

func runCheck(ctx context.Context, root string, flags checkFlags, sizeSet bool, stdout io.Writer, logger *slog.Logger) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", root)
	}

	format, err := report.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	cfgPath := flags.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, config.FileName)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if flags.base != "" {
		cfg.Base = flags.base
	}
	if flags.all {
		cfg.Base = ""
	}
	if sizeSet {
		cfg.MaxFileSize = flags.maxFileSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var changes gitdiff.Changes
	if cfg.Base != "" {
		changes, err = gitdiff.Diff(ctx, root, cfg.Base)
		if err != nil {
			return fmt.Errorf("reading changes: %w", err)
		}
		logger.Debug("changed files", slog.String("base", cfg.Base), slog.Int("files", len(changes)))
	}

	rep, err := coverage.Check(ctx, coverage.Options{
		Root:    root,
		Config:  cfg,
		Changes: changes,
		Workers: flags.workers,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	rep.Root = filepath.Base(root)

	if err := report.Write(stdout, format, rep); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if n := len(rep.Warnings()); flags.strict && n > 0 {
		return fmt.Errorf("%w: %d warning(s)", errUncovered, n)
	}
	return nil
}

func newMethodsCmd(stdout, stderr io.Writer, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "methods FILE...",
		Short: "List the public methods of Ruby files",
		Long: `List every public method of the given Ruby files as file:line: Scope#name
for instance methods or file:line: Scope.name for class methods.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := coverage.Methods(cmd.Context(), args, newLogger(stderr, *verbose))
			if err != nil {
				return err
			}
			return report.WriteMethods(stdout, files)
		},
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
