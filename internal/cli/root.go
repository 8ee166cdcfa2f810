package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/voxwfc/exemplar"
	"github.com/katalvlaran/voxwfc/store"
	"github.com/katalvlaran/voxwfc/wfc"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// NewID allows overriding the run ID generator (for testing).
	// If nil, defaults to store.NewID.
	NewID func() string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the voxwfc CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voxwfc",
		Short: "voxwfc - 3D wave function collapse",
		Long: `Generate voxel grids from a small labelled exemplar.

Every exemplar cell becomes a pattern. Two patterns may sit side by side in
the output only when they sit side by side in the exemplar along the same
axis, and the solver collapses the output one cell at a time until every
cell holds exactly one pattern.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewAdjacencyCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}

// logger returns a text logger on w: Info by default, Debug when verbose.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) runID() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return store.NewID()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// Run executes the CLI with args and returns the process exit code. Errors
// that the failing command did not print itself are reported on stderr, or
// as a JSON error envelope on stdout under --format json.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, &RootOptions{}, args, stdout, stderr)
}

func run(ctx context.Context, opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Silent {
		return exitErr.Code
	}
	if !errors.As(err, &exitErr) {
		// cobra's own argument and flag errors
		err = WrapExitError(ExitCommandError, "invalid usage", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: stderr}
	if opts.Format == "json" {
		f.Writer = stdout
	}
	_ = f.Error(errorCode(err), err.Error(), nil)
	return GetExitCode(err)
}

// errorCode maps an error onto the CLIError code reported for it.
func errorCode(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, wfc.ErrContradiction), errors.Is(err, wfc.ErrBudgetExceeded):
		return CodeSolveFailed
	case errors.Is(err, exemplar.ErrMalformed),
		errors.Is(err, wfc.ErrInvalidInput),
		errors.Is(err, wfc.ErrOptionViolation):
		return CodeInvalidInput
	default:
		return CodeCommand
	}
}
