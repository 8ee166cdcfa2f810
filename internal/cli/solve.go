package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/voxwfc/exemplar"
	"github.com/katalvlaran/voxwfc/pattern"
	"github.com/katalvlaran/voxwfc/store"
)

// SolveOptions holds flags for the solve command. Flags that are set
// override the matching exemplar document settings.
type SolveOptions struct {
	*RootOptions
	Size          string
	Seed          int64
	Retries       int
	Workers       int
	Policy        string
	SelfAdjacency bool
	MaxSteps      int
	Database      string
}

// SolveReport is the output of solve.
type SolveReport struct {
	RunID   string           `json:"run_id"`
	Name    string           `json:"name"`
	Size    [3]int           `json:"size"`
	Seed    int64            `json:"seed"`
	Status  store.Status     `json:"status"`
	Attempt int              `json:"attempt"`
	Steps   int              `json:"steps"`
	Layers  [][][]string     `json:"layers,omitempty"`   // [z][y][x] labels
	IDs     [][][]pattern.ID `json:"patterns,omitempty"` // [x][y][z] pattern IDs
	Error   string           `json:"error,omitempty"`
}

func (r SolveReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run: %s\nname: %s\nsize: %dx%dx%d\nseed: %d\nstatus: %s",
		r.RunID, r.Name, r.Size[0], r.Size[1], r.Size[2], r.Seed, r.Status)
	if r.Error != "" {
		fmt.Fprintf(&b, "\nerror: %s", r.Error)
		return b.String()
	}
	fmt.Fprintf(&b, "\nattempt: %d\nsteps: %d", r.Attempt, r.Steps)
	writeLayers(&b, r.Layers)
	return b.String()
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <exemplar.yaml>",
		Short: "Generate an output grid from an exemplar",
		Long: `Solve an output grid from the exemplar document at the given path.

Flags override the settings stored in the document. With --db the run is
recorded, together with the effective document, so that "voxwfc replay" can
reproduce it.

Exit codes:
  0 - solved
  1 - every attempt ended in a contradiction or ran out of steps
  2 - command error (unreadable exemplar, invalid flags, database errors)

Example:
  voxwfc solve terrain.yaml --size 16,4,16 --seed 42 --retries 5
  voxwfc solve terrain.yaml --db runs.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Size, "size", "", "output extents as x,y,z (default: exemplar extents)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "base random seed (0 selects the default seed)")
	cmd.Flags().IntVar(&opts.Retries, "retries", 0, "extra attempts after a contradiction")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "attempts run concurrently")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "cell selection policy (min-cardinality|random)")
	cmd.Flags().BoolVar(&opts.SelfAdjacency, "self-adjacency", false, "let every pattern neighbour itself")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", 0, "collapse budget per attempt (0 means unlimited)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")

	return cmd
}

func runSolve(opts *SolveOptions, path string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := opts.logger(cmd.ErrOrStderr())
	f := opts.formatter(cmd)

	doc, err := exemplar.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load exemplar", err)
	}
	if err := applySolveFlags(opts, doc, cmd); err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}
	if doc.Name == "" {
		doc.Name = documentName(doc, path)
	}

	// Opened before solving so a bad path fails fast.
	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
	}

	out, err := solveDocument(ctx, doc, opts.Workers, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to solve", err)
	}

	report := SolveReport{
		RunID:  opts.runID(),
		Name:   doc.Name,
		Size:   dimsArray(out.size),
		Seed:   doc.Seed,
		Status: out.status(),
		Layers: out.labelLayers(),
		IDs:    out.ids(),
	}
	if out.res != nil {
		report.Attempt = out.res.Attempt
		report.Steps = out.res.Steps
	} else {
		report.Error = out.err.Error()
	}

	if st != nil {
		if err := recordRun(cmd, st, doc, out, report); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		f.VerboseLog("recorded run %s in %s", report.RunID, opts.Database)
	}

	if err := f.Success(report); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}
	if out.res == nil {
		return &ExitError{Code: ExitFailure, Message: "solve failed", Err: out.err, Silent: true}
	}
	return nil
}

// applySolveFlags copies the flags that were set onto doc and pins the
// output extents, so the document alone reproduces the run.
func applySolveFlags(opts *SolveOptions, doc *exemplar.Document, cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("size") {
		dims, err := exemplar.ParseSize(opts.Size)
		if err != nil {
			return err
		}
		doc.Output = []int{dims.X, dims.Y, dims.Z}
	}
	if flags.Changed("seed") {
		doc.Seed = opts.Seed
	}
	if flags.Changed("retries") {
		doc.Retries = opts.Retries
	}
	if flags.Changed("policy") {
		if _, err := exemplar.ParsePolicy(opts.Policy); err != nil {
			return err
		}
		doc.Policy = opts.Policy
	}
	if flags.Changed("self-adjacency") {
		doc.SelfAdjacency = opts.SelfAdjacency
	}
	if flags.Changed("max-steps") {
		doc.MaxSteps = opts.MaxSteps
	}
	size, err := doc.OutputDims()
	if err != nil {
		return err
	}
	doc.Output = []int{size.X, size.Y, size.Z}
	return nil
}

func recordRun(cmd *cobra.Command, st *store.Store, doc *exemplar.Document, out *outcome, report SolveReport) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	policy, err := exemplar.ParsePolicy(doc.Policy)
	if err != nil {
		return err
	}
	run := &store.Run{
		ID:       report.RunID,
		Name:     doc.Name,
		Seed:     doc.Seed,
		Retries:  doc.Retries,
		Policy:   policy.String(),
		Size:     out.size,
		Status:   report.Status,
		Attempt:  report.Attempt,
		Steps:    report.Steps,
		Document: data,
		Result:   out.ids(),
		Error:    report.Error,
	}
	return st.Save(cmd.Context(), run)
}
