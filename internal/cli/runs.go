package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/voxwfc/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// RunSummary is one row of the runs listing.
type RunSummary struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Name      string       `json:"name"`
	Size      [3]int       `json:"size"`
	Seed      int64        `json:"seed"`
	Status    store.Status `json:"status"`
	Steps     int          `json:"steps"`
}

// RunsReport is the output of runs.
type RunsReport struct {
	Runs []RunSummary `json:"runs"`
}

func (r RunsReport) String() string {
	if len(r.Runs) == 0 {
		return "No runs found."
	}
	var b strings.Builder
	for i, run := range r.Runs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %-6s  %s  %dx%dx%d  seed=%d  steps=%d  %s",
			run.ID, run.Status, run.CreatedAt.Format(time.RFC3339),
			run.Size[0], run.Size[1], run.Size[2], run.Seed, run.Steps, run.Name)
	}
	return b.String()
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs, newest first",
		Long: `List the runs recorded by "voxwfc solve --db", newest first.

Example:
  voxwfc runs --db runs.db --limit 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of runs to list (0 lists all)")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid --limit %d", opts.Limit))
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.List(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	report := RunsReport{Runs: make([]RunSummary, 0, len(runs))}
	for _, r := range runs {
		report.Runs = append(report.Runs, RunSummary{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			Name:      r.Name,
			Size:      dimsArray(r.Size),
			Seed:      r.Seed,
			Status:    r.Status,
			Steps:     r.Steps,
		})
	}

	if err := opts.formatter(cmd).Success(report); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}
	return nil
}
