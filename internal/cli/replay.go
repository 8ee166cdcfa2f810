package cli

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/voxwfc/exemplar"
	"github.com/katalvlaran/voxwfc/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayReport is the output of replay.
type ReplayReport struct {
	RunID         string       `json:"run_id"`
	Name          string       `json:"name"`
	Recorded      store.Status `json:"recorded"`
	Replayed      store.Status `json:"replayed"`
	Deterministic bool         `json:"deterministic"`
}

func (r ReplayReport) String() string {
	verdict := "identical"
	if !r.Deterministic {
		verdict = "DIFFERS"
	}
	return fmt.Sprintf("run: %s\nname: %s\nrecorded: %s\nreplayed: %s\nresult: %s",
		r.RunID, r.Name, r.Recorded, r.Replayed, verdict)
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Re-solve a recorded run and verify determinism",
		Long: `Re-solve a run recorded by "voxwfc solve --db" from its stored document
and compare the outcome with the recorded one.

Exit codes:
  0 - the replay reproduced the recorded outcome
  1 - the outcome differs
  2 - command error (database not found, unknown run ID)

Example:
  voxwfc replay 0192f5e0-7c1a-7d43-9a4e-3f2b1c0d9e8f --db runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(opts *ReplayOptions, id string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := opts.logger(cmd.ErrOrStderr())

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	run, err := st.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return WrapExitError(ExitCommandError, fmt.Sprintf("run %s", id), err)
		}
		return WrapExitError(ExitCommandError, "failed to load run", err)
	}
	doc, err := exemplar.Parse(run.Document)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to decode recorded document", err)
	}

	out, err := solveDocument(ctx, doc, 1, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to solve", err)
	}

	report := ReplayReport{
		RunID:    run.ID,
		Name:     run.Name,
		Recorded: run.Status,
		Replayed: out.status(),
	}
	report.Deterministic = report.Recorded == report.Replayed &&
		reflect.DeepEqual(run.Result, out.ids())
	log.Debug("replay finished", "id", run.ID, "deterministic", report.Deterministic)

	if err := opts.formatter(cmd).Success(report); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}
	if !report.Deterministic {
		return &ExitError{Code: ExitFailure, Message: "replay differs from the recorded run", Silent: true}
	}
	return nil
}
