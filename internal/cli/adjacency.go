package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/voxwfc/exemplar"
	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
)

// AdjacencyOptions holds flags for the adjacency command.
type AdjacencyOptions struct {
	*RootOptions
	SelfAdjacency bool
}

// PatternAdjacency lists the neighbours one pattern permits.
type PatternAdjacency struct {
	ID        pattern.ID              `json:"id"`
	Label     string                  `json:"label"`
	At        [3]int                  `json:"at"`
	Neighbors map[string][]pattern.ID `json:"neighbors"` // keyed by direction name
}

// AdjacencyReport is the output of adjacency.
type AdjacencyReport struct {
	Name     string             `json:"name"`
	Patterns []PatternAdjacency `json:"patterns"`
}

func (r AdjacencyReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d patterns", r.Name, len(r.Patterns))
	for _, p := range r.Patterns {
		fmt.Fprintf(&b, "\n%d %s at (%d,%d,%d)", p.ID, p.Label, p.At[0], p.At[1], p.At[2])
		for _, d := range grid3.Directions {
			fmt.Fprintf(&b, "\n  %s %v", d, p.Neighbors[d.String()])
		}
	}
	return b.String()
}

// NewAdjacencyCommand creates the adjacency command.
func NewAdjacencyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AdjacencyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "adjacency <exemplar.yaml>",
		Short: "Print the adjacency rules of an exemplar",
		Long: `Print every pattern of an exemplar with the patterns it permits next
to it in each of the six directions.

Example:
  voxwfc adjacency terrain.yaml
  voxwfc adjacency terrain.yaml --self-adjacency --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdjacency(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.SelfAdjacency, "self-adjacency", false, "let every pattern neighbour itself")

	return cmd
}

func runAdjacency(opts *AdjacencyOptions, path string, cmd *cobra.Command) error {
	doc, err := exemplar.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load exemplar", err)
	}
	if cmd.Flags().Changed("self-adjacency") {
		doc.SelfAdjacency = opts.SelfAdjacency
	}

	ex, err := doc.Exemplar()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build exemplar", err)
	}
	reg, err := pattern.NewRegistry(ex)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to register patterns", err)
	}
	adj := pattern.BuildAdjacency(reg, doc.AdjacencyOptions()...)

	report := AdjacencyReport{
		Name:     documentName(doc, path),
		Patterns: make([]PatternAdjacency, 0, reg.Len()),
	}
	for _, id := range reg.IDs() {
		c := reg.Coord(id)
		p := PatternAdjacency{
			ID:        id,
			Label:     fmt.Sprint(reg.Handle(id)),
			At:        [3]int{c.X, c.Y, c.Z},
			Neighbors: make(map[string][]pattern.ID, grid3.NumDirections),
		}
		for _, d := range grid3.Directions {
			allowed := adj.Allowed(id, d)
			if allowed == nil {
				allowed = []pattern.ID{}
			}
			p.Neighbors[d.String()] = allowed
		}
		report.Patterns = append(report.Patterns, p)
	}

	if err := opts.formatter(cmd).Success(report); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}
	return nil
}
