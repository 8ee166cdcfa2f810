package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/voxwfc/exemplar"
	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
	"github.com/katalvlaran/voxwfc/store"
	"github.com/katalvlaran/voxwfc/wfc"
)

// outcome is a finished solve of one document. Exactly one of res and err
// is set.
type outcome struct {
	reg  *pattern.Registry
	size grid3.Dims
	res  *wfc.Result
	err  error
}

func (o *outcome) status() store.Status {
	if o.res != nil {
		return store.StatusSolved
	}
	return store.StatusFailed
}

func (o *outcome) ids() [][][]pattern.ID {
	if o.res == nil {
		return nil
	}
	return o.res.IDs
}

// solveDocument builds the model doc describes and solves it with the
// document's own settings. Contradictions and exhausted step budgets are
// recorded in the outcome; every other error is returned.
func solveDocument(ctx context.Context, doc *exemplar.Document, workers int, log *slog.Logger) (*outcome, error) {
	ex, err := doc.Exemplar()
	if err != nil {
		return nil, err
	}
	model, err := wfc.NewModel(ex, doc.AdjacencyOptions()...)
	if err != nil {
		return nil, err
	}
	size, err := doc.OutputDims()
	if err != nil {
		return nil, err
	}
	opts, err := doc.SolveOptions(model.Registry)
	if err != nil {
		return nil, err
	}
	opts = append(opts, wfc.WithWorkers(workers), wfc.WithLogger(log))

	log.Debug("solving", "name", doc.Name, "patterns", model.Patterns(), "size", size.String())
	res, err := wfc.Solve(ctx, model, size, opts...)
	if err != nil && !errors.Is(err, wfc.ErrContradiction) && !errors.Is(err, wfc.ErrBudgetExceeded) {
		return nil, err
	}
	return &outcome{reg: model.Registry, size: size, res: res, err: err}, nil
}

// labelLayers renders the result as labels indexed [z][y][x].
func (o *outcome) labelLayers() [][][]string {
	if o.res == nil {
		return nil
	}
	layers := make([][][]string, o.size.Z)
	for z := range layers {
		layers[z] = make([][]string, o.size.Y)
		for y := range layers[z] {
			row := make([]string, o.size.X)
			for x := range row {
				row[x] = fmt.Sprint(o.reg.Handle(o.res.At(grid3.Coord{X: x, Y: y, Z: z})))
			}
			layers[z][y] = row
		}
	}
	return layers
}

// writeLayers appends one "z=.. y=..: labels" line per output row.
func writeLayers(b *strings.Builder, layers [][][]string) {
	for z, layer := range layers {
		for y, row := range layer {
			fmt.Fprintf(b, "\nz=%d y=%d: %s", z, y, strings.Join(row, " "))
		}
	}
}

// documentName falls back to the file name without its extension.
func documentName(doc *exemplar.Document, path string) string {
	if doc.Name != "" {
		return doc.Name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func dimsArray(d grid3.Dims) [3]int {
	return [3]int{d.X, d.Y, d.Z}
}
