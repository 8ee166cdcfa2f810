package wfc_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
	"github.com/katalvlaran/voxwfc/wfc"
)

// ExampleSolve learns from a three-cell exemplar "sand grass water" laid out
// along x and fills a row of the same length. Grass is the only pattern seen
// between sand and water, so the row is fully determined by propagation.
//
// Complexity: O(V×6×P) per propagation pass.
func ExampleSolve() {
	dims := grid3.Dims{X: 3, Y: 1, Z: 1}
	ex, _ := pattern.NewGrid(dims, []pattern.Handle{"sand", "grass", "water"})
	model, _ := wfc.NewModel(ex)

	res, err := wfc.Solve(context.Background(), model, dims, wfc.WithSeed(7))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	row := make([]string, dims.X)
	for x := range row {
		row[x] = model.Registry.Handle(res.At(grid3.Coord{X: x})).(string)
	}
	fmt.Println(strings.Join(row, " "))
	fmt.Println("steps:", res.Steps)

	// Output:
	// sand grass water
	// steps: 0
}

// ExampleSolver_Step drives the scheduler by hand and watches each collapse.
func ExampleSolver_Step() {
	ex, _ := pattern.NewGrid(grid3.Dims{X: 2, Y: 1, Z: 1}, []pattern.Handle{"A", "B"})
	model, _ := wfc.NewModel(ex, pattern.WithSelfAdjacency())

	s, _ := wfc.NewSolver(model, grid3.Dims{X: 1, Y: 1, Z: 1},
		wfc.WithOnCollapse(func(c grid3.Coord, id pattern.ID) {
			fmt.Println("collapsed", c)
		}))
	done, err := s.Step()
	fmt.Println(done, err)

	// Output:
	// collapsed (0,0,0)
	// true <nil>
}
