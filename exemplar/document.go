package exemplar

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
	"github.com/katalvlaran/voxwfc/wfc"
)

// ErrMalformed indicates a document that parses but does not describe a
// valid exemplar or solve configuration.
var ErrMalformed = errors.New("exemplar: malformed document")

// Document is an exemplar plus optional solve settings.
type Document struct {
	Name          string             `yaml:"name"`
	Layers        [][]string         `yaml:"layers"`
	Output        []int              `yaml:"output,omitempty"`
	Seed          int64              `yaml:"seed,omitempty"`
	Retries       int                `yaml:"retries,omitempty"`
	MaxSteps      int                `yaml:"max_steps,omitempty"`
	Policy        string             `yaml:"policy,omitempty"`
	SelfAdjacency bool               `yaml:"self_adjacency,omitempty"`
	Weights       map[string]float64 `yaml:"weights,omitempty"`

	// labels[z][y][x], filled by validate.
	labels [][][]string
}

// Load reads and validates the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exemplar file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document strictly (unknown fields are rejected) and
// validates it.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrMalformed, err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode serialises the document back to YAML.
func (d *Document) Encode() ([]byte, error) {
	return yaml.Marshal(d)
}

func (d *Document) validate() error {
	if len(d.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrMalformed)
	}
	rows := len(d.Layers[0])
	if rows == 0 {
		return fmt.Errorf("%w: layer 0 has no rows", ErrMalformed)
	}
	cols := -1
	d.labels = make([][][]string, len(d.Layers))
	for z, layer := range d.Layers {
		if len(layer) != rows {
			return fmt.Errorf("%w: layer %d has %d rows, want %d", ErrMalformed, z, len(layer), rows)
		}
		d.labels[z] = make([][]string, rows)
		for y, row := range layer {
			fields := strings.Fields(norm.NFC.String(row))
			if cols < 0 {
				cols = len(fields)
			}
			if len(fields) == 0 || len(fields) != cols {
				return fmt.Errorf("%w: layer %d row %d has %d cells, want %d", ErrMalformed, z, y, len(fields), cols)
			}
			d.labels[z][y] = fields
		}
	}

	if d.Output != nil {
		if _, err := d.OutputDims(); err != nil {
			return err
		}
	}
	if d.Retries < 0 {
		return fmt.Errorf("%w: retries cannot be negative (%d)", ErrMalformed, d.Retries)
	}
	if d.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps cannot be negative (%d)", ErrMalformed, d.MaxSteps)
	}
	if _, err := ParsePolicy(d.Policy); err != nil {
		return err
	}
	normalized := make(map[string]float64, len(d.Weights))
	for label, w := range d.Weights {
		if w < 0 {
			return fmt.Errorf("%w: weight of %q is negative", ErrMalformed, label)
		}
		normalized[norm.NFC.String(label)] = w
	}
	if d.Weights != nil {
		d.Weights = normalized
	}
	return nil
}

// Dims returns the exemplar extents.
func (d *Document) Dims() grid3.Dims {
	return grid3.Dims{X: len(d.labels[0][0]), Y: len(d.labels[0]), Z: len(d.labels)}
}

// Label returns the normalised label at c.
func (d *Document) Label(c grid3.Coord) string {
	return d.labels[c.Z][c.Y][c.X]
}

// Exemplar returns the labels as a pattern.Exemplar whose handles are strings.
func (d *Document) Exemplar() (*pattern.Grid, error) {
	dims := d.Dims()
	handles := make([]pattern.Handle, dims.Volume())
	dims.Each(func(c grid3.Coord) bool {
		handles[dims.MustIndex(c)] = d.Label(c)
		return true
	})
	return pattern.NewGrid(dims, handles)
}

// SolveOptions returns the wfc options the document configures: seed,
// retries, step budget, policy and label weights mapped onto reg.
func (d *Document) SolveOptions(reg *pattern.Registry) ([]wfc.Option, error) {
	policy, err := ParsePolicy(d.Policy)
	if err != nil {
		return nil, err
	}
	opts := []wfc.Option{
		wfc.WithSeed(d.Seed),
		wfc.WithRetries(d.Retries),
		wfc.WithMaxSteps(d.MaxSteps),
		wfc.WithPolicy(policy),
	}
	if w := d.WeightsFor(reg); w != nil {
		opts = append(opts, wfc.WithWeights(w))
	}
	return opts, nil
}

// AdjacencyOptions returns the pattern options the document asks for.
func (d *Document) AdjacencyOptions() []pattern.AdjacencyOption {
	if d.SelfAdjacency {
		return []pattern.AdjacencyOption{pattern.WithSelfAdjacency()}
	}
	return nil
}

// OutputDims returns the configured output extents, or the exemplar's own
// extents when none are configured.
func (d *Document) OutputDims() (grid3.Dims, error) {
	if d.Output == nil {
		return d.Dims(), nil
	}
	if len(d.Output) != 3 {
		return grid3.Dims{}, fmt.Errorf("%w: output needs 3 extents, got %d", ErrMalformed, len(d.Output))
	}
	dims, err := grid3.NewDims(d.Output[0], d.Output[1], d.Output[2])
	if err != nil {
		return grid3.Dims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return dims, nil
}

// WeightsFor maps label weights onto pattern IDs. Labels without a weight
// count as 1. It returns nil when the document has no weights.
func (d *Document) WeightsFor(reg *pattern.Registry) []float64 {
	if len(d.Weights) == 0 {
		return nil
	}
	out := make([]float64, reg.Len())
	for _, id := range reg.IDs() {
		w, ok := d.Weights[fmt.Sprint(reg.Handle(id))]
		if !ok {
			w = 1
		}
		out[id] = w
	}
	return out
}

// ParsePolicy maps a policy name to a wfc.Policy. The empty name selects
// wfc.MinCardinality.
func ParsePolicy(name string) (wfc.Policy, error) {
	switch name {
	case "", wfc.MinCardinality.String():
		return wfc.MinCardinality, nil
	case wfc.RandomOutstanding.String():
		return wfc.RandomOutstanding, nil
	default:
		return 0, fmt.Errorf("%w: unknown policy %q", ErrMalformed, name)
	}
}

// ParseSize parses "x,y,z" into grid extents.
func ParseSize(s string) (grid3.Dims, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return grid3.Dims{}, fmt.Errorf("%w: size %q must be x,y,z", ErrMalformed, s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return grid3.Dims{}, fmt.Errorf("%w: size %q: %v", ErrMalformed, s, err)
		}
		v[i] = n
	}
	dims, err := grid3.NewDims(v[0], v[1], v[2])
	if err != nil {
		return grid3.Dims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return dims, nil
}
