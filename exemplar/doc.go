// Package exemplar loads exemplar grids and solve settings from YAML.
//
// A document lists the exemplar as layers along z, each layer a list of rows
// along y (row 0 is y=0), each row whitespace-separated labels along x:
//
//	name: stripes
//	layers:
//	  - - "sand grass water"
//	    - "sand grass water"
//	output: [6, 2, 1]
//	seed: 7
//	retries: 3
//	policy: min-cardinality
//	self_adjacency: false
//	weights:
//	  grass: 2
//
// Labels are the cell handles handed to the pattern registry. They are
// normalised to Unicode NFC so visually identical labels compare equal.
package exemplar
