package codec

import (
	"encoding/gob"
	"math"
)

// Kind discriminates the payload shape inside an envelope.
type Kind string

const (
	// KindTable is row/column oriented data with a string index.
	KindTable Kind = "table"

	// KindArray is flat numeric data with a dtype tag and shape.
	KindArray Kind = "array"

	// KindRecord is a string-keyed mapping.
	KindRecord Kind = "record"

	// KindOpaque is the gob fallback for unrecognized values.
	KindOpaque Kind = "opaque"
)

// Table holds tabular data in row-major order. Index labels the rows
// (typically ISO dates for market data), Columns labels the cells of
// each row. len(Cells) == len(Index) and len(Cells[i]) == len(Columns).
type Table struct {
	Columns []string    `json:"columns"`
	Index   []string    `json:"index"`
	Cells   [][]float64 `json:"cells"`
}

// Array holds a flattened numeric array. Shape carries the original
// dimensions (row-major flattening), DType the logical element type
// ("float64", "int64") so callers can reconstruct the original view.
type Array struct {
	DType string    `json:"dtype"`
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// Record is a string-keyed mapping, typically model output such as an
// optimization result. Values must be JSON-representable; records with
// non-finite floats take the gob path automatically.
type Record map[string]any

// Len returns the total element count implied by the array shape.
func (a *Array) Len() int {
	if len(a.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// finite reports whether every cell in the table is a finite float.
func (t *Table) finite() bool {
	for _, row := range t.Cells {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

func (a *Array) finite() bool {
	for _, v := range a.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Register makes a concrete type encodable on the opaque gob path.
// Call it once at init time for every custom type handed to Encode.
func Register(v any) {
	gob.Register(v)
}

func init() {
	// Types that may appear inside records on the gob fallback path.
	gob.Register(map[string]any{})
	gob.Register([]any{})
	gob.Register([]float64{})
	gob.Register([]string{})
}
