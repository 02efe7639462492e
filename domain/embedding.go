package domain

import "fmt"

// Matrix is a dense row-major float32 table, one row per encoded entity.
type Matrix struct {
	rows int
	cols int
	data []float32
}

func NewMatrix(rows [][]float32) (*Matrix, error) {
	if len(rows) == 0 {
		return &Matrix{}, nil
	}
	cols := len(rows[0])
	data := make([]float32, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(r), cols, ErrDimensionMismatch)
		}
		data = append(data, r...)
	}
	return &Matrix{rows: len(rows), cols: cols, data: data}, nil
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// Row returns a view of row i; callers must not modify it.
func (m *Matrix) Row(i int) []float32 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// IDMapping is the bijection between dataset identifiers and encoded indexes.
type IDMapping struct {
	encoded map[int]int
	decoded []int
}

// NewIDMapping checks that encoded and decoded describe the same bijection
// over [0, len(encoded)).
func NewIDMapping(encoded map[int]int, decoded map[int]int) (*IDMapping, error) {
	if len(encoded) != len(decoded) {
		return nil, fmt.Errorf("encoded has %d entries, decoded has %d", len(encoded), len(decoded))
	}
	n := len(encoded)
	byIndex := make([]int, n)
	for idx := 0; idx < n; idx++ {
		id, ok := decoded[idx]
		if !ok {
			return nil, fmt.Errorf("index %d missing from decoded mapping", idx)
		}
		back, ok := encoded[id]
		if !ok || back != idx {
			return nil, fmt.Errorf("id %d does not round-trip through index %d", id, idx)
		}
		byIndex[idx] = id
	}
	enc := make(map[int]int, n)
	for id, idx := range encoded {
		enc[id] = idx
	}
	return &IDMapping{encoded: enc, decoded: byIndex}, nil
}

func (m *IDMapping) Len() int { return len(m.decoded) }

func (m *IDMapping) Index(id int) (int, bool) {
	idx, ok := m.encoded[id]
	return idx, ok
}

func (m *IDMapping) ID(index int) (int, bool) {
	if index < 0 || index >= len(m.decoded) {
		return 0, false
	}
	return m.decoded[index], true
}

// IDs returns up to limit identifiers in encoded-index order.
func (m *IDMapping) IDs(limit int) []int {
	if limit < 0 || limit > len(m.decoded) {
		limit = len(m.decoded)
	}
	out := make([]int, limit)
	copy(out, m.decoded[:limit])
	return out
}
