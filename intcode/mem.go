package intcode

// Memory is the address space of a Machine. Cells that were never written
// read as zero; addresses at or beyond Len are not addressable.
type Memory struct {
	cells []int64
	limit int64
}

// Len returns the number of addressable cells.
func (m *Memory) Len() int64 { return m.limit }

// Load returns the value at addr and reports whether addr is addressable.
func (m *Memory) Load(addr int64) (int64, bool) {
	if addr < 0 || addr >= m.limit {
		return 0, false
	}
	if addr >= int64(len(m.cells)) {
		return 0, true
	}
	return m.cells[addr], true
}

// Store sets the value at addr and reports whether addr is addressable.
func (m *Memory) Store(addr, v int64) bool {
	if addr < 0 || addr >= m.limit {
		return false
	}
	if n := int64(len(m.cells)); addr >= n {
		if v == 0 {
			return true
		}
		size := min(max(addr+1, 2*n, 64), m.limit)
		m.cells = append(m.cells, make([]int64, size-n)...)
	}
	m.cells[addr] = v
	return true
}

// Slice returns a copy of the cells in [from, to), clipped to Len.
func (m *Memory) Slice(from, to int64) []int64 {
	from, to = max(from, 0), min(to, m.limit)
	if from >= to {
		return nil
	}
	s := make([]int64, to-from)
	if from < int64(len(m.cells)) {
		copy(s, m.cells[from:min(to, int64(len(m.cells)))])
	}
	return s
}
