package storage

// Memory keeps the value in process memory.
type Memory struct {
	data   []byte
	set    bool
	Writes int // number of successful Write calls
}

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns an in-memory storage preloaded with data.
func NewMemoryWith(data []byte) *Memory {
	m := &Memory{}
	m.data = append([]byte(nil), data...)
	m.set = true
	return m
}

// Read returns a copy of the stored bytes.
func (m *Memory) Read() ([]byte, error) {
	if !m.set {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

// Write stores a copy of data.
func (m *Memory) Write(data []byte) error {
	m.data = append(m.data[:0], data...)
	m.set = true
	m.Writes++
	return nil
}

// Remove clears the stored value.
func (m *Memory) Remove() error {
	m.data = nil
	m.set = false
	return nil
}

// Exists reports whether a value is stored.
func (m *Memory) Exists() bool {
	return m.set
}
