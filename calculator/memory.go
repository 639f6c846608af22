package calculator

import "strconv"

// Memory is a one-slot register.  The zero value is an empty register.
type Memory struct {
	value float64
	set   bool
}

// Store overwrites the register.
func (m *Memory) Store(v float64) {
	m.value = v
	m.set = true
}

// Recall returns the stored value, or 0 and ErrEmptyMemory when the
// register is empty.
func (m *Memory) Recall() (float64, error) {
	if !m.set {
		return 0, ErrEmptyMemory
	}
	return m.value, nil
}

// Clear empties the register.  Clearing an empty register is a no-op.
func (m *Memory) Clear() {
	m.value = 0
	m.set = false
}

// IsEmpty reports whether nothing has been stored since the last Clear.
func (m *Memory) IsEmpty() bool { return !m.set }

// String renders the register for status displays.
func (m *Memory) String() string {
	if !m.set {
		return "Memory is empty."
	}
	return "Memory contains: " + strconv.FormatFloat(m.value, 'g', -1, 64)
}
