package settings

// Selector is a cursor over an ordered option list. The cursor always
// addresses a valid element when the list is non-empty.
type Selector struct {
	values []string
	index  int
}

// NewSelector builds a selector positioned at index, clamped into range.
func NewSelector(values []string, index int) Selector {
	cp := make([]string, len(values))
	copy(cp, values)
	s := Selector{values: cp}
	s.Set(index)
	return s
}

// Next advances the cursor, wrapping to the first element.
func (s *Selector) Next() {
	if len(s.values) == 0 {
		return
	}
	s.index = (s.index + 1) % len(s.values)
}

// Prev moves the cursor back, wrapping to the last element.
func (s *Selector) Prev() {
	if len(s.values) == 0 {
		return
	}
	if s.index > 0 {
		s.index--
		return
	}
	s.index = len(s.values) - 1
}

// Set positions the cursor, clamping out-of-range values.
func (s *Selector) Set(index int) {
	switch {
	case len(s.values) == 0 || index < 0:
		s.index = 0
	case index >= len(s.values):
		s.index = len(s.values) - 1
	default:
		s.index = index
	}
}

// Index reports the cursor position.
func (s Selector) Index() int { return s.index }

// Len reports the number of options.
func (s Selector) Len() int { return len(s.values) }

// Value returns the selected option, or "" for an empty list.
func (s Selector) Value() string {
	if len(s.values) == 0 {
		return ""
	}
	return s.values[s.index]
}
