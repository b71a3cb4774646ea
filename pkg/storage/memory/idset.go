package memory

// IDSet is an array-backed set of wager ids with O(1) insert, lookup and
// removal. Removal swaps the last element into the vacated slot, so
// iteration order is unspecified and changes as members are removed.
type IDSet struct {
	items []uint64
	pos   map[uint64]int
}

// NewIDSet returns an empty set.
func NewIDSet() *IDSet {
	return &IDSet{pos: make(map[uint64]int)}
}

// Add inserts id and reports whether it was absent.
func (s *IDSet) Add(id uint64) bool {
	if _, ok := s.pos[id]; ok {
		return false
	}
	s.pos[id] = len(s.items)
	s.items = append(s.items, id)
	return true
}

// Remove deletes id and reports whether it was present.
func (s *IDSet) Remove(id uint64) bool {
	i, ok := s.pos[id]
	if !ok {
		return false
	}
	last := len(s.items) - 1
	if i != last {
		moved := s.items[last]
		s.items[i] = moved
		s.pos[moved] = i
	}
	s.items = s.items[:last]
	delete(s.pos, id)
	return true
}

func (s *IDSet) contains(id uint64) bool {
	_, ok := s.pos[id]
	return ok
}

func (s *IDSet) size() int {
	return len(s.items)
}

// IDs returns a copy of the members.
func (s *IDSet) IDs() []uint64 {
	out := make([]uint64, len(s.items))
	copy(out, s.items)
	return out
}
