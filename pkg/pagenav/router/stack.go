package router

// StackEntry is one prior navigation point that back navigation can return to.
// PageVersion is the VisiblePage that was on top when the entry was pushed,
// or zero when no live page belongs to it.
type StackEntry struct {
	Route       string
	Builder     PageBuilder
	Params      Params
	PageVersion uint64
}

// Stack manages navigation history for back navigation.
// Entries leave in LIFO order, except through PopTo, KeepTop and Clear.
type Stack struct {
	entries []StackEntry
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]StackEntry, 0),
	}
}

// Push adds a new entry to the stack.
func (s *Stack) Push(entry StackEntry) {
	s.entries = append(s.entries, entry)
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// PopTo discards every entry above the most recent one with the given route
// and pops that entry. Returns nil and leaves the stack untouched when no
// entry matches.
func (s *Stack) PopTo(route string) *StackEntry {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Route == route {
			entry := s.entries[i]
			s.entries = s.entries[:i]
			return &entry
		}
	}
	return nil
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// References reports whether any entry belongs to the page with the given version.
func (s *Stack) References(version uint64) bool {
	if version == 0 {
		return false
	}
	for _, e := range s.entries {
		if e.PageVersion == version {
			return true
		}
	}
	return false
}

// Entries returns a copy of the entries, oldest first.
func (s *Stack) Entries() []StackEntry {
	out := make([]StackEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// KeepTop drops every entry except the most recent one.
func (s *Stack) KeepTop() {
	if len(s.entries) > 1 {
		s.entries = append(s.entries[:0], s.entries[len(s.entries)-1])
	}
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
