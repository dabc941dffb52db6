package router

// pageSet is the ordered Visible-Page Set. Pages are kept bottom to top.
type pageSet struct {
	pages []VisiblePage
}

// index returns the position of the page with the given version, or -1.
func (s *pageSet) index(version uint64) int {
	if version == 0 {
		return -1
	}
	for i := range s.pages {
		if s.pages[i].Version == version {
			return i
		}
	}
	return -1
}

func (s *pageSet) insert(at int, p VisiblePage) {
	if at < 0 {
		at = 0
	}
	if at >= len(s.pages) {
		s.pages = append(s.pages, p)
		return
	}
	s.pages = append(s.pages, VisiblePage{})
	copy(s.pages[at+1:], s.pages[at:])
	s.pages[at] = p
}

func (s *pageSet) remove(at int) {
	s.pages = append(s.pages[:at], s.pages[at+1:]...)
}

// removeHiddenAbove drops every Hidden page above position at.
func (s *pageSet) removeHiddenAbove(at int) int {
	kept := s.pages[:at+1]
	removed := 0
	for _, p := range s.pages[at+1:] {
		if p.Transition.Visibility == Hidden {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.pages = kept
	return removed
}

// removeHiddenUnless drops every Hidden page for which keep returns false.
func (s *pageSet) removeHiddenUnless(keep func(version uint64) bool) int {
	kept := s.pages[:0]
	removed := 0
	for _, p := range s.pages {
		if p.Transition.Visibility == Hidden && !keep(p.Version) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.pages = kept
	return removed
}

func (s *pageSet) snapshot() []VisiblePage {
	out := make([]VisiblePage, len(s.pages))
	copy(out, s.pages)
	return out
}
