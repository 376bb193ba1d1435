package session

import "slices"

// DefaultSections are the page anchors in document order.
var DefaultSections = []string{"home", "about", "experience", "education", "projects", "contact"}

// Sections tracks the current anchor and wraps at both ends.
type Sections struct {
	ids     []string
	current int
}

// NewSections returns a navigator positioned at the first id.
func NewSections(ids []string) *Sections {
	return &Sections{ids: slices.Clone(ids)}
}

// Current returns the current id, or "" when there are none.
func (s *Sections) Current() string {
	if len(s.ids) == 0 {
		return ""
	}
	return s.ids[s.current]
}

// Jump moves to id. Unknown ids go to the first section.
func (s *Sections) Jump(id string) {
	s.current = max(0, slices.Index(s.ids, id))
}

// Next advances, wrapping to the first section.
func (s *Sections) Next() string {
	if len(s.ids) == 0 {
		return ""
	}
	s.current = (s.current + 1) % len(s.ids)
	return s.Current()
}

// Prev steps back, wrapping to the last section.
func (s *Sections) Prev() string {
	if len(s.ids) == 0 {
		return ""
	}
	s.current = (s.current - 1 + len(s.ids)) % len(s.ids)
	return s.Current()
}
