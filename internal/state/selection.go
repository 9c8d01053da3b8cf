package state

import "slices"

// Selection is a set of stroke indexes and their padded bounds. Rect is
// nil when nothing is selected.
type Selection struct {
	Indexes []int
	Rect    *Rect
}

// NewSelection builds a selection over doc. Duplicate and out-of-range
// indexes are dropped.
func NewSelection(doc Document, indexes []int) Selection {
	var valid []int
	for _, i := range uniqueSorted(indexes) {
		if i >= 0 && i < len(doc) {
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return Selection{}
	}
	sel := Selection{Indexes: valid}
	if b, ok := DataBounds(doc.Subset(valid), SelectionPadding); ok {
		r := b.Padded
		sel.Rect = &r
	}
	return sel
}

func (s Selection) Empty() bool { return len(s.Indexes) == 0 }

func (s Selection) Contains(i int) bool {
	_, ok := slices.BinarySearch(s.Indexes, i)
	return ok
}

// Hit reports whether p is inside the selection box.
func (s Selection) Hit(p Point) bool {
	return s.Rect != nil && RectContainsPoint(*s.Rect, p)
}

// Translate moves the selection box by d.
func (s *Selection) Translate(d Point) {
	if s.Rect != nil {
		r := s.Rect.Translate(d)
		s.Rect = &r
	}
}
