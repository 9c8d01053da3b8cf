package state

// History holds undo and redo snapshots of a Document.
type History struct {
	undo []Document
	redo []Document
}

// Push records a deep copy of doc as the newest undo snapshot and drops
// every redo snapshot.
func (h *History) Push(doc Document) {
	h.undo = append(h.undo, doc.Clone())
	h.redo = nil
}

// Undo swaps current for the newest undo snapshot. current moves onto the
// redo stack. ok is false when there is nothing to undo.
func (h *History) Undo(current Document) (Document, bool) {
	if len(h.undo) == 0 {
		return current, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return prev, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current Document) (Document, bool) {
	if len(h.redo) == 0 {
		return current, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return next, true
}

func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
