package tools

import "scrawl/internal/state"

// Button identifies the pointer button that changed state.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonMiddle
	ButtonSecondary
	ButtonEraser // stylus eraser end
)

// ButtonMask is the set of buttons held during a move.
type ButtonMask uint8

const (
	MaskPrimary   ButtonMask = 1
	MaskSecondary ButtonMask = 2
	MaskMiddle    ButtonMask = 4
	MaskEraser    ButtonMask = 32
)

type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
	PointerPen
)

// Positions is the pointer history of the current gesture.
type Positions struct {
	Current state.Point
	Last    state.Point
	Origin  state.Point
}

// Pointer is a normalised pointer event as tools see it.
type Pointer struct {
	IsDown   bool
	Button   Button
	Buttons  ButtonMask
	Kind     PointerKind
	Viewport Positions
	Document Positions
}

// Erasing reports whether the event carries the secondary or stylus
// eraser signal.
func (p Pointer) Erasing() bool {
	switch p.Button {
	case ButtonSecondary, ButtonEraser:
		return true
	}
	return p.Buttons&(MaskSecondary|MaskEraser) != 0
}

// Key is a key press with its modifiers.
type Key struct {
	Name  string
	Ctrl  bool
	Shift bool
	Alt   bool
}

// Pen is the current drawing colour and width.
type Pen struct {
	Color string
	Size  float64
}
