// Package tools holds the whiteboard tools. Exactly one tool is active at a
// time; the engine forwards normalised pointer and key events to it.
package tools

import (
	"fmt"

	"scrawl/internal/render"
	"scrawl/internal/state"
)

// Kind names a tool.
type Kind string

const (
	KindDraw   Kind = "draw"
	KindErase  Kind = "erase"
	KindSelect Kind = "select"
	KindLasso  Kind = "lasso"
)

// Kinds lists every tool in toolbar order.
var Kinds = []Kind{KindDraw, KindErase, KindSelect, KindLasso}

// ParseKind validates a tool name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown tool %q", s)
}

// Host is the engine state a tool may read and mutate.
type Host interface {
	Document() *state.Document
	View() state.View
	Surface() render.Surface
	Pen() Pen
	Selection() state.Selection
	SetSelection(indexes []int)
	MoveSelection(d state.Point)
	MarkDirty()
	RequestRender()
	PushUndo()
	AllowTouchPan()
	DisallowTouchPan()
}

// Context is passed to every tool callback.
type Context struct {
	Host
	Pointer Pointer
	Key     Key
}

// Tool is the capability set shared by every tool. Embed Base to get no-op
// defaults for the callbacks a tool does not care about.
type Tool interface {
	OnDown(c *Context)
	OnMove(c *Context)
	OnUp(c *Context)
	OnSelect(c *Context)
	OnDeselect(c *Context)
	OnKeyDown(c *Context)
	OnKeyUp(c *Context)
	Render(c *Context, s render.Surface)
}

// SelectionMover is implemented by tools that move the selection
// themselves. For other tools the engine handles drags that start inside
// the selection box.
type SelectionMover interface {
	MovesSelection() bool
}

type Base struct{}

func (Base) OnDown(*Context)                 {}
func (Base) OnMove(*Context)                 {}
func (Base) OnUp(*Context)                   {}
func (Base) OnSelect(*Context)               {}
func (Base) OnDeselect(*Context)             {}
func (Base) OnKeyDown(*Context)              {}
func (Base) OnKeyUp(*Context)                {}
func (Base) Render(*Context, render.Surface) {}

// Options are the density thresholds of the tools, in document units.
type Options struct {
	DrawSpacing  float64 // fraction of the pen size
	EraseTravel  float64
	LassoSpacing float64
}

func DefaultOptions() Options {
	return Options{DrawSpacing: 0.5, EraseTravel: 8, LassoSpacing: 4}
}

// Table is the fixed set of tool implementations.
type Table map[Kind]Tool

func NewTable(opts Options) Table {
	erase := &Erase{MinTravel: opts.EraseTravel}
	return Table{
		KindDraw:   &Draw{Erase: erase, Spacing: opts.DrawSpacing},
		KindErase:  erase,
		KindSelect: &Select{},
		KindLasso:  &Lasso{MinSpacing: opts.LassoSpacing},
	}
}
