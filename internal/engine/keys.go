package engine

import (
	"context"

	"scrawl/internal/tools"
)

var toolKeys = map[string]tools.Kind{
	"d": tools.KindDraw,
	"e": tools.KindErase,
	"s": tools.KindSelect,
	"l": tools.KindLasso,
	"w": tools.KindLasso,
}

// KeyDown handles the hotkeys and then hands the key to the active tool.
// Letter keys are expected in lower case.
func (s *Session) KeyDown(ctx context.Context, k tools.Key) {
	var err error
	switch {
	case k.Ctrl && k.Name == "z" && !k.Shift:
		s.Undo()
	case k.Ctrl && (k.Name == "y" || (k.Name == "z" && k.Shift)):
		s.Redo()
	case k.Ctrl && k.Name == "c":
		err = s.Copy(ctx)
	case k.Ctrl && k.Name == "x":
		err = s.Cut(ctx)
	case k.Ctrl && k.Name == "v":
		err = s.Paste(ctx)
	case k.Name == "Delete" || k.Name == "Backspace":
		s.DeleteSelection()
	case !k.Ctrl && !k.Alt:
		if kind, ok := toolKeys[k.Name]; ok {
			s.SetTool(kind)
		}
	}
	if err != nil {
		s.reportError(err)
	}
	s.tool().OnKeyDown(&tools.Context{Host: s, Key: k})
}

func (s *Session) KeyUp(k tools.Key) {
	s.tool().OnKeyUp(&tools.Context{Host: s, Key: k})
}
