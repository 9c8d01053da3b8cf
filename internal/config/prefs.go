package config

import (
	"fyne.io/fyne/v2"

	"scrawl/internal/tools"
)

const (
	prefKeyTool     = "tool"
	prefKeyColor    = "penColor"
	prefKeySize     = "penSize"
	prefKeyLastPath = "lastPath"
)

// PenState is what the toolbar restores on the next start.
type PenState struct {
	Tool     tools.Kind
	Pen      tools.Pen
	LastPath string
}

// LoadPen reads pen state from p, using s for anything not yet stored.
func LoadPen(p fyne.Preferences, s Settings) PenState {
	kind, err := tools.ParseKind(p.StringWithFallback(prefKeyTool, string(tools.KindDraw)))
	if err != nil {
		kind = tools.KindDraw
	}
	size := p.FloatWithFallback(prefKeySize, s.Size)
	size = min(max(size, s.MinSize), s.MaxSize)
	return PenState{
		Tool: kind,
		Pen: tools.Pen{
			Color: p.StringWithFallback(prefKeyColor, s.Color),
			Size:  size,
		},
		LastPath: p.String(prefKeyLastPath),
	}
}

func SavePen(p fyne.Preferences, st PenState) {
	p.SetString(prefKeyTool, string(st.Tool))
	p.SetString(prefKeyColor, st.Pen.Color)
	p.SetFloat(prefKeySize, st.Pen.Size)
	p.SetString(prefKeyLastPath, st.LastPath)
}
