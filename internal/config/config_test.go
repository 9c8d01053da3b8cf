package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrawl/internal/tools"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, time.Second, s.SaveDelay())
	assert.Equal(t, tools.DefaultOptions(), s.ToolOptions())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	want := Defaults()
	want.Palette = []string{"#000000", "#FF0000"}
	want.Size = 7
	want.SaveDelayMS = 250
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 250*time.Millisecond, got.SaveDelay())
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("size = 80.0\nmax_size = 20.0\ncolor = \"#123456\"\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#123456", s.Color)
	assert.Equal(t, 20.0, s.MaxSize)
	assert.Equal(t, 20.0, s.Size, "size is clamped to max_size")
	assert.Equal(t, Defaults().Palette, s.Palette)
	assert.Equal(t, Defaults().EraseTravel, s.EraseTravel)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("size = [oops"), 0o644))
	s, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestPenPreferences(t *testing.T) {
	a := test.NewTempApp(t)
	p := a.Preferences()
	s := Defaults()

	st := LoadPen(p, s)
	assert.Equal(t, tools.KindDraw, st.Tool)
	assert.Equal(t, tools.Pen{Color: "#EEEEEE", Size: 3}, st.Pen)
	assert.Empty(t, st.LastPath)

	SavePen(p, PenState{Tool: tools.KindLasso, Pen: tools.Pen{Color: "#80FF80", Size: 12}, LastPath: "work/plan"})
	st = LoadPen(p, s)
	assert.Equal(t, tools.KindLasso, st.Tool)
	assert.Equal(t, tools.Pen{Color: "#80FF80", Size: 12}, st.Pen)
	assert.Equal(t, "work/plan", st.LastPath)

	p.SetString(prefKeyTool, "bogus")
	p.SetFloat(prefKeySize, 500)
	st = LoadPen(p, s)
	assert.Equal(t, tools.KindDraw, st.Tool)
	assert.Equal(t, s.MaxSize, st.Pen.Size)
}
