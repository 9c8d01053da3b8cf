// Package config loads the settings file and remembers pen state between
// runs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"scrawl/internal/tools"
)

const (
	appDir       = "scrawl"
	settingsFile = "settings.toml"
)

// Settings is the user-editable configuration. Zero fields fall back to
// Defaults.
type Settings struct {
	SaveDelayMS  int      `toml:"save_delay_ms"`
	Palette      []string `toml:"palette"`
	Color        string   `toml:"color"`
	Size         float64  `toml:"size"`
	MinSize      float64  `toml:"min_size"`
	MaxSize      float64  `toml:"max_size"`
	DrawSpacing  float64  `toml:"draw_spacing"`
	EraseTravel  float64  `toml:"erase_travel"`
	LassoSpacing float64  `toml:"lasso_spacing"`
	Background   string   `toml:"background"`
}

func Defaults() Settings {
	opts := tools.DefaultOptions()
	return Settings{
		SaveDelayMS: 1000,
		Palette: []string{
			"#FFFFFF", "#FF8080", "#80FF80", "#8080FF",
			"#FF80FF", "#80FFFF", "#FFFF80",
		},
		Color:        "#EEEEEE",
		Size:         3,
		MinSize:      1,
		MaxSize:      50,
		DrawSpacing:  opts.DrawSpacing,
		EraseTravel:  opts.EraseTravel,
		LassoSpacing: opts.LassoSpacing,
		Background:   "#1E1E1E",
	}
}

// fill replaces zero fields with their defaults.
func (s *Settings) fill() {
	d := Defaults()
	if s.SaveDelayMS <= 0 {
		s.SaveDelayMS = d.SaveDelayMS
	}
	if len(s.Palette) == 0 {
		s.Palette = d.Palette
	}
	if s.Color == "" {
		s.Color = d.Color
	}
	if s.MinSize <= 0 {
		s.MinSize = d.MinSize
	}
	if s.MaxSize <= s.MinSize {
		s.MaxSize = max(d.MaxSize, s.MinSize+1)
	}
	if s.Size <= 0 {
		s.Size = d.Size
	}
	s.Size = min(max(s.Size, s.MinSize), s.MaxSize)
	if s.DrawSpacing <= 0 {
		s.DrawSpacing = d.DrawSpacing
	}
	if s.EraseTravel <= 0 {
		s.EraseTravel = d.EraseTravel
	}
	if s.LassoSpacing <= 0 {
		s.LassoSpacing = d.LassoSpacing
	}
	if s.Background == "" {
		s.Background = d.Background
	}
}

func (s Settings) SaveDelay() time.Duration {
	return time.Duration(s.SaveDelayMS) * time.Millisecond
}

// ToolOptions returns the tool thresholds.
func (s Settings) ToolOptions() tools.Options {
	return tools.Options{
		DrawSpacing:  s.DrawSpacing,
		EraseTravel:  s.EraseTravel,
		LassoSpacing: s.LassoSpacing,
	}
}

// FilePath is the default settings location under the user config dir.
func FilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return filepath.Join(dir, appDir, settingsFile), nil
}

// Load reads settings from path. A missing file yields Defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("config: read %s: %w", path, err)
	}
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	s.fill()
	return s, nil
}

// Save writes s to path, creating the directory.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
