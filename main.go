package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/gogpu/gg"

	"scrawl/internal/config"
	"scrawl/internal/ui"
)

func main() {
	settingsPath := flag.String("config", "", "settings file (default: user config dir)")
	flag.Parse()

	gg.SetLogger(slog.Default())

	if *settingsPath == "" {
		p, err := config.FilePath()
		if err != nil {
			log.Printf("no config dir, using defaults: %v", err)
		}
		*settingsPath = p
	}
	settings := config.Defaults()
	if *settingsPath != "" {
		s, err := config.Load(*settingsPath)
		if err != nil {
			log.Printf("settings: %v", err)
		}
		settings = s
	}

	if err := ui.RunApp(settings, flag.Arg(0)); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
