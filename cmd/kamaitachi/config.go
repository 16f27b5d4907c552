package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// projectConfig holds the persisted defaults read from the file named by
// --config (kamaitachi.toml in the working directory unless overridden):
// page size, font directories and background/border painting toggles.
type projectConfig struct {
	PageWidth         float64  `toml:"page_width"`
	PageHeight        float64  `toml:"page_height"`
	FontDirs          []string `toml:"font_dirs"`
	RenderBackgrounds *bool    `toml:"render_backgrounds"`
	RenderBorders     *bool    `toml:"render_borders"`
}

// loadProjectConfig reads path if it exists; a missing file is not an
// error, it just yields zero-value defaults.
func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
