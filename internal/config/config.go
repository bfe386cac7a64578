package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Path is the prefs file, relative to the process working directory.
const Path = "config/palace.json"

// Prefs holds user preferences persisted across runs. The memory layout
// itself lives in the store, not here.
type Prefs struct {
	MoveSpeed    float32 `json:"move_speed"`    // m/s at full stick
	RotateSpeed  float32 `json:"rotate_speed"`  // rad/s at full stick
	StorePath    string  `json:"store_path"`    // SQLite database file
	PalettePath  string  `json:"palette_path"`  // optional spawn palette YAML
	GridVisible  bool    `json:"grid_visible"`
	ShowFPS      bool    `json:"show_fps"`
	ShowMemAlloc bool    `json:"show_memalloc"`
}

// Default returns default preferences.
func Default() Prefs {
	return Prefs{
		MoveSpeed:   2.5,
		RotateSpeed: 1.6,
		StorePath:   "palace.db",
		PalettePath: "assets/shapes.yaml",
		GridVisible: true,
	}
}

// Load reads preferences from config/palace.json. A missing or invalid
// file yields Default() and no error; the file is not created.
func Load() (Prefs, error) {
	data, err := os.ReadFile(Path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences, creating the config directory if needed.
func Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(Path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(Path, data, 0644)
}
