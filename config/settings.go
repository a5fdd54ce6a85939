package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MaxPreviewContext caps preview.before and preview.after
const MaxPreviewContext = 1000

// EditorEnv overrides the editor from the settings file
const EditorEnv = "MINIGREP_EDITOR"

// Settings holds optional user preferences read from config.yaml
type Settings struct {
	Editor  string          `yaml:"editor"`
	Preview PreviewSettings `yaml:"preview"`
	Log     LogSettings     `yaml:"log"`
}

// PreviewSettings controls how many context lines surround a hit.
type PreviewSettings struct {
	Before int `yaml:"before"`
	After  int `yaml:"after"`
}

// LogSettings controls diagnostic logging.
type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty means stderr
}

// DefaultSettings returns Settings with defaults applied
func DefaultSettings() Settings {
	return Settings{
		Preview: PreviewSettings{
			Before: 5,
			After:  10,
		},
		Log: LogSettings{
			Level: "warn",
		},
	}
}

// SettingsFile returns the default settings path.
// MINIGREP_CONFIG wins, then $XDG_CONFIG_HOME/minigrep, then ~/.config/minigrep.
func SettingsFile() string {
	if p := os.Getenv("MINIGREP_CONFIG"); p != "" {
		return p
	}
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "minigrep", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "minigrep", "config.yaml")
	}
	return filepath.Join(home, ".config", "minigrep", "config.yaml")
}

// LoadSettings reads settings from path, or from SettingsFile() when path is
// empty. A missing default file yields defaults; a missing explicit file is
// an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = SettingsFile()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			s.applyEnv()
			return s, nil
		}
		return DefaultSettings(), fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	s.Preview.Before = min(max(s.Preview.Before, 0), MaxPreviewContext)
	s.Preview.After = min(max(s.Preview.After, 0), MaxPreviewContext)

	s.applyEnv()
	return s, nil
}

func (s *Settings) applyEnv() {
	if ed := os.Getenv(EditorEnv); ed != "" {
		s.Editor = ed
	}
}
