package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "nota.db"
	DefaultAlarmsName     = "alarms.toml"
	DefaultLogName        = "nota.log"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Toggle  string `toml:"toggle"`
	Delete  string `toml:"delete"`
	Detail  string `toml:"detail"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
	Edit    string `toml:"edit"`
	Filter  string `toml:"filter"`
	Remind  string `toml:"remind"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	AlarmsPath    string `toml:"alarms_path"`
	LogPath       string `toml:"log_path"`
	DefaultFilter string `toml:"default_filter"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config location, falling back to the
// working directory when the user config dir is unknown.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, "nota", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	dir := filepath.Dir(path)
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dir, DefaultDBName)
	}
	if cfg.AlarmsPath == "" {
		cfg.AlarmsPath = filepath.Join(dir, DefaultAlarmsName)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(dir, DefaultLogName)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		DBPath:        filepath.Join(dir, DefaultDBName),
		AlarmsPath:    filepath.Join(dir, DefaultAlarmsName),
		LogPath:       filepath.Join(dir, DefaultLogName),
		DefaultFilter: "",
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Toggle:  " ",
			Delete:  "d",
			Detail:  "enter",
			Confirm: "enter",
			Cancel:  "esc",
			Edit:    "e",
			Filter:  "/",
			Remind:  "m",
		},
	}
}
