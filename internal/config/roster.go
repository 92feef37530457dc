package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Room maps a room label to the spreadsheet holding its roster.
type Room struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// RosterConfig describes where roster files live and which rooms exist.
type RosterConfig struct {
	// Rooms is the fixed room label set, in display order. The first room is
	// the fallback for CSV rows carrying an unknown room.
	Rooms []Room `yaml:"rooms"`
	// Dir is the base directory for relative file names.
	Dir string `yaml:"dir"`
	// CSVFile is the fallback roster used when no room spreadsheet exists.
	CSVFile string `yaml:"csv_file"`
	// ImportOnStart runs the importer at startup when no students are stored.
	ImportOnStart bool `yaml:"import_on_start"`
}

// DefaultRooms returns the built-in room to spreadsheet mapping.
func DefaultRooms() []Room {
	return []Room{
		{Name: "Neural", File: "Neural.xlsx"},
		{Name: "Qubit", File: "Qubit.xlsx"},
		{Name: "Quantum Core", File: "QuantumCore.xlsx"},
		{Name: "Intelligence", File: "Intelligence.xlsx"},
	}
}

// LoadRosterConfigFromEnv loads roster configuration. When ROSTER_CONFIG points
// to a YAML file its values are used as the base; environment variables win.
func LoadRosterConfigFromEnv() (RosterConfig, error) {
	cfg := RosterConfig{
		Rooms:         DefaultRooms(),
		Dir:           ".",
		CSVFile:       "students.csv",
		ImportOnStart: true,
	}

	if path := GetEnv("ROSTER_CONFIG", ""); path != "" {
		fileCfg, err := LoadRosterFile(path)
		if err != nil {
			return RosterConfig{}, err
		}
		if len(fileCfg.Rooms) > 0 {
			cfg.Rooms = fileCfg.Rooms
		}
		if fileCfg.Dir != "" {
			cfg.Dir = fileCfg.Dir
		}
		if fileCfg.CSVFile != "" {
			cfg.CSVFile = fileCfg.CSVFile
		}
		cfg.ImportOnStart = fileCfg.ImportOnStart
	}

	cfg.Dir = GetEnv("ROSTER_DIR", cfg.Dir)
	cfg.CSVFile = GetEnv("ROSTER_CSV", cfg.CSVFile)
	cfg.ImportOnStart = GetEnvBool("IMPORT_ON_START", cfg.ImportOnStart)

	return cfg, nil
}

// LoadRosterFile parses a YAML roster configuration file.
func LoadRosterFile(path string) (RosterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RosterConfig{}, fmt.Errorf("failed to read roster config %s: %w", path, err)
	}

	cfg := RosterConfig{ImportOnStart: true}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RosterConfig{}, fmt.Errorf("failed to parse roster config %s: %w", path, err)
	}
	for i := range cfg.Rooms {
		cfg.Rooms[i].Name = strings.TrimSpace(cfg.Rooms[i].Name)
		cfg.Rooms[i].File = strings.TrimSpace(cfg.Rooms[i].File)
	}
	return cfg, nil
}

// Validate validates roster configuration.
func (c RosterConfig) Validate() error {
	if len(c.Rooms) == 0 {
		return fmt.Errorf("at least one room must be configured")
	}

	seen := make(map[string]bool, len(c.Rooms))
	for i, room := range c.Rooms {
		name := strings.TrimSpace(room.Name)
		if name == "" {
			return fmt.Errorf("room #%d has an empty name", i+1)
		}
		if seen[name] {
			return fmt.Errorf("duplicate room: %s", name)
		}
		seen[name] = true
		if strings.TrimSpace(room.File) == "" {
			return fmt.Errorf("room %s has no spreadsheet file", name)
		}
	}

	if strings.TrimSpace(c.CSVFile) == "" {
		return fmt.Errorf("CSV fallback file must not be empty")
	}
	return nil
}

// RoomNames returns room labels in configured order.
func (c RosterConfig) RoomNames() []string {
	names := make([]string, 0, len(c.Rooms))
	for _, room := range c.Rooms {
		names = append(names, room.Name)
	}
	return names
}

// ResolvePath joins a relative file name with Dir.
func (c RosterConfig) ResolvePath(file string) string {
	if filepath.IsAbs(file) || c.Dir == "" {
		return file
	}
	return filepath.Join(c.Dir, file)
}

// HasRoom reports whether name is one of the configured room labels.
func (c RosterConfig) HasRoom(name string) bool {
	for _, room := range c.Rooms {
		if room.Name == name {
			return true
		}
	}
	return false
}

// FallbackRoom returns the room assigned to CSV rows with an unknown room.
func (c RosterConfig) FallbackRoom() string {
	if len(c.Rooms) == 0 {
		return ""
	}
	return c.Rooms[0].Name
}
