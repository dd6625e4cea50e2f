// Package config loads gedvault settings from a YAML file, the environment
// and built-in defaults.
package config

// Config is the root configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Bios   BiosConfig   `yaml:"bios"`
	Places PlacesConfig `yaml:"places"`
	Render RenderConfig `yaml:"render"`
	SQLite SQLiteConfig `yaml:"sqlite"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig controls where the vault is written.
type OutputConfig struct {
	Dir       string `yaml:"dir"        env:"GEDVAULT_OUTPUT_DIR" env-default:"ObsidianVault"`
	PeopleDir string `yaml:"people_dir" env:"GEDVAULT_PEOPLE_DIR" env-default:"People"`
	Archive   string `yaml:"archive"    env:"GEDVAULT_ARCHIVE"`
}

// BiosConfig points at hand-written biographies.
type BiosConfig struct {
	// Dir defaults to <output.dir>/bios when empty.
	Dir string `yaml:"dir" env:"GEDVAULT_BIOS_DIR"`
}

// PlacesConfig controls place links.
type PlacesConfig struct {
	Gazetteer string `yaml:"gazetteer" env:"GEDVAULT_PLACES"`
	WikiBase  string `yaml:"wiki_base" env:"GEDVAULT_WIKI_BASE" env-default:"https://en.wikipedia.org/wiki"`
}

// RenderConfig controls note rendering.
type RenderConfig struct {
	Workers int `yaml:"workers" env:"GEDVAULT_WORKERS" env-default:"4"`

	// NoMermaid drops the family diagram from every note. Zero values
	// are replaced by env-default, so the flag is phrased negatively.
	NoMermaid bool `yaml:"no_mermaid" env:"GEDVAULT_NO_MERMAID"`
}

// SQLiteConfig enables the SQLite export when Path is set.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"GEDVAULT_SQLITE"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"GEDVAULT_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"GEDVAULT_LOG_FORMAT" env-default:"text"`
}
