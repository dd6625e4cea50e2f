package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gverrors "github.com/FocuswithJustin/gedvault/core/errors"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "gedvault.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// clearEnv isolates a test from GEDVAULT_* variables set by the caller.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEDVAULT_CONFIG", "GEDVAULT_OUTPUT_DIR", "GEDVAULT_PEOPLE_DIR", "GEDVAULT_ARCHIVE",
		"GEDVAULT_BIOS_DIR", "GEDVAULT_PLACES", "GEDVAULT_WIKI_BASE", "GEDVAULT_WORKERS",
		"GEDVAULT_NO_MERMAID", "GEDVAULT_SQLITE", "GEDVAULT_LOG_LEVEL", "GEDVAULT_LOG_FORMAT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

const validYAML = `
output:
  dir: "vault"
  people_dir: "Family"
  archive: "vault.tar.xz"
bios:
  dir: "my-bios"
places:
  gazetteer: "places.xml"
  wiki_base: "https://he.wikipedia.org/wiki"
render:
  workers: 8
  no_mermaid: true
sqlite:
  path: "tree.db"
log:
  level: "debug"
  format: "json"
`

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.Dir != "ObsidianVault" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if cfg.Output.PeopleDir != "People" {
		t.Errorf("Output.PeopleDir = %q", cfg.Output.PeopleDir)
	}
	if cfg.Render.Workers != 4 || cfg.Render.NoMermaid {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Places.WikiBase != "https://en.wikipedia.org/wiki" {
		t.Errorf("WikiBase = %q", cfg.Places.WikiBase)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.BiosPath() != filepath.Join("ObsidianVault", "bios") {
		t.Errorf("BiosPath() = %q", cfg.BiosPath())
	}
	if cfg.PeoplePath() != filepath.Join("ObsidianVault", "People") {
		t.Errorf("PeoplePath() = %q", cfg.PeoplePath())
	}
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.Dir != "vault" || cfg.Output.PeopleDir != "Family" || cfg.Output.Archive != "vault.tar.xz" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.BiosPath() != "my-bios" {
		t.Errorf("BiosPath() = %q", cfg.BiosPath())
	}
	if cfg.Places.Gazetteer != "places.xml" || cfg.Places.WikiBase != "https://he.wikipedia.org/wiki" {
		t.Errorf("Places = %+v", cfg.Places)
	}
	if cfg.Render.Workers != 8 || !cfg.Render.NoMermaid {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.SQLite.Path != "tree.db" {
		t.Errorf("SQLite.Path = %q", cfg.SQLite.Path)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("GEDVAULT_WORKERS", "2")
	t.Setenv("GEDVAULT_OUTPUT_DIR", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Render.Workers)
	}
	if cfg.Output.Dir != "from-env" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, t.TempDir(), "render:\n  workers: 3\n")
	t.Setenv("GEDVAULT_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Render.Workers)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v should wrap os.ErrNotExist", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"too many workers", "render:\n  workers: 1000\n", "render.workers"},
		{"negative workers", "render:\n  workers: -1\n", "render.workers"},
		{"relative wiki base", "places:\n  wiki_base: \"wiki\"\n", "places.wiki_base"},
		{"escaping people dir", "output:\n  people_dir: \"../out\"\n", "output.people_dir"},
		{"absolute people dir", "output:\n  people_dir: \"/srv/people\"\n", "output.people_dir"},
		{"bad log level", "log:\n  level: \"loud\"\n", "log.level"},
		{"bad log format", "log:\n  format: \"xml\"\n", "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := writeYAML(t, t.TempDir(), tt.yaml)

			_, err := Load(path)
			var ve *gverrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Load() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
			if !errors.Is(err, gverrors.ErrInvalidInput) {
				t.Error("validation errors should match ErrInvalidInput")
			}
		})
	}
}

func TestValidate_AfterFlagOverride(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cfg.Render.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject zero workers")
	}
}
