package config

import (
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/gedvault/core/errors"
	"github.com/FocuswithJustin/gedvault/internal/logging"
	"github.com/FocuswithJustin/gedvault/internal/validation"
)

// MaxWorkers caps Render.Workers.
const MaxWorkers = 256

// Validate checks field values after loading. Load calls it automatically;
// callers that override fields from flags should call it again.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return invalid("output.dir", c.Output.Dir, "must not be empty")
	}
	if err := validation.ValidatePath(c.Output.Dir); err != nil {
		return invalid("output.dir", c.Output.Dir, err.Error())
	}
	if !validation.IsInside(c.Output.Dir, c.Output.PeopleDir) {
		return invalid("output.people_dir", c.Output.PeopleDir, "must be a relative directory inside the vault")
	}
	if c.Render.Workers < 1 || c.Render.Workers > MaxWorkers {
		return invalid("render.workers", strconv.Itoa(c.Render.Workers), "must be between 1 and 256")
	}
	u, err := url.Parse(c.Places.WikiBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid("places.wiki_base", c.Places.WikiBase, "must be an absolute URL")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, "must be debug, info, warn or error")
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return invalid("log.format", c.Log.Format, "must be json or text")
	}
	return nil
}

// BiosPath is the biographies directory.
func (c *Config) BiosPath() string {
	if c.Bios.Dir != "" {
		return c.Bios.Dir
	}
	return filepath.Join(c.Output.Dir, "bios")
}

// PeoplePath is the directory person notes are written to.
func (c *Config) PeoplePath() string {
	return filepath.Join(c.Output.Dir, c.Output.PeopleDir)
}

func invalid(field, value, message string) *errors.ValidationError {
	return &errors.ValidationError{Field: field, Value: value, Message: message}
}
