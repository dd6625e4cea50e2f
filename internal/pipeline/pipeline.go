// Package pipeline runs a full GEDCOM to vault conversion: parse, resolve,
// render notes in parallel, write the index pages and the manifest, and
// optionally export to SQLite and pack an archive.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/gedvault/core/errors"
	"github.com/FocuswithJustin/gedvault/core/gedcom"
	"github.com/FocuswithJustin/gedvault/core/genealogy"
	"github.com/FocuswithJustin/gedvault/internal/archive"
	"github.com/FocuswithJustin/gedvault/internal/bios"
	"github.com/FocuswithJustin/gedvault/internal/config"
	"github.com/FocuswithJustin/gedvault/internal/export"
	"github.com/FocuswithJustin/gedvault/internal/fileutil"
	"github.com/FocuswithJustin/gedvault/internal/logging"
	"github.com/FocuswithJustin/gedvault/internal/manifest"
	"github.com/FocuswithJustin/gedvault/internal/places"
	"github.com/FocuswithJustin/gedvault/internal/render"
	"github.com/FocuswithJustin/gedvault/internal/validation"
)

// Report summarizes one conversion.
type Report struct {
	RunID       string
	Input       string
	OutputDir   string
	People      int
	Families    int
	Notes       int
	Biographies int
	Dangling    int
	Removed     int // stale files from the previous run
	Bytes       int64
	Parse       gedcom.Stats
	Export      *export.Stats
	Archive     string
	Duration    time.Duration
}

// Load parses and resolves input.
func Load(ctx context.Context, input string) (*genealogy.Population, gedcom.Stats, error) {
	start := time.Now()

	res, err := gedcom.ParseFile(input)
	if err != nil {
		return nil, gedcom.Stats{}, err
	}
	logging.ParseSummary(ctx, input, res.Stats.TotalLines, res.Stats.MalformedLines, res.Stats.IgnoredLines)

	pop := genealogy.Normalize(res.Individuals, res.Families)
	for _, ref := range pop.Dangling {
		logging.DanglingReference(ctx, ref.From, ref.Tag, ref.To)
	}

	logging.Stage(ctx, "resolve", time.Since(start),
		"people", pop.Len(),
		"families", len(pop.Families),
		"dangling", len(pop.Dangling),
	)
	return pop, res.Stats, nil
}

// Places counts the places mentioned in input.
func Places(ctx context.Context, input string) ([]genealogy.PlaceCount, error) {
	pop, _, err := Load(ctx, input)
	if err != nil {
		return nil, err
	}
	return genealogy.CountPlaces(pop), nil
}

// Run converts input into the vault described by cfg.
func Run(ctx context.Context, cfg *config.Config, input string) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	pop, stats, err := Load(ctx, input)
	if err != nil {
		return nil, err
	}
	report := &Report{
		RunID:     logging.GetRunID(ctx),
		Input:     input,
		OutputDir: cfg.Output.Dir,
		People:    pop.Len(),
		Families:  len(pop.Families),
		Dangling:  len(pop.Dangling),
		Parse:     stats,
	}

	gaz := places.New(cfg.Places.WikiBase)
	if cfg.Places.Gazetteer != "" {
		n, err := gaz.LoadFile(cfg.Places.Gazetteer)
		if err != nil {
			return nil, err
		}
		logging.DebugContext(ctx, "gazetteer_loaded", "path", cfg.Places.Gazetteer, "entries", n)
	}

	r := render.New(pop, render.Options{
		Places:  gaz,
		Bios:    bios.NewStore(cfg.BiosPath()),
		Mermaid: !cfg.Render.NoMermaid,
	})

	stageStart := time.Now()
	notes, err := writeNotes(ctx, r, cfg.PeoplePath(), cfg.Render.Workers)
	if err != nil {
		return nil, err
	}
	report.Notes = len(notes)

	m := &manifest.Manifest{People: pop.Len()}
	for _, n := range notes {
		m.Add(filepath.Join(cfg.Output.PeopleDir, n.File), n.Content)
		if n.HasBio {
			report.Biographies++
		}
	}

	pages := []struct {
		name string
		data []byte
	}{
		{render.IndexFile, render.Index(notes)},
		{render.BiosFile, render.BiosIndex(notes)},
	}
	for _, page := range pages {
		path := filepath.Join(cfg.PeoplePath(), page.name)
		if err := fileutil.WriteFile(path, page.data, 0o644); err != nil {
			return nil, err
		}
		logging.FileWritten(ctx, path, int64(len(page.data)))
		m.Add(filepath.Join(cfg.Output.PeopleDir, page.name), page.data)
	}
	logging.Stage(ctx, "render", time.Since(stageStart),
		"notes", report.Notes,
		"biographies", report.Biographies,
	)

	removed, err := pruneStale(ctx, cfg.Output.Dir, m)
	if err != nil {
		return nil, err
	}
	report.Removed = removed

	if err := m.SetSource(input); err != nil {
		return nil, err
	}
	if err := m.Write(cfg.Output.Dir); err != nil {
		return nil, err
	}
	for _, e := range m.Files {
		report.Bytes += e.Size
	}

	if cfg.SQLite.Path != "" {
		stageStart = time.Now()
		st, err := export.ToFile(ctx, cfg.SQLite.Path, pop, r.Files())
		if err != nil {
			return nil, err
		}
		report.Export = &st
		logging.Stage(ctx, "sqlite", time.Since(stageStart),
			"path", cfg.SQLite.Path,
			"people", st.People,
			"relations", st.Relations,
		)
	}

	if cfg.Output.Archive != "" {
		stageStart = time.Now()
		if err := packVault(cfg); err != nil {
			return nil, err
		}
		report.Archive = cfg.Output.Archive
		var size int64
		if fi, err := os.Stat(cfg.Output.Archive); err == nil {
			size = fi.Size()
		}
		logging.Stage(ctx, "archive", time.Since(stageStart),
			"path", cfg.Output.Archive,
			"size", humanize.Bytes(uint64(size)),
		)
	}

	report.Duration = time.Since(start)
	logging.InfoContext(ctx, "conversion_done",
		"output", cfg.Output.Dir,
		"people", report.People,
		"size", humanize.Bytes(uint64(report.Bytes)),
		"duration_ms", report.Duration.Milliseconds(),
	)
	return report, nil
}

// writeNotes renders and writes one note per person with at most workers
// goroutines. The returned notes are in population id order.
func writeNotes(ctx context.Context, r *render.Renderer, dir string, workers int) ([]*render.Note, error) {
	ids := r.Population().IDs()
	notes := make([]*render.Note, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			note, err := r.Note(id)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, note.File)
			if err := fileutil.WriteFile(path, note.Content, 0o644); err != nil {
				return err
			}
			logging.FileWritten(gctx, path, int64(len(note.Content)))
			notes[i] = note
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return notes, nil
}

// pruneStale removes files listed in the previous manifest that the current
// run did not write, such as the note of a renamed person. Files gedvault
// never wrote are left alone.
func pruneStale(ctx context.Context, root string, current *manifest.Manifest) (int, error) {
	prev, err := manifest.Read(root)
	if err != nil {
		// First run, or a manifest we cannot trust: nothing to prune.
		return 0, nil
	}

	written := make(map[string]bool, len(current.Files))
	folded := make(map[string]string, len(current.Files))
	for _, e := range current.Files {
		written[e.Path] = true
		folded[strings.ToLower(e.Path)] = e.Path
	}

	removed := 0
	for _, e := range prev.Files {
		if written[e.Path] {
			continue
		}
		path, err := validation.VaultPath(root, e.Path)
		if err != nil {
			logging.WarnContext(ctx, "stale_skipped", "path", e.Path, "error", err)
			continue
		}
		// On a case-insensitive file system a case-only rename leaves the
		// old name pointing at the note just written.
		if twin, ok := folded[strings.ToLower(e.Path)]; ok && sameFile(path, filepath.Join(root, filepath.FromSlash(twin))) {
			continue
		}
		err = os.Remove(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return removed, errors.NewIO("remove", path, err)
		}
		logging.DebugContext(ctx, "stale_removed", "path", path)
		removed++
	}
	return removed, nil
}

func sameFile(a, b string) bool {
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}

func packVault(cfg *config.Config) error {
	abs, err := filepath.Abs(cfg.Output.Dir)
	if err != nil {
		return errors.NewIO("archive", cfg.Output.Dir, err)
	}
	return archive.CreateTarXz(cfg.Output.Dir, cfg.Output.Archive, filepath.Base(abs))
}
