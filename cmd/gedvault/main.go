// Command gedvault converts a GEDCOM family tree into a Markdown vault.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/FocuswithJustin/gedvault/core/errors"
	"github.com/FocuswithJustin/gedvault/core/sqlite"
	"github.com/FocuswithJustin/gedvault/internal/archive"
	"github.com/FocuswithJustin/gedvault/internal/config"
	"github.com/FocuswithJustin/gedvault/internal/logging"
	"github.com/FocuswithJustin/gedvault/internal/manifest"
	"github.com/FocuswithJustin/gedvault/internal/pipeline"
	"github.com/FocuswithJustin/gedvault/internal/watch"
)

const version = "0.1.0"

// Globals are flags shared by every command.
type Globals struct {
	Config    string `name:"config" short:"c" help:"Config file (default gedvault.yaml if present)" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error"`
	LogFormat string `name:"log-format" help:"Log format: text, json"`

	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

// CLI defines the command-line interface for gedvault.
type CLI struct {
	Globals

	Convert ConvertCmd `cmd:"" help:"Convert a GEDCOM file into a Markdown vault"`
	Places  PlacesCmd  `cmd:"" help:"Count the places mentioned in a GEDCOM file"`
	Inspect InspectCmd `cmd:"" help:"Print one resolved person as JSON"`
	Verify  VerifyCmd  `cmd:"" help:"Check a vault against its manifest"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// setup loads the configuration and initializes logging. Flags given on
// the command line override file and environment values.
func (g *Globals) setup() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)
	logging.InitLoggerTo(g.stderr, level, format)
	return cfg, nil
}

// ConvertCmd runs the conversion pipeline.
type ConvertCmd struct {
	Input     string        `arg:"" help:"GEDCOM file (.ged or .ged.xz)" type:"existingfile"`
	Output    string        `short:"o" help:"Vault directory" type:"path"`
	PeopleDir string        `name:"people-dir" help:"Notes directory inside the vault"`
	BiosDir   string        `name:"bios-dir" help:"Biographies directory (default <output>/bios)" type:"path"`
	Places    string        `help:"Gazetteer XML mapping places to wiki articles" type:"existingfile"`
	WikiBase  string        `name:"wiki-base" help:"Base URL for place links"`
	Workers   int           `help:"Parallel note writers"`
	SQLite    string        `name:"sqlite" help:"Also export the tree to this SQLite database" type:"path"`
	Archive   string        `help:"Also pack the vault into this .tar.xz file" type:"path"`
	NoMermaid bool          `name:"no-mermaid" help:"Leave the family diagram out of notes"`
	Watch     bool          `short:"w" help:"Rebuild whenever the input changes"`
	Debounce  time.Duration `help:"Quiet period before a rebuild in watch mode" default:"250ms"`
	JSON      bool          `name:"json" help:"Print the report as JSON"`
}

func (c *ConvertCmd) apply(cfg *config.Config) error {
	if c.Output != "" {
		cfg.Output.Dir = c.Output
	}
	if c.PeopleDir != "" {
		cfg.Output.PeopleDir = c.PeopleDir
	}
	if c.BiosDir != "" {
		cfg.Bios.Dir = c.BiosDir
	}
	if c.Places != "" {
		cfg.Places.Gazetteer = c.Places
	}
	if c.WikiBase != "" {
		cfg.Places.WikiBase = c.WikiBase
	}
	if c.Workers != 0 {
		cfg.Render.Workers = c.Workers
	}
	if c.SQLite != "" {
		cfg.SQLite.Path = c.SQLite
	}
	if c.Archive != "" {
		cfg.Output.Archive = c.Archive
	}
	if c.NoMermaid {
		cfg.Render.NoMermaid = true
	}
	return cfg.Validate()
}

func (c *ConvertCmd) Run(g *Globals, ctx context.Context) error {
	cfg, err := g.setup()
	if err != nil {
		return err
	}
	if err := c.apply(cfg); err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, logging.NewRunID())

	if c.Watch {
		if c.Debounce <= 0 {
			c.Debounce = watch.DefaultDebounce
		}
		return pipeline.Watch(ctx, cfg, c.Input, c.Debounce, func(r *pipeline.Report) {
			c.print(g.stdout, r)
		})
	}

	report, err := pipeline.Run(ctx, cfg, c.Input)
	if err != nil {
		return err
	}
	return c.print(g.stdout, report)
}

func (c *ConvertCmd) print(w io.Writer, r *pipeline.Report) error {
	if c.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Fprintf(w, "Converted %d people into %s (%d notes, %s)\n",
		r.People, r.OutputDir, r.Notes, humanize.Bytes(uint64(r.Bytes)))
	if r.Biographies > 0 {
		fmt.Fprintf(w, "  biographies: %d\n", r.Biographies)
	}
	if r.Dangling > 0 {
		fmt.Fprintf(w, "  unresolved references: %d\n", r.Dangling)
	}
	if r.Parse.MalformedLines > 0 {
		fmt.Fprintf(w, "  malformed lines skipped: %d\n", r.Parse.MalformedLines)
	}
	if r.Removed > 0 {
		fmt.Fprintf(w, "  stale files removed: %d\n", r.Removed)
	}
	if r.Export != nil {
		fmt.Fprintf(w, "  sqlite: %d people, %d relations\n", r.Export.People, r.Export.Relations)
	}
	if r.Archive != "" {
		fmt.Fprintf(w, "  archive: %s\n", r.Archive)
	}
	return nil
}

// PlacesCmd prints place frequencies.
type PlacesCmd struct {
	Input string `arg:"" help:"GEDCOM file" type:"existingfile"`
	Limit int    `help:"Show only the most frequent places (0 = all)"`
	JSON  bool   `name:"json" help:"Print as JSON"`
}

func (c *PlacesCmd) Run(g *Globals, ctx context.Context) error {
	if _, err := g.setup(); err != nil {
		return err
	}
	counts, err := pipeline.Places(ctx, c.Input)
	if err != nil {
		return err
	}
	total := len(counts)
	if c.Limit > 0 && c.Limit < len(counts) {
		counts = counts[:c.Limit]
	}

	if c.JSON {
		enc := json.NewEncoder(g.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}
	fmt.Fprintln(g.stdout, "Place Analysis:")
	fmt.Fprintln(g.stdout, "===============")
	for _, pc := range counts {
		fmt.Fprintf(g.stdout, "%2dx %s\n", pc.Count, pc.Place)
	}
	fmt.Fprintf(g.stdout, "\nTotal unique places: %d\n", total)
	return nil
}

// InspectCmd prints one resolved person.
type InspectCmd struct {
	Input string `arg:"" help:"GEDCOM file" type:"existingfile"`
	ID    string `arg:"" help:"Individual id, e.g. @I1@ or I1"`
}

func (c *InspectCmd) Run(g *Globals, ctx context.Context) error {
	if _, err := g.setup(); err != nil {
		return err
	}
	pop, _, err := pipeline.Load(ctx, c.Input)
	if err != nil {
		return err
	}

	id := c.ID
	if _, ok := pop.People[id]; !ok && id != "" && id[0] != '@' {
		id = "@" + id + "@"
	}
	p, err := pop.Person(id)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(g.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// VerifyCmd checks a vault, or a vault archive, against its manifest.
type VerifyCmd struct {
	Vault string `arg:"" help:"Vault directory or .tar.xz archive" type:"path"`
}

func (c *VerifyCmd) Run(g *Globals) error {
	if _, err := g.setup(); err != nil {
		return err
	}

	root := c.Vault
	if archive.IsArchive(c.Vault) {
		tmp, err := os.MkdirTemp("", "gedvault-verify-*")
		if err != nil {
			return errors.NewIO("create", os.TempDir(), err)
		}
		defer os.RemoveAll(tmp)
		if root, err = archive.Extract(c.Vault, tmp); err != nil {
			return err
		}
	}

	m, problems, err := manifest.Verify(root)
	if err != nil {
		return err
	}
	for _, p := range problems {
		fmt.Fprintln(g.stdout, p.String())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s: %d problem(s) found", c.Vault, len(problems))
	}
	fmt.Fprintf(g.stdout, "OK: %d files verified\n", len(m.Files))
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	info := sqlite.GetInfo()
	fmt.Fprintf(g.stdout, "gedvault version %s (sqlite driver: %s)\n", version, info.DriverType)
	return nil
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := CLI{Globals: Globals{stdout: stdout, stderr: stderr}}
	parser, err := kong.New(&cli,
		kong.Name("gedvault"),
		kong.Description("Convert GEDCOM family trees into linked Markdown vaults"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kctx.Run(&cli.Globals)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps an error to the process status: 0 on success, 2 when a
// requested record does not exist and 1 otherwise.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "gedvault:", err)
	var nf *errors.NotFoundError
	if errors.As(err, &nf) {
		return 2
	}
	return 1
}
