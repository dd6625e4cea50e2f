package render

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/gedvault/core/gedcom"
	"github.com/FocuswithJustin/gedvault/core/genealogy"
)

// emptyValue marks a section with nothing to show.
const emptyValue = "—"

type frontmatter struct {
	Type     string   `yaml:"type"`
	Title    string   `yaml:"title"`
	GedcomID string   `yaml:"gedcom_id"`
	UUID     string   `yaml:"uuid"`
	Birth    string   `yaml:"birth,omitempty"`
	Death    string   `yaml:"death,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
}

// Note renders the profile note of one person.
func (r *Renderer) Note(id string) (*Note, error) {
	p, err := r.pop.Person(id)
	if err != nil {
		return nil, err
	}

	bio, hasBio, err := r.bios.Lookup(id)
	if err != nil {
		return nil, err
	}

	fm := frontmatter{
		Type:     "profile",
		Title:    p.Name,
		GedcomID: p.ID,
		UUID:     p.UUID.String(),
		Birth:    isoDate(p.Birth.Date),
		Death:    isoDate(p.Death.Date),
		Tags:     []string{"person"},
	}
	if hasBio {
		fm.Tags = append(fm.Tags, "biography")
	}
	head, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("render %s: frontmatter: %w", id, err)
	}

	lines := []string{
		"---\n" + strings.TrimRight(string(head), "\n") + "\n---",
		r.eventLine("Birth", p.Birth),
		r.eventLine("Death", p.Death),
		"**Occupation**: " + orEmpty(p.Occupation),
	}
	if r.mermaid {
		lines = append(lines, r.Mermaid(p))
	}
	lines = append(lines,
		section("Parents", r.links(p.Parents)),
		section("Siblings", r.links(p.Siblings)),
		section("Spouse", r.links(p.Spouses)),
		section("Children", r.links(p.Children)),
		section("Notes", p.Notes),
	)
	if hasBio && bio != "" {
		lines = append(lines, "", "**Biography**:", bio)
	}
	lines = append(lines, "\n**GEDCOM ID**: "+p.ID)

	file := r.files[id]
	return &Note{
		ID:      id,
		File:    file,
		Title:   strings.TrimSuffix(file, ".md"),
		Content: []byte(strings.Join(lines, "\n") + "\n"),
		HasBio:  hasBio,
	}, nil
}

func (r *Renderer) eventLine(label string, ev genealogy.Event) string {
	line := "**" + label + "**: " + ev.Date
	if ev.Place != "" {
		line += " at " + r.places.Link(ev.Place)
	}
	return strings.TrimRight(line, " ")
}

func (r *Renderer) links(ids []string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.link(id))
	}
	return strings.Join(out, "\n")
}

func section(label, body string) string {
	return "\n**" + label + "**:\n" + orEmpty(body)
}

func orEmpty(s string) string {
	if s == "" {
		return emptyValue
	}
	return s
}

// isoDate converts a GEDCOM date to YYYY[-MM[-DD]] for frontmatter. Values
// the date grammar does not cover are kept as written.
func isoDate(raw string) string {
	if raw == "" {
		return ""
	}
	d, err := gedcom.ParseDate(raw)
	if err != nil {
		return raw
	}
	if d.Approximate() {
		return "~" + d.SortKey()
	}
	return d.SortKey()
}
