// Package places turns GEDCOM place strings into encyclopedia links.
//
// A Gazetteer maps a place string to an article title. Unknown places fall
// back to the place itself with spaces replaced by underscores, which is how
// article URLs are spelled. Extra mappings are read from an XML file:
//
//	<places>
//	  <place name="Perth, WA, Australia" article="Perth,_Western_Australia"/>
//	</places>
package places

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/gedvault/core/errors"
)

// DefaultWikiBase is the article base URL used when none is configured.
const DefaultWikiBase = "https://en.wikipedia.org/wiki"

var placeExpr = xpath.MustCompile("/places/place")

// Gazetteer resolves places to article links. It is read-only after
// loading and safe for concurrent use.
type Gazetteer struct {
	base     string
	articles map[string]string
}

// New returns a gazetteer holding the built-in mappings.
func New(wikiBase string) *Gazetteer {
	if wikiBase == "" {
		wikiBase = DefaultWikiBase
	}
	g := &Gazetteer{
		base:     strings.TrimRight(wikiBase, "/"),
		articles: make(map[string]string, len(defaultArticles)),
	}
	for place, article := range defaultArticles {
		g.articles[place] = article
	}
	return g
}

// LoadFile merges the mappings of a gazetteer XML file.
func (g *Gazetteer) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.NewIO("read", path, err)
	}
	return g.load(bytes.NewReader(data), path)
}

// Load merges mappings read from r and returns how many entries it added
// or replaced.
func (g *Gazetteer) Load(r io.Reader) (int, error) {
	return g.load(r, "")
}

func (g *Gazetteer) load(r io.Reader, path string) (int, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		perr := errors.NewParse("gazetteer XML", path, err.Error())
		perr.Err = err
		return 0, perr
	}
	if xmlquery.FindOne(doc, "/places") == nil {
		return 0, errors.NewParse("gazetteer XML", path, "missing <places> root element")
	}

	n := 0
	for i, node := range xmlquery.QuerySelectorAll(doc, placeExpr) {
		name := strings.TrimSpace(node.SelectAttr("name"))
		if name == "" {
			return n, errors.NewParse("gazetteer XML", path, fmt.Sprintf("place %d has no name", i+1))
		}
		article := strings.TrimSpace(node.SelectAttr("article"))
		if article == "" {
			article = strings.TrimSpace(node.InnerText())
		}
		if article == "" {
			return n, errors.NewParse("gazetteer XML", path, fmt.Sprintf("place %q has no article", name))
		}
		g.articles[name] = article
		n++
	}
	return n, nil
}

// Article returns the article title for place.
func (g *Gazetteer) Article(place string) string {
	if article, ok := g.articles[place]; ok {
		return article
	}
	return strings.ReplaceAll(place, " ", "_")
}

// Known reports whether place has an explicit mapping.
func (g *Gazetteer) Known(place string) bool {
	_, ok := g.articles[place]
	return ok
}

// URL returns the article URL for place.
func (g *Gazetteer) URL(place string) string {
	return g.base + "/" + g.Article(place)
}

// Link renders place as a Markdown link, or "" for an empty place.
func (g *Gazetteer) Link(place string) string {
	if place == "" {
		return ""
	}
	return "[" + place + "](" + g.URL(place) + ")"
}

// Len returns the number of explicit mappings.
func (g *Gazetteer) Len() int {
	return len(g.articles)
}
