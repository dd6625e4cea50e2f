package render

import (
	"strings"

	"github.com/FocuswithJustin/gedvault/core/genealogy"
)

// Mermaid renders the immediate family of p as a Mermaid flowchart:
// parents joined through a marriage node above p, and one marriage node per
// spouse family with that family's children below it. Without a spouse the
// children hang directly off p.
func (r *Renderer) Mermaid(p *genealogy.Person) string {
	g := &diagram{pop: r.pop, declared: make(map[string]bool)}
	g.add("```mermaid")
	g.add("flowchart TD")
	g.add("classDef person fill:#e1f5fe,stroke:#0277bd,stroke-width:2px;")
	g.add("classDef internal-link fill:#e1f5fe,stroke:#0277bd,stroke-width:2px;")

	self := g.node(p.ID)

	if fam, ok := r.pop.Families[p.ParentFamily]; ok {
		var father, mother string
		if fam.Husband != "" && fam.Husband != p.ID {
			father = g.node(fam.Husband)
		}
		if fam.Wife != "" && fam.Wife != p.ID {
			mother = g.node(fam.Wife)
		}
		switch {
		case father != "" && mother != "":
			m := g.marriage(fam.ID)
			g.add(father + " --- " + m)
			g.add(mother + " --- " + m)
			g.add(m + " --> " + self)
		case father != "":
			g.add(father + " --> " + self)
		case mother != "":
			g.add(mother + " --> " + self)
		}
	}

	for _, u := range p.Unions {
		if u.Spouse == "" {
			for _, child := range u.Children {
				g.add(self + " --> " + g.node(child))
			}
			continue
		}
		spouse := g.node(u.Spouse)
		m := g.marriage(u.FamilyID)
		g.add(self + " --- " + m)
		g.add(spouse + " --- " + m)
		for _, child := range u.Children {
			g.add(m + " --> " + g.node(child))
		}
	}

	g.add("```")
	return strings.Join(g.lines, "\n")
}

type diagram struct {
	pop      *genealogy.Population
	lines    []string
	declared map[string]bool
}

func (g *diagram) add(line string) {
	g.lines = append(g.lines, line)
}

// node declares the node for an individual once and returns its name.
func (g *diagram) node(id string) string {
	name := nodeID(id)
	if !g.declared[name] {
		g.declared[name] = true
		label := strings.ReplaceAll(g.pop.Name(id), `"`, "'")
		g.add(name + `["` + label + `"]`)
		g.add("class " + name + " internal-link")
	}
	return name
}

// marriage declares the junction node for a family once.
func (g *diagram) marriage(famID string) string {
	name := "marriage_" + nodeID(famID)
	if !g.declared[name] {
		g.declared[name] = true
		g.add(name + `((" "))`)
	}
	return name
}

// nodeID turns a GEDCOM id into a Mermaid node name.
func nodeID(id string) string {
	var b strings.Builder
	b.WriteString("id")
	for _, c := range strings.ReplaceAll(id, "@", "") {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
