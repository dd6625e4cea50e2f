package render

import (
	"strings"
	"testing"
)

func diagramLines(t *testing.T, r *Renderer, id string) []string {
	t.Helper()
	p, err := r.Population().Person(id)
	if err != nil {
		t.Fatalf("Person(%s): %v", id, err)
	}
	return strings.Split(r.Mermaid(p), "\n")
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}

func TestMermaid_ParentsMarriage(t *testing.T) {
	r := New(population(t, family), Options{Mermaid: true})
	lines := diagramLines(t, r, "@I3@")

	if lines[0] != "```mermaid" || lines[1] != "flowchart TD" || lines[len(lines)-1] != "```" {
		t.Fatalf("diagram frame wrong: %q", lines)
	}
	for _, want := range []string{
		`idI3["Peter Smith"]`,
		`class idI3 internal-link`,
		`idI1["John Smith"]`,
		`idI2["Mary Jones"]`,
		`marriage_idF1((" "))`,
		`idI1 --- marriage_idF1`,
		`idI2 --- marriage_idF1`,
		`marriage_idF1 --> idI3`,
	} {
		if !containsLine(lines, want) {
			t.Errorf("diagram missing %q:\n%s", want, strings.Join(lines, "\n"))
		}
	}
	if containsLine(lines, `idI4["Anne Smith"]`) {
		t.Error("siblings are not part of the diagram")
	}
}

func TestMermaid_SpouseAndChildren(t *testing.T) {
	r := New(population(t, family), Options{Mermaid: true})
	lines := diagramLines(t, r, "@I1@")

	for _, want := range []string{
		`idI1 --- marriage_idF1`,
		`idI2 --- marriage_idF1`,
		`marriage_idF1 --> idI3`,
		`marriage_idF1 --> idI4`,
	} {
		if !containsLine(lines, want) {
			t.Errorf("diagram missing %q", want)
		}
	}

	declared := 0
	for _, l := range lines {
		if l == `idI1["John Smith"]` {
			declared++
		}
	}
	if declared != 1 {
		t.Errorf("self declared %d times", declared)
	}
}

func TestMermaid_SingleParentAndNoSpouse(t *testing.T) {
	r := New(population(t, `0 @I1@ INDI
1 NAME Pat "Red" Kelly
1 FAMS @F1@
0 @I2@ INDI
1 NAME Kid
1 FAMC @F1@
0 @F1@ FAM
1 WIFE @I1@
1 CHIL @I2@
`), Options{Mermaid: true})

	parent := diagramLines(t, r, "@I1@")
	if !containsLine(parent, `idI1["Pat 'Red' Kelly"]`) {
		t.Errorf("double quotes should become single quotes: %q", parent)
	}
	if !containsLine(parent, `idI1 --> idI2`) {
		t.Errorf("children without a spouse link directly: %q", parent)
	}
	for _, l := range parent {
		if strings.HasPrefix(l, "marriage_") {
			t.Errorf("no marriage node expected, got %q", l)
		}
	}

	child := diagramLines(t, r, "@I2@")
	if !containsLine(child, `idI1 --> idI2`) {
		t.Errorf("single parent links directly: %q", child)
	}
}

func TestNote_MermaidToggle(t *testing.T) {
	pop := population(t, family)

	with, _ := New(pop, Options{Mermaid: true}).Note("@I1@")
	without, _ := New(pop, Options{Mermaid: false}).Note("@I1@")

	if !strings.Contains(string(with.Content), "**Occupation**: Carpenter\n```mermaid\n") {
		t.Errorf("diagram should follow the occupation line:\n%s", with.Content)
	}
	if strings.Contains(string(without.Content), "```mermaid") {
		t.Error("diagram rendered with Mermaid disabled")
	}
}

func TestNodeID(t *testing.T) {
	tests := map[string]string{
		"@I1@":     "idI1",
		"@F-2@":    "idF_2",
		"@I 3.1@":  "idI_3_1",
		"@P_abc9@": "idP_abc9",
	}
	for in, want := range tests {
		if got := nodeID(in); got != want {
			t.Errorf("nodeID(%q) = %q, want %q", in, got, want)
		}
	}
}
