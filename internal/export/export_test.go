package export

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/FocuswithJustin/gedvault/core/gedcom"
	"github.com/FocuswithJustin/gedvault/core/genealogy"
	"github.com/FocuswithJustin/gedvault/core/sqlite"
)

const tree = `0 @I1@ INDI
1 NAME John /Smith/
1 BIRT
2 DATE 12 JAN 1900
2 PLAC Perth
1 DEAT
2 DATE sometime
1 FAMS @F1@
0 @I2@ INDI
1 NAME Mary /Jones/
1 FAMS @F1@
0 @I3@ INDI
1 NAME Peter /Smith/
1 FAMC @F1@
0 @I4@ INDI
1 NAME Anne /Smith/
1 FAMC @F1@
1 FAMS @F9@
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
1 CHIL @I4@
1 CHIL @I8@
`

func exportTree(t *testing.T) (string, Stats) {
	t.Helper()
	res, err := gedcom.Parse(strings.NewReader(tree))
	if err != nil {
		t.Fatal(err)
	}
	pop := genealogy.Normalize(res.Individuals, res.Families)

	path := filepath.Join(t.TempDir(), "tree.db")
	files := map[string]string{"@I1@": "John Smith.md"}
	stats, err := ToFile(context.Background(), path, pop, files)
	if err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}
	return path, stats
}

func TestToFile(t *testing.T) {
	path, stats := exportTree(t)

	// John: spouse + 3 children; Mary: spouse + 3 children;
	// Peter: 2 parents + 2 siblings; Anne: 2 parents + 2 siblings.
	want := Stats{People: 4, Relations: 16, Dangling: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var (
		name, file, birthPlace string
		birthYear, deathYear   *int64
	)
	err = db.QueryRow(`SELECT display_name, note_file, birth_place, birth_year, death_year
		FROM people WHERE id = '@I1@'`).Scan(&name, &file, &birthPlace, &birthYear, &deathYear)
	if err != nil {
		t.Fatalf("query person: %v", err)
	}
	if name != "John Smith" || file != "John Smith.md" || birthPlace != "Perth" {
		t.Errorf("row = %q %q %q", name, file, birthPlace)
	}
	if birthYear == nil || *birthYear != 1900 {
		t.Errorf("birth_year = %v", birthYear)
	}
	if deathYear != nil {
		t.Errorf("unparseable death date should give NULL, got %v", *deathYear)
	}

	rows, err := db.Query(`SELECT other_id FROM relations
		WHERE person_id = '@I1@' AND kind = 'child' ORDER BY position`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	var children []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			t.Fatal(err)
		}
		children = append(children, id)
	}
	if !reflect.DeepEqual(children, []string{"@I3@", "@I4@", "@I8@"}) {
		t.Errorf("children = %v", children)
	}

	var dangling int
	if err := db.QueryRow(`SELECT COUNT(*) FROM dangling WHERE to_id IN ('@I8@', '@F9@')`).Scan(&dangling); err != nil {
		t.Fatal(err)
	}
	if dangling != 2 {
		t.Errorf("dangling rows = %d", dangling)
	}
}

func TestToFile_Rerun(t *testing.T) {
	path, _ := exportTree(t)

	res, _ := gedcom.Parse(strings.NewReader(tree))
	pop := genealogy.Normalize(res.Individuals, res.Families)
	stats, err := ToFile(context.Background(), path, pop, nil)
	if err != nil {
		t.Fatalf("second export into the same file failed: %v", err)
	}
	if stats.People != 4 {
		t.Errorf("People = %d", stats.People)
	}
}

func TestExport_Cancelled(t *testing.T) {
	res, _ := gedcom.Parse(strings.NewReader(tree))
	pop := genealogy.Normalize(res.Individuals, res.Families)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ToFile(ctx, filepath.Join(t.TempDir(), "x.db"), pop, nil); err == nil {
		t.Error("expected error for a cancelled context")
	}
}
