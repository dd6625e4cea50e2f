// Package export writes a resolved population to a SQLite database.
//
// The people table holds one row per individual. The relations table holds
// one row per entry of each relationship list, with position preserving
// the list order; other_id may name an individual that is not in the file.
// Unresolved references are listed in the dangling table.
package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/FocuswithJustin/gedvault/core/gedcom"
	"github.com/FocuswithJustin/gedvault/core/genealogy"
	"github.com/FocuswithJustin/gedvault/core/sqlite"
)

// Relation kinds stored in relations.kind.
const (
	KindParent  = "parent"
	KindSibling = "sibling"
	KindSpouse  = "spouse"
	KindChild   = "child"
)

// Stats counts exported rows.
type Stats struct {
	People    int
	Relations int
	Dangling  int
}

// ToFile creates (or replaces) the database at path and exports pop into
// it. files maps ids to note file names and may be nil.
func ToFile(ctx context.Context, path string, pop *genealogy.Population, files map[string]string) (Stats, error) {
	db, err := sqlite.Create(ctx, path)
	if err != nil {
		return Stats{}, err
	}
	defer db.Close()

	stats, err := Export(ctx, db, pop, files)
	if err != nil {
		return stats, fmt.Errorf("export %s: %w", path, err)
	}
	return stats, nil
}

// Export creates the schema in db and inserts pop in one transaction.
func Export(ctx context.Context, db *sql.DB, pop *genealogy.Population, files map[string]string) (Stats, error) {
	var stats Stats

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return stats, fmt.Errorf("create schema: %w", err)
	}

	insPerson, err := tx.PrepareContext(ctx, `INSERT INTO people
		(id, uuid, name, display_name, birth_date, birth_year, birth_place,
		 death_date, death_year, death_place, occupation, residence, notes, note_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return stats, fmt.Errorf("prepare people: %w", err)
	}
	defer insPerson.Close()

	insRelation, err := tx.PrepareContext(ctx,
		`INSERT INTO relations (person_id, kind, other_id, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return stats, fmt.Errorf("prepare relations: %w", err)
	}
	defer insRelation.Close()

	for _, id := range pop.IDs() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		p := pop.People[id]
		if _, err := insPerson.ExecContext(ctx,
			p.ID, p.UUID.String(), p.Name, p.DisplayName,
			p.Birth.Date, year(p.Birth.Date), p.Birth.Place,
			p.Death.Date, year(p.Death.Date), p.Death.Place,
			p.Occupation, p.Residence, p.Notes, files[id],
		); err != nil {
			return stats, fmt.Errorf("insert person %s: %w", id, err)
		}
		stats.People++
	}

	// Relations go in after all people so the foreign key always resolves.
	for _, id := range pop.IDs() {
		p := pop.People[id]
		for _, rel := range []struct {
			kind string
			ids  []string
		}{
			{KindParent, p.Parents},
			{KindSibling, p.Siblings},
			{KindSpouse, p.Spouses},
			{KindChild, p.Children},
		} {
			for pos, other := range rel.ids {
				if _, err := insRelation.ExecContext(ctx, id, rel.kind, other, pos); err != nil {
					return stats, fmt.Errorf("insert %s of %s: %w", rel.kind, id, err)
				}
				stats.Relations++
			}
		}
	}

	for _, ref := range pop.Dangling {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dangling (from_id, tag, to_id) VALUES (?, ?, ?)`,
			ref.From, ref.Tag, ref.To,
		); err != nil {
			return stats, fmt.Errorf("insert dangling reference: %w", err)
		}
		stats.Dangling++
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit: %w", err)
	}
	return stats, nil
}

// year returns the first year of a GEDCOM date, or NULL.
func year(raw string) sql.NullInt64 {
	if raw == "" {
		return sql.NullInt64{}
	}
	d, err := gedcom.ParseDate(raw)
	if err != nil || d.Year() == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(d.Year()), Valid: true}
}
