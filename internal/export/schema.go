package export

const schema = `
CREATE TABLE people (
	id           TEXT PRIMARY KEY,
	uuid         TEXT NOT NULL UNIQUE,
	name         TEXT NOT NULL,
	display_name TEXT NOT NULL,
	birth_date   TEXT NOT NULL,
	birth_year   INTEGER,
	birth_place  TEXT NOT NULL,
	death_date   TEXT NOT NULL,
	death_year   INTEGER,
	death_place  TEXT NOT NULL,
	occupation   TEXT NOT NULL,
	residence    TEXT NOT NULL,
	notes        TEXT NOT NULL,
	note_file    TEXT NOT NULL
);

CREATE TABLE relations (
	person_id TEXT NOT NULL REFERENCES people(id),
	kind      TEXT NOT NULL CHECK (kind IN ('parent', 'sibling', 'spouse', 'child')),
	other_id  TEXT NOT NULL,
	position  INTEGER NOT NULL,
	PRIMARY KEY (person_id, kind, position)
);

CREATE INDEX relations_other ON relations(other_id);

CREATE TABLE dangling (
	from_id TEXT NOT NULL,
	tag     TEXT NOT NULL,
	to_id   TEXT NOT NULL
);
`
