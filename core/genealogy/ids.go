package genealogy

import "github.com/google/uuid"

// personNamespace scopes person UUIDs so they never collide with UUIDs
// derived from the same ids elsewhere.
var personNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/FocuswithJustin/gedvault/person"))

// PersonUUID returns a stable UUID (version 5) for a GEDCOM individual id.
// Re-running a conversion yields the same UUIDs, so vault notes and SQLite
// rows keep their identity across runs.
func PersonUUID(id string) uuid.UUID {
	return uuid.NewSHA1(personNamespace, []byte(id))
}
