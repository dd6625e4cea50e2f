package genealogy

import "github.com/google/uuid"

// Event is a normalized birth or death. Missing fields are empty strings.
type Event struct {
	Date  string `json:"date"`
	Place string `json:"place"`
}

// Individual is the fixed-shape view of an INDI record.
type Individual struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Birth      Event    `json:"birth"`
	Death      Event    `json:"death"`
	Occupation string   `json:"occupation"`
	Notes      string   `json:"notes"`
	Residence  string   `json:"residence"`
	FamC       string   `json:"famc"`
	FamS       []string `json:"fams"`
}

// Family is the fixed-shape view of a FAM record.
type Family struct {
	ID       string   `json:"id"`
	Husband  string   `json:"husband"`
	Wife     string   `json:"wife"`
	Children []string `json:"children"`
}

// Union is one family in which a person is a spouse, as seen from that person.
type Union struct {
	FamilyID string `json:"family_id"`

	// Spouse is the opposite HUSB/WIFE slot; empty when absent or self.
	Spouse string `json:"spouse,omitempty"`

	// Children of the family in family order, without the person.
	Children []string `json:"children"`
}

// Person is the resolved, read-only view of one individual. Relationship
// lists hold individual ids; use Population.Name to label them.
type Person struct {
	ID          string    `json:"id"`
	UUID        uuid.UUID `json:"uuid"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`

	Birth      Event  `json:"birth"`
	Death      Event  `json:"death"`
	Occupation string `json:"occupation"`
	Notes      string `json:"notes"`
	Residence  string `json:"residence"`

	// ParentFamily is the resolved FAMC family id, empty when unset or dangling.
	ParentFamily string `json:"parent_family,omitempty"`

	Parents  []string `json:"parents"`
	Siblings []string `json:"siblings"`
	Spouses  []string `json:"spouses"`
	Children []string `json:"children"`

	// Unions keeps spouses and children grouped per resolved FAMS family,
	// in FAMS order. Children is the concatenation of Unions[i].Children.
	Unions []Union `json:"unions"`
}

// Reference is a cross-record pointer that did not resolve.
type Reference struct {
	From string `json:"from"`
	Tag  string `json:"tag"`
	To   string `json:"to"`
}
