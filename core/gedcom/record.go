package gedcom

// Kind is the kind of the top-level record a line belongs to.
type Kind int

const (
	// KindNone means no record has started yet.
	KindNone Kind = iota
	// KindIndividual is an INDI record.
	KindIndividual
	// KindFamily is a FAM record.
	KindFamily
	// KindUnknown is any other record (SOUR, REPO, OBJE, vendor records...).
	KindUnknown
)

// String returns the GEDCOM record type for the kind.
func (k Kind) String() string {
	switch k {
	case KindIndividual:
		return "INDI"
	case KindFamily:
		return "FAM"
	case KindUnknown:
		return "UNKNOWN"
	default:
		return "NONE"
	}
}

// kindOf maps the first payload word of a level-0 record line to a Kind.
func kindOf(recordType string) Kind {
	switch recordType {
	case "INDI":
		return KindIndividual
	case "FAM":
		return KindFamily
	default:
		return KindUnknown
	}
}

// SubBlock is the level-1 block whose level-2 lines are being collected.
type SubBlock int

const (
	SubNone SubBlock = iota
	SubBirth
	SubDeath
)

// Event holds the level-2 fields of a BIRT or DEAT block keyed by tag
// (DATE, PLAC, ...).
type Event map[string]string

// RawIndividual is an INDI record as it appeared in the file.
type RawIndividual struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	// FamC is the family in which the individual is a child.
	FamC string `json:"famc,omitempty"`

	// FamS lists the families in which the individual is a spouse, in file order.
	FamS []string `json:"fams,omitempty"`

	// Birth and Death are nil when the record has no such block.
	Birth Event `json:"birth,omitempty"`
	Death Event `json:"death,omitempty"`

	Occupation string `json:"occupation,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Residence  string `json:"residence,omitempty"`

	// Extra keeps every other level-1 tag, last value wins.
	Extra map[string]string `json:"extra,omitempty"`
}

// RawFamily is a FAM record as it appeared in the file.
type RawFamily struct {
	ID      string `json:"id"`
	Husband string `json:"husband,omitempty"`
	Wife    string `json:"wife,omitempty"`

	// Children in file order. Duplicates are kept.
	Children []string `json:"children,omitempty"`

	Extra map[string]string `json:"extra,omitempty"`
}

func (ind *RawIndividual) setExtra(tag, value string) {
	if ind.Extra == nil {
		ind.Extra = make(map[string]string)
	}
	ind.Extra[tag] = value
}

func (fam *RawFamily) setExtra(tag, value string) {
	if fam.Extra == nil {
		fam.Extra = make(map[string]string)
	}
	fam.Extra[tag] = value
}
