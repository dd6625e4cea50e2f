package genealogy

import (
	"strings"

	"github.com/FocuswithJustin/gedvault/core/gedcom"
)

// NormalizeIndividual projects a raw INDI record onto the fixed Individual
// shape. It never fails: absent sub-blocks give empty strings and a FAMS
// value that ended up as a bare scalar becomes a one-element list.
func NormalizeIndividual(raw *gedcom.RawIndividual) Individual {
	return Individual{
		ID:         raw.ID,
		Name:       cleanName(raw.Name),
		Birth:      eventOf(raw.Birth),
		Death:      eventOf(raw.Death),
		Occupation: raw.Occupation,
		Notes:      raw.Notes,
		Residence:  raw.Residence,
		FamC:       raw.FamC,
		FamS:       coerceList(raw.FamS, raw.Extra, "FAMS"),
	}
}

// NormalizeFamily projects a raw FAM record onto the fixed Family shape.
func NormalizeFamily(raw *gedcom.RawFamily) Family {
	return Family{
		ID:       raw.ID,
		Husband:  raw.Husband,
		Wife:     raw.Wife,
		Children: coerceList(raw.Children, raw.Extra, "CHIL"),
	}
}

// cleanName drops the slashes GEDCOM puts around surnames.
func cleanName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "/", ""))
}

func eventOf(ev gedcom.Event) Event {
	// Indexing a nil map is fine and yields "".
	return Event{Date: ev["DATE"], Place: ev["PLAC"]}
}

// coerceList returns list, or a one-element list built from a scalar stored
// under tag when the sequence is empty. The copy keeps raw records immutable.
func coerceList(list []string, extra map[string]string, tag string) []string {
	if len(list) > 0 {
		out := make([]string, len(list))
		copy(out, list)
		return out
	}
	if v, ok := extra[tag]; ok && v != "" {
		return []string{v}
	}
	return []string{}
}
