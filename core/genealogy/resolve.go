package genealogy

import (
	"sort"

	gverrors "github.com/FocuswithJustin/gedvault/core/errors"
	"github.com/FocuswithJustin/gedvault/core/gedcom"
)

// Population is the resolved view of one GEDCOM file. It is built once and
// never modified, so it can be shared between goroutines without locking.
type Population struct {
	People   map[string]*Person
	Families map[string]*Family

	// Names maps every individual id to its display name.
	Names map[string]string

	// Dangling lists references that point at no record of the expected
	// kind, sorted by source id.
	Dangling []Reference

	ids []string
}

// Normalize normalizes raw records and resolves every individual's
// relationships.
func Normalize(individuals map[string]*gedcom.RawIndividual, families map[string]*gedcom.RawFamily) *Population {
	inds := make(map[string]*Individual, len(individuals))
	for id, raw := range individuals {
		ind := NormalizeIndividual(raw)
		inds[id] = &ind
	}
	fams := make(map[string]*Family, len(families))
	for id, raw := range families {
		fam := NormalizeFamily(raw)
		fams[id] = &fam
	}
	return Resolve(inds, fams)
}

// Resolve computes parents, siblings, spouses and children for every
// individual. Both maps are treated as a closed world and are not modified.
func Resolve(individuals map[string]*Individual, families map[string]*Family) *Population {
	pop := &Population{
		People:   make(map[string]*Person, len(individuals)),
		Families: families,
		Names:    make(map[string]string, len(individuals)),
		ids:      sortedKeys(individuals),
	}

	// Names first: every person links to others through them.
	for _, id := range pop.ids {
		pop.Names[id] = displayName(individuals[id])
	}

	for _, id := range pop.ids {
		pop.People[id] = pop.resolve(individuals[id], individuals)
	}

	for _, fid := range sortedKeys(families) {
		fam := families[fid]
		for _, ref := range []struct{ tag, id string }{{"HUSB", fam.Husband}, {"WIFE", fam.Wife}} {
			if ref.id != "" && individuals[ref.id] == nil {
				pop.Dangling = append(pop.Dangling, Reference{From: fid, Tag: ref.tag, To: ref.id})
			}
		}
		for _, child := range fam.Children {
			if individuals[child] == nil {
				pop.Dangling = append(pop.Dangling, Reference{From: fid, Tag: "CHIL", To: child})
			}
		}
	}

	sort.SliceStable(pop.Dangling, func(i, j int) bool {
		a, b := pop.Dangling[i], pop.Dangling[j]
		if a.From != b.From {
			return a.From < b.From
		}
		return a.Tag < b.Tag
	})

	return pop
}

func (pop *Population) resolve(ind *Individual, individuals map[string]*Individual) *Person {
	self := ind.ID
	p := &Person{
		ID:          self,
		UUID:        PersonUUID(self),
		Name:        ind.Name,
		DisplayName: pop.Names[self],
		Birth:       ind.Birth,
		Death:       ind.Death,
		Occupation:  ind.Occupation,
		Notes:       ind.Notes,
		Residence:   ind.Residence,
		Parents:     []string{},
		Siblings:    []string{},
		Spouses:     []string{},
		Children:    []string{},
		Unions:      []Union{},
	}

	if ind.FamC != "" {
		if fam, ok := pop.Families[ind.FamC]; ok {
			p.ParentFamily = fam.ID
			p.Parents = appendOthers(p.Parents, self, fam.Husband, fam.Wife)
			p.Siblings = appendOthers(p.Siblings, self, fam.Children...)
		} else {
			pop.Dangling = append(pop.Dangling, Reference{From: self, Tag: "FAMC", To: ind.FamC})
		}
	}

	for _, fid := range ind.FamS {
		fam, ok := pop.Families[fid]
		if !ok {
			pop.Dangling = append(pop.Dangling, Reference{From: self, Tag: "FAMS", To: fid})
			continue
		}

		u := Union{FamilyID: fid, Children: appendOthers([]string{}, self, fam.Children...)}
		if spouse := spouseOf(fam, self); spouse != "" {
			u.Spouse = spouse
			p.Spouses = append(p.Spouses, spouse)
		}
		p.Children = append(p.Children, u.Children...)
		p.Unions = append(p.Unions, u)
	}

	return p
}

// spouseOf returns the opposite HUSB/WIFE slot of fam as seen from self.
// It is empty when self holds neither slot, the other slot is empty, or the
// other slot also points at self.
func spouseOf(fam *Family, self string) string {
	var other string
	switch self {
	case fam.Husband:
		other = fam.Wife
	case fam.Wife:
		other = fam.Husband
	}
	if other == self {
		return ""
	}
	return other
}

// appendOthers appends every non-empty id except self.
func appendOthers(dst []string, self string, ids ...string) []string {
	for _, id := range ids {
		if id != "" && id != self {
			dst = append(dst, id)
		}
	}
	return dst
}

func displayName(ind *Individual) string {
	if ind.Name == "" {
		return ind.ID
	}
	return ind.Name
}

// IDs returns the individual ids in sorted order.
func (pop *Population) IDs() []string {
	out := make([]string, len(pop.ids))
	copy(out, pop.ids)
	return out
}

// Len returns the number of individuals.
func (pop *Population) Len() int {
	return len(pop.ids)
}

// Person looks up a resolved individual.
func (pop *Population) Person(id string) (*Person, error) {
	p, ok := pop.People[id]
	if !ok {
		return nil, gverrors.NewNotFound("individual", id)
	}
	return p, nil
}

// Name returns the display name for id, or id itself for ids that are not
// individuals of this population.
func (pop *Population) Name(id string) string {
	if name, ok := pop.Names[id]; ok {
		return name
	}
	return id
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
