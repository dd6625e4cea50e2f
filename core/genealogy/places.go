package genealogy

import "sort"

// PlaceCount is the number of times a place is mentioned.
type PlaceCount struct {
	Place string `json:"place"`
	Count int    `json:"count"`
}

// CountPlaces tallies birth, death and residence places across the
// population, most frequent first and alphabetical among equals.
func CountPlaces(pop *Population) []PlaceCount {
	counts := make(map[string]int)
	for _, p := range pop.People {
		for _, place := range []string{p.Birth.Place, p.Death.Place, p.Residence} {
			if place != "" {
				counts[place]++
			}
		}
	}

	out := make([]PlaceCount, 0, len(counts))
	for place, n := range counts {
		out = append(out, PlaceCount{Place: place, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Place < out[j].Place
	})
	return out
}
