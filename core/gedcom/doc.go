// Package gedcom reads GEDCOM genealogy files into raw individual and family
// records.
//
// GEDCOM has no explicit nesting: every line carries a level number and the
// hierarchy is implied by level transitions. Parsing is therefore a single
// forward pass over tokenized lines driven by a small state record:
//
//   - the identifier of the active top-level record (for example "@I12@")
//   - the kind of that record (individual, family or unknown)
//   - the active sub-block inside an individual (birth or death)
//
// Only the tags needed to build a family tree are interpreted. Other level-1
// tags are kept as raw text in the record's Extra map. Lines that cannot be
// tokenized, and lines outside a recognized context, are skipped and counted
// in Stats rather than reported as errors. Vendor files are full of such
// noise.
//
// # Example
//
//	res, err := gedcom.ParseFile("family.ged")
//	if err != nil {
//	    return err
//	}
//	for id, ind := range res.Individuals {
//	    fmt.Println(id, ind.Name, ind.FamS)
//	}
package gedcom
