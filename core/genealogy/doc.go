// Package genealogy turns raw GEDCOM records into resolved people.
//
// Individuals and families only reference each other by id. Normalize
// projects the raw records onto fixed shapes and Resolve cross-references
// them to compute, for every individual:
//
//   - Parents: HUSB then WIFE of the FAMC family
//   - Siblings: the other children of the FAMC family, in family order
//   - Spouses: the opposite slot of each FAMS family, in FAMS order
//   - Children: the children of each FAMS family, in FAMS then family order
//
// An individual never appears in its own lists. References that do not
// resolve are tolerated and reported in Population.Dangling. All output
// orders come from the explicit FAMS and CHIL sequences, so resolution is
// independent of map iteration order.
package genealogy
