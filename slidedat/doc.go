// Package slidedat reads Slidedat.ini, the textual configuration of a MIRAX slide.
//
// Values are fetched through typed accessors that fail with *errs.KeyNotFoundError
// when a section or key is missing:
//
//	f, err := slidedat.Load(fs, "/slides/CMU-1/Slidedat.ini")
//	imagesX, err := f.GetInt("GENERAL", "IMAGENUMBER_X")
//
// The hierarchical and non-hierarchical trees share one layout that differs only
// in key names; TreeKeys describes those names and LoadTree walks either tree,
// numbering every level in file order. That number is the level's record number
// in the index file.
package slidedat
