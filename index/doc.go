// Package index decodes the binary index file of a MIRAX slide.
//
// An index file maps record numbers to byte ranges in the slide's data files.
// Two record tables hang off fixed roots right after the index header:
//
//   - the hierarchical table, one record per zoom level, whose records are
//     chains of pages listing every tile of the level;
//   - the non-hierarchical table, one record per auxiliary level (associated
//     images, position buffers, ...), whose records are a single page holding
//     one (file, position, length) triple, or the EmptySectionMagic sentinel.
//
// Basic usage:
//
//	r := index.NewReader(f)
//	hdr, err := r.Header(len(slideID))
//	entry, ok, err := r.NonHier(hdr.NonHierRoot(), record)
//	for tile, err := range r.Tiles(hdr.HierRoot(), level, imagesX) {
//	    ...
//	}
//
// Every structural assertion failure is fatal for the record being decoded;
// nothing is skipped or repaired.
package index
