// Package fixture builds synthetic MIRAX index files and slide containers for tests.
package fixture

import (
	"github.com/arloliu/mirax/endian"
	"github.com/arloliu/mirax/section"
)

var engine = endian.GetLittleEndianEngine()

// Index describes the records of a synthetic index file.
//
// Hier holds one page chain per hierarchical record, each page a list of entries;
// a record with no pages gets a zero first-page pointer. A nil NonHier entry is
// written as an empty section.
type Index struct {
	Header  section.IndexHeader
	Hier    [][][]section.HierEntry
	NonHier []*section.NonHierPage
}

// Layout records where Bytes placed each structure.
type Layout struct {
	HierTable    int64
	NonHierTable int64
	HierHeads    []int64
	HierPages    [][]int64
	NonHierHeads []int64
	NonHierPages []int64
}

// Bytes encodes the index file.
func (ix Index) Bytes() []byte {
	b, _ := ix.Build()
	return b
}

// Build encodes the index file and reports its layout.
//
// Structures are laid out in the order header, root pointers, hierarchical
// table, non-hierarchical table, hierarchical list heads and pages, then
// non-hierarchical list heads and pages.
func (ix Index) Build() ([]byte, Layout) {
	var lay Layout

	b := ix.Header.Bytes()
	root := len(b)
	b = append(b, make([]byte, 2*section.Int32Size)...)

	lay.HierTable = int64(len(b))
	b = append(b, make([]byte, len(ix.Hier)*section.TableEntrySize)...)
	lay.NonHierTable = int64(len(b))
	b = append(b, make([]byte, len(ix.NonHier)*section.TableEntrySize)...)

	put(b, root, lay.HierTable)
	put(b, root+section.NonHierRootOffset, lay.NonHierTable)

	for i, pages := range ix.Hier {
		head := len(b)
		lay.HierHeads = append(lay.HierHeads, int64(head))
		put(b, int(lay.HierTable)+i*section.TableEntrySize, int64(head))

		b = engine.AppendUint32(b, 0)
		b = engine.AppendUint32(b, 0)
		link := head + section.Int32Size

		var positions []int64
		for _, entries := range pages {
			pos := len(b)
			positions = append(positions, int64(pos))
			put(b, link, int64(pos))

			hdr := section.HierPageHeader{Count: int32(len(entries))}
			b = append(b, hdr.Bytes()...)
			link = pos + section.Int32Size
			for _, e := range entries {
				b = append(b, e.Bytes()...)
			}
		}
		lay.HierPages = append(lay.HierPages, positions)
	}

	for i, page := range ix.NonHier {
		head := len(b)
		lay.NonHierHeads = append(lay.NonHierHeads, int64(head))
		put(b, int(lay.NonHierTable)+i*section.TableEntrySize, int64(head))

		if page == nil {
			b = engine.AppendUint32(b, uint32(section.EmptySectionMagic))
			lay.NonHierPages = append(lay.NonHierPages, 0)

			continue
		}

		b = engine.AppendUint32(b, 0)
		b = engine.AppendUint32(b, uint32(len(b)+section.Int32Size))
		lay.NonHierPages = append(lay.NonHierPages, int64(len(b)))
		b = append(b, page.Bytes()...)
	}

	return b, lay
}

// PutInt32 overwrites the little-endian int32 at off.
func PutInt32(b []byte, off int64, v int32) {
	engine.PutUint32(b[off:], uint32(v))
}

func put(b []byte, off int, v int64) {
	engine.PutUint32(b[off:], uint32(v))
}
