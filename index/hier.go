package index

import (
	"fmt"
	"iter"

	"github.com/go-kit/log/level"

	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/internal/collision"
	"github.com/arloliu/mirax/section"
)

// maxPreallocTiles bounds the slice capacity reserved from an untrusted entry count.
const maxPreallocTiles = 4096

// TileLocation is one decoded tile entry of a zoom level.
type TileLocation struct {
	Entry

	// ImageIndex is the raster index stored in the index file.
	ImageIndex int
	// X and Y are the tile coordinates: ImageIndex mod images_x, ImageIndex div images_x.
	X, Y int
}

// HierPage is one page of a hierarchical record chain.
type HierPage struct {
	// Position is where the page was read.
	Position int64
	// Next is the position of the following page, 0 on the last page.
	Next  int64
	Tiles []TileLocation
}

// HierWalker walks the page chain of one hierarchical record, one page per Next call.
//
// Usage mirrors bufio.Scanner:
//
//	w := r.Walk(root, level, imagesX)
//	for w.Next() {
//	    page := w.Page()
//	}
//	if err := w.Err(); err != nil { ... }
//
// A walker is single-use; start a new walk to traverse the chain again.
type HierWalker struct {
	r       *Reader
	root    int64
	record  int
	imagesX int

	started bool
	next    int64
	page    HierPage
	visited *collision.Tracker
	err     error
}

// Walk returns a walker over the page chain of a hierarchical record.
// No I/O happens until the first call to Next.
func (r *Reader) Walk(root int64, record, imagesX int) *HierWalker {
	return &HierWalker{
		r:       r,
		root:    root,
		record:  record,
		imagesX: imagesX,
		visited: collision.NewTracker(),
	}
}

// Next reads the next page. It returns false at the end of the chain or on error.
func (w *HierWalker) Next() bool {
	if w.err != nil {
		return false
	}

	if !w.started {
		w.started = true
		if w.imagesX <= 0 {
			w.err = fmt.Errorf("images per row %d: %w", w.imagesX, errs.ErrInvalidGeometry)
			return false
		}

		first, err := w.r.firstHierPage(w.root, w.record)
		if err != nil {
			w.err = err
			return false
		}
		w.next = first
	}

	if w.next == 0 {
		return false
	}

	if !w.visited.Track(uint64(w.next)) {
		w.err = fmt.Errorf("record %d, page %d: %w", w.record, w.next, errs.ErrPageCycle)
		return false
	}

	page, err := w.r.readHierPage(w.next, w.imagesX)
	if err != nil {
		w.err = fmt.Errorf("record %d: %w", w.record, err)
		return false
	}
	level.Debug(w.r.logger).Log("msg", "read hier page", "record", w.record, "page", page.Position, "entries", len(page.Tiles), "next", page.Next)

	w.page = page
	w.next = page.Next

	return true
}

// Page returns the page read by the last successful Next.
func (w *HierWalker) Page() HierPage {
	return w.page
}

// Err returns the first error encountered by the walk.
func (w *HierWalker) Err() error {
	return w.err
}

// Tiles returns every tile location of a hierarchical record in chain order.
//
// Each range over the sequence re-walks the chain from the record table. On a
// structural error the sequence yields a zero TileLocation with the error and stops.
func (r *Reader) Tiles(root int64, record, imagesX int) iter.Seq2[TileLocation, error] {
	return func(yield func(TileLocation, error) bool) {
		w := r.Walk(root, record, imagesX)
		for w.Next() {
			for _, tile := range w.Page().Tiles {
				if !yield(tile, nil) {
					return
				}
			}
		}

		if err := w.Err(); err != nil {
			yield(TileLocation{}, err)
		}
	}
}

// firstHierPage resolves a hierarchical record to the position of its first page, 0 if it has none.
func (r *Reader) firstHierPage(root int64, record int) (int64, error) {
	if _, err := r.listHead(root, record); err != nil {
		return 0, err
	}

	if err := r.br.ExpectInt32(0); err != nil {
		return 0, fmt.Errorf("list head of record %d: %w", record, err)
	}

	page, err := r.br.ReadInt32()
	if err != nil {
		return 0, fmt.Errorf("read first page of record %d: %w", record, err)
	}

	return int64(page), nil
}

func (r *Reader) readHierPage(pos int64, imagesX int) (HierPage, error) {
	if err := r.br.Seek(pos); err != nil {
		return HierPage{}, err
	}

	data, err := r.br.ReadExact(section.HierPageHeaderSize)
	if err != nil {
		return HierPage{}, fmt.Errorf("read page header at %d: %w", pos, err)
	}

	hdr, err := section.ParseHierPageHeader(data)
	if err != nil {
		return HierPage{}, err
	}

	if hdr.Count < 0 {
		return HierPage{}, fmt.Errorf("negative entry count %d at %d: %w", hdr.Count, pos, errs.ErrUnexpectedValue)
	}

	page := HierPage{
		Position: pos,
		Next:     int64(hdr.Next),
		Tiles:    make([]TileLocation, 0, min(int(hdr.Count), maxPreallocTiles)),
	}

	for i := range int(hdr.Count) {
		data, err := r.br.ReadExact(section.HierEntrySize)
		if err != nil {
			return HierPage{}, fmt.Errorf("read entry %d of page %d: %w", i, pos, err)
		}

		e, err := section.ParseHierEntry(data)
		if err != nil {
			return HierPage{}, err
		}

		if e.ImageIndex < 0 {
			return HierPage{}, fmt.Errorf("negative image index %d in entry %d of page %d: %w", e.ImageIndex, i, pos, errs.ErrUnexpectedValue)
		}

		x, y := e.TileXY(imagesX)
		page.Tiles = append(page.Tiles, TileLocation{
			Entry: Entry{
				FileIndex: int(e.FileIndex),
				Position:  e.Position,
				Length:    e.Length,
			},
			ImageIndex: int(e.ImageIndex),
			X:          x,
			Y:          y,
		})
	}

	return page, nil
}
