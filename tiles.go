package mirax

import (
	"fmt"
	"iter"
	"path/filepath"

	"github.com/go-kit/log/level"

	"github.com/arloliu/mirax/index"
	"github.com/arloliu/mirax/internal/collision"
	"github.com/arloliu/mirax/internal/hash"
)

// Tiles returns the tile locations of zoom level i in index order.
//
// The index file is opened when ranging starts and closed when the range ends.
// A structural error or a tile referring to an unknown data file is yielded
// once and ends the sequence.
func (s *Slide) Tiles(i int) iter.Seq2[index.TileLocation, error] {
	return func(yield func(index.TileLocation, error) bool) {
		lv, err := s.zoomLayer.LevelAt(i)
		if err != nil {
			yield(index.TileLocation{}, err)
			return
		}

		f, err := s.fs.Open(filepath.Join(s.dir, s.indexFile))
		if err != nil {
			yield(index.TileLocation{}, fmt.Errorf("open index file: %w", err))
			return
		}
		defer f.Close()

		r := index.NewReader(f, index.WithLogger(s.logger))
		for tile, err := range r.Tiles(s.header.HierRoot(), lv.Record, s.props.ImagesX) {
			if err == nil {
				_, err = s.dataFile(tile.FileIndex)
			}

			if err != nil {
				yield(index.TileLocation{}, fmt.Errorf("zoom level %d: %w", i, err))
				return
			}

			if !yield(tile, nil) {
				return
			}
		}
	}
}

// LevelTiles collects the tile locations of zoom level i.
func (s *Slide) LevelTiles(i int) ([]index.TileLocation, error) {
	var tiles []index.TileLocation
	for tile, err := range s.Tiles(i) {
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, tile)
	}

	return tiles, nil
}

// LevelSummary describes the tile-location table of one zoom level.
type LevelSummary struct {
	Tiles int
	// StoredBytes is the sum of all tile lengths.
	StoredBytes uint64
	// Duplicates lists tiles whose image index already appeared earlier in the table.
	Duplicates []collision.Duplicate
	// Digest is the xxHash64 of image index, data file name, position and
	// length of every tile in index order. It does not depend on where the
	// table is stored in the index file.
	Digest uint64
}

// SummarizeLevel walks the tiles of zoom level i once and summarizes them.
func (s *Slide) SummarizeLevel(i int) (LevelSummary, error) {
	var sum LevelSummary
	d := hash.New()
	tracker := collision.NewTracker()

	for tile, err := range s.Tiles(i) {
		if err != nil {
			return LevelSummary{}, err
		}

		if !tracker.Track(uint64(tile.ImageIndex)) {
			level.Warn(s.logger).Log("msg", "duplicate tile", "level", i, "image", tile.ImageIndex, "x", tile.X, "y", tile.Y)
		}

		d.AddInt64(int64(tile.ImageIndex))
		d.AddString(s.dataFiles[tile.FileIndex])
		d.AddUint32(tile.Position)
		d.AddUint32(tile.Length)
		sum.StoredBytes += uint64(tile.Length)
	}

	sum.Tiles = tracker.Count()
	sum.Duplicates = tracker.Duplicates()
	sum.Digest = d.Sum64()

	return sum, nil
}

// DataFileName returns the name of the data file with the given index.
func (s *Slide) DataFileName(fileIndex int) (string, error) {
	return s.dataFile(fileIndex)
}
