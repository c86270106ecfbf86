package mirax

import (
	"fmt"
	"path/filepath"

	"github.com/arloliu/mirax/index"
	"github.com/arloliu/mirax/report"
)

// Report writes the full slide structure to sink.
//
// Sections are emitted in a fixed order: slide properties, position map
// descriptors, index header, associated images, zoom levels, every
// non-hierarchical section, slide positions and finally the tiles of each
// zoom level. The first error aborts the report; entries already written stay
// in the sink.
func (s *Slide) Report(sink report.Sink) error {
	p := s.props
	sink.Put("Slide version", p.SlideVersion)
	sink.Put("Slide ID", p.SlideID)
	sink.Put("Slide type", p.SlideType)
	sink.Put("Images in X", p.ImagesX)
	sink.Put("Images in Y", p.ImagesY)
	sink.Put("Image divisions per side", p.ImageDivisions)

	infos, err := s.PositionMapInfos()
	if err != nil {
		return err
	}
	for _, info := range infos {
		c := sink.Child("Position map")
		c.Put("Type", info.Layer)
		c.Put("Version", info.Version)
	}

	sink.Put("Index version", s.header.Version)
	sink.Put("Index ID", s.header.SlideID)

	if err := s.reportAssociated(sink.Child("Associated images")); err != nil {
		return err
	}

	if err := s.reportZoomLevels(sink.Child("Zoom levels")); err != nil {
		return err
	}

	if err := s.reportSections(sink.Child("Nonhierarchical sections")); err != nil {
		return err
	}

	if err := s.reportPositions(sink); err != nil {
		return err
	}

	images := sink.Child("Images")
	for i := range s.zoomLayer.Levels {
		if err := s.reportTiles(images.Child(fmt.Sprintf("Level %d", i)), i); err != nil {
			return err
		}
	}

	return nil
}

func reportRecord(sink report.Sink, rec Record) {
	sink.Put("Nonhier record", rec.Number)
	if rec.Empty {
		sink.Put("File", "None")
		return
	}
	sink.Put("File", filepath.Base(rec.DataFile))
	sink.Put("Position", rec.Position)
	sink.Put("Length", rec.Length)
}

func (s *Slide) reportAssociated(sink report.Sink) error {
	images, err := s.AssociatedImages()
	if err != nil {
		return err
	}

	for _, img := range images {
		c := sink.Child(img.Kind.String())
		reportRecord(c, img.Record)
		c.Put("Format", img.Format)
	}

	return nil
}

func (s *Slide) reportZoomLevels(sink report.Sink) error {
	levels, err := s.ZoomLevels()
	if err != nil {
		return err
	}

	for i, zl := range levels {
		c := sink.Child(fmt.Sprintf("Level %d", i))
		c.Put("Concat factor", zl.ConcatFactor)
		c.Put("Image format", zl.ImageFormat)
		c.Put("Image width", zl.Width)
		c.Put("Image height", zl.Height)
		c.Put("Overlap X", zl.OverlapX)
		c.Put("Overlap Y", zl.OverlapY)
		c.Put("Background", fmt.Sprintf("%x", zl.Background))
	}

	return nil
}

func (s *Slide) reportSections(sink report.Sink) error {
	layers, err := s.NonHierSections()
	if err != nil {
		return err
	}

	for _, layer := range layers {
		c := sink.Child(layer.Name)
		for _, lv := range layer.Levels {
			reportRecord(c.Child(lv.Name), lv.Record)
		}
	}

	return nil
}

func (s *Slide) reportPositions(sink report.Sink) error {
	maps, err := s.PositionMaps()
	if err != nil {
		return err
	}

	if len(maps) == 0 {
		sink.Put("Slide positions", "None")
		return nil
	}

	for _, pm := range maps {
		c := sink.Child("Slide positions")
		reportRecord(c, pm.Record)
		for _, p := range pm.Positions {
			c.Put(tileKey(p.X, p.Y), fmt.Sprintf("%8d x %8d  (%3d)", p.DX, p.DY, p.Flag))
		}
	}

	return nil
}

func (s *Slide) reportTiles(sink report.Sink, level int) error {
	for tile, err := range s.Tiles(level) {
		if err != nil {
			return err
		}

		sink.Put(tileKey(tile.X, tile.Y), tileValue(filepath.Base(s.dataFiles[tile.FileIndex]), tile))
	}

	return nil
}

func tileKey(x, y int) string {
	return fmt.Sprintf("Image %5d x %5d", x, y)
}

func tileValue(file string, tile index.TileLocation) string {
	return fmt.Sprintf("%s %10d + %10d", file, tile.Position, tile.Length)
}
