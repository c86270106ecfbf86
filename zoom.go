package mirax

import (
	"fmt"

	"github.com/arloliu/mirax/endian"
)

// ZoomLevel is the geometry of one level of the tile pyramid.
type ZoomLevel struct {
	Name    string
	Section string
	// Record is the level's hierarchical record number.
	Record       int
	ConcatFactor int
	ImageFormat  string
	Width        int
	Height       int
	OverlapX     float64
	OverlapY     float64
	// Background is the fill color as 0xRRGGBB.
	Background uint32
}

// ZoomLevels returns the levels of the zoom layer in configuration order.
// Every key is required.
func (s *Slide) ZoomLevels() ([]ZoomLevel, error) {
	levels := make([]ZoomLevel, 0, len(s.zoomLayer.Levels))
	for i := range s.zoomLayer.Levels {
		zl, err := s.zoomLevel(i)
		if err != nil {
			return nil, fmt.Errorf("zoom level %d: %w", i, err)
		}
		levels = append(levels, zl)
	}

	return levels, nil
}

// ZoomLevelCount returns the number of zoom levels.
func (s *Slide) ZoomLevelCount() int {
	return len(s.zoomLayer.Levels)
}

func (s *Slide) zoomLevel(i int) (ZoomLevel, error) {
	lv, err := s.zoomLayer.LevelAt(i)
	if err != nil {
		return ZoomLevel{}, err
	}

	zl := ZoomLevel{Name: lv.Name, Section: lv.Section, Record: lv.Record}
	sec := lv.Section

	if zl.ConcatFactor, err = s.dat.GetInt(sec, "IMAGE_CONCAT_FACTOR"); err != nil {
		return ZoomLevel{}, err
	}
	if zl.ImageFormat, err = s.dat.GetString(sec, "IMAGE_FORMAT"); err != nil {
		return ZoomLevel{}, err
	}
	if zl.Width, err = s.dat.GetInt(sec, "DIGITIZER_WIDTH"); err != nil {
		return ZoomLevel{}, err
	}
	if zl.Height, err = s.dat.GetInt(sec, "DIGITIZER_HEIGHT"); err != nil {
		return ZoomLevel{}, err
	}
	if zl.OverlapX, err = s.dat.GetFloat(sec, "OVERLAP_X"); err != nil {
		return ZoomLevel{}, err
	}
	if zl.OverlapY, err = s.dat.GetFloat(sec, "OVERLAP_Y"); err != nil {
		return ZoomLevel{}, err
	}

	fill, err := s.dat.GetInt(sec, "IMAGE_FILL_COLOR_BGR")
	if err != nil {
		return ZoomLevel{}, err
	}
	zl.Background = endian.SwapBGR(uint32(fill))

	return zl, nil
}
