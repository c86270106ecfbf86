package mirax

import (
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/format"
	"github.com/arloliu/mirax/index"
)

// positionSource names where the configuration describes one position map variant.
type positionSource struct {
	variant    format.PositionMapVariant
	layer      string
	level      string
	versionKey string
}

var positionSources = []positionSource{
	{format.PositionMapPlain, "VIMSLIDE_POSITION_BUFFER", "default", "VIMSLIDE_POSITION_DATA_FORMAT_VERSION"},
	{format.PositionMapCompressed, "StitchingIntensityLayer", "StitchingIntensityLevel", "COMPRESSSED_STITCHING_VERSION"},
}

// PositionMapInfo describes a position map present in the configuration.
type PositionMapInfo struct {
	Variant format.PositionMapVariant
	// Layer is the non-hierarchical layer holding the map.
	Layer   string
	Version string
	record  int
}

// PositionMap is a decoded position map.
type PositionMap struct {
	PositionMapInfo
	Record Record
	// Positions holds the non-empty records; nil when Record.Empty.
	Positions []index.Position
}

// PositionMapInfos lists the position maps the configuration describes,
// plain before compressed.
//
// The version key is looked up in the level section first, then in the layer
// section. A variant whose layer, level or version is missing is skipped.
func (s *Slide) PositionMapInfos() ([]PositionMapInfo, error) {
	infos := make([]PositionMapInfo, 0, len(positionSources))
	for _, src := range positionSources {
		layer, lv, err := s.nonHier.LookupLevel(src.layer, src.level)
		if errs.IsKeyNotFound(err) {
			level.Debug(s.logger).Log("msg", "position map not configured", "variant", src.variant.Key(), "err", err)
			continue
		}
		if err != nil {
			return nil, err
		}

		version, err := s.dat.GetString(lv.Section, src.versionKey)
		if errs.IsKeyNotFound(err) {
			version, err = s.dat.GetString(layer.Section, src.versionKey)
		}
		if errs.IsKeyNotFound(err) {
			level.Debug(s.logger).Log("msg", "position map has no version", "variant", src.variant.Key(), "err", err)
			continue
		}
		if err != nil {
			return nil, err
		}

		infos = append(infos, PositionMapInfo{
			Variant: src.variant,
			Layer:   src.layer,
			Version: version,
			record:  lv.Record,
		})
	}

	return infos, nil
}

// PositionMaps decodes every configured position map.
//
// The map's bytes are read from its data file and, for the compressed variant,
// inflated before decoding.
func (s *Slide) PositionMaps() ([]PositionMap, error) {
	infos, err := s.PositionMapInfos()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(infos))
	err = s.withIndex(func(r *index.Reader) error {
		for _, info := range infos {
			rec, err := s.decodeRecord(r, info.record)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	maps := make([]PositionMap, 0, len(infos))
	for i, info := range infos {
		pm := PositionMap{PositionMapInfo: info, Record: records[i]}
		if !pm.Record.Empty {
			if pm.Positions, err = s.decodePositions(info.Variant, pm.Record); err != nil {
				return nil, err
			}
		}
		maps = append(maps, pm)
	}

	return maps, nil
}

func (s *Slide) decodePositions(variant format.PositionMapVariant, rec Record) ([]index.Position, error) {
	stored, err := s.ReadRange(rec.Entry)
	if err != nil {
		return nil, fmt.Errorf("%s position map: %w", variant.Key(), err)
	}

	positions, err := index.DecodeStoredPositionMap(variant, stored, s.props.ImageDivisions, s.props.ImagesX)
	if err != nil {
		return nil, err
	}
	level.Debug(s.logger).Log("msg", "decoded position map", "variant", variant.Key(), "stored", len(stored), "positions", len(positions))

	return positions, nil
}
