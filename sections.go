package mirax

import (
	"github.com/arloliu/mirax/index"
)

// SectionLayer is one non-hierarchical layer with its decoded records.
type SectionLayer struct {
	Name   string
	Levels []SectionLevel
}

// SectionLevel is one decoded non-hierarchical level.
type SectionLevel struct {
	Name   string
	Record Record
}

// NonHierSections decodes the record of every non-hierarchical level, in
// configuration order.
func (s *Slide) NonHierSections() ([]SectionLayer, error) {
	layers := make([]SectionLayer, 0, len(s.nonHier.Layers))
	err := s.withIndex(func(r *index.Reader) error {
		for _, layer := range s.nonHier.Layers {
			sl := SectionLayer{Name: layer.Name, Levels: make([]SectionLevel, 0, len(layer.Levels))}
			for _, lv := range layer.Levels {
				rec, err := s.decodeRecord(r, lv.Record)
				if err != nil {
					return err
				}
				sl.Levels = append(sl.Levels, SectionLevel{Name: lv.Name, Record: rec})
			}
			layers = append(layers, sl)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return layers, nil
}
