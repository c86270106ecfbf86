package slidedat

import (
	"fmt"

	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/format"
)

// TreeKeys names the keys that describe one layer/level tree.
//
// Templates take the layer number and, for level keys, the level number.
type TreeKeys struct {
	Kind         format.TreeKind
	Section      string
	LayerCount   string
	LayerName    string
	LayerSection string
	LevelCount   string
	LevelName    string
	LevelSection string
}

var (
	// HierKeys describes the zoom pyramid tree.
	HierKeys = TreeKeys{
		Kind:         format.TreeHierarchical,
		Section:      "HIERARCHICAL",
		LayerCount:   "HIER_COUNT",
		LayerName:    "HIER_%d_NAME",
		LayerSection: "HIER_%d_SECTION",
		LevelCount:   "HIER_%d_COUNT",
		LevelName:    "HIER_%d_VAL_%d",
		LevelSection: "HIER_%d_VAL_%d_SECTION",
	}

	// NonHierKeys describes the auxiliary data tree.
	NonHierKeys = TreeKeys{
		Kind:         format.TreeNonHierarchical,
		Section:      "HIERARCHICAL",
		LayerCount:   "NONHIER_COUNT",
		LayerName:    "NONHIER_%d_NAME",
		LayerSection: "NONHIER_%d_SECTION",
		LevelCount:   "NONHIER_%d_COUNT",
		LevelName:    "NONHIER_%d_VAL_%d",
		LevelSection: "NONHIER_%d_VAL_%d_SECTION",
	}
)

// Level is one leaf of a tree.
//
// Record is the level's position among all levels of the tree, counted in
// enumeration order starting at zero; it selects the level's slot in the
// index file's record table.
type Level struct {
	ID      int
	Name    string
	Section string
	Record  int
}

// Layer is a named group of levels.
type Layer struct {
	ID      int
	Name    string
	Section string
	Levels  []Level

	byName map[string]int
}

// Tree is an enumerated layer/level tree.
type Tree struct {
	Kind    format.TreeKind
	Layers  []*Layer
	records int
	byName  map[string]int
}

// LoadTree enumerates the tree described by keys.
//
// Layers and levels are visited in ascending order and every level is given the
// next record number. Duplicate names resolve to the last occurrence.
func LoadTree(f *File, keys TreeKeys) (*Tree, error) {
	layerCount, err := f.GetInt(keys.Section, keys.LayerCount)
	if err != nil {
		return nil, err
	}

	tree := &Tree{
		Kind:   keys.Kind,
		Layers: make([]*Layer, 0, max(layerCount, 0)),
		byName: make(map[string]int, max(layerCount, 0)),
	}

	for l := 0; l < layerCount; l++ {
		layer, err := loadLayer(f, keys, l, &tree.records)
		if err != nil {
			return nil, err
		}

		tree.byName[layer.Name] = len(tree.Layers)
		tree.Layers = append(tree.Layers, layer)
	}

	return tree, nil
}

func loadLayer(f *File, keys TreeKeys, id int, records *int) (*Layer, error) {
	name, err := f.GetString(keys.Section, fmt.Sprintf(keys.LayerName, id))
	if err != nil {
		return nil, err
	}

	section, err := f.GetString(keys.Section, fmt.Sprintf(keys.LayerSection, id))
	if err != nil {
		return nil, err
	}

	levelCount, err := f.GetInt(keys.Section, fmt.Sprintf(keys.LevelCount, id))
	if err != nil {
		return nil, err
	}

	layer := &Layer{
		ID:      id,
		Name:    name,
		Section: section,
		Levels:  make([]Level, 0, max(levelCount, 0)),
		byName:  make(map[string]int, max(levelCount, 0)),
	}

	for v := 0; v < levelCount; v++ {
		levelName, err := f.GetString(keys.Section, fmt.Sprintf(keys.LevelName, id, v))
		if err != nil {
			return nil, err
		}

		levelSection, err := f.GetString(keys.Section, fmt.Sprintf(keys.LevelSection, id, v))
		if err != nil {
			return nil, err
		}

		layer.byName[levelName] = len(layer.Levels)
		layer.Levels = append(layer.Levels, Level{
			ID:      v,
			Name:    levelName,
			Section: levelSection,
			Record:  *records,
		})
		*records++
	}

	return layer, nil
}

// RecordCount returns the number of levels in the tree.
func (t *Tree) RecordCount() int {
	return t.records
}

// Layer returns the layer with the given name.
func (t *Tree) Layer(name string) (*Layer, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, &errs.KeyNotFoundError{Section: t.Kind.String(), Key: name}
	}

	return t.Layers[i], nil
}

// Level returns the level with the given name.
func (l *Layer) Level(name string) (*Level, error) {
	i, ok := l.byName[name]
	if !ok {
		return nil, &errs.KeyNotFoundError{Section: l.Name, Key: name}
	}

	return &l.Levels[i], nil
}

// LevelAt returns the level with the given position.
func (l *Layer) LevelAt(i int) (*Level, error) {
	if i < 0 || i >= len(l.Levels) {
		return nil, fmt.Errorf("layer %q: level %d out of range [0, %d)", l.Name, i, len(l.Levels))
	}

	return &l.Levels[i], nil
}

// LookupLevel resolves a layer and level by name.
func (t *Tree) LookupLevel(layer, level string) (*Layer, *Level, error) {
	ly, err := t.Layer(layer)
	if err != nil {
		return nil, nil, err
	}

	lv, err := ly.Level(level)
	if err != nil {
		return nil, nil, err
	}

	return ly, lv, nil
}
