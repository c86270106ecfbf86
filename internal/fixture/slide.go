package fixture

import (
	"fmt"
	"path"

	"github.com/spf13/afero"

	"github.com/arloliu/mirax/compress"
	"github.com/arloliu/mirax/section"
)

// Sample slide constants.
const (
	SampleMarker   = "/slides/sample.mrxs"
	SampleDir      = "/slides/sample"
	SampleVersion  = "01.02"
	SampleSlideID  = "0123abcd"
	SampleImagesX  = 4
	SampleImagesY  = 4
	SampleDivision = 2
)

// DataFile is one named data file of a container.
type DataFile struct {
	Name string
	Data []byte
}

// Slide is a synthetic container: a marker file, Slidedat.ini, an index file
// and data files, all below Dir.
type Slide struct {
	Marker    string
	Dir       string
	Ini       string
	IndexFile string
	Index     Index
	DataFiles []DataFile
}

// Write stores the container in fs.
func (s *Slide) Write(fs afero.Fs) error {
	if err := fs.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}

	files := map[string][]byte{
		s.Marker:                         nil,
		path.Join(s.Dir, "Slidedat.ini"): []byte(s.Ini),
		path.Join(s.Dir, s.IndexFile):    s.Index.Bytes(),
	}
	for _, df := range s.DataFiles {
		files[path.Join(s.Dir, df.Name)] = df.Data
	}

	for name, data := range files {
		if err := afero.WriteFile(fs, name, data, 0o644); err != nil {
			return err
		}
	}

	return nil
}

// Tile is one stored tile of the sample slide.
type Tile struct {
	ImageIndex int
	FileIndex  int
	Data       []byte
}

// Sample is a small but complete slide: two zoom levels, three associated image
// slots (the thumbnail is empty) and both position map variants.
//
// Non-hierarchical records are numbered macro 0, label 1, thumbnail 2,
// position buffer 3, stitching buffer 4.
type Sample struct {
	Slide

	Macro []byte
	Label []byte
	// Positions is the plain position buffer; Stitching is stored zlib-compressed.
	Positions []section.PositionRecord
	Stitching []section.PositionRecord
	// Tiles lists the tiles of each zoom level in chain order.
	Tiles [][]Tile
}

// levelPages splits the tiles of each level into index pages.
var levelPages = [][][]int{
	{{0, 1, 5}, {10, 15}},
	{{0, 2}},
}

// NewSample builds the sample slide.
func NewSample() (*Sample, error) {
	s := &Sample{
		Macro: []byte("MACRO-IMAGE-DATA"),
		Label: []byte("LABEL-PNG"),
		Positions: []section.PositionRecord{
			{Flag: 1, X: 10, Y: 20},
			{},
			{Flag: 1, X: -5, Y: 7},
			{X: 3},
		},
		Stitching: []section.PositionRecord{
			{Flag: 1, X: 100, Y: 200},
			{Flag: 1, X: 101, Y: 201},
			{},
			{},
		},
	}

	var data0, data1 []byte
	nonHier := make([]*section.NonHierPage, 5)

	nonHier[0] = appendRecord(&data0, 0, s.Macro)
	nonHier[1] = appendRecord(&data0, 0, s.Label)
	nonHier[3] = appendRecord(&data0, 0, encodePositions(s.Positions))

	stitching, err := compress.NewZlibCompressor().Compress(encodePositions(s.Stitching))
	if err != nil {
		return nil, err
	}
	nonHier[4] = appendRecord(&data1, 1, stitching)

	hier := make([][][]section.HierEntry, len(levelPages))
	s.Tiles = make([][]Tile, len(levelPages))
	for level, pages := range levelPages {
		data := &data0
		if level > 0 {
			data = &data1
		}

		for _, images := range pages {
			entries := make([]section.HierEntry, 0, len(images))
			for _, img := range images {
				tile := Tile{
					ImageIndex: img,
					FileIndex:  min(level, 1),
					Data:       []byte(fmt.Sprintf("tile-%d-%d", level, img)),
				}
				rec := appendRecord(data, int32(tile.FileIndex), tile.Data)
				entries = append(entries, section.HierEntry{
					ImageIndex: int32(img),
					Position:   rec.Position,
					Length:     rec.Length,
					FileIndex:  rec.FileIndex,
				})
				s.Tiles[level] = append(s.Tiles[level], tile)
			}
			hier[level] = append(hier[level], entries)
		}
	}

	s.Slide = Slide{
		Marker:    SampleMarker,
		Dir:       SampleDir,
		Ini:       sampleIni,
		IndexFile: "Index.dat",
		Index: Index{
			Header:  section.IndexHeader{Version: SampleVersion, SlideID: SampleSlideID},
			Hier:    hier,
			NonHier: nonHier,
		},
		DataFiles: []DataFile{
			{Name: "Data0000.dat", Data: data0},
			{Name: "Data0001.dat", Data: data1},
		},
	}

	return s, nil
}

func appendRecord(data *[]byte, fileIndex int32, payload []byte) *section.NonHierPage {
	page := &section.NonHierPage{
		Position:  uint32(len(*data)),
		Length:    uint32(len(payload)),
		FileIndex: fileIndex,
	}
	*data = append(*data, payload...)

	return page
}

func encodePositions(recs []section.PositionRecord) []byte {
	b := make([]byte, 0, len(recs)*section.PositionRecordSize)
	for _, r := range recs {
		b = append(b, r.Bytes()...)
	}

	return b
}

const sampleIni = "\ufeff[GENERAL]\r\n" + `SLIDE_VERSION = 01.02
SLIDE_ID = 0123abcd
SLIDE_TYPE = Brightfield
IMAGENUMBER_X = 4
IMAGENUMBER_Y = 4
CameraImageDivisionsPerSide = 2

[DATAFILE]
FILE_COUNT = 2
FILE_0 = Data0000.dat
FILE_1 = Data0001.dat

[HIERARCHICAL]
INDEXFILE = Index.dat
HIER_COUNT = 1
HIER_0_NAME = Slide zoom level
HIER_0_SECTION = LAYER_0_SECTION
HIER_0_COUNT = 2
HIER_0_VAL_0 = ZoomLevel_0
HIER_0_VAL_0_SECTION = LAYER_0_LEVEL_0_SECTION
HIER_0_VAL_1 = ZoomLevel_1
HIER_0_VAL_1_SECTION = LAYER_0_LEVEL_1_SECTION
NONHIER_COUNT = 3
NONHIER_0_NAME = Scan data layer
NONHIER_0_SECTION = NONHIER_0_SECTION
NONHIER_0_COUNT = 3
NONHIER_0_VAL_0 = ScanDataLayer_SlideThumbnail
NONHIER_0_VAL_0_SECTION = NONHIER_0_VAL_0_SECTION
NONHIER_0_VAL_1 = ScanDataLayer_SlideBarcode
NONHIER_0_VAL_1_SECTION = NONHIER_0_VAL_1_SECTION
NONHIER_0_VAL_2 = ScanDataLayer_SlidePreview
NONHIER_0_VAL_2_SECTION = NONHIER_0_VAL_2_SECTION
NONHIER_1_NAME = VIMSLIDE_POSITION_BUFFER
NONHIER_1_SECTION = NONHIER_1_SECTION
NONHIER_1_COUNT = 1
NONHIER_1_VAL_0 = default
NONHIER_1_VAL_0_SECTION = NONHIER_1_VAL_0_SECTION
NONHIER_2_NAME = StitchingIntensityLayer
NONHIER_2_SECTION = NONHIER_2_SECTION
NONHIER_2_COUNT = 1
NONHIER_2_VAL_0 = StitchingIntensityLevel
NONHIER_2_VAL_0_SECTION = NONHIER_2_VAL_0_SECTION

[LAYER_0_LEVEL_0_SECTION]
IMAGE_CONCAT_FACTOR = 0
IMAGE_FORMAT = JPEG
DIGITIZER_WIDTH = 1024
DIGITIZER_HEIGHT = 768
OVERLAP_X = 10.5
OVERLAP_Y = 8.25
IMAGE_FILL_COLOR_BGR = 1122867

[LAYER_0_LEVEL_1_SECTION]
IMAGE_CONCAT_FACTOR = 1
IMAGE_FORMAT = JPEG
DIGITIZER_WIDTH = 512
DIGITIZER_HEIGHT = 384
OVERLAP_X = 0
OVERLAP_Y = 0
IMAGE_FILL_COLOR_BGR = 16777215

[NONHIER_0_VAL_0_SECTION]
THUMBNAIL_IMAGE_TYPE = JPEG

[NONHIER_0_VAL_1_SECTION]
BARCODE_IMAGE_TYPE = PNG

[NONHIER_0_VAL_2_SECTION]
PREVIEW_IMAGE_TYPE = JPEG

[NONHIER_1_SECTION]
VIMSLIDE_POSITION_DATA_FORMAT_VERSION = 1

[NONHIER_1_VAL_0_SECTION]

[NONHIER_2_VAL_0_SECTION]
COMPRESSSED_STITCHING_VERSION = 2
`
