// Package mirax decodes the structure of MIRAX whole-slide images.
//
// A MIRAX slide is a marker file (slide.mrxs) next to a directory of the same
// base name holding Slidedat.ini, a binary index file and a set of data files.
// The index file locates every stored object: the associated images, the tiles
// of each zoom level and the stage position maps. This package reads the
// configuration, walks the index and hands back byte ranges in the data files;
// it never decodes pixel data.
//
// # Basic Usage
//
//	slide, err := mirax.Open("/data/CMU-1.mrxs")
//	if err != nil {
//	    return err
//	}
//
//	levels, _ := slide.ZoomLevels()
//	for tile, err := range slide.Tiles(0) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(tile.X, tile.Y, tile.Length)
//	}
//
// Printing the whole structure:
//
//	err := slide.Report(report.NewTextSink(os.Stdout))
//
// # Package Structure
//
//   - section: fixed binary layouts of the index file
//   - index: record locator, page walker and position map decoder
//   - slidedat: Slidedat.ini access and layer/level enumeration
//   - report: text and YAML report sinks
//   - compress: codecs for compressed position maps and exported reports
//
// # Errors
//
// Structural problems in the index file surface as errs.ErrTruncatedRead or
// errs.ErrUnexpectedValue and abort the operation. Optional slide features
// (associated images, position maps) that the configuration does not describe
// are reported as absent rather than as errors.
package mirax

import (
	"fmt"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/index"
	"github.com/arloliu/mirax/internal/options"
	"github.com/arloliu/mirax/section"
	"github.com/arloliu/mirax/slidedat"
)

// Extension is the file extension of a MIRAX marker file.
const Extension = ".mrxs"

// ZoomLayerName is the hierarchical layer holding the tile pyramid.
const ZoomLayerName = "Slide zoom level"

// Slide is an opened MIRAX slide.
//
// Opening reads the configuration and the index header. Every accessor opens
// the files it needs and closes them before returning, so a Slide holds no
// open files.
type Slide struct {
	fs     afero.Fs
	logger log.Logger

	path      string
	dir       string
	dat       *slidedat.File
	props     Properties
	dataFiles []string
	indexFile string

	hier      *slidedat.Tree
	nonHier   *slidedat.Tree
	zoomLayer *slidedat.Layer
	header    section.IndexHeader
}

// Properties are the GENERAL values of Slidedat.ini.
type Properties struct {
	SlideVersion string
	SlideID      string
	// SlideType is "unknown" when the configuration does not name one.
	SlideType string
	ImagesX   int
	ImagesY   int
	// ImageDivisions is CameraImageDivisionsPerSide, 1 when absent.
	ImageDivisions int
}

// Open reads the slide whose marker file is path.
//
// Parameters:
//   - path: the .mrxs marker file; the slide directory is path without its extension
//   - opts: WithFs, WithLogger
//
// Returns:
//   - *Slide: the opened slide
//   - error: errs.ErrNotMirax for other extensions, configuration errors, or
//     structural errors reading the index header
func Open(path string, opts ...Option) (*Slide, error) {
	ext := filepath.Ext(path)
	if ext != Extension {
		return nil, fmt.Errorf("%s: %w", path, errs.ErrNotMirax)
	}

	s := &Slide{
		fs:     afero.NewOsFs(),
		logger: log.NewNopLogger(),
		path:   path,
		dir:    path[:len(path)-len(ext)],
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	dat, err := slidedat.Load(s.fs, filepath.Join(s.dir, slidedat.FileName))
	if err != nil {
		return nil, err
	}
	s.dat = dat

	if err := s.loadConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	err = s.withIndex(func(r *index.Reader) error {
		hdr, err := r.Header(len(s.props.SlideID))
		s.header = hdr

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if s.header.SlideID != s.props.SlideID {
		level.Warn(s.logger).Log("msg", "index slide ID differs from configuration", "index", s.header.SlideID, "config", s.props.SlideID)
	}
	level.Debug(s.logger).Log("msg", "opened slide", "path", path, "version", s.header.Version,
		"hier_records", s.hier.RecordCount(), "nonhier_records", s.nonHier.RecordCount())

	return s, nil
}

func (s *Slide) loadConfig() error {
	var err error
	p := &s.props

	if p.ImagesX, err = s.dat.GetInt("GENERAL", "IMAGENUMBER_X"); err != nil {
		return err
	}
	if p.ImagesY, err = s.dat.GetInt("GENERAL", "IMAGENUMBER_Y"); err != nil {
		return err
	}
	if p.SlideID, err = s.dat.GetString("GENERAL", "SLIDE_ID"); err != nil {
		return err
	}
	if p.SlideVersion, err = s.dat.GetString("GENERAL", "SLIDE_VERSION"); err != nil {
		return err
	}
	if p.SlideType, err = s.dat.GetStringDefault("GENERAL", "SLIDE_TYPE", "unknown"); err != nil {
		return err
	}
	if p.ImageDivisions, err = s.dat.GetIntDefault("GENERAL", "CameraImageDivisionsPerSide", 1); err != nil {
		return err
	}

	fileCount, err := s.dat.GetInt("DATAFILE", "FILE_COUNT")
	if err != nil {
		return err
	}
	s.dataFiles = make([]string, 0, max(fileCount, 0))
	for i := 0; i < fileCount; i++ {
		name, err := s.dat.GetString("DATAFILE", fmt.Sprintf("FILE_%d", i))
		if err != nil {
			return err
		}
		s.dataFiles = append(s.dataFiles, name)
	}

	if s.indexFile, err = s.dat.GetString("HIERARCHICAL", "INDEXFILE"); err != nil {
		return err
	}

	if s.hier, err = slidedat.LoadTree(s.dat, slidedat.HierKeys); err != nil {
		return err
	}
	if s.zoomLayer, err = s.hier.Layer(ZoomLayerName); err != nil {
		return err
	}
	if s.nonHier, err = slidedat.LoadTree(s.dat, slidedat.NonHierKeys); err != nil {
		return err
	}

	return nil
}

// withIndex opens the index file for the duration of fn.
func (s *Slide) withIndex(fn func(r *index.Reader) error) error {
	f, err := s.fs.Open(filepath.Join(s.dir, s.indexFile))
	if err != nil {
		return fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	return fn(index.NewReader(f, index.WithLogger(s.logger)))
}

// Path returns the marker file path the slide was opened with.
func (s *Slide) Path() string {
	return s.path
}

// Properties returns the GENERAL values of the configuration.
func (s *Slide) Properties() Properties {
	return s.props
}

// IndexHeader returns the version and slide ID stored in the index file.
func (s *Slide) IndexHeader() section.IndexHeader {
	return s.header
}

// DataFiles returns the data file names in file-index order.
func (s *Slide) DataFiles() []string {
	return append([]string(nil), s.dataFiles...)
}

// Config returns the parsed Slidedat.ini.
func (s *Slide) Config() *slidedat.File {
	return s.dat
}
