package mirax

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/format"
	"github.com/arloliu/mirax/index"
	"github.com/arloliu/mirax/internal/fixture"
	"github.com/arloliu/mirax/report"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeSample(t *testing.T, mutate ...func(*fixture.Sample)) (afero.Fs, *fixture.Sample) {
	t.Helper()

	sample, err := fixture.NewSample()
	require.NoError(t, err)
	for _, fn := range mutate {
		fn(sample)
	}

	fs := afero.NewMemMapFs()
	require.NoError(t, sample.Write(fs))

	return fs, sample
}

func openSample(t *testing.T, mutate ...func(*fixture.Sample)) (*Slide, *fixture.Sample) {
	t.Helper()

	fs, sample := writeSample(t, mutate...)
	slide, err := Open(fixture.SampleMarker, WithFs(fs))
	require.NoError(t, err)

	return slide, sample
}

func replaceIni(old, new string) func(*fixture.Sample) {
	return func(s *fixture.Sample) {
		s.Ini = strings.Replace(s.Ini, old, new, 1)
	}
}

func TestOpen(t *testing.T) {
	t.Run("Properties", func(t *testing.T) {
		slide, _ := openSample(t)

		require.Equal(t, Properties{
			SlideVersion:   fixture.SampleVersion,
			SlideID:        fixture.SampleSlideID,
			SlideType:      "Brightfield",
			ImagesX:        fixture.SampleImagesX,
			ImagesY:        fixture.SampleImagesY,
			ImageDivisions: fixture.SampleDivision,
		}, slide.Properties())
		require.Equal(t, fixture.SampleVersion, slide.IndexHeader().Version)
		require.Equal(t, fixture.SampleSlideID, slide.IndexHeader().SlideID)
		require.Equal(t, int64(13), slide.IndexHeader().HierRoot())
		require.Equal(t, []string{"Data0000.dat", "Data0001.dat"}, slide.DataFiles())
		require.Equal(t, fixture.SampleMarker, slide.Path())
		require.Equal(t, 2, slide.ZoomLevelCount())
	})

	t.Run("Defaults", func(t *testing.T) {
		slide, _ := openSample(t,
			replaceIni("SLIDE_TYPE = Brightfield\n", ""),
			replaceIni("CameraImageDivisionsPerSide = 2\n", ""),
		)

		require.Equal(t, "unknown", slide.Properties().SlideType)
		require.Equal(t, 1, slide.Properties().ImageDivisions)
	})

	t.Run("NotMirax", func(t *testing.T) {
		fs, _ := writeSample(t)
		_, err := Open("/slides/sample.svs", WithFs(fs))
		require.ErrorIs(t, err, errs.ErrNotMirax)
	})

	t.Run("MissingConfiguration", func(t *testing.T) {
		_, err := Open(fixture.SampleMarker, WithFs(afero.NewMemMapFs()))
		require.Error(t, err)
	})

	t.Run("MissingZoomLayer", func(t *testing.T) {
		fs, _ := writeSample(t, replaceIni("HIER_0_NAME = Slide zoom level", "HIER_0_NAME = Other"))
		_, err := Open(fixture.SampleMarker, WithFs(fs))
		require.ErrorIs(t, err, errs.ErrKeyNotFound)
	})

	t.Run("MissingRequiredKey", func(t *testing.T) {
		fs, _ := writeSample(t, replaceIni("IMAGENUMBER_X = 4\n", ""))
		_, err := Open(fixture.SampleMarker, WithFs(fs))
		require.ErrorIs(t, err, errs.ErrKeyNotFound)
	})

	t.Run("TruncatedIndex", func(t *testing.T) {
		fs, sample := writeSample(t)
		require.NoError(t, afero.WriteFile(fs, fixture.SampleDir+"/"+sample.IndexFile, []byte("01.02ab"), 0o644))

		_, err := Open(fixture.SampleMarker, WithFs(fs))
		require.ErrorIs(t, err, errs.ErrTruncatedRead)
	})

	t.Run("NilFs", func(t *testing.T) {
		_, err := Open(fixture.SampleMarker, WithFs(nil))
		require.Error(t, err)
	})
}

func TestAssociatedImages(t *testing.T) {
	t.Run("Sample", func(t *testing.T) {
		slide, sample := openSample(t)

		images, err := slide.AssociatedImages()
		require.NoError(t, err)
		require.Len(t, images, 3)

		require.Equal(t, format.AssociatedMacro, images[0].Kind)
		require.Equal(t, "JPEG", images[0].Format)
		require.Equal(t, 0, images[0].Record.Number)
		require.Equal(t, "Data0000.dat", images[0].Record.DataFile)
		data, err := slide.ReadRange(images[0].Record.Entry)
		require.NoError(t, err)
		require.Equal(t, sample.Macro, data)

		require.Equal(t, format.AssociatedLabel, images[1].Kind)
		require.Equal(t, "PNG", images[1].Format)
		data, err = slide.ReadRange(images[1].Record.Entry)
		require.NoError(t, err)
		require.Equal(t, sample.Label, data)

		require.Equal(t, format.AssociatedThumbnail, images[2].Kind)
		require.True(t, images[2].Record.Empty)
		require.Equal(t, 2, images[2].Record.Number)
	})

	t.Run("Lookup", func(t *testing.T) {
		slide, _ := openSample(t)

		img, ok, err := slide.AssociatedImage(format.AssociatedLabel)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, uint32(9), img.Record.Length)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		slide, _ := openSample(t,
			replaceIni("NONHIER_0_VAL_1 = ScanDataLayer_SlideBarcode", "NONHIER_0_VAL_1 = ScanDataLayer_Other"),
			replaceIni("THUMBNAIL_IMAGE_TYPE = JPEG\n", ""),
		)

		images, err := slide.AssociatedImages()
		require.NoError(t, err)
		require.Len(t, images, 1)
		require.Equal(t, format.AssociatedThumbnail, images[0].Kind)

		_, ok, err := slide.AssociatedImage(format.AssociatedMacro)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("FileIndexOutOfRange", func(t *testing.T) {
		slide, _ := openSample(t, func(s *fixture.Sample) {
			s.Index.NonHier[0].FileIndex = 9
		})

		_, err := slide.AssociatedImages()
		require.ErrorIs(t, err, errs.ErrFileIndexOutOfRange)
	})
}

func TestZoomLevels(t *testing.T) {
	slide, _ := openSample(t)

	levels, err := slide.ZoomLevels()
	require.NoError(t, err)
	require.Equal(t, []ZoomLevel{
		{
			Name:         "ZoomLevel_0",
			Section:      "LAYER_0_LEVEL_0_SECTION",
			Record:       0,
			ConcatFactor: 0,
			ImageFormat:  "JPEG",
			Width:        1024,
			Height:       768,
			OverlapX:     10.5,
			OverlapY:     8.25,
			Background:   0x332211,
		},
		{
			Name:         "ZoomLevel_1",
			Section:      "LAYER_0_LEVEL_1_SECTION",
			Record:       1,
			ConcatFactor: 1,
			ImageFormat:  "JPEG",
			Width:        512,
			Height:       384,
			Background:   0xffffff,
		},
	}, levels)

	t.Run("MissingKey", func(t *testing.T) {
		slide, _ := openSample(t, replaceIni("DIGITIZER_HEIGHT = 384\n", ""))

		_, err := slide.ZoomLevels()
		require.ErrorIs(t, err, errs.ErrKeyNotFound)
	})
}

func TestNonHierSections(t *testing.T) {
	slide, _ := openSample(t)

	layers, err := slide.NonHierSections()
	require.NoError(t, err)
	require.Len(t, layers, 3)

	require.Equal(t, "Scan data layer", layers[0].Name)
	require.Len(t, layers[0].Levels, 3)
	require.False(t, layers[0].Levels[0].Record.Empty)
	require.True(t, layers[0].Levels[2].Record.Empty)

	numbers := []int{}
	for _, layer := range layers {
		for _, lv := range layer.Levels {
			numbers = append(numbers, lv.Record.Number)
		}
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, numbers)

	require.Equal(t, "StitchingIntensityLevel", layers[2].Levels[0].Name)
	require.Equal(t, "Data0001.dat", layers[2].Levels[0].Record.DataFile)
}

func TestPositionMaps(t *testing.T) {
	t.Run("Sample", func(t *testing.T) {
		slide, _ := openSample(t)

		infos, err := slide.PositionMapInfos()
		require.NoError(t, err)
		require.Len(t, infos, 2)
		require.Equal(t, "VIMSLIDE_POSITION_BUFFER", infos[0].Layer)
		require.Equal(t, "1", infos[0].Version)
		require.Equal(t, "StitchingIntensityLayer", infos[1].Layer)
		require.Equal(t, "2", infos[1].Version)

		maps, err := slide.PositionMaps()
		require.NoError(t, err)
		require.Len(t, maps, 2)

		require.Equal(t, format.PositionMapPlain, maps[0].Variant)
		require.Equal(t, []index.Position{
			{X: 0, Y: 0, Flag: 1, DX: 10, DY: 20},
			{X: 0, Y: 2, Flag: 1, DX: -5, DY: 7},
			{X: 2, Y: 2, DX: 3},
		}, maps[0].Positions)

		require.Equal(t, format.PositionMapCompressed, maps[1].Variant)
		require.Equal(t, []index.Position{
			{X: 0, Y: 0, Flag: 1, DX: 100, DY: 200},
			{X: 2, Y: 0, Flag: 1, DX: 101, DY: 201},
		}, maps[1].Positions)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		slide, _ := openSample(t,
			replaceIni("VIMSLIDE_POSITION_DATA_FORMAT_VERSION = 1\n", ""),
			replaceIni("NONHIER_2_VAL_0 = StitchingIntensityLevel", "NONHIER_2_VAL_0 = Other"),
		)

		maps, err := slide.PositionMaps()
		require.NoError(t, err)
		require.Empty(t, maps)
	})

	t.Run("EmptySection", func(t *testing.T) {
		slide, _ := openSample(t, func(s *fixture.Sample) {
			s.Index.NonHier[3] = nil
		})

		maps, err := slide.PositionMaps()
		require.NoError(t, err)
		require.Len(t, maps, 2)
		require.True(t, maps[0].Record.Empty)
		require.Nil(t, maps[0].Positions)
	})

	t.Run("MalformedLength", func(t *testing.T) {
		slide, _ := openSample(t, func(s *fixture.Sample) {
			s.Index.NonHier[3].Length--
		})

		_, err := slide.PositionMaps()
		require.ErrorIs(t, err, errs.ErrMalformedLength)
	})
}

func TestTiles(t *testing.T) {
	slide, sample := openSample(t)

	for level, want := range sample.Tiles {
		tiles, err := slide.LevelTiles(level)
		require.NoError(t, err)
		require.Len(t, tiles, len(want))

		for i, tile := range tiles {
			require.Equal(t, want[i].ImageIndex, tile.ImageIndex)
			require.Equal(t, want[i].ImageIndex%fixture.SampleImagesX, tile.X)
			require.Equal(t, want[i].ImageIndex/fixture.SampleImagesX, tile.Y)
			require.Equal(t, want[i].FileIndex, tile.FileIndex)

			data, err := slide.ReadRange(tile.Entry)
			require.NoError(t, err)
			require.Equal(t, want[i].Data, data)
		}
	}

	t.Run("LevelOutOfRange", func(t *testing.T) {
		_, err := slide.LevelTiles(2)
		require.Error(t, err)
	})

	t.Run("Summary", func(t *testing.T) {
		s0, err := slide.SummarizeLevel(0)
		require.NoError(t, err)
		require.Equal(t, 5, s0.Tiles)
		require.Empty(t, s0.Duplicates)

		var stored uint64
		for _, tile := range sample.Tiles[0] {
			stored += uint64(len(tile.Data))
		}
		require.Equal(t, stored, s0.StoredBytes)

		again, err := slide.SummarizeLevel(0)
		require.NoError(t, err)
		require.Equal(t, s0.Digest, again.Digest)

		s1, err := slide.SummarizeLevel(1)
		require.NoError(t, err)
		require.Equal(t, 2, s1.Tiles)
		require.NotEqual(t, s0.Digest, s1.Digest)
	})

	t.Run("DuplicateTiles", func(t *testing.T) {
		slide, _ := openSample(t, func(s *fixture.Sample) {
			s.Index.Hier[0][1][1].ImageIndex = 1
		})

		sum, err := slide.SummarizeLevel(0)
		require.NoError(t, err)
		require.Len(t, sum.Duplicates, 1)
		require.Equal(t, uint64(1), sum.Duplicates[0].Key)
		require.Equal(t, 1, sum.Duplicates[0].First)
		require.Equal(t, 4, sum.Duplicates[0].Again)
	})

	t.Run("UnknownDataFile", func(t *testing.T) {
		slide, _ := openSample(t, func(s *fixture.Sample) {
			s.Index.Hier[0][1][0].FileIndex = 5
		})

		tiles, err := slide.LevelTiles(0)
		require.ErrorIs(t, err, errs.ErrFileIndexOutOfRange)
		require.Nil(t, tiles)
	})

	t.Run("Cycle", func(t *testing.T) {
		fs, sample := writeSample(t)
		b, lay := sample.Index.Build()
		pages := lay.HierPages[0]
		fixture.PutInt32(b, pages[1]+4, int32(pages[0]))
		require.NoError(t, afero.WriteFile(fs, fixture.SampleDir+"/"+sample.IndexFile, b, 0o644))

		slide, err := Open(fixture.SampleMarker, WithFs(fs))
		require.NoError(t, err)

		_, err = slide.LevelTiles(0)
		require.ErrorIs(t, err, errs.ErrPageCycle)
	})
}

func TestReadRange(t *testing.T) {
	slide, _ := openSample(t)

	_, err := slide.ReadRange(index.Entry{FileIndex: 2})
	require.ErrorIs(t, err, errs.ErrFileIndexOutOfRange)

	_, err = slide.ReadRange(index.Entry{FileIndex: -1})
	require.ErrorIs(t, err, errs.ErrFileIndexOutOfRange)

	_, err = slide.ReadRange(index.Entry{FileIndex: 0, Position: 1 << 20, Length: 4})
	require.ErrorIs(t, err, errs.ErrTruncatedRead)

	data, err := slide.ReadRange(index.Entry{FileIndex: 0, Position: 3, Length: 0})
	require.NoError(t, err)
	require.Empty(t, data)
	require.NotNil(t, data)
}

func line(depth int, key string, value any) string {
	return fmt.Sprintf("%s%-30s %s\n", strings.Repeat("  ", depth), key+":", report.FormatValue(value))
}

func header(depth int, name string) string {
	return strings.Repeat("  ", depth) + name + ":\n"
}

func TestReportText(t *testing.T) {
	slide, sample := openSample(t)

	var buf bytes.Buffer
	require.NoError(t, slide.Report(report.NewTextSink(&buf, report.WithColor(false))))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "Slide version:                 01.02\n"))

	for _, want := range []string{
		line(0, "Slide type", "Brightfield"),
		line(0, "Image divisions per side", 2),
		header(0, "Position map") + line(1, "Type", "VIMSLIDE_POSITION_BUFFER") + line(1, "Version", "1"),
		line(0, "Index version", "01.02") + line(0, "Index ID", "0123abcd"),
		header(0, "Associated images") + header(1, "macro") + line(2, "Nonhier record", 0) +
			line(2, "File", "Data0000.dat") + line(2, "Position", 0) + line(2, "Length", len(sample.Macro)) +
			line(2, "Format", "JPEG"),
		header(1, "thumbnail") + line(2, "Nonhier record", 2) + line(2, "File", "None") + line(2, "Format", "JPEG"),
		header(1, "Level 0") + line(2, "Concat factor", 0) + line(2, "Image format", "JPEG") +
			line(2, "Image width", 1024) + line(2, "Image height", 768) + line(2, "Overlap X", 10.5) +
			line(2, "Overlap Y", 8.25) + line(2, "Background", "332211"),
		header(0, "Nonhierarchical sections") + header(1, "Scan data layer") + header(2, "ScanDataLayer_SlideThumbnail"),
		line(1, "Image     2 x     2", "       3 x        0  (  0)"),
		line(1, "Image     2 x     0", "     101 x      201  (  1)"),
		header(0, "Images") + header(1, "Level 0") +
			line(2, "Image     0 x     0", fmt.Sprintf("Data0000.dat %10d + %10d", 61, 8)),
	} {
		require.Contains(t, out, want)
	}

	require.NotContains(t, out, "Slide positions:               None")
	require.Equal(t, 2, strings.Count(out, "Slide positions:\n"))
}

func TestReportNoPositions(t *testing.T) {
	slide, _ := openSample(t,
		replaceIni("NONHIER_1_NAME = VIMSLIDE_POSITION_BUFFER", "NONHIER_1_NAME = Other"),
		replaceIni("NONHIER_2_NAME = StitchingIntensityLayer", "NONHIER_2_NAME = Another"),
	)

	var buf bytes.Buffer
	require.NoError(t, slide.Report(report.NewTextSink(&buf, report.WithColor(false))))
	require.Contains(t, buf.String(), line(0, "Slide positions", "None"))
	require.NotContains(t, buf.String(), "Position map:")
}

func TestReportTree(t *testing.T) {
	slide, _ := openSample(t)

	sink := report.NewTreeSink()
	require.NoError(t, slide.Report(sink))

	out, err := sink.Marshal()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Equal(t, "01.02", doc["Slide version"])
	require.Equal(t, 4, doc["Images in X"])
	require.Contains(t, doc, "Slide positions")
	require.Contains(t, doc, "Slide positions #2")

	images := doc["Images"].(map[string]any)
	level1 := images["Level 1"].(map[string]any)
	require.Len(t, level1, 2)
}

func TestReportError(t *testing.T) {
	slide, _ := openSample(t, func(s *fixture.Sample) {
		s.Index.NonHier[4].Length = 3
	})

	var buf bytes.Buffer
	err := slide.Report(report.NewTextSink(&buf, report.WithColor(false)))
	require.Error(t, err)
	require.Contains(t, buf.String(), "Nonhierarchical sections:")
	require.NotContains(t, buf.String(), "Images:")
}
