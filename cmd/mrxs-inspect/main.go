// Command mrxs-inspect prints and extracts the structure of MIRAX slides.
//
// Usage:
//
//	mrxs-inspect dump CMU-1.mrxs
//	mrxs-inspect export CMU-1.mrxs -o cmu-1.yaml.zst --compression zstd
//	mrxs-inspect tiles CMU-1.mrxs --level 3
//	mrxs-inspect extract CMU-1.mrxs --image label -o label.jpg
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"github.com/arloliu/mirax"
)

// inspector holds state shared by all commands.
type inspector struct {
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer

	logLevel *string
	logger   log.Logger
}

func newApplication(fs afero.Fs, stdout, stderr io.Writer) *kingpin.Application {
	in := &inspector{
		fs:     fs,
		stdout: stdout,
		stderr: stderr,
		logger: log.NewNopLogger(),
	}

	app := kingpin.New("mrxs-inspect", "Inspect the index structure of MIRAX whole-slide images.")
	app.ErrorWriter(stderr)
	app.UsageWriter(stderr)
	app.HelpFlag.Short('h')
	in.logLevel = app.Flag("log.level", "Only log messages with the given severity or above.").
		Default("warn").Enum("debug", "info", "warn", "error")
	app.PreAction(in.setupLogger)

	addDumpCommand(app, in)
	addExportCommand(app, in)
	addTilesCommand(app, in)
	addExtractCommand(app, in)

	return app
}

func (in *inspector) setupLogger(*kingpin.ParseContext) error {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(in.stderr))
	logger = level.NewFilter(logger, levelOption(*in.logLevel))
	in.logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	return nil
}

func levelOption(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "info":
		return level.AllowInfo()
	case "error":
		return level.AllowError()
	default:
		return level.AllowWarn()
	}
}

func (in *inspector) open(path string) (*mirax.Slide, error) {
	return mirax.Open(path, mirax.WithFs(in.fs), mirax.WithLogger(in.logger))
}

func main() {
	app := newApplication(afero.NewOsFs(), os.Stdout, os.Stderr)
	kingpin.MustParse(app.Parse(os.Args[1:]))
}
