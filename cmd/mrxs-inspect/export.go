package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"github.com/arloliu/mirax/compress"
	"github.com/arloliu/mirax/format"
	"github.com/arloliu/mirax/report"
)

// exportCommand writes the report of a slide as a YAML document.
type exportCommand struct {
	in          *inspector
	slide       *string
	output      *string
	compression *string
}

func (cmd *exportCommand) run(*kingpin.ParseContext) error {
	ct, ok := format.ParseCompressionType(*cmd.compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", *cmd.compression)
	}

	slide, err := cmd.in.open(*cmd.slide)
	if err != nil {
		return err
	}

	sink := report.NewTreeSink()
	if err := slide.Report(sink); err != nil {
		return err
	}

	doc, err := sink.Marshal()
	if err != nil {
		return err
	}

	data, stats, err := compress.CompressWithStats(ct, doc)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(cmd.in.fs, *cmd.output, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	level.Info(cmd.in.logger).Log("msg", "exported report", "output", *cmd.output,
		"compression", stats.Algorithm, "ratio", fmt.Sprintf("%.2f", stats.CompressionRatio()))

	fmt.Fprintf(cmd.in.stdout, "%s: %s -> %s (%s)\n", *cmd.output,
		humanize.Bytes(uint64(stats.OriginalSize)), humanize.Bytes(uint64(stats.CompressedSize)), stats.Algorithm)

	return nil
}

func addExportCommand(app *kingpin.Application, in *inspector) {
	cmd := &exportCommand{in: in}
	export := app.Command("export", "Write the slide structure as a YAML document.").Action(cmd.run)
	cmd.slide = export.Arg("slide", "The .mrxs file.").Required().String()
	cmd.output = export.Flag("output", "Output file.").Short('o').Required().String()
	cmd.compression = export.Flag("compression", "Compression applied to the document.").
		Default("none").Enum("none", "zstd", "s2", "lz4", "zlib")
}
