package main

import (
	"github.com/alecthomas/kingpin/v2"

	"github.com/arloliu/mirax/report"
)

// dumpCommand prints the text report of a slide.
type dumpCommand struct {
	in      *inspector
	slide   *string
	noColor *bool
}

func (cmd *dumpCommand) run(*kingpin.ParseContext) error {
	slide, err := cmd.in.open(*cmd.slide)
	if err != nil {
		return err
	}

	opts := []report.TextOption{}
	if *cmd.noColor {
		opts = append(opts, report.WithColor(false))
	}

	sink := report.NewTextSink(cmd.in.stdout, opts...)
	if err := slide.Report(sink); err != nil {
		return err
	}

	return sink.Err()
}

func addDumpCommand(app *kingpin.Application, in *inspector) {
	cmd := &dumpCommand{in: in}
	dump := app.Command("dump", "Print the full structure of a slide.").Default().Action(cmd.run)
	cmd.slide = dump.Arg("slide", "The .mrxs file.").Required().String()
	cmd.noColor = dump.Flag("no-color", "Disable bold group headers.").Bool()
}
