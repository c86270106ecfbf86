package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/arloliu/mirax/format"
)

// extractCommand copies the raw bytes of an associated image.
type extractCommand struct {
	in     *inspector
	slide  *string
	image  *string
	output *string
}

func (cmd *extractCommand) run(*kingpin.ParseContext) error {
	kind, ok := format.ParseAssociatedKind(*cmd.image)
	if !ok {
		return fmt.Errorf("unknown associated image %q", *cmd.image)
	}

	slide, err := cmd.in.open(*cmd.slide)
	if err != nil {
		return err
	}

	img, ok, err := slide.AssociatedImage(kind)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: no %s image", *cmd.slide, kind)
	}
	if img.Record.Empty {
		return fmt.Errorf("%s: %s image section is empty", *cmd.slide, kind)
	}

	data, err := slide.ReadRange(img.Record.Entry)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(cmd.in.fs, *cmd.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s image: %w", kind, err)
	}
	fmt.Fprintf(cmd.in.stdout, "%s: %s %s image, %s\n", *cmd.output, img.Format, kind, humanize.Bytes(uint64(len(data))))

	return nil
}

func addExtractCommand(app *kingpin.Application, in *inspector) {
	cmd := &extractCommand{in: in}
	extract := app.Command("extract", "Write the raw bytes of an associated image.").Action(cmd.run)
	cmd.slide = extract.Arg("slide", "The .mrxs file.").Required().String()
	cmd.image = extract.Flag("image", "Associated image to extract.").Required().Enum("macro", "label", "thumbnail")
	cmd.output = extract.Flag("output", "Output file.").Short('o').Required().String()
}
