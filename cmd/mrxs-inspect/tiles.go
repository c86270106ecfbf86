package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"

	"github.com/arloliu/mirax"
)

// tilesCommand lists the tile locations of zoom levels.
type tilesCommand struct {
	in    *inspector
	slide *string
	level *int
}

func (cmd *tilesCommand) run(*kingpin.ParseContext) error {
	slide, err := cmd.in.open(*cmd.slide)
	if err != nil {
		return err
	}

	levels := []int{*cmd.level}
	if *cmd.level < 0 {
		levels = levels[:0]
		for i := range slide.ZoomLevelCount() {
			levels = append(levels, i)
		}
	}

	for _, lv := range levels {
		if err := cmd.printLevel(slide, lv); err != nil {
			return err
		}
	}

	return nil
}

func (cmd *tilesCommand) printLevel(slide *mirax.Slide, lv int) error {
	out := cmd.in.stdout
	fmt.Fprintf(out, "Level %d:\n", lv)

	for tile, err := range slide.Tiles(lv) {
		if err != nil {
			return err
		}

		name, err := slide.DataFileName(tile.FileIndex)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\t%5d x %5d\t%s %10d\t%s\n", tile.X, tile.Y, name, tile.Position, humanize.Bytes(uint64(tile.Length)))
	}

	sum, err := slide.SummarizeLevel(lv)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\ttiles: %s, stored: %s, duplicates: %d, digest: %016x\n",
		humanize.Comma(int64(sum.Tiles)), humanize.Bytes(sum.StoredBytes), len(sum.Duplicates), sum.Digest)

	return nil
}

func addTilesCommand(app *kingpin.Application, in *inspector) {
	cmd := &tilesCommand{in: in}
	tiles := app.Command("tiles", "List the tile locations of a zoom level.").Action(cmd.run)
	cmd.slide = tiles.Arg("slide", "The .mrxs file.").Required().String()
	cmd.level = tiles.Flag("level", "Zoom level to list; -1 lists every level.").Default("0").Int()
}
