package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"gamefinder/internal/games"
	"gamefinder/internal/textutil"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const listColumnWidth = 36

type column struct {
	header string
	align  columnAlignment
	// wrap soft-wraps cells wider than listColumnWidth.
	wrap bool
}

var gameColumns = []column{
	{header: "Name"},
	{header: "Genres", wrap: true},
	{header: "Platforms", wrap: true},
	{header: "Rating", align: alignRight},
	{header: "Price", align: alignRight},
}

func renderGamesTable(list []games.Game) string {
	rows := make([][]string, 0, len(list))
	for _, game := range list {
		rows = append(rows, []string{
			game.Name,
			strings.Join(game.Genre, ", "),
			strings.Join(game.Platforms, ", "),
			formatRating(game.Rating),
			formatPrice(game.Price),
		})
	}
	footer := fmt.Sprintf("%d %s", len(list), textutil.Ternary(len(list) == 1, "game", "games"))
	return renderTable(gameColumns, rows, footer)
}

func renderTable(columns []column, rows [][]string, footer string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col.header
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	if footer != "" {
		f := make(table.Row, len(columns))
		f[0] = footer
		tw.AppendFooter(f)
	}

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       textutil.Ternary(col.align == alignRight, text.AlignRight, text.AlignLeft),
			AlignHeader: text.AlignLeft,
			AlignFooter: text.AlignLeft,
		}
		if col.wrap {
			cfg.WidthMax = listColumnWidth
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func formatRating(rating float64) string {
	if rating <= 0 {
		return "No Rating"
	}
	return fmt.Sprintf("%.1f", rating)
}

func formatPrice(price games.Price) string {
	return fmt.Sprintf("$%.2f", price.Float())
}
