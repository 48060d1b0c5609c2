package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/icons"
	"github.com/MrSnakeDoc/golink/internal/index"
	"github.com/MrSnakeDoc/golink/internal/launcher"
	redisstore "github.com/MrSnakeDoc/golink/internal/store/redis"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// RenderLinks renders entries as a table with their resolved browser and
// profile.
func RenderLinks(entries []index.Entry, cfg *domain.Config, color bool) string {
	favicons := cfg.FaviconsEnabled()

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		target := launcher.ResolveTarget(e.Link, cfg)
		browser := ""
		if target.Application != "" {
			browser = launcher.ShortName(target.Application)
		}
		rows = append(rows, []string{
			icons.ForLink(e.Link, favicons).Glyph(),
			e.Link.Title,
			e.Link.URL,
			e.GroupTitle,
			browser,
			target.Profile,
			strings.Join(e.Link.Keywords, ", "),
		})
	}

	return renderTable(
		[]string{"", "Title", "URL", "Group", "Browser", "Profile", "Keywords"},
		rows, nil, color)
}

// RenderStats renders usage counters.
func RenderStats(stats []redisstore.UsageStat, color bool) string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		last := "never"
		if !s.LastOpened.IsZero() {
			last = s.LastOpened.Local().Format(time.DateTime)
		}
		rows = append(rows, []string{s.URL, strconv.FormatInt(s.Count, 10), last})
	}
	return renderTable(
		[]string{"URL", "Opens", "Last opened"},
		rows, []columnAlignment{alignLeft, alignRight, alignLeft}, color)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, color bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if color {
		tw.Style().Color.Header = text.Colors{text.Bold, text.FgHiMagenta}
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
