package output

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/yonasBSD/hacker-news/hn"
)

var storyTableHeader = []string{"#", "Score", "Title", "URL", "Author"}

// newTable creates a borderless, left-aligned table on w.
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
}

// StoryTable prints stories as a table. Text posts show "-" in the URL column.
func (p *Printer) StoryTable(stories []hn.Story) {
	rows := make([][]string, len(stories))
	for i, s := range stories {
		url := s.URL
		if url == "" {
			url = "-"
		}
		rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(s.Score), s.Title, url, s.Author}
	}

	table := newTable(p.out)
	table.Header(storyTableHeader)
	table.Bulk(rows)
	table.Render()
}
