package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/yonasBSD/hacker-news/hn"
)

// Listing formats.
const (
	FormatList  = "list"
	FormatTable = "table"
)

const scoreWidth = 4

// Render writes stories in the given format, framed by the header and the
// completion line.
func (p *Printer) Render(format string, stories []hn.Story) error {
	switch format {
	case FormatList, "":
		p.Header()
		p.Stories(stories)
	case FormatTable:
		p.Header()
		p.StoryTable(stories)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	p.Done()
	return nil
}

// Header prints the banner line.
func (p *Printer) Header() {
	fmt.Fprintf(p.out, "\n%s\n", p.style(color.BgCyan, color.FgBlack, color.Bold).Sprint(" 🧡 Hacker News "))
}

// Done prints the completion line.
func (p *Printer) Done() {
	fmt.Fprintln(p.out, p.style(color.FgGreen, color.Bold).Sprint("Done!"))
}

// Stories prints one block per story, numbered from 1 in slice order.
func (p *Printer) Stories(stories []hn.Story) {
	if len(stories) == 0 {
		p.Print("%s", p.style(color.Faint).Sprint("No stories."))
		return
	}

	index := p.style(color.Faint)
	score := p.style(color.FgYellow, color.Bold)
	title := p.style(color.FgWhite, color.Bold)
	link := p.style(color.FgCyan, color.Underline)
	author := p.style(color.FgHiBlack)

	for i, s := range stories {
		fmt.Fprintf(p.out, "%s %s %s\n",
			index.Sprintf("%2d.", i+1),
			score.Sprintf("[%s]", center(strconv.Itoa(s.Score), scoreWidth)),
			title.Sprint(s.Title),
		)
		if s.URL != "" {
			fmt.Fprintf(p.out, "      %s %s\n", index.Sprint("🔗"), link.Sprint(s.URL))
		}
		fmt.Fprintf(p.out, "      %s\n\n", author.Sprintf("by %s", s.Author))
	}
}

// center pads s with spaces to width, putting the odd space on the right.
// Longer strings are returned unchanged.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
