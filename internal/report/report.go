// Package report renders sweep results as failure-fraction tables.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/sanity/internal/core/dice"
	"github.com/louisbranch/sanity/internal/sanity"
	"github.com/louisbranch/sanity/internal/sweep"
)

// Options controls report rendering.
type Options struct {
	// Language selects number formatting. The zero value renders English.
	Language language.Tag
	// Counts appends a per-cell outcome breakdown after the grids.
	Counts bool
}

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	headerStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)
)

// Render writes one table per modifier in grid order, with Guts dice as
// columns and Mythos dice as rows. Each entry is the share of checks that
// failed, whether positive, negative or critical.
func Render(w io.Writer, res sweep.Result, opts Options) error {
	p := printer(opts.Language)

	if _, err := p.Fprintf(w, "Sanity failure rates, %d trials per cell\n", res.Grid.Trials); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	for _, o := range res.Grid.Modifiers {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", p.Sprintf("Modifier %+d", o), modifierTable(p, res, o)); err != nil {
			return fmt.Errorf("write modifier %d: %w", o, err)
		}
	}

	if opts.Counts {
		if _, err := fmt.Fprintf(w, "\nOutcome counts\n%s\n", countsTable(p, res)); err != nil {
			return fmt.Errorf("write counts: %w", err)
		}
	}
	return nil
}

func modifierTable(p *message.Printer, res sweep.Result, modifier int) string {
	headers := make([]string, 0, len(res.Grid.Guts)+1)
	headers = append(headers, "Mythos \\ Guts")
	for _, g := range res.Grid.Guts {
		headers = append(headers, dice.Label(g))
	}

	rows := make([][]string, 0, len(res.Grid.Mythos))
	for _, m := range res.Grid.Mythos {
		row := make([]string, 0, len(res.Grid.Guts)+1)
		row = append(row, dice.Label(m))
		for _, g := range res.Grid.Guts {
			cell, ok := res.Lookup(g, m, modifier)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, p.Sprintf("%.3f", cell.FailureFraction()))
		}
		rows = append(rows, row)
	}

	return newTable(headers, rows).String()
}

func countsTable(p *message.Printer, res sweep.Result) string {
	headers := []string{"Guts", "Mythos", "Modifier"}
	for _, o := range sanity.Outcomes() {
		headers = append(headers, o.String())
	}
	headers = append(headers, "failure")

	rows := make([][]string, 0, len(res.Cells))
	for _, c := range res.Cells {
		row := []string{dice.Label(c.Guts), dice.Label(c.Mythos), p.Sprintf("%+d", c.Modifier)}
		for _, oc := range c.Tally.Counts() {
			row = append(row, p.Sprintf("%d", oc.Count))
		}
		row = append(row, p.Sprintf("%.3f", c.FailureFraction()))
		rows = append(rows, row)
	}

	return newTable(headers, rows).String()
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printer(tag language.Tag) *message.Printer {
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
