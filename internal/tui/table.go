package tui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table is a titled grid of string cells. StatusColumn, when >= 0, names the
// column whose cells are colored with StatusStyle.
type Table struct {
	Title        string
	Headers      []string
	Rows         [][]string
	StatusColumn int
}

// NewTable returns an empty table without a status column.
func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers, StatusColumn: -1}
}

// AddRow appends a row. Missing trailing cells are left blank.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.Headers))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Render writes the table to w. ModeTUI draws a bordered lipgloss table and
// any other mode writes aligned plain columns.
func (t *Table) Render(w io.Writer, mode OutputMode) error {
	if mode == ModeTUI {
		return t.renderStyled(w)
	}
	return t.renderPlain(w)
}

func (t *Table) renderStyled(w io.Writer) error {
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, TitleStyle.Render(t.Title)); err != nil {
			return err
		}
	}
	cell := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle.Padding(0, 1)
			}
			if col == t.StatusColumn && row >= 0 && row < len(t.Rows) {
				return StatusStyle(t.Rows[row][col]).Padding(0, 1)
			}
			return cell
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func (t *Table) renderPlain(w io.Writer) error {
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, t.Title); err != nil {
			return err
		}
	}
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(t.Headers, "\t")))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
