package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
)

// TableColumn represents a column configuration
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// TableRow represents a row of data
type TableRow struct {
	Data []string
	// CellStyles overrides the row style per column index
	CellStyles map[int]lipgloss.Style
}

// Table represents a data table component
type Table struct {
	columns     []TableColumn
	rows        []TableRow
	width       int
	selectedRow int
	emptyText   string

	// Styling
	headerStyle      lipgloss.Style
	rowStyle         lipgloss.Style
	selectedRowStyle lipgloss.Style
	borderStyle      lipgloss.Style

	// Configuration
	showBorder bool
	selectable bool
}

// NewTable creates a new table component
func NewTable() *Table {
	palette := style.DefaultPalette()

	return &Table{
		emptyText: "Nothing to show",

		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		selectedRowStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		showBorder: true,
		selectable: true,
	}
}

// SetColumns sets the table columns
func (t *Table) SetColumns(columns []TableColumn) *Table {
	t.columns = columns
	return t
}

// SetRows replaces all rows and keeps the selection in range
func (t *Table) SetRows(rows []TableRow) *Table {
	t.rows = rows
	if t.selectedRow >= len(rows) {
		t.selectedRow = len(rows) - 1
	}
	if t.selectedRow < 0 {
		t.selectedRow = 0
	}
	return t
}

// SetEmptyText sets the text shown when there are no rows
func (t *Table) SetEmptyText(text string) *Table {
	t.emptyText = text
	return t
}

// SetWidth sets the table width used for auto-width columns
func (t *Table) SetWidth(width int) *Table {
	t.width = width
	return t
}

// SetSelectedRow sets the currently selected row
func (t *Table) SetSelectedRow(index int) *Table {
	if index >= 0 && index < len(t.rows) {
		t.selectedRow = index
	}
	return t
}

// GetSelectedRow returns the currently selected row index
func (t *Table) GetSelectedRow() int {
	return t.selectedRow
}

// MoveUp moves selection up
func (t *Table) MoveUp() *Table {
	if t.selectable && t.selectedRow > 0 {
		t.selectedRow--
	}
	return t
}

// MoveDown moves selection down
func (t *Table) MoveDown() *Table {
	if t.selectable && t.selectedRow < len(t.rows)-1 {
		t.selectedRow++
	}
	return t
}

// SetSelectable enables/disables row selection
func (t *Table) SetSelectable(selectable bool) *Table {
	t.selectable = selectable
	return t
}

// SetShowBorder enables/disables table border
func (t *Table) SetShowBorder(show bool) *Table {
	t.showBorder = show
	return t
}

// View renders the table
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return "No columns defined"
	}

	columns := t.columnWidths()
	var content strings.Builder

	// Headers
	var headerRow []string
	for _, col := range columns {
		headerRow = append(headerRow, renderCell(col.Header, col.Width, col.Align, t.headerStyle))
	}
	content.WriteString(strings.Join(headerRow, "│"))
	content.WriteString("\n")

	var separator []string
	for _, col := range columns {
		separator = append(separator, strings.Repeat("─", col.Width+2))
	}
	content.WriteString(strings.Join(separator, "┼"))

	if len(t.rows) == 0 {
		content.WriteString("\n")
		content.WriteString(style.MutedStyle.Padding(0, 1).Render(t.emptyText))
	}

	for rowIndex, row := range t.rows {
		rowStyle := t.rowStyle
		selected := t.selectable && rowIndex == t.selectedRow
		if selected {
			rowStyle = t.selectedRowStyle
		}

		var cells []string
		for i, col := range columns {
			cellData := ""
			if i < len(row.Data) {
				cellData = row.Data[i]
			}
			cellStyle := rowStyle
			if s, ok := row.CellStyles[i]; ok && !selected {
				cellStyle = s.Padding(0, 1)
			}
			cells = append(cells, renderCell(cellData, col.Width, col.Align, cellStyle))
		}

		content.WriteString("\n")
		content.WriteString(strings.Join(cells, "│"))
	}

	result := content.String()
	if t.showBorder {
		result = t.borderStyle.Render(result)
	}
	return result
}

// renderCell renders a single table cell, truncated to width runes
func renderCell(content string, width int, align lipgloss.Position, style lipgloss.Style) string {
	runes := []rune(content)
	if len(runes) > width {
		if width > 1 {
			content = string(runes[:width-1]) + "…"
		} else {
			content = string(runes[:width])
		}
	}
	return style.Width(width + 2).Align(align).Render(content)
}

// columnWidths fills in auto-width (zero) columns from the table width
func (t *Table) columnWidths() []TableColumn {
	columns := make([]TableColumn, len(t.columns))
	copy(columns, t.columns)

	fixed, auto := 0, 0
	for _, col := range columns {
		if col.Width > 0 {
			fixed += col.Width + 2
		} else {
			auto++
		}
	}
	if auto == 0 {
		return columns
	}

	available := t.width - fixed - (len(columns) - 1) - 4 // separators and border
	autoWidth := 12
	if available > auto*2 {
		autoWidth = available/auto - 2
	}
	for i := range columns {
		if columns[i].Width <= 0 {
			columns[i].Width = autoWidth
		}
	}
	return columns
}

// GetRowCount returns the number of rows
func (t *Table) GetRowCount() int {
	return len(t.rows)
}

// GetSelectedRowData returns the data of the currently selected row
func (t *Table) GetSelectedRowData() []string {
	if t.selectedRow >= 0 && t.selectedRow < len(t.rows) {
		return t.rows[t.selectedRow].Data
	}
	return nil
}
