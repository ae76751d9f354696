package present

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8787")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	onStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#A50F15")).
		Padding(0, 1).
		Align(lipgloss.Center)

	offStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FCBBA1")).
			Padding(0, 1).
			Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)
)

// RenderTerminal renders the table as a bordered grid with a header of
// config labels and the original function label on each row.
func RenderTerminal(t *Table) string {
	headers := append([]string{"#", "function"}, t.Columns...)

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, 0, len(row)+2)
		cells = append(cells, strconv.Itoa(i+1), t.Labels[i])
		for _, bit := range row {
			cells = append(cells, strconv.Itoa(bit))
		}
		rows[i] = cells
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < 2:
				return labelStyle
			case rows[row][col] == "1":
				return onStyle
			default:
				return offStyle
			}
		})

	title := titleStyle.Render("Monotonic functions: " + strconv.Itoa(len(t.Rows)))
	return lipgloss.JoinVertical(lipgloss.Left, title, tbl.String())
}
