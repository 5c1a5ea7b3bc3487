package tui

import (
	"strconv"

	"catalog-browser/internal/catalog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const ownerColumn = 3

// RenderTable draws the product table of v, or the no-results message when v is empty.
func RenderTable(v catalog.View, styles Styles) string {
	if v.NoResults {
		return styles.Muted.Render(v.Message)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Muted).
		Headers("ID", "Product", "Category", "User").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			if col == ownerColumn && row >= 0 && row < len(v.Rows) {
				return styles.Owner(v.Rows[row].Tone)
			}
			return styles.Cell
		})

	for _, r := range v.Rows {
		t.Row(strconv.FormatInt(r.ID, 10), r.Name, r.Category, r.Owner)
	}
	return t.String()
}
