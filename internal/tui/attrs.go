package tui

import (
	"fmt"
	"path/filepath"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshHeaderTable rebuilds the header table from the loaded mask.
func (m *Model) refreshHeaderTable() {
	rows := m.headerRows()
	if len(rows) == 0 {
		m.showHeader = false
		m.status = "no mask loaded"
		return
	}
	keyW, valW := 4, 6
	for _, r := range rows {
		keyW = max(keyW, len(r[0])+2)
		valW = max(valW, len(r[1])+2)
	}
	cols := []table.Column{
		{Title: "Key", Width: min(keyW, 48)},
		{Title: "Value", Width: min(valW, 32)},
	}
	// clear rows first so the old rows never meet the new columns
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

// headerRows lists the header fields plus a few derived values.
func (m *Model) headerRows() []table.Row {
	if m.mask == nil {
		return nil
	}
	fields := m.mask.Fields()
	rows := make([]table.Row, 0, len(fields)+4)
	rows = append(rows, table.Row{"FILE", filepath.Base(m.selPath)})
	for _, kv := range fields {
		rows = append(rows, table.Row{kv[0], kv[1]})
	}
	w, s, e, n := m.mask.Bounds()
	rows = append(rows,
		table.Row{"EXTENT", fmt.Sprintf("[%.5f, %.5f, %.5f, %.5f]", w, s, e, n)},
		table.Row{"CELLS", fmt.Sprintf("%d", len(m.mask.Cells))},
		table.Row{"LAND", fmt.Sprintf("%.2f%%", 100*m.mask.LandFraction())},
	)
	return rows
}
