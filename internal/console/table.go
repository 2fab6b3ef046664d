package console

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-crewmon/internal/monitor"
	"github.com/rivo/tview"
)

const (
	pageTable       = "table"
	pagePlaceholder = "placeholder"
)

const (
	colIndicator = iota
	colHealth
	colName
	colJobIcon
	colJob
)

// RowTable is a monitor.RowList over a tview table. Hidden rows are left
// out of the table, so table rows and view rows are mapped both ways.
type RowTable struct {
	*tview.Pages

	table       *tview.Table
	placeholder *tview.TextView

	rows []monitor.Row
	// visible[tableRow] is the view row shown there.
	visible []int
	// onSelect receives view row indexes.
	onSelect func(index int)
}

func NewRowTable() *RowTable {
	t := &RowTable{
		Pages:       tview.NewPages(),
		table:       tview.NewTable(),
		placeholder: tview.NewTextView(),
	}

	t.table.SetSelectable(true, false)
	t.table.SetSelectedFunc(func(row, _ int) {
		if t.onSelect == nil || row < 0 || row >= len(t.visible) {
			return
		}
		t.onSelect(t.visible[row])
	})

	t.placeholder.SetTextAlign(tview.AlignCenter)

	t.AddPage(pageTable, t.table, true, true)
	t.AddPage(pagePlaceholder, t.placeholder, true, false)

	return t
}

// SetSelectedFunc sets the handler for a row activated with Enter or a
// click.
func (t *RowTable) SetSelectedFunc(fn func(index int)) {
	t.onSelect = fn
}

func (t *RowTable) SetPlaceholder(text string) {
	t.placeholder.SetText(text)
	if text == "" {
		t.SwitchToPage(pageTable)
		return
	}
	t.SwitchToPage(pagePlaceholder)
}

func (t *RowTable) SetRows(rows []monitor.Row) {
	t.rows = append(t.rows[:0], rows...)
	t.rebuild()
}

func (t *RowTable) UpdateRow(index int, row monitor.Row) {
	if index < 0 || index >= len(t.rows) {
		return
	}
	prev := t.rows[index]
	t.rows[index] = row

	if prev.Hidden != row.Hidden {
		t.rebuild()
		return
	}
	if tableRow := t.tableRow(index); tableRow >= 0 {
		t.setCells(tableRow, row)
	}
}

// RowHeight is one terminal line per shown row; hidden rows take none.
func (t *RowTable) RowHeight(index int) float64 {
	if index < 0 || index >= len(t.rows) || t.rows[index].Hidden {
		return 0
	}
	return 1
}

func (t *RowTable) ScrollOffset() float64 {
	row, _ := t.table.GetOffset()
	return float64(row)
}

func (t *RowTable) SetScrollTarget(offset float64) {
	_, col := t.table.GetOffset()
	t.table.SetOffset(int(offset), col)
}

func (t *RowTable) tableRow(index int) int {
	for tr, vi := range t.visible {
		if vi == index {
			return tr
		}
	}
	return -1
}

func (t *RowTable) rebuild() {
	t.table.Clear()
	t.visible = t.visible[:0]

	for i, r := range t.rows {
		if r.Hidden {
			continue
		}
		t.visible = append(t.visible, i)
		t.setCells(len(t.visible)-1, r)
	}
}

func (t *RowTable) setCells(tableRow int, r monitor.Row) {
	switch r.Kind {
	case monitor.RowSeparator:
		for col := colIndicator; col <= colJob; col++ {
			t.table.SetCell(tableRow, col, tview.NewTableCell("").SetSelectable(false))
		}
	case monitor.RowHeader:
		t.table.SetCell(tableRow, colIndicator, tview.NewTableCell("").SetSelectable(false))
		t.table.SetCell(tableRow, colHealth, tview.NewTableCell(r.Header).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
		for col := colName; col <= colJob; col++ {
			t.table.SetCell(tableRow, col, tview.NewTableCell("").SetSelectable(false))
		}
	case monitor.RowSensor:
		selectable := !r.Disabled
		name := tview.NewTableCell(r.Sensor.Name).SetExpansion(1).SetSelectable(selectable)
		if r.Focused {
			name.SetAttributes(tcell.AttrBold | tcell.AttrReverse)
		}

		t.table.SetCell(tableRow, colIndicator, tview.NewTableCell("●").
			SetTextColor(tcellColor(r.IndicatorColor)).
			SetSelectable(selectable))
		t.table.SetCell(tableRow, colHealth, tview.NewTableCell(healthGlyph(r.HealthIcon)).SetSelectable(selectable))
		t.table.SetCell(tableRow, colName, name)
		t.table.SetCell(tableRow, colJobIcon, tview.NewTableCell(r.JobIcon).SetSelectable(selectable))
		t.table.SetCell(tableRow, colJob, tview.NewTableCell(r.Sensor.Job).SetExpansion(1).SetSelectable(selectable))
	}
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
