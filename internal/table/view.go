package table

import (
	"strconv"

	"github.com/rshade/pagedtable/internal/pagination"
)

// Header indicator glyphs.
const (
	IndicatorAscending  = "▲"
	IndicatorDescending = "▼"
	IndicatorUnsorted   = "↕"
)

// HeaderCell is one column header.
type HeaderCell struct {
	Label     string
	FieldKey  string
	Sortable  bool
	Active    bool
	Direction pagination.Direction
	// Indicator is empty for non-sortable columns. The active column shows
	// the direction just applied.
	Indicator string
}

// Cell is one rendered field.
type Cell struct {
	Text    string
	IsImage bool
}

// Row is one record of the current page.
type Row struct {
	Cells []Cell
}

// ControlState describes the previous/next affordances.
type ControlState struct {
	Enabled bool
}

// PageControl is a jump-to-page affordance.
type PageControl struct {
	Index  int
	Label  string
	Active bool
}

// Controls describes the pagination controls.
type Controls struct {
	Prev  ControlState
	Next  ControlState
	Pages []PageControl
}

// ActiveIndex returns the index of the active page control, or -1.
func (c Controls) ActiveIndex() int {
	for _, p := range c.Pages {
		if p.Active {
			return p.Index
		}
	}
	return -1
}

// ViewModel is a declarative snapshot of everything a surface draws.
type ViewModel struct {
	Header   []HeaderCell
	Rows     []Row
	Controls Controls
	Meta     pagination.Meta
}

// View renders the current state.
func (t *Table) View() ViewModel {
	return ViewModel{
		Header:   t.header(),
		Rows:     t.rows(),
		Controls: t.controls(),
		Meta:     t.Meta(),
	}
}

func (t *Table) header() []HeaderCell {
	cells := make([]HeaderCell, len(t.columns))
	for i, col := range t.columns {
		cell := HeaderCell{
			Label:    col.DisplayName,
			FieldKey: col.FieldKey,
			Sortable: col.IsSortable,
		}
		if col.IsSortable {
			cell.Indicator = IndicatorUnsorted
			if t.sort.Active && t.sort.Field == col.FieldKey {
				cell.Active = true
				cell.Direction = t.sort.Direction
				cell.Indicator = IndicatorAscending
				if t.sort.Direction == pagination.Descending {
					cell.Indicator = IndicatorDescending
				}
			}
		}
		cells[i] = cell
	}
	return cells
}

func (t *Table) rows() []Row {
	page := t.CurrentPage()
	rows := make([]Row, len(page))
	for i, rec := range page {
		cells := make([]Cell, len(t.columns))
		for j, col := range t.columns {
			cells[j] = Cell{Text: rec.Field(col.FieldKey), IsImage: col.IsImage}
		}
		rows[i] = Row{Cells: cells}
	}
	return rows
}

func (t *Table) controls() Controls {
	pages := make([]PageControl, len(t.pages))
	for i := range t.pages {
		pages[i] = PageControl{
			Index:  i,
			Label:  strconv.Itoa(i),
			Active: i == t.pageIndex,
		}
	}
	return Controls{
		Prev:  ControlState{Enabled: t.pageIndex > 0},
		Next:  ControlState{Enabled: t.pageIndex < len(t.pages)-1},
		Pages: pages,
	}
}
