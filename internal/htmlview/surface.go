// Package htmlview draws a paged table as an HTML document using gomponents.
//
// Surface implements table.Surface by keeping the drawn regions in memory and
// rendering them on demand. Field values are escaped.
package htmlview

import (
	"errors"
	"io"
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/rshade/pagedtable/internal/table"
)

// CSS classes and ids shared with the stylesheet and with scripts that
// target the controls.
const (
	classTable      = "table table-bordered paged-table"
	classHeader     = "table-header"
	classRow        = "table-row"
	classImage      = "td-image"
	classControls   = "controls"
	classArrow      = "arrow btn"
	classNumber     = "btn number-controls"
	classActive     = "btn-primary"
	classDisabled   = "disabled"
	classSortable   = "sortable"
	classIndicator  = "sort-indicator"
	idPrev          = "left-arrow"
	idNext          = "right-arrow"
	labelPrev       = "<"
	labelNext       = ">"
	attrPageID      = "data-id"
	attrSortKey     = "data-key"
	attrSortDir     = "data-direction"
	emptyActivePage = -1
)

// ErrNotMounted is returned by Dispatch before a widget has subscribed.
var ErrNotMounted = errors.New("htmlview: surface has no subscriber")

// LinkFunc returns the href that triggers ev. Without one, controls render as
// plain spans.
type LinkFunc func(ev table.Event) string

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithLinks turns controls and sortable headers into anchors.
func WithLinks(links LinkFunc) SurfaceOption {
	return func(s *Surface) { s.links = links }
}

// WithTableClass overrides the class attribute of the table element.
func WithTableClass(class string) SurfaceOption {
	return func(s *Surface) { s.tableClass = class }
}

// Surface is an in-memory HTML mount target.
type Surface struct {
	header   []table.HeaderCell
	rows     []table.Row
	controls table.Controls
	active   int

	handler    func(table.Event) error
	links      LinkFunc
	tableClass string
}

// NewSurface creates an empty surface.
func NewSurface(opts ...SurfaceOption) *Surface {
	s := &Surface{
		active:     emptyActivePage,
		tableClass: classTable,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DrawHeader implements table.Surface.
func (s *Surface) DrawHeader(cells []table.HeaderCell) error {
	s.header = cells
	return nil
}

// DrawControls implements table.Surface.
func (s *Surface) DrawControls(controls table.Controls) error {
	s.controls = controls
	return nil
}

// ReplaceRows implements table.Surface.
func (s *Surface) ReplaceRows(rows []table.Row) error {
	s.rows = rows
	return nil
}

// MarkActivePage implements table.Surface. Page controls keep their
// position; only their active flag changes. Prev/next enablement follows.
func (s *Surface) MarkActivePage(index int) error {
	if index < 0 || index >= len(s.controls.Pages) {
		index = emptyActivePage
	}
	s.active = index
	for i := range s.controls.Pages {
		s.controls.Pages[i].Active = s.controls.Pages[i].Index == index
	}
	s.controls.Prev.Enabled = index > 0
	s.controls.Next.Enabled = index >= 0 && index < len(s.controls.Pages)-1
	return nil
}

// Subscribe implements table.Surface.
func (s *Surface) Subscribe(handler func(table.Event) error) {
	s.handler = handler
}

// Dispatch delivers ev to the subscribed widget, as a click would.
func (s *Surface) Dispatch(ev table.Event) error {
	if s.handler == nil {
		return ErrNotMounted
	}
	return s.handler(ev)
}

// ActivePage returns the highlighted page index, or -1.
func (s *Surface) ActivePage() int { return s.active }

// Render writes the table and controls.
func (s *Surface) Render(w io.Writer) error {
	return s.Node().Render(w)
}

// Node returns the table followed by its controls.
func (s *Surface) Node() Node {
	return Div(
		Class("table-container"),
		s.tableNode(),
		s.controlsNode(),
	)
}

func (s *Surface) tableNode() Node {
	headerCells := make([]Node, 0, len(s.header))
	for _, cell := range s.header {
		headerCells = append(headerCells, s.headerCell(cell))
	}

	rows := make([]Node, 0, len(s.rows))
	for _, row := range s.rows {
		cells := make([]Node, 0, len(row.Cells))
		for _, cell := range row.Cells {
			if cell.IsImage {
				cells = append(cells, Td(Img(Class(classImage), Src(cell.Text))))
				continue
			}
			cells = append(cells, Td(Text(cell.Text)))
		}
		rows = append(rows, Tr(Class(classRow), Group(cells)))
	}

	return Table(
		Class(s.tableClass),
		THead(Tr(Class(classHeader), Group(headerCells))),
		TBody(Group(rows)),
	)
}

func (s *Surface) headerCell(cell table.HeaderCell) Node {
	if !cell.Sortable {
		return Th(Text(cell.Label))
	}

	label := Group{Text(cell.Label + " "), Span(Class(classIndicator), Text(cell.Indicator))}
	var content Node = label
	if s.links != nil {
		content = A(Href(s.links(table.SortEvent(cell.FieldKey))), label)
	}

	return Th(
		Class(classSortable),
		Attr(attrSortKey, cell.FieldKey),
		If(cell.Active, Attr(attrSortDir, cell.Direction.String())),
		content,
	)
}

func (s *Surface) controlsNode() Node {
	pages := make([]Node, 0, len(s.controls.Pages))
	for _, p := range s.controls.Pages {
		class := classNumber
		if p.Active {
			class += " " + classActive
		}
		pages = append(pages, s.control(table.PageEvent(p.Index), true,
			Class(class), Attr(attrPageID, strconv.Itoa(p.Index)), Text(p.Label)))
	}

	return Div(
		Class(classControls),
		s.control(table.PrevEvent(), s.controls.Prev.Enabled,
			Class(arrowClass(s.controls.Prev.Enabled)), ID(idPrev), Text(labelPrev)),
		Group(pages),
		s.control(table.NextEvent(), s.controls.Next.Enabled,
			Class(arrowClass(s.controls.Next.Enabled)), ID(idNext), Text(labelNext)),
	)
}

// control renders an anchor when links are configured and the control is
// enabled, otherwise a span.
func (s *Surface) control(ev table.Event, enabled bool, children ...Node) Node {
	if s.links != nil && enabled {
		return A(append([]Node{Href(s.links(ev))}, children...)...)
	}
	return Span(children...)
}

func arrowClass(enabled bool) string {
	if enabled {
		return classArrow
	}
	return classArrow + " " + classDisabled
}
