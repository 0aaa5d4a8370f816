package table

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Surface is the drawing and event capability a Widget mounts onto.
type Surface interface {
	// DrawHeader replaces the header cells.
	DrawHeader(cells []HeaderCell) error
	// DrawControls builds the pagination controls.
	DrawControls(controls Controls) error
	// ReplaceRows clears the body and draws rows.
	ReplaceRows(rows []Row) error
	// MarkActivePage highlights the control for index and clears the others.
	MarkActivePage(index int) error
	// Subscribe registers the handler the surface calls for each interaction.
	Subscribe(handler func(Event) error)
}

// Widget mounts a Table onto a Surface.
type Widget struct {
	table    *Table
	surface  Surface
	logger   zerolog.Logger
	rendered bool
}

// NewWidget validates its input and creates an unrendered widget.
// Nothing is drawn until Render.
func NewWidget(records []Record, columns []Column, pageSize int, surface Surface, opts ...Option) (*Widget, error) {
	if surface == nil {
		return nil, fmt.Errorf("%w: surface is required", ErrInvalidArgument)
	}

	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	t, err := New(records, columns, pageSize, opts...)
	if err != nil {
		return nil, err
	}

	return &Widget{
		table:   t,
		surface: surface,
		logger:  o.logger,
	}, nil
}

// Table returns the underlying table.
func (w *Widget) Table() *Table { return w.table }

// Render draws the header, rows, and controls, marks the active page, and
// subscribes to the surface. It must be called exactly once.
func (w *Widget) Render() error {
	if w.rendered {
		return ErrAlreadyRendered
	}

	view := w.table.View()
	if err := w.surface.DrawHeader(view.Header); err != nil {
		return fmt.Errorf("drawing header: %w", err)
	}
	if err := w.surface.ReplaceRows(view.Rows); err != nil {
		return fmt.Errorf("drawing rows: %w", err)
	}
	if err := w.surface.DrawControls(view.Controls); err != nil {
		return fmt.Errorf("drawing controls: %w", err)
	}
	if err := w.surface.MarkActivePage(w.table.PageIndex()); err != nil {
		return fmt.Errorf("marking active page: %w", err)
	}

	w.surface.Subscribe(w.handle)
	w.rendered = true

	w.logger.Debug().
		Int("records", w.table.Len()).
		Int("pages", w.table.PageCount()).
		Msg("table rendered")
	return nil
}

// handle applies ev and redraws what changed.
func (w *Widget) handle(ev Event) error {
	before := w.table.PageIndex()

	if err := w.table.Apply(ev); err != nil {
		w.logger.Warn().Err(err).Stringer("event", ev).Msg("rejected table event")
		return err
	}

	if ev.Kind == EventSort {
		if err := w.surface.DrawHeader(w.table.View().Header); err != nil {
			return fmt.Errorf("drawing header: %w", err)
		}
	} else if w.table.PageIndex() == before {
		return nil
	}

	if err := w.surface.ReplaceRows(w.table.View().Rows); err != nil {
		return fmt.Errorf("drawing rows: %w", err)
	}
	if err := w.surface.MarkActivePage(w.table.PageIndex()); err != nil {
		return fmt.Errorf("marking active page: %w", err)
	}
	return nil
}
