// Package table implements the paged, sortable table component.
//
// A Table owns the working set of records, the current page index, and the
// per-column sort memory. Its transitions (Prev, Next, GoTo, ToggleSort) are
// synchronous and leave the table in a valid state or return an error without
// touching it. View renders the state as a declarative ViewModel.
//
// A Widget mounts a Table onto a Surface: it draws the header, rows, and
// controls once, subscribes to the surface's events, and redraws only the
// regions a transition affects. Surfaces live in the htmlview and tui packages.
package table
