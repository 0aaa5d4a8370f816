package table

import (
	"fmt"
	"strconv"
	"strings"
)

// EventKind identifies a user interaction.
type EventKind int

const (
	// EventPrev moves to the previous page.
	EventPrev EventKind = iota
	// EventNext moves to the next page.
	EventNext
	// EventPage jumps to Event.Index.
	EventPage
	// EventSort toggles the sort on Event.Field.
	EventSort
)

// Event is an interaction emitted by a Surface.
type Event struct {
	Kind  EventKind
	Index int
	Field string
}

// PrevEvent returns a previous-page event.
func PrevEvent() Event { return Event{Kind: EventPrev} }

// NextEvent returns a next-page event.
func NextEvent() Event { return Event{Kind: EventNext} }

// PageEvent returns a jump-to-page event for a zero-based index.
func PageEvent(index int) Event { return Event{Kind: EventPage, Index: index} }

// SortEvent returns a header click on field.
func SortEvent(field string) Event { return Event{Kind: EventSort, Field: field} }

func (e Event) String() string {
	switch e.Kind {
	case EventPrev:
		return "prev"
	case EventNext:
		return "next"
	case EventPage:
		return "page:" + strconv.Itoa(e.Index)
	case EventSort:
		return "sort:" + e.Field
	default:
		return fmt.Sprintf("unknown(%d)", int(e.Kind))
	}
}

// ParseEvent parses the String form of an event: prev, next, page:N or sort:FIELD.
func ParseEvent(s string) (Event, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(s), ":")
	switch {
	case name == "prev" && !hasArg:
		return PrevEvent(), nil
	case name == "next" && !hasArg:
		return NextEvent(), nil
	case name == "page" && hasArg:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Event{}, fmt.Errorf("%w: event %q: page is not a number", ErrInvalidArgument, s)
		}
		return PageEvent(n), nil
	case name == "sort" && arg != "":
		return SortEvent(arg), nil
	default:
		return Event{}, fmt.Errorf("%w: unknown event %q", ErrInvalidArgument, s)
	}
}
