package table

import (
	"fmt"
	"strings"
)

// Record is one data item displayed as a table row, keyed by field name.
// Image fields hold the image URL.
type Record map[string]string

// Field returns the value for key, or "" when the record has no such field.
func (r Record) Field(key string) string {
	return r[key]
}

// Column describes how one record field is displayed.
type Column struct {
	// DisplayName is the header label.
	DisplayName string `json:"name" yaml:"name"`

	// FieldKey is the record field rendered in this column.
	FieldKey string `json:"key" yaml:"key"`

	// IsImage renders the field value as an image source.
	IsImage bool `json:"image,omitempty" yaml:"image,omitempty"`

	// IsSortable lets the header toggle a sort on this column.
	IsSortable bool `json:"sortable,omitempty" yaml:"sortable,omitempty"`
}

// ValidateColumns checks that columns is non-empty and every field key is
// present, unique, and free of surrounding whitespace.
func ValidateColumns(columns []Column) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: at least one column is required", ErrInvalidArgument)
	}

	seen := make(map[string]int, len(columns))
	for i, col := range columns {
		key := col.FieldKey
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: column %d has an empty field key", ErrInvalidArgument, i)
		}
		if strings.TrimSpace(key) != key {
			return fmt.Errorf("%w: column %d field key %q has surrounding whitespace", ErrInvalidArgument, i, key)
		}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: columns %d and %d share field key %q", ErrInvalidArgument, prev, i, key)
		}
		seen[key] = i
	}

	return nil
}
