// Package pagination provides the partitioning, sorting, and metadata primitives
// behind the paged table.
//
// This package contains the pure building blocks shared by every table surface:
//   - Partition: splits an ordered slice into fixed-size pages
//   - SortStable: stable field sort with "ascending, then reverse" descending semantics
//   - Params: page-size and sort flag parsing and validation
//   - Meta: page metadata for a table snapshot
//
// Nothing in this package holds state; the table package owns the working set
// and the current page index.
package pagination
