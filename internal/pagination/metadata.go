package pagination

// Meta contains metadata about the page currently displayed.
type Meta struct {
	PageIndex   int  `json:"page_index"   yaml:"page_index"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	FirstItem   int  `json:"first_item"   yaml:"first_item"`
	LastItem    int  `json:"last_item"    yaml:"last_item"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta creates page metadata for a zero-based page index.
// FirstItem and LastItem are 1-based positions of the page's records and are
// both 0 when there is nothing to show.
func NewMeta(pageIndex, pageSize, totalItems int) Meta {
	totalPages := PageCount(totalItems, pageSize)

	meta := Meta{
		PageIndex:   pageIndex,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: pageIndex > 0,
		HasNext:     pageIndex < totalPages-1,
	}

	if totalPages > 0 && pageIndex >= 0 && pageIndex < totalPages {
		meta.FirstItem = pageIndex*pageSize + 1
		meta.LastItem = min((pageIndex+1)*pageSize, totalItems)
	}

	return meta
}
