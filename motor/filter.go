package motor

// EntryFilter decides whether an entry stays visible.
type EntryFilter interface {
	ShouldShow(entry *Entry) bool
	IsActive() bool
}

// FilterErrors returns the entries whose response status falls into one of
// the selected classes. Entries without a response (status 0) never match.
// The result preserves input order.
func FilterErrors(entries []*Entry, selected CodeSelection) []*Entry {
	if selected.IsEmpty() {
		return []*Entry{}
	}

	result := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		if entry == nil || entry.Aborted() {
			continue
		}
		if selected.Has(entry.Class()) {
			result = append(result, entry)
		}
	}
	return result
}

// StatusFilter keeps entries matching a code selection.
type StatusFilter struct {
	Selection CodeSelection
}

// ShouldShow returns true if the entry status is in the selection.
func (f StatusFilter) ShouldShow(entry *Entry) bool {
	return !entry.Aborted() && f.Selection.Has(entry.Class())
}

// IsActive is always true; an empty selection hides everything.
func (f StatusFilter) IsActive() bool {
	return true
}

// FilterChain combines multiple filters. An entry must pass all of them.
type FilterChain struct {
	filters []EntryFilter
}

// NewFilterChain creates a chain from the active filters given.
func NewFilterChain(filters ...EntryFilter) *FilterChain {
	fc := &FilterChain{
		filters: make([]EntryFilter, 0, len(filters)),
	}
	for _, f := range filters {
		fc.Add(f)
	}
	return fc
}

// Add adds a filter to the chain, skipping nil and inactive ones.
func (fc *FilterChain) Add(filter EntryFilter) {
	if filter != nil && filter.IsActive() {
		fc.filters = append(fc.filters, filter)
	}
}

// HasActiveFilters returns true if any filters are active
func (fc *FilterChain) HasActiveFilters() bool {
	return len(fc.filters) > 0
}

// Apply returns the entries passing every filter, in input order.
func (fc *FilterChain) Apply(entries []*Entry) []*Entry {
	if !fc.HasActiveFilters() {
		return entries
	}

	filtered := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		passesAll := true
		for _, filter := range fc.filters {
			if !filter.ShouldShow(entry) {
				passesAll = false
				break
			}
		}
		if passesAll {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// ApplyFilters is shorthand for NewFilterChain(filters...).Apply(entries).
func ApplyFilters(entries []*Entry, filters ...EntryFilter) []*Entry {
	return NewFilterChain(filters...).Apply(entries)
}
