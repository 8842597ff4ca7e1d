package motor

// DefaultPageSize is the number of entries shown per page.
const DefaultPageSize = 10

// Paginator slices a list into fixed size pages. Pages are zero based; any
// out of range page is clamped into [0, PageCount()-1].
type Paginator struct {
	size  int
	page  int
	total int
}

// NewPaginator creates a paginator. A non-positive size uses DefaultPageSize.
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Paginator{size: size}
}

// PageSize returns the number of items per page.
func (p *Paginator) PageSize() int {
	return p.size
}

// Page returns the current page.
func (p *Paginator) Page() int {
	return p.page
}

// SetTotal updates the number of items and re-clamps the current page.
func (p *Paginator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.SetPage(p.page)
}

// Total returns the number of items.
func (p *Paginator) Total() int {
	return p.total
}

// PageCount returns the number of pages, at least one.
func (p *Paginator) PageCount() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.size - 1) / p.size
}

// SetPage moves to page, clamping it into range.
func (p *Paginator) SetPage(page int) {
	switch last := p.PageCount() - 1; {
	case page < 0:
		p.page = 0
	case page > last:
		p.page = last
	default:
		p.page = page
	}
}

// Next moves forward one page and reports whether the page changed.
func (p *Paginator) Next() bool {
	before := p.page
	p.SetPage(p.page + 1)
	return p.page != before
}

// Prev moves back one page and reports whether the page changed.
func (p *Paginator) Prev() bool {
	before := p.page
	p.SetPage(p.page - 1)
	return p.page != before
}

// Bounds returns the [start, end) item range of the current page.
func (p *Paginator) Bounds() (int, int) {
	start := p.page * p.size
	if start > p.total {
		start = p.total
	}
	end := start + p.size
	if end > p.total {
		end = p.total
	}
	return start, end
}

// Slice returns the items of the current page. The total is taken from
// the length of items.
func (p *Paginator) Slice(items []*Entry) []*Entry {
	p.SetTotal(len(items))
	start, end := p.Bounds()
	return items[start:end]
}
