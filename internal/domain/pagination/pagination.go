// Package pagination implements the page/size/total bookkeeping shared by
// every console list. The public page number is 1-indexed; the backend
// reports and accepts 0-indexed pages, and Metadata carries the wire form.
package pagination

// DefaultSize is used when a caller asks for a non-positive page size.
const DefaultSize = 20

// Metadata is the pagination block of a backend list envelope. Page is
// 0-indexed.
type Metadata struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// State is a snapshot of a list's position. Page is 1-indexed.
type State struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// TotalPages returns ceil(totalItems/size), or 0 for an empty list.
func TotalPages(totalItems, size int) int {
	if totalItems <= 0 || size <= 0 {
		return 0
	}
	return (totalItems + size - 1) / size
}

// HasNext reports whether a page follows the current one.
func (s State) HasNext() bool { return s.Page < s.TotalPages }

// HasPrevious reports whether a page precedes the current one.
func (s State) HasPrevious() bool { return s.Page > 1 }

// FirstItem is the 1-based position of the first item on the current page,
// for "showing X-Y of Z". It is 0 for an empty list.
func (s State) FirstItem() int {
	if s.TotalItems == 0 {
		return 0
	}
	return (s.Page-1)*s.Size + 1
}

// LastItem is the 1-based position of the last item on the current page.
func (s State) LastItem() int {
	return min(s.Page*s.Size, s.TotalItems)
}

// BackendPage converts the public page to the 0-indexed wire page.
func (s State) BackendPage() int {
	return max(s.Page-1, 0)
}

// Paginator is the list position state machine. In server mode (SetPage)
// the backend's totals are authoritative and Items returns the page as
// delivered; in client mode (SetItems) the full collection is held in memory
// and Items slices it. A Paginator is not safe for concurrent use; owners
// guard it.
type Paginator[T any] struct {
	state      State
	items      []T
	clientSide bool
}

// NewPaginator returns an empty paginator on page 1.
func NewPaginator[T any](size int) *Paginator[T] {
	if size < 1 {
		size = DefaultSize
	}
	return &Paginator[T]{state: State{Page: 1, Size: size}}
}

// SetPage replaces the state wholesale from a server-reported page.
// TotalPages is taken from the backend even when it disagrees with
// TotalElements/Size.
func (p *Paginator[T]) SetPage(meta Metadata, items []T) {
	size := meta.Size
	if size < 1 {
		size = p.state.Size
	}
	p.state = State{
		Page:       meta.Page + 1,
		Size:       size,
		TotalItems: meta.TotalElements,
		TotalPages: meta.TotalPages,
	}
	p.items = items
	p.clientSide = false
}

// SetItems switches to client mode over the full collection. The current
// page is kept when it still exists, otherwise the last page is selected.
func (p *Paginator[T]) SetItems(items []T) {
	p.items = items
	p.clientSide = true
	p.state.TotalItems = len(items)
	p.state.TotalPages = TotalPages(len(items), p.state.Size)
	p.state.Page = min(max(p.state.Page, 1), max(p.state.TotalPages, 1))
}

// Items returns the items on the current page.
func (p *Paginator[T]) Items() []T {
	if !p.clientSide {
		return p.items
	}
	start := (p.state.Page - 1) * p.state.Size
	if start >= len(p.items) {
		return []T{}
	}
	end := min(start+p.state.Size, len(p.items))
	return p.items[start:end]
}

// State returns a snapshot of the current position.
func (p *Paginator[T]) State() State {
	return p.state
}

// NextPage advances one page. At the last page it is a no-op and returns false.
func (p *Paginator[T]) NextPage() bool {
	if !p.state.HasNext() {
		return false
	}
	p.state.Page++
	return true
}

// PreviousPage goes back one page. At page 1 it is a no-op and returns false.
func (p *Paginator[T]) PreviousPage() bool {
	if !p.state.HasPrevious() {
		return false
	}
	p.state.Page--
	return true
}

// GoTo jumps to page (1-indexed). Out-of-range pages are ignored.
func (p *Paginator[T]) GoTo(page int) bool {
	if page < 1 || page > p.state.TotalPages || page == p.state.Page {
		return false
	}
	p.state.Page = page
	return true
}

// SetPageSize changes the page size and always resets to page 1.
func (p *Paginator[T]) SetPageSize(size int) {
	if size < 1 {
		size = DefaultSize
	}
	p.state.Size = size
	p.state.Page = 1
	p.state.TotalPages = TotalPages(p.state.TotalItems, size)
}
