// Package page describes a window over an ordered result set.
package page

import "math"

// Request selects a zero-based page of Size items.
type Request struct {
	Index int `json:"page"`
	Size  int `json:"size"`
}

// Offset is the number of items skipped before this page. It is only
// meaningful when InRange is true.
func (r Request) Offset() int {
	return r.Index * r.Size
}

// InRange reports whether r selects a window that can hold items: a positive
// size, a non-negative index, and an end offset that fits in an int.
func (r Request) InRange() bool {
	return r.Size > 0 && r.Index >= 0 && r.Index <= maxIndex(r.Size)
}

// Normalize clamps a caller supplied request: a negative index becomes 0,
// a non-positive size becomes defaultSize, sizes above maxSize are capped and
// an index whose offset would overflow is lowered to the last representable one.
func (r Request) Normalize(defaultSize, maxSize int) Request {
	if r.Index < 0 {
		r.Index = 0
	}
	if r.Size <= 0 {
		r.Size = defaultSize
	}
	if maxSize > 0 && r.Size > maxSize {
		r.Size = maxSize
	}
	if r.Size > 0 && r.Index > maxIndex(r.Size) {
		r.Index = maxIndex(r.Size)
	}
	return r
}

// maxIndex is the largest index whose window end does not overflow.
func maxIndex(size int) int {
	return (math.MaxInt - size) / size
}

// Page is one window of results plus the total number of matches.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageIndex  int   `json:"pageIndex"`
	PageSize   int   `json:"pageSize"`
}

// New builds a page for req.
func New[T any](items []T, total int64, req Request) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		PageIndex:  req.Index,
		PageSize:   req.Size,
	}
}

// Map converts the items of p with fn, keeping the paging data.
func Map[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return Page[R]{
		Items:      out,
		TotalCount: p.TotalCount,
		PageIndex:  p.PageIndex,
		PageSize:   p.PageSize,
	}
}

// Window returns the part of items selected by req.
func Window[T any](items []T, req Request) []T {
	if !req.InRange() {
		return []T{}
	}
	start := req.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+req.Size, len(items))
	return items[start:end]
}
