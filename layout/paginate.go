package layout

import "github.com/unidoc/unioffice/measurement"

// fitEpsilon absorbs float rounding so an exact fill still counts as fitting.
const fitEpsilon = 1e-6

// Capacity is the vertical space a page offers to paginated items.
type Capacity struct {
	Height            measurement.Distance // content area
	Overhead          measurement.Distance // reserved on every page
	FirstPageOverhead measurement.Distance // reserved on the first page only
}

// Available returns the space left for items on the given 0-based page.
func (c Capacity) Available(page int) measurement.Distance {
	avail := c.Height - c.Overhead
	if page == 0 {
		avail -= c.FirstPageOverhead
	}
	return avail
}

// Paginate splits items into pages greedily. An item that does not fit on the
// current page starts the next one; an item too large for any page is placed
// alone. Items are never split, dropped or reordered, and empty input yields
// no pages.
func Paginate[T any](items []T, measure func(T) measurement.Distance, c Capacity) [][]T {
	var pages [][]T
	var cur []T
	var used measurement.Distance
	for _, it := range items {
		h := measure(it)
		if len(cur) > 0 && used+h > c.Available(len(pages))+fitEpsilon {
			pages = append(pages, cur)
			cur = nil
			used = 0
		}
		cur = append(cur, it)
		used += h
	}
	if len(cur) > 0 {
		pages = append(pages, cur)
	}
	return pages
}
