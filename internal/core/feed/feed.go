package feed

// DefaultPageSize is the number of posts per feed page.
const DefaultPageSize = 10

// Window describes which slice of an ordered result set a page covers.
type Window struct {
	Number   int
	Size     int
	NumPages int
	Offset   int
}

func (w Window) HasNext() bool     { return w.Number < w.NumPages }
func (w Window) HasPrevious() bool { return w.Number > 1 }

// Paginate resolves the requested page against total rows. Pages below 1
// become page 1 and pages past the end become the last page; an empty set
// still has exactly one (empty) page.
func Paginate(total int64, requested, size int) Window {
	if size <= 0 {
		size = DefaultPageSize
	}
	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	n := requested
	if n < 1 {
		n = 1
	}
	if n > numPages {
		n = numPages
	}

	return Window{
		Number:   n,
		Size:     size,
		NumPages: numPages,
		Offset:   (n - 1) * size,
	}
}
