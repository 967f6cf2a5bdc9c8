// Package pagination computes page counts and the page bar shown under a
// result list.
package pagination

// Kind of a page bar entry.
type Kind string

const (
	KindLink    Kind = "link"
	KindCurrent Kind = "current"
	KindText    Kind = "text"
)

// Display templates. Link and current entries expect the page number.
const (
	LinkTemplate    = "%d"
	CurrentTemplate = "<b>%d</b>"
	Ellipsis        = ".."
)

// fullBar is the number of leading links shown before the bar collapses.
const fullBar = 10

// Entry is one element of the page bar.
type Entry struct {
	Kind Kind   `json:"type" yaml:"type"`
	// Page is the 0-based page index, or -1 for the ellipsis.
	Page int    `json:"page" yaml:"page"`
	Text string `json:"text" yaml:"text"`
}

// Pages returns ceil(total / limit), or 0 when limit is not positive.
func Pages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// bar is an insertion-ordered set of entries keyed by page index.
type bar struct {
	entries []Entry
	index   map[int]int
}

func newBar() *bar {
	return &bar{index: make(map[int]int)}
}

// fill adds links for pages [start, start+n) that are not present yet.
func (b *bar) fill(start, n int) {
	for p := start; p < start+n; p++ {
		if _, ok := b.index[p]; ok {
			continue
		}
		b.index[p] = len(b.entries)
		b.entries = append(b.entries, Entry{Kind: KindLink, Page: p, Text: LinkTemplate})
	}
}

// current marks page as the current one, appending it when absent.
func (b *bar) current(page int) {
	e := Entry{Kind: KindCurrent, Page: page, Text: CurrentTemplate}
	if i, ok := b.index[page]; ok {
		b.entries[i] = e
		return
	}
	b.index[page] = len(b.entries)
	b.entries = append(b.entries, e)
}

// ellipsis appends the collapsed-range marker. It occupies the key after the
// highest key in use, so a later fill covering that key leaves it in place.
func (b *bar) ellipsis() {
	key := 0
	for k := range b.index {
		if k+1 > key {
			key = k + 1
		}
	}
	b.index[key] = len(b.entries)
	b.entries = append(b.entries, Entry{Kind: KindText, Page: -1, Text: Ellipsis})
}

// Bar builds the page bar for the given page count and 0-based current page.
//
// Below ten pages every page is listed. Otherwise the first ten pages are
// listed while the current page is among them; past that the bar shows the
// first two pages, an ellipsis, the two pages before the current one and,
// when more than two pages follow, the current page and the one after it.
func Bar(pages, page int) []Entry {
	b := newBar()

	switch {
	case pages < fullBar:
		b.fill(0, pages)
	case page < fullBar-1:
		b.fill(0, fullBar)
	default:
		b.fill(0, 2)
		b.ellipsis()
		b.fill(page-2, 2)
		if pages > page+2 {
			b.fill(page, 2)
		}
	}
	b.current(page)

	return b.entries
}
