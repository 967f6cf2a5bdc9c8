package pagination

import (
	"reflect"
	"testing"
)

func TestPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "rounds up", total: 95, limit: 10, want: 10},
		{name: "exact", total: 100, limit: 10, want: 10},
		{name: "single partial page", total: 3, limit: 10, want: 1},
		{name: "no results", total: 0, limit: 10, want: 0},
		{name: "zero limit", total: 50, limit: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pages(tt.total, tt.limit); got != tt.want {
				t.Errorf("Pages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func link(p int) Entry    { return Entry{Kind: KindLink, Page: p, Text: LinkTemplate} }
func current(p int) Entry { return Entry{Kind: KindCurrent, Page: p, Text: CurrentTemplate} }
func dots() Entry         { return Entry{Kind: KindText, Page: -1, Text: Ellipsis} }

func TestBar(t *testing.T) {
	tests := []struct {
		name  string
		pages int
		page  int
		want  []Entry
	}{
		{
			name:  "few pages",
			pages: 5,
			page:  2,
			want:  []Entry{link(0), link(1), current(2), link(3), link(4)},
		},
		{
			name:  "single page",
			pages: 1,
			page:  0,
			want:  []Entry{current(0)},
		},
		{
			name:  "no pages still marks current",
			pages: 0,
			page:  0,
			want:  []Entry{current(0)},
		},
		{
			name:  "many pages, early current",
			pages: 30,
			page:  4,
			want: []Entry{
				link(0), link(1), link(2), link(3), current(4),
				link(5), link(6), link(7), link(8), link(9),
			},
		},
		{
			name:  "many pages, current at last leading slot",
			pages: 30,
			page:  8,
			want: []Entry{
				link(0), link(1), link(2), link(3), link(4),
				link(5), link(6), link(7), current(8), link(9),
			},
		},
		{
			name:  "collapsed with trailing block",
			pages: 20,
			page:  15,
			want:  []Entry{link(0), link(1), dots(), link(13), link(14), current(15), link(16)},
		},
		{
			name:  "collapsed without trailing block",
			pages: 17,
			page:  15,
			want:  []Entry{link(0), link(1), dots(), link(13), link(14), current(15)},
		},
		{
			name:  "collapsed at first collapsing page",
			pages: 10,
			page:  9,
			want:  []Entry{link(0), link(1), dots(), link(7), link(8), current(9)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bar(tt.pages, tt.page)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Bar(%d, %d) =\n  %+v\nwant\n  %+v", tt.pages, tt.page, got, tt.want)
			}
		})
	}
}
