package request

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildDefaults(t *testing.T) {
	doc := Build(New("golang"))

	if doc.Query != "golang" {
		t.Errorf("Query = %q, want %q", doc.Query, "golang")
	}
	if doc.Page != 0 {
		t.Errorf("Page = %d, want 0", doc.Page)
	}
	want := GroupBy{Attr: GroupNone, Mode: GroupModeFlat, GroupsOnPage: 10, DocsInGroup: 1}
	if doc.GroupBy != want {
		t.Errorf("GroupBy = %+v, want %+v", doc.GroupBy, want)
	}
	if doc.SortBy != SortRelevance {
		t.Errorf("SortBy = %q, want %q", doc.SortBy, SortRelevance)
	}
	if doc.MaxPassages != 2 || doc.MaxTitleLength != 160 || doc.MaxHeadlineLength != 160 ||
		doc.MaxPassageLength != 160 || doc.MaxTextLength != 640 {
		t.Errorf("unexpected snippet sizes: %+v", doc)
	}
}

func TestBuildGroupMode(t *testing.T) {
	tests := []struct {
		name     string
		group    Group
		mode     GroupMode
		wantMode GroupMode
	}{
		{name: "no grouping forces flat", group: GroupNone, mode: GroupModeDeep, wantMode: GroupModeFlat},
		{name: "site grouping keeps deep", group: GroupSite, mode: GroupModeDeep, wantMode: GroupModeDeep},
		{name: "site grouping keeps wide", group: GroupSite, mode: GroupModeWide, wantMode: GroupModeWide},
		{name: "empty mode is flat", group: GroupSite, mode: "", wantMode: GroupModeFlat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("q")
			r.Group = tt.group
			r.GroupMode = tt.mode
			doc := Build(r)
			if doc.GroupBy.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", doc.GroupBy.Mode, tt.wantMode)
			}
			if doc.GroupBy.Attr != tt.group {
				t.Errorf("Attr = %q, want %q", doc.GroupBy.Attr, tt.group)
			}
			if doc.GroupBy.DocsInGroup != 1 {
				t.Errorf("DocsInGroup = %d, want 1", doc.GroupBy.DocsInGroup)
			}
		})
	}
}

func TestMarshalLayout(t *testing.T) {
	r := New("golang")
	r.Page = 3
	r.Limit = 20
	r.Sort = SortTime
	r.Group = GroupSite
	r.GroupMode = GroupModeDeep

	data, err := Build(r).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`) {
		t.Errorf("missing XML declaration: %s", out)
	}

	// Elements must appear in this order.
	order := []string{
		"<request>",
		"<query>golang</query>",
		"<page>3</page>",
		"<groupings>",
		`<groupby attr="d" mode="deep" groups-on-page="20" docs-in-group="1">`,
		"</groupings>",
		"<sortby>tm</sortby>",
		"<maxpassages>2</maxpassages>",
		"<max-title-length>160</max-title-length>",
		"<max-headline-length>160</max-headline-length>",
		"<max-passage-length>160</max-passage-length>",
		"<max-text-length>640</max-text-length>",
		"</request>",
	}
	pos := 0
	for _, s := range order {
		i := strings.Index(out[pos:], s)
		if i < 0 {
			t.Fatalf("%q not found after offset %d in:\n%s", s, pos, out)
		}
		pos += i + len(s)
	}
}

func TestMarshalEmptyGroupAttr(t *testing.T) {
	data, err := Build(New("q")).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `attr="" mode="flat"`) {
		t.Errorf("empty group attribute not emitted:\n%s", data)
	}
}

func TestMarshalEscapesQuery(t *testing.T) {
	r := New("a < b & c")
	r.Host = "example.com"
	data, err := Build(r).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), "<query>a &lt; b &amp; c host:&#34;example.com&#34;</query>") {
		t.Errorf("query not escaped:\n%s", data)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	r := New("round trip")
	r.Page = 2
	r.Limit = 50
	r.Group = GroupSite
	r.GroupMode = GroupModeWide
	r.Host = "example.com"
	r.Geo = 213
	r.Options.MaxPassages = 5

	doc := Build(r)
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() error: %v", err)
	}

	// XMLName is filled in by the decoder only.
	got.XMLName = doc.XMLName
	if got != doc {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, doc)
	}
}

func TestOptions(t *testing.T) {
	o := DefaultOptions()

	if err := o.Set(OptMaxPassages, 4); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if v, _ := o.Get(OptMaxPassages); v != 4 {
		t.Errorf("Get(maxpassages) = %d, want 4", v)
	}

	err := o.Set("max-snippet-length", 10)
	if !errors.Is(err, ErrUnknownOption) {
		t.Errorf("Set(unknown) error = %v, want ErrUnknownOption", err)
	}
	if _, err := o.Get("nope"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("Get(unknown) error = %v, want ErrUnknownOption", err)
	}

	err = o.Apply(map[string]int{OptMaxTextLength: 800, "bogus": 1})
	if !errors.Is(err, ErrUnknownOption) {
		t.Errorf("Apply() error = %v, want ErrUnknownOption", err)
	}

	o = DefaultOptions()
	if err := o.Apply(map[string]int{OptMaxTextLength: 800, OptMaxTitleLength: 100}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if o.MaxTextLength != 800 || o.MaxTitleLength != 100 || o.MaxPassages != 2 {
		t.Errorf("Apply() result = %+v", o)
	}
}
