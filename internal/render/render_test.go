package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/f4ah6o/xmlsearch-go/internal/pagination"
	"github.com/f4ah6o/xmlsearch-go/internal/response"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

func sampleReport() Report {
	return Report{
		Query:      "golang",
		Total:      95,
		TotalHuman: "found 95 answers",
		Page:       1,
		Limit:      10,
		Pages:      10,
		Results: []response.ResultItem{
			{
				URL:       "https://go.dev/",
				Domain:    "go.dev",
				Title:     "The <strong>Go</strong> Programming Language",
				Headline:  "Fast &amp; <strong>simple</strong>",
				Sitelinks: "Download <strong>Go</strong>",
			},
		},
		Wordstat: []WordCount{{Word: "go", Count: 45000}, {Word: "golang", Count: 1200}},
		PageBar:  pagination.Bar(10, 1),
	}
}

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "text", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: "yml", want: FormatYAML},
		{in: "md", want: FormatMarkdown},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlainAndTerminal(t *testing.T) {
	in := "Fast &amp; <strong>simple</strong> <b>go</b>"
	if got := Plain(in); got != "Fast & simple go" {
		t.Errorf("Plain() = %q", got)
	}
	if got := Terminal(in); got != "Fast & simple go" {
		t.Errorf("Terminal() without color = %q", got)
	}
}

func TestPageLabel(t *testing.T) {
	tests := []struct {
		entry pagination.Entry
		want  string
	}{
		{entry: pagination.Entry{Kind: pagination.KindLink, Page: 0, Text: pagination.LinkTemplate}, want: "1"},
		{entry: pagination.Entry{Kind: pagination.KindCurrent, Page: 4, Text: pagination.CurrentTemplate}, want: "<b>5</b>"},
		{entry: pagination.Entry{Kind: pagination.KindText, Page: -1, Text: pagination.Ellipsis}, want: ".."},
	}

	for _, tt := range tests {
		if got := PageLabel(tt.entry); got != tt.want {
			t.Errorf("PageLabel(%+v) = %q, want %q", tt.entry, got, tt.want)
		}
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, sampleReport()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Search Results for 'golang'",
		"found 95 answers (95 documents, page 2 of 10)",
		"11. The Go Programming Language",
		"https://go.dev/ (go.dev)",
		"Fast & simple",
		"   > Download Go",
		"Pages: 1 2 3 4 5 6 7 8 9 10",
		"Word statistics: go (45000), golang (1200)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, Report{Query: "zzz"}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if buf.String() != "No results found for 'zzz'.\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleReport()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	var got Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Total != 95 || len(got.Results) != 1 || got.Results[0].Title != "The <strong>Go</strong> Programming Language" {
		t.Errorf("decoded = %+v", got)
	}
	if len(got.PageBar) != 10 || got.PageBar[1].Kind != pagination.KindCurrent {
		t.Errorf("page bar = %+v", got.PageBar)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, sampleReport()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got["total_human"] != "found 95 answers" || got["total"] != 95 {
		t.Errorf("decoded = %v", got)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatMarkdown, sampleReport()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`# Search results for "golang"`,
		"**Go**",
		"(https://go.dev/)",
		"**simple**",
		"Download **Go**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}
