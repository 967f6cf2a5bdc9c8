package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fatih/color"
)

var (
	// ANSI colors for terminal output
	colorHeader   = color.New(color.FgHiMagenta, color.Bold)
	colorBold     = color.New(color.Bold)
	colorCyan     = color.New(color.FgCyan)
	colorEmphasis = color.New(color.FgYellow, color.Bold)
	colorFaint    = color.New(color.Faint)
)

// Terminal renders highlighted markup for a terminal: emphasised words are
// colored, other markup is dropped and entities are decoded.
func Terminal(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}

	var b strings.Builder
	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "strong", "b":
			b.WriteString(colorEmphasis.Sprint(s.Text()))
		default:
			b.WriteString(s.Text())
		}
	})
	return b.String()
}

// Plain strips all markup and decodes entities.
func Plain(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	return doc.Text()
}

func writeText(w io.Writer, r Report) error {
	if len(r.Results) == 0 {
		_, err := fmt.Fprintf(w, "No results found for '%s'.\n", r.Query)
		return err
	}

	colorHeader.Fprintf(w, "\nSearch Results for '%s'\n", r.Query)
	if r.TotalHuman != "" {
		fmt.Fprintf(w, "%s (%d documents, page %d of %d)\n\n", r.TotalHuman, r.Total, r.Page+1, r.Pages)
	} else {
		fmt.Fprintf(w, "%d documents, page %d of %d\n\n", r.Total, r.Page+1, r.Pages)
	}

	for i, res := range r.Results {
		colorBold.Fprintf(w, "%d. ", r.Page*r.Limit+i+1)
		fmt.Fprintln(w, Terminal(res.Title))
		colorCyan.Fprintf(w, "   %s", res.URL)
		colorFaint.Fprintf(w, " (%s)\n", res.Domain)
		if res.Headline != "" {
			fmt.Fprintf(w, "   %s\n", Terminal(res.Headline))
		}
		if res.Passages != "" {
			fmt.Fprintf(w, "   %s\n", Terminal(res.Passages))
		}
		if res.Sitelinks != "" {
			fmt.Fprintf(w, "   > %s\n", Terminal(res.Sitelinks))
		}
		fmt.Fprintln(w)
	}

	if len(r.PageBar) > 1 {
		labels := make([]string, 0, len(r.PageBar))
		for _, e := range r.PageBar {
			labels = append(labels, Terminal(PageLabel(e)))
		}
		fmt.Fprintf(w, "Pages: %s\n", strings.Join(labels, " "))
	}

	if len(r.Wordstat) > 0 {
		words := make([]string, 0, len(r.Wordstat))
		for _, wc := range r.Wordstat {
			words = append(words, fmt.Sprintf("%s (%d)", wc.Word, wc.Count))
		}
		colorFaint.Fprintf(w, "Word statistics: %s\n", strings.Join(words, ", "))
	}
	return nil
}
