package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// writeMarkdown lays the report out as HTML and lets html-to-markdown turn the
// highlight markup into Markdown emphasis.
func writeMarkdown(w io.Writer, r Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "<h1>Search results for &#34;%s&#34;</h1>", html.EscapeString(r.Query))
	summary := fmt.Sprintf("%d documents", r.Total)
	if r.TotalHuman != "" {
		summary = html.EscapeString(r.TotalHuman)
	}
	fmt.Fprintf(&b, "<p>%s, page %d of %d</p>", summary, r.Page+1, r.Pages)

	if len(r.Results) > 0 {
		fmt.Fprintf(&b, `<ol start="%d">`, r.Page*r.Limit+1)
		for _, res := range r.Results {
			fmt.Fprintf(&b, `<li><p><a href="%s">%s</a> <em>%s</em></p>`,
				html.EscapeString(res.URL), res.Title, html.EscapeString(res.Domain))
			for _, part := range []string{res.Headline, res.Passages} {
				if part != "" {
					fmt.Fprintf(&b, "<p>%s</p>", part)
				}
			}
			if res.Sitelinks != "" {
				fmt.Fprintf(&b, "<p>%s</p>", res.Sitelinks)
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ol>")
	}

	if len(r.PageBar) > 1 {
		labels := make([]string, 0, len(r.PageBar))
		for _, e := range r.PageBar {
			labels = append(labels, PageLabel(e))
		}
		fmt.Fprintf(&b, "<p>Pages: %s</p>", strings.Join(labels, " "))
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(b.String())
	if err != nil {
		return fmt.Errorf("failed to convert to markdown: %w", err)
	}

	_, err = io.WriteString(w, strings.TrimSpace(markdown)+"\n")
	return err
}
