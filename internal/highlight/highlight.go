// Package highlight converts the service's highlight markup into inline
// emphasis. Matched words wrapped in <hlword> become <strong>; every other tag
// is dropped and text is kept as-is.
package highlight

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

const (
	hlword = "hlword"
	strong = "strong"
)

// Fragment converts the inner markup of a highlighted element.
func Fragment(markup string) string {
	if markup == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(expandCDATA(markup)))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF; a strings.Reader has no other failure mode.
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		case html.StartTagToken:
			name, _ := z.TagName()
			// Tags such as <title> would otherwise switch the tokenizer to raw text.
			z.NextIsNotRawText()
			if isEmphasis(name) {
				b.WriteString("<strong>")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isEmphasis(name) {
				b.WriteString("</strong>")
			}
		}
		// Comments, doctypes and self-closing tags are dropped.
	}
}

func isEmphasis(name []byte) bool {
	s := string(name)
	return s == hlword || s == strong
}

// expandCDATA replaces CDATA sections with their escaped text. The HTML
// tokenizer would otherwise read them as bogus comments ending at the first '>'.
// An unterminated section runs to the end of markup.
func expandCDATA(markup string) string {
	if !strings.Contains(markup, cdataOpen) {
		return markup
	}

	var b strings.Builder
	for {
		start := strings.Index(markup, cdataOpen)
		if start < 0 {
			b.WriteString(markup)
			return b.String()
		}
		b.WriteString(markup[:start])
		rest := markup[start+len(cdataOpen):]

		end := strings.Index(rest, cdataClose)
		if end < 0 {
			b.WriteString(html.EscapeString(rest))
			return b.String()
		}
		b.WriteString(html.EscapeString(rest[:end]))
		markup = rest[end+len(cdataClose):]
	}
}
