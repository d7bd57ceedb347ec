// Package sanitize cleans user-submitted rich text before it is stored.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// AllowedTags is the set of elements kept in post bodies and comments.
var AllowedTags = []string{
	"a", "abbr", "acronym", "address", "b", "blockquote", "br", "code", "div", "dl", "dt", "em",
	"h1", "h2", "h3", "h4", "h5", "h6", "hr", "i", "img", "li", "ol", "p", "pre", "q", "s",
	"small", "span", "strike", "strong", "sub", "sup", "table", "tbody", "td", "tfoot", "th",
	"thead", "tr", "tt", "u", "ul",
}

var (
	richText  = newRichTextPolicy()
	plainText = bluemonday.StrictPolicy()
)

func newRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	p.AllowAttrs("href", "target", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")

	// Text inside removed elements survives, escaped.
	p.AllowElementsContent(
		"frame", "frameset", "iframe", "noembed", "noframes",
		"noscript", "nostyle", "object", "title",
	)

	// Links and images must parse and stay on web schemes.
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")
	return p
}

// HTML removes every tag and attribute outside the allowlist. Markup of a
// disallowed element is dropped while its text is kept as escaped text.
// The result is stable: HTML(HTML(s)) == HTML(s).
func HTML(input string) string {
	return richText.Sanitize(unwrapRawText(input))
}

// unwrapRawText drops script and style tags and escapes their bodies.
// bluemonday always discards the content of those two elements, so they are
// turned into plain text before the policy runs.
func unwrapRawText(input string) string {
	if !strings.Contains(input, "<") {
		return input
	}

	var b strings.Builder
	b.Grow(len(input))
	z := html.NewTokenizer(strings.NewReader(input))
	inRaw := false
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				inRaw = tt != html.EndTagToken
				continue
			}
		case html.TextToken:
			if inRaw {
				b.WriteString(html.EscapeString(string(z.Text())))
				continue
			}
		}
		b.Write(z.Raw())
	}
}

// Text strips all markup and returns escaped plain text.
func Text(input string) string {
	return plainText.Sanitize(input)
}
