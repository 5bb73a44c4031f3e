package feed

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Sanitize strips markup from a feed-item fragment, keeping text content
// in document order, decodes character entities and collapses whitespace.
// It always returns a plain string; empty input yields "".
//
// Upstream feeds carry macronized Maori vowels in both composed and
// combining forms, so the result is NFC-normalized to keep substring
// matching against the keyword lists stable.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	text := stripTags(raw)

	// Entity references can survive one level of encoding inside CDATA,
	// so decode after tag removal as well.
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, " ", " ")

	text = norm.NFC.String(text)

	return strings.Join(strings.Fields(text), " ")
}

func stripTags(raw string) string {
	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))

	var b strings.Builder
	for {
		switch tokenizer.Next() {
		case xhtml.ErrorToken:
			// io.EOF or malformed input; either way we keep what we have.
			return b.String()
		case xhtml.TextToken:
			b.Write(tokenizer.Text())
			b.WriteByte(' ')
		}
	}
}
