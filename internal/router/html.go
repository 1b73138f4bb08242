package router

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	urlPattern       = regexp.MustCompile(`https?://[^\s<>"')]+`)
	anchorOpenSuffix = regexp.MustCompile(`<a\s[^>]*>$`)
)

// htmlize applies the presentation layer's output contract: literal newlines
// become <br> markers and bare links are wrapped in anchors. Links already
// inside anchor markup are left alone.
func htmlize(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n", "<br>")
	return wrapBareLinks(text)
}

func wrapBareLinks(text string) string {
	matches := urlPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(text[last:start])
		url := text[start:end]
		if insideAnchor(text, start) {
			b.WriteString(url)
		} else {
			fmt.Fprintf(&b, `<a href="%s" target="_blank">%s</a>`, url, url)
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// insideAnchor reports whether the URL starting at pos is already part of
// anchor markup, either as an href value or as the anchor body.
func insideAnchor(text string, pos int) bool {
	prefix := text[:pos]
	return strings.HasSuffix(prefix, `href="`) || anchorOpenSuffix.MatchString(prefix)
}
