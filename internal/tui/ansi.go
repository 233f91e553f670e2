package tui

import (
	"html"
	"regexp"
	"strings"
)

var spanPattern = regexp.MustCompile(`<span class="([a-z][a-z0-9-]*)">(.*?)</span>`)

// Styled turns guarded display markup into styled terminal text. Spans
// with an unknown class keep their text unstyled.
func Styled(markup string) string {
	var b strings.Builder
	last := 0
	for _, m := range spanPattern.FindAllStringSubmatchIndex(markup, -1) {
		b.WriteString(html.UnescapeString(markup[last:m[0]]))
		class := markup[m[2]:m[3]]
		text := html.UnescapeString(markup[m[4]:m[5]])
		if style, ok := classStyles[class]; ok {
			text = style.Render(text)
		}
		b.WriteString(text)
		last = m[1]
	}
	b.WriteString(html.UnescapeString(markup[last:]))
	return b.String()
}
