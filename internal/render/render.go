// Package render turns command output into the terminal's display markup.
//
// Output that reaches the browser is HTML. Every piece of user-controlled
// text is escaped before it is wrapped in markup, and Guard runs the final
// string through an allow-list that keeps only <span class="..."> so a
// handler mistake cannot smuggle active content into the page. Plain is
// the inverse used when output is redirected into a file.
package render

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// CSS classes understood by the terminal front end.
const (
	ClassDir       = "dir"
	ClassFile      = "file"
	ClassError     = "error"
	ClassHighlight = "highlight"
	ClassPath      = "path"
	ClassMuted     = "muted"
)

var (
	classPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	guard        = newGuard()
	strict       = bluemonday.StrictPolicy()
)

func newGuard() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowNoAttrs().OnElements("span")
	p.AllowAttrs("class").Matching(classPattern).OnElements("span")
	return p
}

// Escape makes s safe to embed in markup.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Span escapes text and wraps it in a span of class.
func Span(class, text string) string {
	if !classPattern.MatchString(class) {
		return Escape(text)
	}
	return `<span class="` + class + `">` + Escape(text) + `</span>`
}

// Highlight escapes line and wraps every match of re in a highlight span.
func Highlight(line string, re *regexp.Regexp) string {
	if re == nil {
		return Escape(line)
	}
	locs := re.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return Escape(line)
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		b.WriteString(Escape(line[last:loc[0]]))
		b.WriteString(Span(ClassHighlight, line[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(Escape(line[last:]))
	return b.String()
}

// Guard strips everything but span elements with simple class names.
func Guard(markup string) string {
	return guard.Sanitize(markup)
}

// Plain converts display markup back into the text a file would hold.
func Plain(markup string) string {
	return html.UnescapeString(strict.Sanitize(markup))
}
