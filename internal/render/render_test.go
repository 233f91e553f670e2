package render

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;x&lt;/b&gt; &amp;", Escape("<b>x</b> &"))
}

func TestSpan(t *testing.T) {
	assert.Equal(t, `<span class="dir">a&lt;b</span>`, Span(ClassDir, "a<b"))
	assert.Equal(t, "x", Span(`bad" onclick="`, "x"))
}

func TestHighlight(t *testing.T) {
	re := regexp.MustCompile("Error")
	got := Highlight("<1> Error: Error", re)
	assert.Equal(t,
		`&lt;1&gt; <span class="highlight">Error</span>: <span class="highlight">Error</span>`,
		got)
	assert.Equal(t, "plain", Highlight("plain", re))
	assert.Equal(t, "abc", Highlight("abc", regexp.MustCompile("x*")))
}

func TestGuard(t *testing.T) {
	assert.Equal(t, `<span class="dir">docs</span>`, Guard(`<span class="dir">docs</span>`))
	assert.Equal(t, "hi", Guard(`<script>alert(1)</script>hi`))
	assert.NotContains(t, Guard(`<span onclick="x()">a</span>`), "onclick")
	assert.NotContains(t, Guard(`<img src=x onerror=alert(1)>`), "img")
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "a<b & docs", Plain(`a&lt;b &amp; <span class="dir">docs</span>`))
	assert.Equal(t, "line1\nline2", Plain("line1\nline2"))
}
