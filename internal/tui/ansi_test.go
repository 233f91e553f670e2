package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyled(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{"plain", "a &amp; b", []string{"a & b"}},
		{"known class", `<span class="dir">docs</span>  <span class="file">a.txt</span>`, []string{"docs", "a.txt"}},
		{"unknown class", `<span class="sparkle">x &lt;y&gt;</span>`, []string{"x <y>"}},
		{"highlight", `[11:22] <span class="highlight">Error</span>: timeout`, []string{"[11:22] ", "Error", ": timeout"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Styled(tt.markup)
			assert.NotContains(t, got, "<span")
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}
