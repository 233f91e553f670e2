package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"override", map[string]string{"TERMQUEST_NON_INTERACTIVE": "1"}},
		{"ci", map[string]string{"CI": "true"}},
		{"no color", map[string]string{"NO_COLOR": "1"}},
		// stdin and stdout are not terminals under go test
		{"no terminal", map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TERMQUEST_NON_INTERACTIVE", "")
			t.Setenv("CI", "")
			t.Setenv("NO_COLOR", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, ModeNonInteractive, DetectMode())
			assert.False(t, IsInteractive())
		})
	}
}
