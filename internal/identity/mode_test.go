package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeString(t *testing.T) {
	assert.Equal(t, "rwxr-xr-x", Mode(0o755).String())
	assert.Equal(t, "rw-rw----", Mode(0o660).String())
	assert.Equal(t, "---------", Mode(0).String())
	assert.Equal(t, "640", Mode(0o640).Octal())
}

func TestParseModeString(t *testing.T) {
	m, err := ParseModeString("rw-r-----")
	require.NoError(t, err)
	assert.Equal(t, Mode(0o640), m)

	_, err = ParseModeString("rw-r--")
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = ParseModeString("wr-r-----")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		current Mode
		want    Mode
		wantErr bool
	}{
		{name: "octal", expr: "750", current: 0o644, want: 0o750},
		{name: "octal with leading zero", expr: "0600", current: 0o644, want: 0o600},
		{name: "add user execute", expr: "u+x", current: 0o644, want: 0o744},
		{name: "remove group write", expr: "g-w", current: 0o664, want: 0o644},
		{name: "assign other empty", expr: "o=", current: 0o647, want: 0o640},
		{name: "assign replaces triad", expr: "g=r", current: 0o670, want: 0o640},
		{name: "clause list", expr: "u+x,g-w,o=r", current: 0o666, want: 0o744},
		{name: "empty who means all", expr: "+x", current: 0o644, want: 0o755},
		{name: "all", expr: "a-r", current: 0o644, want: 0o200},
		{name: "multiple who", expr: "go+w", current: 0o644, want: 0o666},
		{name: "bad permission letter", expr: "u+q", current: 0o644, wantErr: true},
		{name: "bad operator", expr: "u*x", current: 0o644, wantErr: true},
		{name: "missing operator", expr: "u", current: 0o644, wantErr: true},
		{name: "empty clause", expr: "u+x,", current: 0o644, wantErr: true},
		{name: "second clause invalid", expr: "u+x,g+z", current: 0o644, wantErr: true},
		{name: "single octal digit", expr: "7", current: 0o644, want: 0o007},
		{name: "two octal digits", expr: "44", current: 0o600, want: 0o044},
		{name: "zero", expr: "0", current: 0o755, want: 0o000},
		{name: "octal out of range", expr: "789", current: 0o644, wantErr: true},
		{name: "special bits unsupported", expr: "4755", current: 0o644, wantErr: true},
		{name: "too many digits", expr: "00644", current: 0o644, wantErr: true},
		{name: "empty", expr: "", current: 0o644, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.expr, tt.current)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMode)
				assert.Equal(t, tt.current, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}
