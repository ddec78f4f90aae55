package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeTextPreserving},
		{in: "text", want: ModeTextPreserving},
		{in: " IMAGE ", want: ModeImageFallback},
		{in: "Preserve editable text (recommended)", want: ModeTextPreserving},
		{in: "exact layout as images (fallback)", want: ModeImageFallback},
		{in: "ocr", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeLabels(t *testing.T) {
	for _, m := range Modes {
		assert.True(t, m.Valid())
		assert.NotEmpty(t, m.Label())
	}
	assert.False(t, Mode("pdf").Valid())
}

func TestPageRange(t *testing.T) {
	assert.Equal(t, 3, PageRange{Start: 2, End: 4}.Len())
	assert.Equal(t, "2-4", PageRange{Start: 2, End: 4}.String())
	assert.Equal(t, "7", PageRange{Start: 7, End: 7}.String())
}
