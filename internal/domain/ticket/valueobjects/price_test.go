package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePriceText(t *testing.T) {
	assert.Equal(t, "12.50", NormalizePriceText(" $12.50 "))
	assert.Equal(t, "1250.00", NormalizePriceText("$1,250.00"))
	assert.Equal(t, "-5", NormalizePriceText("-5"))
	assert.Equal(t, "", NormalizePriceText("  $ "))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		wantErr bool
	}{
		{"integer", "10", 10, false},
		{"decimal", "12.50", 12.5, false},
		{"negative parses", "-5", -5, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, true},
		{"words", "ten", 0, true},
		{"nan", "NaN", 0, true},
		{"infinity", "Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
