package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexID(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected uint32
		wantErr  bool
	}{
		{name: "bare", value: "100", expected: 0x100},
		{name: "prefixed", value: "0x1A2", expected: 0x1A2},
		{name: "upper prefix", value: "0XFF", expected: 0xFF},
		{name: "padded", value: "  7ff ", expected: 0x7FF},
		{name: "extended", value: "0x18FEF100", expected: 0x18FEF100},
		{name: "empty", value: "", wantErr: true},
		{name: "prefix only", value: "0x", wantErr: true},
		{name: "not hex", value: "0xZZ", wantErr: true},
		{name: "too large", value: "0x1FFFFFFFF", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexID(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatHexID(t *testing.T) {
	assert.Equal(t, "0x100", FormatHexID(256))
	assert.Equal(t, "0x18FEF100", FormatHexID(0x18FEF100))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"ECU1", "ECU2", "ECU3"}, SplitList("ECU1, ECU2 ECU3"))
	assert.Nil(t, SplitList("  ,, "))
}
