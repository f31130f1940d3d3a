package adapters

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dbcsheet/internal/types"
)

func TestCellRecordsNumericSource(t *testing.T) {
	var row Row
	require.NoError(t, yaml.Unmarshal([]byte(`
Value: 100
Quoted: "100"
Ratio: 0.5
Label: " Event "
Missing: ~
`), &row))

	want := Row{
		"Value":   {Text: "100", Numeric: true},
		"Quoted":  {Text: "100"},
		"Ratio":   {Text: "0.5", Numeric: true},
		"Label":   {Text: "Event"},
		"Missing": {},
	}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Fatalf("unexpected row (-want +got):\n%s", diff)
	}
	assert.False(t, row.Empty())
	assert.True(t, Row{"Missing": {}}.Empty())
}

func TestCellRejectsNestedValues(t *testing.T) {
	var row Row
	err := yaml.Unmarshal([]byte("Value: [1, 2]\n"), &row)
	require.Error(t, err)
}

func TestParseByteOrderSign(t *testing.T) {
	tests := []struct {
		value     string
		order     types.ByteOrder
		signed    bool
		expectErr bool
	}{
		{value: "@1+", order: types.ByteOrderIntel},
		{value: "@1-", order: types.ByteOrderIntel, signed: true},
		{value: "0+", order: types.ByteOrderMotorola},
		{value: "@0-", order: types.ByteOrderMotorola, signed: true},
		{value: "@2+", expectErr: true},
		{value: "@1*", expectErr: true},
		{value: "@1", expectErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			order, signed, err := parseByteOrderSign(tt.value)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.order, order)
			assert.Equal(t, tt.signed, signed)
		})
	}
}

func TestParsePair(t *testing.T) {
	factor, offset, err := parsePair("(0.1,-40)", "(", ",", ")", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.1, factor)
	assert.Equal(t, -40.0, offset)

	minimum, maximum, err := parsePair("[0|250]", "[", "|", "]", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, minimum)
	assert.Equal(t, 250.0, maximum)

	factor, offset, err = parsePair("", "(", ",", ")", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, factor)
	assert.Equal(t, 0.0, offset)

	_, _, err = parsePair("(1;2)", "(", ",", ")", 1, 0)
	require.Error(t, err)
	_, _, err = parsePair("[a|2]", "[", "|", "]", 0, 0)
	require.Error(t, err)
}

func TestParseValueDescriptions(t *testing.T) {
	values, err := parseValueDescriptions(`0:"Off" 1:"On" -1:"Error"`)
	require.NoError(t, err)
	want := []types.ValueDescription{
		{Value: 0, Description: "Off"},
		{Value: 1, Description: "On"},
		{Value: -1, Description: "Error"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}

	values, err = parseValueDescriptions(`3 "Three"`)
	require.NoError(t, err)
	require.Len(t, values, 1)

	values, err = parseValueDescriptions("")
	require.NoError(t, err)
	assert.Nil(t, values)

	_, err = parseValueDescriptions(`0:"Off" garbage`)
	require.Error(t, err)
}

func TestCellHelpers(t *testing.T) {
	assert.True(t, validMultiplexing(""))
	assert.True(t, validMultiplexing("M"))
	assert.True(t, validMultiplexing("m3"))
	assert.True(t, validMultiplexing("m12M"))
	assert.False(t, validMultiplexing("X"))
	assert.False(t, validMultiplexing("m"))

	assert.True(t, isInlineValueTable(`0:"Off"`))
	assert.False(t, isInlineValueTable("OnOff"))

	assert.Equal(t, []string{"Cyclic", "Event", "IfActive"}, parseEnumValues(`"Cyclic", "Event",IfActive`))
	assert.Nil(t, parseEnumValues(" , "))

	on, err := parseBool("Yes")
	require.NoError(t, err)
	assert.True(t, on)
	off, err := parseBool("")
	require.NoError(t, err)
	assert.False(t, off)
	_, err = parseBool("maybe")
	require.Error(t, err)
}
