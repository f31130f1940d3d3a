package adapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"dbcsheet/internal/types"
)

// Cell is one workbook cell. Numeric records whether the source cell held
// a number rather than text.
type Cell struct {
	Text    string
	Numeric bool
}

func (c *Cell) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: cell must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*c = Cell{}
	case "!!int", "!!float":
		*c = Cell{Text: strings.TrimSpace(node.Value), Numeric: true}
	default:
		*c = Cell{Text: strings.TrimSpace(node.Value)}
	}
	return nil
}

// Row maps column headers to cells.
type Row map[string]Cell

func (r Row) Text(column string) string {
	return r[column].Text
}

func (r Row) Empty() bool {
	for _, cell := range r {
		if cell.Text != "" {
			return false
		}
	}
	return true
}

var (
	valueEntryPattern = regexp.MustCompile(`(-?\d+)\s*:?\s*"([^"]*)"`)
	multiplexPattern  = regexp.MustCompile(`^(M|m\d+M?)$`)
)

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "0", "no", "n":
		return false, nil
	case "true", "1", "yes", "y", "x":
		return true, nil
	default:
		return false, fmt.Errorf("%q is not a boolean", value)
	}
}

func parseOptionalInt(value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(value))
}

func parseOptionalFloat(value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

func parseOptionalFloatPtr(value string) (*float64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseValueDescriptions reads `0:"Off" 1:"On"` (or the network file form
// `0 "Off" 1 "On"`) into ordered pairs.
func parseValueDescriptions(value string) ([]types.ValueDescription, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	matches := valueEntryPattern.FindAllStringSubmatch(trimmed, -1)
	leftover := strings.TrimSpace(valueEntryPattern.ReplaceAllString(trimmed, ""))
	if len(matches) == 0 || leftover != "" {
		return nil, fmt.Errorf("malformed value descriptions %q", value)
	}
	out := make([]types.ValueDescription, 0, len(matches))
	for _, match := range matches {
		number, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, types.ValueDescription{Value: number, Description: match[2]})
	}
	return out, nil
}

// isInlineValueTable tells an inline value list apart from a value table
// name.
func isInlineValueTable(value string) bool {
	return strings.Contains(value, `"`)
}

// parseByteOrderSign reads "@1+" style cells: 1 is Intel, 0 Motorola; +
// is unsigned and - signed.
func parseByteOrderSign(value string) (types.ByteOrder, bool, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "@")
	if len(trimmed) != 2 {
		return "", false, fmt.Errorf("byte order %q must look like @1+", value)
	}
	var order types.ByteOrder
	switch trimmed[0] {
	case '1':
		order = types.ByteOrderIntel
	case '0':
		order = types.ByteOrderMotorola
	default:
		return "", false, fmt.Errorf("byte order %q must start with 0 or 1", value)
	}
	switch trimmed[1] {
	case '+':
		return order, false, nil
	case '-':
		return order, true, nil
	default:
		return "", false, fmt.Errorf("byte order %q must end with + or -", value)
	}
}

// parsePair splits "(a,b)" or "[a|b]" into two floats. Empty cells yield
// the defaults.
func parsePair(value string, open string, sep string, close string, defA float64, defB float64) (float64, float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defA, defB, nil
	}
	trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, open), close)
	parts := strings.Split(trimmed, sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%q must look like %sa%sb%s", value, open, sep, close)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", value, err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", value, err)
	}
	return a, b, nil
}

func validMultiplexing(value string) bool {
	return value == "" || multiplexPattern.MatchString(value)
}

// parseEnumValues splits `"Cyclic","Event"` into labels.
func parseEnumValues(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		label := strings.Trim(strings.TrimSpace(part), `"`)
		if label != "" {
			out = append(out, label)
		}
	}
	return out
}
