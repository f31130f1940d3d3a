package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dbcsheet/internal/types"
)

// ValueFactory materializes a custom property value from its definition
// and the raw assignment text.
type ValueFactory func(def types.PropertyDefinition, raw string, numeric bool) (types.PropertyValue, error)

// NewPropertyValue validates raw against the definition's type and range.
// For ENUM definitions a numeric raw value is an index into the label
// list; otherwise it must match a label exactly.
func NewPropertyValue(def types.PropertyDefinition, raw string, numeric bool) (types.PropertyValue, error) {
	value := types.PropertyValue{Name: def.Name, Type: def.Type}
	text := strings.TrimSpace(raw)

	switch def.Type {
	case types.ValueTypeInt:
		parsed, err := parseInteger(text, numeric)
		if err != nil {
			return types.PropertyValue{}, invalidValue(def, raw, "expected integer")
		}
		if err := checkRange(def, float64(parsed)); err != nil {
			return types.PropertyValue{}, err
		}
		value.Int = parsed
		value.Text = strconv.FormatInt(parsed, 10)
	case types.ValueTypeHex:
		parsed, err := parseHexValue(text, numeric)
		if err != nil {
			return types.PropertyValue{}, invalidValue(def, raw, "expected hexadecimal or integer")
		}
		if err := checkRange(def, float64(parsed)); err != nil {
			return types.PropertyValue{}, err
		}
		value.Int = parsed
		value.Text = fmt.Sprintf("0x%X", parsed)
	case types.ValueTypeFloat:
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return types.PropertyValue{}, invalidValue(def, raw, "expected float")
		}
		if err := checkRange(def, parsed); err != nil {
			return types.PropertyValue{}, err
		}
		value.Float = parsed
		value.Text = strconv.FormatFloat(parsed, 'g', -1, 64)
	case types.ValueTypeString:
		value.Text = raw
	case types.ValueTypeEnum:
		index, err := enumIndex(def, text, numeric)
		if err != nil {
			return types.PropertyValue{}, err
		}
		value.Int = int64(index)
		value.Text = def.Enum[index]
	default:
		return types.PropertyValue{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("property %s has unsupported type %q", def.Name, def.Type))
	}
	return value, nil
}

func parseInteger(text string, numeric bool) (int64, error) {
	parsed, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return parsed, nil
	}
	if !numeric || errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	// numeric cells may arrive as "3.0"; int64 covers [-2^63, 2^63)
	f, ferr := strconv.ParseFloat(text, 64)
	if ferr != nil || f != math.Trunc(f) || f >= 0x1p63 || f < -0x1p63 {
		return 0, err
	}
	return int64(f), nil
}

func parseHexValue(text string, numeric bool) (int64, error) {
	lower := strings.ToLower(text)
	if !numeric && strings.HasPrefix(lower, "0x") {
		return strconv.ParseInt(text[2:], 16, 64)
	}
	return parseInteger(text, numeric)
}

func enumIndex(def types.PropertyDefinition, text string, numeric bool) (int, error) {
	if numeric {
		index, err := parseInteger(text, true)
		if err != nil || index < 0 || index >= int64(len(def.Enum)) {
			return 0, invalidValue(def, text, fmt.Sprintf("enum index out of range 0..%d", len(def.Enum)-1))
		}
		return int(index), nil
	}
	for i, label := range def.Enum {
		if label == text {
			return i, nil
		}
	}
	return 0, invalidValue(def, text, "not one of the enum labels")
}

func checkRange(def types.PropertyDefinition, value float64) error {
	if def.Min != nil && def.Max != nil && *def.Min == 0 && *def.Max == 0 {
		// 0..0 means unbounded in network description files
		return nil
	}
	if def.Min != nil && value < *def.Min {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("property %s value %v below minimum %v", def.Name, value, *def.Min))
	}
	if def.Max != nil && value > *def.Max {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("property %s value %v above maximum %v", def.Name, value, *def.Max))
	}
	return nil
}

func invalidValue(def types.PropertyDefinition, raw string, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("property %s value %q: %s", def.Name, raw, reason))
}
