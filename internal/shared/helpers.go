// Package shared provides common utility functions used across multiple
// packages in the dbcsheet codebase.
package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexID parses a CAN message id written in hexadecimal, with or
// without a 0x prefix.
func ParseHexID(value string) (uint32, error) {
	trimmed := strings.TrimSpace(value)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "0x") {
		trimmed = trimmed[2:]
	}
	if trimmed == "" {
		return 0, fmt.Errorf("empty message id")
	}
	id, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not hexadecimal", value)
	}
	return uint32(id), nil
}

// FormatHexID renders a message id the way workbook sheets write it.
func FormatHexID(id uint32) string {
	return fmt.Sprintf("0x%X", id)
}

// SplitList splits a comma or whitespace separated cell into trimmed,
// non-empty entries.
func SplitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == ';'
	})
	var out []string
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
