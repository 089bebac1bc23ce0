package services

import (
	"strconv"
	"strings"
)

// optionalText trims and length-caps free-form input; empty becomes nil.
func optionalText(text *string, max int) *string {
	if text == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" {
		return nil
	}
	runes := []rune(trimmed)
	if len(runes) > max {
		trimmed = string(runes[:max])
	}
	return &trimmed
}

func formatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
