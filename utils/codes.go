package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// BoxTypePrefix maps a box role to its single-letter code prefix.
var BoxTypePrefix = map[string]string{
	"MEAL":      "M",
	"PROTEIN":   "P",
	"SAUCE":     "S",
	"SIDE":      "B",
	"BASE":      "Z",
	"BREAKFAST": "F",
	"DESSERT":   "D",
	"MISC":      "X",
}

// ItemTypeBoxType is the inverse mapping, letter code to role word.
var ItemTypeBoxType = map[string]string{
	"M": "MEAL",
	"P": "PROTEIN",
	"S": "SAUCE",
	"B": "SIDE",
	"Z": "BASE",
	"F": "BREAKFAST",
	"D": "DESSERT",
	"X": "MISC",
}

// PrefixForBoxType returns the letter prefix for a role, falling back
// to the MISC prefix for unknown roles.
func PrefixForBoxType(boxType string) string {
	if p, ok := BoxTypePrefix[strings.ToUpper(boxType)]; ok {
		return p
	}
	return "X"
}

// FormatCode renders a prefixed, zero-padded code such as P007.
func FormatCode(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// NextFreeNumber scans existing codes with the given prefix and
// returns the smallest positive number not yet taken. Unlike id_code
// counters, these numbers are reused once freed.
func NextFreeNumber(prefix string, codes []string) int {
	used := make(map[int]bool, len(codes))
	for _, code := range codes {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		n, err := strconv.Atoi(code[len(prefix):])
		if err == nil && n > 0 {
			used[n] = true
		}
	}

	candidate := 1
	for used[candidate] {
		candidate++
	}
	return candidate
}
