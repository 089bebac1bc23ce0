package utils

import "testing"

func TestFormatCode(t *testing.T) {
	if got := FormatCode("P", 7); got != "P007" {
		t.Errorf("FormatCode(P, 7) = %q, want P007", got)
	}
	if got := FormatCode("M", 123); got != "M123" {
		t.Errorf("FormatCode(M, 123) = %q, want M123", got)
	}
	if got := FormatCode("X", 1000); got != "X1000" {
		t.Errorf("FormatCode(X, 1000) = %q, want X1000", got)
	}
}

func TestPrefixForBoxType(t *testing.T) {
	cases := []struct {
		boxType string
		want    string
	}{
		{"PROTEIN", "P"},
		{"protein", "P"},
		{"SIDE", "B"},
		{"BASE", "Z"},
		{"MEAL", "M"},
		{"SOMETHING_ELSE", "X"},
		{"", "X"},
	}
	for _, c := range cases {
		if got := PrefixForBoxType(c.boxType); got != c.want {
			t.Errorf("PrefixForBoxType(%q) = %q, want %q", c.boxType, got, c.want)
		}
	}
}

func TestNextFreeNumber(t *testing.T) {
	cases := []struct {
		name  string
		codes []string
		want  int
	}{
		{"empty", nil, 1},
		{"gap is filled", []string{"P001", "P003"}, 2},
		{"dense sequence extends", []string{"P001", "P002", "P003"}, 4},
		{"other prefixes ignored", []string{"M001", "S001"}, 1},
		{"malformed codes ignored", []string{"P", "Pabc", "P000"}, 1},
		{"mixed container and box codes", []string{"P002", "P001", "P004"}, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NextFreeNumber("P", c.codes); got != c.want {
				t.Errorf("NextFreeNumber(P, %v) = %d, want %d", c.codes, got, c.want)
			}
		})
	}
}
