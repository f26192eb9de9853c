package utils

import (
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitList splits comma/semicolon/newline separated values, dropping blanks.
func SplitList(raw string) []string {
	out := []string{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ContainsString reports whether list has s.
func ContainsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SlotFromPath turns a URL slot segment into a label: "0800" -> "08:00".
// Values that already contain a colon or are not four digits pass through.
func SlotFromPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) != 4 || strings.Trim(raw, "0123456789") != "" {
		return raw
	}
	return raw[:2] + ":" + raw[2:]
}
