package ui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// placeholder stands in for any value the daemon has not reported yet.
// Missing data renders as this, never as an error.
const placeholder = "—"

// Titleize turns a PID identifier into a human label: lowercase,
// underscores become spaces, then each word is capitalized.
// "FUEL_TRIM_SHORT_BANK1" → "Fuel Trim Short Bank1".
func Titleize(name string) string {
	words := strings.Fields(strings.ReplaceAll(strings.ToLower(name), "_", " "))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// formatValue renders a dynamic reading for display. Readings arrive from
// JSON as float64, string, or bool; anything unexpected falls back to %v.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return placeholder
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		if strings.TrimSpace(val) == "" {
			return placeholder
		}
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// milLabel renders the tri-state malfunction indicator lamp.
func milLabel(mil *bool) string {
	switch {
	case mil == nil:
		return placeholder
	case *mil:
		return "ON"
	default:
		return "OFF"
	}
}

// countLabel renders an optional integer count.
func countLabel(count *int) string {
	if count == nil {
		return placeholder
	}
	return strconv.Itoa(*count)
}
