package agent

import "strings"

// bulletMarkers are the line prefixes the fallback parsers treat as list
// items in free-form model output.
var bulletMarkers = []string{"-", "•", "*", "1.", "2.", "3."}

func hasBulletPrefix(line string) bool {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
