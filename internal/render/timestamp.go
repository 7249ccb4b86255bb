package render

import "strings"

// shortTime returns the time of day of an ISO-8601 timestamp as
// HH:MM:SS.mmm. The date and any zone suffix are dropped without converting
// the clock. Timestamps it cannot read are returned unchanged.
func shortTime(ts string) string {
	sep := strings.IndexAny(ts, "Tt ")
	if sep < 0 {
		return ts
	}
	rest := ts[sep+1:]
	if len(rest) < 8 || !isClock(rest[:8]) {
		return ts
	}

	frac := ""
	if len(rest) > 8 && (rest[8] == '.' || rest[8] == ',') {
		end := 9
		for end < len(rest) && isDigit(rest[end]) {
			end++
		}
		frac = rest[9:end]
	}
	if len(frac) > 3 {
		frac = frac[:3]
	}
	frac += strings.Repeat("0", 3-len(frac))

	return rest[:8] + "." + frac
}

func isClock(s string) bool {
	return isDigit(s[0]) && isDigit(s[1]) && s[2] == ':' &&
		isDigit(s[3]) && isDigit(s[4]) && s[5] == ':' &&
		isDigit(s[6]) && isDigit(s[7])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
