package staticmap

import (
	"strconv"
	"strings"
)

// hexColor normalizes a polyline color for the path parameter. It accepts
// "#RRGGBB" or "#AARRGGBB" (the leading byte being alpha) and returns
// "0xRRGGBB". The hex digits are parsed rather than sliced at a fixed offset,
// so malformed input is rejected instead of producing a garbled prefix.
func hexColor(s string) (string, bool) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 8:
		// alpha channel is stripped
		h = h[2:]
	case 6:
	default:
		return "", false
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return "", false
	}
	return "0x" + strings.ToLower(h), true
}
