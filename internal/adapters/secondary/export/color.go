package export

import (
	"fmt"
	"strconv"
)

// parseHex converts an RRGGBB palette value into its channels
func parseHex(hex string) (r, g, b int, err error) {
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), nil
}

// lineHeight returns the line pitch of a font size in inches
func lineHeight(points int) float64 {
	return float64(points) / pointsPerInch * 1.2
}

const pointsPerInch = 72.0
