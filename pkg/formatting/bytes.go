// Package formatting handles the human-facing values that cross the takeoff
// API: upload size limits, blueprint file sizes, and takeoff content that
// arrives as JSON wrapped in prose or code fences.
package formatting

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// sizeUnits are base-1024 steps. KB and KiB mean the same thing here.
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// FormatBytes renders a byte count with the largest unit that keeps the
// value at or above one, e.g. 1536 at precision 1 is "1.5 KB". Negative
// precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	precision = max(precision, 0)

	sign := ""
	size := float64(n)
	if size < 0 {
		sign = "-"
		size = -size
	}

	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return sign + strconv.FormatInt(int64(size), 10) + " B"
	}
	return sign + strconv.FormatFloat(size, 'f', precision, 64) + " " + sizeUnits[unit]
}

// ParseBytes reads a size such as "50MB", "1.5 GB", or "25MiB" into bytes.
// A bare number is bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	split := strings.IndexFunc(s, unicode.IsLetter)
	if split == -1 {
		split = len(s)
	}
	number := strings.TrimSpace(s[:split])
	suffix := strings.ToUpper(s[split:])

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || number == "" {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative byte size: %q", s)
	}

	if suffix == "" {
		return int64(value), nil
	}
	suffix = strings.Replace(suffix, "IB", "B", 1)

	for i, unit := range sizeUnits {
		if unit != suffix {
			continue
		}
		for range i {
			value *= 1024
		}
		return int64(value), nil
	}

	return 0, fmt.Errorf("unknown byte size unit: %q", suffix)
}
