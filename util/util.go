package util

import (
	"math"
	"strconv"
	"strings"
)

// FormatInt writes n in decimal, left padded with zeros to at least width digits.
// Numbers wider than width are written in full.
func FormatInt(n int, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// MaxForWidth is the number of distinct values FormatInt can write with
// exactly width digits, capped at the largest int.
func MaxForWidth(width int) int {
	limit := 1
	for i := 0; i < width; i++ {
		if limit > math.MaxInt/10 {
			return math.MaxInt
		}
		limit *= 10
	}
	return limit
}
