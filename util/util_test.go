package util_test

import (
	"math"
	"sort"
	"testing"

	"github.com/bgokden/pairset/util"
	"github.com/stretchr/testify/assert"
)

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "00000000", util.FormatInt(0, 8))
	assert.Equal(t, "00000042", util.FormatInt(42, 8))
	assert.Equal(t, "99999999", util.FormatInt(99999999, 8))
	assert.Equal(t, "123456789", util.FormatInt(123456789, 8))
	assert.Equal(t, "7", util.FormatInt(7, 0))
}

func TestFormatIntSortsNumerically(t *testing.T) {
	numbers := []int{5, 100, 42, 9, 1000, 0, 999}
	formatted := make([]string, 0, len(numbers))
	for _, n := range numbers {
		formatted = append(formatted, util.FormatInt(n, 4))
	}
	sort.Strings(formatted)
	assert.Equal(t, []string{"0000", "0005", "0009", "0042", "0100", "0999", "1000"}, formatted)
}

func TestMaxForWidth(t *testing.T) {
	assert.Equal(t, 1, util.MaxForWidth(0))
	assert.Equal(t, 100000000, util.MaxForWidth(8))
	assert.Equal(t, math.MaxInt, util.MaxForWidth(40))
}
