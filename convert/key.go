package convert

import (
	"github.com/bgokden/pairset/util"
	"github.com/pkg/errors"
)

// DefaultKeyWidth is the number of digits of the sequence part of a key
const DefaultKeyWidth = 8

// KeyAssigner builds keys of the form <zero padded sequence>_<first path>
type KeyAssigner struct {
	Width int
}

// Validate makes sure n sequence numbers fit in Width digits, keeping
// lexicographic key order equal to processing order
func (k KeyAssigner) Validate(n int) error {
	if k.Width <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "key width must be positive, got %d", k.Width)
	}
	if n > util.MaxForWidth(k.Width) {
		return errors.Wrapf(ErrInvalidConfig, "%d entries do not fit in %d digit keys", n, k.Width)
	}
	return nil
}

// Key returns the store key of the entry at position seq
func (k KeyAssigner) Key(seq int, pathA string) []byte {
	return []byte(util.FormatInt(seq, k.Width) + "_" + pathA)
}
