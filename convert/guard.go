package convert

import "github.com/bgokden/pairset/datum"

// SizeGuard checks that every datum of a run has the same number of bytes
type SizeGuard struct {
	Enabled     bool
	expected    int
	initialized bool
}

// Check records the size of the first datum and compares the others against it
func (g *SizeGuard) Check(key string, d *datum.Datum) error {
	if !g.Enabled {
		return nil
	}
	if !g.initialized {
		g.expected = d.Size()
		g.initialized = true
		return nil
	}
	if len(d.Data) != g.expected {
		return &SizeConsistencyError{Key: key, Expected: g.expected, Actual: len(d.Data)}
	}
	return nil
}
