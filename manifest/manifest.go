package manifest

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Entry is one line of the list file: two image paths and their label
type Entry struct {
	PathA string
	PathB string
	Label int32
}

// ParseError reports a list file line that can not be turned into an Entry
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest line %d %q: %s", e.Line, e.Text, e.Reason)
}

// ReadFile opens path and parses it with Read
func ReadFile(path string, strict bool) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can not open list file %v", path)
	}
	defer file.Close()
	return Read(file, strict)
}

// Read parses "<pathA> <pathB> <label>" lines.
// Blank lines are ignored. In strict mode a line must have exactly three fields
// and a well formed label, otherwise the label is parsed like atoi.
func Read(r io.Reader, strict bool) ([]Entry, error) {
	entries := make([]Entry, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, &ParseError{Line: lineNumber, Text: line, Reason: fmt.Sprintf("expected 3 fields, found %d", len(fields))}
		}
		var label int32
		if strict {
			if len(fields) > 3 {
				return nil, &ParseError{Line: lineNumber, Text: line, Reason: fmt.Sprintf("expected 3 fields, found %d", len(fields))}
			}
			v, err := strconv.ParseInt(fields[2], 10, 32)
			if err != nil {
				return nil, &ParseError{Line: lineNumber, Text: line, Reason: "label is not an int32"}
			}
			label = int32(v)
		} else {
			label = Atoi(fields[2])
		}
		entries = append(entries, Entry{
			PathA: fields[0],
			PathB: fields[1],
			Label: label,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading list file")
	}
	return entries, nil
}

// Atoi parses an optional sign and the leading digits of s.
// Trailing text is ignored, no digits yield 0 and the result saturates at int32 bounds.
func Atoi(s string) int32 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	negative := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}
	var n int64
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32+1 {
			n = math.MaxInt32 + 1
		}
	}
	if negative {
		n = -n
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

// Shuffle permutes entries in place. The same seed always gives the same order.
func Shuffle(entries []Entry, seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
}
