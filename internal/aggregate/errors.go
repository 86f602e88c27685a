package aggregate

import (
	"fmt"

	"go.uber.org/multierr"
)

// MalformedValueError reports a field that strict mode could not read as a
// number. Row is the 0-based index into the input rows.
type MalformedValueError struct {
	Row     int
	Column  string
	Value   string
	Missing bool
}

func (e *MalformedValueError) Error() string {
	if e.Missing {
		return fmt.Sprintf("row %d: column %q is missing", e.Row, e.Column)
	}
	return fmt.Sprintf("row %d: column %q: malformed value %q", e.Row, e.Column, e.Value)
}

// MalformedValues unpacks every MalformedValueError carried by err, looking
// through fmt wrapping and multierr combinations.
func MalformedValues(err error) []*MalformedValueError {
	var out []*MalformedValueError
	for _, e := range multierr.Errors(err) {
		switch x := e.(type) {
		case *MalformedValueError:
			out = append(out, x)
		case interface{ Unwrap() error }:
			out = append(out, MalformedValues(x.Unwrap())...)
		}
	}
	return out
}
