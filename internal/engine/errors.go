package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn marks a load failure caused by an absent required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidKey is returned when aggregating on a column the dataset lacks.
	ErrInvalidKey = errors.New("invalid aggregation key")
	// ErrNegativeN is returned by TopN/Rank for n < 0.
	ErrNegativeN = errors.New("n must be non-negative")
)

// LoadError reports why an upload could not be turned into a Dataset.
// Line is the 1-based CSV line (0 when the problem is not tied to a row).
type LoadError struct {
	Line   int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load failed")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " (column %q)", e.Column)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// InvalidKeyError names the key that could not be aggregated.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidKey, e.Key)
}

func (e *InvalidKeyError) Is(target error) bool { return target == ErrInvalidKey }
