// Package csvstore implements the dataset and weight stores on top of CSV
// files with a header row.
package csvstore

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/ftlinear/pkg/errors"
)

// columnIndex returns the position of each name in header. Names are
// matched case-insensitively after trimming spaces.
func columnIndex(header []string, names ...string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		// BOM付きのファイル
		key = strings.TrimPrefix(key, "\ufeff")
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	out := make([]int, len(names))
	for i, name := range names {
		p, ok := pos[name]
		if !ok {
			return nil, errors.Wrapf(errors.ErrMalformedRecord, "header: missing column %q", name)
		}
		out[i] = p
	}
	return out, nil
}

// parseField parses a finite float from a CSV field.
func parseField(field, name string, line int) (float64, error) {
	v, err := parseFloat(field)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrMalformedRecord, "line %d: invalid %s %q", line, name, field)
	}
	if errors.CheckScalar(name, v, 0) != nil {
		return 0, errors.Wrapf(errors.ErrMalformedRecord, "line %d: non-finite %s %q", line, name, field)
	}
	return v, nil
}

func parseFloat(field string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(field), 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func newReader(r *csv.Reader) *csv.Reader {
	r.TrimLeadingSpace = true
	return r
}
