package engine

import "strings"

// FilterSpec selects records by country and an inclusive year range.
// An empty Countries list means every country.
type FilterSpec struct {
	Countries []string `json:"countries"`
	MinYear   int      `json:"min_year"`
	MaxYear   int      `json:"max_year"`
}

// Filter returns the records of ds inside spec, in their original order.
// An empty result is a valid dataset, not an error.
func Filter(ds *Dataset, spec FilterSpec) *Dataset {
	var allowed map[string]bool
	if len(spec.Countries) > 0 {
		allowed = make(map[string]bool, len(spec.Countries))
		for _, c := range spec.Countries {
			allowed[strings.TrimSpace(c)] = true
		}
	}

	out := make([]Record, 0, len(ds.records))
	for _, rec := range ds.records {
		if rec.Year < spec.MinYear || rec.Year > spec.MaxYear {
			continue
		}
		if allowed != nil && !allowed[rec.Country] {
			continue
		}
		out = append(out, rec)
	}
	return ds.derive(out)
}

// YearBounds returns the smallest and largest year in ds. ok is false for
// an empty dataset.
func YearBounds(ds *Dataset) (min, max int, ok bool) {
	for i, rec := range ds.records {
		if i == 0 || rec.Year < min {
			min = rec.Year
		}
		if i == 0 || rec.Year > max {
			max = rec.Year
		}
	}
	return min, max, len(ds.records) > 0
}

// FullRange is the FilterSpec that keeps every record of ds.
func FullRange(ds *Dataset) FilterSpec {
	min, max, _ := YearBounds(ds)
	return FilterSpec{MinYear: min, MaxYear: max}
}

// Countries lists distinct country names in the order they first appear.
func Countries(ds *Dataset) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range ds.records {
		if !seen[rec.Country] {
			seen[rec.Country] = true
			out = append(out, rec.Country)
		}
	}
	return out
}

// Head returns a dataset of at most the first n records.
func Head(ds *Dataset, n int) *Dataset {
	if n < 0 {
		n = 0
	}
	if n > len(ds.records) {
		n = len(ds.records)
	}
	return ds.derive(append([]Record(nil), ds.records[:n]...))
}
