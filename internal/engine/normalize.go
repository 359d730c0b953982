package engine

import "strings"

// Normalize returns ds with every country name trimmed of surrounding
// whitespace. Load already does this; Normalize exists for datasets built
// by other means and is idempotent.
func Normalize(ds *Dataset) *Dataset {
	out := make([]Record, len(ds.records))
	for i, rec := range ds.records {
		rec.Country = strings.TrimSpace(rec.Country)
		out[i] = rec
	}
	return ds.derive(out)
}
