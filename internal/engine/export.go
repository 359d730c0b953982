package engine

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
)

const (
	ExportFileName    = "filtered_data.csv"
	ExportContentType = "text/csv"
)

// WriteCSV writes ds with its original header. Every emitted field parses
// back through Load to the same value.
func WriteCSV(w io.Writer, ds *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.columns); err != nil {
		return err
	}

	row := make([]string, len(ds.columns))
	extraSlot := make(map[int]int, len(ds.extra))
	for k, pos := range ds.extra {
		extraSlot[pos] = k
	}

	for _, rec := range ds.records {
		for i, col := range ds.columns {
			switch col {
			case ColCountry:
				row[i] = rec.Country
			case ColYear:
				row[i] = strconv.Itoa(rec.Year)
			case ColSex:
				row[i] = rec.Sex
			case ColSuicides:
				row[i] = strconv.FormatInt(rec.Suicides, 10)
			case ColAge:
				row[i] = rec.AgeGroup
			case ColGDP:
				row[i] = ""
				if rec.HasGDP {
					row[i] = strconv.FormatFloat(rec.GDPPerCapita, 'f', -1, 64)
				}
			default:
				row[i] = ""
				if k, ok := extraSlot[i]; ok && k < len(rec.extra) {
					row[i] = rec.extra[k]
				}
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToCSV is WriteCSV into memory.
func ToCSV(ds *Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
