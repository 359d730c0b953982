package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const utf8BOM = "\ufeff"

// interner hands out one shared string per distinct value, so a few hundred
// thousand rows naming ~100 countries don't carry 100k copies of each name.
type interner map[string]string

func (in interner) get(s string) string {
	if v, ok := in[s]; ok {
		return v
	}
	in[s] = s
	return s
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer f.Close()
	return Load(f)
}

// Load parses a comma-separated suicide statistics table.
//
// The header must contain country, year, sex and suicides_no; age (or
// age_group) and gdp_per_capita ($) are optional. Any other columns are carried through
// untouched so that WriteCSV reproduces the original layout. Country names
// are trimmed on the way in.
func Load(r io.Reader) (*Dataset, error) {
	start := time.Now()
	log.Println("Loading data...")

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{Err: errors.New("file is empty")}
	}
	if err != nil {
		return nil, csvLoadError(err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	columns := append([]string(nil), header...)

	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if seen[col] {
			return nil, &LoadError{Line: 1, Column: col, Err: errors.New("duplicate column name in header")}
		}
		seen[col] = true
	}
	ds := newDataset(columns, nil)
	for _, col := range RequiredColumns {
		if !ds.HasColumn(col) {
			return nil, &LoadError{Column: col, Err: ErrMissingColumn}
		}
	}

	var (
		iCountry  = ds.index[ColCountry]
		iYear     = ds.index[ColYear]
		iSex      = ds.index[ColSex]
		iSuicides = ds.index[ColSuicides]
	)
	iAge, hasAge := ds.index[ColAge]
	iGDP, hasGDP := ds.index[ColGDP]

	countries, sexes, ages := interner{}, interner{}, interner{}
	var records []Record

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvLoadError(err)
		}
		line, _ := cr.FieldPos(0)

		rec := Record{
			Country: countries.get(strings.TrimSpace(row[iCountry])),
			Sex:     sexes.get(row[iSex]),
		}

		if rec.Year, err = strconv.Atoi(strings.TrimSpace(row[iYear])); err != nil {
			return nil, &LoadError{Line: line, Column: ColYear, Err: fmt.Errorf("not an integer: %q", row[iYear])}
		}

		n, err := strconv.ParseInt(strings.TrimSpace(row[iSuicides]), 10, 64)
		if err != nil {
			return nil, &LoadError{Line: line, Column: ColSuicides, Err: fmt.Errorf("not an integer: %q", row[iSuicides])}
		}
		if n < 0 {
			return nil, &LoadError{Line: line, Column: ColSuicides, Err: fmt.Errorf("negative count %d", n)}
		}
		rec.Suicides = n

		if hasAge {
			rec.AgeGroup = ages.get(row[iAge])
		}
		if hasGDP {
			if v := strings.TrimSpace(row[iGDP]); v != "" {
				if rec.GDPPerCapita, err = strconv.ParseFloat(v, 64); err != nil {
					return nil, &LoadError{Line: line, Column: ColGDP, Err: fmt.Errorf("not a number: %q", row[iGDP])}
				}
				if math.IsNaN(rec.GDPPerCapita) || math.IsInf(rec.GDPPerCapita, 0) {
					return nil, &LoadError{Line: line, Column: ColGDP, Err: fmt.Errorf("not a finite number: %q", row[iGDP])}
				}
				rec.HasGDP = true
			}
		}

		if len(ds.extra) > 0 {
			rec.extra = make([]string, len(ds.extra))
			for k, pos := range ds.extra {
				rec.extra[k] = row[pos]
			}
		}

		records = append(records, rec)
	}

	ds.records = records
	log.Printf("Load Complete. Rows: %d. Time: %v", len(records), time.Since(start))
	return ds, nil
}

// csvLoadError converts encoding/csv failures (ragged rows, bad quoting)
// into a LoadError carrying the offending line.
func csvLoadError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &LoadError{Line: pe.Line, Err: pe.Err}
	}
	return &LoadError{Err: err}
}
