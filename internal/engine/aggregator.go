package engine

import (
	"sort"
	"strconv"
)

// Key names a categorical field that SumBy can group on.
type Key string

const (
	KeyYear    Key = ColYear
	KeySex     Key = ColSex
	KeyCountry Key = ColCountry
	KeyAge     Key = ColAge
)

// AggregateRow is one group of an AggregateTable.
type AggregateRow struct {
	Key   string `json:"key"`
	Total int64  `json:"total_suicides"`
}

// AggregateTable is the ordered result of a group-by-sum.
type AggregateTable []AggregateRow

// Sum totals the table.
func (t AggregateTable) Sum() int64 {
	var s int64
	for _, r := range t {
		s += r.Total
	}
	return s
}

// ParseKey maps a field name onto a Key. "age_group" is accepted for age.
func ParseKey(name string) (Key, error) {
	switch name {
	case ColYear, ColSex, ColCountry, ColAge:
		return Key(name), nil
	case colAgeAlias:
		return KeyAge, nil
	}
	return "", &InvalidKeyError{Key: name}
}

// SumBy groups ds by key and sums suicides_no per group. Groups appear in
// the order they are first seen.
func SumBy(ds *Dataset, key Key) (AggregateTable, error) {
	k, err := ParseKey(string(key))
	if err != nil {
		return nil, err
	}
	if !ds.HasColumn(string(k)) {
		return nil, &InvalidKeyError{Key: string(key)}
	}

	pos := make(map[string]int)
	var table AggregateTable
	for i := range ds.records {
		rec := &ds.records[i]
		var g string
		switch k {
		case KeyYear:
			g = strconv.Itoa(rec.Year)
		case KeySex:
			g = rec.Sex
		case KeyCountry:
			g = rec.Country
		case KeyAge:
			g = rec.AgeGroup
		}
		idx, ok := pos[g]
		if !ok {
			idx = len(table)
			pos[g] = idx
			table = append(table, AggregateRow{Key: g})
		}
		table[idx].Total += rec.Suicides
	}
	return table, nil
}

// Rank returns the first n rows of table ordered by total. Ties keep their
// original relative order. table itself is left untouched.
func Rank(table AggregateTable, n int, descending bool) (AggregateTable, error) {
	if n < 0 {
		return nil, ErrNegativeN
	}
	sorted := append(AggregateTable(nil), table...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].Total > sorted[j].Total
		}
		return sorted[i].Total < sorted[j].Total
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted, nil
}

// TopN is Rank with descending order.
func TopN(table AggregateTable, n int) (AggregateTable, error) {
	return Rank(table, n, true)
}

// SortByKey returns a copy of table in natural key order: numerically when
// both keys are integers (years), lexically otherwise.
func SortByKey(table AggregateTable) AggregateTable {
	sorted := append(AggregateTable(nil), table...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, errA := strconv.Atoi(sorted[i].Key)
		b, errB := strconv.Atoi(sorted[j].Key)
		if errA == nil && errB == nil {
			return a < b
		}
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}
