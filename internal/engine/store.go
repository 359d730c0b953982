package engine

// Column names as they appear in the uploaded CSV header.
const (
	ColCountry  = "country"
	ColYear     = "year"
	ColSex      = "sex"
	ColSuicides = "suicides_no"
	ColAge      = "age"
	ColGDP      = "gdp_per_capita ($)"

	// colAgeAlias is read as the age column when no "age" header exists.
	colAgeAlias = "age_group"
)

// RequiredColumns must be present in every upload.
var RequiredColumns = []string{ColCountry, ColYear, ColSex, ColSuicides}

// Record is one row of the suicide statistics table.
type Record struct {
	Country      string
	Year         int
	Sex          string
	AgeGroup     string
	Suicides     int64
	GDPPerCapita float64
	HasGDP       bool

	// Cells of columns the pipeline does not interpret, in Dataset.extra order.
	extra []string
}

// Dataset holds the loaded rows plus the header they came with.
// A Dataset is never mutated after construction; every operation that
// "changes" it returns a new one sharing the header.
type Dataset struct {
	columns []string
	index   map[string]int // column name -> header position
	extra   []int          // header positions of uninterpreted columns
	records []Record
}

func newDataset(columns []string, records []Record) *Dataset {
	ds := &Dataset{
		columns: columns,
		index:   make(map[string]int, len(columns)),
		records: records,
	}
	for i, c := range columns {
		ds.index[c] = i
		if !knownColumn(c) {
			ds.extra = append(ds.extra, i)
		}
	}
	if _, ok := ds.index[ColAge]; !ok {
		if i, ok := ds.index[colAgeAlias]; ok {
			ds.index[ColAge] = i
		}
	}
	return ds
}

// derive returns a dataset with the same header and different rows.
func (ds *Dataset) derive(records []Record) *Dataset {
	return &Dataset{columns: ds.columns, index: ds.index, extra: ds.extra, records: records}
}

func knownColumn(name string) bool {
	switch name {
	case ColCountry, ColYear, ColSex, ColSuicides, ColAge, ColGDP:
		return true
	}
	return false
}

// Len reports the number of records.
func (ds *Dataset) Len() int { return len(ds.records) }

// Empty reports whether the dataset has no rows.
func (ds *Dataset) Empty() bool { return len(ds.records) == 0 }

// Columns returns a copy of the header in original order.
func (ds *Dataset) Columns() []string {
	return append([]string(nil), ds.columns...)
}

// HasColumn reports whether the header contains name.
func (ds *Dataset) HasColumn(name string) bool {
	_, ok := ds.index[name]
	return ok
}

// Records returns a copy of the rows.
func (ds *Dataset) Records() []Record {
	return append([]Record(nil), ds.records...)
}

// At returns the i-th record.
func (ds *Dataset) At(i int) Record { return ds.records[i] }

// HasColumn is the capability query used to decide which optional charts apply.
func HasColumn(ds *Dataset, name string) bool {
	return ds != nil && ds.HasColumn(name)
}
