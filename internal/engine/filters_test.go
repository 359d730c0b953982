package engine

import (
	"reflect"
	"testing"
)

func TestFilterByCountry(t *testing.T) {
	ds := exampleDataset(t)

	got := Filter(ds, FilterSpec{Countries: []string{"Sweden"}, MinYear: 2000, MaxYear: 2020})
	if got.Len() != 1 {
		t.Fatalf("Expected exactly the Sweden row, got %d rows", got.Len())
	}
	if rec := got.At(0); rec.Country != "Sweden" || rec.Year != 2011 || rec.Suicides != 7 {
		t.Errorf("wrong row: %+v", rec)
	}
}

func TestFilterYearRangeEmpty(t *testing.T) {
	ds := exampleDataset(t)

	got := Filter(ds, FilterSpec{MinYear: 2012, MaxYear: 2020})
	if !got.Empty() {
		t.Errorf("Expected empty result, got %d rows", got.Len())
	}
	if !reflect.DeepEqual(got.Columns(), ds.Columns()) {
		t.Error("empty result lost the header")
	}
}

func TestFilterFullRangeIsIdentity(t *testing.T) {
	ds := mustLoad(t, sampleCSV)

	got := Filter(ds, FullRange(ds))
	if !reflect.DeepEqual(got.Records(), ds.Records()) {
		t.Errorf("full-range filter changed the dataset:\n got %+v\nwant %+v", got.Records(), ds.Records())
	}
}

func TestFilterInclusiveBounds(t *testing.T) {
	ds := exampleDataset(t)

	got := Filter(ds, FilterSpec{MinYear: 2010, MaxYear: 2010})
	if got.Len() != 2 {
		t.Errorf("Expected both 2010 rows, got %d", got.Len())
	}
	got = Filter(ds, FilterSpec{MinYear: 2011, MaxYear: 2011, Countries: []string{"Norway", "Sweden"}})
	if got.Len() != 1 || got.At(0).Country != "Sweden" {
		t.Errorf("Expected Sweden 2011 only, got %+v", got.Records())
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	ds := mustLoad(t, sampleCSV)
	got := Filter(ds, FilterSpec{Countries: []string{"Korea, Republic of", " Norway"}, MinYear: 0, MaxYear: 3000})
	var order []string
	for _, rec := range got.Records() {
		order = append(order, rec.Country)
	}
	want := []string{"Norway", "Norway", "Korea, Republic of"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestYearBoundsAndCountries(t *testing.T) {
	ds := mustLoad(t, sampleCSV)
	min, max, ok := YearBounds(ds)
	if !ok || min != 2010 || max != 2011 {
		t.Errorf("YearBounds = %d, %d, %v", min, max, ok)
	}
	if _, _, ok := YearBounds(Head(ds, 0)); ok {
		t.Error("YearBounds on empty dataset should report !ok")
	}

	want := []string{"Norway", "Sweden", "Korea, Republic of"}
	if got := Countries(ds); !reflect.DeepEqual(got, want) {
		t.Errorf("Countries = %v, want %v", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	ds := exampleDataset(t)
	raw := ds.Records()
	raw[0].Country = "  Norway\t"
	padded := ds.derive(raw)

	once := Normalize(padded)
	twice := Normalize(once)
	if !reflect.DeepEqual(once.Records(), twice.Records()) {
		t.Error("Normalize is not idempotent")
	}
	if once.At(0).Country != "Norway" {
		t.Errorf("expected trimmed country, got %q", once.At(0).Country)
	}
	if padded.At(0).Country != "  Norway\t" {
		t.Error("Normalize mutated its input")
	}
}

func TestHead(t *testing.T) {
	ds := mustLoad(t, sampleCSV)
	if Head(ds, 2).Len() != 2 || Head(ds, 99).Len() != 4 || Head(ds, -1).Len() != 0 {
		t.Error("Head clamps incorrectly")
	}
}
