package engine

import (
	"sort"

	"suicidestats/internal/models"
)

const (
	DefaultTopN        = 10
	DefaultPreviewRows = 5

	// EmptyNotice is shown in place of charts when a filter matches nothing.
	EmptyNotice = "No data available for selected filters."
)

// DashboardOptions tunes BuildDashboard.
type DashboardOptions struct {
	Theme       string
	Template    string
	TopN        int
	PreviewRows int
}

func (o DashboardOptions) withDefaults() DashboardOptions {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.PreviewRows <= 0 {
		o.PreviewRows = DefaultPreviewRows
	}
	return o
}

// BuildDashboard computes every chart table for ds. Optional sections are
// left nil when their column is absent.
func BuildDashboard(ds *Dataset, opts DashboardOptions) (*models.DashboardData, error) {
	opts = opts.withDefaults()

	yearly, err := SumBy(ds, KeyYear)
	if err != nil {
		return nil, err
	}
	gender, err := SumBy(ds, KeySex)
	if err != nil {
		return nil, err
	}
	byCountry, err := SumBy(ds, KeyCountry)
	if err != nil {
		return nil, err
	}
	top, err := TopN(byCountry, opts.TopN)
	if err != nil {
		return nil, err
	}

	data := &models.DashboardData{
		Theme:        opts.Theme,
		Template:     opts.Template,
		Rows:         ds.Len(),
		Columns:      ds.Columns(),
		Capabilities: CapabilitiesOf(ds),
		Filter:       FilterOptionsOf(ds),
		Preview:      PreviewRows(Head(ds, opts.PreviewRows)),
		Yearly:       TotalItems(SortByKey(yearly)),
		ByGender:     TotalItems(gender),
		TopCountries: TotalItems(top),
		CountryMap:   TotalItems(byCountry),
	}

	if data.Capabilities.AgeBreakdown {
		age, err := SumBy(ds, KeyAge)
		if err != nil {
			return nil, err
		}
		data.ByAge = TotalItems(age)
	}
	if data.Capabilities.GDPCorrelation {
		data.GDP = GDPCorrelation(ds)
	}
	return data, nil
}

// CapabilitiesOf reports which optional charts ds supports.
func CapabilitiesOf(ds *Dataset) models.Capabilities {
	return models.Capabilities{
		AgeBreakdown:   HasColumn(ds, ColAge),
		GDPCorrelation: HasColumn(ds, ColGDP),
	}
}

// FilterOptionsOf returns the choices for the country multi-select and the
// year slider bounds.
func FilterOptionsOf(ds *Dataset) models.FilterOptions {
	min, max, _ := YearBounds(ds)
	countries := Countries(ds)
	if countries == nil {
		countries = []string{}
	}
	return models.FilterOptions{Countries: countries, MinYear: min, MaxYear: max}
}

// TotalItems converts an AggregateTable to its wire form.
func TotalItems(t AggregateTable) []models.TotalItem {
	out := make([]models.TotalItem, len(t))
	for i, r := range t {
		out[i] = models.TotalItem{Key: r.Key, Total: r.Total}
	}
	return out
}

// PreviewRows converts records to their wire form.
func PreviewRows(ds *Dataset) []models.PreviewRow {
	out := make([]models.PreviewRow, 0, ds.Len())
	for _, rec := range ds.records {
		row := models.PreviewRow{
			Country:  rec.Country,
			Year:     rec.Year,
			Sex:      rec.Sex,
			Age:      rec.AgeGroup,
			Suicides: rec.Suicides,
		}
		if rec.HasGDP {
			gdp := rec.GDPPerCapita
			row.GDPPerCapita = &gdp
		}
		out = append(out, row)
	}
	return out
}

// CountryYearSeries sums suicides per (country, year). Countries keep
// discovery order; each series is chronological.
func CountryYearSeries(ds *Dataset) []models.CountrySeries {
	type acc struct {
		totals map[int]int64
	}
	var order []string
	byCountry := make(map[string]*acc)
	for _, rec := range ds.records {
		a, ok := byCountry[rec.Country]
		if !ok {
			a = &acc{totals: make(map[int]int64)}
			byCountry[rec.Country] = a
			order = append(order, rec.Country)
		}
		a.totals[rec.Year] += rec.Suicides
	}

	out := make([]models.CountrySeries, 0, len(order))
	for _, c := range order {
		a := byCountry[c]
		points := make([]models.YearPoint, 0, len(a.totals))
		for y, n := range a.totals {
			points = append(points, models.YearPoint{Year: y, Suicides: n})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
		out = append(out, models.CountrySeries{Country: c, Points: points})
	}
	return out
}

// FilteredTrend applies spec to ds and shapes the result for the filtered
// trend chart.
func FilteredTrend(ds *Dataset, spec FilterSpec) *models.FilteredTrend {
	sub := Filter(ds, spec)
	countries := spec.Countries
	if countries == nil {
		countries = []string{}
	}
	out := &models.FilteredTrend{
		Countries: countries,
		MinYear:   spec.MinYear,
		MaxYear:   spec.MaxYear,
		Rows:      sub.Len(),
		Empty:     sub.Empty(),
		Series:    CountryYearSeries(sub),
	}
	if out.Empty {
		out.Notice = EmptyNotice
	}
	return out
}
