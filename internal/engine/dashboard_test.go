package engine

import (
	"math"
	"testing"
)

func TestBuildDashboard(t *testing.T) {
	ds := mustLoad(t, sampleCSV)

	data, err := BuildDashboard(ds, DashboardOptions{Theme: "dark", Template: "plotly_dark", TopN: 2})
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}

	if data.Rows != 4 || data.Template != "plotly_dark" {
		t.Errorf("header fields wrong: rows=%d template=%q", data.Rows, data.Template)
	}
	if !data.Capabilities.AgeBreakdown || !data.Capabilities.GDPCorrelation {
		t.Errorf("capabilities = %+v", data.Capabilities)
	}

	// A. Yearly, chronological
	if len(data.Yearly) != 2 || data.Yearly[0].Key != "2010" || data.Yearly[0].Total != 14 {
		t.Errorf("Yearly = %+v", data.Yearly)
	}

	// B. Top countries honours TopN and order
	if len(data.TopCountries) != 2 || data.TopCountries[0].Key != "Korea, Republic of" {
		t.Errorf("TopCountries = %+v", data.TopCountries)
	}

	// C. Map covers every country
	if len(data.CountryMap) != 3 {
		t.Errorf("CountryMap = %+v", data.CountryMap)
	}

	// D. Optional sections
	if len(data.ByAge) != 3 {
		t.Errorf("ByAge = %+v", data.ByAge)
	}
	if data.GDP == nil || len(data.GDP.Points) != 3 {
		t.Fatalf("GDP = %+v", data.GDP)
	}

	if len(data.Preview) != 4 || data.Preview[2].GDPPerCapita != nil {
		t.Errorf("Preview = %+v", data.Preview)
	}
	if data.Filter.MinYear != 2010 || data.Filter.MaxYear != 2011 || len(data.Filter.Countries) != 3 {
		t.Errorf("Filter = %+v", data.Filter)
	}
}

func TestBuildDashboardWithoutOptionalColumns(t *testing.T) {
	data, err := BuildDashboard(exampleDataset(t), DashboardOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if data.ByAge != nil || data.GDP != nil {
		t.Error("optional charts should be omitted when their column is absent")
	}
	if data.Capabilities.AgeBreakdown || data.Capabilities.GDPCorrelation {
		t.Errorf("capabilities = %+v", data.Capabilities)
	}
}

func TestFilteredTrend(t *testing.T) {
	ds := exampleDataset(t)

	trend := FilteredTrend(ds, FilterSpec{Countries: []string{"Norway"}, MinYear: 2000, MaxYear: 2020})
	if trend.Empty || trend.Rows != 2 {
		t.Fatalf("trend = %+v", trend)
	}
	if len(trend.Series) != 1 || trend.Series[0].Points[0].Suicides != 14 {
		t.Errorf("Series = %+v", trend.Series)
	}

	none := FilteredTrend(ds, FilterSpec{MinYear: 2012, MaxYear: 2020})
	if !none.Empty || none.Notice != EmptyNotice || len(none.Series) != 0 {
		t.Errorf("empty trend = %+v", none)
	}
}

func TestCountryYearSeriesChronological(t *testing.T) {
	ds := mustLoad(t, `country,year,sex,suicides_no
Norway,2012,male,1
Norway,2010,male,2
Norway,2012,female,3
`)
	series := CountryYearSeries(ds)
	pts := series[0].Points
	if len(pts) != 2 || pts[0].Year != 2010 || pts[1].Year != 2012 || pts[1].Suicides != 4 {
		t.Errorf("points = %+v", pts)
	}
}

func TestGDPCorrelationFit(t *testing.T) {
	ds := mustLoad(t, `country,year,sex,suicides_no,gdp_per_capita ($)
A,2000,male,10,1000
A,2001,male,20,2000
A,2002,male,30,3000
B,2000,male,5,500
B,2001,male,5,500
`)
	corr := GDPCorrelation(ds)

	if len(corr.ByCountry) != 1 || corr.ByCountry[0].Country != "A" {
		t.Fatalf("expected a line for A only (B has one distinct GDP), got %+v", corr.ByCountry)
	}
	a := corr.ByCountry[0]
	if math.Abs(a.Slope-0.01) > 1e-9 || math.Abs(a.Intercept) > 1e-9 || math.Abs(a.RSquared-1) > 1e-9 {
		t.Errorf("fit for A = %+v", a)
	}
	if a.N != 3 || a.MinX != 1000 || a.MaxX != 3000 {
		t.Errorf("fit metadata for A = %+v", a)
	}
	if corr.Overall == nil || corr.Overall.N != 5 {
		t.Errorf("overall = %+v", corr.Overall)
	}
}

func TestGDPCorrelationConstantY(t *testing.T) {
	ds := mustLoad(t, `country,year,sex,suicides_no,gdp_per_capita ($)
A,2000,male,7,100
A,2001,male,7,200
`)
	line := GDPCorrelation(ds).ByCountry[0]
	if line.Slope != 0 || line.RSquared != 1 || math.IsNaN(line.Intercept) {
		t.Errorf("constant series fit = %+v", line)
	}
}
