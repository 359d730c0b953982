package models

// DashboardData is everything the presentation layer needs to draw the
// full dashboard for one dataset.
type DashboardData struct {
	Theme        string          `json:"theme" yaml:"theme"`
	Template     string          `json:"template" yaml:"template"`
	Rows         int             `json:"rows" yaml:"rows"`
	Columns      []string        `json:"columns" yaml:"columns"`
	Capabilities Capabilities    `json:"capabilities" yaml:"capabilities"`
	Filter       FilterOptions   `json:"filter" yaml:"filter"`
	Preview      []PreviewRow    `json:"preview" yaml:"preview"`
	Yearly       []TotalItem     `json:"suicides_per_year" yaml:"suicides_per_year"`
	ByGender     []TotalItem     `json:"suicides_by_gender" yaml:"suicides_by_gender"`
	TopCountries []TotalItem     `json:"top_countries" yaml:"top_countries"`
	ByAge        []TotalItem     `json:"suicides_by_age,omitempty" yaml:"suicides_by_age,omitempty"`
	GDP          *GDPCorrelation `json:"gdp_correlation,omitempty" yaml:"gdp_correlation,omitempty"`
	CountryMap   []TotalItem     `json:"country_map" yaml:"country_map"`
}

// Capabilities says which optional charts the dataset can feed.
type Capabilities struct {
	AgeBreakdown   bool `json:"age_breakdown" yaml:"age_breakdown"`
	GDPCorrelation bool `json:"gdp_correlation" yaml:"gdp_correlation"`
}

// FilterOptions seeds the multi-select and the year slider.
type FilterOptions struct {
	Countries []string `json:"countries" yaml:"countries"`
	MinYear   int      `json:"min_year" yaml:"min_year"`
	MaxYear   int      `json:"max_year" yaml:"max_year"`
}

// TotalItem is one bar / point of an aggregate chart.
type TotalItem struct {
	Key   string `json:"key" yaml:"key"`
	Total int64  `json:"suicides_no" yaml:"suicides_no"`
}

// PreviewRow is one record of the "about dataset" table.
type PreviewRow struct {
	Country      string   `json:"country" yaml:"country"`
	Year         int      `json:"year" yaml:"year"`
	Sex          string   `json:"sex" yaml:"sex"`
	Age          string   `json:"age,omitempty" yaml:"age,omitempty"`
	Suicides     int64    `json:"suicides_no" yaml:"suicides_no"`
	GDPPerCapita *float64 `json:"gdp_per_capita,omitempty" yaml:"gdp_per_capita,omitempty"`
}

// GDPPoint is one scatter point.
type GDPPoint struct {
	Country      string  `json:"country" yaml:"country"`
	GDPPerCapita float64 `json:"gdp_per_capita" yaml:"gdp_per_capita"`
	Suicides     int64   `json:"suicides_no" yaml:"suicides_no"`
}

// Trendline is an ordinary least squares fit suicides = Intercept + Slope*gdp.
type Trendline struct {
	Country   string  `json:"country,omitempty" yaml:"country,omitempty"`
	Slope     float64 `json:"slope" yaml:"slope"`
	Intercept float64 `json:"intercept" yaml:"intercept"`
	RSquared  float64 `json:"r_squared" yaml:"r_squared"`
	N         int     `json:"n" yaml:"n"`
	MinX      float64 `json:"min_x" yaml:"min_x"`
	MaxX      float64 `json:"max_x" yaml:"max_x"`
}

// GDPCorrelation backs the GDP vs suicides scatter chart.
type GDPCorrelation struct {
	Points    []GDPPoint  `json:"points" yaml:"points"`
	Overall   *Trendline  `json:"overall,omitempty" yaml:"overall,omitempty"`
	ByCountry []Trendline `json:"by_country" yaml:"by_country"`
}

// YearPoint is one point of a per-country trend line.
type YearPoint struct {
	Year     int   `json:"year" yaml:"year"`
	Suicides int64 `json:"suicides_no" yaml:"suicides_no"`
}

// CountrySeries is one line of the filtered trend chart.
type CountrySeries struct {
	Country string      `json:"country" yaml:"country"`
	Points  []YearPoint `json:"points" yaml:"points"`
}

// FilteredTrend is the response for a filter interaction.
type FilteredTrend struct {
	Countries []string        `json:"countries" yaml:"countries"`
	MinYear   int             `json:"min_year" yaml:"min_year"`
	MaxYear   int             `json:"max_year" yaml:"max_year"`
	Rows      int             `json:"rows" yaml:"rows"`
	Empty     bool            `json:"empty" yaml:"empty"`
	Notice    string          `json:"notice,omitempty" yaml:"notice,omitempty"`
	Series    []CountrySeries `json:"series" yaml:"series"`
}

// SessionInfo describes an open session.
type SessionInfo struct {
	ID           string        `json:"session_id" yaml:"session_id"`
	FileName     string        `json:"file_name" yaml:"file_name"`
	Theme        string        `json:"theme" yaml:"theme"`
	Rows         int           `json:"rows" yaml:"rows"`
	Columns      []string      `json:"columns" yaml:"columns"`
	Capabilities Capabilities  `json:"capabilities" yaml:"capabilities"`
	Filter       FilterOptions `json:"filter" yaml:"filter"`
}
