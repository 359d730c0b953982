// Package report renders dashboard data for a terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"suicidestats/internal/models"
)

// Formats accepted by Write.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Write renders data in the given format.
func Write(w io.Writer, data *models.DashboardData, format string) error {
	switch format {
	case "", FormatTable:
		Tables(w, data)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(data)
	}
	return fmt.Errorf("unknown format %q (use table, json or yaml)", format)
}

func heading(w io.Writer, title string) {
	color.New(color.FgYellow, color.Bold).Fprintf(w, "\n%s\n", title)
}

func totalsTable(w io.Writer, keyHeader string, items []models.TotalItem) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{keyHeader, "Suicides"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, it := range items {
		table.Append([]string{it.Key, humanize.Comma(it.Total)})
	}
	table.Render()
}

// Tables prints every section of data as a text table. Optional sections
// are skipped when absent.
func Tables(w io.Writer, data *models.DashboardData) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "Suicide Rate Analysis: %s rows, years %d-%d\n",
		humanize.Comma(int64(data.Rows)), data.Filter.MinYear, data.Filter.MaxYear)

	heading(w, "Total Suicides Per Year")
	totalsTable(w, "Year", data.Yearly)

	heading(w, "Suicides by Gender")
	totalsTable(w, "Sex", data.ByGender)

	heading(w, fmt.Sprintf("Top %d Countries by Total Suicides", len(data.TopCountries)))
	totalsTable(w, "Country", data.TopCountries)

	if data.ByAge != nil {
		heading(w, "Suicides by Age Group")
		totalsTable(w, "Age", data.ByAge)
	}

	if data.GDP != nil {
		heading(w, "GDP per Capita vs Suicides")
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Country", "Slope", "Intercept", "R²", "Points"})
		if o := data.GDP.Overall; o != nil {
			table.Append(trendRow("(all)", *o))
		}
		for _, tl := range data.GDP.ByCountry {
			table.Append(trendRow(tl.Country, tl))
		}
		table.Render()
	}
}

func trendRow(label string, tl models.Trendline) []string {
	return []string{
		label,
		strconv.FormatFloat(tl.Slope, 'g', 6, 64),
		strconv.FormatFloat(tl.Intercept, 'g', 6, 64),
		strconv.FormatFloat(tl.RSquared, 'f', 3, 64),
		strconv.Itoa(tl.N),
	}
}
