package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"suicidestats/internal/models"
)

// GDPCorrelation pairs every record that has a GDP value with its suicide
// count and fits an OLS trendline overall and per country. Countries with
// fewer than two distinct GDP values get no line.
func GDPCorrelation(ds *Dataset) *models.GDPCorrelation {
	out := &models.GDPCorrelation{
		Points:    make([]models.GDPPoint, 0),
		ByCountry: make([]models.Trendline, 0),
	}

	type xy struct{ xs, ys []float64 }
	var order []string
	groups := make(map[string]*xy)
	var all xy

	for _, rec := range ds.records {
		if !rec.HasGDP {
			continue
		}
		out.Points = append(out.Points, models.GDPPoint{
			Country:      rec.Country,
			GDPPerCapita: rec.GDPPerCapita,
			Suicides:     rec.Suicides,
		})
		g, ok := groups[rec.Country]
		if !ok {
			g = &xy{}
			groups[rec.Country] = g
			order = append(order, rec.Country)
		}
		x, y := rec.GDPPerCapita, float64(rec.Suicides)
		g.xs, g.ys = append(g.xs, x), append(g.ys, y)
		all.xs, all.ys = append(all.xs, x), append(all.ys, y)
	}

	if line, ok := fitLine(all.xs, all.ys); ok {
		out.Overall = &line
	}
	for _, c := range order {
		g := groups[c]
		if line, ok := fitLine(g.xs, g.ys); ok {
			line.Country = c
			out.ByCountry = append(out.ByCountry, line)
		}
	}
	return out
}

func fitLine(xs, ys []float64) (models.Trendline, bool) {
	if len(xs) < 2 {
		return models.Trendline{}, false
	}
	minX, maxX := xs[0], xs[0]
	for _, x := range xs[1:] {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}
	if minX == maxX {
		return models.Trendline{}, false
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		// constant y: the horizontal fit is exact
		r2 = 1
	}
	return models.Trendline{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  r2,
		N:         len(xs),
		MinX:      minX,
		MaxX:      maxX,
	}, true
}
