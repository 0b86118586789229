package charts

import (
	"errors"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"winedash/internal/engine"
	"winedash/internal/models"
)

var ErrNoData = errors.New("not enough data to plot")

const (
	width  = 1024
	height = 512
)

// paddedRange keeps go-chart away from zero-width axes when all values match.
func paddedRange(values []float64, pad float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

const (
	minDot = 3.0
	maxDot = 12.0
)

// dotWidth maps price linearly onto minDot..maxDot within [lo, hi].
func dotWidth(price, lo, hi float64) float64 {
	if !(hi > lo) {
		return (minDot + maxDot) / 2
	}
	f := math.Max(0, math.Min(1, (price-lo)/(hi-lo)))
	return minDot + f*(maxDot-minDot)
}

// Scatter plots points against price, one colored series per province,
// with marker size growing with price.
func Scatter(w io.Writer, cs *engine.ColumnStore) error {
	if cs.Len() == 0 {
		return ErrNoData
	}
	provinces, err := engine.GroupValues(cs, engine.Province, engine.Price)
	if err != nil {
		return err
	}
	points, err := engine.GroupValues(cs, engine.Province, engine.Points)
	if err != nil {
		return err
	}

	lo, hi := floats.Min(cs.Prices), floats.Max(cs.Prices)
	byPrice := func(_, _ chart.Range, _ int, _, y float64) float64 {
		return dotWidth(y, lo, hi)
	}

	var allX []float64
	series := make([]chart.Series, 0, len(provinces))
	for i := range provinces {
		allX = append(allX, points[i].Values...)
		color := chart.GetDefaultColor(i)
		series = append(series, chart.ContinuousSeries{
			Name: provinces[i].Key,
			Style: chart.Style{
				StrokeWidth:      chart.Disabled,
				DotColor:         color,
				DotWidthProvider: byPrice,
			},
			XValues: points[i].Values,
			YValues: provinces[i].Values,
		})
	}

	graph := chart.Chart{
		Title:  "Wine Ratings vs. Price by Province",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  chart.XAxis{Name: "Points", Range: paddedRange(allX, 0.5)},
		YAxis:  chart.YAxis{Name: "Price", Range: paddedRange(cs.Prices, 2)},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// Bar renders an "average X by Y" chart in the order given.
func Bar(w io.Writer, title string, groups []models.GroupMean) error {
	if len(groups) == 0 {
		return ErrNoData
	}
	bars := make([]chart.Value, len(groups))
	top := 0.0
	for i, g := range groups {
		bars[i] = chart.Value{Label: g.Key, Value: g.Mean}
		top = math.Max(top, g.Mean)
	}
	bc := chart.BarChart{
		Title:    title,
		Width:    width,
		Height:   height,
		BarWidth: 60,
		YAxis:    chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1}},
		Bars:     bars,
	}
	return bc.Render(chart.PNG, w)
}

// PriceBox draws the price distribution of each province as a box plot.
func PriceBox(w io.Writer, cs *engine.ColumnStore) error {
	if cs.Len() == 0 {
		return ErrNoData
	}
	groups, err := engine.GroupValues(cs, engine.Province, engine.Price)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Price Distribution across Provinces"
	p.Y.Label.Text = "Price"

	names := make([]string, len(groups))
	for i, g := range groups {
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(g.Values))
		if err != nil {
			return err
		}
		p.Add(box)
		names[i] = g.Key
	}
	p.NominalX(names...)

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
