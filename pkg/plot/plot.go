// Package plot renders titration curves as PNG charts
package plot

import (
	"fmt"
	"io"

	"github.com/vanbaels/pepcharge/pkg/core"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default chart dimensions, used when the caller passes zero
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Series is one peptide's titration curve
type Series struct {
	Label  string
	Points []core.ProfilePoint
}

// line colors cycle per series
var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
}

// Titration renders the given titration curves overlaid on one PNG chart,
// with a dashed gray line marking zero net charge. A legend is added when
// more than one curve is drawn.
func Titration(w io.Writer, title string, series []Series, width, height int) error {
	if len(series) == 0 {
		return fmt.Errorf("no titration curves to plot")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	for _, s := range series {
		if len(s.Points) < 2 {
			return fmt.Errorf("curve %q has %d points, need at least 2", s.Label, len(s.Points))
		}
	}

	var chartSeries []chart.Series
	minPH, maxPH := series[0].Points[0].PH, series[0].Points[0].PH

	for i, s := range series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j] = p.PH
			ys[j] = p.Charge
			if p.PH < minPH {
				minPH = p.PH
			}
			if p.PH > maxPH {
				maxPH = p.PH
			}
		}

		chartSeries = append(chartSeries, chart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: palette[i%len(palette)],
				StrokeWidth: 2.0,
			},
		})
	}

	// Zero-charge reference line; unnamed so it stays out of the legend.
	chartSeries = append(chartSeries, chart.ContinuousSeries{
		XValues: []float64{minPH, maxPH},
		YValues: []float64{0, 0},
		Style: chart.Style{
			StrokeColor:     chart.ColorAlternateGray,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	})

	ch := chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "pH",
		},
		YAxis: chart.YAxis{
			Name: "Net charge",
		},
		Series: chartSeries,
	}

	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	return ch.Render(chart.PNG, w)
}
