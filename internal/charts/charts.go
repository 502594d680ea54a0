// Package charts renders chart series as SVG images with go-chart.
package charts

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"titanicdash/internal/models"
)

// ErrNoData is returned when a series has nothing to draw
var ErrNoData = errors.New("chart series has no data")

const (
	Width    = 512
	Height   = 384
	BarWidth = 80
)

// headroom above the tallest bar
const headroom = 1.15

// RenderBar draws series as a bar chart in SVG
func RenderBar(series models.ChartSeries, w io.Writer) error {
	if !hasData(series) {
		return ErrNoData
	}

	var bars []chart.Value
	maxVal := 0.0
	for i, v := range series.Values {
		if v > maxVal {
			maxVal = v
		}
		bars = append(bars, chart.Value{
			Value: v,
			Label: label(series, i),
			Style: fill(series, i),
		})
	}

	graph := chart.BarChart{
		Title: series.Title,
		TitleStyle: chart.Style{
			FontSize: 14.0,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: drawing.ColorWhite,
		},
		Width:    Width,
		Height:   Height,
		BarWidth: BarWidth,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name:  series.AxisName,
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal * headroom},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("error rendering bar chart: %w", err)
	}
	return nil
}

// RenderPie draws series as a pie chart in SVG. Zero slices are left out.
func RenderPie(series models.ChartSeries, w io.Writer) error {
	if !hasData(series) {
		return ErrNoData
	}

	var values []chart.Value
	for i, v := range series.Values {
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: v,
			Label: fmt.Sprintf("%s (%.0f)", label(series, i), v),
			Style: fill(series, i),
		})
	}

	graph := chart.PieChart{
		Title: series.Title,
		TitleStyle: chart.Style{
			FontSize: 14.0,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Width:  Width,
		Height: Height,
		Values: values,
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("error rendering pie chart: %w", err)
	}
	return nil
}

func hasData(series models.ChartSeries) bool {
	return len(series.Values) > 0 && series.Total() > 0
}

func label(series models.ChartSeries, i int) string {
	if i < len(series.Labels) {
		return series.Labels[i]
	}
	return ""
}

func fill(series models.ChartSeries, i int) chart.Style {
	if i >= len(series.Colors) {
		return chart.Style{}
	}
	color := drawing.ColorFromHex(strings.TrimPrefix(series.Colors[i], "#"))
	return chart.Style{
		FillColor:   color,
		StrokeColor: color,
		StrokeWidth: 1,
	}
}
