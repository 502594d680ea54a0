package stats

import (
	"titanicdash/internal/models"
)

// Display colors shared by the charts
var (
	ClassColors = []string{"#3B82F6", "#10B981", "#F59E0B"}
	SexColors   = []string{"#60A5FA", "#F472B6"}
)

// SeriesLabels are the localized texts used to title chart series
type SeriesLabels struct {
	Classes         [3]string
	Male            string
	Female          string
	ClassCountTitle string
	ClassCountLabel string
	SurvivorsTitle  string
	AverageAgeTitle string
	AverageAgeLabel string
	AverageAgeAxis  string
}

// ClassCountSeries projects per-class passenger counts
func ClassCountSeries(s models.SummaryStats, l SeriesLabels) models.ChartSeries {
	return models.ChartSeries{
		Title:  l.ClassCountTitle,
		Label:  l.ClassCountLabel,
		Labels: l.Classes[:],
		Values: []float64{
			float64(s.ClassCount.First),
			float64(s.ClassCount.Second),
			float64(s.ClassCount.Third),
		},
		Colors: ClassColors,
	}
}

// SurvivorsBySexSeries projects survivor counts per sex
func SurvivorsBySexSeries(s models.SummaryStats, l SeriesLabels) models.ChartSeries {
	return models.ChartSeries{
		Title:  l.SurvivorsTitle,
		Labels: []string{l.Male, l.Female},
		Values: []float64{
			float64(s.SexCount.Survived.Male),
			float64(s.SexCount.Survived.Female),
		},
		Colors: SexColors,
	}
}

// AverageAgeSeries projects average age per class
func AverageAgeSeries(s models.SummaryStats, l SeriesLabels) models.ChartSeries {
	return models.ChartSeries{
		Title:    l.AverageAgeTitle,
		Label:    l.AverageAgeLabel,
		AxisName: l.AverageAgeAxis,
		Labels:   l.Classes[:],
		Values:   []float64{s.AverageAge.First, s.AverageAge.Second, s.AverageAge.Third},
		Colors:   ClassColors,
	}
}
