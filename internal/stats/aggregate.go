// Package stats derives the dashboard statistics from passenger records.
// Every function here is pure and leaves its input untouched.
package stats

import (
	"titanicdash/internal/models"
)

// Counts holds the headline totals of the dataset
type Counts struct {
	Total        int
	Survivors    int
	Deaths       int
	SurvivalRate float64
}

// PassengerStats counts passengers and survivors.
// SurvivalRate is 0 when there are no records.
func PassengerStats(records []models.Passenger) Counts {
	survivors := 0
	for _, p := range records {
		if p.HasSurvived() {
			survivors++
		}
	}

	counts := Counts{
		Total:     len(records),
		Survivors: survivors,
		Deaths:    len(records) - survivors,
	}
	if counts.Total > 0 {
		counts.SurvivalRate = float64(survivors) / float64(counts.Total)
	}
	return counts
}

// ClassCount counts passengers per class
func ClassCount(records []models.Passenger) models.ClassCounts {
	var counts models.ClassCounts
	for _, p := range records {
		switch p.Class {
		case 1:
			counts.First++
		case 2:
			counts.Second++
		case 3:
			counts.Third++
		}
	}
	return counts
}

// SexCountBySurvived counts passengers by sex and survival outcome.
// Records with a sex other than male or female are not counted.
func SexCountBySurvived(records []models.Passenger) models.SexCountBySurvival {
	var out models.SexCountBySurvival
	for _, p := range records {
		bucket := &out.NotSurvived
		if p.HasSurvived() {
			bucket = &out.Survived
		} else if p.Survived != 0 {
			continue
		}

		switch p.Sex {
		case models.SexMale:
			bucket.Male++
		case models.SexFemale:
			bucket.Female++
		}
	}
	return out
}

// AverageAgeByClass averages the known ages in each class.
// A class without any known age averages to 0.
func AverageAgeByClass(records []models.Passenger) models.ClassAverages {
	var sums [3]float64
	var counts [3]int
	for _, p := range records {
		age, ok := p.ValidAge()
		if !ok || p.Class < 1 || p.Class > 3 {
			continue
		}
		sums[p.Class-1] += age
		counts[p.Class-1]++
	}

	var avg [3]float64
	for i := range avg {
		if counts[i] > 0 {
			avg[i] = sums[i] / float64(counts[i])
		}
	}
	return models.ClassAverages{First: avg[0], Second: avg[1], Third: avg[2]}
}

// Summarize computes every statistic shown on the dashboard
func Summarize(records []models.Passenger) models.SummaryStats {
	counts := PassengerStats(records)
	return models.SummaryStats{
		Total:        counts.Total,
		Survivors:    counts.Survivors,
		Deaths:       counts.Deaths,
		SurvivalRate: counts.SurvivalRate,
		ClassCount:   ClassCount(records),
		SexCount:     SexCountBySurvived(records),
		AverageAge:   AverageAgeByClass(records),
	}
}
