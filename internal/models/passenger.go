package models

import "math"

// Sex values present in the dataset
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Passenger represents one row of the historical passenger dataset
type Passenger struct {
	Class    int      `json:"pclass"`
	Survived int      `json:"survived"`
	Name     string   `json:"name"`
	Sex      string   `json:"sex"`
	Age      *float64 `json:"age"`
	SibSp    int      `json:"sibsp"`
	Parch    int      `json:"parch"`
	Ticket   string   `json:"ticket"`
	Fare     *float64 `json:"fare"`
	Cabin    *string  `json:"cabin"`
	Embarked string   `json:"embarked"`
	Boat     *string  `json:"boat"`
	Body     *int     `json:"body"`
	HomeDest *string  `json:"home.dest"`
}

// HasSurvived reports whether the passenger survived
func (p Passenger) HasSurvived() bool {
	return p.Survived == 1
}

// ValidAge returns the passenger's age and whether it is a usable number
func (p Passenger) ValidAge() (float64, bool) {
	if p.Age == nil || math.IsNaN(*p.Age) {
		return 0, false
	}
	return *p.Age, true
}

// SexCount holds a count per sex
type SexCount struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// SexCountBySurvival splits sex counts by survival outcome
type SexCountBySurvival struct {
	Survived    SexCount `json:"survived"`
	NotSurvived SexCount `json:"notSurvived"`
}

// ClassCounts holds passenger counts per class
type ClassCounts struct {
	First  int `json:"1"`
	Second int `json:"2"`
	Third  int `json:"3"`
}

// Sum returns the total over all three classes
func (c ClassCounts) Sum() int {
	return c.First + c.Second + c.Third
}

// ClassAverages holds an average value per class
type ClassAverages struct {
	First  float64 `json:"1"`
	Second float64 `json:"2"`
	Third  float64 `json:"3"`
}

// SummaryStats is the statistical projection of the dataset shown on the dashboard
type SummaryStats struct {
	Total        int                `json:"total"`
	Survivors    int                `json:"survivors"`
	Deaths       int                `json:"deaths"`
	SurvivalRate float64            `json:"survivalRate"`
	ClassCount   ClassCounts        `json:"classCount"`
	SexCount     SexCountBySurvival `json:"sexCount"`
	AverageAge   ClassAverages      `json:"averageAge"`
}

// ChartSeries is a labeled set of values ready for rendering
type ChartSeries struct {
	Title    string
	Label    string
	AxisName string
	Labels   []string
	Values   []float64
	Colors   []string
}

// Total returns the sum of all values in the series
func (s ChartSeries) Total() float64 {
	var total float64
	for _, v := range s.Values {
		total += v
	}
	return total
}
