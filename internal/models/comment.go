package models

import (
	"fmt"
	"time"
)

// ChartType tags a comment thread with the chart it belongs to
type ChartType string

const (
	ChartClassCount ChartType = "classCount"
	ChartSurvived   ChartType = "survived"
	ChartAge        ChartType = "age"
)

// ChartTypes returns every chart type in dashboard order
func ChartTypes() []ChartType {
	return []ChartType{ChartClassCount, ChartSurvived, ChartAge}
}

// ParseChartType validates a chart type tag
func ParseChartType(s string) (ChartType, error) {
	for _, t := range ChartTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown chart type %q", s)
}

// Comment represents a visitor comment attached to a chart
type Comment struct {
	ID        string    `json:"id"`
	Type      ChartType `json:"type"`
	Text      string    `json:"text"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentBuckets groups comments by chart type, each bucket ordered by creation time
type CommentBuckets map[ChartType][]Comment

// NewCommentBuckets returns empty buckets for every chart type
func NewCommentBuckets() CommentBuckets {
	buckets := make(CommentBuckets, len(ChartTypes()))
	for _, t := range ChartTypes() {
		buckets[t] = []Comment{}
	}
	return buckets
}
