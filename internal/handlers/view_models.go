package handlers

import (
	"titanicdash/internal/models"
	"titanicdash/internal/table"
)

// StatCard is one summary number on the dashboard
type StatCard struct {
	Title string
	Value string
}

// ChartPanel is a chart with its comment thread
type ChartPanel struct {
	Type     models.ChartType
	Title    string
	ImageURL string
	Comments []models.Comment
	EditID   string
}

// TableViewData is the rendered page of the passenger table
type TableViewData struct {
	Rows       []models.Passenger
	Filter     table.Filter
	Page       int
	TotalPages int
	Matches    int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
}

// PageData is shared by every full page
type PageData struct {
	Title   string
	Msg     Messages
	Refresh bool
}

type DashboardViewData struct {
	PageData
	Notice         string
	Error          string
	Cards          []StatCard
	Panels         []ChartPanel
	Table          TableViewData
	CommentsFailed bool
}

type ConfirmDeleteViewData struct {
	PageData
	Comment models.Comment
}

// StatusViewData backs the loading and failure pages
type StatusViewData struct {
	PageData
	Message string
	Detail  string
}

// CommentPanelData is what the comments partial renders for one chart
type CommentPanelData struct {
	Msg      Messages
	Panel    ChartPanel
	Comments []models.Comment
}

func panelData(msg Messages, panel ChartPanel) CommentPanelData {
	return CommentPanelData{Msg: msg, Panel: panel, Comments: panel.Comments}
}
