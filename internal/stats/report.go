package stats

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"titanicdash/internal/models"
)

// RenderReport renders the summary statistics as plain-text tables
func RenderReport(s models.SummaryStats, l SeriesLabels) string {
	var b strings.Builder

	totals := table.NewWriter()
	totals.SetTitle("Passengers")
	totals.AppendHeader(table.Row{"Total", "Survivors", "Deaths", "Survival rate"})
	totals.AppendRow(table.Row{FormatCount(s.Total), FormatCount(s.Survivors), FormatCount(s.Deaths), FormatPercent(s.SurvivalRate)})
	totals.SetStyle(table.StyleLight)
	b.WriteString(totals.Render())
	b.WriteString("\n\n")

	classes := table.NewWriter()
	classes.SetTitle("By class")
	classes.AppendHeader(table.Row{"Class", "Passengers", "Average age"})
	classes.AppendRows([]table.Row{
		{l.Classes[0], s.ClassCount.First, fmt.Sprintf("%.2f", s.AverageAge.First)},
		{l.Classes[1], s.ClassCount.Second, fmt.Sprintf("%.2f", s.AverageAge.Second)},
		{l.Classes[2], s.ClassCount.Third, fmt.Sprintf("%.2f", s.AverageAge.Third)},
	})
	classes.AppendFooter(table.Row{"", s.ClassCount.Sum(), ""})
	classes.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	classes.SetStyle(table.StyleLight)
	b.WriteString(classes.Render())
	b.WriteString("\n\n")

	sexes := table.NewWriter()
	sexes.SetTitle("By sex")
	sexes.AppendHeader(table.Row{"", l.Male, l.Female})
	sexes.AppendRows([]table.Row{
		{"Survived", s.SexCount.Survived.Male, s.SexCount.Survived.Female},
		{"Not survived", s.SexCount.NotSurvived.Male, s.SexCount.NotSurvived.Female},
	})
	sexes.SetStyle(table.StyleLight)
	b.WriteString(sexes.Render())
	b.WriteString("\n")

	return b.String()
}
