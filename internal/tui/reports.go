package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bkemper/tally/internal/export"
	"github.com/bkemper/tally/internal/query"
)

const reportDays = 14

// reportsModel charts the tracked time of the last two weeks.
type reportsModel struct {
	svc    *query.Service
	width  int
	height int

	totals []query.DailyTotal
	chart  barchart.Model
}

func newReportsModel(svc *query.Service) reportsModel {
	return reportsModel{
		svc:   svc,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		totals, _ := r.svc.DailyTotals(reportDays, time.Now())
		return reportsDataMsg{totals: totals}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.totals = msg.totals
		r.buildChart()
		return r, nil
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, day := range r.totals {
		hours := 0.0
		if day.Total != nil {
			hours = day.Total.Hours()
		}
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if day.Running {
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		}
		bars = append(bars, barchart.BarData{
			Label: day.Date.Time().Format("Mon 02"),
			Values: []barchart.BarValue{
				{Name: string(day.Date), Value: hours, Style: style},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	from := ""
	to := ""
	if len(r.totals) > 0 {
		from = r.totals[0].Date.Time().Format("Jan 02")
		to = r.totals[len(r.totals)-1].Date.Time().Format("Jan 02, 2006")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s — %s", from, to)),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderTotalsTable(w),
		),
	)
}

func (r reportsModel) renderTotalsTable(w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-14s %14s", "Date", "Total")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 30))))

	empty := true
	for _, day := range r.totals {
		if day.Total == nil {
			continue
		}
		empty = false
		marker := " "
		if day.Running {
			marker = successStyle.Render("●")
		}
		rows = append(rows, fmt.Sprintf("  %-14s %14s %s",
			day.Date, export.FormatDuration(day.Total), marker,
		))
	}
	if empty {
		return mutedStyle.Render("  No tracked time in this period")
	}
	return strings.Join(rows, "\n")
}
