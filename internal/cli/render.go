// Package cli implements the plannerctl operator commands and their
// terminal rendering.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// Theme colors
var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorWarn   = lipgloss.Color("#DA702C")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	dimStyle    = lipgloss.NewStyle().Foreground(colorBorder)
)

// RenderTitle renders a title in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// RenderItinerary draws one row per day with the three period columns.
// Each cell lists the slot's activities in order, one per line.
func RenderItinerary(trip domain.Trip, policy itinerary.Policy) string {
	dates := itinerary.DateRange(trip.StartDate, trip.EndDate)
	slots := itinerary.ListSlots(dates, trip.Activities)

	headers := []string{"Date", "Morning", "Afternoon", "Night"}
	rows := make([][]string, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, []string{
			s.Date,
			cell(s.Morning),
			cell(s.Afternoon),
			cell(s.Night),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTitle(fmt.Sprintf("%s  %s to %s",
		trip.Name, itinerary.FormatDate(trip.StartDate), itinerary.FormatDate(trip.EndDate))))
	b.WriteString("\n")
	if len(trip.Destinations) > 0 {
		b.WriteString(mutedStyle.Render("  " + strings.Join(trip.Destinations, " / ")))
		b.WriteString("\n")
	}
	b.WriteString(renderGrid(headers, rows))

	inRange := make(map[string]bool, len(dates))
	for _, d := range dates {
		inRange[d] = true
	}
	hidden := 0
	for _, a := range trip.Activities {
		if !inRange[a.Date] {
			hidden++
		}
	}
	if hidden > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  %d activities fall outside the trip dates and are not shown", hidden)))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("  drag policy: " + string(policy)))
	b.WriteString("\n")
	return b.String()
}

func cell(list []domain.Activity) string {
	if len(list) == 0 {
		return "-"
	}
	lines := make([]string, len(list))
	for i, a := range list {
		lines[i] = a.Description
	}
	return strings.Join(lines, "\n")
}

// renderGrid draws a bordered grid. Cells may span several lines; every
// line of a row is padded to the row's tallest cell.
func renderGrid(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, c := range row {
			for _, line := range strings.Split(c, "\n") {
				widths[i] = max(widths[i], lipgloss.Width(line))
			}
		}
	}

	rule := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return dimStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
	}
	line := func(cells []string, style lipgloss.Style) string {
		var b strings.Builder
		b.WriteString(dimStyle.Render("│"))
		for i, c := range cells {
			b.WriteString(style.Render(" " + c + strings.Repeat(" ", widths[i]-lipgloss.Width(c)) + " "))
			b.WriteString(dimStyle.Render("│"))
		}
		return b.String() + "\n"
	}

	var b strings.Builder
	b.WriteString(rule("╭", "┬", "╮"))
	b.WriteString(line(headers, headerStyle))
	b.WriteString(rule("├", "┼", "┤"))
	for r, row := range rows {
		split := make([][]string, len(row))
		height := 1
		for i, c := range row {
			split[i] = strings.Split(c, "\n")
			height = max(height, len(split[i]))
		}
		for h := range height {
			cells := make([]string, len(row))
			for i := range row {
				if h < len(split[i]) {
					cells[i] = split[i][h]
				}
			}
			b.WriteString(line(cells, valueStyle))
		}
		if r < len(rows)-1 {
			b.WriteString(rule("├", "┼", "┤"))
		}
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}
