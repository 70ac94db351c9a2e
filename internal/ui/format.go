// ABOUTME: Terminal formatting utilities for measurements and projects
// ABOUTME: Provides human-readable output with feet/inch and decimal figures

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/parcel/internal/geometry"
	"github.com/harper/parcel/internal/models"
)

// FormatAggregate formats the derived figures of a calculation.
func FormatAggregate(agg geometry.Aggregate) string {
	if agg.IsZero() {
		return color.New(color.Faint).Sprint("(not enough points to measure)")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  Left side:   %s\n", formatLength(agg.LeftDistance)))
	sb.WriteString(fmt.Sprintf("  Right side:  %s\n", formatLength(agg.RightDistance)))
	sb.WriteString(fmt.Sprintf("  Avg width:   %s\n", formatLength(agg.AverageWidth)))
	sb.WriteString(fmt.Sprintf("  Length:      %s\n", formatLength(agg.Length)))
	sb.WriteString(fmt.Sprintf("  Area:        %s sq ft (%s decimals)",
		color.CyanString("%.1f", agg.AreaSquareFeet),
		color.CyanString("%.2f", agg.AreaDecimal)))
	return sb.String()
}

// formatLength renders meters with the feet/inch equivalent.
func formatLength(meters float64) string {
	feet, inches := geometry.MetersToFeetInches(meters)
	return fmt.Sprintf("%.2f m %s", meters,
		color.New(color.Faint).Sprintf("(%d ft %d in)", feet, inches))
}

// FormatMeasurement formats a measurement for list display.
func FormatMeasurement(m *models.Measurement) string {
	if m == nil {
		return color.New(color.Faint).Sprint("(invalid measurement)")
	}

	name := m.Name
	if name == "" {
		name = "(unnamed)"
	}

	return fmt.Sprintf("%s %s - %.1f sq ft, %d+%d points - %s",
		color.New(color.Faint).Sprint(m.ID.String()[:8]),
		color.GreenString(name),
		m.Calculations.AreaSquareFeet,
		len(m.LeftPoints), len(m.RightPoints),
		color.New(color.Faint).Sprint(FormatRelativeTime(m.UpdatedAt)))
}

// FormatProject formats a project summary line.
func FormatProject(p *models.Project, current bool) string {
	if p == nil {
		return color.New(color.Faint).Sprint("(invalid project)")
	}

	marker := "  "
	name := p.Name
	if current {
		marker = color.GreenString("* ")
		name = color.GreenString(p.Name)
	}

	return fmt.Sprintf("%s%s - %d measurements, %.1f sq ft total",
		marker, name, len(p.Measurements), p.TotalArea())
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
