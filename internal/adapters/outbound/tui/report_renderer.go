// Package tui renders a styled diagnostic view of a check report. It goes
// to stderr only; stdout stays reserved for the plugin line.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/yifangd/check-json/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle   = lipgloss.NewStyle().Foreground(dim)

	statusStyles = map[domain.Status]lipgloss.Style{
		domain.StatusOK:       lipgloss.NewStyle().Bold(true).Foreground(success),
		domain.StatusWarning:  lipgloss.NewStyle().Bold(true).Foreground(warning),
		domain.StatusCritical: lipgloss.NewStyle().Bold(true).Foreground(danger),
		domain.StatusUnknown:  lipgloss.NewStyle().Bold(true).Foreground(dim),
	}

	markStyles = map[domain.Status]string{
		domain.StatusOK:       lipgloss.NewStyle().Foreground(success).Render("●"),
		domain.StatusWarning:  lipgloss.NewStyle().Foreground(warning).Render("●"),
		domain.StatusCritical: lipgloss.NewStyle().Foreground(danger).Render("●"),
		domain.StatusUnknown:  lipgloss.NewStyle().Foreground(dim).Render("●"),
	}
)

// RenderReport renders a check report as a styled multi-line string: a
// header box with the overall status, then one line per attribute.
func RenderReport(url string, rep *domain.CheckReport) string {
	var b strings.Builder

	header := titleStyle.Render("check_json") + "  " +
		statusStyles[rep.Status].Render(rep.Status.String())
	b.WriteString(boxStyle.Render(header + "\n" + dimStyle.Render(url)))
	b.WriteString("\n")

	for _, res := range rep.Results {
		b.WriteString(renderResult(res))
	}

	if rep.Perfdata != "" {
		b.WriteString("\n")
		b.WriteString("  " + dimStyle.Render(rep.Perfdata) + "\n")
	}

	return b.String()
}

func renderResult(res domain.AttributeResult) string {
	line := fmt.Sprintf("  %s %s", markStyles[res.Status], humanize(res.Label))

	if res.Err != nil {
		return line + "  " + dimStyle.Render(res.Err.Error()) + "\n"
	}

	line += "  " + domain.FormatNumber(res.Value)
	if res.Spec.Divisor != 1 {
		line += dimStyle.Render(fmt.Sprintf(" (raw %s, /%s)",
			domain.FormatNumber(res.Raw), domain.FormatNumber(res.Spec.Divisor)))
	}

	var bounds []string
	if res.Spec.Warning != nil {
		bounds = append(bounds, "warn "+res.Spec.Warning.String())
	}
	if res.Spec.Critical != nil {
		bounds = append(bounds, "crit "+res.Spec.Critical.String())
	}
	if len(bounds) > 0 {
		line += "  " + dimStyle.Render(strings.Join(bounds, ", "))
	}

	return line + "\n"
}

// humanize turns a camelCased key like liveShares into "Live Shares" for
// display. Plugin-line labels are untouched; this is cosmetic only.
func humanize(label string) string {
	words := camelcase.Split(label)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
