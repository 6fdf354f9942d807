package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gorchard/farmhand/internal/domain"
)

type RenderOptions struct {
	Now        time.Time
	VisitLines int
}

// Render produces the terminal status panel for one snapshot.
func Render(snap domain.StatusSnapshot, opts RenderOptions) string {
	return renderView(snap, opts, newStyles())
}

func renderView(snap domain.StatusSnapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("farmhand session"),
		s.header.Render(stateLine(snap, opts.Now)),
	}

	if snap.User != nil {
		lines = append(lines, s.section.Render(renderUser(snap.User, s)))
	}
	if len(snap.Farm) > 0 {
		lines = append(lines, s.section.Render(renderFarm(snap.Farm, s)))
	}
	if len(snap.Bag) > 0 {
		lines = append(lines, s.section.Render(renderBag(snap.Bag, s)))
	}
	if len(snap.Visits) > 0 {
		lines = append(lines, s.section.Render(renderVisits(snap.Visits, opts, s)))
	}
	if len(lines) == 2 && !snap.Running {
		lines = append(lines, s.empty.Render("No session data available."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func stateLine(snap domain.StatusSnapshot, now time.Time) string {
	state := "stopped"
	if snap.Running {
		state = "running"
		if !snap.Connected {
			state = "running (disconnected)"
		}
	}
	parts := []string{fmt.Sprintf("state: %s", state)}
	if snap.Platform != "" {
		parts = append(parts, fmt.Sprintf("platform: %s", snap.Platform))
	}
	if snap.StartedAt != nil && !now.IsZero() {
		parts = append(parts, fmt.Sprintf("up: %s", now.Sub(*snap.StartedAt).Round(time.Second)))
	}
	if snap.LastError != "" {
		parts = append(parts, fmt.Sprintf("last error: %s", snap.LastError))
	}
	return strings.Join(parts, "  ")
}

func renderUser(user *domain.UserInfo, s styles) string {
	head := s.title.Render(fmt.Sprintf("%s (lv %d)", user.Nickname, user.Level))
	detail := s.detail.Render(fmt.Sprintf("exp: %d  money: %d", user.Exp, user.Money))

	parts := []string{head, detail}
	if user.Progress != nil && user.Progress.Needed > 0 {
		percent := 100 * float64(user.Progress.Current) / float64(user.Progress.Needed)
		bar := renderProgressBar(percent, 24, s)
		meta := s.detail.Render(fmt.Sprintf("%d/%d to next level", user.Progress.Current, user.Progress.Needed))
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", meta))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderFarm(plots []domain.FarmPlotView, s styles) string {
	lines := []string{s.title.Render(fmt.Sprintf("plots: %d", len(plots)))}
	for _, plot := range plots {
		lines = append(lines, plotLine(plot, s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func plotLine(plot domain.FarmPlotView, s styles) string {
	if !plot.Unlocked {
		return s.empty.Render(fmt.Sprintf("#%d locked", plot.ID))
	}
	if plot.Crop == "" {
		return s.detail.Render(fmt.Sprintf("#%d empty", plot.ID))
	}

	line := fmt.Sprintf("#%d %s: %s", plot.ID, plot.Crop, plot.PhaseLabel)
	if plot.SecondsToMature != nil {
		if *plot.SecondsToMature == 0 {
			line += " (ready)"
			return s.good.Render(line)
		}
		line += fmt.Sprintf(" (%s left)", (time.Duration(*plot.SecondsToMature) * time.Second).String())
	}

	var hazards []string
	if plot.NeedsWater {
		hazards = append(hazards, "dry")
	}
	if plot.NeedsWeeding {
		hazards = append(hazards, "weeds")
	}
	if plot.NeedsPestControl {
		hazards = append(hazards, "pests")
	}
	out := s.detail.Render(line)
	if len(hazards) > 0 {
		out += " " + s.hazard.Render("["+strings.Join(hazards, ",")+"]")
	}
	return out
}

func renderBag(entries []domain.BagEntry, s styles) string {
	lines := []string{s.title.Render(fmt.Sprintf("bag: %d kinds", len(entries)))}
	for _, entry := range entries {
		line := fmt.Sprintf("%-8s %s x%d", entry.Kind, entry.Name, entry.Count)
		if entry.UnitPrice != nil {
			line += fmt.Sprintf(" @%.4g", *entry.UnitPrice)
		}
		lines = append(lines, s.detail.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderVisits(visits []domain.VisitRecord, opts RenderOptions, s styles) string {
	limit := opts.VisitLines
	if limit <= 0 {
		limit = 5
	}
	if len(visits) > limit {
		visits = visits[len(visits)-limit:]
	}
	lines := []string{s.title.Render("recent visits")}
	for _, rec := range visits {
		arrow := "<-"
		if rec.Direction == domain.VisitOutgoing {
			arrow = "->"
		}
		name := rec.CounterpartyName
		if name == "" {
			name = rec.CounterpartyID
		}
		lines = append(lines, s.detail.Render(fmt.Sprintf("%s %s %s: %s", arrow, name, rec.Kind, rec.Message)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(math.Round(float64(width) * percent / 100.0))
	if filled > width {
		filled = width
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}
