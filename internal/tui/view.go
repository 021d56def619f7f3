package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ecolife/ecolife-cli/internal/constants"
	apperrors "github.com/ecolife/ecolife-cli/internal/errors"
	"github.com/ecolife/ecolife-cli/internal/stats"
	"github.com/ecolife/ecolife-cli/internal/tui/components/calendar"
)

const barWidth = 20

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateCalendar:
		content = m.viewCalendar()
	case constants.StateConfirmDelete:
		content = m.form.View()
	default:
		content = m.viewDashboard()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		"",
		content,
		"",
		m.viewStatus(),
		m.help.View(m.keys),
	))
}

func (m Model) viewTabs() string {
	tabs := []struct {
		title string
		state constants.SessionState
	}{
		{"Today", constants.StateDashboard},
		{"Calendar", constants.StateCalendar},
	}
	var out []string
	for _, tab := range tabs {
		if m.state == tab.state {
			out = append(out, activeTabStyle.Render(tab.title))
		} else {
			out = append(out, inactiveTabStyle.Render(tab.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m Model) viewStatus() string {
	switch {
	case m.err != nil:
		msg := dangerStyle.Render(apperrors.Format(m.err))
		if apperrors.IsBackend(m.err) {
			msg += mutedStyle.Render("  (r to retry)")
		}
		return msg
	case m.pending > 0:
		return m.spinner.View() + mutedStyle.Render(" Loading...")
	case m.status != "":
		return mutedStyle.Render(m.status)
	}
	return ""
}

func activity(label string, done bool, streak stats.Streak) string {
	mark := openStyle.Render("○ " + label)
	if done {
		mark = doneStyle.Render("✓ " + label)
	}
	return fmt.Sprintf("%-28s %s", mark, mutedStyle.Render("streak "+streak.String()))
}

func (m Model) viewDashboard() string {
	if !m.loaded {
		if m.err != nil {
			return "Could not load your day."
		}
		return mutedStyle.Render("Loading your day...")
	}

	ov := m.overview
	lines := []string{
		titleStyle.Render("Today " + ov.Today),
		"",
		activity("Eco action", ov.Record.EcoDone, ov.EcoStreak),
		activity("Challenge", ov.Record.ChallengeDone, ov.ChallengeStreak),
	}
	if ov.Record.ChallengeNote != nil {
		lines = append(lines, mutedStyle.Render("  "+*ov.Record.ChallengeNote))
	}
	lines = append(lines,
		"",
		calendar.Week(ov.Week),
		"",
		summary(ov.WeekSummary),
		"",
		cardStyle.Render(titleStyle.Render("Tip: "+ov.Tip.Title)+"\n"+ov.Tip.Body),
	)

	if len(m.facts) > 0 {
		var b strings.Builder
		b.WriteString(titleStyle.Render("Recycling facts"))
		for _, f := range m.facts {
			b.WriteString("\n• " + f.Text)
		}
		lines = append(lines, cardStyle.Render(b.String()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewCalendar() string {
	if !m.calendarLoaded {
		return mutedStyle.Render("Loading calendar...")
	}
	return strings.Join([]string{
		titleStyle.Render(fmt.Sprintf("Last %d days", len(m.calendar))),
		"",
		calendar.Grid(m.calendar),
		"",
		calendar.Legend(),
		"",
		summary(m.calendarSummary),
		mutedStyle.Render(fmt.Sprintf("Best eco run: %d   Best challenge run: %d",
			stats.LongestRun(m.calendar, constants.FlagEco),
			stats.LongestRun(m.calendar, constants.FlagChallenge))),
	}, "\n")
}

func summary(sum stats.Summary) string {
	return fmt.Sprintf("Eco        %s  %d/%d\nChallenge  %s  %d/%d",
		calendar.Bar(sum.EcoRatio, barWidth), sum.EcoCount, sum.Days,
		calendar.Bar(sum.ChallengeRatio, barWidth), sum.ChallengeCount, sum.Days)
}
