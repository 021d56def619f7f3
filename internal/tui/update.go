package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/logger"
	"github.com/ecolife/ecolife-cli/internal/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case overviewMsg:
		m.pending--
		if msg.err != nil {
			logger.Warn("Dashboard load failed", "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.overview = msg.overview
		m.loaded = true
		m.err = nil
		return m, nil

	case calendarMsg:
		m.pending--
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.calendar = msg.slots
		m.calendarSummary = msg.summary
		m.calendarLoaded = true
		return m, nil

	case markedMsg:
		m.pending--
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		verb := "cleared"
		if msg.res.Record.Has(flagFor(msg.kind)) {
			verb = "marked"
		}
		m.status = fmt.Sprintf("%s %s for %s", labelFor(msg.kind), verb, msg.res.Record.Day)
		return m, m.reload()

	case deletedMsg:
		m.pending--
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "Deleted record for " + msg.day
		return m, m.reload()

	case factsMsg:
		m.facts = msg
		return m, nil
	}

	if m.state == constants.StateConfirmDelete {
		return m.updateConfirm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

// reload refreshes the dashboard and drops the cached calendar, fetching
// it again when it is on screen.
func (m *Model) reload() tea.Cmd {
	m.calendarLoaded = false
	m.pending++
	cmds := []tea.Cmd{loadOverview(m.svc)}
	if m.state == constants.StateCalendar {
		m.pending++
		cmds = append(cmds, loadCalendar(m.svc))
	}
	return tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.state == constants.StateCalendar {
			m.state = constants.StateDashboard
			return m, nil
		}
		m.state = constants.StateCalendar
		if !m.calendarLoaded {
			m.pending++
			return m, loadCalendar(m.svc)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.err = nil
		m.status = ""
		return m, m.reload()

	case key.Matches(msg, m.keys.Facts):
		return m, nextFacts(m.svc)
	}

	// The rest act on today's record and need it loaded.
	if !m.loaded {
		return m, nil
	}
	rec := m.overview.Record

	switch {
	case key.Matches(msg, m.keys.Eco):
		m.pending++
		return m, markActivity(m.svc, tracker.MarkRequest{
			Day:  m.overview.Today,
			Kind: constants.ProofEco,
			Done: !rec.EcoDone,
		})

	case key.Matches(msg, m.keys.Challenge):
		m.pending++
		return m, markActivity(m.svc, tracker.MarkRequest{
			Day:  m.overview.Today,
			Kind: constants.ProofChallenge,
			Done: !rec.ChallengeDone,
		})

	case key.Matches(msg, m.keys.Delete):
		if rec.UpdatedAt.IsZero() {
			m.status = "Nothing recorded today"
			return m, nil
		}
		m.deleteDay = m.overview.Today
		m.confirmDelete = new(bool)
		m.form = newConfirmForm(fmt.Sprintf("Delete the record for %s?", m.deleteDay), m.confirmDelete)
		m.state = constants.StateConfirmDelete
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return m.leaveConfirm("Delete cancelled"), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if *m.confirmDelete {
			day := m.deleteDay
			m = m.leaveConfirm("")
			m.pending++
			return m, deleteDay(m.svc, day)
		}
		return m.leaveConfirm("Delete cancelled"), nil
	case huh.StateAborted:
		return m.leaveConfirm("Delete cancelled"), nil
	}
	return m, cmd
}

func (m Model) leaveConfirm(status string) Model {
	m.form = nil
	m.confirmDelete = nil
	m.deleteDay = ""
	m.state = constants.StateDashboard
	m.status = status
	return m
}

func flagFor(kind constants.ProofKind) constants.Flag {
	if kind == constants.ProofChallenge {
		return constants.FlagChallenge
	}
	return constants.FlagEco
}

func labelFor(kind constants.ProofKind) string {
	if kind == constants.ProofChallenge {
		return "Challenge"
	}
	return "Eco action"
}
