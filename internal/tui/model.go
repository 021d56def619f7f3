package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/models"
	"github.com/ecolife/ecolife-cli/internal/stats"
	"github.com/ecolife/ecolife-cli/internal/tracker"
)

// Service is the part of the tracker the dashboard drives.
type Service interface {
	Overview(ctx context.Context) (tracker.Overview, error)
	Window(ctx context.Context, length int) ([]stats.Slot, stats.Summary, error)
	Mark(ctx context.Context, req tracker.MarkRequest) (tracker.MarkResult, error)
	Delete(ctx context.Context, day string) error
	NextFacts(ctx context.Context) []models.Fact
}

type Model struct {
	svc      Service
	state    constants.SessionState
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	width    int
	height   int
	quitting bool

	// Requests in flight; the spinner shows while > 0.
	pending int

	overview tracker.Overview
	loaded   bool
	err      error
	status   string

	calendar        []stats.Slot
	calendarSummary stats.Summary
	calendarLoaded  bool

	facts []models.Fact

	form          *huh.Form
	confirmDelete *bool
	deleteDay     string
}

func NewModel(svc Service) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = warningStyle
	return Model{
		svc:     svc,
		state:   constants.StateDashboard,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: s,
		// Init starts the first load.
		pending: 1,
	}
}

// Messages carrying results back from commands.
type (
	overviewMsg struct {
		overview tracker.Overview
		err      error
	}
	calendarMsg struct {
		slots   []stats.Slot
		summary stats.Summary
		err     error
	}
	markedMsg struct {
		kind constants.ProofKind
		res  tracker.MarkResult
		err  error
	}
	deletedMsg struct {
		day string
		err error
	}
	factsMsg []models.Fact
)

// Init loads the dashboard once on start.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadOverview(m.svc))
}

func loadOverview(svc Service) tea.Cmd {
	return func() tea.Msg {
		ov, err := svc.Overview(context.Background())
		return overviewMsg{overview: ov, err: err}
	}
}

func loadCalendar(svc Service) tea.Cmd {
	return func() tea.Msg {
		slots, sum, err := svc.Window(context.Background(), constants.CalendarWindow)
		return calendarMsg{slots: slots, summary: sum, err: err}
	}
}

func markActivity(svc Service, req tracker.MarkRequest) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.Mark(context.Background(), req)
		return markedMsg{kind: req.Kind, res: res, err: err}
	}
}

func deleteDay(svc Service, day string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{day: day, err: svc.Delete(context.Background(), day)}
	}
}

func nextFacts(svc Service) tea.Cmd {
	return func() tea.Msg {
		return factsMsg(svc.NextFacts(context.Background()))
	}
}

func newConfirmForm(title string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
