package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/services"
)

type uiState int

const (
	stateList uiState = iota
	stateCreating
)

// Model is the live dashboard. It reads countdowns from the timer engine and
// the away snapshot from the idle monitor; both are driven elsewhere.
type Model struct {
	engine          *services.TimerEngine
	err             error
	errorClearDelay time.Duration
	errSeq          int
	form            *TimeboxForm
	help            help.Model
	height          int
	idle            *services.IdleMonitor
	keys            KeyMap
	selected        int
	state           uiState
	tickInterval    time.Duration
	timeboxService  *services.TimeboxService
	timeboxes       []domain.Timebox
	width           int
}

// NewModel creates the dashboard model
func NewModel(
	timeboxService *services.TimeboxService,
	engine *services.TimerEngine,
	idle *services.IdleMonitor,
	tickInterval time.Duration,
	errorClearDelay time.Duration,
) *Model {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	return &Model{
		engine:          engine,
		errorClearDelay: errorClearDelay,
		help:            help.New(),
		idle:            idle,
		keys:            NewKeyMap(),
		state:           stateList,
		tickInterval:    tickInterval,
		timeboxService:  timeboxService,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadTimeboxes(), m.tick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.loadTimeboxes(), m.tick())
	case timeboxesLoadedMsg:
		if msg.err != nil {
			return m, m.setError(msg.err)
		}
		m.timeboxes = msg.timeboxes
		m.clampSelection()
		return m, nil
	case actionDoneMsg:
		if msg.err != nil {
			logging.Logger.Warn("Dashboard action failed", "action", msg.action, "id", msg.id, "error", msg.err)
			return m, tea.Batch(m.setError(msg.err), m.loadTimeboxes())
		}
		return m, m.loadTimeboxes()
	case clearErrorMsg:
		if msg.seq == m.errSeq {
			m.err = nil
		}
		return m, nil
	}

	if m.state == stateCreating {
		return m.updateCreating(msg)
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}
	return m, nil
}

func (m *Model) updateCreating(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.form.Update(msg)
	m.form = updated.(*TimeboxForm)
	if !m.form.Completed {
		return m, cmd
	}

	result := m.form.Result()
	m.form = nil
	m.state = stateList
	if result.Error != nil {
		return m, tea.Batch(m.setError(result.Error), m.loadTimeboxes())
	}
	return m, m.loadTimeboxes()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.timeboxes)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.New):
		m.form = NewTimeboxForm(m.timeboxService)
		m.state = stateCreating
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Dismiss):
		if m.idle != nil {
			m.idle.Dismiss()
		}
	case key.Matches(msg, m.keys.Start):
		return m, m.applyEvent(domain.EventStart)
	case key.Matches(msg, m.keys.Stop):
		return m, m.applyEvent(m.stopEvent())
	case key.Matches(msg, m.keys.Finish):
		return m, m.applyEvent(domain.EventFinish)
	case key.Matches(msg, m.keys.Cancel):
		return m, m.applyEvent(domain.EventCancel)
	case key.Matches(msg, m.keys.Pause):
		return m, m.applyEvent(domain.EventPause)
	case key.Matches(msg, m.keys.Archive):
		return m, m.archiveSelected()
	}
	return m, nil
}

// Selected returns the highlighted timebox, or nil for an empty list
func (m *Model) Selected() *domain.Timebox {
	if m.selected < 0 || m.selected >= len(m.timeboxes) {
		return nil
	}
	return &m.timeboxes[m.selected]
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.timeboxes) {
		m.selected = len(m.timeboxes) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) applyEvent(event domain.Event) tea.Cmd {
	tb := m.Selected()
	if tb == nil {
		return nil
	}
	id := tb.ID
	svc := m.timeboxService
	return func() tea.Msg {
		_, _, err := svc.ApplyAt(context.Background(), id, event, svc.Now())
		return actionDoneMsg{action: string(event), err: err, id: id}
	}
}

// stopEvent ends an overtime timebox as completed after time, otherwise as stopped
func (m *Model) stopEvent() domain.Event {
	tb := m.Selected()
	if tb != nil && tb.Status == domain.StatusInProgress && tb.Remaining(m.timeboxService.Now()) < 0 {
		return domain.EventStopAfterTime
	}
	return domain.EventStop
}

func (m *Model) archiveSelected() tea.Cmd {
	tb := m.Selected()
	if tb == nil {
		return nil
	}
	id := tb.ID
	svc := m.timeboxService
	return func() tea.Msg {
		_, err := svc.Archive(context.Background(), id)
		return actionDoneMsg{action: "archive", err: err, id: id}
	}
}

func (m *Model) loadTimeboxes() tea.Cmd {
	svc := m.timeboxService
	return func() tea.Msg {
		timeboxes, err := svc.ListToday(context.Background())
		return timeboxesLoadedMsg{err: err, timeboxes: timeboxes}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// setError shows err until errorClearDelay passes or a newer error arrives
func (m *Model) setError(err error) tea.Cmd {
	m.err = err
	m.errSeq++
	if m.errorClearDelay <= 0 {
		return nil
	}
	seq := m.errSeq
	return tea.Tick(m.errorClearDelay, func(time.Time) tea.Msg {
		return clearErrorMsg{seq: seq}
	})
}
