package tui

import (
	"time"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/neuroscanhq/neuroscan/internal/history"
)

// Config holds the parameters needed to launch the history browser.
type Config struct {
	History *history.Service
	Server  string // endpoint base URL, shown in the status bar
}

// Model is the root TUI model that routes between views.
type Model struct {
	cfg      Config
	active   activeView
	browse   browseModel
	detail   detailModel
	bar      statusBar
	width    int
	height   int
	quitting bool
}

// New creates a new root TUI model.
func New(cfg Config) Model {
	return Model{
		cfg:    cfg,
		active: viewBrowse,
		browse: newBrowseModel(),
		detail: newDetailModel(),
		bar:    newStatusBar(cfg.Server),
	}
}

// Init starts the initial history load.
func (m Model) Init() bubbletea.Cmd {
	return fetchHistory(m.cfg)
}

// Update processes messages.
func (m Model) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, bubbletea.Quit
		}

	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.width = msg.Width
		m.browse.setSize(msg.Width, msg.Height-1) // -1 for statusbar
		m.detail.setSize(msg.Width, msg.Height-1)

	case navigateMsg:
		m.active = msg.view
		if msg.view == viewDetail {
			if msg.tab == tabBulk && msg.index < len(m.browse.bulk) {
				m.detail.showBulk(m.browse.bulk[msg.index])
			} else if msg.tab == tabSingle && msg.index < len(m.browse.single) {
				m.detail.showSingle(m.browse.single[msg.index])
			}
		}
		return m, nil

	case historyDataMsg:
		m.browse.setData(msg)
		return m, nil

	case deleteResultMsg:
		if msg.err != nil {
			m.browse.err = msg.err
			return m, nil
		}
		m.browse.setData(historyDataMsg{single: m.browse.single, bulk: msg.bulk})
		return m, nil
	}

	switch m.active {
	case viewBrowse:
		var cmd bubbletea.Cmd
		m.browse, cmd = m.browse.update(msg, m.cfg)
		return m, cmd
	case viewDetail:
		var cmd bubbletea.Cmd
		m.detail, cmd = m.detail.update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the active view plus the status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var body, hints string
	switch m.active {
	case viewDetail:
		body = m.detail.view()
		hints = "esc back · q quit"
	default:
		body = m.browse.view()
		hints = "tab switch · enter open · D delete · r refresh · q quit"
	}
	return body + "\n" + m.bar.render(hints)
}

// fetchHistory loads both logs from the store.
func fetchHistory(cfg Config) bubbletea.Cmd {
	return func() bubbletea.Msg {
		single, err := cfg.History.LoadSingle()
		if err != nil {
			return historyDataMsg{err: err}
		}
		bulk, err := cfg.History.LoadBulk()
		if err != nil {
			return historyDataMsg{err: err}
		}
		return historyDataMsg{single: single, bulk: bulk}
	}
}

// deleteBulk removes one bulk record by its timestamp identity.
func deleteBulk(cfg Config, createdAt time.Time) bubbletea.Cmd {
	return func() bubbletea.Msg {
		bulk, err := cfg.History.DeleteBulk(createdAt)
		return deleteResultMsg{bulk: bulk, err: err}
	}
}
