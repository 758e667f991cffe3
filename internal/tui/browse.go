// Package tui provides an interactive terminal browser for the
// prediction history logs.
package tui

import (
	"fmt"
	"strings"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/neuroscanhq/neuroscan/internal/classifier"
	"github.com/neuroscanhq/neuroscan/internal/history"
)

type browseModel struct {
	tab        historyTab
	single     []history.SinglePredictionRecord
	bulk       []history.BulkAggregateRecord
	cursor     int
	confirming bool // pending bulk-record delete
	width      int
	height     int
	loading    bool
	err        error
}

func newBrowseModel() browseModel {
	return browseModel{loading: true}
}

func (m *browseModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *browseModel) setData(msg historyDataMsg) {
	m.loading = false
	m.err = msg.err
	m.single = msg.single
	m.bulk = msg.bulk
	if m.cursor >= m.rowCount() {
		m.cursor = max(0, m.rowCount()-1)
	}
}

func (m browseModel) rowCount() int {
	if m.tab == tabBulk {
		return len(m.bulk)
	}
	return len(m.single)
}

func (m browseModel) update(msg bubbletea.Msg, cfg Config) (browseModel, bubbletea.Cmd) {
	if m.confirming {
		return m.updateConfirm(msg, cfg)
	}

	if msg, ok := msg.(bubbletea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return m, bubbletea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}

		case key.Matches(msg, keys.Tab):
			if m.tab == tabBulk {
				m.tab = tabSingle
			} else {
				m.tab = tabBulk
			}
			m.cursor = 0

		case key.Matches(msg, keys.Enter):
			if m.cursor < m.rowCount() {
				tab, index := m.tab, m.cursor
				return m, func() bubbletea.Msg {
					return navigateMsg{view: viewDetail, tab: tab, index: index}
				}
			}

		case key.Matches(msg, keys.Refresh):
			m.loading = true
			return m, fetchHistory(cfg)

		case key.Matches(msg, keys.Delete):
			if m.tab == tabBulk && m.cursor < len(m.bulk) {
				m.confirming = true
			}
		}
	}
	return m, nil
}

func (m browseModel) updateConfirm(msg bubbletea.Msg, cfg Config) (browseModel, bubbletea.Cmd) {
	if msg, ok := msg.(bubbletea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Confirm):
			m.confirming = false
			rec := m.bulk[m.cursor]
			return m, deleteBulk(cfg, rec.CreatedAt)
		case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Back):
			m.confirming = false
		}
	}
	return m, nil
}

func (m browseModel) view() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(styleDim.Render("  loading history..."))
	case m.err != nil:
		b.WriteString(fmt.Sprintf("  error: %v", m.err))
	case m.rowCount() == 0:
		b.WriteString(styleDim.Render("  no records yet"))
	case m.tab == tabBulk:
		m.renderBulkRows(&b)
	default:
		m.renderSingleRows(&b)
	}

	if m.confirming && m.cursor < len(m.bulk) {
		rec := m.bulk[m.cursor]
		b.WriteString("\n\n")
		b.WriteString(styleHot.Render(fmt.Sprintf("  Delete bulk run from %s? (y/n)",
			rec.CreatedAt.Format("2006-01-02 15:04"))))
	}

	return b.String()
}

func (m browseModel) renderTabs() string {
	bulkLabel := fmt.Sprintf("Bulk Runs (%d)", len(m.bulk))
	singleLabel := fmt.Sprintf("Predictions (%d)", len(m.single))
	if m.tab == tabBulk {
		return "  " + styleHot.Render(bulkLabel) + "   " + styleDim.Render(singleLabel)
	}
	return "  " + styleDim.Render(bulkLabel) + "   " + styleHot.Render(singleLabel)
}

func (m browseModel) renderBulkRows(b *strings.Builder) {
	for i, rec := range m.bulk {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s  %-16s  %3d classified  %2d failed",
			marker,
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.ModelName,
			rec.Total(),
			rec.Failures,
		)
		if i == m.cursor {
			line = styleHot.Render(line)
		}
		b.WriteString(line + "\n")
	}
}

func (m browseModel) renderSingleRows(b *strings.Builder) {
	for i, rec := range m.single {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		note := ""
		if rec.Note != "" {
			note = "  " + styleDim.Render(rec.Note)
		}
		line := fmt.Sprintf("%s%s  %-10s  %5.1f%%  %s%s",
			marker,
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Label.DisplayName(),
			maxProb(rec.Probabilities)*100,
			rec.ImageRef,
			note,
		)
		if i == m.cursor {
			line = styleHot.Render(line)
		}
		b.WriteString(line + "\n")
	}
}

func maxProb(probs [classifier.NumClasses]float64) float64 {
	maxP := probs[0]
	for _, p := range probs[1:] {
		if p > maxP {
			maxP = p
		}
	}
	return maxP
}
