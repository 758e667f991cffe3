package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/neuroscanhq/neuroscan/internal/classifier"
	"github.com/neuroscanhq/neuroscan/internal/history"
)

type detailModel struct {
	vp    viewport.Model
	ready bool
}

func newDetailModel() detailModel {
	return detailModel{}
}

func (m *detailModel) setSize(w, h int) {
	if !m.ready {
		m.vp = viewport.New(w, h)
		m.ready = true
		return
	}
	m.vp.Width = w
	m.vp.Height = h
}

func (m *detailModel) showBulk(rec history.BulkAggregateRecord) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", styleHot.Render("Bulk run — "+rec.CreatedAt.Format("2006-01-02 15:04:05")))
	fmt.Fprintf(&b, "  Model:       %s\n", rec.ModelName)
	fmt.Fprintf(&b, "  Resolution:  %dx%d\n", rec.Resolution, rec.Resolution)
	fmt.Fprintf(&b, "  Grayscale:   %v\n", rec.Grayscale)
	fmt.Fprintf(&b, "  Classified:  %d\n", rec.Total())
	fmt.Fprintf(&b, "  Failed:      %d\n\n", rec.Failures)
	for i, class := range classifier.Classes() {
		fmt.Fprintf(&b, "  %-12s %4d images   mean confidence %6.2f%%\n",
			class.DisplayName(), rec.Counts[i], rec.MeanConfidence[i])
	}
	m.vp.SetContent(b.String())
	m.vp.GotoTop()
}

func (m *detailModel) showSingle(rec history.SinglePredictionRecord) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", styleHot.Render("Prediction — "+rec.CreatedAt.Format("2006-01-02 15:04:05")))
	fmt.Fprintf(&b, "  Image:       %s\n", rec.ImageRef)
	fmt.Fprintf(&b, "  Model:       %s\n", rec.ModelName)
	if rec.PreprocessFunc != "" {
		fmt.Fprintf(&b, "  Preprocess:  %s\n", rec.PreprocessFunc)
	}
	fmt.Fprintf(&b, "  Predicted:   %s\n\n", styleHot.Render(rec.Label.DisplayName()))
	for i, class := range classifier.Classes() {
		fmt.Fprintf(&b, "  %-12s %6.2f%%\n", class.DisplayName(), rec.Probabilities[i]*100)
	}
	if rec.Note != "" {
		fmt.Fprintf(&b, "\n  Note: %s\n", rec.Note)
	}
	m.vp.SetContent(b.String())
	m.vp.GotoTop()
}

func (m detailModel) update(msg bubbletea.Msg) (detailModel, bubbletea.Cmd) {
	if msg, ok := msg.(bubbletea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return m, bubbletea.Quit
		case key.Matches(msg, keys.Back):
			return m, func() bubbletea.Msg {
				return navigateMsg{view: viewBrowse}
			}
		}
	}
	var cmd bubbletea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m detailModel) view() string {
	if !m.ready {
		return ""
	}
	return m.vp.View()
}
