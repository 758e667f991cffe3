package tui

import (
	"strings"
	"testing"
	"time"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/neuroscanhq/neuroscan/internal/classifier"
	"github.com/neuroscanhq/neuroscan/internal/history"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	svc := history.NewService(history.NewFileStore(t.TempDir()))
	return Config{History: svc, Server: "http://localhost:8000"}
}

func seedBulk(t *testing.T, cfg Config, at time.Time) {
	t.Helper()
	rec := history.BulkAggregateRecord{
		Counts:         [classifier.NumClasses]int{2, 0, 0, 0},
		MeanConfidence: [classifier.NumClasses]float64{80, 0, 0, 0},
		Failures:       1,
		ModelName:      "resnet50-v2",
		Resolution:     224,
		CreatedAt:      at,
	}
	if _, err := cfg.History.CommitBulk(rec); err != nil {
		t.Fatalf("CommitBulk() error: %v", err)
	}
}

func seedSingle(t *testing.T, cfg Config) {
	t.Helper()
	rec := history.SinglePredictionRecord{
		Label:         classifier.ClassPituitary,
		Probabilities: [classifier.NumClasses]float64{0.01, 0.02, 0.07, 0.9},
		ImageRef:      "scan-042.jpg",
		ModelName:     "resnet50-v2",
		CreatedAt:     time.Now(),
	}
	if _, err := cfg.History.RecordSingle(rec); err != nil {
		t.Fatalf("RecordSingle() error: %v", err)
	}
}

// load runs Init's command and feeds the result through Update.
func load(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.Init()()
	data, ok := msg.(historyDataMsg)
	if !ok {
		t.Fatalf("Init() produced %T, want historyDataMsg", msg)
	}
	if data.err != nil {
		t.Fatalf("history load error: %v", data.err)
	}
	next, _ := m.Update(data)
	return next.(Model)
}

func keyMsg(s string) bubbletea.KeyMsg {
	if s == "enter" {
		return bubbletea.KeyMsg{Type: bubbletea.KeyEnter}
	}
	if s == "tab" {
		return bubbletea.KeyMsg{Type: bubbletea.KeyTab}
	}
	return bubbletea.KeyMsg{Type: bubbletea.KeyRunes, Runes: []rune(s)}
}

func TestBrowse_EmptyLogs(t *testing.T) {
	t.Parallel()
	m := load(t, New(testConfig(t)))
	view := m.View()
	if !strings.Contains(view, "no records yet") {
		t.Errorf("empty view = %q, want 'no records yet'", view)
	}
}

func TestBrowse_ListsBulkRuns(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	seedBulk(t, cfg, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC))
	m := load(t, New(cfg))

	view := m.View()
	if !strings.Contains(view, "2026-08-20 10:00") {
		t.Errorf("view missing bulk run timestamp:\n%s", view)
	}
	if !strings.Contains(view, "2 classified") {
		t.Errorf("view missing classified count:\n%s", view)
	}
	if !strings.Contains(view, "1 failed") {
		t.Errorf("view missing failure count:\n%s", view)
	}
}

func TestBrowse_TabSwitchesToSingle(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	seedSingle(t, cfg)
	m := load(t, New(cfg))

	next, _ := m.Update(keyMsg("tab"))
	view := next.(Model).View()
	if !strings.Contains(view, "scan-042.jpg") {
		t.Errorf("single tab view missing record:\n%s", view)
	}
	if !strings.Contains(view, "Pituitary") {
		t.Errorf("single tab view missing label:\n%s", view)
	}
}

func TestBrowse_EnterOpensDetail(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	seedBulk(t, cfg, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC))
	m := load(t, New(cfg))
	sized, _ := m.Update(bubbletea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(Model)

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok {
		t.Fatalf("enter command produced %T, want navigateMsg", cmd())
	}
	opened, _ := m.Update(nav)
	view := opened.(Model).View()
	if !strings.Contains(view, "Bulk run") {
		t.Errorf("detail view missing header:\n%s", view)
	}
	if !strings.Contains(view, "Glioma") {
		t.Errorf("detail view missing per-class breakdown:\n%s", view)
	}
}

func TestBrowse_DeleteFlow(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	at := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	seedBulk(t, cfg, at)
	m := load(t, New(cfg))

	// D arms the confirmation, y executes the delete.
	armed, _ := m.Update(keyMsg("D"))
	m = armed.(Model)
	if !strings.Contains(m.View(), "Delete bulk run") {
		t.Fatalf("view missing delete confirmation:\n%s", m.View())
	}

	confirmed, cmd := m.Update(keyMsg("y"))
	m = confirmed.(Model)
	if cmd == nil {
		t.Fatal("confirm produced no command")
	}
	result, ok := cmd().(deleteResultMsg)
	if !ok {
		t.Fatalf("confirm command produced %T, want deleteResultMsg", cmd())
	}
	if result.err != nil {
		t.Fatalf("delete error: %v", result.err)
	}
	if len(result.bulk) != 0 {
		t.Errorf("bulk log has %d records after delete, want 0", len(result.bulk))
	}

	done, _ := m.Update(result)
	if !strings.Contains(done.(Model).View(), "no records yet") {
		t.Errorf("view after delete = %q, want empty state", done.(Model).View())
	}
}

func TestBrowse_DeleteCancelled(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	seedBulk(t, cfg, time.Now())
	m := load(t, New(cfg))

	armed, _ := m.Update(keyMsg("D"))
	cancelled, cmd := armed.(Model).Update(keyMsg("n"))
	if cmd != nil {
		t.Error("cancel produced a command, want none")
	}
	view := cancelled.(Model).View()
	if strings.Contains(view, "Delete bulk run") {
		t.Errorf("confirmation still shown after cancel:\n%s", view)
	}
}
