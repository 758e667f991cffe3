package tui

import "github.com/neuroscanhq/neuroscan/internal/history"

// activeView identifies which view is currently displayed.
type activeView int

const (
	viewBrowse activeView = iota
	viewDetail
)

// historyTab selects which log the browse view lists.
type historyTab int

const (
	tabBulk historyTab = iota
	tabSingle
)

// navigateMsg requests a view switch.
type navigateMsg struct {
	view  activeView
	tab   historyTab // which log the detail row came from
	index int        // row index within that log
}

// historyDataMsg carries both logs after a (re)load.
type historyDataMsg struct {
	single []history.SinglePredictionRecord
	bulk   []history.BulkAggregateRecord
	err    error
}

// deleteResultMsg carries the outcome of deleting a bulk record.
type deleteResultMsg struct {
	bulk []history.BulkAggregateRecord
	err  error
}
