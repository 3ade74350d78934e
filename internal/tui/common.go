package tui

import (
	"time"

	"github.com/bkemper/tally/internal/query"
)

// viewState represents the currently active view.
type viewState int

const (
	viewLauncher viewState = iota
	viewReports
	viewSettings
)

var viewNames = []string{"Launcher", "Reports", "Settings"}

// --- Messages ---

type actionsMsg struct {
	actions []query.Action
	running []string
	broken  bool
	newly   bool
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type reportsDataMsg struct {
	totals []query.DailyTotal
}

type tickMsg time.Time
