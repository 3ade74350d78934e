package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bkemper/tally/internal/query"
)

// launcherModel is the search-bar style view: free text either starts
// a task, stops the running ones, or opens a summary.
type launcherModel struct {
	svc    *query.Service
	width  int
	height int

	input   textinput.Model
	actions []query.Action
	cursor  int
	running []string
	broken  bool
}

func newLauncherModel(svc *query.Service) launcherModel {
	ti := textinput.New()
	ti.Placeholder = "task name… (empty: stop / summary)"
	ti.Prompt = "> "
	ti.Focus()

	return launcherModel{svc: svc, input: ti}
}

func (l launcherModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, l.refresh())
}

func (l *launcherModel) setSize(w, h int) {
	l.width = w
	l.height = h
	l.input.Width = w - 8
}

// refresh recomputes the offered actions for the current query text.
// The data file is re-read on every call so external edits show up
// immediately.
func (l launcherModel) refresh() tea.Cmd {
	queryString := l.input.Value()
	return func() tea.Msg {
		actions := l.svc.Actions(queryString)
		// Broken and NewlyBroken describe the load Actions just did;
		// read them before RunningTaskNames loads again and advances
		// the failure streak.
		broken := l.svc.Broken()
		newly := l.svc.NewlyBroken()
		running, _ := l.svc.RunningTaskNames()
		return actionsMsg{
			actions: actions,
			running: running,
			broken:  broken,
			newly:   newly,
		}
	}
}

func (l launcherModel) update(msg tea.Msg) (launcherModel, tea.Cmd) {
	switch msg := msg.(type) {
	case actionsMsg:
		l.actions = msg.actions
		l.running = msg.running
		l.broken = msg.broken
		if l.cursor >= len(l.actions) {
			l.cursor = 0
		}
		if msg.newly {
			return l, func() tea.Msg {
				return statusMsg{text: "Data file is broken, repair it externally", isError: true}
			}
		}
		return l, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
			return l, nil
		case key.Matches(msg, keys.Down):
			if l.cursor < len(l.actions)-1 {
				l.cursor++
			}
			return l, nil
		case key.Matches(msg, keys.Enter):
			return l.execute()
		case key.Matches(msg, keys.Back):
			l.input.SetValue("")
			l.cursor = 0
			return l, l.refresh()
		}
	}

	var cmd tea.Cmd
	before := l.input.Value()
	l.input, cmd = l.input.Update(msg)
	if l.input.Value() != before {
		return l, tea.Batch(cmd, l.refresh())
	}
	return l, cmd
}

func (l launcherModel) execute() (launcherModel, tea.Cmd) {
	if l.cursor >= len(l.actions) {
		return l, nil
	}
	action := l.actions[l.cursor]
	l.input.SetValue("")
	l.cursor = 0
	return l, tea.Sequence(l.perform(action), l.refresh())
}

func (l launcherModel) perform(action query.Action) tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		notify := func(text string) tea.Msg {
			if !l.svc.Config().ShowNotifications {
				return nil
			}
			return statusMsg{text: text}
		}

		switch action.Kind {
		case query.KindStop:
			stopped, err := l.svc.Stop(now)
			if err != nil {
				return statusMsg{text: err.Error(), isError: true}
			}
			return notify(query.Notification(stopped, ""))
		case query.KindStart:
			result, err := l.svc.Start(action.TaskName, now)
			if err != nil {
				return statusMsg{text: err.Error(), isError: true}
			}
			return notify(query.Notification(result.Stopped, result.Started))
		case query.KindSummary:
			path, err := l.svc.Export("")
			if err != nil {
				return statusMsg{text: err.Error(), isError: true}
			}
			return exportDoneMsg{path: path}
		case query.KindOpenData, query.KindRepair:
			return statusMsg{text: "Data file: " + l.svc.DataPath()}
		}
		return nil
	}
}

func (l launcherModel) view() string {
	w := l.width - 4

	rows := []string{
		titleStyle.Render("What are you working on?"),
		"",
		l.input.View(),
		"",
	}

	if l.broken {
		rows = append(rows, errorStyle.Render("  Data file is broken — mutations disabled until repaired."))
		rows = append(rows, "")
	}

	if len(l.actions) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing to do yet — type a task name to start tracking."))
	}
	for i, action := range l.actions {
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+action.Title))
		if action.Description != "" {
			rows = append(rows, mutedStyle.Render("    "+action.Description))
		}
	}

	if len(l.running) > 0 {
		rows = append(rows, "")
		rows = append(rows, successStyle.Render(fmt.Sprintf("  ● running: %s", quoteJoin(l.running))))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func quoteJoin(names []string) string {
	out := ""
	for i, name := range names {
		if i > 0 {
			out += ", "
		}
		out += "'" + name + "'"
	}
	return out
}
