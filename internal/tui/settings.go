package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bkemper/tally/internal/config"
	"github.com/bkemper/tally/internal/query"
)

type settingsModel struct {
	svc     *query.Service
	cfgPath string
	width   int
	height  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	exportFormat *string
	showRunning  *bool
	showNotif    *bool
	allowEditing *bool
	theme        *string
	outputDir    *string
	taskLinks    *string
	taskAliases  *string
}

func newSettingsModel(svc *query.Service, cfgPath string) settingsModel {
	ef, th, od, tl, ta := "", "", "", "", ""
	sr, sn, ae := false, false, false
	return settingsModel{
		svc:          svc,
		cfgPath:      cfgPath,
		exportFormat: &ef,
		showRunning:  &sr,
		showNotif:    &sn,
		allowEditing: &ae,
		theme:        &th,
		outputDir:    &od,
		taskLinks:    &tl,
		taskAliases:  &ta,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cfg := s.svc.Config()
	*s.exportFormat = cfg.ExportFormat
	*s.showRunning = cfg.ShowRunningDurations
	*s.showNotif = cfg.ShowNotifications
	*s.allowEditing = cfg.AllowDataFileEditing
	*s.theme = cfg.Theme
	*s.outputDir = cfg.OutputDir
	*s.taskLinks = strings.Join(cfg.TaskLinks, "\n")
	*s.taskAliases = strings.Join(cfg.TaskAliases, "\n")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Summary export type").
				Options(
					huh.NewOption("CSV", config.FormatCSV),
					huh.NewOption("Markdown", config.FormatMarkdown),
					huh.NewOption("HTML", config.FormatHTML),
				).Value(s.exportFormat),
			huh.NewConfirm().Title("Show durations for running tasks").
				Value(s.showRunning),
			huh.NewConfirm().Title("Show notifications after start/stop").
				Value(s.showNotif),
			huh.NewConfirm().Title("Allow data-file editing").
				Value(s.allowEditing),
			huh.NewSelect[string]().Title("HTML theme").
				Options(
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).Value(s.theme),
			huh.NewInput().Title("Output directory").Value(s.outputDir),
		).Title("Summaries"),
		huh.NewGroup(
			huh.NewText().Title("Task links (pattern / URL line pairs)").
				Value(s.taskLinks),
			huh.NewText().Title("Task aliases (ALIAS|TASK-NAME)").
				Value(s.taskAliases),
		).Title("Task names"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.saveSettings()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	cfg := s.svc.Config()
	cfg.ExportFormat = *s.exportFormat
	cfg.ShowRunningDurations = *s.showRunning
	cfg.ShowNotifications = *s.showNotif
	cfg.AllowDataFileEditing = *s.allowEditing
	cfg.Theme = *s.theme
	cfg.OutputDir = strings.TrimSpace(*s.outputDir)
	cfg.TaskLinks = splitLines(*s.taskLinks)
	cfg.TaskAliases = splitLines(*s.taskAliases)

	return func() tea.Msg {
		if err := cfg.Save(s.cfgPath); err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		s.svc.SetConfig(cfg)
		return statusMsg{text: "Settings saved"}
	}
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", s.form.View()),
		)
	}

	cfg := s.svc.Config()
	rows := []string{
		titleStyle.Render("Settings"),
		"",
		settingRow("export_format", cfg.ExportFormat),
		settingRow("show_running_durations", fmt.Sprintf("%t", cfg.ShowRunningDurations)),
		settingRow("show_notifications", fmt.Sprintf("%t", cfg.ShowNotifications)),
		settingRow("allow_data_file_editing", fmt.Sprintf("%t", cfg.AllowDataFileEditing)),
		settingRow("theme", cfg.Theme),
		settingRow("output_dir", orDefault(cfg.OutputDir)),
		settingRow("task_links", fmt.Sprintf("%d line(s)", len(cfg.TaskLinks))),
		settingRow("task_aliases", fmt.Sprintf("%d line(s)", len(cfg.TaskAliases))),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(k, v string) string {
	label := lipgloss.NewStyle().Width(26).Render(k)
	return fmt.Sprintf("  %s %s", label, highlightStyle.Render(v))
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}
