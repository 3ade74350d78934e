// Package query is the launcher-style command layer: it turns a
// free-text query into the actions the front ends offer, and runs
// every action as an explicit load → mutate → save pipeline so the
// data file is re-read on each call and external edits are always
// reflected.
package query

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bkemper/tally/internal/config"
	"github.com/bkemper/tally/internal/export"
	"github.com/bkemper/tally/internal/store"
)

// Kind identifies what an offered action does.
type Kind int

const (
	KindStop Kind = iota
	KindStart
	KindSummary
	KindOpenData
	KindRepair
)

// Action is one selectable result for the current query text.
type Action struct {
	Kind        Kind
	Title       string
	Description string
	// TaskName carries the name a KindStart action would record.
	TaskName string
}

// Service serves launcher queries against the data file. It keeps no
// tracker state between calls beyond the corrupt-file streak flag.
type Service struct {
	store *store.Store
	cfg   config.Config

	broken       bool
	brokenBefore bool
}

func NewService(st *store.Store, cfg config.Config) *Service {
	return &Service{store: st, cfg: cfg}
}

func (s *Service) Config() config.Config { return s.cfg }

// SetConfig swaps the settings surface, e.g. after the settings form
// was saved.
func (s *Service) SetConfig(cfg config.Config) { s.cfg = cfg }

// DataPath returns the location of the tracker document.
func (s *Service) DataPath() string { return s.store.Path() }

// Broken reports whether the last load hit a corrupt data file.
func (s *Service) Broken() bool { return s.broken }

// NewlyBroken reports a corrupt data file exactly once per failure
// streak, so the front end prompts for repair once rather than on
// every query cycle.
func (s *Service) NewlyBroken() bool { return s.broken && !s.brokenBefore }

func (s *Service) load() (*store.Data, error) {
	data, err := s.store.Load()
	s.brokenBefore = s.broken
	s.broken = err != nil && errors.Is(err, store.ErrCorrupt)
	return data, err
}

// Actions lists the operations matching the query text, in the order
// they should be offered. While the data file is corrupt all
// task-mutation actions are suppressed; only the repair hint and,
// when enabled, opening the file remain.
func (s *Service) Actions(queryString string) []Action {
	queryString = strings.TrimSpace(queryString)

	data, err := s.load()
	if err != nil {
		if !errors.Is(err, store.ErrCorrupt) {
			return nil
		}
		actions := []Action{{
			Kind:        KindRepair,
			Title:       "Tracker Data Needs Repair",
			Description: "The JSON holding your tracked times is broken. Fix " + s.store.Path() + " and try again.",
		}}
		if s.cfg.AllowDataFileEditing {
			actions = append(actions, s.openDataAction())
		}
		return actions
	}

	var actions []Action
	if queryString == "" && data.IsTaskRunning() {
		actions = append(actions, Action{
			Kind:        KindStop,
			Title:       "Stop Currently Running Task",
			Description: "Stops the currently running task(s) " + data.QuotedRunningTaskNames() + ".",
		})
	}
	if queryString != "" {
		name := s.cfg.ResolveAlias(queryString)
		desc := "Starts a new task named '" + name + "'."
		if data.IsTaskRunning() {
			desc = "Stops the currently running task(s) " + data.QuotedRunningTaskNames() +
				" and starts a new one named '" + name + "'."
		}
		actions = append(actions, Action{
			Kind:        KindStart,
			Title:       "Start New Task",
			Description: desc,
			TaskName:    name,
		})
	}
	if queryString == "" && len(data.Days) > 0 {
		actions = append(actions, Action{
			Kind:        KindSummary,
			Title:       "Show Time Tracker Summary",
			Description: "Creates a " + s.cfg.ExportFormat + " summary of your tracked times.",
		})
	}
	if queryString == "" && s.cfg.AllowDataFileEditing {
		actions = append(actions, s.openDataAction())
	}
	return actions
}

func (s *Service) openDataAction() Action {
	return Action{
		Kind:        KindOpenData,
		Title:       "Open Saved Tracker Entries",
		Description: "Opens the JSON-file in which the tracked times are saved.",
	}
}

// StartResult reports what a start action did, for notification text.
type StartResult struct {
	Started string
	Stopped []store.StoppedTask
}

// Start stops everything currently running, then records a new
// interval for name (alias-resolved) on today's entry.
func (s *Service) Start(name string, now time.Time) (StartResult, error) {
	data, err := s.load()
	if err != nil {
		return StartResult{}, err
	}

	stopped := data.StopAllRunning(now)
	canonical := s.cfg.ResolveAlias(strings.TrimSpace(name))
	data.AddEntry(canonical, now)

	if err := s.store.Save(data); err != nil {
		return StartResult{}, err
	}
	return StartResult{Started: canonical, Stopped: stopped}, nil
}

// Stop closes every running interval. When nothing is running the
// file is left untouched.
func (s *Service) Stop(now time.Time) ([]store.StoppedTask, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}

	stopped := data.StopAllRunning(now)
	if len(stopped) == 0 {
		return nil, nil
	}
	if err := s.store.Save(data); err != nil {
		return nil, err
	}
	return stopped, nil
}

// RunningTaskNames re-reads the file and lists open tasks.
func (s *Service) RunningTaskNames() ([]string, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	return data.RunningTaskNames(), nil
}

// Export renders the summary in the given format ("" means the
// configured one) and returns the written file's path.
func (s *Service) Export(format string) (string, error) {
	data, err := s.load()
	if err != nil {
		return "", err
	}

	if format == "" {
		format = s.cfg.ExportFormat
	}
	outDir, err := s.cfg.ResolveOutputDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	opts := export.Options{
		ShowRunning:  s.cfg.ShowRunningDurations,
		LinkRules:    export.ParseLinkRules(s.cfg.TaskLinks),
		CustomHeader: s.cfg.CustomHTMLHeader,
		CustomFooter: s.cfg.CustomHTMLFooter,
		Theme:        s.cfg.Theme,
		TemplateDir:  s.cfg.TemplateDir,
	}

	switch format {
	case config.FormatCSV:
		path := filepath.Join(outDir, "summary.csv")
		return path, export.ToCSV(data, opts, path)
	case config.FormatMarkdown:
		path := filepath.Join(outDir, "summary.md")
		return path, export.ToMarkdown(data, opts, path)
	case config.FormatHTML:
		path := filepath.Join(outDir, "summary.html")
		return path, export.ToHTML(data, opts, path)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

// Notification composes the status text for stopped and started
// tasks.
func Notification(stopped []store.StoppedTask, started string) string {
	var parts []string
	switch {
	case len(stopped) == 1:
		parts = append(parts, "Stopped task '"+stopped[0].Name+"' after "+
			export.FormatDuration(stopped[0].Duration)+".")
	case len(stopped) > 1:
		names := make([]string, len(stopped))
		for i, t := range stopped {
			names[i] = "'" + t.Name + "'"
		}
		parts = append(parts, "Stopped tasks "+strings.Join(names, ", ")+".")
	}
	if started != "" {
		parts = append(parts, "Started task named '"+started+"'.")
	}
	return strings.Join(parts, " ")
}
