// Package export renders the tracker document into the summary
// report files. The three formats walk the same aggregated rows and
// produce deterministic output for identical input; running-interval
// durations are anchored to a single instant captured when the export
// starts.
package export

import (
	"fmt"
	"os"
	"time"

	"github.com/bkemper/tally/internal/store"
)

// Options carries the settings surface the renderers consume.
type Options struct {
	// ShowRunning includes current durations for still-open
	// intervals, marked as approximate.
	ShowRunning bool
	// LinkRules hyperlink matching task names in Markdown and HTML.
	LinkRules []LinkRule
	// CustomHeader and CustomFooter are raw HTML snippets placed
	// around the HTML summary body.
	CustomHeader string
	CustomFooter string
	// Theme selects light or dark HTML styling.
	Theme string
	// TemplateDir overrides the embedded HTML templates when set.
	TemplateDir string
}

const (
	clockLayout   = "15:04"
	headingLayout = "Monday, 2. January 2006"
	csvDateLayout = "02.01.2006"
)

// ToMarkdown writes the Markdown summary to path.
func ToMarkdown(data *store.Data, opts Options, path string) error {
	return toFile(path, func(f *os.File) error {
		return writeMarkdown(f, data, opts, time.Now())
	})
}

// ToCSV writes the CSV summary to path.
func ToCSV(data *store.Data, opts Options, path string) error {
	return toFile(path, func(f *os.File) error {
		return writeCSV(f, data, opts, time.Now())
	})
}

// ToHTML writes the HTML summary to path.
func ToHTML(data *store.Data, opts Options, path string) error {
	return toFile(path, func(f *os.File) error {
		return writeHTML(f, data, opts, time.Now())
	})
}

func toFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// clock renders an optional timestamp as HH:mm, or empty when absent.
func clock(ts *store.Timestamp) string {
	if ts == nil {
		return ""
	}
	return ts.Time().Format(clockLayout)
}

// approx marks a duration string for a row that is still accruing.
func approx(running, showRunning bool) string {
	if running && showRunning {
		return "~"
	}
	return ""
}
