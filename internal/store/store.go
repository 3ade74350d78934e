// Package store owns the tracker document: the in-memory model of
// all recorded task entries and its JSON persistence. The document
// has no long-lived owner; callers load it, mutate it, and save it
// back within a single operation so external edits between calls are
// always picked up.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorrupt marks a data file that exists but does not parse as
// valid JSON. It is recoverable: the user can repair the file
// externally and the next Load succeeds.
var ErrCorrupt = errors.New("data file is not valid JSON")

// Store reads and writes the tracker document at a fixed path.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the whole document from disk. A missing file is not an
// error: an empty document is created, written, and returned. A file
// that fails to parse returns an error wrapping ErrCorrupt.
func (s *Store) Load() (*Data, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		data := NewData()
		if err := s.Save(data); err != nil {
			return nil, err
		}
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	data, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", s.path, ErrCorrupt, err)
	}
	return data, nil
}

// Save serializes the full document pretty-printed and rewrites the
// file in place. Write failures propagate to the caller.
func (s *Store) Save(data *Data) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// document defers entry decoding until the schema version is known.
type document struct {
	Version Version                    `json:"version"`
	Days    map[Date][]json.RawMessage `json:"entriesByDate"`
}

// legacyEntry is the v1 entry shape: one flat interval per row, with
// duplicate names allowed within a day.
type legacyEntry struct {
	Name  string     `json:"name"`
	Start Timestamp  `json:"start"`
	End   *Timestamp `json:"end"`
}

func decode(raw []byte) (*Data, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	data := NewData()
	switch doc.Version {
	case VersionV2:
		for date, rows := range doc.Days {
			entries := make([]*Entry, 0, len(rows))
			for _, row := range rows {
				entry := &Entry{}
				if err := json.Unmarshal(row, entry); err != nil {
					return nil, err
				}
				entries = append(entries, entry)
			}
			data.Days[date] = entries
		}
	default:
		// Unknown or missing tags are read as the oldest schema.
		for date, rows := range doc.Days {
			entries, err := migrateLegacyDay(rows)
			if err != nil {
				return nil, err
			}
			data.Days[date] = entries
		}
	}
	return data, nil
}

// migrateLegacyDay groups v1 rows sharing a name into one v2 entry
// with a sub-entry per original row, preserving first-seen order.
func migrateLegacyDay(rows []json.RawMessage) ([]*Entry, error) {
	var entries []*Entry
	byName := map[string]*Entry{}
	for _, row := range rows {
		var legacy legacyEntry
		if err := json.Unmarshal(row, &legacy); err != nil {
			return nil, err
		}
		sub := &SubEntry{Start: legacy.Start, End: legacy.End}
		if entry, ok := byName[legacy.Name]; ok {
			entry.SubEntries = append(entry.SubEntries, sub)
			continue
		}
		entry := &Entry{Name: legacy.Name, SubEntries: []*SubEntry{sub}}
		byName[legacy.Name] = entry
		entries = append(entries, entry)
	}
	return entries, nil
}

// DefaultDataPath returns ~/.config/tally/data.json
func DefaultDataPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "tally", "data.json"), nil
}
