// Package store persists canonical snapshots as human-readable JSON files
// under ~/.shiftwatch/snapshots/<name>/. Each run writes a dated file plus
// latest.json; the differ compares against whatever latest.json held before
// the run.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shiftwatch/internal/dateutil"
	"shiftwatch/internal/model"
)

// Snapshot names used as persistence keys.
const (
	NameSchedule = "schedule"
	NameTimecard = "timecard"
)

// Store reads and writes snapshots below a base directory.
type Store struct {
	base string
}

// New returns a Store rooted at base (normally ~/.shiftwatch).
func New(base string) *Store {
	return &Store{base: base}
}

func (s *Store) dir(name string) string {
	return filepath.Join(s.base, "snapshots", name)
}

func (s *Store) latestPath(name string) string {
	return filepath.Join(s.dir(name), "latest.json")
}

func (s *Store) datedPath(name string, ref time.Time) string {
	return filepath.Join(s.dir(name), ref.Format(dateutil.ISODate)+".json")
}

// save atomically writes v as indented JSON to both the dated file and
// latest.json.
func (s *Store) save(name string, ref time.Time, v any) error {
	if err := os.MkdirAll(s.dir(name), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	for _, path := range []string{s.datedPath(name, ref), s.latestPath(name)} {
		if err := writeAtomic(path, data); err != nil {
			return err
		}
	}
	return nil
}

// writeAtomic writes to a temp file then renames into place.
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// loadLatest reads latest.json into v. The first return is false when no
// snapshot has been persisted yet (first run). A corrupt file is backed up
// and reported as an error.
func (s *Store) loadLatest(name string, v any) (bool, error) {
	path := s.latestPath(name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return false, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return true, nil
}

// LoadSchedule returns the last persisted schedule snapshot, or nil on first
// run.
func (s *Store) LoadSchedule() (*model.ScheduleSnapshot, error) {
	var snap model.ScheduleSnapshot
	found, err := s.loadLatest(NameSchedule, &snap)
	if err != nil || !found {
		return nil, err
	}
	return &snap, nil
}

// SaveSchedule persists a schedule snapshot under the given run date.
func (s *Store) SaveSchedule(ref time.Time, snap model.ScheduleSnapshot) error {
	return s.save(NameSchedule, ref, snap)
}

// LoadTimecard returns the last persisted timecard snapshot, or nil on first
// run.
func (s *Store) LoadTimecard() (*model.TimecardSnapshot, error) {
	var snap model.TimecardSnapshot
	found, err := s.loadLatest(NameTimecard, &snap)
	if err != nil || !found {
		return nil, err
	}
	return &snap, nil
}

// SaveTimecard persists a timecard snapshot under the given run date.
func (s *Store) SaveTimecard(ref time.Time, snap model.TimecardSnapshot) error {
	return s.save(NameTimecard, ref, snap)
}
