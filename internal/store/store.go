// Package store owns the on-device log collection and config record. It is
// the only writer of both; every mutation persists, recomputes the yearly
// counter from scratch, and hands a full snapshot to the sync notifier.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/runnerr0/streak/internal/kv"
	"github.com/runnerr0/streak/internal/timeutil"
)

// Storage keys. Two flat blobs, nothing else.
const (
	keyLogs   = "logs"
	keyConfig = "appConfig"
)

// ErrNotFound signals an update against an id that does not exist.
var ErrNotFound = errors.New("log entry not found")

// Notifier receives a full state snapshot after every persisted mutation
// that should reach the remote backup. Implementations must not block.
type Notifier interface {
	StateChanged(logs []Entry, cfg Config)
}

// Store is the repository for log entries and the config record,
// constructed once at startup with its storage dependency injected.
type Store struct {
	kv       kv.Store
	notifier Notifier
	now      func() time.Time
}

// New creates a Store over the given key-value storage.
func New(s kv.Store) *Store {
	return &Store{kv: s, now: time.Now}
}

// SetNotifier installs the sync notifier invoked after mutations. A nil
// notifier disables sync requests.
func (s *Store) SetNotifier(n Notifier) {
	s.notifier = n
}

// All returns the log collection, newest-first. Absent or malformed
// storage yields an empty collection, never an error.
func (s *Store) All() []Entry {
	return decodeLogs(s.kv.Get(keyLogs))
}

// Config returns the config record, seeded with defaults when absent.
func (s *Store) Config() Config {
	return decodeConfig(s.kv.Get(keyConfig))
}

func (s *Store) saveLogs(logs []Entry) error {
	data, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("encode logs: %w", err)
	}
	if err := s.kv.Set(keyLogs, data); err != nil {
		return fmt.Errorf("persist logs: %w", err)
	}
	return nil
}

func (s *Store) saveConfig(cfg Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := s.kv.Set(keyConfig, data); err != nil {
		return fmt.Errorf("persist config: %w", err)
	}
	return nil
}

// notify hands a snapshot of the current state to the sync notifier. The
// slice is copied so the notifier's async consumer never aliases store
// internals.
func (s *Store) notify() {
	if s.notifier == nil {
		return
	}
	logs := s.All()
	snapshot := make([]Entry, len(logs))
	copy(snapshot, logs)
	s.notifier.StateChanged(snapshot, s.Config())
}

func validate(e Entry) error {
	if e.Duration <= 0 {
		return fmt.Errorf("duration must be a positive number of minutes, got %d", e.Duration)
	}
	if e.Intensity < 0 || e.Intensity > 5 {
		return fmt.Errorf("intensity must be between 0.0 and 5.0, got %.1f", e.Intensity)
	}
	return nil
}

// Add stores a new entry at the head of the collection. A zero Timestamp
// defaults to now, a missing ID is generated, Date is derived from the
// final timestamp, and an empty description gets the synthetic intensity
// label. Validation failures reject the entry before anything is persisted.
func (s *Store) Add(e Entry) (Entry, error) {
	if err := validate(e); err != nil {
		return Entry{}, err
	}

	if e.Timestamp == 0 {
		e.Timestamp = timeutil.ToMillis(s.now())
	}
	at := timeutil.FromMillis(e.Timestamp)
	if e.ID == "" {
		e.ID = timeutil.GenerateID(at)
	}
	e.Date = timeutil.FormatDate(at)
	if e.Description == "" {
		e.Description = SyntheticDescription(e.Intensity)
	}

	logs := append([]Entry{e}, s.All()...)
	if err := s.saveLogs(logs); err != nil {
		return Entry{}, err
	}
	if err := s.RecomputeCount(); err != nil {
		return Entry{}, err
	}
	s.notify()
	return e, nil
}

// Update replaces the entry with e.ID. Zero-valued fields keep the stored
// values; a caller-supplied timestamp re-derives Date. Returns ErrNotFound
// when no entry has that id — Update never inserts.
func (s *Store) Update(e Entry) (Entry, error) {
	logs := s.All()
	idx := -1
	for i := range logs {
		if logs[i].ID == e.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Entry{}, fmt.Errorf("update %s: %w", e.ID, ErrNotFound)
	}

	merged := logs[idx]
	if e.Timestamp != 0 {
		merged.Timestamp = e.Timestamp
	}
	if e.Title != "" {
		merged.Title = e.Title
	}
	if e.Description != "" {
		merged.Description = e.Description
	}
	if e.Duration != 0 {
		merged.Duration = e.Duration
	}
	if e.Intensity != 0 {
		merged.Intensity = e.Intensity
	}
	if err := validate(merged); err != nil {
		return Entry{}, err
	}
	merged.Date = timeutil.FormatDate(timeutil.FromMillis(merged.Timestamp))

	logs[idx] = merged
	if err := s.saveLogs(logs); err != nil {
		return Entry{}, err
	}
	if err := s.RecomputeCount(); err != nil {
		return Entry{}, err
	}
	s.notify()
	return merged, nil
}

// Delete removes the entry with the given id. Deleting an unknown id is a
// no-op, not an error.
func (s *Store) Delete(id string) error {
	logs := s.All()
	kept := logs[:0]
	for _, e := range logs {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if err := s.saveLogs(kept); err != nil {
		return err
	}
	if err := s.RecomputeCount(); err != nil {
		return err
	}
	s.notify()
	return nil
}

// ClearAll empties the log collection and zeroes the yearly counter. The
// wipe is synced so the remote backup reflects it.
func (s *Store) ClearAll() error {
	if err := s.saveLogs([]Entry{}); err != nil {
		return err
	}
	cfg := s.Config()
	cfg.CurrentCount = 0
	if err := s.saveConfig(cfg); err != nil {
		return err
	}
	s.notify()
	return nil
}

// SetYearlyGoal replaces the yearly goal.
func (s *Store) SetYearlyGoal(goal int) error {
	if goal <= 0 {
		return fmt.Errorf("yearly goal must be positive, got %d", goal)
	}
	cfg := s.Config()
	cfg.YearlyGoal = goal
	if err := s.saveConfig(cfg); err != nil {
		return err
	}
	s.notify()
	return nil
}

// ResetYearlyProgress zeroes the displayed counter without touching the
// goal or the logs. Display-only; deliberately not synced.
func (s *Store) ResetYearlyProgress() error {
	cfg := s.Config()
	cfg.CurrentCount = 0
	return s.saveConfig(cfg)
}

// SetSync persists the cloud sync toggle and key. Enabling with a key in
// place triggers an upload through the notifier.
func (s *Store) SetSync(enabled bool, key string) error {
	cfg := s.Config()
	cfg.CloudSync = enabled
	cfg.SyncKey = key
	if err := s.saveConfig(cfg); err != nil {
		return err
	}
	s.notify()
	return nil
}

// RestoreSnapshot wholesale-replaces the local log collection with a
// downloaded backup and overlays the synced config fields (yearly goal,
// sync key, cloud sync on) onto the local record, leaving everything else
// untouched. The counter is recomputed from the restored logs. No sync is
// requested: the remote already holds exactly this state.
func (s *Store) RestoreSnapshot(logs []Entry, yearlyGoal int, key string) error {
	if logs == nil {
		logs = []Entry{}
	}
	if err := s.saveLogs(logs); err != nil {
		return err
	}

	cfg := s.Config()
	if yearlyGoal > 0 {
		cfg.YearlyGoal = yearlyGoal
	}
	cfg.SyncKey = key
	cfg.CloudSync = true
	if err := s.saveConfig(cfg); err != nil {
		return err
	}

	return s.RecomputeCount()
}

// RecomputeCount recounts the entries whose timestamp falls in the current
// calendar year and persists the result. The counter is never adjusted
// incrementally; a full recount after every mutation keeps it from
// drifting whatever the edit path.
func (s *Store) RecomputeCount() error {
	year := s.now().Year()
	count := 0
	for _, e := range s.All() {
		if timeutil.FromMillis(e.Timestamp).Year() == year {
			count++
		}
	}

	cfg := s.Config()
	cfg.CurrentCount = count
	return s.saveConfig(cfg)
}

// HeatmapCounts aggregates one pass over the logs into per-date counts,
// keyed by each entry's own Date field. Feeds the heatmap engine.
func (s *Store) HeatmapCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range s.All() {
		if e.Date != "" {
			counts[e.Date]++
		}
	}
	return counts
}

// Search filters the collection by a case-insensitive substring match on
// title and description. Synthetic intensity descriptions never match:
// they are generated labels, not user text.
func (s *Store) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All()
	}

	matched := make([]Entry, 0)
	for _, e := range s.All() {
		if strings.Contains(strings.ToLower(e.Title), q) {
			matched = append(matched, e)
			continue
		}
		if !IsSyntheticDescription(e.Description) &&
			strings.Contains(strings.ToLower(e.Description), q) {
			matched = append(matched, e)
		}
	}
	return matched
}

// SortField selects a history ordering.
type SortField string

const (
	SortByDate      SortField = "date"
	SortByIntensity SortField = "intensity"
	SortByDuration  SortField = "duration"
)

// Sort orders entries in place by the given field, descending by default.
func Sort(entries []Entry, by SortField, ascending bool) {
	less := func(i, j int) bool {
		switch by {
		case SortByIntensity:
			return entries[i].Intensity < entries[j].Intensity
		case SortByDuration:
			return entries[i].Duration < entries[j].Duration
		default:
			return entries[i].Timestamp < entries[j].Timestamp
		}
	}
	if ascending {
		sort.SliceStable(entries, less)
	} else {
		sort.SliceStable(entries, func(i, j int) bool { return less(j, i) })
	}
}
