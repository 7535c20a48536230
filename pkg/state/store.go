// Package state loads and saves the persisted application state and run logs
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/renameio/v2"

	"github.com/aipostbot/newsdraft/pkg/config"
	"github.com/aipostbot/newsdraft/pkg/domain"
)

// ErrUnsupportedVersion is returned when the state file was written by a newer version
var ErrUnsupportedVersion = errors.New("unsupported state version")

// Store keeps the state document in a single json file, replaced whole on every save
type Store struct {
	path      string
	runsDir   string
	maxSeen   int
	retention time.Duration
	now       func() time.Time
}

// NewStore makes a store from the state config
func NewStore(cfg config.StateConfig) *Store {
	return &Store{
		path:      cfg.Path,
		runsDir:   cfg.RunsDir,
		maxSeen:   cfg.MaxSeenURLs,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

// Load reads the state. Missing file means a fresh state, not an error.
func (s *Store) Load() (*domain.AppState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		lgr.Printf("[INFO] no state file at %s, starting fresh", s.path)
		return domain.NewAppState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", s.path, err)
	}

	st := domain.NewAppState()
	st.Version = 0 // documents written before versioning have no version field
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", s.path, err)
	}
	if st.Version > domain.StateVersion {
		return nil, fmt.Errorf("state version %d: %w", st.Version, ErrUnsupportedVersion)
	}
	st.Version = domain.StateVersion
	normalize(st)

	lgr.Printf("[DEBUG] state loaded: %d seen urls, %d pending, %d published, cursor %d",
		len(st.SeenURLs), len(st.PendingDrafts), len(st.PublishedTweets), st.LastUpdateID)
	return st, nil
}

// Save prunes the state and replaces the file atomically
func (s *Store) Save(st *domain.AppState) error {
	Prune(st, s.maxSeen, s.now().Add(-s.retention))
	st.Version = domain.StateVersion
	normalize(st)

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write state: %w", err)
	}

	lgr.Printf("[INFO] state saved: %d seen urls, %d pending, %d published",
		len(st.SeenURLs), len(st.PendingDrafts), len(st.PublishedTweets))
	return nil
}

// SaveRunLog writes the run log into the runs directory and returns the file path
func (s *Store) SaveRunLog(runLog domain.RunLog) (string, error) {
	if runLog.Timestamp.IsZero() {
		runLog.Timestamp = s.now()
	}
	name := strings.ReplaceAll(runLog.Timestamp.UTC().Format(time.RFC3339Nano), ":", "-") + ".json"
	path := filepath.Join(s.runsDir, name)

	data, err := json.MarshalIndent(runLog, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run log: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("write run log: %w", err)
	}
	lgr.Printf("[INFO] run log saved: %s (%d candidates)", path, len(runLog.Candidates))
	return path, nil
}

// Prune keeps the newest maxSeen urls and drops published drafts older than cutoff.
// Drafts without a publish time are dropped as well.
func Prune(st *domain.AppState, maxSeen int, cutoff time.Time) {
	if maxSeen >= 0 && len(st.SeenURLs) > maxSeen {
		kept := make([]string, maxSeen)
		copy(kept, st.SeenURLs[len(st.SeenURLs)-maxSeen:])
		st.SeenURLs = kept
	}

	published := make([]domain.Draft, 0, len(st.PublishedTweets))
	for _, d := range st.PublishedTweets {
		if d.PublishedAt == nil || d.PublishedAt.Before(cutoff) {
			continue
		}
		published = append(published, d)
	}
	st.PublishedTweets = published
}

// normalize replaces nil slices so the document always has arrays, not nulls
func normalize(st *domain.AppState) {
	if st.SeenURLs == nil {
		st.SeenURLs = []string{}
	}
	if st.PendingDrafts == nil {
		st.PendingDrafts = []domain.Draft{}
	}
	if st.PublishedTweets == nil {
		st.PublishedTweets = []domain.Draft{}
	}
}

// writeFileAtomic replaces path with data through a synced temp file in the same directory
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	if err := renameio.WriteFile(path, data, 0o600, renameio.WithTempDir(dir)); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
