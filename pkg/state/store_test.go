package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aipostbot/newsdraft/pkg/config"
	"github.com/aipostbot/newsdraft/pkg/domain"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testStore(t *testing.T, maxSeen int) *Store {
	t.Helper()
	dir := t.TempDir()
	s := NewStore(config.StateConfig{
		Path:          filepath.Join(dir, "data", "state.json"),
		RunsDir:       filepath.Join(dir, "data", "runs"),
		MaxSeenURLs:   maxSeen,
		RetentionDays: 90,
	})
	s.now = func() time.Time { return testNow }
	return s
}

func TestStore_LoadMissing(t *testing.T) {
	s := testStore(t, 1000)
	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.StateVersion, st.Version)
	assert.Empty(t, st.SeenURLs)
	assert.Empty(t, st.PendingDrafts)
	assert.Empty(t, st.PublishedTweets)
	assert.Zero(t, st.LastUpdateID)
}

func TestStore_RoundTrip(t *testing.T) {
	s := testStore(t, 1000)

	msgID := int64(777)
	published := testNow.Add(-time.Hour)
	pending := domain.NewDraft("https://a.com/1", "Title 1", "text 1", testNow.Add(-2*time.Hour))
	pending.Score = 1.35
	pending.Category = domain.CategoryRelease
	pending.MessageID = &msgID
	pending.Thread = []string{"part 1", "part 2"}
	done := domain.Draft{
		NewsURL: "https://b.com/2", NewsTitle: "Title 2", Text: "text 2", Score: 0.4, Category: domain.CategoryResearch,
		Status: domain.StatusPublished, CreatedAt: testNow.Add(-3 * time.Hour), PublishedAt: &published, PostID: "12345",
	}

	st := domain.NewAppState()
	st.SeenURLs = []string{"https://a.com/1", "https://b.com/2"}
	st.PendingDrafts = []domain.Draft{pending}
	st.PublishedTweets = []domain.Draft{done}
	st.AdvanceCursor(42)

	require.NoError(t, s.Save(st))
	loaded, err := s.Load()
	require.NoError(t, err)

	assert.Equal(t, st.SeenURLs, loaded.SeenURLs)
	assert.Equal(t, int64(42), loaded.LastUpdateID)
	require.Len(t, loaded.PendingDrafts, 1)
	got := loaded.PendingDrafts[0]
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.InDelta(t, 1.35, got.Score, 1e-9)
	assert.Equal(t, domain.CategoryRelease, got.Category)
	require.NotNil(t, got.MessageID)
	assert.Equal(t, int64(777), *got.MessageID)
	assert.True(t, pending.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, []string{"part 1", "part 2"}, got.Thread)
	assert.Nil(t, got.PublishedAt)

	require.Len(t, loaded.PublishedTweets, 1)
	pub := loaded.PublishedTweets[0]
	assert.Equal(t, domain.StatusPublished, pub.Status)
	assert.Equal(t, "12345", pub.PostID)
	require.NotNil(t, pub.PublishedAt)
	assert.True(t, published.Equal(*pub.PublishedAt))
}

func TestStore_SaveCapsSeenURLs(t *testing.T) {
	s := testStore(t, 100)
	st := domain.NewAppState()
	for i := 0; i < 1500; i++ {
		st.SeenURLs = append(st.SeenURLs, fmt.Sprintf("https://example.com/%d", i))
	}

	require.NoError(t, s.Save(st))
	loaded, err := s.Load()
	require.NoError(t, err)

	require.Len(t, loaded.SeenURLs, 100)
	assert.Equal(t, "https://example.com/1400", loaded.SeenURLs[0])
	assert.Equal(t, "https://example.com/1499", loaded.SeenURLs[99])
}

func TestStore_SavePrunesPublished(t *testing.T) {
	s := testStore(t, 1000)
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := testNow.Add(-89 * 24 * time.Hour)

	st := domain.NewAppState()
	st.PublishedTweets = []domain.Draft{
		{NewsURL: "old", Status: domain.StatusPublished, PublishedAt: &old, PostID: "1"},
		{NewsURL: "future", Status: domain.StatusPublished, PublishedAt: &future, PostID: "2"},
		{NewsURL: "recent", Status: domain.StatusPublished, PublishedAt: &recent, PostID: "3"},
		{NewsURL: "no time", Status: domain.StatusPublished, PostID: "4"},
	}

	require.NoError(t, s.Save(st))
	loaded, err := s.Load()
	require.NoError(t, err)

	require.Len(t, loaded.PublishedTweets, 2)
	assert.Equal(t, "future", loaded.PublishedTweets[0].NewsURL)
	assert.Equal(t, "recent", loaded.PublishedTweets[1].NewsURL)
}

func TestStore_LoadLegacyDocument(t *testing.T) {
	s := testStore(t, 1000)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0o750))
	legacy := `{"seen_urls":["u1"],"pending_drafts":[{"news_url":"u1","news_title":"t","tweet_text":"x",
		"source_score":0.5,"category":"news","status":"pending","telegram_message_id":null,"created_at":"2026-03-01T10:00:00Z",
		"published_at":null}],"last_telegram_update_id":9}`
	require.NoError(t, os.WriteFile(s.path, []byte(legacy), 0o600))

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.StateVersion, st.Version)
	assert.Equal(t, []string{"u1"}, st.SeenURLs)
	require.Len(t, st.PendingDrafts, 1)
	assert.Nil(t, st.PendingDrafts[0].MessageID)
	assert.NotNil(t, st.PublishedTweets)
	assert.Equal(t, int64(9), st.LastUpdateID)
}

func TestStore_LoadLegacyTimestamps(t *testing.T) {
	s := testStore(t, 1000)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0o750))
	legacy := `{"seen_urls":[],"pending_drafts":[
		{"news_url":"u1","news_title":"t1","tweet_text":"x","status":"pending","created_at":""},
		{"news_url":"u2","news_title":"t2","tweet_text":"y","status":"approved","created_at":"2026-03-09T08:15:30.123456"}],
		"published_tweets":[{"news_url":"u3","news_title":"t3","tweet_text":"z","status":"published",
		"created_at":"2026-03-08T10:00:00.5","published_at":"2026-03-09T11:00:00.654321","tweet_id":"42"}]}`
	require.NoError(t, os.WriteFile(s.path, []byte(legacy), 0o600))

	st, err := s.Load()
	require.NoError(t, err)
	require.Len(t, st.PendingDrafts, 2)
	assert.True(t, st.PendingDrafts[0].CreatedAt.IsZero())
	assert.Equal(t, time.Date(2026, 3, 9, 8, 15, 30, 123456000, time.UTC), st.PendingDrafts[1].CreatedAt)
	require.Len(t, st.PublishedTweets, 1)
	require.NotNil(t, st.PublishedTweets[0].PublishedAt)
	assert.Equal(t, time.Date(2026, 3, 9, 11, 0, 0, 654321000, time.UTC), *st.PublishedTweets[0].PublishedAt)

	// the published draft is inside the retention window and survives a save
	require.NoError(t, s.Save(st))
	reloaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, reloaded.PublishedTweets, 1)
	assert.Equal(t, "42", reloaded.PublishedTweets[0].PostID)
}

func TestStore_LoadErrors(t *testing.T) {
	t.Run("corrupted", func(t *testing.T) {
		s := testStore(t, 1000)
		require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0o750))
		require.NoError(t, os.WriteFile(s.path, []byte("{not json"), 0o600))
		_, err := s.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse state")
	})

	t.Run("newer version", func(t *testing.T) {
		s := testStore(t, 1000)
		require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0o750))
		require.NoError(t, os.WriteFile(s.path, []byte(`{"version":99}`), 0o600))
		_, err := s.Load()
		require.ErrorIs(t, err, ErrUnsupportedVersion)
	})
}

func TestStore_SaveWritesArrays(t *testing.T) {
	s := testStore(t, 1000)
	require.NoError(t, s.Save(&domain.AppState{}))

	data, err := os.ReadFile(s.path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{}, raw["seen_urls"])
	assert.Equal(t, []any{}, raw["pending_drafts"])
	assert.Equal(t, []any{}, raw["published_tweets"])
	assert.InDelta(t, float64(domain.StateVersion), raw["version"], 0)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(s.path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestStore_SaveReplacesFile(t *testing.T) {
	s := testStore(t, 1000)
	require.NoError(t, s.Save(&domain.AppState{SeenURLs: []string{"first"}}))
	require.NoError(t, s.Save(&domain.AppState{SeenURLs: []string{"second"}, LastUpdateID: 5}))

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, st.SeenURLs)
	assert.Equal(t, int64(5), st.LastUpdateID)

	info, err := os.Stat(s.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	entries, err := os.ReadDir(filepath.Dir(s.path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_SaveRunLog(t *testing.T) {
	s := testStore(t, 1000)
	runLog := domain.RunLog{
		ID:           "run-1",
		Timestamp:    testNow,
		TotalFetched: 10,
		AfterDedup:   4,
		Candidates:   []domain.ScoredCandidate{{Title: "t", URL: "u", Source: "s", Score: 1.2, Selected: true}},
	}

	path, err := s.SaveRunLog(runLog)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10T12-00-00Z.json", filepath.Base(path))

	data, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	var got domain.RunLog
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, 10, got.TotalFetched)
	require.Len(t, got.Candidates, 1)
	assert.True(t, got.Candidates[0].Selected)
}

func TestPrune(t *testing.T) {
	st := domain.NewAppState()
	st.SeenURLs = []string{"a", "b", "c"}
	Prune(st, 5, testNow)
	assert.Equal(t, []string{"a", "b", "c"}, st.SeenURLs, "under the cap nothing changes")

	Prune(st, 2, testNow)
	assert.Equal(t, []string{"b", "c"}, st.SeenURLs)

	at := testNow
	st.PublishedTweets = []domain.Draft{{NewsURL: "edge", PublishedAt: &at}}
	Prune(st, 2, testNow)
	assert.Len(t, st.PublishedTweets, 1, "entry exactly at the cutoff is kept")
}
