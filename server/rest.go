package server

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/aipostbot/newsdraft/pkg/domain"
	"github.com/aipostbot/newsdraft/pkg/repository"
	"github.com/aipostbot/newsdraft/pkg/scheduler"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 500
)

var errNoHistory = errors.New("run history is not configured")

// statusResponse summarizes the persisted state and scheduled jobs
type statusResponse struct {
	Status       string                 `json:"status"`
	Version      string                 `json:"version"`
	Time         time.Time              `json:"time"`
	Pending      int                    `json:"pending"`
	Approved     int                    `json:"approved"`
	Published    int                    `json:"published"`
	SeenURLs     int                    `json:"seen_urls"`
	LastUpdateID int64                  `json:"last_update_id"`
	Tasks        []scheduler.TaskStatus `json:"tasks,omitempty"`
}

// statusHandler returns server and pipeline status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.state.Load()
	if err != nil {
		lgr.Printf("[ERROR] failed to load state: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	resp := statusResponse{
		Status:       "ok",
		Version:      s.version,
		Time:         time.Now().UTC(),
		Published:    len(st.PublishedTweets),
		SeenURLs:     len(st.SeenURLs),
		LastUpdateID: st.LastUpdateID,
	}
	for _, d := range st.PendingDrafts {
		switch d.Status {
		case domain.StatusPending:
			resp.Pending++
		case domain.StatusApproved:
			resp.Approved++
		}
	}
	if s.scheduler != nil {
		resp.Tasks = s.scheduler.Status()
	}
	RenderJSON(w, r, http.StatusOK, resp)
}

// draftsHandler returns drafts waiting for review or publishing
func (s *Server) draftsHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.state.Load()
	if err != nil {
		lgr.Printf("[ERROR] failed to load state: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, st.PendingDrafts)
}

// publishedHandler returns published posts, newest first
func (s *Server) publishedHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.state.Load()
	if err != nil {
		lgr.Printf("[ERROR] failed to load state: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, newestFirst(st.PublishedTweets))
}

// runsHandler lists recent runs from the history database
func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		RenderError(w, r, errNoHistory, http.StatusNotFound)
		return
	}

	limit := defaultRunsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			RenderError(w, r, errors.New("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = min(l, maxRunsLimit)
	}

	runs, err := s.history.ListRuns(r.Context(), limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to list runs: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, runs)
}

// runHandler returns a single run with its scored candidates
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		RenderError(w, r, errNoHistory, http.StatusNotFound)
		return
	}

	run, err := s.history.GetRun(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrRunNotFound) {
		RenderError(w, r, err, http.StatusNotFound)
		return
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to get run: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, run)
}

// sourceStatsHandler returns per-source candidate and selection counts
func (s *Server) sourceStatsHandler(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		RenderError(w, r, errNoHistory, http.StatusNotFound)
		return
	}

	stats, err := s.history.SourceStats(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get source stats: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, stats)
}

// newestFirst returns a copy of drafts sorted by publish time, newest first
func newestFirst(drafts []domain.Draft) []domain.Draft {
	res := make([]domain.Draft, len(drafts))
	copy(res, drafts)
	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i].PublishedAt, res[j].PublishedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
	return res
}
