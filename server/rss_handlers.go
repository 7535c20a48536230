package server

import (
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/aipostbot/newsdraft/pkg/feed"
)

// rssHandler serves RSS feed of published posts
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.state.Load()
	if err != nil {
		lgr.Printf("[ERROR] failed to load state for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	generator := feed.NewGenerator(s.config.GetBaseURL())
	rss, err := generator.GenerateRSS(st.PublishedTweets)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
