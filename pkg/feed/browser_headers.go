package feed

import "net/http"

// feedAccept lists feed formats first, some sources only serve html error pages to plain */* requests
const feedAccept = "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5"

// setFeedHeaders adds the headers a feed reader sends, sources are english-language news sites
func setFeedHeaders(req *http.Request) {
	req.Header.Set("Accept", feedAccept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
}
