package content

import "net/http"

// setArticleHeaders makes article requests look like a regular page visit.
// Accept-Encoding is left to the transport so responses are decompressed transparently.
func setArticleHeaders(req *http.Request) {
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
}
