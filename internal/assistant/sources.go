package assistant

import (
	"strings"
	"time"

	"github.com/iksnae/webscraper-chat/internal"
)

// scrapeKeywords mark a prompt as asking for website data
var scrapeKeywords = []string{"price", "scrape", "amazon", "flipkart", "website", "data"}

// Placeholder target cited for scraping prompts
const (
	TargetURL     = "https://example-target-site.com"
	TargetTitle   = "Target Website - Data Source"
	TargetFavicon = "https://example-target-site.com/favicon.ico"
)

// WantsScrape reports whether prompt mentions any scrape keyword
func WantsScrape(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, kw := range scrapeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DetectSources returns the sources to cite for prompt, or nil
func DetectSources(prompt string, now time.Time, ids internal.IDGenerator) []internal.SourceRecord {
	if !WantsScrape(prompt) {
		return nil
	}
	return []internal.SourceRecord{{
		ID:        ids.SourceID(),
		URL:       TargetURL,
		Title:     TargetTitle,
		Favicon:   TargetFavicon,
		Status:    internal.SourceSuccess,
		Timestamp: internal.FormatTime(now),
	}}
}
