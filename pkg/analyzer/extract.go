package analyzer

import (
	"regexp"
	"strings"
)

// MaxURLsPerScan bounds how many embedded addresses one analysis inspects.
const MaxURLsPerScan = 5

var urlExtractors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://[^\s<>"'{}|\\^` + "`" + `\[\]]+`),
	regexp.MustCompile(`(?i)www\.[^\s<>"'{}|\\^` + "`" + `\[\]]+`),
	regexp.MustCompile(`(?i)\b[a-z0-9][-a-z0-9]*(?:\.[a-z0-9][-a-z0-9]*)*\.[a-z]{2,}\b(?:/[^\s<>"']*)?`),
}

// ExtractURLs pulls candidate web addresses out of free text. Results are
// deduplicated, order of first appearance preserved, unbounded; callers
// cap at MaxURLsPerScan before deeper analysis.
func ExtractURLs(text string) []string {
	seen := make(map[string]struct{})
	var urls []string
	for _, re := range urlExtractors {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimRight(m, ".,;:!?)")
			if m == "" {
				continue
			}
			key := strings.ToLower(m)
			if _, dup := seen[key]; dup {
				continue
			}
			// Skip bare-domain matches already captured with a scheme.
			if !strings.Contains(key, "://") {
				if _, dup := seen["http://"+key]; dup {
					continue
				}
				if _, dup := seen["https://"+key]; dup {
					continue
				}
			}
			seen[key] = struct{}{}
			urls = append(urls, m)
		}
	}
	return urls
}
