package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

// CategoryLinkMismatch marks visible link text pointing somewhere else.
const CategoryLinkMismatch = "Link Mismatch"

var (
	markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	htmlAnchorRe   = regexp.MustCompile(`(?i)<a[^>]+href=["']([^"']+)["'][^>]*>([^<]+)</a>`)
	looksLikeURLRe = regexp.MustCompile(`(?i)^https?://|www\.`)
)

// checkLinkMismatch flags hyperlinks whose visible text looks like a web
// address different from the actual destination. Classic cover for
// credential harvesting pages; always critical.
func checkLinkMismatch(text string) []ThreatIndicator {
	var indicators []ThreatIndicator

	report := func(visible, actual string) {
		visible = strings.ToLower(strings.TrimSpace(visible))
		actual = strings.ToLower(strings.TrimSpace(actual))
		if !looksLikeURLRe.MatchString(visible) {
			return
		}
		if strings.Contains(actual, visible) || strings.Contains(visible, actual) {
			return
		}
		indicators = append(indicators, ThreatIndicator{
			Category:    CategoryLinkMismatch,
			Description: "Displayed URL differs from actual destination",
			Severity:    SeverityCritical,
			MatchedText: fmt.Sprintf("Shows: %s... Links to: %s...", truncate(visible, 30), truncate(actual, 30)),
			Confidence:  0.95,
		})
	}

	for _, m := range markdownLinkRe.FindAllStringSubmatch(text, -1) {
		report(m[1], m[2])
	}
	for _, m := range htmlAnchorRe.FindAllStringSubmatch(text, -1) {
		report(m[2], m[1])
	}

	return indicators
}
