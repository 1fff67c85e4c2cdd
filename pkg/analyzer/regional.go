package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// checkRegionalTargets flags references to locally salient financial,
// telecom and government services. A reference alone is only medium
// severity; combined with a credential request it escalates to critical,
// since that pairing is the signature of regional mobile-money scams.
func checkRegionalTargets(text string, lex *Lexicon) []ThreatIndicator {
	var indicators []ThreatIndicator
	lower := strings.ToLower(text)

	credentialRequest := hasCredentialRequest(text, lex)

	groups := make([]string, 0, len(lex.RegionalTargets))
	for group := range lex.RegionalTargets {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		for _, keyword := range lex.RegionalTargets[group] {
			if !strings.Contains(lower, keyword) {
				continue
			}
			severity := SeverityMedium
			confidence := 0.5
			description := fmt.Sprintf("References '%s'", keyword)
			if credentialRequest {
				severity = SeverityCritical
				confidence = 0.8
				description += " with credential request"
			}
			indicators = append(indicators, ThreatIndicator{
				Category:    fmt.Sprintf("Regional Target (%s)", titleCaser.String(strings.ReplaceAll(group, "_", " "))),
				Description: description,
				Severity:    severity,
				MatchedText: keyword,
				Confidence:  confidence,
			})
			break // one indicator per service group
		}
	}

	return indicators
}
