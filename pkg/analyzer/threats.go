package analyzer

import (
	"fmt"
	"strings"
)

// checkThreats flags suspension, account-loss and legal-action phrasing.
func checkThreats(text string, lex *Lexicon) []ThreatIndicator {
	var indicators []ThreatIndicator
	lower := strings.ToLower(text)

	for _, severity := range severityOrder {
		confidence := 0.75
		if severity == SeverityCritical {
			confidence = 0.9
		}
		for _, re := range lex.ThreatPatterns[severity] {
			if m := re.FindString(lower); m != "" {
				indicators = append(indicators, ThreatIndicator{
					Category:    CategoryThreat,
					Description: fmt.Sprintf("Threatens: '%s'", m),
					Severity:    severity,
					MatchedText: m,
					Confidence:  confidence,
				})
			}
		}
	}

	return indicators
}
