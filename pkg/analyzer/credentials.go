package analyzer

import (
	"fmt"
	"strings"
)

// checkCredentials flags requests for PINs, passwords, OTPs and other
// sensitive identity data.
func checkCredentials(text string, lex *Lexicon) []ThreatIndicator {
	var indicators []ThreatIndicator
	lower := strings.ToLower(text)

	for _, severity := range severityOrder {
		confidence := 0.85
		if severity == SeverityCritical {
			confidence = 0.95
		}
		for _, re := range lex.CredentialPatterns[severity] {
			if m := re.FindString(lower); m != "" {
				indicators = append(indicators, ThreatIndicator{
					Category:    CategoryCredential,
					Description: fmt.Sprintf("Requests sensitive data: '%s'", m),
					Severity:    severity,
					MatchedText: m,
					Confidence:  confidence,
				})
			}
		}
	}

	return indicators
}

// hasCredentialRequest reports whether any credential pattern matches.
// The regional target module uses this for severity escalation.
func hasCredentialRequest(text string, lex *Lexicon) bool {
	lower := strings.ToLower(text)
	for _, patterns := range lex.CredentialPatterns {
		for _, re := range patterns {
			if re.MatchString(lower) {
				return true
			}
		}
	}
	return false
}
