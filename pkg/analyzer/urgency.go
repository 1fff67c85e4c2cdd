package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

// Indicator categories shared between modules, fusion boosts and the
// explanation builder.
const (
	CategoryUrgency      = "Urgency Language"
	CategoryTimePressure = "Time Pressure"
	CategoryCredential   = "Credential Harvesting"
	CategoryThreat       = "Threatening Language"
)

var timePressurePatterns = []struct {
	re   *regexp.Regexp
	desc string
}{
	{regexp.MustCompile(`\d+\s*(hours?|minutes?|mins?)\s*(left|remaining)`), "Time countdown"},
	{regexp.MustCompile(`expires?\s+(in\s+)?\d+`), "Expiration time"},
	{regexp.MustCompile(`deadline\s*:?\s*\d+`), "Deadline mentioned"},
	{regexp.MustCompile(`within\s+\d+\s*(hours?|minutes?|mins?|days?)`), "Action window"},
}

// checkUrgency flags pressure and deadline phrasing. Phrase tiers map to
// severities; countdown-style wording is reported separately as time
// pressure so the fusion boosts can tell the two apart.
func checkUrgency(text string, lex *Lexicon) []ThreatIndicator {
	var indicators []ThreatIndicator
	lower := strings.ToLower(text)

	for _, severity := range severityOrder {
		confidence := 0.7
		if severity == SeverityCritical {
			confidence = 0.85
		}
		for _, phrase := range lex.UrgencyPhrases[severity] {
			if strings.Contains(lower, phrase) {
				indicators = append(indicators, ThreatIndicator{
					Category:    CategoryUrgency,
					Description: fmt.Sprintf("Creates pressure with: '%s'", phrase),
					Severity:    severity,
					MatchedText: phrase,
					Confidence:  confidence,
				})
			}
		}
	}

	for _, tp := range timePressurePatterns {
		if m := tp.re.FindString(lower); m != "" {
			indicators = append(indicators, ThreatIndicator{
				Category:    CategoryTimePressure,
				Description: tp.desc,
				Severity:    SeverityHigh,
				MatchedText: m,
				Confidence:  0.8,
			})
		}
	}

	return indicators
}
