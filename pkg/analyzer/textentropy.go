package analyzer

import (
	"fmt"
	"strings"
)

// CategoryRandomContent labels machine-generated-looking text evidence.
const CategoryRandomContent = "Random Content"

// Whole-text entropy above this suggests generated filler rather than
// natural language. Natural English runs just above 4 bits per character;
// random alphanumerics exceed 5.
const textEntropyCutoff = 5.2

// checkTextEntropy flags randomness in the message body itself: long
// high-entropy tokens (tracking blobs, generated identifiers) and a
// whole-text entropy above the generated-content cutoff. Address-level
// entropy is handled by analyzeURL.
func checkTextEntropy(text string, contentType ContentType) []ThreatIndicator {
	if contentType == ContentTypeURL {
		return nil
	}

	var indicators []ThreatIndicator

	for _, word := range strings.Fields(text) {
		token := strings.Trim(word, ".,;:!?()[]<>\"'")
		if len(token) >= 12 && !strings.Contains(token, "://") && isHighEntropy(token) && ShannonEntropy(token) > 4.0 {
			indicators = append(indicators, ThreatIndicator{
				Category:    CategoryRandomContent,
				Description: fmt.Sprintf("Token appears machine-generated (entropy %.2f)", ShannonEntropy(token)),
				Severity:    SeverityMedium,
				MatchedText: truncate(token, 40),
				Confidence:  0.6,
			})
			break // one sample token is evidence enough
		}
	}

	if entropy := ShannonEntropy(text); len(text) >= 40 && entropy > textEntropyCutoff {
		indicators = append(indicators, ThreatIndicator{
			Category:    CategoryRandomContent,
			Description: fmt.Sprintf("Message body entropy unusually high (%.2f)", entropy),
			Severity:    SeverityMedium,
			MatchedText: "",
			Confidence:  0.55,
		})
	}

	return indicators
}
