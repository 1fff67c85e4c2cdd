package analyzer

import (
	"sort"
	"strings"
)

// MaxIndicators caps how many indicators a single analysis reports.
const MaxIndicators = 15

// ThreatIndicator is one piece of evidence produced by a detection module.
type ThreatIndicator struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	MatchedText string   `json:"matched_text,omitempty"`
	Confidence  float64  `json:"confidence"`
}

// NormalizeIndicators deduplicates, orders and caps a raw indicator list.
// Duplicates share category and matched text; the first occurrence wins.
// Ordering is severity descending, then confidence descending, so the
// capped list always keeps the strongest evidence.
func NormalizeIndicators(raw []ThreatIndicator) []ThreatIndicator {
	if len(raw) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]ThreatIndicator, 0, len(raw))
	for _, ind := range raw {
		key := ind.Category + "\x00" + ind.MatchedText
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ind)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Severity.rank(), out[j].Severity.rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].Confidence > out[j].Confidence
	})

	if len(out) > MaxIndicators {
		out = out[:MaxIndicators]
	}
	return out
}

// SeverityBreakdown counts indicators per grade.
func SeverityBreakdown(inds []ThreatIndicator) map[string]int {
	breakdown := map[string]int{
		string(SeverityCritical): 0,
		string(SeverityHigh):     0,
		string(SeverityMedium):   0,
		string(SeverityLow):      0,
	}
	for _, ind := range inds {
		breakdown[string(ind.Severity)]++
	}
	return breakdown
}

// Category classifiers used by the fusion boosts and the explanation
// builder. They match on substrings so regional variants ("Regional Target
// (Banks)") still classify correctly.

func isCredentialCategory(cat string) bool {
	return strings.Contains(strings.ToLower(cat), "credential")
}

func isUrgencyCategory(cat string) bool {
	lower := strings.ToLower(cat)
	return strings.Contains(lower, "urgency") || strings.Contains(lower, "time pressure")
}

func isURLCategory(cat string) bool {
	lower := strings.ToLower(cat)
	for _, marker := range []string{"url", "domain", "link", "tld", "homograph", "typosquat"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func isRegionalCategory(cat string) bool {
	lower := strings.ToLower(cat)
	return strings.Contains(lower, "regional target") || strings.Contains(lower, "kenya target")
}
