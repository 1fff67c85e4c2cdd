package analyzer

import (
	"fmt"
	"strings"
)

// buildExplanation renders a short deterministic summary of the verdict:
// verdict line, indicator count and the leading detected categories.
func buildExplanation(inds []ThreatIndicator, classification string, contentType ContentType) string {
	if len(inds) == 0 {
		return fmt.Sprintf("This %s appears to be legitimate. No phishing indicators were detected.", contentType)
	}

	breakdown := SeverityBreakdown(inds)
	categories := distinctCategories(inds)

	var b strings.Builder
	switch classification {
	case ClassificationPhishing:
		fmt.Fprintf(&b, "PHISHING DETECTED: This %s shows %d threat indicator(s). ", contentType, len(inds))
		if breakdown[string(SeverityCritical)] > 0 {
			fmt.Fprintf(&b, "Found %d critical issue(s). ", breakdown[string(SeverityCritical)])
		}
		fmt.Fprintf(&b, "Detected patterns: %s.", strings.Join(firstN(categories, 4), ", "))
	case ClassificationSuspicious:
		fmt.Fprintf(&b, "SUSPICIOUS: This %s contains %d warning sign(s). ", contentType, len(inds))
		fmt.Fprintf(&b, "Detected: %s. Proceed with caution.", strings.Join(firstN(categories, 3), ", "))
	default:
		fmt.Fprintf(&b, "LOW RISK: This %s has minor concerns (%d indicator(s)). ", contentType, len(inds))
		b.WriteString("Exercise normal caution.")
	}
	return b.String()
}

// buildRecommendations produces an ordered action list keyed by verdict
// and the indicator categories present. Capped at six entries.
func buildRecommendations(classification string, inds []ThreatIndicator) []string {
	categories := distinctCategories(inds)

	var recs []string
	switch classification {
	case ClassificationPhishing:
		recs = []string{
			"DO NOT click any links in this message",
			"DO NOT share any personal information or PINs",
			"Delete this message immediately",
		}
		if hasCategory(categories, isCredentialCategory) {
			recs = append(recs, "If you shared any details, change your passwords and PINs now")
		}
		if hasCategory(categories, isRegionalCategory) {
			recs = append(recs,
				"If claiming to be M-Pesa or your bank, verify via the official *334# menu or app",
				"Contact Safaricom (100) or your bank directly to verify")
		}
		if hasCategory(categories, isURLCategory) {
			recs = append(recs, "Do not open the address on any device; report it instead")
		}
		if hasCategory(categories, isFinancialCategory) {
			recs = append(recs, "Legitimate parties never ask for advance fees or transfers to personal numbers")
		}
		recs = append(recs, "Report this to your bank's fraud desk")
	case ClassificationSuspicious:
		recs = []string{
			"Do not click links - verify the sender through official channels",
			"Call the official number (not one from this message) to verify",
			"Check the sender's email address or phone number carefully",
			"Take your time - legitimate organizations don't create urgency",
		}
	default:
		recs = []string{
			"Always verify sender identity for financial requests",
			"Don't share PINs or OTPs - banks never ask for these",
			"Use official apps and USSD codes for transactions",
			"Report suspicious messages to 333 (Safaricom)",
		}
	}

	if len(recs) > 6 {
		recs = recs[:6]
	}
	return recs
}

// distinctCategories lists indicator categories in first-seen order with
// regional qualifiers stripped ("Regional Target (Banks)" counts once).
func distinctCategories(inds []ThreatIndicator) []string {
	seen := make(map[string]struct{}, len(inds))
	var out []string
	for _, ind := range inds {
		cat := ind.Category
		if i := strings.Index(cat, " ("); i > 0 {
			cat = cat[:i]
		}
		if _, dup := seen[cat]; dup {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}
	return out
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func hasCategory(categories []string, match func(string) bool) bool {
	for _, cat := range categories {
		if match(cat) {
			return true
		}
	}
	return false
}

func isFinancialCategory(cat string) bool {
	return strings.Contains(strings.ToLower(cat), "financial")
}
