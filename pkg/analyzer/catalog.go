package analyzer

import (
	"strings"

	"github.com/phishguard/phishguard/pkg/patterns"
)

// CategoryFinancialRequest labels direct money/fee solicitation evidence.
const CategoryFinancialRequest = "Financial Request"

// Catalogue categories applied to every content kind.
var commonCatalogCategories = []patterns.Category{
	patterns.CategoryCallToAction,
	patterns.CategoryImpersonation,
	patterns.CategoryGreeting,
	patterns.CategoryGrammar,
	patterns.CategoryAccountAlert,
	patterns.CategoryInvoiceScam,
	patterns.CategorySubscriptionScam,
	patterns.CategoryDeliveryScam,
	patterns.CategoryTaxScam,
	patterns.CategoryRewardScam,
	patterns.CategoryInvestmentScam,
}

// checkSuspiciousPatterns runs the generic scam catalogue plus the
// channel-specific pattern groups for the given content kind.
func checkSuspiciousPatterns(text string, contentType ContentType, registry *patterns.Registry) []ThreatIndicator {
	cats := make([]patterns.Category, 0, len(commonCatalogCategories)+1)
	cats = append(cats, commonCatalogCategories...)
	switch contentType {
	case ContentTypeSMS:
		cats = append(cats, patterns.CategorySMSTactic)
	case ContentTypeEmail:
		cats = append(cats, patterns.CategoryEmailTactic)
	}

	var indicators []ThreatIndicator
	for _, m := range registry.FindAll(text, cats...) {
		indicators = append(indicators, ThreatIndicator{
			Category:    catalogCategoryLabel(m.Pattern.Category),
			Description: m.Pattern.Description,
			Severity:    SeverityFromScore(m.Pattern.Severity),
			MatchedText: truncate(m.Matched, 60),
			Confidence:  m.Pattern.Confidence,
		})
	}
	return indicators
}

// checkFinancialRequests flags money-transfer, advance-fee and wire
// phrasing via the financial pattern group.
func checkFinancialRequests(text string, registry *patterns.Registry) []ThreatIndicator {
	var indicators []ThreatIndicator
	for _, m := range registry.FindAll(text, patterns.CategoryFinancialRequest) {
		indicators = append(indicators, ThreatIndicator{
			Category:    CategoryFinancialRequest,
			Description: m.Pattern.Description,
			Severity:    SeverityFromScore(m.Pattern.Severity),
			MatchedText: truncate(m.Matched, 60),
			Confidence:  m.Pattern.Confidence,
		})
	}
	return indicators
}

// catalogCategoryLabel renders a registry category as a human-readable
// indicator category ("delivery_scam" -> "Delivery Scam").
func catalogCategoryLabel(cat patterns.Category) string {
	words := strings.Split(string(cat), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
