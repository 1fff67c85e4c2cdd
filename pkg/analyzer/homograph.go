package analyzer

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// detectHomograph reports lookalike-character substitution in a domain.
// It folds the domain through NFKC first so stylistic Unicode variants
// (fullwidth forms, ligatures) collapse to their plain equivalents, then
// maps known confusables onto the latin letters they imitate. A non-empty
// return describes the spoof.
func detectHomograph(domain string, lex *Lexicon) string {
	folded := strings.ToLower(norm.NFKC.String(domain))

	var b strings.Builder
	substituted := false
	for _, r := range folded {
		if mapped, ok := lex.HomographMap[r]; ok {
			b.WriteRune(mapped)
			substituted = true
		} else {
			b.WriteRune(r)
		}
	}

	if substituted {
		normalized := b.String()
		// Digit-for-letter swaps are only meaningful when the normalized
		// form resembles a monitored brand; plain numeric domains are not
		// homographs. Non-ASCII confusables are always reported.
		if containsBrand(normalized, lex) || hasForeignScript(folded) {
			return fmt.Sprintf("Contains lookalike characters: %s -> %s", folded, normalized)
		}
	}

	// Mixed-script hosts with no mapped confusable are still suspect:
	// a latin domain has no business carrying Cyrillic or Greek letters.
	if hasLatin(folded) && hasForeignScript(folded) {
		return "Mixes latin with non-latin script characters"
	}

	return ""
}

func containsBrand(s string, lex *Lexicon) bool {
	for _, brand := range lex.BrandTargets {
		if strings.Contains(s, brand) {
			return true
		}
	}
	return false
}

func hasLatin(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

func hasForeignScript(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) || unicode.Is(unicode.Greek, r) {
			return true
		}
	}
	return false
}
