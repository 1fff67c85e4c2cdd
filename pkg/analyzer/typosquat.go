package analyzer

import (
	"fmt"
	"strings"
)

// Suffix words that turn a legitimate brand mention into a lure domain.
var suspiciousAdditions = []string{
	"secure", "login", "verify", "update", "account", "support", "help", "service",
}

// detectTyposquat reports near-miss spellings of monitored brand names.
// It checks the registrable label against each brand for single-character
// edits (missing, swapped, extra, substituted) and for brand+suffix
// combinations, falling back to an edit-distance check for anything the
// enumerated edits miss. A non-empty return describes the match.
func detectTyposquat(domain string, lex *Lexicon) string {
	label := registrableLabel(domain)
	if label == "" {
		return ""
	}

	for _, brand := range lex.BrandTargets {
		if brand == label {
			continue
		}

		// Missing character
		for i := 0; i < len(brand); i++ {
			if brand[:i]+brand[i+1:] == label {
				return fmt.Sprintf("Possible typosquatting of '%s' (missing character)", brand)
			}
		}

		// Swapped adjacent characters
		for i := 0; i+1 < len(brand); i++ {
			swapped := brand[:i] + string(brand[i+1]) + string(brand[i]) + brand[i+2:]
			if swapped == label {
				return fmt.Sprintf("Possible typosquatting of '%s' (swapped characters)", brand)
			}
		}

		// Extra character
		for i := 0; i < len(label); i++ {
			if label[:i]+label[i+1:] == brand {
				return fmt.Sprintf("Possible typosquatting of '%s' (extra character)", brand)
			}
		}

		// Common character substitutions
		for _, sub := range [][2]string{{"o", "0"}, {"l", "1"}, {"i", "1"}, {"s", "5"}, {"a", "4"}} {
			if strings.ReplaceAll(brand, sub[0], sub[1]) == label ||
				strings.ReplaceAll(brand, sub[1], sub[0]) == label {
				return fmt.Sprintf("Possible typosquatting of '%s' (character substitution)", brand)
			}
		}

		// Brand with a suspicious addition ("mpesa-secure", "kcbverify")
		if strings.Contains(label, brand) && label != brand {
			for _, addition := range suspiciousAdditions {
				if strings.Contains(label, addition) {
					return fmt.Sprintf("Suspicious domain combining '%s' with '%s'", brand, addition)
				}
			}
		}

		// Edit-distance backstop for multi-edit lookalikes of longer brands
		if len(brand) >= 6 && len(label) >= 4 {
			if d := editDistance(brand, label); d > 0 && d <= 2 {
				canonical := lex.BrandDomains[brand]
				if canonical != "" && !strings.HasSuffix(domain, canonical) {
					return fmt.Sprintf("Possible typosquatting of '%s' (%d edits from %s)", brand, d, canonical)
				}
			}
		}
	}

	return ""
}

// registrableLabel returns the label left of the public suffix, skipping a
// leading www. "www.kcbgroup.com" -> "kcbgroup".
func registrableLabel(domain string) string {
	host := strings.ToLower(domain)
	host = strings.TrimPrefix(host, "www.")
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	idx := len(labels) - 2
	// Two-level public suffixes like .co.ke shift the registrable label.
	if idx > 0 {
		switch labels[idx] {
		case "co", "go", "or", "ac", "ne", "com", "org":
			if len(labels[len(labels)-1]) == 2 {
				idx--
			}
		}
	}
	return labels[idx]
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}
