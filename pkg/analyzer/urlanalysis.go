package analyzer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Indicator categories produced by the address analysis modules.
const (
	CategorySuspiciousURL       = "Suspicious URL"
	CategoryURLShortener        = "URL Shortener"
	CategorySuspiciousTLD       = "Suspicious TLD"
	CategoryHomograph           = "Homograph Attack"
	CategoryTyposquat           = "Typosquatting"
	CategoryDomainSpoofing      = "Domain Spoofing"
	CategorySuspiciousPath      = "Suspicious Path"
	CategorySuspiciousDomain    = "Suspicious Domain"
	CategorySuspiciousStructure = "Suspicious Structure"
)

var suspiciousPathPatterns = []struct {
	re   *regexp.Regexp
	desc string
}{
	{regexp.MustCompile(`/login`), "Login page in URL"},
	{regexp.MustCompile(`/verify`), "Verification page"},
	{regexp.MustCompile(`/secure`), "Claims to be secure"},
	{regexp.MustCompile(`/account`), "Account-related path"},
	{regexp.MustCompile(`/update`), "Update-related path"},
	{regexp.MustCompile(`/confirm`), "Confirmation path"},
	{regexp.MustCompile(`\.php\?`), "PHP with parameters"},
	{regexp.MustCompile(`/wp-admin`), "WordPress admin path"},
	{regexp.MustCompile(`\.(exe|scr|bat)\b`), "Executable file"},
}

// analyzeURL runs the advanced address checks against a single candidate
// web address. Whitelisted domains short-circuit to no indicators; for
// everything else the module layers structural, lookalike and entropy
// checks. Never raises on malformed input.
func analyzeURL(raw string, lex *Lexicon) []ThreatIndicator {
	var indicators []ThreatIndicator

	normalized := raw
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "http://" + normalized
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return nil
	}
	domain := strings.ToLower(parsed.Hostname())
	if domain == "" {
		return nil
	}
	path := strings.ToLower(parsed.EscapedPath())
	if unescaped, uerr := url.PathUnescape(path); uerr == nil {
		path = unescaped
	}

	if isWhitelisted(domain, lex) {
		return nil
	}

	if ipHostRe.MatchString(domain) {
		indicators = append(indicators, ThreatIndicator{
			Category:    CategorySuspiciousURL,
			Description: "URL uses IP address instead of domain name",
			Severity:    SeverityHigh,
			MatchedText: domain,
			Confidence:  0.9,
		})
	}

	for _, shortener := range lex.URLShorteners {
		if strings.Contains(domain, shortener) {
			indicators = append(indicators, ThreatIndicator{
				Category:    CategoryURLShortener,
				Description: fmt.Sprintf("Shortened URL detected (%s) - destination unknown", shortener),
				Severity:    SeverityMedium,
				MatchedText: truncate(raw, 80),
				Confidence:  0.7,
			})
			break
		}
	}

	for _, tld := range lex.SuspiciousTLDs {
		if strings.HasSuffix(domain, tld) {
			indicators = append(indicators, ThreatIndicator{
				Category:    CategorySuspiciousTLD,
				Description: fmt.Sprintf("Domain uses suspicious TLD: %s", tld),
				Severity:    SeverityHigh,
				MatchedText: domain,
				Confidence:  0.85,
			})
			break
		}
	}

	if desc := detectHomograph(domain, lex); desc != "" {
		indicators = append(indicators, ThreatIndicator{
			Category:    CategoryHomograph,
			Description: desc,
			Severity:    SeverityCritical,
			MatchedText: domain,
			Confidence:  0.95,
		})
	}

	if desc := detectTyposquat(domain, lex); desc != "" {
		indicators = append(indicators, ThreatIndicator{
			Category:    CategoryTyposquat,
			Description: desc,
			Severity:    SeverityCritical,
			MatchedText: domain,
			Confidence:  0.9,
		})
	}

	if brand, inSubdomain := brandInHost(domain, lex); brand != "" && inSubdomain {
		indicators = append(indicators, ThreatIndicator{
			Category:    CategoryDomainSpoofing,
			Description: fmt.Sprintf("Brand '%s' used in subdomain to appear legitimate", brand),
			Severity:    SeverityHigh,
			MatchedText: domain,
			Confidence:  0.85,
		})
	}

	for _, sp := range suspiciousPathPatterns {
		if sp.re.MatchString(path) {
			indicators = append(indicators, ThreatIndicator{
				Category:    CategorySuspiciousPath,
				Description: sp.desc,
				Severity:    SeverityMedium,
				MatchedText: truncate(path, 50),
				Confidence:  0.6,
			})
		}
	}

	if len(domain) > 15 && isHighEntropy(strings.ReplaceAll(domain, ".", "")) {
		indicators = append(indicators, ThreatIndicator{
			Category:    CategorySuspiciousDomain,
			Description: "Domain appears randomly generated",
			Severity:    SeverityMedium,
			MatchedText: domain,
			Confidence:  0.7,
		})
	}

	if levels := strings.Count(domain, "."); levels >= 3 {
		indicators = append(indicators, ThreatIndicator{
			Category:    CategorySuspiciousStructure,
			Description: fmt.Sprintf("Excessive subdomains (%d levels)", levels+1),
			Severity:    SeverityMedium,
			MatchedText: domain,
			Confidence:  0.65,
		})
	}

	for _, legit := range lex.LegitimateDomains {
		name := strings.SplitN(legit, ".", 2)[0]
		if len(name) >= 4 && strings.Contains(domain, name) && !strings.Contains(domain, legit) {
			indicators = append(indicators, ThreatIndicator{
				Category:    CategoryDomainSpoofing,
				Description: fmt.Sprintf("Possible spoofed domain mimicking %s", legit),
				Severity:    SeverityCritical,
				MatchedText: domain,
				Confidence:  0.9,
			})
			break
		}
	}

	return indicators
}

// isWhitelisted reports whether the host is, or is a subdomain of, a known
// legitimate domain.
func isWhitelisted(domain string, lex *Lexicon) bool {
	host := strings.TrimPrefix(domain, "www.")
	for _, legit := range lex.LegitimateDomains {
		if host == legit || strings.HasSuffix(host, "."+legit) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
