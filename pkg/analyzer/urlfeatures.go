package analyzer

import (
	"net/url"
	"regexp"
	"strings"
)

// URLFeatureNames is the fixed lexical feature schema for web addresses.
var URLFeatureNames = []string{
	"url_length",
	"domain_length",
	"path_length",
	"query_length",
	"num_dots",
	"num_hyphens",
	"num_underscores",
	"num_slashes",
	"num_digits",
	"num_special_chars",
	"num_query_params",
	"num_fragments",
	"num_percent_encoded",
	"digit_ratio_domain",
	"digit_ratio_url",
	"special_char_ratio",
	"uses_https",
	"has_ip_host",
	"has_port",
	"has_at_symbol",
	"has_double_slash_path",
	"has_www_prefix",
	"subdomain_depth",
	"tld_length",
	"suspicious_tld",
	"domain_entropy",
	"path_entropy",
	"url_entropy",
	"has_brand_name",
	"brand_in_subdomain",
	"sensitive_path_keywords",
	"is_shortener",
	"avg_path_token_length",
	"num_domain_hyphens",
	"longest_token_length",
}

var (
	ipHostRe         = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	percentEncodedRe = regexp.MustCompile(`%[0-9a-fA-F]{2}`)
	urlSpecialRe     = regexp.MustCompile(`[^a-zA-Z0-9./:\-_?=&#]`)
)

// ExtractURLFeatures computes the lexical feature vector for a candidate
// web address. Pure function of the string; never raises on malformed
// input, unparsable segments simply contribute their defaults.
func ExtractURLFeatures(raw string, lex *Lexicon) *FeatureVector {
	fv := newFeatureVector(URLFeatureNames)
	if raw == "" {
		return fv
	}

	normalized := raw
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "http://" + normalized
	}

	var (
		host, path, query, fragment string
		hasPort                     bool
	)
	if parsed, err := url.Parse(normalized); err == nil {
		host = strings.ToLower(parsed.Hostname())
		hasPort = parsed.Port() != ""
		path = parsed.EscapedPath()
		query = parsed.RawQuery
		fragment = parsed.Fragment
	} else {
		// Crude split fallback: strip scheme, take up to the first slash.
		rest := strings.TrimPrefix(strings.TrimPrefix(normalized, "https://"), "http://")
		if i := strings.IndexAny(rest, "/?#"); i >= 0 {
			host, path = strings.ToLower(rest[:i]), rest[i:]
		} else {
			host = strings.ToLower(rest)
		}
		if i := strings.Index(host, ":"); i >= 0 {
			host, hasPort = host[:i], true
		}
	}

	fv.set("url_length", float64(len(raw)))
	fv.set("domain_length", float64(len(host)))
	fv.set("path_length", float64(len(path)))
	fv.set("query_length", float64(len(query)))

	fv.set("num_dots", float64(strings.Count(raw, ".")))
	fv.set("num_hyphens", float64(strings.Count(raw, "-")))
	fv.set("num_underscores", float64(strings.Count(raw, "_")))
	fv.set("num_slashes", float64(strings.Count(raw, "/")))
	fv.set("num_digits", float64(countDigits(raw)))
	fv.set("num_special_chars", float64(len(urlSpecialRe.FindAllString(raw, -1))))
	if query != "" {
		fv.set("num_query_params", float64(strings.Count(query, "&")+1))
	}
	if fragment != "" {
		fv.set("num_fragments", 1)
	}
	fv.set("num_percent_encoded", float64(len(percentEncodedRe.FindAllString(raw, -1))))

	if len(host) > 0 {
		fv.set("digit_ratio_domain", float64(countDigits(host))/float64(len(host)))
	}
	fv.set("digit_ratio_url", float64(countDigits(raw))/float64(len(raw)))
	fv.set("special_char_ratio", float64(len(urlSpecialRe.FindAllString(raw, -1)))/float64(len(raw)))

	fv.setBool("uses_https", strings.HasPrefix(raw, "https://"))
	fv.setBool("has_ip_host", ipHostRe.MatchString(host))
	fv.setBool("has_port", hasPort)
	fv.setBool("has_at_symbol", strings.Contains(raw, "@"))
	// A second "//" after the scheme hides the real destination.
	fv.setBool("has_double_slash_path", strings.Contains(path, "//"))
	fv.setBool("has_www_prefix", strings.HasPrefix(host, "www."))

	labels := strings.Split(host, ".")
	if len(labels) > 2 {
		fv.set("subdomain_depth", float64(len(labels)-2))
	}
	tld := ""
	if len(labels) >= 2 {
		tld = labels[len(labels)-1]
	}
	fv.set("tld_length", float64(len(tld)))
	fv.setBool("suspicious_tld", hasSuspiciousTLD(host, lex))

	fv.set("domain_entropy", ShannonEntropy(strings.ReplaceAll(host, ".", "")))
	fv.set("path_entropy", ShannonEntropy(path))
	fv.set("url_entropy", ShannonEntropy(raw))

	brand, inSubdomain := brandInHost(host, lex)
	fv.setBool("has_brand_name", brand != "")
	fv.setBool("brand_in_subdomain", inSubdomain)

	lowerPath := strings.ToLower(path)
	sensitive := 0
	for _, kw := range lex.SensitivePathKeywords {
		if strings.Contains(lowerPath, kw) {
			sensitive++
		}
	}
	fv.set("sensitive_path_keywords", float64(sensitive))
	fv.setBool("is_shortener", isShortener(host, lex))

	tokens := splitPathTokens(path)
	if len(tokens) > 0 {
		total := 0
		for _, tok := range tokens {
			total += len(tok)
		}
		fv.set("avg_path_token_length", float64(total)/float64(len(tokens)))
	}
	fv.set("num_domain_hyphens", float64(strings.Count(host, "-")))
	fv.set("longest_token_length", float64(longestToken(host, path)))

	return fv
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func hasSuspiciousTLD(host string, lex *Lexicon) bool {
	for _, tld := range lex.SuspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			return true
		}
	}
	return false
}

func isShortener(host string, lex *Lexicon) bool {
	for _, shortener := range lex.URLShorteners {
		if host == shortener || strings.HasSuffix(host, "."+shortener) {
			return true
		}
	}
	return false
}

// brandInHost returns the first monitored brand found in the host and
// whether it appears only in a subdomain label, not the registrable base.
func brandInHost(host string, lex *Lexicon) (string, bool) {
	labels := strings.Split(host, ".")
	base := host
	if len(labels) >= 2 {
		base = labels[len(labels)-2] + "." + labels[len(labels)-1]
	}
	for _, brand := range lex.BrandTargets {
		if strings.Contains(host, brand) {
			return brand, !strings.Contains(base, brand)
		}
	}
	return "", false
}

func splitPathTokens(path string) []string {
	var tokens []string
	for _, tok := range strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '-' || r == '_' || r == '.'
	}) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func longestToken(host, path string) int {
	longest := 0
	for _, tok := range strings.FieldsFunc(host+path, func(r rune) bool {
		return r == '/' || r == '-' || r == '_' || r == '.' || r == '?' || r == '=' || r == '&'
	}) {
		if len(tok) > longest {
			longest = len(tok)
		}
	}
	return longest
}
