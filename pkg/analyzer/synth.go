package analyzer

import (
	"math"

	"github.com/phishguard/phishguard/pkg/ml"
)

// Hand-tuned per-feature gaussian distributions used when no labeled
// dataset is available. One (mean, stddev) pair per class; count-like
// features clamp at zero. Values were picked to mirror the separation a
// real labeled corpus exhibits on these features.

func urlFeatureSpecs() []ml.FeatureSpec {
	return []ml.FeatureSpec{
		{Name: "url_length", SafeMean: 30, SafeStd: 10, PhishMean: 55, PhishStd: 20, NonNegative: true},
		{Name: "domain_length", SafeMean: 12, SafeStd: 4, PhishMean: 20, PhishStd: 7, NonNegative: true},
		{Name: "path_length", SafeMean: 8, SafeStd: 6, PhishMean: 18, PhishStd: 10, NonNegative: true},
		{Name: "query_length", SafeMean: 2, SafeStd: 4, PhishMean: 8, PhishStd: 10, NonNegative: true},
		{Name: "num_dots", SafeMean: 1.5, SafeStd: 0.7, PhishMean: 3, PhishStd: 1.2, NonNegative: true},
		{Name: "num_hyphens", SafeMean: 0.2, SafeStd: 0.5, PhishMean: 1.5, PhishStd: 1.2, NonNegative: true},
		{Name: "num_underscores", SafeMean: 0.1, SafeStd: 0.3, PhishMean: 0.5, PhishStd: 0.8, NonNegative: true},
		{Name: "num_slashes", SafeMean: 3, SafeStd: 1, PhishMean: 4.5, PhishStd: 1.5, NonNegative: true},
		{Name: "num_digits", SafeMean: 1, SafeStd: 1.5, PhishMean: 5, PhishStd: 4, NonNegative: true},
		{Name: "num_special_chars", SafeMean: 0.3, SafeStd: 0.6, PhishMean: 2, PhishStd: 2, NonNegative: true},
		{Name: "num_query_params", SafeMean: 0.3, SafeStd: 0.7, PhishMean: 1.5, PhishStd: 1.5, NonNegative: true},
		{Name: "num_fragments", SafeMean: 0.1, SafeStd: 0.3, PhishMean: 0.2, PhishStd: 0.4, NonNegative: true},
		{Name: "num_percent_encoded", SafeMean: 0.05, SafeStd: 0.2, PhishMean: 1, PhishStd: 1.5, NonNegative: true},
		{Name: "digit_ratio_domain", SafeMean: 0.02, SafeStd: 0.04, PhishMean: 0.15, PhishStd: 0.12, NonNegative: true},
		{Name: "digit_ratio_url", SafeMean: 0.03, SafeStd: 0.04, PhishMean: 0.12, PhishStd: 0.08, NonNegative: true},
		{Name: "special_char_ratio", SafeMean: 0.01, SafeStd: 0.01, PhishMean: 0.04, PhishStd: 0.03, NonNegative: true},
		{Name: "uses_https", SafeMean: 0.8, SafeStd: 0.4, PhishMean: 0.25, PhishStd: 0.43, NonNegative: true},
		{Name: "has_ip_host", SafeMean: 0.01, SafeStd: 0.1, PhishMean: 0.15, PhishStd: 0.35, NonNegative: true},
		{Name: "has_port", SafeMean: 0.02, SafeStd: 0.14, PhishMean: 0.1, PhishStd: 0.3, NonNegative: true},
		{Name: "has_at_symbol", SafeMean: 0.01, SafeStd: 0.1, PhishMean: 0.08, PhishStd: 0.27, NonNegative: true},
		{Name: "has_double_slash_path", SafeMean: 0.01, SafeStd: 0.1, PhishMean: 0.08, PhishStd: 0.27, NonNegative: true},
		{Name: "has_www_prefix", SafeMean: 0.5, SafeStd: 0.5, PhishMean: 0.2, PhishStd: 0.4, NonNegative: true},
		{Name: "subdomain_depth", SafeMean: 0.5, SafeStd: 0.6, PhishMean: 1.5, PhishStd: 1, NonNegative: true},
		{Name: "tld_length", SafeMean: 2.8, SafeStd: 0.4, PhishMean: 2.6, PhishStd: 0.8, NonNegative: true},
		{Name: "suspicious_tld", SafeMean: 0.02, SafeStd: 0.14, PhishMean: 0.55, PhishStd: 0.5, NonNegative: true},
		{Name: "domain_entropy", SafeMean: 2.8, SafeStd: 0.4, PhishMean: 3.4, PhishStd: 0.5, NonNegative: true},
		{Name: "path_entropy", SafeMean: 2.5, SafeStd: 0.8, PhishMean: 3.2, PhishStd: 0.8, NonNegative: true},
		{Name: "url_entropy", SafeMean: 3.9, SafeStd: 0.3, PhishMean: 4.4, PhishStd: 0.4, NonNegative: true},
		{Name: "has_brand_name", SafeMean: 0.1, SafeStd: 0.3, PhishMean: 0.5, PhishStd: 0.5, NonNegative: true},
		{Name: "brand_in_subdomain", SafeMean: 0.01, SafeStd: 0.1, PhishMean: 0.3, PhishStd: 0.46, NonNegative: true},
		{Name: "sensitive_path_keywords", SafeMean: 0.1, SafeStd: 0.3, PhishMean: 1.2, PhishStd: 1, NonNegative: true},
		{Name: "is_shortener", SafeMean: 0.02, SafeStd: 0.14, PhishMean: 0.25, PhishStd: 0.43, NonNegative: true},
		{Name: "avg_path_token_length", SafeMean: 5, SafeStd: 2, PhishMean: 7, PhishStd: 3, NonNegative: true},
		{Name: "num_domain_hyphens", SafeMean: 0.1, SafeStd: 0.3, PhishMean: 1, PhishStd: 1, NonNegative: true},
		{Name: "longest_token_length", SafeMean: 9, SafeStd: 3, PhishMean: 15, PhishStd: 6, NonNegative: true},
	}
}

func textFeatureSpecs() []ml.FeatureSpec {
	return []ml.FeatureSpec{
		{Name: "char_count", SafeMean: 220, SafeStd: 120, PhishMean: 280, PhishStd: 140, NonNegative: true},
		{Name: "word_count", SafeMean: 40, SafeStd: 20, PhishMean: 50, PhishStd: 25, NonNegative: true},
		{Name: "sentence_count", SafeMean: 3.5, SafeStd: 2, PhishMean: 4.5, PhishStd: 2.5, NonNegative: true},
		{Name: "avg_word_length", SafeMean: 4.8, SafeStd: 0.5, PhishMean: 5.0, PhishStd: 0.6, NonNegative: true},
		{Name: "max_word_length", SafeMean: 10, SafeStd: 3, PhishMean: 14, PhishStd: 6, NonNegative: true},
		{Name: "avg_sentence_length", SafeMean: 12, SafeStd: 4, PhishMean: 13, PhishStd: 5, NonNegative: true},
		{Name: "uppercase_ratio", SafeMean: 0.05, SafeStd: 0.03, PhishMean: 0.14, PhishStd: 0.08, NonNegative: true},
		{Name: "digit_ratio", SafeMean: 0.02, SafeStd: 0.02, PhishMean: 0.06, PhishStd: 0.04, NonNegative: true},
		{Name: "special_char_ratio", SafeMean: 0.03, SafeStd: 0.02, PhishMean: 0.06, PhishStd: 0.03, NonNegative: true},
		{Name: "whitespace_ratio", SafeMean: 0.16, SafeStd: 0.03, PhishMean: 0.15, PhishStd: 0.03, NonNegative: true},
		{Name: "exclamation_count", SafeMean: 0.3, SafeStd: 0.6, PhishMean: 2.5, PhishStd: 2, NonNegative: true},
		{Name: "question_count", SafeMean: 0.4, SafeStd: 0.7, PhishMean: 0.8, PhishStd: 1, NonNegative: true},
		{Name: "ellipsis_count", SafeMean: 0.1, SafeStd: 0.3, PhishMean: 0.5, PhishStd: 0.8, NonNegative: true},
		{Name: "currency_symbol_count", SafeMean: 0.2, SafeStd: 0.5, PhishMean: 1.8, PhishStd: 1.5, NonNegative: true},
		{Name: "urgency_density", SafeMean: 0.002, SafeStd: 0.005, PhishMean: 0.06, PhishStd: 0.035, NonNegative: true},
		{Name: "credential_density", SafeMean: 0.001, SafeStd: 0.004, PhishMean: 0.05, PhishStd: 0.03, NonNegative: true},
		{Name: "threat_density", SafeMean: 0.001, SafeStd: 0.004, PhishMean: 0.035, PhishStd: 0.025, NonNegative: true},
		{Name: "reward_density", SafeMean: 0.002, SafeStd: 0.005, PhishMean: 0.045, PhishStd: 0.03, NonNegative: true},
		{Name: "url_count", SafeMean: 0.4, SafeStd: 0.7, PhishMean: 1.6, PhishStd: 1.2, NonNegative: true},
		{Name: "has_ip_url", SafeMean: 0.005, SafeStd: 0.07, PhishMean: 0.12, PhishStd: 0.32, NonNegative: true},
		{Name: "phone_count", SafeMean: 0.2, SafeStd: 0.5, PhishMean: 0.9, PhishStd: 1, NonNegative: true},
		{Name: "email_count", SafeMean: 0.3, SafeStd: 0.6, PhishMean: 0.7, PhishStd: 0.9, NonNegative: true},
		{Name: "has_greeting", SafeMean: 0.6, SafeStd: 0.49, PhishMean: 0.5, PhishStd: 0.5, NonNegative: true},
		{Name: "has_generic_greeting", SafeMean: 0.03, SafeStd: 0.17, PhishMean: 0.45, PhishStd: 0.5, NonNegative: true},
		{Name: "has_signature", SafeMean: 0.5, SafeStd: 0.5, PhishMean: 0.25, PhishStd: 0.43, NonNegative: true},
		{Name: "has_call_to_action", SafeMean: 0.08, SafeStd: 0.27, PhishMean: 0.7, PhishStd: 0.46, NonNegative: true},
		{Name: "text_entropy", SafeMean: 4.1, SafeStd: 0.15, PhishMean: 4.25, PhishStd: 0.2, NonNegative: true},
		{Name: "word_length_entropy", SafeMean: 2.8, SafeStd: 0.3, PhishMean: 2.9, PhishStd: 0.3, NonNegative: true},
		{Name: "vocab_richness", SafeMean: 0.8, SafeStd: 0.1, PhishMean: 0.75, PhishStd: 0.1, NonNegative: true},
		{Name: "is_sms", SafeMean: 0.3, SafeStd: 0.46, PhishMean: 0.4, PhishStd: 0.49, NonNegative: true},
		{Name: "is_email", SafeMean: 0.7, SafeStd: 0.46, PhishMean: 0.6, PhishStd: 0.49, NonNegative: true},
	}
}

// signalVector is the sub-vector of text features that actually encodes
// scam signal: densities, pressure punctuation and structural lures.
// Counts are log-damped so one extreme value cannot dominate the cosine.
// Benign text yields a near-zero vector, which the similarity index
// rejects outright instead of matching noise.
func signalVector(text string, contentType ContentType, lex *Lexicon) []float64 {
	fv := ExtractTextFeatures(text, contentType, lex)
	return []float64{
		fv.Get("urgency_density") * 10,
		fv.Get("credential_density") * 10,
		fv.Get("threat_density") * 10,
		fv.Get("reward_density") * 10,
		fv.Get("uppercase_ratio"),
		math.Log1p(fv.Get("exclamation_count")),
		math.Log1p(fv.Get("currency_symbol_count")),
		math.Log1p(fv.Get("url_count")),
		fv.Get("has_ip_url"),
		math.Log1p(fv.Get("phone_count")),
		fv.Get("has_generic_greeting"),
		fv.Get("has_call_to_action"),
	}
}
