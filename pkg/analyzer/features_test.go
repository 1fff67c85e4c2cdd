package analyzer

import (
	"math"
	"testing"
)

func TestExtractURLFeatures_Schema(t *testing.T) {
	lex := DefaultLexicon()
	fv := ExtractURLFeatures("https://www.kcbgroup.com/rates", lex)

	if fv.Len() != len(URLFeatureNames) {
		t.Fatalf("schema size = %d, want %d", fv.Len(), len(URLFeatureNames))
	}
	for i, name := range fv.Names() {
		if name != URLFeatureNames[i] {
			t.Errorf("feature %d = %q, want %q", i, name, URLFeatureNames[i])
		}
	}
	if len(fv.Values()) != fv.Len() {
		t.Error("values not aligned with names")
	}
}

func TestExtractURLFeatures_Values(t *testing.T) {
	lex := DefaultLexicon()
	fv := ExtractURLFeatures("https://www.kcbgroup.com/rates?year=2025", lex)

	cases := map[string]float64{
		"uses_https":      1,
		"has_www_prefix":  1,
		"has_ip_host":     0,
		"has_at_symbol":   0,
		"is_shortener":    0,
		"suspicious_tld":  0,
		"num_query_params": 1,
		"subdomain_depth": 1, // www counts as a label above the base
		"tld_length":      3,
		"domain_length":   float64(len("www.kcbgroup.com")),
	}
	for name, want := range cases {
		if got := fv.Get(name); got != want {
			t.Errorf("%s = %f, want %f", name, got, want)
		}
	}
}

func TestExtractURLFeatures_SuspiciousAddress(t *testing.T) {
	lex := DefaultLexicon()
	fv := ExtractURLFeatures("http://mpesa.secure-login.tk/verify/account", lex)

	if fv.Get("suspicious_tld") != 1 {
		t.Error(".tk not flagged as suspicious TLD")
	}
	if fv.Get("has_brand_name") != 1 {
		t.Error("brand name in host not detected")
	}
	if fv.Get("brand_in_subdomain") != 1 {
		t.Error("brand confined to a subdomain not detected")
	}
	if fv.Get("sensitive_path_keywords") < 2 {
		t.Errorf("sensitive_path_keywords = %f, want >= 2 (verify, account)", fv.Get("sensitive_path_keywords"))
	}
	if fv.Get("uses_https") != 0 {
		t.Error("plain http counted as https")
	}
}

func TestExtractURLFeatures_IPAndShortener(t *testing.T) {
	lex := DefaultLexicon()

	if fv := ExtractURLFeatures("http://192.168.10.5/login", lex); fv.Get("has_ip_host") != 1 {
		t.Error("IP host not detected")
	}
	if fv := ExtractURLFeatures("https://bit.ly/3xYz", lex); fv.Get("is_shortener") != 1 {
		t.Error("bit.ly not detected as shortener")
	}
}

func TestExtractURLFeatures_Garbage(t *testing.T) {
	lex := DefaultLexicon()

	// Must never panic; unparsable input produces defaults.
	for _, raw := range []string{"", ":::::", "ht!tp://%%%", "....", "a"} {
		fv := ExtractURLFeatures(raw, lex)
		if fv.Len() != len(URLFeatureNames) {
			t.Errorf("schema size changed for %q", raw)
		}
	}
}

func TestExtractTextFeatures_Schema(t *testing.T) {
	lex := DefaultLexicon()
	fv := ExtractTextFeatures("hello", ContentTypeSMS, lex)
	if fv.Len() != len(TextFeatureNames) {
		t.Fatalf("schema size = %d, want %d", fv.Len(), len(TextFeatureNames))
	}
	if fv.Get("is_sms") != 1 || fv.Get("is_email") != 0 {
		t.Error("content kind flags wrong for sms")
	}
}

func TestExtractTextFeatures_Empty(t *testing.T) {
	lex := DefaultLexicon()
	fv := ExtractTextFeatures("", ContentTypeEmail, lex)
	for _, name := range fv.Names() {
		if name == "is_email" {
			continue
		}
		if fv.Get(name) != 0 {
			t.Errorf("%s = %f for empty input, want 0", name, fv.Get(name))
		}
	}
}

func TestExtractTextFeatures_Phishing(t *testing.T) {
	lex := DefaultLexicon()
	text := "URGENT! Your password expires now! Click here to verify your PIN immediately! Send Ksh 500."
	fv := ExtractTextFeatures(text, ContentTypeSMS, lex)

	if fv.Get("urgency_density") == 0 {
		t.Error("urgency keywords not counted")
	}
	if fv.Get("credential_density") == 0 {
		t.Error("credential keywords not counted")
	}
	if fv.Get("exclamation_count") != 3 {
		t.Errorf("exclamation_count = %f, want 3", fv.Get("exclamation_count"))
	}
	if fv.Get("currency_symbol_count") == 0 {
		t.Error("Ksh not counted as currency")
	}
	if fv.Get("has_call_to_action") != 1 {
		t.Error("'click here' not detected")
	}
}

func TestExtractTextFeatures_Benign(t *testing.T) {
	lex := DefaultLexicon()
	text := "Hi John, your KCB account statement for May 2025 is ready. View it on the KCB app or at www.kcbgroup.com"
	fv := ExtractTextFeatures(text, ContentTypeSMS, lex)

	if fv.Get("urgency_density") != 0 {
		t.Errorf("urgency_density = %f, want 0", fv.Get("urgency_density"))
	}
	if fv.Get("credential_density") != 0 {
		t.Errorf("credential_density = %f, want 0", fv.Get("credential_density"))
	}
	if fv.Get("threat_density") != 0 {
		t.Errorf("threat_density = %f, want 0", fv.Get("threat_density"))
	}
	if fv.Get("has_greeting") != 1 {
		t.Error("'Hi John' greeting not detected")
	}
	if fv.Get("has_generic_greeting") != 0 {
		t.Error("personal greeting miscounted as generic")
	}
	if fv.Get("url_count") != 1 {
		t.Errorf("url_count = %f, want 1", fv.Get("url_count"))
	}
	if fv.Get("exclamation_count") != 0 {
		t.Error("no exclamation marks in benign text")
	}
}

func TestExtractTextFeatures_Ratios(t *testing.T) {
	lex := DefaultLexicon()
	fv := ExtractTextFeatures("SOME mixed Text 123", ContentTypeEmail, lex)

	for _, name := range []string{"uppercase_ratio", "digit_ratio", "special_char_ratio", "whitespace_ratio", "vocab_richness"} {
		v := fv.Get(name)
		if v < 0 || v > 1 {
			t.Errorf("%s = %f, want within [0,1]", name, v)
		}
	}
	// SOME = 4 upper, mixed lower, Text 1 upper of 13 letters total.
	want := 5.0 / 13.0
	if math.Abs(fv.Get("uppercase_ratio")-want) > 1e-9 {
		t.Errorf("uppercase_ratio = %f, want %f", fv.Get("uppercase_ratio"), want)
	}
}

func TestKeywordDensity_WholeWordOnly(t *testing.T) {
	// "pin" must not match inside "shopping" or "pineapple".
	if got := countWordOccurrences("shopping for pineapple", "pin"); got != 0 {
		t.Errorf("substring matches counted: %d", got)
	}
	if got := countWordOccurrences("enter your pin. the pin expires", "pin"); got != 2 {
		t.Errorf("got %d whole-word matches, want 2", got)
	}
}
