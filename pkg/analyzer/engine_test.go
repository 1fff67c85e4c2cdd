package analyzer

import (
	"context"
	"reflect"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(Options{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestEngineAnalyze_MpesaSuspensionScam(t *testing.T) {
	engine := newTestEngine(t)

	text := "URGENT: Your M-PESA account has been suspended. Verify your M-PESA PIN immediately at http://mpesa-verify.tk to restore access within 24 hours."
	result := engine.Analyze(context.Background(), text, ContentTypeSMS)

	if result.Classification != ClassificationPhishing {
		t.Errorf("classification = %s, want phishing", result.Classification)
	}
	if result.RiskLevel != RiskCritical {
		t.Errorf("risk = %s, want critical", result.RiskLevel)
	}
	if result.ConfidenceScore < 0.85 {
		t.Errorf("score = %f, want >= 0.85 (multiple critical indicators)", result.ConfidenceScore)
	}

	var sawCredential, sawThreat, sawRegional bool
	for _, ind := range result.ThreatIndicators {
		switch {
		case isCredentialCategory(ind.Category):
			sawCredential = true
		case ind.Category == CategoryThreat:
			sawThreat = true
		case isRegionalCategory(ind.Category):
			sawRegional = true
		}
	}
	if !sawCredential || !sawThreat || !sawRegional {
		t.Errorf("missing expected evidence families: credential=%v threat=%v regional=%v",
			sawCredential, sawThreat, sawRegional)
	}

	if result.Explanation == "" {
		t.Error("explanation missing")
	}
	if len(result.Recommendations) == 0 {
		t.Error("recommendations missing")
	}
	if result.MLFeatures.ModelUsed == "" {
		t.Error("model name missing")
	}
}

func TestEngineAnalyze_BenignBankStatement(t *testing.T) {
	engine := newTestEngine(t)

	text := "Hi John, your KCB account statement for May 2025 is ready. View it on the KCB app or at www.kcbgroup.com"
	result := engine.Analyze(context.Background(), text, ContentTypeSMS)

	if result.Classification != ClassificationSafe {
		t.Errorf("classification = %s (score %f), want safe", result.Classification, result.ConfidenceScore)
	}
	if result.ConfidenceScore >= 0.20 {
		t.Errorf("score = %f, want < 0.20", result.ConfidenceScore)
	}

	// At most the regional bank mention may surface, and only as medium.
	for _, ind := range result.ThreatIndicators {
		if ind.Severity == SeverityCritical || ind.Severity == SeverityHigh {
			t.Errorf("benign text produced strong indicator: %+v", ind)
		}
	}
	if len(result.ThreatIndicators) > 1 {
		t.Errorf("benign text produced %d indicators: %+v", len(result.ThreatIndicators), result.ThreatIndicators)
	}
}

func TestEngineAnalyze_LinkMismatch(t *testing.T) {
	engine := newTestEngine(t)

	text := "Hello, please see [www.kcbgroup.com](http://kcb-secure-update.xyz/login) for your statement."
	result := engine.Analyze(context.Background(), text, ContentTypeEmail)

	if result.Classification != ClassificationPhishing {
		t.Errorf("classification = %s, want phishing", result.Classification)
	}
	if !hasIndicatorCategory(result.ThreatIndicators, CategoryLinkMismatch) {
		t.Errorf("link mismatch not reported: %+v", result.ThreatIndicators)
	}
}

func TestEngineAnalyze_URLContent(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Analyze(context.Background(), "http://mpesa-verify.tk/account/login", ContentTypeURL)

	if result.Classification != ClassificationPhishing {
		t.Errorf("classification = %s (score %f), want phishing", result.Classification, result.ConfidenceScore)
	}
	if len(result.MLFeatures.LexicalFeatures) != len(URLFeatureNames) {
		t.Errorf("lexical feature map has %d entries, want %d", len(result.MLFeatures.LexicalFeatures), len(URLFeatureNames))
	}
	if result.MLFeatures.TextFeatures != nil {
		t.Error("URL scan should not report text features")
	}
	if result.AnalysisDetails.FeaturesExtracted != len(URLFeatureNames) {
		t.Errorf("features_extracted = %d, want %d", result.AnalysisDetails.FeaturesExtracted, len(URLFeatureNames))
	}
	if len(result.AnalysisDetails.URLsFound) != 1 {
		t.Errorf("urls_found = %v, want the scanned address itself", result.AnalysisDetails.URLsFound)
	}
}

func TestEngineAnalyze_Idempotent(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	text := "URGENT: verify your PIN at http://equity-login.xyz within 2 hours or your account will be suspended!"
	first := engine.Analyze(ctx, text, ContentTypeSMS)
	for i := 0; i < 3; i++ {
		again := engine.Analyze(ctx, text, ContentTypeSMS)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed:\nfirst: %+v\nagain: %+v", i+1, first, again)
		}
	}
}

func TestEngineAnalyze_DetailsConsistent(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Analyze(context.Background(), "Dear customer, confirm your identity to avoid account suspension.", ContentTypeEmail)

	d := result.AnalysisDetails
	if d.TotalIndicators != len(result.ThreatIndicators) {
		t.Errorf("total_indicators = %d, indicators = %d", d.TotalIndicators, len(result.ThreatIndicators))
	}
	total := 0
	for _, n := range d.SeverityBreakdown {
		total += n
	}
	if total != d.TotalIndicators {
		t.Errorf("severity breakdown sums to %d, want %d", total, d.TotalIndicators)
	}
	if d.CombinedScore != result.ConfidenceScore {
		t.Errorf("combined_score = %f, confidence_score = %f", d.CombinedScore, result.ConfidenceScore)
	}
	if len(result.ThreatIndicators) > MaxIndicators {
		t.Errorf("%d indicators exceed the cap", len(result.ThreatIndicators))
	}
}

func TestEngineAnalyze_IndicatorsOrdered(t *testing.T) {
	engine := newTestEngine(t)

	text := "URGENT! Dear customer, your account will be suspended. Verify your PIN now at http://203.0.113.9/login to claim your prize of Ksh 50,000!"
	result := engine.Analyze(context.Background(), text, ContentTypeSMS)

	inds := result.ThreatIndicators
	for i := 1; i < len(inds); i++ {
		if inds[i-1].Severity.rank() > inds[i].Severity.rank() {
			t.Fatalf("indicators out of severity order at %d: %s after %s", i, inds[i].Severity, inds[i-1].Severity)
		}
	}
}
