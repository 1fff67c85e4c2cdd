package analyzer

import (
	"strings"
	"testing"

	"github.com/phishguard/phishguard/pkg/patterns"
)

func TestCheckUrgency(t *testing.T) {
	lex := DefaultLexicon()

	inds := checkUrgency("URGENT ACTION REQUIRED: verify now, only 2 hours left", lex)
	if len(inds) == 0 {
		t.Fatal("no urgency indicators for pressure-laden text")
	}

	var sawCritical, sawTimePressure bool
	for _, ind := range inds {
		if ind.Category == CategoryUrgency && ind.Severity == SeverityCritical {
			sawCritical = true
		}
		if ind.Category == CategoryTimePressure {
			sawTimePressure = true
		}
	}
	if !sawCritical {
		t.Error("'urgent action required' should produce a critical urgency indicator")
	}
	if !sawTimePressure {
		t.Error("'2 hours left' should produce a time pressure indicator")
	}

	if inds := checkUrgency("Thanks for the meeting notes, see you Thursday.", lex); len(inds) != 0 {
		t.Errorf("benign text produced %d urgency indicators", len(inds))
	}
}

func TestCheckCredentials(t *testing.T) {
	lex := DefaultLexicon()

	inds := checkCredentials("Please verify your M-PESA PIN to continue", lex)
	if len(inds) == 0 {
		t.Fatal("PIN request not detected")
	}
	if inds[0].Severity != SeverityCritical {
		t.Errorf("PIN request severity = %s, want critical", inds[0].Severity)
	}
	if inds[0].Confidence != 0.95 {
		t.Errorf("critical credential confidence = %f, want 0.95", inds[0].Confidence)
	}

	// Benign mention of an account statement is not a credential request.
	if inds := checkCredentials("Your KCB account statement for May 2025 is ready.", lex); len(inds) != 0 {
		t.Errorf("account statement flagged as credential request: %+v", inds)
	}
}

func TestCheckThreats(t *testing.T) {
	lex := DefaultLexicon()

	inds := checkThreats("Your account will be permanently suspended unless you respond", lex)
	if len(inds) == 0 {
		t.Fatal("suspension threat not detected")
	}
	if inds[0].Severity != SeverityCritical {
		t.Errorf("suspension threat severity = %s, want critical", inds[0].Severity)
	}

	if inds := checkThreats("The quarterly report is attached.", lex); len(inds) != 0 {
		t.Errorf("benign text produced %d threat indicators", len(inds))
	}
}

func TestCheckRegionalTargets(t *testing.T) {
	lex := DefaultLexicon()

	t.Run("mention alone is medium", func(t *testing.T) {
		inds := checkRegionalTargets("Pay via the Lipa na M-Pesa till at the shop", lex)
		if len(inds) != 1 {
			t.Fatalf("got %d indicators, want 1 (one per service group)", len(inds))
		}
		if inds[0].Severity != SeverityMedium {
			t.Errorf("severity = %s, want medium without credential request", inds[0].Severity)
		}
		if !strings.HasPrefix(inds[0].Category, "Regional Target (") {
			t.Errorf("unexpected category %q", inds[0].Category)
		}
	})

	t.Run("escalates with credential request", func(t *testing.T) {
		inds := checkRegionalTargets("M-PESA alert: verify your PIN now", lex)
		if len(inds) == 0 {
			t.Fatal("no regional indicator")
		}
		if inds[0].Severity != SeverityCritical {
			t.Errorf("severity = %s, want critical when paired with credential request", inds[0].Severity)
		}
	})

	t.Run("deterministic group order", func(t *testing.T) {
		text := "safaricom mpesa kra equity bank airtel money"
		first := checkRegionalTargets(text, lex)
		for i := 0; i < 5; i++ {
			again := checkRegionalTargets(text, lex)
			if len(again) != len(first) {
				t.Fatalf("indicator count changed between runs: %d vs %d", len(again), len(first))
			}
			for j := range again {
				if again[j].Category != first[j].Category {
					t.Fatalf("indicator order changed between runs at %d: %q vs %q", j, again[j].Category, first[j].Category)
				}
			}
		}
	})
}

func TestCheckSuspiciousPatterns(t *testing.T) {
	registry := patterns.Get()

	inds := checkSuspiciousPatterns(
		"Congratulations! You have won Ksh 100,000. Dear customer, click here to claim.",
		ContentTypeSMS, registry,
	)
	if len(inds) == 0 {
		t.Fatal("scam catalogue found nothing in prize-scam text")
	}

	var sawReward bool
	for _, ind := range inds {
		if ind.Category == "Reward Scam" {
			sawReward = true
		}
		if ind.MatchedText == "" {
			t.Errorf("indicator %q missing matched text", ind.Category)
		}
	}
	if !sawReward {
		t.Error("prize text should match the reward scam group")
	}
}

func TestCheckFinancialRequests(t *testing.T) {
	registry := patterns.Get()

	inds := checkFinancialRequests("To claim your prize, pay a processing fee of Ksh 500", registry)
	if len(inds) == 0 {
		t.Fatal("advance-fee phrasing not detected")
	}
	for _, ind := range inds {
		if ind.Category != CategoryFinancialRequest {
			t.Errorf("category = %q, want %q", ind.Category, CategoryFinancialRequest)
		}
	}
}

func TestCheckLinkMismatch(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		inds := checkLinkMismatch("Click [www.kcbgroup.com](http://evil.tk/login) to continue")
		if len(inds) != 1 {
			t.Fatalf("got %d indicators, want 1", len(inds))
		}
		if inds[0].Severity != SeverityCritical || inds[0].Confidence != 0.95 {
			t.Errorf("mismatch should be critical at 0.95, got %s/%f", inds[0].Severity, inds[0].Confidence)
		}
	})

	t.Run("html anchor", func(t *testing.T) {
		inds := checkLinkMismatch(`<a href="http://198.51.100.7/verify">https://equitybankgroup.com</a>`)
		if len(inds) != 1 {
			t.Fatalf("got %d indicators, want 1", len(inds))
		}
	})

	t.Run("matching link is fine", func(t *testing.T) {
		inds := checkLinkMismatch("[www.kcbgroup.com](https://www.kcbgroup.com/rates)")
		if len(inds) != 0 {
			t.Errorf("consistent link flagged: %+v", inds)
		}
	})

	t.Run("plain text anchor is fine", func(t *testing.T) {
		inds := checkLinkMismatch("[our rates page](https://www.kcbgroup.com/rates)")
		if len(inds) != 0 {
			t.Errorf("non-URL visible text flagged: %+v", inds)
		}
	})
}

func TestCheckTextEntropy(t *testing.T) {
	if inds := checkTextEntropy("Hi John, lunch at noon tomorrow works for me.", ContentTypeEmail); len(inds) != 0 {
		t.Errorf("natural text flagged as random: %+v", inds)
	}

	inds := checkTextEntropy("Your code ref zX9qK2mW7vB4tR8nJ5pL is attached", ContentTypeSMS)
	if len(inds) != 1 {
		t.Fatalf("got %d indicators for generated token, want 1", len(inds))
	}
	if inds[0].Category != CategoryRandomContent {
		t.Errorf("category = %q, want %q", inds[0].Category, CategoryRandomContent)
	}

	// URL scans skip body entropy; analyzeURL owns address randomness.
	if inds := checkTextEntropy("zX9qK2mW7vB4tR8n", ContentTypeURL); len(inds) != 0 {
		t.Errorf("URL content type should skip text entropy, got %+v", inds)
	}
}
