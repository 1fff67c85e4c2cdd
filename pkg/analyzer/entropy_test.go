package analyzer

import (
	"math"
	"testing"
)

func TestShannonEntropy(t *testing.T) {
	if got := ShannonEntropy(""); got != 0 {
		t.Errorf("entropy of empty string = %f, want 0", got)
	}
	if got := ShannonEntropy("aaaaaaaa"); got != 0 {
		t.Errorf("entropy of single-symbol string = %f, want 0", got)
	}

	// n equiprobable symbols must yield log2(n) bits.
	cases := []struct {
		s    string
		want float64
	}{
		{"ab", 1},
		{"abcd", 2},
		{"abcdefgh", 3},
	}
	for _, tc := range cases {
		got := ShannonEntropy(tc.s)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("entropy(%q) = %f, want %f", tc.s, got, tc.want)
		}
	}

	// More symbols means more entropy.
	if ShannonEntropy("google") >= ShannonEntropy("xk7qz9mw2v") {
		t.Error("random-looking string should carry more entropy than a word")
	}
}

func TestEntropyBand(t *testing.T) {
	cases := []struct {
		entropy float64
		want    string
	}{
		{1.0, "low"},
		{2.5, "normal"},
		{3.0, "normal"},
		{3.5, "normal"},
		{3.6, "high"},
	}
	for _, tc := range cases {
		if got := EntropyBand(tc.entropy); got != tc.want {
			t.Errorf("EntropyBand(%f) = %q, want %q", tc.entropy, got, tc.want)
		}
	}
}

func TestIsHighEntropy(t *testing.T) {
	if isHighEntropy("ab12") {
		t.Error("short strings should never flag as high entropy")
	}
	if isHighEntropy("kcbgroup") {
		t.Error("normal domain label flagged as high entropy")
	}
	if !isHighEntropy("x7k2mq9zw4vt8rn3") {
		t.Error("random string not flagged as high entropy")
	}
}

func TestShannonEntropyRepeatable(t *testing.T) {
	// Float summation must run in a fixed order; otherwise repeated
	// analyses of identical content drift in the last ulp.
	const text = "URGENT: verify your M-PESA PIN at http://mpesa-verify.tk within 24 hours!"
	first := ShannonEntropy(text)
	for i := 0; i < 200; i++ {
		if got := ShannonEntropy(text); got != first {
			t.Fatalf("run %d: entropy %v != %v", i, got, first)
		}
	}

	words := []string{"verify", "your", "pin", "immediately", "to", "restore", "access"}
	firstWL := wordLengthEntropy(words)
	for i := 0; i < 200; i++ {
		if got := wordLengthEntropy(words); got != firstWL {
			t.Fatalf("run %d: word length entropy %v != %v", i, got, firstWL)
		}
	}
}
