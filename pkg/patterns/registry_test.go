package patterns

import (
	"testing"
)

func TestRegistryInit(t *testing.T) {
	// Get should return a singleton registry
	r1 := Get()
	r2 := Get()

	if r1 != r2 {
		t.Error("Get() should return the same registry instance")
	}
}

func TestRegistryHasPatterns(t *testing.T) {
	r := Get()

	// Verify registry has patterns
	total := r.TotalPatterns()
	if total < 60 {
		t.Errorf("expected at least 60 patterns, got %d", total)
	}

	t.Logf("Registry loaded %d patterns", total)
}

func TestCategoryPatterns(t *testing.T) {
	r := Get()

	testCases := []struct {
		category    Category
		minPatterns int
	}{
		{CategoryCallToAction, 6},
		{CategoryImpersonation, 5},
		{CategoryGreeting, 3},
		{CategoryGrammar, 4},
		{CategoryAccountAlert, 5},
		{CategoryInvoiceScam, 4},
		{CategorySubscriptionScam, 3},
		{CategoryDeliveryScam, 4},
		{CategoryTaxScam, 3},
		{CategoryRewardScam, 5},
		{CategoryInvestmentScam, 4},
		{CategoryFinancialRequest, 6},
		{CategorySMSTactic, 5},
		{CategoryEmailTactic, 5},
	}

	for _, tc := range testCases {
		t.Run(string(tc.category), func(t *testing.T) {
			patterns := r.GetByCategory(tc.category)
			if len(patterns) < tc.minPatterns {
				t.Errorf("category %s: expected at least %d patterns, got %d",
					tc.category, tc.minPatterns, len(patterns))
			}
			t.Logf("Category %s: %d patterns", tc.category, len(patterns))
		})
	}
}

func TestMatchAny(t *testing.T) {
	r := Get()

	testCases := []struct {
		name       string
		text       string
		categories []Category
		wantMatch  bool
	}{
		{
			name:       "lottery win",
			text:       "Congratulations! You have won KSH 500,000 in our draw",
			categories: []Category{CategoryRewardScam},
			wantMatch:  true,
		},
		{
			name:       "click to verify",
			text:       "Click here to verify your account details",
			categories: []Category{CategoryCallToAction},
			wantMatch:  true,
		},
		{
			name:       "delivery fee",
			text:       "Your parcel is on hold, pay a small clearance fee to release it",
			categories: []Category{CategoryDeliveryScam},
			wantMatch:  true,
		},
		{
			name:       "advance fee",
			text:       "A processing fee of KSH 550 is required to release your winnings",
			categories: []Category{CategoryFinancialRequest},
			wantMatch:  true,
		},
		{
			name:       "generic greeting",
			text:       "Dear valued customer, we write to inform you",
			categories: []Category{CategoryGreeting},
			wantMatch:  true,
		},
		{
			name:       "wrong transaction reversal",
			text:       "I mistakenly sent you KSH 2000, please reverse",
			categories: []Category{CategorySMSTactic},
			wantMatch:  true,
		},
		{
			name:       "mailbox quota",
			text:       "Your mailbox is almost full, upgrade your webmail now",
			categories: []Category{CategoryEmailTactic},
			wantMatch:  true,
		},
		{
			name:       "benign statement notice",
			text:       "Hi John, your account statement for May 2025 is ready. View it on the app.",
			categories: []Category{CategoryCallToAction, CategoryRewardScam, CategoryFinancialRequest, CategoryAccountAlert},
			wantMatch:  false,
		},
		{
			name:       "benign meeting note",
			text:       "The quarterly review meeting moved to Thursday at 10am",
			categories: []Category{CategoryCallToAction, CategoryInvoiceScam, CategoryDeliveryScam},
			wantMatch:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			match := r.MatchAny(tc.text, tc.categories...)
			gotMatch := match != nil

			if gotMatch != tc.wantMatch {
				if tc.wantMatch {
					t.Errorf("expected match for %q, got none", tc.text)
				} else {
					t.Errorf("expected no match for %q, got %s", tc.text, match.Name)
				}
			}

			if match != nil {
				t.Logf("Matched pattern: %s - %s", match.Name, match.Description)
			}
		})
	}
}

func TestFindAllReturnsEvidence(t *testing.T) {
	r := Get()

	text := "Congratulations, you have won a prize! Claim your reward now, a processing fee of KSH 100 applies."

	matches := r.FindAll(text, CategoryRewardScam, CategoryFinancialRequest)
	if len(matches) < 3 {
		t.Fatalf("expected at least 3 matches, got %d", len(matches))
	}

	for _, m := range matches {
		if m.Matched == "" {
			t.Errorf("pattern %s matched but returned empty evidence", m.Pattern.Name)
		}
		if m.Pattern.Confidence <= 0 || m.Pattern.Confidence > 1 {
			t.Errorf("pattern %s has confidence %v outside (0,1]", m.Pattern.Name, m.Pattern.Confidence)
		}
		t.Logf("  - %s: %q", m.Pattern.Name, m.Matched)
	}
}

func TestGetMultipleCategories(t *testing.T) {
	r := Get()

	patterns := r.GetMultipleCategories(CategoryRewardScam, CategoryFinancialRequest)

	rewardCount := r.CategoryCount(CategoryRewardScam)
	finCount := r.CategoryCount(CategoryFinancialRequest)
	expectedMin := rewardCount + finCount

	if len(patterns) < expectedMin {
		t.Errorf("expected at least %d patterns, got %d", expectedMin, len(patterns))
	}
}

func TestPatternMetadataSane(t *testing.T) {
	r := Get()

	for _, cat := range r.Categories() {
		for _, p := range r.GetByCategory(cat) {
			if p.Severity < 0 || p.Severity > 100 {
				t.Errorf("pattern %s: severity %d out of range", p.Name, p.Severity)
			}
			if p.Description == "" {
				t.Errorf("pattern %s: missing description", p.Name)
			}
		}
	}
}

// Benchmark for pattern matching performance
func BenchmarkMatchAll(b *testing.B) {
	r := Get()
	text := "Dear customer, your parcel is held. Pay a small clearance fee and click here to verify your address."

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.MatchAll(text, CategoryDeliveryScam, CategoryCallToAction, CategoryGreeting)
	}
}
