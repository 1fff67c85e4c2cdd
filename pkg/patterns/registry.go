// Package patterns provides a centralized, high-performance pattern registry
// for phishing detection. All regex patterns are compiled once at package init
// and shared across all analyzer modules.
//
// Design principles:
// - COMPILE ONCE: All patterns compiled at init, not per-request
// - DRY: Single source of truth for all phishing patterns
// - CATEGORIZED: Patterns organized by scam category for targeted scans
// - EXTENSIBLE: Easy to add new patterns without modifying analyzer code
package patterns

import (
	"regexp"
	"sort"
	"sync"
)

// Category represents a phishing pattern category
type Category string

const (
	// Social-engineering categories
	CategoryCallToAction  Category = "call_to_action"
	CategoryImpersonation Category = "impersonation"
	CategoryGreeting      Category = "generic_greeting"
	CategoryGrammar       Category = "grammar_red_flag"

	// Scam-theme categories
	CategoryAccountAlert     Category = "account_alert"
	CategoryInvoiceScam      Category = "invoice_scam"
	CategorySubscriptionScam Category = "subscription_scam"
	CategoryDeliveryScam     Category = "delivery_scam"
	CategoryTaxScam          Category = "tax_scam"
	CategoryRewardScam       Category = "reward_scam"
	CategoryInvestmentScam   Category = "investment_scam"
	CategoryFinancialRequest Category = "financial_request"

	// Channel-specific categories
	CategorySMSTactic   Category = "sms_tactic"
	CategoryEmailTactic Category = "email_tactic"
)

// Pattern holds a compiled regex with metadata
type Pattern struct {
	Name        string         // Human-readable name for logging
	Regex       *regexp.Regexp // Compiled regex (never nil after init)
	Category    Category       // Scam category
	Severity    int            // Risk score contribution (0-100)
	Confidence  float64        // Detection confidence when matched (0.0-1.0)
	Description string         // What this pattern detects
}

// Registry holds all compiled patterns, organized by category
type Registry struct {
	mu         sync.RWMutex
	byCategory map[Category][]*Pattern
	all        []*Pattern
}

// global singleton - initialized once at package load
var (
	globalRegistry *Registry
	initOnce       sync.Once
)

// Get returns the global pattern registry (singleton)
// Thread-safe and guaranteed to be initialized
func Get() *Registry {
	initOnce.Do(func() {
		globalRegistry = newRegistry()
	})
	return globalRegistry
}

// newRegistry creates and populates the pattern registry
func newRegistry() *Registry {
	r := &Registry{
		byCategory: make(map[Category][]*Pattern),
		all:        make([]*Pattern, 0, 96), // Pre-allocate for ~96 patterns
	}

	// Register all pattern categories
	r.registerCallToActionPatterns()
	r.registerImpersonationPatterns()
	r.registerGreetingPatterns()
	r.registerGrammarPatterns()
	r.registerAccountAlertPatterns()
	r.registerInvoicePatterns()
	r.registerSubscriptionPatterns()
	r.registerDeliveryPatterns()
	r.registerTaxPatterns()
	r.registerRewardPatterns()
	r.registerInvestmentPatterns()
	r.registerFinancialRequestPatterns()
	r.registerSMSTacticPatterns()
	r.registerEmailTacticPatterns()

	return r
}

// register adds a pattern to the registry (internal use only)
func (r *Registry) register(name string, pattern string, category Category, severity int, confidence float64, description string) {
	compiled := regexp.MustCompile(pattern)
	p := &Pattern{
		Name:        name,
		Regex:       compiled,
		Category:    category,
		Severity:    severity,
		Confidence:  confidence,
		Description: description,
	}

	r.byCategory[category] = append(r.byCategory[category], p)
	r.all = append(r.all, p)
}

// GetByCategory returns all patterns for a specific category
// Returns empty slice if category not found (never nil)
func (r *Registry) GetByCategory(cat Category) []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if patterns, ok := r.byCategory[cat]; ok {
		return patterns
	}
	return []*Pattern{}
}

// GetMultipleCategories returns patterns from multiple categories
// Useful for modules that check multiple pattern types
func (r *Registry) GetMultipleCategories(cats ...Category) []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Pattern
	for _, cat := range cats {
		if patterns, ok := r.byCategory[cat]; ok {
			result = append(result, patterns...)
		}
	}
	return result
}

// MatchAny checks if text matches any pattern in the given categories
// Returns the first matching pattern or nil
// This is optimized for early exit on first match
func (r *Registry) MatchAny(text string, cats ...Category) *Pattern {
	patterns := r.GetMultipleCategories(cats...)
	for _, p := range patterns {
		if p.Regex.MatchString(text) {
			return p
		}
	}
	return nil
}

// MatchAll returns all patterns that match the text in given categories
// Use when you need to know ALL matches (for comprehensive scoring)
func (r *Registry) MatchAll(text string, cats ...Category) []*Pattern {
	patterns := r.GetMultipleCategories(cats...)
	var matches []*Pattern
	for _, p := range patterns {
		if p.Regex.MatchString(text) {
			matches = append(matches, p)
		}
	}
	return matches
}

// Match pairs a matched pattern with the text fragment that triggered it.
type Match struct {
	Pattern *Pattern
	Matched string
}

// FindAll returns every matching pattern together with the first matched
// fragment. Analyzer modules use the fragment as indicator evidence.
func (r *Registry) FindAll(text string, cats ...Category) []Match {
	patterns := r.GetMultipleCategories(cats...)
	var matches []Match
	for _, p := range patterns {
		if m := p.Regex.FindString(text); m != "" {
			matches = append(matches, Match{Pattern: p, Matched: m})
		}
	}
	return matches
}

// TotalPatterns returns the total count of registered patterns
func (r *Registry) TotalPatterns() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

// CategoryCount returns the number of patterns in a category
func (r *Registry) CategoryCount(cat Category) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCategory[cat])
}

// Categories returns every category that has at least one pattern.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cats := make([]Category, 0, len(r.byCategory))
	for cat := range r.byCategory {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}
