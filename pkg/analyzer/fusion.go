package analyzer

import "math"

// Classification verdicts.
const (
	ClassificationSafe       = "safe"
	ClassificationSuspicious = "suspicious"
	ClassificationPhishing   = "phishing"
)

// Risk levels.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// Verdict is the fused outcome of one analysis.
type Verdict struct {
	Classification string
	RiskLevel      string
	Combined       float64
	Heuristic      float64
	MLProbability  float64
}

// HeuristicScore computes the weighted indicator score: the sum of
// severity weight times confidence over all indicators, amplified by
// combination boosts for co-occurring evidence families, capped at 1.0.
func HeuristicScore(inds []ThreatIndicator) float64 {
	if len(inds) == 0 {
		return 0
	}

	score := 0.0
	for _, ind := range inds {
		score += ind.Severity.Weight() * ind.Confidence
	}

	var hasCritical, hasCredential, hasUrgency, hasThreatLang, hasURLIssue bool
	for _, ind := range inds {
		if ind.Severity == SeverityCritical {
			hasCritical = true
		}
		switch {
		case isCredentialCategory(ind.Category):
			hasCredential = true
		case isUrgencyCategory(ind.Category):
			hasUrgency = true
		case ind.Category == CategoryThreat:
			hasThreatLang = true
		case isURLCategory(ind.Category):
			hasURLIssue = true
		}
	}

	// Combination boosts apply before the cap: co-occurring evidence
	// families multiply rather than merely add.
	if hasCritical && hasCredential {
		score *= 1.5
	}
	if hasCredential && hasUrgency {
		score *= 1.4
	}
	if hasThreatLang && hasCredential {
		score *= 1.4
	}
	if hasCredential && hasURLIssue {
		score *= 1.3
	}
	if hasUrgency && hasURLIssue {
		score *= 1.3
	}

	return math.Min(1.0, score)
}

// Fuse merges the heuristic score, the statistical probability and the
// indicator counts into the final verdict.
//
// The blend depends on how much rule evidence exists: with no indicators
// the model alone can only raise mild suspicion; with only weak evidence
// the heuristics dominate a weighted average; once strong indicators
// (critical or high) are present the policy takes the most pessimistic of
// either signal or their blend. Safety floors then guarantee a minimum
// score as a non-decreasing step function of indicator counts, so adding
// strong evidence can never lower the verdict.
func Fuse(inds []ThreatIndicator, mlProb float64) Verdict {
	h := HeuristicScore(inds)

	var critical, high, medium int
	for _, ind := range inds {
		switch ind.Severity {
		case SeverityCritical:
			critical++
		case SeverityHigh:
			high++
		case SeverityMedium:
			medium++
		}
	}
	strong := critical + high

	var combined float64
	switch {
	case len(inds) == 0:
		combined = mlProb * 0.3
	case strong == 0 && medium <= 1:
		combined = 0.7*h + 0.3*mlProb
	default:
		combined = math.Max(math.Max(h, mlProb), 0.55*h+0.45*mlProb)
	}

	switch {
	case strong >= 3 || critical >= 2:
		combined = math.Max(combined, 0.85)
	case strong >= 2 || critical >= 1:
		combined = math.Max(combined, 0.65)
	case high >= 1 && medium >= 2:
		combined = math.Max(combined, 0.55)
	case strong >= 1 && medium >= 1:
		combined = math.Max(combined, 0.45)
	case medium >= 3:
		combined = math.Max(combined, 0.40)
	}

	combined = math.Min(1.0, combined)

	classification, risk := Classify(combined)
	return Verdict{
		Classification: classification,
		RiskLevel:      risk,
		Combined:       round3(combined),
		Heuristic:      round3(h),
		MLProbability:  round3(mlProb),
	}
}

// Classify maps a combined score onto the verdict and risk level.
func Classify(combined float64) (string, string) {
	switch {
	case combined >= 0.70:
		return ClassificationPhishing, RiskCritical
	case combined >= 0.40:
		return ClassificationPhishing, RiskHigh
	case combined >= 0.20:
		return ClassificationSuspicious, RiskMedium
	default:
		return ClassificationSafe, RiskLow
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
