// Package analyzer implements the hybrid phishing detection engine. It
// combines heuristic rule modules, engineered-feature classifiers and an
// ensemble fusion step into a single content analysis pipeline.
package analyzer

// Severity grades how strongly an indicator points at phishing.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Heuristic score contribution per severity grade.
var severityWeights = map[Severity]float64{
	SeverityCritical: 0.45,
	SeverityHigh:     0.30,
	SeverityMedium:   0.18,
	SeverityLow:      0.08,
}

// Weight returns the fusion weight of the severity grade.
// Unknown grades weigh as low.
func (s Severity) Weight() float64 {
	if w, ok := severityWeights[s]; ok {
		return w
	}
	return severityWeights[SeverityLow]
}

// severityOrder fixes iteration order over tiered tables so module output
// is deterministic for identical input.
var severityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// rank orders grades for sorting, critical first.
func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// SeverityFromScore maps a 0-100 pattern risk score onto a grade.
func SeverityFromScore(score int) Severity {
	switch {
	case score >= 85:
		return SeverityCritical
	case score >= 65:
		return SeverityHigh
	case score >= 45:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
