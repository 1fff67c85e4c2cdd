package analyzer

import (
	"github.com/phishguard/phishguard/pkg/collectors"
	"github.com/phishguard/phishguard/pkg/ml"
)

// MLFeatures carries the model-side evidence for a scan: the raw feature
// map fed to the classifier, optional infrastructure signals, and the
// model's own view of the prediction.
type MLFeatures struct {
	LexicalFeatures       map[string]float64     `json:"lexical_features,omitempty"`
	TextFeatures          map[string]float64     `json:"text_features,omitempty"`
	SSLStatus             *collectors.SSLStatus  `json:"ssl_status,omitempty"`
	DomainAge             *collectors.DomainAge  `json:"domain_age,omitempty"`
	MLPhishingProbability float64                `json:"ml_phishing_probability"`
	TopMLFeatures         []ml.FeatureImportance `json:"top_ml_features,omitempty"`
	ModelUsed             string                 `json:"model_used"`
}

// AnalysisDetails summarizes the scoring pipeline for the response payload.
type AnalysisDetails struct {
	URLsFound         []string       `json:"urls_found"`
	TotalIndicators   int            `json:"total_indicators"`
	SeverityBreakdown map[string]int `json:"severity_breakdown"`
	HeuristicScore    float64        `json:"heuristic_score"`
	MLScore           float64        `json:"ml_score"`
	CombinedScore     float64        `json:"combined_score"`
	FeaturesExtracted int            `json:"features_extracted"`
}

// Result is the full analysis payload handed to the boundary layer for
// serialization and persistence.
type Result struct {
	Classification   string            `json:"classification"`
	ConfidenceScore  float64           `json:"confidence_score"`
	RiskLevel        string            `json:"risk_level"`
	ThreatIndicators []ThreatIndicator `json:"threat_indicators"`
	Explanation      string            `json:"explanation"`
	Recommendations  []string          `json:"recommendations"`
	MLFeatures       MLFeatures        `json:"ml_features"`
	AnalysisDetails  AnalysisDetails   `json:"analysis_details"`
}
