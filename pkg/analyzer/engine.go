package analyzer

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/phishguard/phishguard/pkg/collectors"
	"github.com/phishguard/phishguard/pkg/httputil"
	"github.com/phishguard/phishguard/pkg/ml"
	"github.com/phishguard/phishguard/pkg/patterns"
	"github.com/phishguard/phishguard/pkg/similarity"
)

const (
	// CategorySimilarity marks a near-duplicate of a seeded scam message.
	CategorySimilarity = "Known Scam Similarity"

	// defaultSimilarityThreshold is the minimum cosine similarity against
	// the seeded scam corpus before an indicator fires.
	defaultSimilarityThreshold = 0.82

	defaultSeed             = 42
	defaultCollectorTimeout = 4 * time.Second
	defaultURLConcurrency   = 8
)

// Options configures engine construction. The zero value trains both
// models on built-in synthetic data, seeds the similarity index, and
// leaves the network collectors disabled.
type Options struct {
	Lexicon  *Lexicon
	Registry *patterns.Registry

	// Optional labeled CSV datasets. When missing or too small the
	// models fall back to synthetic training data.
	URLDatasetPath  string
	TextDatasetPath string
	Seed            int64

	// Network collectors; nil disables the corresponding signal.
	CertInspector    collectors.CertificateInspector
	AgeLookup        collectors.RegistrationAgeLookup
	CollectorTimeout time.Duration

	DisableSimilarity bool
	URLConcurrency    int

	// SimilarityThreshold overrides the minimum cosine similarity for a
	// known-scam match; zero keeps the default.
	SimilarityThreshold float64
}

// Engine runs the full analysis pipeline. Construct once with NewEngine;
// all state is read-only afterward, so a single Engine serves concurrent
// requests without locking.
type Engine struct {
	lex      *Lexicon
	registry *patterns.Registry

	urlModel  *ml.Classifier
	textModel *ml.Classifier
	simIndex  *similarity.Index

	certInspector    collectors.CertificateInspector
	ageLookup        collectors.RegistrationAgeLookup
	collectorTimeout time.Duration
	urlSem           *httputil.Semaphore
	simThreshold     float64
}

// NewEngine trains both classifiers and seeds the similarity index.
func NewEngine(opts Options) (*Engine, error) {
	lex := opts.Lexicon
	if lex == nil {
		lex = DefaultLexicon()
	}
	registry := opts.Registry
	if registry == nil {
		registry = patterns.Get()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = defaultSeed
	}

	urlSet, err := ml.Resolve(
		&ml.RealDataset{
			Path:         opts.URLDatasetPath,
			FeatureNames: URLFeatureNames,
			Featurize: func(content string) []float64 {
				return ExtractURLFeatures(content, lex).Values()
			},
		},
		&ml.SyntheticDataset{
			FeatureNames: URLFeatureNames,
			Specs:        urlFeatureSpecs(),
			Seed:         seed,
		},
	)
	if err != nil {
		return nil, err
	}
	urlModel, err := ml.Train(ml.Config{
		Name:     "url-random-forest",
		Kind:     ml.KindBagging,
		Trees:    100,
		MaxDepth: 10,
		Seed:     seed,
	}, urlSet)
	if err != nil {
		return nil, err
	}

	textSet, err := ml.Resolve(
		&ml.RealDataset{
			Path:         opts.TextDatasetPath,
			FeatureNames: TextFeatureNames,
			Featurize: func(content string) []float64 {
				return ExtractTextFeatures(content, ContentTypeEmail, lex).Values()
			},
		},
		&ml.SyntheticDataset{
			FeatureNames: TextFeatureNames,
			Specs:        textFeatureSpecs(),
			Seed:         seed + 1,
		},
	)
	if err != nil {
		return nil, err
	}
	textTrees := 150
	if textSet.Synthetic {
		// Synthetic gaussians separate cleanly; fewer boosting rounds
		// avoid memorizing sampling noise.
		textTrees = 100
	}
	textModel, err := ml.Train(ml.Config{
		Name:         "text-gradient-boosting",
		Kind:         ml.KindBoosting,
		Trees:        textTrees,
		MaxDepth:     6,
		LearningRate: 0.1,
		Seed:         seed + 1,
	}, textSet)
	if err != nil {
		return nil, err
	}

	var simIndex *similarity.Index
	if !opts.DisableSimilarity {
		embed := func(text string) []float64 {
			return signalVector(text, ContentTypeSMS, lex)
		}
		simIndex, err = similarity.New(embed, scamSeeds())
		if err != nil {
			return nil, err
		}
	}

	timeout := opts.CollectorTimeout
	if timeout <= 0 {
		timeout = defaultCollectorTimeout
	}
	concurrency := opts.URLConcurrency
	if concurrency <= 0 {
		concurrency = defaultURLConcurrency
	}
	simThreshold := opts.SimilarityThreshold
	if simThreshold <= 0 {
		simThreshold = defaultSimilarityThreshold
	}

	return &Engine{
		lex:              lex,
		registry:         registry,
		urlModel:         urlModel,
		textModel:        textModel,
		simIndex:         simIndex,
		certInspector:    opts.CertInspector,
		ageLookup:        opts.AgeLookup,
		collectorTimeout: timeout,
		urlSem:           httputil.NewSemaphore(concurrency),
		simThreshold:     simThreshold,
	}, nil
}

// infraSignals is what the network collectors produced for one scan.
type infraSignals struct {
	ssl *collectors.SSLStatus
	age *collectors.DomainAge
}

// Analyze runs every heuristic module, the content-appropriate
// classifier, the similarity lookup and (for URL scans) the
// infrastructure collectors, then fuses everything into a Result.
// Identical input yields an identical result apart from the
// network-derived infrastructure signals.
func (e *Engine) Analyze(ctx context.Context, content string, contentType ContentType) *Result {
	urls := e.collectURLs(content, contentType)

	// Network collectors overlap the CPU-bound path.
	infraCh := make(chan infraSignals, 1)
	go e.collectInfra(ctx, contentType, urls, infraCh)

	var inds []ThreatIndicator
	inds = append(inds, checkUrgency(content, e.lex)...)
	inds = append(inds, checkCredentials(content, e.lex)...)
	inds = append(inds, checkThreats(content, e.lex)...)
	inds = append(inds, checkRegionalTargets(content, e.lex)...)
	inds = append(inds, checkSuspiciousPatterns(content, contentType, e.registry)...)
	inds = append(inds, checkFinancialRequests(content, e.registry)...)
	inds = append(inds, checkLinkMismatch(content)...)
	inds = append(inds, checkTextEntropy(content, contentType)...)
	inds = append(inds, e.analyzeURLs(ctx, urls)...)

	features, mlProb, mlf := e.predict(content, contentType, urls)

	if e.simIndex != nil {
		if hit, ok := e.simIndex.Query(ctx, content); ok && hit.Similarity >= e.simThreshold {
			inds = append(inds, ThreatIndicator{
				Category:    CategorySimilarity,
				Description: "Content closely matches a known scam: " + hit.Label,
				Severity:    SeverityHigh,
				MatchedText: hit.Label,
				Confidence:  round3(hit.Similarity),
			})
		}
	}

	inds = NormalizeIndicators(inds)
	verdict := Fuse(inds, mlProb)

	infra := <-infraCh
	verdict = applyInfraRisk(verdict, infra)
	mlf.SSLStatus = infra.ssl
	mlf.DomainAge = infra.age

	return &Result{
		Classification:   verdict.Classification,
		ConfidenceScore:  verdict.Combined,
		RiskLevel:        verdict.RiskLevel,
		ThreatIndicators: inds,
		Explanation:      buildExplanation(inds, verdict.Classification, contentType),
		Recommendations:  buildRecommendations(verdict.Classification, inds),
		MLFeatures:       mlf,
		AnalysisDetails: AnalysisDetails{
			URLsFound:         urls,
			TotalIndicators:   len(inds),
			SeverityBreakdown: SeverityBreakdown(inds),
			HeuristicScore:    verdict.Heuristic,
			MLScore:           verdict.MLProbability,
			CombinedScore:     verdict.Combined,
			FeaturesExtracted: features,
		},
	}
}

// collectURLs picks the URLs to inspect. A URL scan analyzes the content
// itself; text scans analyze whatever addresses appear in the body.
func (e *Engine) collectURLs(content string, contentType ContentType) []string {
	if contentType == ContentTypeURL {
		return []string{strings.TrimSpace(content)}
	}
	urls := ExtractURLs(content)
	if len(urls) > MaxURLsPerScan {
		urls = urls[:MaxURLsPerScan]
	}
	return urls
}

// analyzeURLs runs the per-URL heuristics concurrently, bounded by the
// engine semaphore. Output order follows input order so repeated scans of
// the same content stay byte-identical.
func (e *Engine) analyzeURLs(ctx context.Context, urls []string) []ThreatIndicator {
	if len(urls) == 0 {
		return nil
	}

	perURL := make([][]ThreatIndicator, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		if err := e.urlSem.Acquire(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			defer e.urlSem.Release()
			perURL[i] = analyzeURL(u, e.lex)
		}(i, u)
	}
	wg.Wait()

	var out []ThreatIndicator
	for _, inds := range perURL {
		out = append(out, inds...)
	}
	return out
}

// predict runs the content-appropriate classifier and assembles the
// model-side evidence.
func (e *Engine) predict(content string, contentType ContentType, urls []string) (int, float64, MLFeatures) {
	if contentType == ContentTypeURL {
		target := content
		if len(urls) > 0 {
			target = urls[0]
		}
		fv := ExtractURLFeatures(target, e.lex)
		prob := e.urlModel.PredictProba(fv.Values())
		return fv.Len(), prob, MLFeatures{
			LexicalFeatures:       fv.Map(),
			MLPhishingProbability: round3(prob),
			TopMLFeatures:         e.urlModel.TopFeatures(5),
			ModelUsed:             e.urlModel.Name(),
		}
	}

	fv := ExtractTextFeatures(content, contentType, e.lex)
	prob := e.textModel.PredictProba(fv.Values())
	return fv.Len(), prob, MLFeatures{
		TextFeatures:          fv.Map(),
		MLPhishingProbability: round3(prob),
		TopMLFeatures:         e.textModel.TopFeatures(5),
		ModelUsed:             e.textModel.Name(),
	}
}

// collectInfra runs the certificate and registration-age collectors for
// URL scans. Both degrade to absent signals on error or timeout.
func (e *Engine) collectInfra(ctx context.Context, contentType ContentType, urls []string, out chan<- infraSignals) {
	var sig infraSignals
	defer func() { out <- sig }()

	if contentType != ContentTypeURL || len(urls) == 0 {
		return
	}
	if e.certInspector == nil && e.ageLookup == nil {
		return
	}
	host := hostOf(urls[0])
	if host == "" || isWhitelisted(host, e.lex) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx, e.collectorTimeout)
	defer cancel()

	var wg sync.WaitGroup
	if e.certInspector != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if status, err := e.certInspector.Inspect(cctx, host); err == nil {
				sig.ssl = status
			}
		}()
	}
	if e.ageLookup != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if age, err := e.ageLookup.Lookup(cctx, host); err == nil {
				sig.age = age
			}
		}()
	}
	wg.Wait()
}

// applyInfraRisk adds the bounded infrastructure risk on top of the fused
// score and reclassifies. Absent signals contribute nothing.
func applyInfraRisk(v Verdict, infra infraSignals) Verdict {
	risk := collectors.CertRisk(infra.ssl) + collectors.AgeRisk(infra.age)
	if risk == 0 {
		return v
	}
	combined := v.Combined + risk
	if combined > 1 {
		combined = 1
	}
	v.Combined = round3(combined)
	v.Classification, v.RiskLevel = Classify(combined)
	return v
}

// hostOf extracts the hostname from a possibly schemeless URL.
func hostOf(raw string) string {
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
