package ml

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Ensemble kinds.
const (
	KindBagging  = "bagging"
	KindBoosting = "boosting"
)

// FeatureImportance pairs a feature name with its global importance.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// Config parameterizes one classifier instance.
type Config struct {
	Name         string
	Kind         string  // KindBagging or KindBoosting
	Trees        int     // ensemble size
	MaxDepth     int     // per-tree depth cap
	LearningRate float64 // boosting only
	Seed         int64   // rng seed; fixed seed keeps training idempotent
}

// Classifier wraps a scaler and a tree ensemble. Built once at startup,
// immutable afterward; safe for concurrent prediction.
type Classifier struct {
	name         string
	kind         string
	scaler       *Scaler
	trees        []*treeNode
	bias         float64 // boosting base log-odds
	learningRate float64
	featureNames []string
	importances  []float64
	synthetic    bool
	source       string
}

// Train fits a classifier on the training set per the config.
func Train(cfg Config, set *TrainingSet) (*Classifier, error) {
	if set == nil || len(set.X) == 0 {
		return nil, fmt.Errorf("train %s: empty training set", cfg.Name)
	}
	if len(set.X) != len(set.Y) {
		return nil, fmt.Errorf("train %s: %d samples but %d labels", cfg.Name, len(set.X), len(set.Y))
	}

	scaler := FitScaler(set.X)
	X := scaler.TransformAll(set.X)
	rng := rand.New(rand.NewSource(cfg.Seed))
	importances := make([]float64, len(set.FeatureNames))

	c := &Classifier{
		name:         cfg.Name,
		kind:         cfg.Kind,
		scaler:       scaler,
		learningRate: cfg.LearningRate,
		featureNames: set.FeatureNames,
		importances:  importances,
		synthetic:    set.Synthetic,
		source:       set.Source,
	}

	switch cfg.Kind {
	case KindBagging:
		c.trees = trainBagging(X, set.Y, cfg, rng, importances)
	case KindBoosting:
		c.trees, c.bias = trainBoosting(X, set.Y, cfg, rng, importances)
	default:
		return nil, fmt.Errorf("train %s: unknown ensemble kind %q", cfg.Name, cfg.Kind)
	}

	normalizeImportances(importances)
	return c, nil
}

// trainBagging fits trees on bootstrap resamples with a sqrt-sized random
// feature subset per split.
func trainBagging(X [][]float64, y []float64, cfg Config, rng *rand.Rand, importances []float64) []*treeNode {
	n := len(X)
	subset := int(math.Sqrt(float64(len(X[0]))))
	if subset < 1 {
		subset = 1
	}
	tc := treeConfig{maxDepth: cfg.MaxDepth, minLeaf: 2, featureSubset: subset}

	trees := make([]*treeNode, 0, cfg.Trees)
	for t := 0; t < cfg.Trees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		trees = append(trees, fitTree(X, y, idx, tc, rng, importances))
	}
	return trees
}

// trainBoosting fits a gradient-boosted ensemble on the logistic loss.
// Each tree regresses the residual y - sigmoid(F) of the running score.
func trainBoosting(X [][]float64, y []float64, cfg Config, rng *rand.Rand, importances []float64) ([]*treeNode, float64) {
	n := len(X)
	pos := 0.0
	for _, label := range y {
		pos += label
	}
	p := clampProb(pos / float64(n))
	bias := math.Log(p / (1 - p))

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = bias
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	residuals := make([]float64, n)
	tc := treeConfig{maxDepth: cfg.MaxDepth, minLeaf: 2}

	trees := make([]*treeNode, 0, cfg.Trees)
	for t := 0; t < cfg.Trees; t++ {
		for i := range residuals {
			residuals[i] = y[i] - sigmoid(scores[i])
		}
		tree := fitTree(X, residuals, idx, tc, rng, importances)
		for i := range scores {
			scores[i] += cfg.LearningRate * tree.predict(X[i])
		}
		trees = append(trees, tree)
	}
	return trees, bias
}

// PredictProba returns the positive-class probability for one feature
// vector. A vector that does not match the trained schema yields 0.0
// rather than an error, per the engine's degrade-don't-fail policy.
func (c *Classifier) PredictProba(features []float64) float64 {
	if c == nil || len(features) != len(c.featureNames) || len(c.trees) == 0 {
		return 0.0
	}
	x := c.scaler.Transform(features)

	switch c.kind {
	case KindBagging:
		sum := 0.0
		for _, tree := range c.trees {
			sum += tree.predict(x)
		}
		return clamp01(sum / float64(len(c.trees)))
	default:
		score := c.bias
		for _, tree := range c.trees {
			score += c.learningRate * tree.predict(x)
		}
		return sigmoid(score)
	}
}

// TopFeatures returns the n highest globally-weighted features. This
// explains the model in general, not any single prediction.
func (c *Classifier) TopFeatures(n int) []FeatureImportance {
	if c == nil {
		return nil
	}
	out := make([]FeatureImportance, 0, len(c.featureNames))
	for i, name := range c.featureNames {
		out = append(out, FeatureImportance{Feature: name, Importance: round4(c.importances[i])})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Importance > out[b].Importance })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Name returns the configured model name.
func (c *Classifier) Name() string {
	if c == nil {
		return "none"
	}
	return c.name
}

// Synthetic reports whether the model was trained on generated data.
func (c *Classifier) Synthetic() bool {
	return c != nil && c.synthetic
}

// Source names the training set the model was built from.
func (c *Classifier) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// FeatureCount returns the trained schema width.
func (c *Classifier) FeatureCount() int {
	if c == nil {
		return 0
	}
	return len(c.featureNames)
}

func normalizeImportances(importances []float64) {
	total := 0.0
	for _, v := range importances {
		total += v
	}
	if total == 0 {
		return
	}
	for i := range importances {
		importances[i] /= total
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampProb(p float64) float64 {
	const eps = 1e-6
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
