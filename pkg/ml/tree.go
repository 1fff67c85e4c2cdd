package ml

import (
	"math/rand"
	"sort"
)

// treeNode is one node of a regression tree. Leaves carry the mean target
// of their training samples; for 0/1 labels that is the positive fraction.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

type treeConfig struct {
	maxDepth      int
	minLeaf       int
	featureSubset int // features tried per split; 0 means all
}

// fitTree grows a regression tree on the samples selected by idx.
// Splits minimize the summed squared error of the two children, which for
// binary targets is equivalent to gini impurity. Split gains accumulate
// into importances, indexed by feature.
func fitTree(X [][]float64, y []float64, idx []int, cfg treeConfig, rng *rand.Rand, importances []float64) *treeNode {
	return growNode(X, y, idx, 0, cfg, rng, importances)
}

func growNode(X [][]float64, y []float64, idx []int, depth int, cfg treeConfig, rng *rand.Rand, importances []float64) *treeNode {
	mean, sse := meanSSE(y, idx)
	if depth >= cfg.maxDepth || len(idx) < 2*cfg.minLeaf || sse == 0 {
		return &treeNode{leaf: true, value: mean}
	}

	nFeatures := len(X[0])
	features := candidateFeatures(nFeatures, cfg.featureSubset, rng)

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0
	var bestLeft, bestRight []int

	sorted := make([]int, len(idx))
	for _, f := range features {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })

		// Prefix sums over the sorted order allow O(1) SSE per cut.
		sum, sumSq := 0.0, 0.0
		total, totalSq := 0.0, 0.0
		for _, i := range sorted {
			total += y[i]
			totalSq += y[i] * y[i]
		}

		for pos := 0; pos < len(sorted)-1; pos++ {
			i := sorted[pos]
			sum += y[i]
			sumSq += y[i] * y[i]

			nl := float64(pos + 1)
			nr := float64(len(sorted) - pos - 1)
			if int(nl) < cfg.minLeaf || int(nr) < cfg.minLeaf {
				continue
			}
			// Equal feature values cannot be separated.
			if X[i][f] == X[sorted[pos+1]][f] {
				continue
			}

			sseL := sumSq - sum*sum/nl
			sumR := total - sum
			sseR := (totalSq - sumSq) - sumR*sumR/nr
			gain := sse - sseL - sseR
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (X[i][f] + X[sorted[pos+1]][f]) / 2
				bestLeft = append(bestLeft[:0], sorted[:pos+1]...)
				bestRight = append(bestRight[:0], sorted[pos+1:]...)
			}
		}
	}

	if bestFeature < 0 {
		return &treeNode{leaf: true, value: mean}
	}

	if bestFeature < len(importances) {
		importances[bestFeature] += bestGain
	}

	left := make([]int, len(bestLeft))
	copy(left, bestLeft)
	right := make([]int, len(bestRight))
	copy(right, bestRight)

	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      growNode(X, y, left, depth+1, cfg, rng, importances),
		right:     growNode(X, y, right, depth+1, cfg, rng, importances),
	}
}

func (n *treeNode) predict(x []float64) float64 {
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func meanSSE(y []float64, idx []int) (float64, float64) {
	if len(idx) == 0 {
		return 0, 0
	}
	sum, sumSq := 0.0, 0.0
	for _, i := range idx {
		sum += y[i]
		sumSq += y[i] * y[i]
	}
	n := float64(len(idx))
	mean := sum / n
	return mean, sumSq - sum*sum/n
}

// candidateFeatures picks the feature subset tried at one split.
func candidateFeatures(total, subset int, rng *rand.Rand) []int {
	if subset <= 0 || subset >= total {
		all := make([]int, total)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := rng.Perm(total)
	return perm[:subset]
}
