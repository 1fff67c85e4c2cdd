package analyzer

import (
	"math"
	"sort"
)

// Entropy bands for domain-like strings. Normal domains sit between the
// two cutoffs; algorithmically generated ones land above the high cutoff.
const (
	entropyLowCutoff  = 2.5
	entropyHighCutoff = 3.5
)

// ShannonEntropy computes the character-level Shannon entropy of s in bits.
// Empty input yields 0.
func ShannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}

	freq := make(map[rune]int)
	total := 0
	for _, r := range s {
		freq[r]++
		total++
	}

	// Float summation is order sensitive; a fixed rune order keeps the
	// value bit-identical across calls on the same input.
	runes := make([]rune, 0, len(freq))
	for r := range freq {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	entropy := 0.0
	n := float64(total)
	for _, r := range runes {
		p := float64(freq[r]) / n
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// EntropyBand labels an entropy value relative to the domain cutoffs.
func EntropyBand(entropy float64) string {
	switch {
	case entropy > entropyHighCutoff:
		return "high"
	case entropy >= entropyLowCutoff:
		return "normal"
	default:
		return "low"
	}
}

// isHighEntropy reports whether a domain-like string looks randomly
// generated. Short strings are exempt; they never accumulate enough
// symbols to be meaningful.
func isHighEntropy(s string) bool {
	if len(s) < 8 {
		return false
	}
	return ShannonEntropy(s) > entropyHighCutoff
}
