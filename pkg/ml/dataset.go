package ml

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// TrainingSet is a featurized, labeled dataset ready for Train.
type TrainingSet struct {
	FeatureNames []string
	X            [][]float64
	Y            []float64
	Source       string
	Synthetic    bool
}

// TrainingSource yields a training set. Implementations: RealDataset
// (labeled CSV on disk) and SyntheticDataset (generated fallback).
type TrainingSource interface {
	Name() string
	Load() (*TrainingSet, error)
}

// Resolve loads the primary source and falls back when it errors.
// The typical pairing is RealDataset primary, SyntheticDataset fallback,
// which guarantees a model is always available.
func Resolve(primary, fallback TrainingSource) (*TrainingSet, error) {
	if primary != nil {
		if set, err := primary.Load(); err == nil {
			return set, nil
		}
	}
	if fallback == nil {
		return nil, fmt.Errorf("no usable training source")
	}
	return fallback.Load()
}

// RealDataset loads a labeled CSV of (content, label) rows and featurizes
// each row with the supplied extractor. Label 1 marks phishing.
type RealDataset struct {
	Path         string
	FeatureNames []string
	Featurize    func(content string) []float64
	MinSamples   int // reject smaller datasets; 0 means 50
}

// Name implements TrainingSource.
func (d *RealDataset) Name() string { return "dataset:" + d.Path }

// Load implements TrainingSource.
func (d *RealDataset) Load() (*TrainingSet, error) {
	if d.Path == "" {
		return nil, fmt.Errorf("no dataset path configured")
	}
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	minSamples := d.MinSamples
	if minSamples <= 0 {
		minSamples = 50
	}

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	set := &TrainingSet{FeatureNames: d.FeatureNames, Source: d.Name()}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row %d: %w", line, err)
		}
		line++
		if len(record) < 2 {
			continue
		}
		content := record[0]
		labelField := strings.TrimSpace(record[len(record)-1])
		if line == 1 && !isLabel(labelField) {
			continue // header row
		}
		label, err := strconv.Atoi(labelField)
		if err != nil || (label != 0 && label != 1) {
			continue
		}
		features := d.Featurize(content)
		if len(features) != len(d.FeatureNames) {
			continue
		}
		set.X = append(set.X, features)
		set.Y = append(set.Y, float64(label))
	}

	if len(set.X) < minSamples {
		return nil, fmt.Errorf("dataset %s too small: %d samples, need %d", d.Path, len(set.X), minSamples)
	}
	return set, nil
}

func isLabel(s string) bool {
	return s == "0" || s == "1"
}

// FeatureSpec is the hand-tuned per-feature distribution pair a synthetic
// set samples from: a gaussian per class, clamped at zero for count-like
// features.
type FeatureSpec struct {
	Name        string
	SafeMean    float64
	SafeStd     float64
	PhishMean   float64
	PhishStd    float64
	NonNegative bool
}

// SyntheticDataset generates PerClass samples per class from the feature
// specs. A fixed seed keeps the generated set, and therefore the trained
// model, identical across restarts.
type SyntheticDataset struct {
	FeatureNames []string
	Specs        []FeatureSpec
	PerClass     int // default 500
	Seed         int64
}

// Name implements TrainingSource.
func (d *SyntheticDataset) Name() string { return "synthetic" }

// Load implements TrainingSource.
func (d *SyntheticDataset) Load() (*TrainingSet, error) {
	if len(d.Specs) == 0 {
		return nil, fmt.Errorf("synthetic dataset has no feature specs")
	}
	if len(d.Specs) != len(d.FeatureNames) {
		return nil, fmt.Errorf("synthetic dataset: %d specs for %d features", len(d.Specs), len(d.FeatureNames))
	}

	perClass := d.PerClass
	if perClass <= 0 {
		perClass = 500
	}
	rng := rand.New(rand.NewSource(d.Seed))

	set := &TrainingSet{
		FeatureNames: d.FeatureNames,
		X:            make([][]float64, 0, 2*perClass),
		Y:            make([]float64, 0, 2*perClass),
		Source:       d.Name(),
		Synthetic:    true,
	}

	for i := 0; i < perClass; i++ {
		set.X = append(set.X, sampleRow(d.Specs, rng, false))
		set.Y = append(set.Y, 0)
	}
	for i := 0; i < perClass; i++ {
		set.X = append(set.X, sampleRow(d.Specs, rng, true))
		set.Y = append(set.Y, 1)
	}
	return set, nil
}

func sampleRow(specs []FeatureSpec, rng *rand.Rand, phishing bool) []float64 {
	row := make([]float64, len(specs))
	for j, spec := range specs {
		mean, std := spec.SafeMean, spec.SafeStd
		if phishing {
			mean, std = spec.PhishMean, spec.PhishStd
		}
		v := mean + rng.NormFloat64()*std
		if spec.NonNegative && v < 0 {
			v = 0
		}
		row[j] = v
	}
	return row
}
