package analyzer

// FeatureVector is an ordered mapping of feature names to values. The
// schema is fixed per content kind: every declared name is always present,
// defaulting to 0 when the input cannot be parsed. Order is stable so the
// vector can feed a trained model directly.
type FeatureVector struct {
	names  []string
	values []float64
}

func newFeatureVector(names []string) *FeatureVector {
	return &FeatureVector{
		names:  names,
		values: make([]float64, len(names)),
	}
}

// set assigns a value by name. Unknown names are ignored so extractors
// stay total even when a schema shrinks in an override.
func (fv *FeatureVector) set(name string, value float64) {
	for i, n := range fv.names {
		if n == name {
			fv.values[i] = value
			return
		}
	}
}

// setBool assigns 1.0 or 0.0 by name.
func (fv *FeatureVector) setBool(name string, value bool) {
	if value {
		fv.set(name, 1.0)
	} else {
		fv.set(name, 0.0)
	}
}

// Names returns the ordered feature schema.
func (fv *FeatureVector) Names() []string {
	return fv.names
}

// Values returns the ordered feature values, aligned with Names.
func (fv *FeatureVector) Values() []float64 {
	return fv.values
}

// Get returns a value by name, 0 for unknown names.
func (fv *FeatureVector) Get(name string) float64 {
	for i, n := range fv.names {
		if n == name {
			return fv.values[i]
		}
	}
	return 0
}

// Map renders the vector as a name->value map for response payloads.
func (fv *FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, len(fv.names))
	for i, n := range fv.names {
		m[n] = fv.values[i]
	}
	return m
}

// Len returns the number of features in the schema.
func (fv *FeatureVector) Len() int {
	return len(fv.names)
}
