// Package schema has configs, models and shared constants for all parts of archlens.
package schema

import "fmt"

// FeatureVector maps every canonical feature key to a non-negative count.
// The classifier service expects the exact canonical key set, so vectors
// are always created fully populated via NewFeatureVector.
type FeatureVector map[string]int

// NewFeatureVector returns a vector with every canonical key set to zero.
func NewFeatureVector() FeatureVector {
	fv := make(FeatureVector, len(FeatureKeys))
	for _, k := range FeatureKeys {
		fv[k] = 0
	}
	return fv
}

// Add increments the given key by delta. Unknown keys are rejected so that
// extraction bugs surface immediately instead of producing an off-schema vector.
func (fv FeatureVector) Add(key string, delta int) {
	if _, ok := featureKeySet[key]; !ok {
		panic(fmt.Sprintf("feature key %q is not part of the canonical schema", key))
	}
	fv[key] += delta
}

// Get returns the value for key, defaulting to 0 when absent.
func (fv FeatureVector) Get(key string) int {
	return fv[key]
}

// Clone returns a deep copy of the vector.
func (fv FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(fv))
	for k, v := range fv {
		out[k] = v
	}
	return out
}

// Validate checks that the vector holds exactly the canonical key set with
// non-negative values. A failure here indicates a bug in the extractor,
// not a recoverable runtime condition.
func (fv FeatureVector) Validate() error {
	if len(fv) != len(FeatureKeys) {
		return fmt.Errorf("feature vector has %d keys, schema requires %d", len(fv), len(FeatureKeys))
	}
	for _, k := range FeatureKeys {
		v, ok := fv[k]
		if !ok {
			return fmt.Errorf("feature vector is missing key %q", k)
		}
		if v < 0 {
			return fmt.Errorf("feature key %q has negative value %d", k, v)
		}
	}
	return nil
}
