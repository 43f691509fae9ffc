package schema

// ClassificationResult is the classifier service's response for one feature
// vector. It is immutable once received.
type ClassificationResult struct {
	Predicted     ArchLabel             `json:"predicted_architecture"`
	Confidence    float64               `json:"confidence"`
	Probabilities map[ArchLabel]float64 `json:"probabilities"`
}

// BiasScores are the aggregate feature groups the heuristic correction layer
// weighs against a low-confidence prediction.
type BiasScores struct {
	Controller int `json:"controller_bias"`
	Clean      int `json:"clean_bias"`
	Layered    int `json:"layered_bias"`
}

// CorrectedResult is the final outcome of classification plus heuristic
// correction for one repository.
type CorrectedResult struct {
	Predicted     ArchLabel             `json:"predicted"`
	Corrected     ArchLabel             `json:"corrected"`
	Confidence    float64               `json:"confidence"`
	Probabilities map[ArchLabel]float64 `json:"probabilities,omitempty"`
	Biases        BiasScores            `json:"biases"`

	// Trusted is set when confidence cleared the trust threshold and the
	// rule cascade never ran.
	Trusted bool `json:"trusted"`
}

// Changed reports whether the heuristic layer replaced the predicted label.
func (r CorrectedResult) Changed() bool {
	return r.Corrected != r.Predicted
}
