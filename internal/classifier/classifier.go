// Package classifier implements the HTTP client for the external
// architecture classification service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/archlens/archlens/internal/contract"
	"github.com/archlens/archlens/schema"
)

// ErrClassifierUnavailable wraps every failure mode of the classifier call:
// transport errors, timeouts, non-2xx statuses and malformed responses.
// Callers must treat it as "architecture unknown" and never substitute a
// guessed label.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// maxResponseBytes bounds how much of a response body is read. The real
// service replies with a few hundred bytes.
const maxResponseBytes = 1 << 20

// HTTPClient calls the classifier's POST /predict endpoint.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ contract.Predictor = (*HTTPClient)(nil) // Compile-time check

// NewHTTPClient returns a classifier client with a bounded timeout.
// The timeout covers the whole request; there are no retries.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// predictRequest is the wire format the service expects.
type predictRequest struct {
	Data schema.FeatureVector `json:"data"`
}

// predictResponse is the wire format the service replies with. Pointer
// fields distinguish "missing" from zero values during validation.
type predictResponse struct {
	Predicted     *string            `json:"predicted_architecture"`
	Confidence    *float64           `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// Predict sends the feature vector and decodes the classification result.
func (h *HTTPClient) Predict(ctx context.Context, features schema.FeatureVector) (schema.ClassificationResult, error) {
	var zero schema.ClassificationResult

	if err := features.Validate(); err != nil {
		return zero, fmt.Errorf("refusing to send off-schema vector: %w", err)
	}

	body, err := json.Marshal(predictRequest{Data: features})
	if err != nil {
		return zero, fmt.Errorf("%w: encoding request: %v", ErrClassifierUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return zero, fmt.Errorf("%w: building request: %v", ErrClassifierUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, fmt.Errorf("%w: unexpected status %s", ErrClassifierUnavailable, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return zero, fmt.Errorf("%w: reading response: %v", ErrClassifierUnavailable, err)
	}

	var decoded predictResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return zero, fmt.Errorf("%w: malformed response body: %v", ErrClassifierUnavailable, err)
	}

	return validateResponse(decoded)
}

// validateResponse checks the decoded body for required fields and sane values.
func validateResponse(decoded predictResponse) (schema.ClassificationResult, error) {
	var zero schema.ClassificationResult

	if decoded.Predicted == nil {
		return zero, fmt.Errorf("%w: response missing predicted_architecture", ErrClassifierUnavailable)
	}
	if decoded.Confidence == nil {
		return zero, fmt.Errorf("%w: response missing confidence", ErrClassifierUnavailable)
	}

	label := schema.ArchLabel(*decoded.Predicted)
	if _, ok := schema.ValidArchLabels[label]; !ok {
		return zero, fmt.Errorf("%w: unknown label %q", ErrClassifierUnavailable, *decoded.Predicted)
	}
	confidence := *decoded.Confidence
	if confidence < 0 || confidence > 1 {
		return zero, fmt.Errorf("%w: confidence %v outside [0,1]", ErrClassifierUnavailable, confidence)
	}

	result := schema.ClassificationResult{
		Predicted:  label,
		Confidence: confidence,
	}
	if len(decoded.Probabilities) > 0 {
		result.Probabilities = make(map[schema.ArchLabel]float64, len(decoded.Probabilities))
		for k, v := range decoded.Probabilities {
			result.Probabilities[schema.ArchLabel(k)] = v
		}
	}
	return result, nil
}
