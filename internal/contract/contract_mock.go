package contract

import (
	"context"

	"github.com/archlens/archlens/schema"
	"github.com/stretchr/testify/mock"
)

// MockPredictor is a mock implementation of Predictor for testing.
type MockPredictor struct {
	mock.Mock
}

var _ Predictor = &MockPredictor{} // Compile-time check

// Predict mocks the classifier call.
func (m *MockPredictor) Predict(ctx context.Context, features schema.FeatureVector) (schema.ClassificationResult, error) {
	args := m.Called(ctx, features)
	return args.Get(0).(schema.ClassificationResult), args.Error(1)
}

// MockSourceWalker is a mock implementation of SourceWalker for testing.
type MockSourceWalker struct {
	mock.Mock
}

var _ SourceWalker = &MockSourceWalker{} // Compile-time check

// Walk mocks the source tree traversal.
func (m *MockSourceWalker) Walk(ctx context.Context, root string) ([]schema.SourceUnit, error) {
	args := m.Called(ctx, root)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.SourceUnit), args.Error(1)
}
