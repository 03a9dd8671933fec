package service

import (
	"context"
	"errors"
)

// ErrNotReady is returned by prediction operations before a model is loaded.
var ErrNotReady = errors.New("classifier model not loaded")

// Model load status values reported by Info.
const (
	StatusNotLoaded = "not_loaded"
	StatusLoaded    = "loaded"
)

// ClassificationResult represents the result of text classification
type ClassificationResult struct {
	Text          string             `json:"text"`
	Prediction    string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// ModelInfo describes the loaded model. Before a successful load only
// Status is set.
type ModelInfo struct {
	Status    string   `json:"status"`
	ModelType string   `json:"model_type,omitempty"`
	Features  int      `json:"features,omitempty"`
	Classes   []string `json:"classes,omitempty"`
}

// Classifier defines the interface for text classification backends.
// Implementations load exactly once at startup; inference is read-only
// against the loaded model and safe for concurrent use afterwards.
type Classifier interface {
	// Load loads the persisted model, or trains and persists a bootstrap
	// model when none exists. An error is fatal to startup.
	Load() error

	// Predict classifies a single text. Returns ErrNotReady before Load
	// has succeeded. The result's Confidence equals the maximum of its
	// probability distribution, which sums to 1.
	Predict(ctx context.Context, text string) (*ClassificationResult, error)

	// PredictBatch classifies multiple texts, preserving input order.
	// The call fails as a whole; no partial results are returned.
	PredictBatch(ctx context.Context, texts []string) ([]*ClassificationResult, error)

	// Info reports the model's load status and metadata. It never fails.
	Info() ModelInfo
}
