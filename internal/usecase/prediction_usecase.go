package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/davidmnz/textclassify/internal/domain/service"
	"github.com/davidmnz/textclassify/internal/infrastructure/metrics"
)

// Error definitions for prediction usecase
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrModelNotReady = errors.New("classifier not ready")
)

// Input limits enforced at the service boundary, independent of the
// classifier backend.
const (
	MinTextLength = 1
	MaxTextLength = 5000
	MinBatchSize  = 1
	MaxBatchSize  = 100
)

// ClassifyInput represents the input for a single prediction
type ClassifyInput struct {
	Text string `json:"text"`
}

// BatchClassifyInput represents the input for a batch prediction
type BatchClassifyInput struct {
	Texts []string `json:"texts"`
}

// BatchClassifyOutput represents the output for a batch prediction
type BatchClassifyOutput struct {
	Results        []*service.ClassificationResult `json:"results"`
	TotalProcessed int                             `json:"total_processed"`
}

// HealthOutput represents the service health report
type HealthOutput struct {
	Status      string            `json:"status"`
	ModelLoaded bool              `json:"model_loaded"`
	ModelInfo   service.ModelInfo `json:"model_info"`
}

// PredictionCache caches single-prediction results keyed by trimmed input
// text. Deterministic inference makes cached results exact.
type PredictionCache interface {
	Get(ctx context.Context, text string) (*service.ClassificationResult, bool)
	Set(ctx context.Context, text string, result *service.ClassificationResult)
}

// PredictionUsecase defines the interface for prediction business logic
type PredictionUsecase interface {
	Health(ctx context.Context) (*HealthOutput, error)
	Classify(ctx context.Context, input *ClassifyInput) (*service.ClassificationResult, error)
	ClassifyBatch(ctx context.Context, input *BatchClassifyInput) (*BatchClassifyOutput, error)
	ModelInfo(ctx context.Context) (service.ModelInfo, error)
}

type predictionUsecase struct {
	classifier service.Classifier
	cache      PredictionCache
}

// NewPredictionUsecase creates a new prediction usecase. The cache may be
// nil, in which case caching is disabled.
func NewPredictionUsecase(classifier service.Classifier, cache PredictionCache) PredictionUsecase {
	return &predictionUsecase{
		classifier: classifier,
		cache:      cache,
	}
}

// Health reports service health derived from the model load status. It
// never fails: a not-yet-loaded model is reported as unhealthy.
func (u *predictionUsecase) Health(_ context.Context) (*HealthOutput, error) {
	info := u.classifier.Info()
	loaded := info.Status == service.StatusLoaded

	status := "healthy"
	if !loaded {
		status = "unhealthy"
	}

	return &HealthOutput{
		Status:      status,
		ModelLoaded: loaded,
		ModelInfo:   info,
	}, nil
}

// validateText enforces the input contract. The length bound is checked
// before trimming, then the trimmed text is re-checked for emptiness, so a
// whitespace-only text within the bound fails with the emptiness error.
func validateText(text string) (string, error) {
	n := utf8.RuneCountInString(text)
	if n < MinTextLength || n > MaxTextLength {
		return "", fmt.Errorf("%w: text must be between %d and %d characters", ErrInvalidInput, MinTextLength, MaxTextLength)
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: text must not be empty", ErrInvalidInput)
	}
	return trimmed, nil
}

func (u *predictionUsecase) Classify(ctx context.Context, input *ClassifyInput) (*service.ClassificationResult, error) {
	text, err := validateText(input.Text)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if result, ok := u.cache.Get(ctx, text); ok {
			metrics.CacheHits.Inc()
			return result, nil
		}
	}

	start := time.Now()
	result, err := u.classifier.Predict(ctx, text)
	if err != nil {
		if errors.Is(err, service.ErrNotReady) {
			return nil, ErrModelNotReady
		}
		return nil, err
	}
	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	metrics.PredictionsTotal.WithLabelValues(result.Prediction).Inc()

	if u.cache != nil {
		u.cache.Set(ctx, text, result)
	}
	return result, nil
}

func (u *predictionUsecase) ClassifyBatch(ctx context.Context, input *BatchClassifyInput) (*BatchClassifyOutput, error) {
	if len(input.Texts) < MinBatchSize || len(input.Texts) > MaxBatchSize {
		return nil, fmt.Errorf("%w: texts must contain between %d and %d items", ErrInvalidInput, MinBatchSize, MaxBatchSize)
	}

	// Validate every element before touching the classifier; the whole
	// call fails on the first violation and no partial results are
	// returned.
	texts := make([]string, len(input.Texts))
	for i, text := range input.Texts {
		trimmed, err := validateText(text)
		if err != nil {
			return nil, fmt.Errorf("texts[%d]: %w", i, err)
		}
		texts[i] = trimmed
	}

	start := time.Now()
	results, err := u.classifier.PredictBatch(ctx, texts)
	if err != nil {
		if errors.Is(err, service.ErrNotReady) {
			return nil, ErrModelNotReady
		}
		return nil, err
	}
	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	for _, result := range results {
		metrics.PredictionsTotal.WithLabelValues(result.Prediction).Inc()
	}

	return &BatchClassifyOutput{
		Results:        results,
		TotalProcessed: len(results),
	}, nil
}

func (u *predictionUsecase) ModelInfo(_ context.Context) (service.ModelInfo, error) {
	return u.classifier.Info(), nil
}
