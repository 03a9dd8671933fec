package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidmnz/textclassify/internal/domain/service"
)

// MockClassifier is a mock implementation of service.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Load() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClassifier) Predict(ctx context.Context, text string) (*service.ClassificationResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClassificationResult), args.Error(1)
}

func (m *MockClassifier) PredictBatch(ctx context.Context, texts []string) ([]*service.ClassificationResult, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*service.ClassificationResult), args.Error(1)
}

func (m *MockClassifier) Info() service.ModelInfo {
	args := m.Called()
	return args.Get(0).(service.ModelInfo)
}

// MockPredictionCache is a mock implementation of PredictionCache
type MockPredictionCache struct {
	mock.Mock
}

func (m *MockPredictionCache) Get(ctx context.Context, text string) (*service.ClassificationResult, bool) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*service.ClassificationResult), args.Bool(1)
}

func (m *MockPredictionCache) Set(ctx context.Context, text string, result *service.ClassificationResult) {
	m.Called(ctx, text, result)
}

func sampleResult(text, prediction string, confidence float64) *service.ClassificationResult {
	other := 1 - confidence
	probs := map[string]float64{"negativo": other, "positivo": confidence}
	if prediction == "negativo" {
		probs = map[string]float64{"negativo": confidence, "positivo": other}
	}
	return &service.ClassificationResult{
		Text:          text,
		Prediction:    prediction,
		Confidence:    confidence,
		Probabilities: probs,
	}
}

func TestPredictionUsecase_Health(t *testing.T) {
	t.Run("healthy when model is loaded", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		mockClassifier.On("Info").Return(service.ModelInfo{
			Status:    service.StatusLoaded,
			ModelType: "TF-IDF + Logistic Regression",
			Features:  42,
			Classes:   []string{"negativo", "positivo"},
		})
		uc := NewPredictionUsecase(mockClassifier, nil)

		output, err := uc.Health(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "healthy", output.Status)
		assert.True(t, output.ModelLoaded)
		assert.Equal(t, 42, output.ModelInfo.Features)
	})

	t.Run("unhealthy before load, without error", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		mockClassifier.On("Info").Return(service.ModelInfo{Status: service.StatusNotLoaded})
		uc := NewPredictionUsecase(mockClassifier, nil)

		output, err := uc.Health(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "unhealthy", output.Status)
		assert.False(t, output.ModelLoaded)
	})
}

func TestPredictionUsecase_Classify(t *testing.T) {
	t.Run("trims input before delegating", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		expected := sampleResult("hola mundo", "positivo", 0.8)
		mockClassifier.On("Predict", mock.Anything, "hola mundo").Return(expected, nil)
		uc := NewPredictionUsecase(mockClassifier, nil)

		result, err := uc.Classify(context.Background(), &ClassifyInput{Text: "  hola mundo  "})

		require.NoError(t, err)
		assert.Equal(t, expected, result)
		mockClassifier.AssertExpectations(t)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		uc := NewPredictionUsecase(mockClassifier, nil)

		_, err := uc.Classify(context.Background(), &ClassifyInput{Text: ""})

		assert.ErrorIs(t, err, ErrInvalidInput)
		mockClassifier.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
	})

	t.Run("rejects whitespace-only text with the emptiness error", func(t *testing.T) {
		uc := NewPredictionUsecase(new(MockClassifier), nil)

		_, err := uc.Classify(context.Background(), &ClassifyInput{Text: "   \t  "})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "must not be empty")
	})

	t.Run("accepts exactly the maximum length", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		text := strings.Repeat("a", MaxTextLength)
		mockClassifier.On("Predict", mock.Anything, text).Return(sampleResult(text, "positivo", 0.6), nil)
		uc := NewPredictionUsecase(mockClassifier, nil)

		_, err := uc.Classify(context.Background(), &ClassifyInput{Text: text})

		assert.NoError(t, err)
	})

	t.Run("rejects text above the maximum length", func(t *testing.T) {
		uc := NewPredictionUsecase(new(MockClassifier), nil)

		_, err := uc.Classify(context.Background(), &ClassifyInput{Text: strings.Repeat("a", MaxTextLength+1)})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "between")
	})

	t.Run("maps classifier not-ready to ErrModelNotReady", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		mockClassifier.On("Predict", mock.Anything, "hola").Return(nil, service.ErrNotReady)
		uc := NewPredictionUsecase(mockClassifier, nil)

		_, err := uc.Classify(context.Background(), &ClassifyInput{Text: "hola"})

		assert.ErrorIs(t, err, ErrModelNotReady)
	})

	t.Run("passes through unexpected classifier errors", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		boom := errors.New("inference exploded")
		mockClassifier.On("Predict", mock.Anything, "hola").Return(nil, boom)
		uc := NewPredictionUsecase(mockClassifier, nil)

		_, err := uc.Classify(context.Background(), &ClassifyInput{Text: "hola"})

		assert.ErrorIs(t, err, boom)
	})

	t.Run("returns cached result without calling the classifier", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		mockCache := new(MockPredictionCache)
		cached := sampleResult("hola", "positivo", 0.9)
		mockCache.On("Get", mock.Anything, "hola").Return(cached, true)
		uc := NewPredictionUsecase(mockClassifier, mockCache)

		result, err := uc.Classify(context.Background(), &ClassifyInput{Text: " hola "})

		require.NoError(t, err)
		assert.Equal(t, cached, result)
		mockClassifier.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
	})

	t.Run("stores fresh results in the cache", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		mockCache := new(MockPredictionCache)
		fresh := sampleResult("hola", "negativo", 0.7)
		mockCache.On("Get", mock.Anything, "hola").Return(nil, false)
		mockClassifier.On("Predict", mock.Anything, "hola").Return(fresh, nil)
		mockCache.On("Set", mock.Anything, "hola", fresh).Return()
		uc := NewPredictionUsecase(mockClassifier, mockCache)

		_, err := uc.Classify(context.Background(), &ClassifyInput{Text: "hola"})

		require.NoError(t, err)
		mockCache.AssertExpectations(t)
	})
}

func TestPredictionUsecase_ClassifyBatch(t *testing.T) {
	t.Run("rejects an empty batch", func(t *testing.T) {
		uc := NewPredictionUsecase(new(MockClassifier), nil)

		_, err := uc.ClassifyBatch(context.Background(), &BatchClassifyInput{Texts: nil})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects a batch above the maximum size", func(t *testing.T) {
		texts := make([]string, MaxBatchSize+1)
		for i := range texts {
			texts[i] = "hola"
		}
		uc := NewPredictionUsecase(new(MockClassifier), nil)

		_, err := uc.ClassifyBatch(context.Background(), &BatchClassifyInput{Texts: texts})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("accepts batches of exactly one and exactly the maximum", func(t *testing.T) {
		for _, size := range []int{MinBatchSize, MaxBatchSize} {
			mockClassifier := new(MockClassifier)
			texts := make([]string, size)
			results := make([]*service.ClassificationResult, size)
			for i := range texts {
				texts[i] = "hola"
				results[i] = sampleResult("hola", "positivo", 0.8)
			}
			mockClassifier.On("PredictBatch", mock.Anything, texts).Return(results, nil)
			uc := NewPredictionUsecase(mockClassifier, nil)

			output, err := uc.ClassifyBatch(context.Background(), &BatchClassifyInput{Texts: texts})

			require.NoError(t, err, "batch size %d", size)
			assert.Equal(t, size, output.TotalProcessed)
			assert.Len(t, output.Results, size)
		}
	})

	t.Run("rejects the whole batch on one invalid element", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		uc := NewPredictionUsecase(mockClassifier, nil)

		_, err := uc.ClassifyBatch(context.Background(), &BatchClassifyInput{
			Texts: []string{"hola", "   ", "mundo"},
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "texts[1]")
		mockClassifier.AssertNotCalled(t, "PredictBatch", mock.Anything, mock.Anything)
	})

	t.Run("delegates once with trimmed elements in order", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		trimmed := []string{"hola", "mundo"}
		results := []*service.ClassificationResult{
			sampleResult("hola", "positivo", 0.8),
			sampleResult("mundo", "negativo", 0.6),
		}
		mockClassifier.On("PredictBatch", mock.Anything, trimmed).Return(results, nil).Once()
		uc := NewPredictionUsecase(mockClassifier, nil)

		output, err := uc.ClassifyBatch(context.Background(), &BatchClassifyInput{
			Texts: []string{" hola ", "mundo "},
		})

		require.NoError(t, err)
		assert.Equal(t, results, output.Results)
		assert.Equal(t, 2, output.TotalProcessed)
		mockClassifier.AssertExpectations(t)
	})

	t.Run("maps classifier not-ready to ErrModelNotReady", func(t *testing.T) {
		mockClassifier := new(MockClassifier)
		mockClassifier.On("PredictBatch", mock.Anything, []string{"hola"}).Return(nil, service.ErrNotReady)
		uc := NewPredictionUsecase(mockClassifier, nil)

		_, err := uc.ClassifyBatch(context.Background(), &BatchClassifyInput{Texts: []string{"hola"}})

		assert.ErrorIs(t, err, ErrModelNotReady)
	})
}

func TestPredictionUsecase_ModelInfo(t *testing.T) {
	mockClassifier := new(MockClassifier)
	info := service.ModelInfo{
		Status:    service.StatusLoaded,
		ModelType: "TF-IDF + Logistic Regression",
		Features:  42,
		Classes:   []string{"negativo", "positivo"},
	}
	mockClassifier.On("Info").Return(info)
	uc := NewPredictionUsecase(mockClassifier, nil)

	got, err := uc.ModelInfo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, info, got)
}
