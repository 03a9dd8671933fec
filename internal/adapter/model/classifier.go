package model

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/davidmnz/textclassify/internal/domain/service"
)

const (
	modelType   = "TF-IDF + Logistic Regression"
	maxFeatures = 1000
)

// artifact is the gob-serialized form of a trained model. The format is
// private to this package.
type artifact struct {
	Vocabulary map[string]int
	IDF        []float64
	Weights    []float64
	Bias       float64
	Classes    []string
}

// TextClassifier is an in-process TF-IDF + logistic regression classifier
// implementing service.Classifier. Load runs once before the server accepts
// traffic; afterwards the model is immutable and shared by all requests.
type TextClassifier struct {
	path    string
	log     *zap.Logger
	vec     *vectorizer
	model   *logisticModel
	classes []string
	loaded  bool
}

// NewTextClassifier creates a classifier that persists its model at path.
func NewTextClassifier(path string, log *zap.Logger) *TextClassifier {
	return &TextClassifier{path: path, log: log}
}

// Load loads the persisted model from disk. When no artifact exists it
// trains a bootstrap model from the embedded corpus and persists it.
func (c *TextClassifier) Load() error {
	if _, err := os.Stat(c.path); err == nil {
		if err := c.loadArtifact(); err != nil {
			return fmt.Errorf("failed to load model from %s: %w", c.path, err)
		}
		c.log.Info("Model loaded from disk",
			zap.String("path", c.path),
			zap.Int("features", len(c.vec.IDF)))
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat model file %s: %w", c.path, err)
	}

	c.log.Warn("Model file not found, training bootstrap model", zap.String("path", c.path))
	if err := c.bootstrap(); err != nil {
		return fmt.Errorf("failed to bootstrap model: %w", err)
	}
	return nil
}

func (c *TextClassifier) bootstrap() error {
	docs := make([]string, len(bootstrapCorpus))
	classes := make([]int, len(bootstrapCorpus))
	for i, ex := range bootstrapCorpus {
		docs[i] = ex.Text
		classes[i] = ex.Class
	}

	vec := fitVectorizer(docs, maxFeatures)
	vecs := make([][]float64, len(docs))
	for i, doc := range docs {
		vecs[i] = vec.Transform(doc)
	}

	c.vec = vec
	c.model = trainLogistic(vecs, classes)
	c.classes = classLabels

	if err := c.saveArtifact(); err != nil {
		return err
	}
	c.loaded = true
	c.log.Info("Bootstrap model trained and saved",
		zap.String("path", c.path),
		zap.Int("features", len(c.vec.IDF)),
		zap.Int("examples", len(docs)))
	return nil
}

func (c *TextClassifier) saveArtifact() error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create model directory: %w", err)
		}
	}
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer f.Close()

	art := artifact{
		Vocabulary: c.vec.Vocabulary,
		IDF:        c.vec.IDF,
		Weights:    c.model.Weights,
		Bias:       c.model.Bias,
		Classes:    c.classes,
	}
	if err := gob.NewEncoder(f).Encode(&art); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

func (c *TextClassifier) loadArtifact() error {
	f, err := os.Open(c.path)
	if err != nil {
		return err
	}
	defer f.Close()

	var art artifact
	if err := gob.NewDecoder(f).Decode(&art); err != nil {
		return fmt.Errorf("corrupt model artifact: %w", err)
	}
	if len(art.IDF) != len(art.Vocabulary) || len(art.Weights) != len(art.IDF) || len(art.Classes) != 2 {
		return errors.New("corrupt model artifact: inconsistent dimensions")
	}

	c.vec = &vectorizer{Vocabulary: art.Vocabulary, IDF: art.IDF}
	c.model = &logisticModel{Weights: art.Weights, Bias: art.Bias}
	c.classes = art.Classes
	c.loaded = true
	return nil
}

// Predict classifies a single text.
func (c *TextClassifier) Predict(_ context.Context, text string) (*service.ClassificationResult, error) {
	if !c.loaded {
		return nil, service.ErrNotReady
	}
	result := c.classify(text)
	c.log.Debug("Prediction made",
		zap.String("text", truncate(text, 50)),
		zap.String("prediction", result.Prediction),
		zap.Float64("confidence", result.Confidence))
	return result, nil
}

// PredictBatch classifies multiple texts, preserving input order.
func (c *TextClassifier) PredictBatch(_ context.Context, texts []string) ([]*service.ClassificationResult, error) {
	if !c.loaded {
		return nil, service.ErrNotReady
	}
	results := make([]*service.ClassificationResult, len(texts))
	for i, text := range texts {
		results[i] = c.classify(text)
	}
	c.log.Debug("Batch prediction made", zap.Int("count", len(results)))
	return results, nil
}

func (c *TextClassifier) classify(text string) *service.ClassificationResult {
	pPositive := c.model.predictProba(c.vec.Transform(text))

	prediction := c.classes[1]
	confidence := pPositive
	if pPositive < 0.5 {
		prediction = c.classes[0]
		confidence = 1 - pPositive
	}

	return &service.ClassificationResult{
		Text:       text,
		Prediction: prediction,
		Confidence: confidence,
		Probabilities: map[string]float64{
			c.classes[0]: 1 - pPositive,
			c.classes[1]: pPositive,
		},
	}
}

// Info reports the model's load status and metadata.
func (c *TextClassifier) Info() service.ModelInfo {
	if !c.loaded {
		return service.ModelInfo{Status: service.StatusNotLoaded}
	}
	return service.ModelInfo{
		Status:    service.StatusLoaded,
		ModelType: modelType,
		Features:  len(c.vec.IDF),
		Classes:   append([]string(nil), c.classes...),
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
