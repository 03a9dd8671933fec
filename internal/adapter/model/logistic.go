package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Training hyperparameters. Fixed so that bootstrap training is
// deterministic across runs.
const (
	trainIterations = 1000
	learningRate    = 0.5
)

// logisticModel is a binary logistic regression over TF-IDF features.
// The output of predictProba is the probability of the positive class.
type logisticModel struct {
	Weights []float64
	Bias    float64
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// trainLogistic fits the model with full-batch gradient descent from a zero
// initialization. classes[i] must be 0 or 1.
func trainLogistic(vecs [][]float64, classes []int) *logisticModel {
	dim := 0
	if len(vecs) > 0 {
		dim = len(vecs[0])
	}
	w := make([]float64, dim)
	b := 0.0
	grad := make([]float64, dim)
	n := float64(len(vecs))

	for iter := 0; iter < trainIterations; iter++ {
		for i := range grad {
			grad[i] = 0
		}
		gb := 0.0
		for i, x := range vecs {
			residual := sigmoid(floats.Dot(w, x)+b) - float64(classes[i])
			floats.AddScaled(grad, residual, x)
			gb += residual
		}
		floats.AddScaled(w, -learningRate/n, grad)
		b -= learningRate / n * gb
	}

	return &logisticModel{Weights: w, Bias: b}
}

func (m *logisticModel) predictProba(x []float64) float64 {
	return sigmoid(floats.Dot(m.Weights, x) + m.Bias)
}
