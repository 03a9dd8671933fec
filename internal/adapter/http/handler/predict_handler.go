package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davidmnz/textclassify/internal/usecase"
)

// PredictHandler handles prediction-related HTTP requests
type PredictHandler struct {
	predictionUC usecase.PredictionUsecase
}

// NewPredictHandler creates a new prediction handler
func NewPredictHandler(predictionUC usecase.PredictionUsecase) *PredictHandler {
	return &PredictHandler{predictionUC: predictionUC}
}

// Predict handles POST /predict
func (h *PredictHandler) Predict(c *gin.Context) {
	var input usecase.ClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	result, err := h.predictionUC.Classify(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, result)
}

// PredictBatch handles POST /predict/batch
func (h *PredictHandler) PredictBatch(c *gin.Context) {
	var input usecase.BatchClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.predictionUC.ClassifyBatch(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ModelInfo handles GET /model/info
func (h *PredictHandler) ModelInfo(c *gin.Context) {
	info, err := h.predictionUC.ModelInfo(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, info)
}
