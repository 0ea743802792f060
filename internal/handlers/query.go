package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/services"
)

type QueryHandler struct {
	queryService services.QueryService
}

func NewQueryHandler(queryService services.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

func (qh *QueryHandler) Query(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		RespondError(c, err)
		return
	}

	var req struct {
		Query     string   `json:"query"`
		Model     string   `json:"model"`
		TopK      int      `json:"top_k"`
		Threshold *float64 `json:"threshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperrors.Validation("invalid request body"))
		return
	}

	res, err := qh.queryService.Query(c.Request.Context(), userID, services.QueryRequest{
		Query:     req.Query,
		Model:     req.Model,
		TopK:      req.TopK,
		Threshold: req.Threshold,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"answer":       res.Answer,
		"model_used":   res.ModelUsed,
		"sources":      res.Sources,
		"chunks_found": res.ChunksFound,
	})
}
