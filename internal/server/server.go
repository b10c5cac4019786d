// Package server is the thin HTTP transport over the ask pipeline.
package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"courseqa/internal/domain"
)

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// New builds the gin router for the given ask service.
func New(svc domain.AskService) *gin.Engine {
	router := gin.Default()
	router.Use(requestID())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/ask", func(c *gin.Context) {
		var req askRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		answer, err := svc.Ask(c.Request.Context(), req.Question)
		if err != nil {
			status, msg := classify(err)
			log.Printf("ask failed rid=%s: %v", c.GetString("request_id"), err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, askResponse{Success: true, Response: answer})
	})

	return router
}

// classify maps stage errors to a client-facing status and concise message.
// Raw remote diagnostics stay in the log.
func classify(err error) (int, string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Reason
	}
	var ee *domain.EmbeddingError
	if errors.As(err, &ee) {
		return http.StatusBadGateway, "failed to create embedding"
	}
	var se *domain.SynthesisError
	if errors.As(err, &se) {
		return http.StatusBadGateway, "failed to get response from language model"
	}
	return http.StatusInternalServerError, "internal error"
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := uuid.NewString()
		c.Set("request_id", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}
