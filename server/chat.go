package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type startChatRequest struct {
	AssetID string `json:"asset_id" binding:"required"`
}

type sendMessageRequest struct {
	ThreadID string `json:"thread_id" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// startChat opens a new thread for an ingested asset.
func (s *Server) startChat(c *gin.Context) {
	var req startChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "asset_id is required"})
		return
	}

	thread, err := s.orchestrator.StartThread(c.Request.Context(), req.AssetID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"thread_id": thread.ID})
}

// sendMessage runs one message turn and streams the answer tokens as they
// arrive. Lookup and validation failures surface as regular JSON errors
// before the stream starts.
func (s *Server) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "thread_id and message are required"})
		return
	}

	tokens, err := s.orchestrator.Send(c.Request.Context(), req.ThreadID, req.Message)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	c.Stream(func(w io.Writer) bool {
		token, ok := <-tokens
		if !ok {
			return false
		}
		if _, err := io.WriteString(w, token); err != nil {
			return false
		}
		return true
	})
}

// chatHistory returns the ordered message log of a thread.
func (s *Server) chatHistory(c *gin.Context) {
	threadID := c.Query("thread_id")
	if threadID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "thread_id is required"})
		return
	}

	messages, err := s.orchestrator.History(c.Request.Context(), threadID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// listThreads returns thread summaries, optionally scoped to one asset,
// sorted by last activity.
func (s *Server) listThreads(c *gin.Context) {
	threads, err := s.orchestrator.Threads(c.Request.Context(), c.Query("asset_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}
