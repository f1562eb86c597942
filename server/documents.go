package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/ingestion"
)

type processRequest struct {
	FilePath string `json:"file_path" binding:"required"`
}

// processDocument submits one file for background ingestion.
// The asset id is null until the task succeeds.
func (s *Server) processDocument(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file_path is required"})
		return
	}

	taskID, err := s.runner.Submit(c.Request.Context(), req.FilePath)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "asset_id": nil})
}

// processFolder submits every supported file under a folder.
func (s *Server) processFolder(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file_path is required"})
		return
	}

	submitted, err := s.runner.SubmitFolder(c.Request.Context(), req.FilePath)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(submitted) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "no supported documents found in folder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": submitted})
}

// documentStatus reports the task lifecycle state, with the asset id on
// success and the failure reason on failure.
func (s *Server) documentStatus(c *gin.Context) {
	task, err := s.runner.Status(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := gin.H{"status": task.Status}
	if task.Status == core.TaskSuccess {
		resp["asset_id"] = task.AssetID
	}
	if task.Status == core.TaskFailure {
		resp["error"] = task.Error
	}
	c.JSON(http.StatusOK, resp)
}

// listDocuments reports every stored asset with its chunk inventory.
func (s *Server) listDocuments(c *gin.Context) {
	docs, err := ingestion.ListDocuments(c.Request.Context(), s.vectors)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if docs == nil {
		docs = []*core.StoredDocument{}
	}
	c.JSON(http.StatusOK, docs)
}

// listFiles reports the supported source files under the configured docs
// directory.
func (s *Server) listFiles(c *gin.Context) {
	if s.docsDir == "" {
		c.JSON(http.StatusOK, gin.H{"files": []string{}})
		return
	}

	files, err := core.ScanFolder(s.docsDir)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if files == nil {
		files = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}
