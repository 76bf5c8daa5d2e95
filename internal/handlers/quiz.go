package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/merchly/console-backend/internal/quizgraph"
	"github.com/merchly/console-backend/internal/services"
	"github.com/merchly/console-backend/internal/types"
)

type QuizHandler struct {
	quizService   services.QuizService
	exportService services.ExportService
}

func NewQuizHandler(quizService services.QuizService, exportService services.ExportService) *QuizHandler {
	return &QuizHandler{quizService: quizService, exportService: exportService}
}

func (qh *QuizHandler) List(c *gin.Context) {
	quizzes, err := qh.quizService.ListQuizzes(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"quizzes": quizzes})
}

func (qh *QuizHandler) Create(c *gin.Context) {
	var req struct {
		Name     string             `json:"name"`
		Slug     string             `json:"slug"`
		Document types.QuizDocument `json:"document"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body"))
		return
	}
	quiz, err := qh.quizService.CreateQuiz(c.Request.Context(), req.Name, req.Slug, req.Document)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"quiz": quiz})
}

func (qh *QuizHandler) Get(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid quiz id"))
		return
	}
	quiz, err := qh.quizService.GetQuiz(c.Request.Context(), quizID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"quiz": quiz})
}

func (qh *QuizHandler) UpdateDocument(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid quiz id"))
		return
	}
	var req struct {
		Document types.QuizDocument `json:"document"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body"))
		return
	}
	quiz, err := qh.quizService.UpdateQuizDocument(c.Request.Context(), quizID, req.Document)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"quiz": quiz})
}

func (qh *QuizHandler) Delete(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid quiz id"))
		return
	}
	if err := qh.quizService.DeleteQuiz(c.Request.Context(), quizID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// Export serves the sanitized document as a JSON file download.
func (qh *QuizHandler) Export(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid quiz id"))
		return
	}
	export, fileName, err := qh.exportService.BuildExportDocument(c.Request.Context(), quizID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	body, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/json", body)
}

// Preview returns the sanitized export document inline, without forcing a
// file download. The console uses it to show the flow summaries.
func (qh *QuizHandler) Preview(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid quiz id"))
		return
	}
	export, _, err := qh.exportService.BuildExportDocument(c.Request.Context(), quizID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"export": export})
}

// Import replaces a quiz's document from a previously exported file.
func (qh *QuizHandler) Import(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid quiz id"))
		return
	}
	var export quizgraph.ExportDocument
	if err := c.ShouldBindJSON(&export); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid export document"))
		return
	}
	quiz, err := qh.exportService.ImportDocument(c.Request.Context(), quizID, export)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"quiz": quiz})
}
