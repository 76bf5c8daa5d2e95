package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/merchly/console-backend/internal/services"
	"github.com/merchly/console-backend/internal/types"
)

type DraftHandler struct {
	draftService services.DraftService
}

func NewDraftHandler(draftService services.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

func (dh *DraftHandler) Save(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid quiz id"))
		return
	}
	var req struct {
		Document    types.QuizDocument `json:"document"`
		CurrentStep int                `json:"currentStep"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body"))
		return
	}
	saved, err := dh.draftService.SaveDraft(c.Request.Context(), quizID, req.Document, req.CurrentStep)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"saved": saved})
}

func (dh *DraftHandler) Load(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid quiz id"))
		return
	}
	doc, currentStep, ok, err := dh.draftService.LoadDraft(c.Request.Context(), quizID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !ok {
		RespondOK(c, gin.H{"found": false})
		return
	}
	RespondOK(c, gin.H{"found": true, "document": doc, "currentStep": currentStep})
}

func (dh *DraftHandler) Clear(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid quiz id"))
		return
	}
	if err := dh.draftService.ClearDraft(c.Request.Context(), quizID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"cleared": true})
}
