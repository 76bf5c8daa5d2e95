package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merchly/console-backend/internal/services"
)

type SettingsHandler struct {
	settingsService services.SettingsService
}

func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (sh *SettingsHandler) Get(c *gin.Context) {
	settings, err := sh.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"settings": settings})
}

// UpdateSection takes the raw request body as the new section value so the
// console can store arbitrary form shapes.
func (sh *SettingsHandler) UpdateSection(c *gin.Context) {
	section := c.Param("section")
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("could not read body"))
		return
	}
	settings, err := sh.settingsService.UpdateSection(c.Request.Context(), section, json.RawMessage(body))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"settings": settings})
}
