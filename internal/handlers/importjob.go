package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/merchly/console-backend/internal/services"
)

// maxCSVUploadBytes caps product CSV uploads at 10 MiB.
const maxCSVUploadBytes = 10 << 20

type ImportJobHandler struct {
	importJobService services.ImportJobService
}

func NewImportJobHandler(importJobService services.ImportJobService) *ImportJobHandler {
	return &ImportJobHandler{importJobService: importJobService}
}

// UploadProductCSV accepts a multipart "file" field or a raw CSV body and
// queues the import.
func (ih *ImportJobHandler) UploadProductCSV(c *gin.Context) {
	fileName := "upload.csv"
	var data []byte

	if fileHeader, err := c.FormFile("file"); err == nil {
		if fileHeader.Size > maxCSVUploadBytes {
			RespondError(c, http.StatusRequestEntityTooLarge, "too_large", fmt.Errorf("file exceeds upload limit"))
			return
		}
		f, openErr := fileHeader.Open()
		if openErr != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("could not open upload"))
			return
		}
		defer f.Close()
		data, err = io.ReadAll(io.LimitReader(f, maxCSVUploadBytes+1))
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("could not read upload"))
			return
		}
		fileName = fileHeader.Filename
	} else {
		body, readErr := io.ReadAll(io.LimitReader(c.Request.Body, maxCSVUploadBytes+1))
		if readErr != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("could not read body"))
			return
		}
		data = body
	}
	if len(data) > maxCSVUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "too_large", fmt.Errorf("upload exceeds limit"))
		return
	}

	job, err := ih.importJobService.EnqueueProductCSV(c.Request.Context(), fileName, data)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"job": job})
}

func (ih *ImportJobHandler) List(c *gin.Context) {
	jobs, err := ih.importJobService.ListJobs(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"jobs": jobs})
}

func (ih *ImportJobHandler) Get(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid job id"))
		return
	}
	job, err := ih.importJobService.GetJob(c.Request.Context(), jobID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"job": job})
}
