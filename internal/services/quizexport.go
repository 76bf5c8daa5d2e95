package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/merchly/console-backend/internal/logger"
	apperrors "github.com/merchly/console-backend/internal/pkg/errors"
	"github.com/merchly/console-backend/internal/quizgraph"
	"github.com/merchly/console-backend/internal/types"
)

// ExportService wraps the quizgraph pipeline for a stored quiz. The preview
// payload and the download artifact come from the same BuildExportDocument
// call so the two can never diverge.
type ExportService interface {
	BuildExportDocument(ctx context.Context, quizID uuid.UUID) (quizgraph.ExportDocument, string, error)
	ImportDocument(ctx context.Context, quizID uuid.UUID, export quizgraph.ExportDocument) (*types.Quiz, error)
}

type exportService struct {
	log     *logger.Logger
	quizSvc QuizService
	now     func() time.Time
}

func NewExportService(baseLog *logger.Logger, quizSvc QuizService) ExportService {
	return &exportService{
		log:     baseLog.With("service", "ExportService"),
		quizSvc: quizSvc,
		now:     time.Now,
	}
}

func (s *exportService) BuildExportDocument(ctx context.Context, quizID uuid.UUID) (quizgraph.ExportDocument, string, error) {
	quiz, err := s.quizSvc.GetQuiz(ctx, quizID)
	if err != nil {
		return quizgraph.ExportDocument{}, "", err
	}
	if len(quiz.Document) == 0 {
		return quizgraph.ExportDocument{}, "", fmt.Errorf("quiz has no document: %w", apperrors.ErrNotFound)
	}
	doc, err := s.quizSvc.DecodeDocument(quiz)
	if err != nil {
		return quizgraph.ExportDocument{}, "", err
	}
	export := quizgraph.Sanitize(doc)
	return export, ExportFileName(export.QuizDetails.Name, s.now()), nil
}

// ImportDocument restores a previously exported file into an existing quiz.
func (s *exportService) ImportDocument(ctx context.Context, quizID uuid.UUID, export quizgraph.ExportDocument) (*types.Quiz, error) {
	doc := quizgraph.DocumentFromExport(export)
	return s.quizSvc.UpdateQuizDocument(ctx, quizID, doc)
}

// ExportFileName follows the download convention
// "quiz-{name or export}-{unixMillis}.json".
func ExportFileName(quizName string, at time.Time) string {
	name := quizName
	if name == "" {
		name = "export"
	}
	return fmt.Sprintf("quiz-%s-%d.json", name, at.UnixMilli())
}
