package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/merchly/console-backend/internal/logger"
	apperrors "github.com/merchly/console-backend/internal/pkg/errors"
	"github.com/merchly/console-backend/internal/repos"
	"github.com/merchly/console-backend/internal/requestdata"
	"github.com/merchly/console-backend/internal/types"
)

type QuizService interface {
	ListQuizzes(ctx context.Context) ([]*types.Quiz, error)
	CreateQuiz(ctx context.Context, name, slug string, doc types.QuizDocument) (*types.Quiz, error)
	GetQuiz(ctx context.Context, quizID uuid.UUID) (*types.Quiz, error)
	UpdateQuizDocument(ctx context.Context, quizID uuid.UUID, doc types.QuizDocument) (*types.Quiz, error)
	DeleteQuiz(ctx context.Context, quizID uuid.UUID) error
	DecodeDocument(quiz *types.Quiz) (types.QuizDocument, error)
}

type quizService struct {
	db       *gorm.DB
	log      *logger.Logger
	quizRepo repos.QuizRepo
}

func NewQuizService(db *gorm.DB, baseLog *logger.Logger, quizRepo repos.QuizRepo) QuizService {
	return &quizService{
		db:       db,
		log:      baseLog.With("service", "QuizService"),
		quizRepo: quizRepo,
	}
}

func (s *quizService) ListQuizzes(ctx context.Context) ([]*types.Quiz, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	return s.quizRepo.GetByMerchantID(ctx, nil, rd.MerchantID)
}

func (s *quizService) CreateQuiz(ctx context.Context, name, slug string, doc types.QuizDocument) (*types.Quiz, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	if name == "" {
		name = doc.QuizDetails.Name
	}
	if name == "" {
		return nil, fmt.Errorf("quiz name required: %w", apperrors.ErrInvalidArgument)
	}
	if slug == "" {
		slug = doc.QuizDetails.Slug
	}
	if slug == "" {
		slug = slugify(name)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode quiz document: %w", err)
	}
	quiz := &types.Quiz{
		ID:         uuid.New(),
		MerchantID: rd.MerchantID,
		Name:       name,
		Slug:       slug,
		Status:     "draft",
		Document:   datatypes.JSON(raw),
	}
	if _, err := s.quizRepo.Create(ctx, nil, []*types.Quiz{quiz}); err != nil {
		s.log.Warn("CreateQuiz failed", "error", err, "merchant_id", rd.MerchantID)
		return nil, err
	}
	return quiz, nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID uuid.UUID) (*types.Quiz, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	quiz, err := s.quizRepo.GetByID(ctx, nil, rd.MerchantID, quizID)
	if err != nil {
		s.log.Warn("GetQuiz failed", "error", err, "quiz_id", quizID)
		return nil, err
	}
	if quiz == nil {
		return nil, apperrors.ErrNotFound
	}
	return quiz, nil
}

func (s *quizService) UpdateQuizDocument(ctx context.Context, quizID uuid.UUID, doc types.QuizDocument) (*types.Quiz, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	quiz, err := s.quizRepo.GetByID(ctx, nil, rd.MerchantID, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, apperrors.ErrNotFound
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode quiz document: %w", err)
	}
	updates := map[string]interface{}{
		"document":   datatypes.JSON(raw),
		"updated_at": time.Now(),
	}
	if doc.QuizDetails.Name != "" {
		updates["name"] = doc.QuizDetails.Name
	}
	if doc.QuizDetails.Slug != "" {
		updates["slug"] = doc.QuizDetails.Slug
	}
	if err := s.quizRepo.UpdateFields(ctx, nil, rd.MerchantID, quizID, updates); err != nil {
		s.log.Warn("UpdateQuizDocument failed", "error", err, "quiz_id", quizID)
		return nil, err
	}
	return s.quizRepo.GetByID(ctx, nil, rd.MerchantID, quizID)
}

func (s *quizService) DeleteQuiz(ctx context.Context, quizID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return apperrors.ErrUnauthorized
	}
	return s.quizRepo.SoftDeleteByID(ctx, nil, rd.MerchantID, quizID)
}

// DecodeDocument parses the stored jsonb column. An empty column decodes to
// an empty document rather than an error so a freshly created quiz can open
// in the builder.
func (s *quizService) DecodeDocument(quiz *types.Quiz) (types.QuizDocument, error) {
	var doc types.QuizDocument
	if quiz == nil || len(quiz.Document) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(quiz.Document, &doc); err != nil {
		return types.QuizDocument{}, fmt.Errorf("decode quiz document: %w", err)
	}
	return doc, nil
}
