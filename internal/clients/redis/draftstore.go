package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/types"
	"github.com/merchly/console-backend/internal/utils"
)

// draftKeyPrefix is the well-known key namespace for builder drafts. The
// stored value is the authoring document JSON with currentStep merged in as
// a top-level field.
const draftKeyPrefix = "quiz-builder-draft"

type DraftStore interface {
	Save(ctx context.Context, merchantID, quizID uuid.UUID, doc types.QuizDocument, currentStep int) error
	Load(ctx context.Context, merchantID, quizID uuid.UUID) (*types.QuizDocument, int, bool, error)
	Clear(ctx context.Context, merchantID, quizID uuid.UUID) error
	Close() error
}

type draftStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewDraftStore(log *logger.Logger) (DraftStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &draftStore{
		log: log.With("service", "RedisDraftStore"),
		rdb: rdb,
		ttl: draftTTL(log),
	}, nil
}

// draftTTL reads DRAFT_TTL_HOURS, defaulting to two weeks. Zero and negative
// values fall back to the default rather than producing keys that never
// expire.
func draftTTL(log *logger.Logger) time.Duration {
	const defaultHours = 14 * 24
	hours := utils.GetEnvAsInt("DRAFT_TTL_HOURS", defaultHours, log)
	if hours <= 0 {
		hours = defaultHours
	}
	return time.Duration(hours) * time.Hour
}

func (s *draftStore) Save(ctx context.Context, merchantID, quizID uuid.UUID, doc types.QuizDocument, currentStep int) error {
	payload, err := encodeDraft(doc, currentStep)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.rdb.Set(ctx, draftKey(merchantID, quizID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

// Load returns ok=false both when no draft exists and when the stored value
// no longer parses; a malformed draft is useless either way and the builder
// starts fresh.
func (s *draftStore) Load(ctx context.Context, merchantID, quizID uuid.UUID) (*types.QuizDocument, int, bool, error) {
	raw, err := s.rdb.Get(ctx, draftKey(merchantID, quizID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("load draft: %w", err)
	}
	doc, step, err := decodeDraft(raw)
	if err != nil {
		s.log.Warn("Discarding malformed draft", "merchant_id", merchantID, "quiz_id", quizID, "error", err)
		return nil, 0, false, nil
	}
	return doc, step, true, nil
}

func (s *draftStore) Clear(ctx context.Context, merchantID, quizID uuid.UUID) error {
	if err := s.rdb.Del(ctx, draftKey(merchantID, quizID)).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

func (s *draftStore) Close() error {
	return s.rdb.Close()
}

func draftKey(merchantID, quizID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", draftKeyPrefix, merchantID, quizID)
}

func encodeDraft(doc types.QuizDocument, currentStep int) ([]byte, error) {
	doc.CurrentStep = currentStep
	return json.Marshal(doc)
}

func decodeDraft(raw []byte) (*types.QuizDocument, int, error) {
	var doc types.QuizDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, 0, err
	}
	step := doc.CurrentStep
	doc.CurrentStep = 0
	return &doc, step, nil
}
