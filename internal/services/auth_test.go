package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/types"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme Outfitters", "acme-outfitters"},
		{"punctuation collapses", "Bob's  Surf & Skate!", "bob-s-surf-skate"},
		{"leading junk dropped", "  ---Shop", "shop"},
		{"trailing junk dropped", "Shop!!!", "shop"},
		{"digits kept", "Store 24", "store-24"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := slugify(tc.in); got != tc.want {
				t.Fatalf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

type stubUserRepo struct {
	users map[uuid.UUID]*types.User
}

func (r *stubUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	for _, u := range users {
		r.users[u.ID] = u
	}
	return users, nil
}

func (r *stubUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	var out []*types.User
	for _, id := range userIDs {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
	var out []*types.User
	for _, email := range userEmails {
		for _, u := range r.users {
			if u.Email == email {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
	for _, u := range r.users {
		if u.Email == userEmail {
			return true, nil
		}
	}
	return false, nil
}

type stubUserTokenRepo struct {
	rows map[uuid.UUID]*types.UserToken
}

func (r *stubUserTokenRepo) Create(ctx context.Context, tx *gorm.DB, userTokens []*types.UserToken) ([]*types.UserToken, error) {
	for _, t := range userTokens {
		r.rows[t.ID] = t
	}
	return userTokens, nil
}

func (r *stubUserTokenRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserToken, error) {
	var out []*types.UserToken
	for _, id := range userIDs {
		for _, t := range r.rows {
			if t.UserID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (r *stubUserTokenRepo) GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*types.UserToken, error) {
	var out []*types.UserToken
	for _, tok := range accessTokens {
		for _, t := range r.rows {
			if t.AccessToken == tok {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (r *stubUserTokenRepo) GetByRefreshTokens(ctx context.Context, tx *gorm.DB, refreshTokens []string) ([]*types.UserToken, error) {
	var out []*types.UserToken
	for _, tok := range refreshTokens {
		for _, t := range r.rows {
			if t.RefreshToken == tok {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (r *stubUserTokenRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) error {
	for _, id := range tokenIDs {
		delete(r.rows, id)
	}
	return nil
}

func (r *stubUserTokenRepo) DeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	for _, id := range userIDs {
		for rowID, t := range r.rows {
			if t.UserID == id {
				delete(r.rows, rowID)
			}
		}
	}
	return nil
}

func newRotationFixture(t *testing.T) (*authService, *stubUserTokenRepo, *types.User) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	user := &types.User{
		ID:         uuid.New(),
		MerchantID: uuid.New(),
		Email:      "owner@example.com",
	}
	userRepo := &stubUserRepo{users: map[uuid.UUID]*types.User{user.ID: user}}
	tokenRepo := &stubUserTokenRepo{rows: map[uuid.UUID]*types.UserToken{}}
	svc := &authService{
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: tokenRepo,
		jwtSecretKey:  "rotation-test-secret",
		accessTTL:     time.Minute,
		refreshTTL:    time.Hour,
	}
	return svc, tokenRepo, user
}

func TestRotateRefreshTokenSurvivesExpiredAccessToken(t *testing.T) {
	svc, tokenRepo, user := newRotationFixture(t)

	// Session whose access token expired long ago but whose refresh token
	// row is still valid.
	expiredSvc := &authService{jwtSecretKey: svc.jwtSecretKey, accessTTL: -time.Hour}
	expiredAccess, err := expiredSvc.generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}
	oldRow := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  expiredAccess,
		RefreshToken: "refresh-still-valid",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	tokenRepo.rows[oldRow.ID] = oldRow

	newAccess, newRefresh, err := svc.rotateRefreshToken(context.Background(), nil, "refresh-still-valid")
	if err != nil {
		t.Fatalf("rotateRefreshToken: %v", err)
	}
	if newRefresh == "" || newRefresh == "refresh-still-valid" {
		t.Fatalf("refresh token was not rotated, got %q", newRefresh)
	}

	parsed, err := jwt.ParseWithClaims(newAccess, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(svc.jwtSecretKey), nil
	})
	if err != nil {
		t.Fatalf("new access token does not parse: %v", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		t.Fatalf("new access token invalid")
	}
	if claims.Subject != user.ID.String() {
		t.Fatalf("subject = %q, want %q", claims.Subject, user.ID)
	}
	if claims.MerchantID != user.MerchantID.String() {
		t.Fatalf("merchant claim = %q, want %q", claims.MerchantID, user.MerchantID)
	}

	if _, exists := tokenRepo.rows[oldRow.ID]; exists {
		t.Fatalf("old token row still present after rotation")
	}
	rows, _ := tokenRepo.GetByRefreshTokens(context.Background(), nil, []string{newRefresh})
	if len(rows) != 1 {
		t.Fatalf("new token row not stored, got %d rows", len(rows))
	}
}

func TestRotateRefreshTokenRejectsExpiredRow(t *testing.T) {
	svc, tokenRepo, user := newRotationFixture(t)
	expiredRow := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  "whatever",
		RefreshToken: "refresh-expired",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	tokenRepo.rows[expiredRow.ID] = expiredRow

	if _, _, err := svc.rotateRefreshToken(context.Background(), nil, "refresh-expired"); err == nil {
		t.Fatalf("rotateRefreshToken accepted an expired refresh token")
	}
	if _, exists := tokenRepo.rows[expiredRow.ID]; exists {
		t.Fatalf("expired token row was not deleted")
	}
}

func TestRotateRefreshTokenRejectsUnknownToken(t *testing.T) {
	svc, _, _ := newRotationFixture(t)
	if _, _, err := svc.rotateRefreshToken(context.Background(), nil, "never-issued"); err == nil {
		t.Fatalf("rotateRefreshToken accepted an unknown refresh token")
	}
}
