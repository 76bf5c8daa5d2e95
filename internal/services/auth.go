package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/repos"
	"github.com/merchly/console-backend/internal/requestdata"
	"github.com/merchly/console-backend/internal/types"
)

type JWTClaims struct {
	MerchantID string `json:"merchant_id"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	MerchantName string
	MerchantSlug string
	Email        string
	Password     string
	FirstName    string
	LastName     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	merchantRepo  repos.MerchantRepo
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	merchantRepo repos.MerchantRepo,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           baseLog.With("service", "AuthService"),
		merchantRepo:  merchantRepo,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Register creates the merchant tenant and its owner account in one
// transaction.
func (as *authService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if strings.TrimSpace(input.MerchantName) == "" {
		return nil, fmt.Errorf("merchant name is required")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("Failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("Failed to hash password: %w", err)
	}

	slug := strings.TrimSpace(input.MerchantSlug)
	if slug == "" {
		slug = slugify(input.MerchantName)
	}

	var user *types.User
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, sErr := as.merchantRepo.SlugExists(ctx, tx, slug)
		if sErr != nil {
			return fmt.Errorf("Failed to check merchant slug: %w", sErr)
		}
		if taken {
			return fmt.Errorf("merchant slug already taken")
		}
		merchant := &types.Merchant{
			ID:   uuid.New(),
			Name: strings.TrimSpace(input.MerchantName),
			Slug: slug,
		}
		if _, mErr := as.merchantRepo.Create(ctx, tx, []*types.Merchant{merchant}); mErr != nil {
			return fmt.Errorf("Failed to create merchant: %w", mErr)
		}
		user = &types.User{
			ID:         uuid.New(),
			MerchantID: merchant.ID,
			Email:      email,
			Password:   string(hash),
			FirstName:  strings.TrimSpace(input.FirstName),
			LastName:   strings.TrimSpace(input.LastName),
			Role:       "owner",
		}
		if _, uErr := as.userRepo.Create(ctx, tx, []*types.User{user}); uErr != nil {
			return fmt.Errorf("Failed to create user: %w", uErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("Error retrieving user by email: %w", err)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("invalid credentials")
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", fmt.Errorf("invalid credentials")
	}

	var accessToken, refreshToken string
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("Generate access token error: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); cErr != nil {
			as.log.Warn("Create User Token Error", "error", cErr)
			return fmt.Errorf("Create User Token Error: %w", cErr)
		}
		return nil
	})
	if txErr != nil {
		return "", "", txErr
	}
	return accessToken, refreshToken, nil
}

// Refresh exchanges an opaque refresh token for a fresh token pair. The
// access token may already be expired at this point; only the refresh token
// row decides whether the session continues.
func (as *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", fmt.Errorf("refresh token required")
	}

	var accessToken, newRefreshToken string
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		accessToken, newRefreshToken, err = as.rotateRefreshToken(ctx, tx, refreshToken)
		return err
	})
	if txErr != nil {
		return "", "", txErr
	}
	return accessToken, newRefreshToken, nil
}

// rotateRefreshToken looks the row up by its refresh token, issues a new
// pair and replaces the row. An expired row is deleted so it can never be
// retried.
func (as *authService) rotateRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (string, string, error) {
	foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{refreshToken})
	if ftErr != nil {
		as.log.Warn("Error fetching token row", "error", ftErr)
		return "", "", fmt.Errorf("Error fetching token row: %w", ftErr)
	}
	if len(foundTokens) == 0 || foundTokens[0] == nil {
		return "", "", fmt.Errorf("unknown refresh token")
	}
	existingToken := foundTokens[0]
	if existingToken.ExpiresAt.Before(time.Now()) {
		if dErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dErr != nil {
			as.log.Warn("Refresh token expired, error deleting", "error", dErr)
		}
		return "", "", fmt.Errorf("refresh token expired")
	}
	users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existingToken.UserID})
	if uErr != nil {
		return "", "", fmt.Errorf("Failed to load user for refresh: %w", uErr)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("no user found for the given refresh token")
	}
	user := users[0]
	accessToken, genErr := as.generateAccessToken(user)
	if genErr != nil {
		return "", "", fmt.Errorf("Failed to generate new access token: %w", genErr)
	}
	newRefreshToken := uuid.New().String()
	newUserToken := types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
		return "", "", fmt.Errorf("Failed to create new user token: %w", cErr)
	}
	if dErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dErr != nil {
		return "", "", fmt.Errorf("Failed to remove old token row: %w", dErr)
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return fmt.Errorf("no token in request data")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if ftErr != nil {
			as.log.Warn("Error finding user token from token string", "error", ftErr)
			return fmt.Errorf("Error finding user token from token string: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return nil
		}
		if dErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{foundTokens[0].ID}); dErr != nil {
			as.log.Warn("Error deleting user token", "error", dErr)
			return fmt.Errorf("Error deleting user token: %w", dErr)
		}
		return nil
	})
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("Failed to parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}
	merchantID, err := uuid.Parse(claims.MerchantID)
	if err != nil {
		return ctx, fmt.Errorf("invalid merchant id in token: %w", err)
	}
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		MerchantID:  merchantID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		MerchantID: user.MerchantID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
