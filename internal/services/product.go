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

type ProductInput struct {
	Name        string   `json:"name"`
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]*types.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*types.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*types.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

type productService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
}

func NewProductService(db *gorm.DB, baseLog *logger.Logger, productRepo repos.ProductRepo) ProductService {
	return &productService{
		db:          db,
		log:         baseLog.With("service", "ProductService"),
		productRepo: productRepo,
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]*types.Product, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	return s.productRepo.GetByMerchantID(ctx, nil, rd.MerchantID)
}

func (s *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	product, err := s.productRepo.GetByID(ctx, nil, rd.MerchantID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.ErrNotFound
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*types.Product, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	if input.Name == "" {
		return nil, fmt.Errorf("product name required: %w", apperrors.ErrInvalidArgument)
	}
	images, err := encodeImages(input.Images)
	if err != nil {
		return nil, err
	}
	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}
	status := input.Status
	if status == "" {
		status = "draft"
	}
	product := &types.Product{
		ID:          uuid.New(),
		MerchantID:  rd.MerchantID,
		Name:        input.Name,
		SKU:         input.SKU,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    currency,
		Images:      images,
		Status:      status,
	}
	if _, err := s.productRepo.Create(ctx, nil, []*types.Product{product}); err != nil {
		s.log.Warn("CreateProduct failed", "error", err, "merchant_id", rd.MerchantID)
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*types.Product, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	existing, err := s.productRepo.GetByID(ctx, nil, rd.MerchantID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.ErrNotFound
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.SKU != "" {
		updates["sku"] = input.SKU
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.PriceCents > 0 {
		updates["price_cents"] = input.PriceCents
	}
	if input.Currency != "" {
		updates["currency"] = input.Currency
	}
	if input.Status != "" {
		updates["status"] = input.Status
	}
	if input.Images != nil {
		images, iErr := encodeImages(input.Images)
		if iErr != nil {
			return nil, iErr
		}
		updates["images"] = images
	}
	if err := s.productRepo.UpdateFields(ctx, nil, rd.MerchantID, productID, updates); err != nil {
		s.log.Warn("UpdateProduct failed", "error", err, "product_id", productID)
		return nil, err
	}
	return s.productRepo.GetByID(ctx, nil, rd.MerchantID, productID)
}

func (s *productService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return apperrors.ErrUnauthorized
	}
	return s.productRepo.SoftDeleteByID(ctx, nil, rd.MerchantID, productID)
}

func encodeImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}
	return datatypes.JSON(raw), nil
}
