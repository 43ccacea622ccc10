package service

import (
	"context"
	"time"

	"storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/catalog/transport"
	"storefront_backend/internal/pricing"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
)

const defaultPageSize = 24

type Service struct {
	repo repository.Repository
	log  *logger.Logger
	now  func() time.Time
}

func NewService(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

func (s *Service) ListProducts(ctx context.Context, req transport.ListProductsRequest) (*transport.ProductListResponse, error) {
	const op = "catalog.ListProducts"

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	products, total, err := s.repo.List(ctx, repository.ListParams{
		Category: req.Category,
		Tag:      req.Tag,
		Search:   req.Search,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	})
	if err != nil {
		return nil, apperr.WithOp(op, err)
	}

	now := s.now()
	items := make([]transport.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, s.toResponse(&products[i], now))
	}

	totalPages := (total + pageSize - 1) / pageSize
	return &transport.ProductListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) GetProduct(ctx context.Context, slug string) (*transport.ProductResponse, error) {
	const op = "catalog.GetProduct"

	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, apperr.WithOp(op, err)
	}
	resp := s.toResponse(&product, s.now())
	return &resp, nil
}

// toResponse resolves a display price for every density tier the product
// carries. Prices shown here are informational: the price a customer pays is
// frozen when the line enters the cart.
func (s *Service) toResponse(p *repository.Product, now time.Time) transport.ProductResponse {
	saleActive := pricing.IsSaleActive(p.Sale, now)

	prices := make([]transport.VariantPrice, 0, len(p.AvailableDensities))
	for _, density := range p.AvailableDensities {
		resolved := pricing.Resolve(p.BasePrice, density, p.PriceMultipliers, p.Sale, now)
		vp := transport.VariantPrice{
			Density:   density,
			UnitPrice: resolved,
			Display:   pricing.FormatNGN(resolved),
			OnSale:    saleActive,
		}
		if saleActive {
			vp.OriginalPrice = pricing.Resolve(p.BasePrice, density, p.PriceMultipliers, nil, now)
		}
		prices = append(prices, vp)
	}

	var sale *transport.SaleResponse
	if saleActive {
		sale = &transport.SaleResponse{DiscountValue: p.Sale.DiscountValue}
		if p.Sale.EndsAt != nil {
			sale.EndsAt = p.Sale.EndsAt.UTC().Format(time.RFC3339)
		}
	}

	return transport.ProductResponse{
		Code:               p.Code,
		Slug:               p.Slug,
		Name:               p.Name,
		Description:        p.Description,
		Category:           p.Category,
		Tags:               p.Tags,
		BasePrice:          p.BasePrice,
		BaseLength:         p.BaseLength,
		Material:           p.Material,
		Texture:            p.Texture,
		Color:              p.Color,
		AvailableLengths:   p.AvailableLengths,
		AvailableDensities: p.AvailableDensities,
		Prices:             prices,
		Sale:               sale,
		Images:             p.Images,
		Stock:              p.Stock,
		LowStock:           p.Stock <= p.LowStockThreshold,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
	}
}
