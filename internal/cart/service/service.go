// Package service implements cart operations on top of the ledger and store.
package service

import (
	"context"
	"time"

	catalogrepo "storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/cart/domain"
	"storefront_backend/internal/cart/store"
	"storefront_backend/internal/cart/transport"
	"storefront_backend/internal/pricing"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
)

type Service struct {
	store   store.Store
	catalog catalogrepo.Repository
	log     *logger.Logger
	now     func() time.Time
}

func NewService(st store.Store, catalog catalogrepo.Repository, log *logger.Logger) *Service {
	return &Service{store: st, catalog: catalog, log: log, now: time.Now}
}

// Get loads the session's cart. An unknown session yields an empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) (*transport.CartResponse, error) {
	const op = "cart.Get"

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, apperr.WithOp(op, err)
	}
	return toResponse(&cart), nil
}

// AddItem resolves the variant's current price from the catalog and merges it
// into the cart. The resolved price is frozen on the line: later catalog or
// sale changes do not touch lines already in the cart.
func (s *Service) AddItem(ctx context.Context, sessionID string, req transport.AddItemRequest) (*transport.CartResponse, error) {
	const op = "cart.AddItem"

	product, err := s.catalog.GetByCode(ctx, req.ProductCode)
	if err != nil {
		return nil, apperr.WithOp(op, err)
	}
	if !product.HasVariant(req.Length, req.Density) {
		return nil, apperr.WithOp(op, apperr.Validation("variant not offered for this product"))
	}
	if product.Stock < req.Quantity {
		return nil, apperr.WithOp(op, apperr.Validation("insufficient stock"))
	}

	unitPrice := pricing.Resolve(product.BasePrice, req.Density, product.PriceMultipliers, product.Sale, s.now())

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, apperr.WithOp(op, err)
	}

	line := domain.Line{
		VariantID:   domain.VariantID(product.Code, req.Length, req.Density),
		ProductCode: product.Code,
		Name:        product.Name,
		Length:      req.Length,
		Density:     req.Density,
		UnitPrice:   unitPrice,
		Quantity:    req.Quantity,
	}
	if err := cart.AddLine(line); err != nil {
		return nil, apperr.WithOp(op, err)
	}

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, apperr.WithOp(op, err)
	}
	return toResponse(&cart), nil
}

// UpdateItem sets a line's quantity. Zero removes the line.
func (s *Service) UpdateItem(ctx context.Context, sessionID, variantID string, quantity int) (*transport.CartResponse, error) {
	const op = "cart.UpdateItem"

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, apperr.WithOp(op, err)
	}

	cart.UpdateQuantity(variantID, quantity)

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, apperr.WithOp(op, err)
	}
	return toResponse(&cart), nil
}

// RemoveItem deletes a line. Removing an absent variant succeeds.
func (s *Service) RemoveItem(ctx context.Context, sessionID, variantID string) (*transport.CartResponse, error) {
	const op = "cart.RemoveItem"

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, apperr.WithOp(op, err)
	}

	cart.RemoveLine(variantID)

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, apperr.WithOp(op, err)
	}
	return toResponse(&cart), nil
}

// Cart returns the raw ledger for a session. Checkout reads the cart through
// this rather than through the HTTP representation.
func (s *Service) Cart(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.store.Load(ctx, sessionID)
}

// ClearCart empties a session's cart. Only the checkout flow calls this, and
// only after the payment processor has confirmed the transaction.
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	const op = "cart.ClearCart"
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return apperr.WithOp(op, err)
	}
	return nil
}

func toResponse(cart *domain.Cart) *transport.CartResponse {
	lines := make([]transport.LineResponse, 0, len(cart.Lines))
	count := 0
	for _, l := range cart.Lines {
		lines = append(lines, transport.LineResponse{
			VariantID:   l.VariantID,
			ProductCode: l.ProductCode,
			Name:        l.Name,
			Length:      l.Length,
			Density:     l.Density,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			LineTotal:   l.UnitPrice * float64(l.Quantity),
		})
		count += l.Quantity
	}

	subtotal := cart.Subtotal()
	return &transport.CartResponse{
		Lines:           lines,
		ItemCount:       count,
		Subtotal:        subtotal,
		SubtotalDisplay: pricing.FormatNGN(subtotal),
	}
}
