package service

import (
	"context"
	"testing"
	"time"

	"storefront_backend/internal/cart/domain"
	"storefront_backend/internal/cart/transport"
	catalogrepo "storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/pricing"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
)

type memStore struct {
	carts map[string]domain.Cart
}

func newMemStore() *memStore {
	return &memStore{carts: make(map[string]domain.Cart)}
}

func (m *memStore) Load(_ context.Context, sessionID string) (domain.Cart, error) {
	return m.carts[sessionID], nil
}

func (m *memStore) Save(_ context.Context, sessionID string, cart domain.Cart) error {
	m.carts[sessionID] = cart
	return nil
}

func (m *memStore) Delete(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

type catalogStub struct {
	products map[string]catalogrepo.Product
}

func (c *catalogStub) List(context.Context, catalogrepo.ListParams) ([]catalogrepo.Product, int, error) {
	return nil, 0, nil
}

func (c *catalogStub) GetBySlug(_ context.Context, slug string) (catalogrepo.Product, error) {
	return catalogrepo.Product{}, apperr.NotFound("product not found")
}

func (c *catalogStub) GetByCode(_ context.Context, code string) (catalogrepo.Product, error) {
	p, ok := c.products[code]
	if !ok {
		return catalogrepo.Product{}, apperr.NotFound("product not found")
	}
	return p, nil
}

func (c *catalogStub) DecrementStock(context.Context, string, int) error { return nil }

func testService(products ...catalogrepo.Product) (*Service, *memStore) {
	catalog := &catalogStub{products: make(map[string]catalogrepo.Product)}
	for _, p := range products {
		catalog.products[p.Code] = p
	}
	st := newMemStore()
	return NewService(st, catalog, logger.New("development")), st
}

func deepWave(stock int, sale *pricing.SaleDescriptor) catalogrepo.Product {
	return catalogrepo.Product{
		Code:               "DW12",
		Name:               "Deep Wave",
		BasePrice:          35000,
		Stock:              stock,
		AvailableLengths:   []int{12, 14},
		AvailableDensities: []string{"150%", "180%"},
		PriceMultipliers:   map[string]float64{"150%": 1.0, "180%": 1.25},
		Sale:               sale,
	}
}

func TestAddItemFreezesResolvedPrice(t *testing.T) {
	svc, _ := testService(deepWave(10, nil))
	ctx := context.Background()

	resp, err := svc.AddItem(ctx, "s1", transport.AddItemRequest{
		ProductCode: "DW12", Length: 12, Density: "180%", Quantity: 2,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(resp.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(resp.Lines))
	}
	line := resp.Lines[0]
	if line.UnitPrice != 43750 {
		t.Errorf("unit price: got %.2f, want 43750", line.UnitPrice)
	}
	if line.LineTotal != 87500 {
		t.Errorf("line total: got %.2f, want 87500", line.LineTotal)
	}
	if resp.Subtotal != 87500 {
		t.Errorf("subtotal: got %.2f, want 87500", resp.Subtotal)
	}
}

func TestAddItemMergeKeepsFirstPrice(t *testing.T) {
	svc, _ := testService(deepWave(10, nil))
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", transport.AddItemRequest{
		ProductCode: "DW12", Length: 12, Density: "180%", Quantity: 2,
	}); err != nil {
		t.Fatalf("first add: %v", err)
	}

	// A sale going live between adds must not reprice the existing line, and
	// the merge keeps the first-add price even though the resolver now returns
	// a lower one.
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	stub := svc.catalog.(*catalogStub)
	stub.products["DW12"] = deepWave(10, &pricing.SaleDescriptor{
		Enabled:       true,
		DiscountType:  pricing.DiscountPercentage,
		DiscountValue: 50,
		StartsAt:      &start,
		EndsAt:        &end,
	})

	resp, err := svc.AddItem(ctx, "s1", transport.AddItemRequest{
		ProductCode: "DW12", Length: 12, Density: "180%", Quantity: 3,
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(resp.Lines) != 1 {
		t.Fatalf("merge produced %d lines, want 1", len(resp.Lines))
	}
	if resp.Lines[0].Quantity != 5 {
		t.Errorf("merged quantity: got %d, want 5", resp.Lines[0].Quantity)
	}
	if resp.Lines[0].UnitPrice != 43750 {
		t.Errorf("merged unit price: got %.2f, want first-add 43750", resp.Lines[0].UnitPrice)
	}
}

func TestAddItemRejectsUnknownVariant(t *testing.T) {
	svc, _ := testService(deepWave(10, nil))

	_, err := svc.AddItem(context.Background(), "s1", transport.AddItemRequest{
		ProductCode: "DW12", Length: 30, Density: "180%", Quantity: 1,
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("got %v, want validation error for unoffered length", err)
	}
}

func TestAddItemRejectsInsufficientStock(t *testing.T) {
	svc, _ := testService(deepWave(1, nil))

	_, err := svc.AddItem(context.Background(), "s1", transport.AddItemRequest{
		ProductCode: "DW12", Length: 12, Density: "150%", Quantity: 3,
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("got %v, want validation error for insufficient stock", err)
	}
}

func TestUpdateAndRemoveItem(t *testing.T) {
	svc, _ := testService(deepWave(10, nil))
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", transport.AddItemRequest{
		ProductCode: "DW12", Length: 12, Density: "150%", Quantity: 2,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	variantID := domain.VariantID("DW12", 12, "150%")

	resp, err := svc.UpdateItem(ctx, "s1", variantID, 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Lines[0].Quantity != 4 {
		t.Errorf("quantity after update: got %d, want 4", resp.Lines[0].Quantity)
	}

	resp, err = svc.UpdateItem(ctx, "s1", variantID, 0)
	if err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if len(resp.Lines) != 0 {
		t.Errorf("zero quantity should remove the line, got %d lines", len(resp.Lines))
	}

	// Removing an already-absent variant succeeds.
	if _, err := svc.RemoveItem(ctx, "s1", variantID); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestClearCart(t *testing.T) {
	svc, st := testService(deepWave(10, nil))
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", transport.AddItemRequest{
		ProductCode: "DW12", Length: 12, Density: "150%", Quantity: 1,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.ClearCart(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cart := st.carts["s1"]; !cart.IsEmpty() {
		t.Errorf("cart not empty after clear: %+v", cart)
	}
}
