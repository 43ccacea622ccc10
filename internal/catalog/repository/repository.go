package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront_backend/internal/pricing"
	"storefront_backend/platform/apperr"
)

const productNotFoundMessage = "product not found"

const productColumns = `code, slug, name, description, category, tags,
	base_price, base_length, material, texture, color,
	available_lengths, available_densities, price_multipliers,
	sale_enabled, sale_discount_type, sale_discount_value, sale_starts_at, sale_ends_at,
	images, stock, low_stock_threshold, rating, review_count`

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var lengths []int32
	var multipliersJSON []byte
	var sale pricing.SaleDescriptor
	var saleType *string
	var saleValue *float64

	if err := row.Scan(
		&p.Code, &p.Slug, &p.Name, &p.Description, &p.Category, &p.Tags,
		&p.BasePrice, &p.BaseLength, &p.Material, &p.Texture, &p.Color,
		&lengths, &p.AvailableDensities, &multipliersJSON,
		&sale.Enabled, &saleType, &saleValue, &sale.StartsAt, &sale.EndsAt,
		&p.Images, &p.Stock, &p.LowStockThreshold, &p.Rating, &p.ReviewCount,
	); err != nil {
		return Product{}, err
	}

	p.AvailableLengths = make([]int, len(lengths))
	for i, l := range lengths {
		p.AvailableLengths[i] = int(l)
	}

	if len(multipliersJSON) > 0 {
		if err := json.Unmarshal(multipliersJSON, &p.PriceMultipliers); err != nil {
			return Product{}, fmt.Errorf("decode price multipliers for %s: %w", p.Code, err)
		}
	}

	if sale.Enabled || saleType != nil {
		if saleType != nil {
			sale.DiscountType = *saleType
		}
		if saleValue != nil {
			sale.DiscountValue = *saleValue
		}
		p.Sale = &sale
	}

	if p.BasePrice <= 0 {
		return Product{}, fmt.Errorf("product %s has non-positive base price", p.Code)
	}

	return p, nil
}

// List returns products matching the filters plus the unpaged total.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Product, int, error) {
	whereClauses := []string{"1=1"}
	args := []any{}
	argPos := 1

	if params.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argPos))
		args = append(args, params.Category)
		argPos++
	}
	if params.Tag != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("$%d = ANY(tags)", argPos))
		args = append(args, params.Tag)
		argPos++
	}
	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+params.Search+"%")
		argPos++
	}

	where := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM products WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		productColumns, where, argPos, argPos+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

// GetBySlug retrieves a product by its URL slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE slug = $1", productColumns)
	p, err := scanProduct(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by slug: %w", err)
	}
	return p, nil
}

// GetByCode retrieves a product by its catalog code.
func (r *Repo) GetByCode(ctx context.Context, code string) (Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE code = $1", productColumns)
	p, err := scanProduct(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// DecrementStock reduces the stock count after a verified order. Stock never
// goes below zero; this is a running count, not a reservation system.
func (r *Repo) DecrementStock(ctx context.Context, code string, quantity int) error {
	query := `UPDATE products SET stock = GREATEST(stock - $2, 0) WHERE code = $1`
	result, err := r.pool.Exec(ctx, query, code, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}
