package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

const productColumns = `id, store_id, seller_id, name, description, price, stock, is_active, created_at, updated_at`

// GetProduct retrieves a product by ID
func (r *TransactionRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var product models.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		return nil, notFound(err, "product")
	}
	return &product, nil
}

// ListProducts returns products matching filter, newest first
func (r *TransactionRepo) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.SellerID != nil {
		args = append(args, *filter.SellerID)
		conds = append(conds, fmt.Sprintf("seller_id = $%d", len(args)))
	}
	if filter.OnlyActive {
		conds = append(conds, "is_active = TRUE")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	query, args = paginate(query, args, filter.Limit, filter.Offset)

	products := []*models.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
