package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

// ListProducts shows sellers their own catalogue and everyone else the active listings
func (uc *TransactionUC) ListProducts(ctx context.Context, actor models.Actor, filter models.ProductFilter) ([]*models.Product, error) {
	if actor.Role.IsSeller() {
		filter.SellerID = &actor.UserID
		filter.OnlyActive = false
	} else {
		filter.SellerID = nil
		filter.OnlyActive = true
	}
	return uc.repo.ListProducts(ctx, filter)
}

// GetProduct hides inactive products from everyone but their seller
func (uc *TransactionUC) GetProduct(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Product, error) {
	product, err := uc.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive && product.SellerID != actor.UserID {
		return nil, apperror.NotFound("product not found")
	}
	return product, nil
}
