package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a store listing that buyers can purchase
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	StoreID     uuid.UUID       `json:"store_id" db:"store_id"`
	SellerID    uuid.UUID       `json:"seller_id" db:"seller_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	SellerID   *uuid.UUID
	OnlyActive bool
	Limit      int
	Offset     int
}
