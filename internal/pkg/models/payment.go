package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCustomer identifies the payer to the provider
type PaymentCustomer struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`
}

// PaymentIntent is the request to open a payment session
type PaymentIntent struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Customer      PaymentCustomer `json:"customer"`
}

// PaymentSession is what the provider returns for an opened payment
type PaymentSession struct {
	Reference   string    `json:"reference"`
	QRISPayload string    `json:"qris_payload"`
	PaymentURL  string    `json:"payment_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// EscrowRelease is the provider acknowledgement of released funds
type EscrowRelease struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Detail        string    `json:"detail"`
}
