package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents a position in the marketplace transaction lifecycle
type TransactionStatus string

const (
	TransactionStatusPending          TransactionStatus = "PENDING"
	TransactionStatusNeedVerification TransactionStatus = "NEED_VERIFICATION"
	TransactionStatusEscrow           TransactionStatus = "ESCROW"
	TransactionStatusAwaitingPickup   TransactionStatus = "AWAITING_PICKUP"
	TransactionStatusReleased         TransactionStatus = "RELEASED"
	TransactionStatusCompleted        TransactionStatus = "COMPLETED"
	TransactionStatusRejected         TransactionStatus = "REJECTED"
	TransactionStatusFailed           TransactionStatus = "FAILED"

	// TransactionStatusPaid is a legacy name for ESCROW. It is never stored.
	TransactionStatusPaid TransactionStatus = "PAID"
)

// Canonical folds legacy aliases onto the stored status
func (s TransactionStatus) Canonical() TransactionStatus {
	if s == TransactionStatusPaid {
		return TransactionStatusEscrow
	}
	return s
}

// IsTerminal reports whether no further transition leaves this status
func (s TransactionStatus) IsTerminal() bool {
	switch s.Canonical() {
	case TransactionStatusCompleted, TransactionStatusRejected, TransactionStatusFailed:
		return true
	}
	return false
}

// IsEscrowed reports whether buyer funds are held or already released
func (s TransactionStatus) IsEscrowed() bool {
	switch s.Canonical() {
	case TransactionStatusEscrow, TransactionStatusAwaitingPickup, TransactionStatusReleased, TransactionStatusCompleted:
		return true
	}
	return false
}

// ParseTransactionStatus normalises a client supplied status value
func ParseTransactionStatus(v string) (TransactionStatus, bool) {
	s := TransactionStatus(strings.ToUpper(strings.TrimSpace(v))).Canonical()
	switch s {
	case TransactionStatusPending, TransactionStatusNeedVerification, TransactionStatusEscrow,
		TransactionStatusAwaitingPickup, TransactionStatusReleased, TransactionStatusCompleted,
		TransactionStatusRejected, TransactionStatusFailed:
		return s, true
	}
	return "", false
}

// Transaction is a single marketplace purchase moving through the locker pickup lifecycle
type Transaction struct {
	ID                      uuid.UUID         `json:"id" db:"id"`
	BuyerID                 uuid.UUID         `json:"buyer_id" db:"buyer_id"`
	SellerID                uuid.UUID         `json:"seller_id" db:"seller_id"`
	ProductID               uuid.UUID         `json:"product_id" db:"product_id"`
	ProductName             string            `json:"product_name" db:"product_name"`
	Quantity                int               `json:"quantity" db:"quantity"`
	TotalPrice              decimal.Decimal   `json:"total_price" db:"total_price"`
	Status                  TransactionStatus `json:"status" db:"status"`
	BuyerFullName           string            `json:"buyer_full_name" db:"buyer_full_name"`
	ShippingAddress         string            `json:"shipping_address" db:"shipping_address"`
	BuyerPhoneNumber        string            `json:"buyer_phone_number" db:"buyer_phone_number"`
	PaymentGatewayReference *string           `json:"payment_gateway_reference,omitempty" db:"payment_gateway_reference"`
	QRISPayload             *string           `json:"qris_payload,omitempty" db:"qris_payload"`
	PaymentURL              *string           `json:"payment_url,omitempty" db:"payment_url"`
	PaymentProof            *string           `json:"payment_proof,omitempty" db:"payment_proof"`
	PaymentProofUploadedAt  *time.Time        `json:"payment_proof_uploaded_at,omitempty" db:"payment_proof_uploaded_at"`
	PaidAt                  *time.Time        `json:"paid_at,omitempty" db:"paid_at"`
	PaymentExpiresAt        *time.Time        `json:"payment_expires_at,omitempty" db:"payment_expires_at"`
	OTP                     *string           `json:"-" db:"otp"`
	LockerID                *uuid.UUID        `json:"locker_id,omitempty" db:"locker_id"`
	CreatedAt               time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at" db:"updated_at"`
}

// HasShippingInfo reports whether the buyer contact fields needed for pickup are filled
func (t *Transaction) HasShippingInfo() bool {
	return strings.TrimSpace(t.BuyerFullName) != "" &&
		strings.TrimSpace(t.ShippingAddress) != "" &&
		strings.TrimSpace(t.BuyerPhoneNumber) != ""
}

// PickupExpired reports whether the pickup window closed before now
func (t *Transaction) PickupExpired(now time.Time) bool {
	return t.PaymentExpiresAt != nil && now.After(*t.PaymentExpiresAt)
}

// TransactionFilter narrows a transaction listing
type TransactionFilter struct {
	BuyerID  *uuid.UUID
	SellerID *uuid.UUID
	Statuses []TransactionStatus
	Limit    int
	Offset   int
}

// CreateTransactionRequest is the buyer's purchase request
type CreateTransactionRequest struct {
	ProductID        uuid.UUID `json:"product_id" validate:"required"`
	Quantity         int       `json:"quantity" validate:"gte=0"`
	BuyerFullName    string    `json:"buyer_full_name" validate:"max=255"`
	ShippingAddress  string    `json:"shipping_address" validate:"max=1000"`
	BuyerPhoneNumber string    `json:"buyer_phone_number" validate:"max=32"`
}

// CreateTransactionResponse returns the new transaction with its payment session
type CreateTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
	PaymentURL  string       `json:"payment_url"`
	QRISPayload string       `json:"qris_payload"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// ShippingUpdateRequest overwrites the buyer contact fields
type ShippingUpdateRequest struct {
	BuyerFullName    string `json:"buyer_full_name" validate:"max=255"`
	ShippingAddress  string `json:"shipping_address" validate:"max=1000"`
	BuyerPhoneNumber string `json:"buyer_phone_number" validate:"max=32"`
}

// Normalize trims every field in place
func (r *ShippingUpdateRequest) Normalize() {
	r.BuyerFullName = strings.TrimSpace(r.BuyerFullName)
	r.ShippingAddress = strings.TrimSpace(r.ShippingAddress)
	r.BuyerPhoneNumber = strings.TrimSpace(r.BuyerPhoneNumber)
}

// PaymentProofUpload carries an uploaded proof image
type PaymentProofUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// DepositItemRequest asks for a locker to place the sold item in
type DepositItemRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" validate:"required"`
}

// DepositItemResponse reports the locker opened for the seller
type DepositItemResponse struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	LockerID      uuid.UUID `json:"locker_id"`
	LockerNumber  string    `json:"locker_number"`
}

// RetrieveItemRequest is the buyer's pickup attempt
type RetrieveItemRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" validate:"required"`
	OTP           string    `json:"otp" validate:"required"`
}

// RetrieveItemResponse reports the locker opened for the buyer
type RetrieveItemResponse struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	LockerNumber  string    `json:"locker_number"`
}

// GenerateOTPResponse returns a freshly issued pickup code
type GenerateOTPResponse struct {
	TransactionID uuid.UUID `json:"transaction_id" validate:"required"`
	OTP           string    `json:"otp" validate:"required"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// DeviceWebhookRequest is posted by a locker device after a physical event
type DeviceWebhookRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" validate:"required"`
}

// PaymentWebhookRequest is posted by the payment provider when a payment settles
type PaymentWebhookRequest struct {
	PaymentReference string `json:"payment_reference" validate:"required"`
	Status           string `json:"status"`
}

// TransactionEvent is published on the lifecycle event stream after each committed status change
type TransactionEvent struct {
	EventID       uuid.UUID         `json:"event_id"`
	TransactionID uuid.UUID         `json:"transaction_id"`
	FromStatus    TransactionStatus `json:"from_status"`
	ToStatus      TransactionStatus `json:"to_status"`
	ActorID       string            `json:"actor_id"`
	OccurredAt    time.Time         `json:"occurred_at"`
}
