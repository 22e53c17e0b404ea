package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	ID    uuid.UUID `json:"transaction_id" validate:"required"`
	OTP   string    `json:"otp" validate:"required"`
	Count int       `json:"count" validate:"gte=0"`
}

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()

	assert.NoError(t, v.Validate(&sampleRequest{ID: uuid.New(), OTP: "123456"}))

	err := v.Validate(&sampleRequest{Count: -1})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "transaction_id is required")
		assert.Contains(t, err.Error(), "otp is required")
		assert.Contains(t, err.Error(), "count failed gte=0")
	}
}
