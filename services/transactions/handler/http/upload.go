package http

import (
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

const proofField = "payment_proof"

var allowedProofTypes = []string{"image/jpeg", "image/png"}

// readProof loads the multipart proof and sniffs its content type.
// A non-zero status is the HTTP error to reply with.
func readProof(c echo.Context, maxBytes int64) (models.PaymentProofUpload, int, string) {
	fh, err := c.FormFile(proofField)
	if err != nil {
		return models.PaymentProofUpload{}, http.StatusBadRequest, proofField + " file is required"
	}
	if fh.Size > maxBytes {
		return models.PaymentProofUpload{}, http.StatusRequestEntityTooLarge, "File too large"
	}

	f, err := fh.Open()
	if err != nil {
		return models.PaymentProofUpload{}, http.StatusBadRequest, "Unable to read " + proofField
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return models.PaymentProofUpload{}, http.StatusBadRequest, "Unable to read " + proofField
	}
	if int64(len(data)) > maxBytes {
		return models.PaymentProofUpload{}, http.StatusRequestEntityTooLarge, "File too large"
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedProofTypes...) {
		return models.PaymentProofUpload{}, http.StatusUnsupportedMediaType, "Invalid file type. Allowed types: JPG, JPEG, PNG"
	}

	return models.PaymentProofUpload{
		Filename:    fh.Filename,
		ContentType: mt.String(),
		Size:        int64(len(data)),
		Data:        data,
	}, 0, ""
}
