package gateway

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

// FileProofStore keeps payment proofs on the local filesystem under root
type FileProofStore struct {
	root string
}

// NewFileProofStore creates root if needed
func NewFileProofStore(root string) (*FileProofStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create proof directory: %w", err)
	}
	return &FileProofStore{root: root}, nil
}

// Save writes the upload and returns its reference relative to root
func (s *FileProofStore) Save(ctx context.Context, txnID uuid.UUID, upload models.PaymentProofUpload) (string, error) {
	ext := proofExtension(upload)
	ref := filepath.ToSlash(filepath.Join(txnID.String(), uuid.NewString()+ext))
	path := filepath.Join(s.root, filepath.FromSlash(ref))

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("failed to create proof directory: %w", err)
	}
	if err := os.WriteFile(path, upload.Data, 0o640); err != nil {
		return "", fmt.Errorf("failed to write payment proof: %w", err)
	}
	return ref, nil
}

// Delete removes a stored proof. A missing file is not an error.
func (s *FileProofStore) Delete(ctx context.Context, ref string) error {
	if ref == "" || strings.Contains(ref, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(ref)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete payment proof: %w", err)
	}
	return nil
}

func proofExtension(upload models.PaymentProofUpload) string {
	switch upload.ContentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	}
	return strings.ToLower(filepath.Ext(upload.Filename))
}
