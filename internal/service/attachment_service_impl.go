package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ebracha/plank/internal/domain"
	"github.com/ebracha/plank/internal/repository"
)

type attachmentService struct {
	cards       repository.CardRepo
	attachments repository.AttachmentRepo
	blobs       BlobReleaser
}

func NewAttachmentService(
	cards repository.CardRepo,
	attachments repository.AttachmentRepo,
	blobs BlobReleaser,
) AttachmentService {
	return &attachmentService{cards: cards, attachments: attachments, blobs: blobs}
}

// Register records the metadata of an upload the blob collaborator has
// already completed. The bytes never pass through here.
func (s *attachmentService) Register(ctx context.Context, req AttachmentRegister) (*domain.Attachment, error) {
	if strings.TrimSpace(req.OriginalFilename) == "" {
		return nil, validationErr("filename", "original filename is required")
	}
	if strings.TrimSpace(req.StorageKey) == "" {
		return nil, validationErr("storage_key", "storage key is required")
	}
	if req.SizeBytes < 0 {
		return nil, validationErr("size_bytes", "size %d must not be negative", req.SizeBytes)
	}
	if _, err := s.cards.GetByID(ctx, req.CardID); err != nil {
		return nil, err
	}

	attachment := &domain.Attachment{
		ID:               uuid.New().String(),
		CardID:           req.CardID,
		OriginalFilename: strings.TrimSpace(req.OriginalFilename),
		StorageKey:       req.StorageKey,
		SizeBytes:        req.SizeBytes,
		MimeType:         req.MimeType,
		UploadedAt:       time.Now().UTC(),
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (s *attachmentService) ListByCard(ctx context.Context, cardID string) ([]*domain.Attachment, error) {
	if _, err := s.cards.GetByID(ctx, cardID); err != nil {
		return nil, err
	}
	return s.attachments.ListByCard(ctx, cardID)
}

// Delete drops the metadata row, then forwards the storage key so the blob
// collaborator can free the bytes.
func (s *attachmentService) Delete(ctx context.Context, id string) error {
	attachment, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.attachments.Delete(ctx, id); err != nil {
		return err
	}
	return s.blobs.Release(ctx, attachment.StorageKey)
}
