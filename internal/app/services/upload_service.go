package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/qpsphere/paperbank/internal/app/models/dto"
	"github.com/qpsphere/paperbank/internal/pkg/analytics"
	"github.com/qpsphere/paperbank/internal/pkg/apperrors"
	"github.com/qpsphere/paperbank/internal/pkg/email"
	"github.com/qpsphere/paperbank/internal/pkg/filestorage"
	"github.com/qpsphere/paperbank/internal/pkg/papername"
)

// UploadService defines the paper upload operation.
type UploadService interface {
	UploadPaper(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error)
}

// uploadServiceImpl implements UploadService: validate, persist, notify.
type uploadServiceImpl struct {
	storage  *filestorage.LocalStorage
	mailer   email.Mailer
	maxBytes int64
	tracker  analytics.Tracker
	logger   zerolog.Logger
}

// NewUploadService creates a new UploadService. maxBytes caps the accepted
// file size.
func NewUploadService(
	storage *filestorage.LocalStorage,
	mailer email.Mailer,
	maxBytes int64,
	tracker analytics.Tracker,
	logger zerolog.Logger,
) UploadService {
	if tracker == nil {
		tracker = analytics.NopTracker{}
	}
	return &uploadServiceImpl{
		storage:  storage,
		mailer:   mailer,
		maxBytes: maxBytes,
		tracker:  tracker,
		logger:   logger,
	}
}

// UploadPaper validates and stores an uploaded paper, then sends a
// best-effort notification email. Notification failure never fails the
// upload: the file is already safe on disk at that point.
func (s *uploadServiceImpl) UploadPaper(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	if fileHeader == nil {
		return nil, apperrors.ErrFileMissing
	}
	if err := s.validate(fileHeader); err != nil {
		return nil, err
	}

	storedName, fileURL, err := s.storage.SaveFile(fileHeader)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendUploadNotification(email.UploadNotification{
		OriginalName:   fileHeader.Filename,
		StoredName:     storedName,
		Size:           fileHeader.Size,
		AttachmentPath: s.storage.FullPath(storedName),
	}); err != nil {
		s.logger.Error().Err(err).Str("file", storedName).Msg("Upload notification email failed")
	}

	s.tracker.Event(analytics.EventPaperUpload, map[string]any{
		"filename": fileHeader.Filename,
		"size":     fileHeader.Size,
	})

	return &dto.UploadResponse{
		Success:  true,
		Message:  "File uploaded successfully",
		Filename: storedName,
		FileURL:  fileURL,
	}, nil
}

func (s *uploadServiceImpl) validate(fileHeader *multipart.FileHeader) error {
	if s.maxBytes > 0 && fileHeader.Size > s.maxBytes {
		return apperrors.ErrFileTooLarge
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return apperrors.ErrUnsupportedType
	}
	// Some clients send a generic part content type, so only a definite
	// mismatch is rejected here; the extension and name checks carry the rest.
	switch ct := fileHeader.Header.Get("Content-Type"); ct {
	case "", "application/pdf", "application/octet-stream":
	default:
		return apperrors.ErrUnsupportedType
	}

	// The filename is the paper's only metadata, so a name the parser would
	// drop is rejected at the door instead of becoming unreachable storage.
	if _, err := papername.Parse(fileHeader.Filename); err != nil {
		return apperrors.ErrBadPaperName
	}
	return nil
}
