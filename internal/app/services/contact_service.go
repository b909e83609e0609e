package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qpsphere/paperbank/internal/app/models/dto"
	"github.com/qpsphere/paperbank/internal/pkg/analytics"
	"github.com/qpsphere/paperbank/internal/pkg/apperrors"
	"github.com/qpsphere/paperbank/internal/pkg/email"
)

// ContactService relays contact-form submissions to the site inbox.
type ContactService interface {
	SendMessage(ctx context.Context, req *dto.ContactRequest) error
}

type contactServiceImpl struct {
	mailer  email.Mailer
	tracker analytics.Tracker
	logger  zerolog.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(mailer email.Mailer, tracker analytics.Tracker, logger zerolog.Logger) ContactService {
	if tracker == nil {
		tracker = analytics.NopTracker{}
	}
	return &contactServiceImpl{mailer: mailer, tracker: tracker, logger: logger}
}

// SendMessage relays the submission by mail. Unlike the upload notification
// this delivery is the whole point of the endpoint, so a failure is returned
// to the caller.
func (s *contactServiceImpl) SendMessage(ctx context.Context, req *dto.ContactRequest) error {
	err := s.mailer.SendContactMessage(email.ContactMessage{
		FullName:     req.FullName,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Subject:      req.Subject,
		Message:      req.Message,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("from", req.Email).Msg("Contact message relay failed")
		return fmt.Errorf("%w: %s", apperrors.ErrMailDeliveryFailed, err)
	}

	s.tracker.Event(analytics.EventContactSent, map[string]any{
		"subject": req.Subject,
	})
	return nil
}
