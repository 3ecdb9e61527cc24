// Package service accepts contact form submissions
package service

import (
	"context"
	"strings"

	"spacebio/internal/platform/logger"
	"spacebio/internal/services/api/contact/domain"

	"github.com/google/uuid"
)

// Service defines the contact service contract
type Service interface {
	domain.ServicePort
}

// Svc acknowledges submissions and records them in the log; nothing is persisted or mailed
type Svc struct {
	newID func() string
}

// New constructs a contact service
func New() *Svc { return &Svc{newID: uuid.NewString} }

// Submit logs the submission and returns a receipt
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput) (domain.Receipt, error) {
	id := s.newID()
	logger.C(ctx).Info().
		Str("submission_id", id).
		Str("name", strings.TrimSpace(in.Name)).
		Str("email", strings.ToLower(strings.TrimSpace(in.Email))).
		Str("subject", strings.TrimSpace(in.Subject)).
		Int("message_len", len(in.Message)).
		Msg("contact submitted")

	return domain.Receipt{
		Success:      true,
		Message:      "Thanks, we will get back to you soon",
		SubmissionID: id,
	}, nil
}
