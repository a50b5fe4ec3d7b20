package service

import (
	"context"
	"log/slog"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
)

// CodeSender delivers a one-time code to an account holder out of band.
// Delivery is fire-and-forget from the workflow's point of view: a
// delivery failure never fails the login that produced the code.
type CodeSender interface {
	SendCode(ctx context.Context, email domain.Email, code domain.OneTimeCode) error
}

// LogCodeSender writes codes to the structured log instead of sending
// them anywhere. It stands in for a real mail or SMS integration in
// development and tests.
type LogCodeSender struct {
	Logger *slog.Logger
}

func (s *LogCodeSender) SendCode(ctx context.Context, email domain.Email, code domain.OneTimeCode) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	// The code is a live credential; keep it out of production logs.
	logger.InfoContext(ctx, "2fa code issued", "email", email.String())
	logger.DebugContext(ctx, "2fa code value", "code", code.String())
	return nil
}
