package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"helper-app/internal/models"
)

type VerificationService struct {
	repo   VerificationRepository
	mailer EmailSender
}

type VerificationRepository interface {
	Create(ctx context.Context, code *models.VerificationCode) error
	FindActiveByEmail(ctx context.Context, email string, now time.Time) ([]models.VerificationCode, error)
}

func NewVerificationService(repo VerificationRepository, mailer EmailSender) *VerificationService {
	return &VerificationService{repo: repo, mailer: mailer}
}

// Issue generates a fresh 6-digit code for the email, persists it with a
// 5-minute deadline and mails it out. The code is only handed to the mailer
// after the write succeeded. Earlier codes for the same email stay valid
// until they expire on their own.
//
// On a send failure the persisted code is kept and models.ErrSendFailed is
// returned together with the code, so the caller knows delivery did not
// happen even though verification against it would still work.
func (s *VerificationService) Issue(ctx context.Context, email, phoneNumber string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("%w: empty email", models.ErrValidation)
	}

	now := time.Now()
	record := &models.VerificationCode{
		Email:     email,
		Code:      generateCode(),
		Number:    phoneNumber,
		CreatedAt: now,
		ExpiresAt: now.Add(models.CodeTTL),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("store verification code: %w", err)
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", record.Code)
	if err := s.mailer.Send(email, "Email verification", body); err != nil {
		log.Printf("Failed to deliver verification code to %s: %v", email, err)
		return record.Code, models.ErrSendFailed
	}

	return record.Code, nil
}

// Verify reports whether any unexpired code stored for the email matches.
// A matched code is not consumed; it stays usable until its deadline.
func (s *VerificationService) Verify(ctx context.Context, email, code string) (bool, error) {
	now := time.Now()

	records, err := s.repo.FindActiveByEmail(ctx, email, now)
	if err != nil {
		return false, fmt.Errorf("look up verification codes: %w", err)
	}

	for _, record := range records {
		if record.Code == code && !record.Expired(now) {
			return true, nil
		}
	}
	return false, nil
}

// generateCode returns a uniformly random code in [100000, 999999], so the
// leading digit is never zero. The shared rand source keeps back-to-back
// calls from ever drawing from an identical seed.
func generateCode() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}
