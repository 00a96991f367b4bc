package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"helper-app/internal/models"
)

// fakeVerificationRepo returns every stored record for the email, expired or
// not, so the tests exercise the service's own expiry check.
type fakeVerificationRepo struct {
	records   []models.VerificationCode
	createErr error
	findErr   error
}

func (r *fakeVerificationRepo) Create(_ context.Context, code *models.VerificationCode) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.records = append(r.records, *code)
	return nil
}

func (r *fakeVerificationRepo) FindActiveByEmail(_ context.Context, email string, _ time.Time) ([]models.VerificationCode, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []models.VerificationCode
	for _, rec := range r.records {
		if rec.Email == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeMailer struct {
	sent    []string
	sendErr error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, to)
	return nil
}

func TestIssue_PersistsAndSends(t *testing.T) {
	repo := &fakeVerificationRepo{}
	mailer := &fakeMailer{}
	svc := NewVerificationService(repo, mailer)

	code, err := svc.Issue(context.Background(), "a@b.com", "555")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if !regexp.MustCompile(`^[1-9]\d{5}$`).MatchString(code) {
		t.Errorf("code %q is not a 6-digit value with nonzero leading digit", code)
	}
	if len(repo.records) != 1 {
		t.Fatalf("stored records = %d, want 1", len(repo.records))
	}

	record := repo.records[0]
	if record.Code != code || record.Email != "a@b.com" || record.Number != "555" {
		t.Errorf("stored record = %+v", record)
	}
	if got := record.ExpiresAt.Sub(record.CreatedAt); got != models.CodeTTL {
		t.Errorf("TTL = %v, want %v", got, models.CodeTTL)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "a@b.com" {
		t.Errorf("mailer.sent = %v", mailer.sent)
	}
}

func TestIssue_CodesVaryAcrossRapidCalls(t *testing.T) {
	// Back-to-back calls land within the same nanosecond; the codes must
	// still be independent draws, not repeats of one seed.
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		seen[generateCode()] = true
	}
	if len(seen) < 2 {
		t.Errorf("20 rapid calls produced %d distinct code(s)", len(seen))
	}
}

func TestIssue_NoSendWhenPersistFails(t *testing.T) {
	repo := &fakeVerificationRepo{createErr: errors.New("write failed")}
	mailer := &fakeMailer{}
	svc := NewVerificationService(repo, mailer)

	if _, err := svc.Issue(context.Background(), "a@b.com", ""); err == nil {
		t.Fatal("Issue succeeded despite persistence failure")
	}
	if len(mailer.sent) != 0 {
		t.Errorf("mailer was called after a failed write: %v", mailer.sent)
	}
}

func TestIssue_SendFailureKeepsCode(t *testing.T) {
	repo := &fakeVerificationRepo{}
	mailer := &fakeMailer{sendErr: errors.New("smtp down")}
	svc := NewVerificationService(repo, mailer)

	code, err := svc.Issue(context.Background(), "a@b.com", "")
	if !errors.Is(err, models.ErrSendFailed) {
		t.Fatalf("err = %v, want ErrSendFailed", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("stored records = %d, want 1", len(repo.records))
	}

	// the persisted code is still verifiable
	ok, err := svc.Verify(context.Background(), "a@b.com", code)
	if err != nil || !ok {
		t.Errorf("Verify = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestVerify_IssueThenVerify(t *testing.T) {
	repo := &fakeVerificationRepo{}
	svc := NewVerificationService(repo, &fakeMailer{})

	code, err := svc.Issue(context.Background(), "a@b.com", "555")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	ok, err := svc.Verify(context.Background(), "a@b.com", code)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("Verify = false for a just-issued code")
	}
}

func TestVerify_NeverIssued(t *testing.T) {
	svc := NewVerificationService(&fakeVerificationRepo{}, &fakeMailer{})

	ok, err := svc.Verify(context.Background(), "a@b.com", "000000")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("Verify = true for a code that was never issued")
	}
}

func TestVerify_ExpiredCodeNeverMatches(t *testing.T) {
	issued := time.Now().Add(-10 * time.Minute)
	repo := &fakeVerificationRepo{records: []models.VerificationCode{{
		Email:     "a@b.com",
		Code:      "123456",
		CreatedAt: issued,
		ExpiresAt: issued.Add(models.CodeTTL),
	}}}
	svc := NewVerificationService(repo, &fakeMailer{})

	ok, err := svc.Verify(context.Background(), "a@b.com", "123456")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("Verify = true for an expired code")
	}
}

func TestVerify_MultipleOutstandingCodes(t *testing.T) {
	repo := &fakeVerificationRepo{}
	svc := NewVerificationService(repo, &fakeMailer{})

	first, err := svc.Issue(context.Background(), "a@b.com", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := svc.Issue(context.Background(), "a@b.com", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// issuing a new code does not invalidate the previous one
	for _, code := range []string{first, second} {
		ok, err := svc.Verify(context.Background(), "a@b.com", code)
		if err != nil || !ok {
			t.Errorf("Verify(%q) = (%v, %v), want (true, nil)", code, ok, err)
		}
	}
}

func TestVerify_DoesNotConsumeCode(t *testing.T) {
	repo := &fakeVerificationRepo{}
	svc := NewVerificationService(repo, &fakeMailer{})

	code, err := svc.Issue(context.Background(), "a@b.com", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for i := 0; i < 2; i++ {
		ok, err := svc.Verify(context.Background(), "a@b.com", code)
		if err != nil || !ok {
			t.Fatalf("Verify attempt %d = (%v, %v), want (true, nil)", i+1, ok, err)
		}
	}
}

func TestVerify_StorageFailure(t *testing.T) {
	repo := &fakeVerificationRepo{findErr: errors.New("read failed")}
	svc := NewVerificationService(repo, &fakeMailer{})

	ok, err := svc.Verify(context.Background(), "a@b.com", "123456")
	if err == nil {
		t.Error("Verify returned no error on storage failure")
	}
	if ok {
		t.Error("Verify = true on storage failure")
	}
}
