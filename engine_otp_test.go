package authkit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSendOTPStoresAndMailsCode(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	up := newMockUserProvider()
	mailer := &mockMailer{}
	user := seedUser(t, up, "alice@example.com", "correct-password-123", false, RoleUser)

	engine := newTestEngine(t, testConfig(), rdb, up, mailer)

	if err := engine.SendOTP(ctx, user.Email, "Alice"); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}

	stored, err := rdb.Get(ctx, "otp:alice@example.com").Result()
	if err != nil {
		t.Fatalf("expected stored passcode, got %v", err)
	}
	if len(stored) != 6 {
		t.Fatalf("expected 6-digit passcode, got %q", stored)
	}

	if mailer.lastOTP(t) != stored {
		t.Fatal("mailed passcode does not match stored passcode")
	}
	last := mailer.sent[len(mailer.sent)-1]
	if last.to != user.Email || last.subject != "Your OTP Code" || last.templateID != "otp" {
		t.Fatalf("unexpected mail envelope: %+v", last)
	}
	if last.data["name"] != "Alice" {
		t.Fatalf("expected display name in mail data, got %q", last.data["name"])
	}
}

func TestSendOTPOverwritesPendingCode(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	up := newMockUserProvider()
	mailer := &mockMailer{}
	user := seedUser(t, up, "alice@example.com", "correct-password-123", false, RoleUser)

	engine := newTestEngine(t, testConfig(), rdb, up, mailer)

	if err := engine.SendOTP(ctx, user.Email, "Alice"); err != nil {
		t.Fatalf("first SendOTP failed: %v", err)
	}
	first := mailer.lastOTP(t)

	if err := engine.SendOTP(ctx, user.Email, "Alice"); err != nil {
		t.Fatalf("second SendOTP failed: %v", err)
	}
	second := mailer.lastOTP(t)

	stored, err := rdb.Get(ctx, "otp:alice@example.com").Result()
	if err != nil {
		t.Fatalf("expected stored passcode, got %v", err)
	}
	if stored != second {
		t.Fatal("resend did not overwrite the pending passcode")
	}

	// The first passcode is dead even if it happens to differ.
	if first != second {
		if err := engine.VerifyOTP(ctx, user.Email, first); !errors.Is(err, ErrOTPInvalid) {
			t.Fatalf("expected stale passcode rejection, got %v", err)
		}
	}
}

func TestSendOTPUnknownUser(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	engine := newTestEngine(t, testConfig(), rdb, newMockUserProvider(), &mockMailer{})

	err := engine.SendOTP(context.Background(), "ghost@example.com", "Ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSendOTPAlreadyVerified(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	up := newMockUserProvider()
	user := seedUser(t, up, "alice@example.com", "correct-password-123", true, RoleUser)

	engine := newTestEngine(t, testConfig(), rdb, up, &mockMailer{})

	err := engine.SendOTP(context.Background(), user.Email, "Alice")
	if !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
}

func TestSendOTPMailFailureLeavesStoredCode(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	up := newMockUserProvider()
	mailer := &mockMailer{sendErr: errors.New("smtp down")}
	user := seedUser(t, up, "alice@example.com", "correct-password-123", false, RoleUser)

	engine := newTestEngine(t, testConfig(), rdb, up, mailer)

	err := engine.SendOTP(ctx, user.Email, "Alice")
	if !errors.Is(err, ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}

	// Send is not transactional with delivery: the entry stays until TTL.
	if rdb.Exists(ctx, "otp:alice@example.com").Val() != 1 {
		t.Fatal("expected passcode to remain stored after mail failure")
	}
}

func TestVerifyOTPSuccessFlipsFlagAndConsumes(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	up := newMockUserProvider()
	mailer := &mockMailer{}
	user := seedUser(t, up, "alice@example.com", "correct-password-123", false, RoleUser)

	engine := newTestEngine(t, testConfig(), rdb, up, mailer)

	if err := engine.SendOTP(ctx, user.Email, "Alice"); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}

	if err := engine.VerifyOTP(ctx, user.Email, mailer.lastOTP(t)); err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}

	if !up.get(user.UserID).Verified {
		t.Fatal("expected verified flag to flip")
	}
	if rdb.Exists(ctx, "otp:alice@example.com").Val() != 0 {
		t.Fatal("expected passcode entry to be consumed")
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	up := newMockUserProvider()
	mailer := &mockMailer{}
	user := seedUser(t, up, "alice@example.com", "correct-password-123", false, RoleUser)

	engine := newTestEngine(t, testConfig(), rdb, up, mailer)

	if err := engine.SendOTP(ctx, user.Email, "Alice"); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}

	err := engine.VerifyOTP(ctx, user.Email, makeDifferentOTP(mailer.lastOTP(t)))
	if !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}

	// A failed attempt does not consume the entry.
	if err := engine.VerifyOTP(ctx, user.Email, mailer.lastOTP(t)); err != nil {
		t.Fatalf("expected retry with correct passcode to succeed, got %v", err)
	}
}

func TestVerifyOTPWithoutPendingCode(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	up := newMockUserProvider()
	user := seedUser(t, up, "alice@example.com", "correct-password-123", false, RoleUser)

	engine := newTestEngine(t, testConfig(), rdb, up, &mockMailer{})

	err := engine.VerifyOTP(context.Background(), user.Email, "123456")
	if !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid for absent entry, got %v", err)
	}
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	up := newMockUserProvider()
	mailer := &mockMailer{}
	user := seedUser(t, up, "alice@example.com", "correct-password-123", false, RoleUser)

	engine := newTestEngine(t, testConfig(), rdb, up, mailer)

	if err := engine.SendOTP(ctx, user.Email, "Alice"); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}

	mr.FastForward(6 * time.Minute)

	err := engine.VerifyOTP(ctx, user.Email, mailer.lastOTP(t))
	if !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected expired passcode to collapse into ErrOTPInvalid, got %v", err)
	}
}

func TestVerifyOTPReplayRejectedAfterSuccess(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	up := newMockUserProvider()
	mailer := &mockMailer{}
	user := seedUser(t, up, "alice@example.com", "correct-password-123", false, RoleUser)

	engine := newTestEngine(t, testConfig(), rdb, up, mailer)

	if err := engine.SendOTP(ctx, user.Email, "Alice"); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}
	code := mailer.lastOTP(t)

	if err := engine.VerifyOTP(ctx, user.Email, code); err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}

	// The account is now verified, so the replay fails the precondition
	// before the store is even consulted.
	err := engine.VerifyOTP(ctx, user.Email, code)
	if !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified on replay, got %v", err)
	}
}

func TestVerifyOTPUnknownUser(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	engine := newTestEngine(t, testConfig(), rdb, newMockUserProvider(), &mockMailer{})

	err := engine.VerifyOTP(context.Background(), "ghost@example.com", "123456")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestVerifyOTPFlagPersistFailureKeepsEntry(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	up := newMockUserProvider()
	mailer := &mockMailer{}
	user := seedUser(t, up, "alice@example.com", "correct-password-123", false, RoleUser)

	engine := newTestEngine(t, testConfig(), rdb, up, mailer)

	if err := engine.SendOTP(ctx, user.Email, "Alice"); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}

	up.updateErr = errors.New("db down")
	err := engine.VerifyOTP(ctx, user.Email, mailer.lastOTP(t))
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	// The passcode is only consumed after the flag persists; a retry with
	// the same code must still be possible.
	if rdb.Exists(ctx, "otp:alice@example.com").Val() != 1 {
		t.Fatal("expected passcode entry to survive a failed flag update")
	}

	up.updateErr = nil
	if err := engine.VerifyOTP(ctx, user.Email, mailer.lastOTP(t)); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestSendOTPMissingEmail(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	engine := newTestEngine(t, testConfig(), rdb, newMockUserProvider(), &mockMailer{})

	if err := engine.SendOTP(context.Background(), "", "Alice"); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if err := engine.VerifyOTP(context.Background(), "", "123456"); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}
