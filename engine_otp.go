package authkit

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/lingostack/authkit/internal"
)

// SendOTP describes the sendotp operation and its observable behavior.
//
// SendOTP may return an error when input validation, dependency calls, or security checks fail.
// A fresh passcode is generated and stored under the email's key before the
// mail is dispatched, overwriting any pending passcode for that address.
// Send is not transactional with delivery: when dispatch fails the stored
// passcode remains until its TTL elapses, and a retry overwrites it with a
// new one.
func (e *Engine) SendOTP(ctx context.Context, email, displayName string) error {
	if e == nil || e.otpStore == nil || e.userProvider == nil || e.mailer == nil {
		return ErrEngineNotReady
	}
	if email == "" {
		err := fmt.Errorf("%w: email", ErrMissingField)
		e.emitAudit(ctx, auditEventOTPSendFailure, false, "", "", err, nil)
		return err
	}

	user, err := e.userProvider.GetUserByEmail(ctx, email)
	if err != nil {
		e.metricInc(MetricOTPSendFailure)
		if errors.Is(err, ErrUserNotFound) {
			e.emitAudit(ctx, auditEventOTPSendFailure, false, "", email, ErrUserNotFound, nil)
			return ErrUserNotFound
		}
		e.emitAudit(ctx, auditEventOTPSendFailure, false, "", email, ErrProviderUnavailable, nil)
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if user.Verified {
		e.metricInc(MetricOTPSendFailure)
		e.emitAudit(ctx, auditEventOTPSendFailure, false, user.UserID, email, ErrAlreadyVerified, nil)
		return ErrAlreadyVerified
	}

	code, err := internal.NewOTP(e.config.OTP.Digits)
	if err != nil {
		e.metricInc(MetricOTPSendFailure)
		e.emitAudit(ctx, auditEventOTPSendFailure, false, user.UserID, email, ErrStoreUnavailable, func() map[string]string {
			return map[string]string{
				"reason": "generation_failed",
			}
		})
		return fmt.Errorf("generate otp: %w", err)
	}

	if err := e.otpStore.Set(ctx, email, code, e.config.OTP.TTL); err != nil {
		e.metricInc(MetricOTPSendFailure)
		e.emitAudit(ctx, auditEventOTPSendFailure, false, user.UserID, email, err, nil)
		return err
	}

	if err := e.mailer.SendMail(ctx, email, e.config.OTP.Subject, e.config.OTP.TemplateID, map[string]string{
		"name": displayName,
		"otp":  code,
	}); err != nil {
		e.metricInc(MetricOTPSendFailure)
		e.emitAudit(ctx, auditEventOTPSendFailure, false, user.UserID, email, ErrMailDelivery, nil)
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	e.metricInc(MetricOTPSendSuccess)
	e.emitAudit(ctx, auditEventOTPSendSuccess, true, user.UserID, email, nil, nil)
	return nil
}

// VerifyOTP describes the verifyotp operation and its observable behavior.
//
// VerifyOTP may return an error when input validation, dependency calls, or security checks fail.
// An absent entry (expired or never sent) and a mismatched code surface as
// the same ErrOTPInvalid so a caller cannot learn which check failed. On
// match the verified flag is persisted first and the entry deleted after;
// a crash between the two steps leaves a stale entry that expires on TTL.
func (e *Engine) VerifyOTP(ctx context.Context, email, submittedCode string) error {
	if e == nil || e.otpStore == nil || e.userProvider == nil {
		return ErrEngineNotReady
	}
	if email == "" {
		err := fmt.Errorf("%w: email", ErrMissingField)
		e.emitAudit(ctx, auditEventOTPVerifyFailure, false, "", "", err, nil)
		return err
	}

	user, err := e.userProvider.GetUserByEmail(ctx, email)
	if err != nil {
		e.metricInc(MetricOTPVerifyFailure)
		if errors.Is(err, ErrUserNotFound) {
			e.emitAudit(ctx, auditEventOTPVerifyFailure, false, "", email, ErrUserNotFound, nil)
			return ErrUserNotFound
		}
		e.emitAudit(ctx, auditEventOTPVerifyFailure, false, "", email, ErrProviderUnavailable, nil)
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if user.Verified {
		e.metricInc(MetricOTPVerifyFailure)
		e.emitAudit(ctx, auditEventOTPVerifyFailure, false, user.UserID, email, ErrAlreadyVerified, nil)
		return ErrAlreadyVerified
	}

	stored, present, err := e.otpStore.Get(ctx, email)
	if err != nil {
		e.metricInc(MetricOTPVerifyFailure)
		e.emitAudit(ctx, auditEventOTPVerifyFailure, false, user.UserID, email, err, nil)
		return err
	}

	if !present || subtle.ConstantTimeCompare([]byte(stored), []byte(submittedCode)) != 1 {
		e.metricInc(MetricOTPVerifyFailure)
		e.emitAudit(ctx, auditEventOTPVerifyFailure, false, user.UserID, email, ErrOTPInvalid, nil)
		return ErrOTPInvalid
	}

	verified := true
	if _, err := e.userProvider.UpdateUser(ctx, user.UserID, UserUpdate{Verified: &verified}); err != nil {
		// The passcode is not consumed when the flag update fails; the entry
		// stays live so a retry with the same code can still succeed.
		e.metricInc(MetricOTPVerifyFailure)
		e.emitAudit(ctx, auditEventOTPVerifyFailure, false, user.UserID, email, ErrProviderUnavailable, nil)
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if err := e.otpStore.Delete(ctx, email); err != nil {
		// Flag is already persisted. The stale entry is harmless: the account
		// is verified, so a replay fails the precondition above, and the key
		// expires on TTL.
		e.emitAudit(ctx, auditEventOTPVerifySuccess, true, user.UserID, email, nil, func() map[string]string {
			return map[string]string{
				"stale_entry": "true",
			}
		})
		e.metricInc(MetricOTPVerifySuccess)
		return nil
	}

	e.metricInc(MetricOTPVerifySuccess)
	e.emitAudit(ctx, auditEventOTPVerifySuccess, true, user.UserID, email, nil, nil)
	return nil
}
