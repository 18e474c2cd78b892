package authkit

import (
	"context"
	"errors"
	"fmt"

	"github.com/lingostack/authkit/jwt"
)

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// On full success it returns a freshly minted access+refresh pair. Failure
// kinds are distinct: missing credentials, unknown user, wrong password, and
// unverified account each map to their own sentinel. The verified-flag check
// runs after password verification so the unverified error cannot be used as
// a password oracle.
func (e *Engine) Login(ctx context.Context, email, password string) (TokenPair, error) {
	if e == nil || e.passwordHash == nil || e.tokens == nil || e.userProvider == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	if email == "" || password == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", email, ErrMissingCredentials, func() map[string]string {
			return map[string]string{
				"reason": "missing_credentials",
			}
		})
		return TokenPair{}, ErrMissingCredentials
	}

	user, err := e.userProvider.GetUserByEmail(ctx, email)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		if errors.Is(err, ErrUserNotFound) {
			e.emitAudit(ctx, auditEventLoginFailure, false, "", email, ErrUserNotFound, func() map[string]string {
				return map[string]string{
					"reason": "user_not_found",
				}
			})
			return TokenPair{}, ErrUserNotFound
		}
		e.emitAudit(ctx, auditEventLoginFailure, false, "", email, ErrProviderUnavailable, nil)
		return TokenPair{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	ok, err := e.passwordHash.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.UserID, email, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "password_mismatch",
			}
		})
		return TokenPair{}, ErrInvalidCredentials
	}

	if !user.Verified {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.UserID, email, ErrAccountUnverified, nil)
		return TokenPair{}, ErrAccountUnverified
	}

	if e.config.Password.UpgradeOnLogin {
		e.maybeUpgradeHash(ctx, user, password)
	}

	claim := jwt.Claim{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   string(user.Role),
	}

	access, err := e.tokens.Issue(claim, jwt.KindAccess)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.UserID, email, err, nil)
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := e.tokens.Issue(claim, jwt.KindRefresh)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.UserID, email, err, nil)
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, user.UserID, user.Email, nil, nil)
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ReissueAccessToken describes the reissueaccesstoken operation and its observable behavior.
//
// ReissueAccessToken may return an error when input validation, dependency calls, or security checks fail.
// The refresh token is verified under refresh-kind rules only; the subject
// is then re-resolved by email and the new access token is minted from the
// current record, so a role change since the refresh token was issued takes
// effect immediately.
func (e *Engine) ReissueAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if e == nil || e.tokens == nil || e.userProvider == nil {
		return "", ErrEngineNotReady
	}

	claim, err := e.tokens.Verify(refreshToken, jwt.KindRefresh)
	if err != nil {
		e.metricInc(MetricReissueFailure)
		e.emitAudit(ctx, auditEventReissueFailure, false, "", "", ErrTokenInvalid, nil)
		return "", ErrTokenInvalid
	}

	user, err := e.userProvider.GetUserByEmail(ctx, claim.Email)
	if err != nil {
		e.metricInc(MetricReissueFailure)
		if errors.Is(err, ErrUserNotFound) {
			e.emitAudit(ctx, auditEventReissueFailure, false, claim.UserID, claim.Email, ErrUserNotFound, nil)
			return "", ErrUserNotFound
		}
		e.emitAudit(ctx, auditEventReissueFailure, false, claim.UserID, claim.Email, ErrProviderUnavailable, nil)
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	access, err := e.tokens.Issue(jwt.Claim{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   string(user.Role),
	}, jwt.KindAccess)
	if err != nil {
		e.metricInc(MetricReissueFailure)
		e.emitAudit(ctx, auditEventReissueFailure, false, user.UserID, user.Email, err, nil)
		return "", fmt.Errorf("issue access token: %w", err)
	}

	e.metricInc(MetricReissueSuccess)
	e.emitAudit(ctx, auditEventReissueSuccess, true, user.UserID, user.Email, nil, nil)
	return access, nil
}

// maybeUpgradeHash re-hashes the password under the current parameters when
// the stored digest was produced with weaker ones. Best effort: a failed
// persist leaves the old digest in place and only audits.
func (e *Engine) maybeUpgradeHash(ctx context.Context, user UserRecord, plaintext string) {
	needs, err := e.passwordHash.NeedsUpgrade(user.PasswordHash)
	if err != nil || !needs {
		return
	}

	newHash, err := e.passwordHash.Hash(plaintext)
	if err != nil {
		return
	}

	if _, err := e.userProvider.UpdateUser(ctx, user.UserID, UserUpdate{PasswordHash: &newHash}); err != nil {
		e.emitAudit(ctx, auditEventPasswordUpgrade, false, user.UserID, user.Email, ErrProviderUnavailable, nil)
		return
	}

	e.metricInc(MetricPasswordUpgrade)
	e.emitAudit(ctx, auditEventPasswordUpgrade, true, user.UserID, user.Email, nil, nil)
}
