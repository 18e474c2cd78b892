package authkit

import (
	"context"
	"errors"
	"fmt"

	"github.com/lingostack/authkit/jwt"
)

// Authorize describes the authorize operation and its observable behavior.
//
// Authorize may return an error when input validation, dependency calls, or security checks fail.
// The token is verified under access-kind rules, the subject is re-resolved
// by the claim's email so a valid signature over a since-deleted account is
// rejected, and the claim's role is checked against the allow-list. An empty
// allow-list admits any authenticated role.
func (e *Engine) Authorize(ctx context.Context, token string, allowedRoles ...Role) (*AuthResult, error) {
	if e == nil || e.tokens == nil || e.userProvider == nil {
		return nil, ErrEngineNotReady
	}
	if token == "" {
		e.metricInc(MetricAuthorizeFailure)
		e.emitAudit(ctx, auditEventAuthorizeFailure, false, "", "", ErrTokenInvalid, func() map[string]string {
			return map[string]string{
				"reason": "missing_token",
			}
		})
		return nil, ErrTokenInvalid
	}

	claim, err := e.tokens.Verify(token, jwt.KindAccess)
	if err != nil {
		e.metricInc(MetricAuthorizeFailure)
		e.emitAudit(ctx, auditEventAuthorizeFailure, false, "", "", ErrTokenInvalid, nil)
		return nil, ErrTokenInvalid
	}

	user, err := e.userProvider.GetUserByEmail(ctx, claim.Email)
	if err != nil {
		e.metricInc(MetricAuthorizeFailure)
		if errors.Is(err, ErrUserNotFound) {
			e.emitAudit(ctx, auditEventAuthorizeFailure, false, claim.UserID, claim.Email, ErrUserNotFound, func() map[string]string {
				return map[string]string{
					"reason": "subject_gone",
				}
			})
			return nil, ErrUserNotFound
		}
		e.emitAudit(ctx, auditEventAuthorizeFailure, false, claim.UserID, claim.Email, ErrProviderUnavailable, nil)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	role := Role(claim.Role)
	if len(allowedRoles) > 0 && !roleAllowed(role, allowedRoles) {
		e.metricInc(MetricAuthorizeFailure)
		e.emitAudit(ctx, auditEventAuthorizeFailure, false, user.UserID, user.Email, ErrPermissionDenied, func() map[string]string {
			return map[string]string{
				"role": string(role),
			}
		})
		return nil, ErrPermissionDenied
	}

	e.metricInc(MetricAuthorizeSuccess)
	e.emitAudit(ctx, auditEventAuthorizeSuccess, true, user.UserID, user.Email, nil, nil)
	return &AuthResult{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   role,
	}, nil
}

func roleAllowed(role Role, allowed []Role) bool {
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}
