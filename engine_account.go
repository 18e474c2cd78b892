package authkit

import (
	"context"
	"errors"
	"fmt"
)

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register hashes the password, enforces email uniqueness through the
// provider, and persists the new account unverified. The returned record
// never carries the password digest.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (UserRecord, error) {
	if e == nil || e.passwordHash == nil || e.userProvider == nil {
		return UserRecord{}, ErrEngineNotReady
	}

	if req.Email == "" {
		err := fmt.Errorf("%w: email", ErrMissingField)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", "", err, nil)
		return UserRecord{}, err
	}
	if req.Password == "" {
		err := fmt.Errorf("%w: password", ErrMissingField)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", req.Email, err, nil)
		return UserRecord{}, err
	}

	role := req.Role
	if role == "" {
		role = e.config.Account.DefaultRole
	}
	if !role.Valid() {
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", req.Email, ErrRoleInvalid, nil)
		return UserRecord{}, ErrRoleInvalid
	}

	level := req.CertificationLevel
	if level == "" {
		level = e.config.Account.DefaultCertificationLevel
	}
	if !level.Valid() {
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", req.Email, ErrCertificationLevelInvalid, nil)
		return UserRecord{}, ErrCertificationLevelInvalid
	}

	_, err := e.userProvider.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		e.metricInc(MetricRegisterDuplicate)
		e.emitAudit(ctx, auditEventRegisterDuplicate, false, "", req.Email, ErrAccountExists, nil)
		return UserRecord{}, ErrAccountExists
	case !errors.Is(err, ErrUserNotFound):
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", req.Email, ErrProviderUnavailable, nil)
		return UserRecord{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	hash, err := e.passwordHash.Hash(req.Password)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", req.Email, ErrPasswordPolicy, func() map[string]string {
			return map[string]string{
				"reason": "hash_policy",
			}
		})
		return UserRecord{}, fmt.Errorf("%w: %v", ErrPasswordPolicy, err)
	}

	created, err := e.userProvider.CreateUser(ctx, CreateUserInput{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       hash,
		Role:               role,
		Verified:           false,
		Status:             StatusActive,
		CertificationLevel: level,
	})
	if err != nil {
		// Duplicate creation can still race past the lookup above; surface
		// the provider's uniqueness rejection as the duplicate error.
		if errors.Is(err, ErrAccountExists) {
			e.metricInc(MetricRegisterDuplicate)
			e.emitAudit(ctx, auditEventRegisterDuplicate, false, "", req.Email, ErrAccountExists, nil)
			return UserRecord{}, ErrAccountExists
		}
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", req.Email, ErrProviderUnavailable, nil)
		return UserRecord{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, created.UserID, created.Email, nil, nil)
	return sanitizeUser(created), nil
}

// Profile describes the profile operation and its observable behavior.
//
// Profile may return an error when input validation, dependency calls, or security checks fail.
// Profile returns the caller's account record with the password digest
// stripped.
func (e *Engine) Profile(ctx context.Context, userID string) (UserRecord, error) {
	if e == nil || e.userProvider == nil {
		return UserRecord{}, ErrEngineNotReady
	}
	if userID == "" {
		return UserRecord{}, fmt.Errorf("%w: user id", ErrMissingField)
	}

	user, err := e.userProvider.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return sanitizeUser(user), nil
}

// UpdateProfile describes the updateprofile operation and its observable behavior.
//
// UpdateProfile may return an error when input validation, dependency calls, or security checks fail.
// Only the name and certification level can be changed through this path;
// credential and verification fields are owned by their dedicated flows.
func (e *Engine) UpdateProfile(ctx context.Context, userID string, name *string, level *CertificationLevel) (UserRecord, error) {
	if e == nil || e.userProvider == nil {
		return UserRecord{}, ErrEngineNotReady
	}
	if userID == "" {
		return UserRecord{}, fmt.Errorf("%w: user id", ErrMissingField)
	}
	if level != nil && !level.Valid() {
		return UserRecord{}, ErrCertificationLevelInvalid
	}

	updated, err := e.userProvider.UpdateUser(ctx, userID, UserUpdate{
		Name:               name,
		CertificationLevel: level,
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	e.emitAudit(ctx, auditEventProfileUpdate, true, userID, updated.Email, nil, nil)
	return sanitizeUser(updated), nil
}
