package authkit

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the credential engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrMissingField is an exported constant or variable used by the credential engine.
	ErrMissingField = errors.New("required field missing")
	// ErrMissingCredentials is an exported constant or variable used by the credential engine.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrInvalidCredentials is an exported constant or variable used by the credential engine.
	ErrInvalidCredentials = errors.New("incorrect password")
	// ErrUserNotFound is an exported constant or variable used by the credential engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountExists is an exported constant or variable used by the credential engine.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountUnverified is an exported constant or variable used by the credential engine.
	ErrAccountUnverified = errors.New("account unverified")
	// ErrAlreadyVerified is an exported constant or variable used by the credential engine.
	ErrAlreadyVerified = errors.New("account already verified")
	// ErrRoleInvalid is an exported constant or variable used by the credential engine.
	ErrRoleInvalid = errors.New("invalid account role")
	// ErrCertificationLevelInvalid is an exported constant or variable used by the credential engine.
	ErrCertificationLevelInvalid = errors.New("invalid certification level")
	// ErrPasswordPolicy is an exported constant or variable used by the credential engine.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrOTPInvalid is an exported constant or variable used by the credential engine.
	ErrOTPInvalid = errors.New("invalid otp")
	// ErrTokenInvalid is an exported constant or variable used by the credential engine.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrPermissionDenied is an exported constant or variable used by the credential engine.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrMailDelivery is an exported constant or variable used by the credential engine.
	ErrMailDelivery = errors.New("mail delivery failed")
	// ErrStoreUnavailable is an exported constant or variable used by the credential engine.
	ErrStoreUnavailable = errors.New("verification store unavailable")
	// ErrProviderUnavailable is an exported constant or variable used by the credential engine.
	ErrProviderUnavailable = errors.New("user storage unavailable")
)
