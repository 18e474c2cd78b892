package authkit

import "context"

// Role is the coarse authorization level attached to every account and
// embedded in every issued token.
//
// Role instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Role string

const (
	// RoleAdmin is an exported constant or variable used by the credential engine.
	RoleAdmin Role = "ADMIN"
	// RoleUser is an exported constant or variable used by the credential engine.
	RoleUser Role = "USER"
	// RoleSupervisor is an exported constant or variable used by the credential engine.
	RoleSupervisor Role = "SUPERVISOR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleSupervisor:
		return true
	}
	return false
}

// AccountStatus represents the lifecycle state of a user account. The engine
// reads it but never transitions it; status changes belong to the storage
// collaborator.
type AccountStatus string

const (
	// StatusActive is an exported constant or variable used by the credential engine.
	StatusActive AccountStatus = "ACTIVE"
	// StatusInactive is an exported constant or variable used by the credential engine.
	StatusInactive AccountStatus = "INACTIVE"
	// StatusBlocked is an exported constant or variable used by the credential engine.
	StatusBlocked AccountStatus = "BLOCKED"
	// StatusDeleted is an exported constant or variable used by the credential engine.
	StatusDeleted AccountStatus = "DELETED"
)

// CertificationLevel is the six-tier CEFR proficiency classification carried
// on a user profile. It is orthogonal to authentication and never inspected
// by the engine beyond validation.
type CertificationLevel string

const (
	// LevelA1 is an exported constant or variable used by the credential engine.
	LevelA1 CertificationLevel = "A1"
	// LevelA2 is an exported constant or variable used by the credential engine.
	LevelA2 CertificationLevel = "A2"
	// LevelB1 is an exported constant or variable used by the credential engine.
	LevelB1 CertificationLevel = "B1"
	// LevelB2 is an exported constant or variable used by the credential engine.
	LevelB2 CertificationLevel = "B2"
	// LevelC1 is an exported constant or variable used by the credential engine.
	LevelC1 CertificationLevel = "C1"
	// LevelC2 is an exported constant or variable used by the credential engine.
	LevelC2 CertificationLevel = "C2"
)

// Valid reports whether l is one of the six CEFR tiers.
func (l CertificationLevel) Valid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	}
	return false
}

// UserRecord is the full account record exchanged with [UserProvider].
// It carries the password digest; Engine methods that return records to
// callers always clear it first.
type UserRecord struct {
	UserID             string
	Name               string
	Email              string
	PasswordHash       string
	Role               Role
	Verified           bool
	Status             AccountStatus
	CertificationLevel CertificationLevel
}

// CreateUserInput is the input for [UserProvider.CreateUser]. The engine has
// already hashed the password; providers must persist the digest as given.
type CreateUserInput struct {
	Name               string
	Email              string
	PasswordHash       string
	Role               Role
	Verified           bool
	Status             AccountStatus
	CertificationLevel CertificationLevel
}

// UserUpdate is a partial update applied by [UserProvider.UpdateUser].
// Nil fields are left untouched.
type UserUpdate struct {
	Name               *string
	CertificationLevel *CertificationLevel
	Verified           *bool
	PasswordHash       *string
}

// UserProvider is the interface that callers must implement to integrate
// authkit with their user database. Email is the unique identity key;
// GetUserByEmail and GetUserByID must return an error satisfying
// errors.Is(err, ErrUserNotFound) when no record matches, and CreateUser
// must enforce email uniqueness.
//
//	Docs: docs/usage.md
type UserProvider interface {
	GetUserByEmail(ctx context.Context, email string) (UserRecord, error)
	GetUserByID(ctx context.Context, userID string) (UserRecord, error)
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
	UpdateUser(ctx context.Context, userID string, update UserUpdate) (UserRecord, error)
}

// Mailer is the outbound delivery collaborator used by the OTP flow.
// templateID names a template owned by the mailer; data carries the
// substitution values (for the passcode mail: "name" and "otp").
type Mailer interface {
	SendMail(ctx context.Context, to, subject, templateID string, data map[string]string) error
}

// TokenPair is returned by [Engine.Login]: a short-lived access token and a
// longer-lived refresh token, both signed JWTs over the same claim shape.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is returned by [Engine.Authorize]. It is the verified identity
// claim of the caller: subject id, email, and role.
type AuthResult struct {
	UserID string
	Email  string
	Role   Role
}

// RegisterRequest is the input for [Engine.Register]. Name, Email, and
// Password are required; Role and CertificationLevel default to
// [Config.Account] values when empty.
type RegisterRequest struct {
	Name               string
	Email              string
	Password           string
	Role               Role
	CertificationLevel CertificationLevel
}
