package authkit

import (
	"bytes"
	"errors"
	"time"
)

// Config defines a public type used by authkit APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	JWT      JWTConfig
	Password PasswordConfig
	OTP      OTPConfig
	Account  AccountConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig defines a public type used by authkit APIs.
//
// Access and refresh tokens are signed with distinct secrets so that a token
// minted for one kind can never verify under the other kind's rules, even
// before the explicit kind claim is checked.
type JWTConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by authkit APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory         uint32 // in KB
	Time           uint32
	Parallelism    uint8
	SaltLength     uint32
	KeyLength      uint32
	UpgradeOnLogin bool
}

/*
====================================
OTP CONFIG
====================================
*/

// OTPConfig defines a public type used by authkit APIs.
//
// Digits is the fixed passcode length; TTL is the lifetime of a pending
// entry in the ephemeral store. KeyPrefix is prepended to the email to form
// the store key ("otp:<email>" by default).
type OTPConfig struct {
	Digits     int
	TTL        time.Duration
	KeyPrefix  string
	Subject    string
	TemplateID string
}

/*
====================================
ACCOUNT CONFIG
====================================
*/

// AccountConfig defines a public type used by authkit APIs.
//
// AccountConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AccountConfig struct {
	DefaultRole               Role
	DefaultCertificationLevel CertificationLevel
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by authkit APIs.
//
// When DropIfFull is set the dispatcher sheds events instead of applying
// backpressure to request paths; drops are counted and observable through
// [Engine.AuditDropped].
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by authkit APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the recommended baseline configuration. Signing
// secrets are intentionally absent and must be supplied by the caller.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			Issuer:     "authkit",
			Leeway:     30 * time.Second,
		},
		Password: PasswordConfig{
			Memory:         64 * 1024,
			Time:           3,
			Parallelism:    2,
			SaltLength:     16,
			KeyLength:      32,
			UpgradeOnLogin: false,
		},
		OTP: OTPConfig{
			Digits:     6,
			TTL:        5 * time.Minute,
			KeyPrefix:  "otp",
			Subject:    "Your OTP Code",
			TemplateID: "otp",
		},
		Account: AccountConfig{
			DefaultRole:               RoleUser,
			DefaultCertificationLevel: LevelA1,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.AccessSecret = append([]byte(nil), cfg.JWT.AccessSecret...)
	out.JWT.RefreshSecret = append([]byte(nil), cfg.JWT.RefreshSecret...)
	return out
}

func validateConfig(cfg Config) error {
	if len(cfg.JWT.AccessSecret) == 0 {
		return errors.New("jwt access secret is required")
	}
	if len(cfg.JWT.RefreshSecret) == 0 {
		return errors.New("jwt refresh secret is required")
	}
	if bytes.Equal(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret) {
		return errors.New("jwt access and refresh secrets must differ")
	}
	if cfg.JWT.AccessTTL <= 0 || cfg.JWT.RefreshTTL <= 0 {
		return errors.New("jwt TTLs must be positive")
	}
	if cfg.JWT.RefreshTTL <= cfg.JWT.AccessTTL {
		return errors.New("jwt refresh TTL must exceed access TTL")
	}
	if cfg.OTP.Digits < 4 || cfg.OTP.Digits > 10 {
		return errors.New("otp digits must be between 4 and 10")
	}
	if cfg.OTP.TTL < time.Minute {
		return errors.New("otp TTL must be at least one minute")
	}
	if cfg.OTP.KeyPrefix == "" {
		return errors.New("otp key prefix is required")
	}
	if !cfg.Account.DefaultRole.Valid() {
		return errors.New("account default role is invalid")
	}
	if !cfg.Account.DefaultCertificationLevel.Valid() {
		return errors.New("account default certification level is invalid")
	}
	return nil
}
