// Package authkit provides a credential and session-lifecycle engine with
// signed dual-token (access/refresh) JWT sessions, argon2id password
// credentials, a Redis-backed one-time-passcode verification flow, and a
// role-based authorization gate.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authkit is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (UserRecord, TokenPair, AuthResult, AuditEvent). Durable
// user storage and outbound mail delivery are external collaborators supplied
// by the caller through [UserProvider] and [Mailer]; the engine never imports
// a database driver or an SMTP client.
//
// # What this package must NOT do
//
//   - Expose Redis clients, the passcode store, or token signing secrets in
//     its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only until Build).
//   - Import any sub-package that re-imports authkit (no import cycles).
//
// # Failure surface
//
// Every operation fails with one of the sentinel errors in errors.go, matched
// with [errors.Is]. Failure reasons that would act as an oracle (which OTP
// check failed, why a signature was rejected) are deliberately collapsed into
// a single sentinel per operation.
package authkit
