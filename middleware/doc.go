// Package middleware provides net/http middleware that gates protected
// routes through the engine's authorization check: bearer token extraction
// (Authorization header first, accessToken cookie second), access-token
// verification, subject re-resolution, and role allow-list enforcement.
package middleware
