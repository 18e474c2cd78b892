// Package internal holds helpers shared by the engine that must never be
// part of the public API surface.
package internal
