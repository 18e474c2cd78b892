// Package password provides argon2id hashing and verification of plaintext
// credentials against PHC-encoded digests.
//
// Digests are self-describing: Verify derives its parameters from the stored
// digest, so parameter upgrades never invalidate existing credentials, and
// NeedsUpgrade lets callers migrate digests opportunistically on login.
// Digest comparison is constant-time.
package password
