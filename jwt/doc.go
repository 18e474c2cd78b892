// Package jwt implements the kind-aware session token manager: two classes
// of signed, expiring tokens (access and refresh) carrying the same minimal
// identity claim set but signed with distinct secrets and distinct expiry
// windows.
//
// The kind separation is enforced twice: each kind has its own HS256 secret,
// and the token body carries an explicit "tkn" claim that Verify checks
// against the expected kind. A token minted for one kind therefore fails
// verification under the other even if the caller misconfigures identical
// secrets.
package jwt
