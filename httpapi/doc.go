// Package httpapi exposes the engine over HTTP. The JSON field names here
// are an interoperability contract and must not change:
//
//	POST /auth/login    {email, password}      -> 200 {accessToken, refreshToken}
//	POST /auth/refresh  {refreshToken}         -> 200 {accessToken}
//	POST /otp/send      {email, name}          -> 200
//	POST /otp/verify    {email, otp}           -> 200
//	POST /user          {name, email, password} -> 201 profile
//	GET  /user/me       (bearer token)         -> 200 profile
//	PATCH /user/me      (bearer token)         -> 200 profile
//
// Tokens travel in the Authorization header ("Bearer <token>") or in the
// accessToken cookie; the header wins when both are present. Errors are
// {"message": "..."} with the status codes of the error taxonomy.
package httpapi
