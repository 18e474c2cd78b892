package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	authkit "github.com/lingostack/authkit"
	"github.com/lingostack/authkit/middleware"
)

// Server defines a public type used by authkit APIs.
//
// Server instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Server struct {
	engine *authkit.Engine
}

// NewServer describes the newserver operation and its observable behavior.
//
// NewServer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewServer(engine *authkit.Engine) *Server {
	return &Server{engine: engine}
}

// Routes returns the handler realizing the wire contract. Protected routes
// are wrapped with the authorization gate; /user/me admits any authenticated
// role (empty allow-list).
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	mux.HandleFunc("POST /otp/send", s.handleOTPSend)
	mux.HandleFunc("POST /otp/verify", s.handleOTPVerify)
	mux.HandleFunc("POST /user", s.handleRegister)

	guard := middleware.Guard(s.engine)
	mux.Handle("GET /user/me", guard(http.HandlerFunc(s.handleMe)))
	mux.Handle("PATCH /user/me", guard(http.HandlerFunc(s.handleUpdateMe)))

	return withClientIP(mux)
}

// withClientIP records the remote address on the request context so engine
// audit events carry it.
func withClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := authkit.WithClientIP(r.Context(), r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type profileResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	IsVerified         bool   `json:"isVerified"`
	Status             string `json:"status"`
	CertificationLevel string `json:"certificationLevel"`
}

func profileFromRecord(user authkit.UserRecord) profileResponse {
	return profileResponse{
		ID:                 user.UserID,
		Name:               user.Name,
		Email:              user.Email,
		Role:               string(user.Role),
		IsVerified:         user.Verified,
		Status:             string(user.Status),
		CertificationLevel: string(user.CertificationLevel),
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeEngineError maps a sentinel to its transport (statusCode, message)
// pair. notFoundStatus lets login report unknown users as 400 while the OTP
// routes report 404, matching the contract's per-route taxonomy.
func writeEngineError(w http.ResponseWriter, err error, notFoundStatus int) {
	switch {
	case errors.Is(err, authkit.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, "Email and password are required")
	case errors.Is(err, authkit.ErrMissingField):
		writeError(w, http.StatusBadRequest, "Required field missing")
	case errors.Is(err, authkit.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Incorrect password")
	case errors.Is(err, authkit.ErrUserNotFound):
		writeError(w, notFoundStatus, "User does not exist")
	case errors.Is(err, authkit.ErrAccountExists):
		writeError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, authkit.ErrAccountUnverified):
		writeError(w, http.StatusUnauthorized, "Account is not verified")
	case errors.Is(err, authkit.ErrAlreadyVerified):
		writeError(w, http.StatusUnauthorized, "You are already verified")
	case errors.Is(err, authkit.ErrOTPInvalid):
		writeError(w, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, authkit.ErrMailDelivery):
		writeError(w, http.StatusBadRequest, "Email could not be delivered")
	case errors.Is(err, authkit.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, "Unauthorized: invalid token")
	case errors.Is(err, authkit.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "Forbidden: you do not have access to this resource")
	case errors.Is(err, authkit.ErrRoleInvalid),
		errors.Is(err, authkit.ErrCertificationLevelInvalid),
		errors.Is(err, authkit.ErrPasswordPolicy):
		writeError(w, http.StatusBadRequest, "Invalid request")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
