package httpapi

import (
	"net/http"

	authkit "github.com/lingostack/authkit"
	"github.com/lingostack/authkit/middleware"
)

// RefreshTokenCookie is the cookie consulted by /auth/refresh when the
// request body carries no refresh token.
const RefreshTokenCookie = "refreshToken"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := s.engine.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// The contract reports unknown users on login as a 400, not 404.
		writeEngineError(w, err, http.StatusBadRequest)
		return
	}

	setTokenCookie(w, middleware.AccessTokenCookie, pair.AccessToken)
	setTokenCookie(w, RefreshTokenCookie, pair.RefreshToken)
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
			req.RefreshToken = cookie.Value
		}
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized: no token provided")
		return
	}

	access, err := s.engine.ReissueAccessToken(r.Context(), req.RefreshToken)
	if err != nil {
		writeEngineError(w, err, http.StatusNotFound)
		return
	}

	setTokenCookie(w, middleware.AccessTokenCookie, access)
	writeJSON(w, http.StatusOK, refreshResponse{AccessToken: access})
}

type otpSendRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Server) handleOTPSend(w http.ResponseWriter, r *http.Request) {
	var req otpSendRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.engine.SendOTP(r.Context(), req.Email, req.Name); err != nil {
		writeEngineError(w, err, http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type otpVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (s *Server) handleOTPVerify(w http.ResponseWriter, r *http.Request) {
	var req otpVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.engine.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeEngineError(w, err, http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type registerRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	CertificationLevel string `json:"certificationLevel,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.engine.Register(r.Context(), authkit.RegisterRequest{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		CertificationLevel: authkit.CertificationLevel(req.CertificationLevel),
	})
	if err != nil {
		writeEngineError(w, err, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, profileFromRecord(created))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.AuthResultFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: invalid token")
		return
	}

	user, err := s.engine.Profile(r.Context(), claim.UserID)
	if err != nil {
		writeEngineError(w, err, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, profileFromRecord(user))
}

type updateMeRequest struct {
	Name               *string `json:"name,omitempty"`
	CertificationLevel *string `json:"certificationLevel,omitempty"`
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.AuthResultFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: invalid token")
		return
	}

	var req updateMeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var level *authkit.CertificationLevel
	if req.CertificationLevel != nil {
		l := authkit.CertificationLevel(*req.CertificationLevel)
		level = &l
	}

	user, err := s.engine.UpdateProfile(r.Context(), claim.UserID, req.Name, level)
	if err != nil {
		writeEngineError(w, err, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, profileFromRecord(user))
}

func setTokenCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
