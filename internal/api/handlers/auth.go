package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackr/fintrackr/internal/api/middleware"
	"github.com/fintrackr/fintrackr/internal/auth"
	"github.com/fintrackr/fintrackr/internal/domain"
	"github.com/fintrackr/fintrackr/internal/store"
)

const resetTokenTTL = 10 * time.Minute

// AuthHandler handles signup, login, logout and password reset.
type AuthHandler struct {
	users       store.UserStore
	tokens      *auth.TokenManager
	production  bool
	frontendURL string
	log         zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users store.UserStore, tokens *auth.TokenManager, production bool, frontendURL string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:       users,
		tokens:      tokens,
		production:  production,
		frontendURL: frontendURL,
		log:         log,
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := auth.ValidateSignup(req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if _, err := h.users.GetByEmail(ctx, req.Email); err == nil {
		middleware.WriteError(w, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.log.Error().Err(err).Msg("Failed to check existing user")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if _, err := h.users.Insert(ctx, user); err != nil {
		h.log.Error().Err(err).Msg("Failed to insert user")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to issue session token")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, auth.TokenTTL))
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.sessionCookie("", 0)
	cookie.Expires = time.Unix(0, 0)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, user)
}

// ForgotPassword handles POST /api/auth/forgot-password
//
// The response never reveals whether the email exists. The reset link is
// logged rather than emailed; mail delivery is out of scope.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Email is required")
		return
	}

	const accepted = "If an account with that email exists, a password reset link has been sent."

	ctx := r.Context()
	user, err := h.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": accepted})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to look up user for password reset")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	token, err := auth.NewResetToken()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate reset token")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	if err := h.users.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		h.log.Error().Err(err).Msg("Failed to store reset token")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", h.frontendURL, token)
	h.log.Info().Str("user_id", user.ID).Str("reset_url", resetURL).Msg("Password reset link issued")

	resp := map[string]string{"message": accepted}
	if !h.production {
		resp["resetToken"] = token
		resp["resetUrl"] = resetURL
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Token == "" || req.Password == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Token and password are required")
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	user, err := h.users.GetByResetToken(ctx, req.Token, time.Now())
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to look up reset token")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	if err := h.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		h.log.Error().Err(err).Msg("Failed to update password")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset successful. Please login with your new password.",
	})
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.production {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.production,
		SameSite: sameSite,
		MaxAge:   int(ttl / time.Second),
	}
}
