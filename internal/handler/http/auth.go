package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-photo-share/internal/app"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/utils"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.SignUp(r.Context(), req, baseURL(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SignUpResponse{User: user, Detail: app.MsgUserCreated}, http.StatusCreated)
}

// login accepts the OAuth2 password form (the e-mail travels as "username")
// as well as a JSON body.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidForm, err))
			return
		}
		req.Email = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Msg("user logged in")
	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), token); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgLoggedOut)
}

// refreshToken expects the refresh token as the bearer credential.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		unauthorized(w)
		return
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) confirmEmail(w http.ResponseWriter, r *http.Request) {
	msg, err := h.services.AuthService.ConfirmEmail(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msg)
}

func (h *Handler) requestEmail(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := h.services.AuthService.RequestEmail(r.Context(), req, baseURL(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msg)
}

// forgotPassword takes the address from the "email" query parameter or,
// when absent, from a JSON body.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	req := models.EmailRequest{Email: r.URL.Query().Get("email")}
	if req.Email == "" {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	msg, err := h.services.AuthService.ForgotPassword(r.Context(), req, baseURL(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msg)
}

// resetPassword takes reset_token and new_password from the query string or
// a JSON body {"token", "new_password"}.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := models.ResetPasswordRequest{
		Token:       query.Get("reset_token"),
		NewPassword: query.Get("new_password"),
	}
	if req.Token == "" && req.NewPassword == "" {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	msg, err := h.services.AuthService.ResetPassword(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msg)
}
