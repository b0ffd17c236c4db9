package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-photo-share/internal/utils"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.Me(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// editProfile reads a multipart form with the optional fields username,
// description and the file avatar. The new_username and new_description
// spellings are accepted too.
func (h *Handler) editProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes+maxJSONBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, fmt.Errorf("%w: %w", ErrAvatarTooLarge, err))
			return
		}
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidForm, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	var req models.EditProfileRequest
	if v, ok := firstFormValue(r, "username", "new_username"); ok && v != "" {
		req.Username = &v
	}
	if v, ok := firstFormValue(r, "description", "new_description"); ok {
		req.Description = &v
	}

	file, header, err := r.FormFile("avatar")
	switch {
	case err == nil:
		defer file.Close()
		req.Avatar = file
		req.AvatarFilename = header.Filename
	case !errors.Is(err, http.ErrMissingFile):
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidForm, err))
		return
	}

	updated, err := h.services.UserService.EditProfile(r.Context(), current, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	skip, err := queryUint(r, "skip")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryUint(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), models.ListUsersRequest{Skip: skip, Limit: limit})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.services.UserService.Profile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) ban(w http.ResponseWriter, r *http.Request) {
	admin, _ := utils.GetUserFromContext(r.Context())

	msg, err := h.services.UserService.Ban(r.Context(), admin, r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msg)
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	admin, _ := utils.GetUserFromContext(r.Context())

	msg, err := h.services.UserService.Activate(r.Context(), admin, r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msg)
}

func (h *Handler) assignRole(w http.ResponseWriter, r *http.Request) {
	role := models.Role(chi.URLParam(r, "role"))

	msg, err := h.services.UserService.AssignRole(r.Context(), r.URL.Query().Get("email"), role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, msg)
}
