package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-photo-share/internal/app"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/service"
	"github.com/MKhiriev/go-photo-share/internal/store"
	"github.com/MKhiriev/go-photo-share/internal/utils"
	"github.com/MKhiriev/go-photo-share/internal/validators"
	"github.com/MKhiriev/go-photo-share/models"
)

// errorStatus maps a sentinel error to a status code. An empty detail means
// the sentinel's own text is sent to the client.
type errorStatus struct {
	err    error
	status int
	detail string
}

// errorStatusTable is scanned in order and the first match wins, so more
// specific errors come before the ones they wrap.
var errorStatusTable = []errorStatus{
	{err: service.ErrInvalidRefreshToken, status: http.StatusUnauthorized},
	{err: service.ErrVerification, status: http.StatusBadRequest},
	{err: service.ErrInvalidScope, status: http.StatusUnauthorized},
	{err: service.ErrRevokedToken, status: http.StatusUnauthorized},
	{err: service.ErrInvalidToken, status: http.StatusUnauthorized},

	{err: service.ErrInvalidEmail, status: http.StatusUnauthorized},
	{err: service.ErrEmailNotConfirmed, status: http.StatusUnauthorized},
	{err: service.ErrInvalidPassword, status: http.StatusUnauthorized},

	{err: service.ErrUserNotActive, status: http.StatusForbidden},
	{err: service.ErrForbidden, status: http.StatusForbidden},
	{err: service.ErrSelfModeration, status: http.StatusForbidden},

	{err: service.ErrUserNotFound, status: http.StatusNotFound},

	{err: service.ErrEmailExists, status: http.StatusConflict},
	{err: service.ErrUsernameExists, status: http.StatusConflict},
	{err: service.ErrUserAlreadyActive, status: http.StatusConflict},
	{err: service.ErrUserAlreadyNotActive, status: http.StatusConflict},

	{err: service.ErrAvatarUploadFailed, status: http.StatusBadGateway},

	{err: validators.ErrInvalidUsername, status: http.StatusBadRequest},
	{err: validators.ErrInvalidEmail, status: http.StatusBadRequest},
	{err: validators.ErrInvalidPassword, status: http.StatusBadRequest},
	{err: validators.ErrPasswordTooLong, status: http.StatusBadRequest},
	{err: validators.ErrEmptyPassword, status: http.StatusBadRequest},
	{err: validators.ErrEmptyToken, status: http.StatusBadRequest},
	{err: validators.ErrInvalidRole, status: http.StatusBadRequest},
	{err: validators.ErrDescriptionTooLong, status: http.StatusBadRequest},
	{err: validators.ErrNoFieldsToUpdate, status: http.StatusBadRequest},
	{err: service.ErrInvalidDataProvided, status: http.StatusBadRequest},

	{err: ErrInvalidJSON, status: http.StatusBadRequest},
	{err: ErrInvalidForm, status: http.StatusBadRequest},
	{err: ErrInvalidQuery, status: http.StatusBadRequest},
	{err: ErrAvatarTooLarge, status: http.StatusRequestEntityTooLarge},

	{err: store.ErrStoreUnavailable, status: http.StatusServiceUnavailable, detail: app.MsgServiceUnavailable},
	{err: store.ErrCacheUnavailable, status: http.StatusServiceUnavailable, detail: app.MsgServiceUnavailable},
	{err: context.DeadlineExceeded, status: http.StatusServiceUnavailable, detail: app.MsgRequestTimeout},
}

// statusFromError returns the status code and the client-facing detail for
// err. Unknown errors become 500 without leaking their text.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatusTable {
		if errors.Is(err, e.err) {
			if e.detail != "" {
				return e.status, e.detail
			}
			return e.status, e.err.Error()
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err with the request logger and answers with the mapped
// status and a JSON detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeDetail(w, detail, status)
}

func writeDetail(w http.ResponseWriter, detail string, status int) {
	utils.WriteJSON(w, models.ErrorResponse{Detail: detail}, status)
}

func writeMessage(w http.ResponseWriter, message string) {
	utils.WriteJSON(w, models.MessageResponse{Message: message}, http.StatusOK)
}
