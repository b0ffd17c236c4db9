package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-photo-share/internal/app"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/service"
	"github.com/MKhiriev/go-photo-share/internal/store"
	"github.com/MKhiriev/go-photo-share/internal/utils"
)

// auth authenticates the bearer access token of the request.
//
// On success the resolved user and the raw token are stored in the request
// context (see utils.WithUser and utils.WithToken). Invalid, wrongly scoped,
// revoked or orphaned tokens get 401 with a WWW-Authenticate challenge; a
// banned user gets 403. When the blacklist or user store cannot be reached
// the request fails with 503 and is never admitted.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := bearerToken(r)
		if err != nil {
			log.Debug().Err(err).Msg("missing bearer token")
			unauthorized(w)
			return
		}

		ctx := r.Context()
		user, err := h.services.Authenticator.Authenticate(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidToken),
				errors.Is(err, service.ErrInvalidScope),
				errors.Is(err, service.ErrRevokedToken),
				errors.Is(err, service.ErrUserNotFound):
				log.Debug().Err(err).Msg("authentication rejected")
				unauthorized(w)
			case errors.Is(err, service.ErrUserNotActive):
				writeDetail(w, app.MsgUserNotActive, http.StatusForbidden)
			case errors.Is(err, store.ErrStoreUnavailable), errors.Is(err, store.ErrCacheUnavailable):
				log.Err(err).Msg("authentication backend unavailable")
				writeDetail(w, app.MsgServiceUnavailable, http.StatusServiceUnavailable)
			default:
				writeError(w, r, err)
			}
			return
		}

		ctx = utils.WithUser(ctx, user)
		ctx = utils.WithToken(ctx, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole admits only users whose role passes authorizer. It must be
// mounted after auth.
func (h *Handler) requireRole(authorizer service.RoleAuthorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}

			if err := authorizer.Check(user); err != nil {
				logger.FromRequest(r).Debug().
					Int64("user_id", user.ID).
					Str("role", user.Role.String()).
					Msg("role check failed")
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	return utils.ParseBearerToken(r.Header.Get("Authorization"))
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, app.MsgCouldNotValidateCredentials, http.StatusUnauthorized)
}
