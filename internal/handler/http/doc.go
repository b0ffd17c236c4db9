// Package http implements the REST transport of go-photo-share.
//
// Routes live under /api and are served by chi. Every request passes the
// trace, logging, metrics and timeout middlewares; protected routes add the
// bearer authentication middleware and, where needed, a role check. Failed
// requests are answered with {"detail": "<message>"}.
package http
