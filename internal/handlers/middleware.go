package handlers

import (
	"strings"

	"github.com/kurirapp/courier-api/internal/token"
	xhttp "github.com/kurirapp/courier-api/pkg/http"
)

const (
	ctxKeyCourierID = "courier_id"
	ctxKeyUsername  = "username"
)

type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// RequireAuth gates a handler behind a bearer token. Requests without a
// token or with a bad one are rejected before the handler runs, so the
// stores are never touched.
func RequireAuth(tokens TokenVerifier, next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		header := string(ctx.Request.Header.Peek("Authorization"))
		if header == "" {
			writeError(ctx, xhttp.StatusForbidden, "missing token")
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header || raw == "" {
			writeError(ctx, xhttp.StatusForbidden, "invalid token")
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			writeError(ctx, xhttp.StatusForbidden, "invalid token")
			return
		}

		ctx.SetUserValue(ctxKeyCourierID, claims.CourierID)
		ctx.SetUserValue(ctxKeyUsername, claims.Username)
		next(ctx)
	}
}

// CourierIDFromCtx returns the courier identity stored by RequireAuth.
func CourierIDFromCtx(ctx *xhttp.RequestCtx) (int64, bool) {
	id, ok := ctx.UserValue(ctxKeyCourierID).(int64)
	return id, ok
}
