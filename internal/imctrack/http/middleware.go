package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/bodytraq/imctrack/internal/imctrack/domain"
	"github.com/bodytraq/imctrack/internal/imctrack/store"
	"github.com/bodytraq/imctrack/pkg/httpx"
	"github.com/bodytraq/imctrack/pkg/jwtx"
	"github.com/bodytraq/imctrack/pkg/slogx"
)

// bearerPrefix is matched case-sensitively: exactly "Bearer" and a single
// space, per the API contract. Anything else is a 400 before any token
// verification runs.
const bearerPrefix = "Bearer "

type userCtxKey struct{}

// userFromContext returns the authenticated user stored by AuthnMiddleware.
func userFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(domain.User)
	return u, ok
}

// bearerToken extracts the raw token from the Authorization header,
// enforcing the exact "Bearer " scheme.
func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, bearerPrefix) {
		return "", false
	}
	token := authz[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

// AuthnMiddleware authenticates requests with an access token. The user is
// looked up on every request, so a deleted account loses access immediately
// even if its token is still within lifetime.
func AuthnMiddleware(codec *jwtx.Codec, st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				ErrBadRequest.Write(w)
				return
			}

			claims, err := codec.Verify(raw, jwtx.ClassAccess)
			if err != nil {
				log.Warn("access token verification failed", "err", err)
				ErrUnauthorized.Write(w)
				return
			}

			user, err := st.Users().GetUserByEmail(ctx, claims.Email)
			if err != nil {
				log.Warn("token subject no longer exists", "email", claims.Email, "err", err)
				ErrUnauthorized.Write(w)
				return
			}

			ctx = context.WithValue(ctx, userCtxKey{}, user)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, user.ID)
			ctx = context.WithValue(ctx, httpx.CtxKeyEmail, user.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
