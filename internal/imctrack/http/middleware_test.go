package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bodytraq/imctrack/pkg/jwtx"
)

func TestBearerToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"well formed", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"missing header", "", "", false},
		{"lowercase scheme", "bearer abc", "", false},
		{"no space", "Bearerabc", "", false},
		{"scheme only", "Bearer ", "", false},
		{"wrong scheme", "Basic abc", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			token, ok := bearerToken(req)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, token)
		})
	}
}

func TestAuthnMiddleware(t *testing.T) {
	env := newTestEnv(t)
	user, access := env.registerUser(t, "erin@example.com")

	t.Run("valid token reaches the handler", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/users", nextIP(), nil, bearer(access))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed header is a bad request, not unauthorized", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/users", nextIP(), nil,
			map[string]string{"Authorization": "bearer " + access})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		refresh, err := env.codec.Issue(user.Email, jwtx.ClassRefresh)
		require.NoError(t, err)

		rec := env.do(t, http.MethodGet, "/v1/users", nextIP(), nil, bearer(refresh))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deleted account loses access immediately", func(t *testing.T) {
		ghost, ghostToken := env.registerUser(t, "ghost@example.com")
		require.NoError(t, env.store.Users().DeleteUser(context.Background(), ghost.ID))

		rec := env.do(t, http.MethodGet, "/v1/users", nextIP(), nil, bearer(ghostToken))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
