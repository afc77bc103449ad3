package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateEndpoint(t *testing.T) {
	env := newTestEnv(t)
	user, access := env.registerUser(t, "ivan@example.com")

	t.Run("stores and returns the calculation", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/imc", nextIP(), map[string]any{
			"altura": 1.75,
			"peso":   70.0,
		}, bearer(access))

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, 22.86, body["imc"])
		require.Equal(t, "Normal", body["categoria"])
		require.Equal(t, 1.75, body["altura"])
		require.Equal(t, 70.0, body["peso"])
		require.NotEmpty(t, body["fecha_calculo"])

		owner, ok := body["user"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, user.Email, owner["email"])
		require.NotContains(t, owner, "password_hash")
	})

	t.Run("measurement bounds", func(t *testing.T) {
		cases := []struct {
			name   string
			altura float64
			peso   float64
		}{
			{"zero height", 0, 70},
			{"height too large", 3.0, 70},
			{"zero weight", 1.75, 0},
			{"weight too large", 1.75, 500},
			{"negative weight", 1.75, -1},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				rec := env.do(t, http.MethodPost, "/v1/imc", nextIP(), map[string]any{
					"altura": tc.altura,
					"peso":   tc.peso,
				}, bearer(access))

				require.Equal(t, http.StatusBadRequest, rec.Code)
				require.Equal(t, "validation_error", decodeBody(t, rec)["error"])
			})
		}
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/imc", nextIP(), map[string]any{
			"altura": 2.99,
			"peso":   499.99,
		}, bearer(access))

		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/imc", nextIP(), map[string]any{
			"altura": 1.75,
			"peso":   70.0,
		}, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func seedCalculations(t *testing.T, env *testEnv, access string, weights []float64) {
	t.Helper()

	for _, w := range weights {
		rec := env.do(t, http.MethodPost, "/v1/imc", nextIP(), map[string]any{
			"altura": 1.75,
			"peso":   w,
		}, bearer(access))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, access := env.registerUser(t, "julia@example.com")
	seedCalculations(t, env, access, []float64{60, 65, 70, 75, 80, 85, 90})

	t.Run("defaults to page 1, five per page, newest first", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/imc/historial", nextIP(), nil, bearer(access))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, float64(1), body["pag"])
		require.Equal(t, float64(5), body["mostrar"])
		require.Equal(t, float64(7), body["total"])
		require.Equal(t, float64(2), body["totalPaginas"])

		records, ok := body["historiales"].([]any)
		require.True(t, ok)
		require.Len(t, records, 5)
	})

	t.Run("explicit pagination", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/imc/historial?sort=asc&pag=2&mostrar=3", nextIP(), nil, bearer(access))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, float64(2), body["pag"])
		require.Equal(t, float64(3), body["mostrar"])
		require.Equal(t, float64(3), body["totalPaginas"])
	})

	t.Run("sort is case-insensitive", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/imc/historial?sort=ASC", nextIP(), nil, bearer(access))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		for _, query := range []string{"sort=sideways", "pag=0", "pag=abc", "mostrar=-1"} {
			rec := env.do(t, http.MethodGet, "/v1/imc/historial?"+query, nextIP(), nil, bearer(access))
			require.Equal(t, http.StatusBadRequest, rec.Code, query)
			require.Equal(t, "validation_error", decodeBody(t, rec)["error"], query)
		}
	})

	t.Run("history is scoped to the caller", func(t *testing.T) {
		_, otherAccess := env.registerUser(t, "karl@example.com")

		rec := env.do(t, http.MethodGet, "/v1/imc/historial", nextIP(), nil, bearer(otherAccess))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, float64(0), decodeBody(t, rec)["total"])
	})
}

func TestDashboardEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, access := env.registerUser(t, "lena@example.com")

	t.Run("empty history yields zeroed statistics", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/imc/estadisticas", nextIP(), nil, bearer(access))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		records, ok := body["historiales"].([]any)
		require.True(t, ok)
		require.Empty(t, records)

		peso, ok := body["estadisticasPeso"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, float64(0), peso["promedio"])
		require.Equal(t, float64(0), peso["desviacion"])
	})

	t.Run("aggregates the full history", func(t *testing.T) {
		seedCalculations(t, env, access, []float64{70, 71, 72})

		rec := env.do(t, http.MethodGet, "/v1/imc/estadisticas", nextIP(), nil, bearer(access))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Historiales []struct {
				Peso float64 `json:"peso"`
				Imc  float64 `json:"imc"`
			} `json:"historiales"`
			EstadisticasPeso struct {
				Promedio   float64 `json:"promedio"`
				Desviacion float64 `json:"desviacion"`
			} `json:"estadisticasPeso"`
			Categorias struct {
				CantNormal int `json:"cantNormal"`
				CantObeso  int `json:"cantObeso"`
			} `json:"categorias"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

		require.Len(t, body.Historiales, 3)
		// Oldest first.
		require.Equal(t, 70.0, body.Historiales[0].Peso)
		require.Equal(t, 72.0, body.Historiales[2].Peso)

		require.Equal(t, 71.0, body.EstadisticasPeso.Promedio)
		require.Equal(t, 0.82, body.EstadisticasPeso.Desviacion)
		require.Equal(t, 3, body.Categorias.CantNormal)
		require.Equal(t, 0, body.Categorias.CantObeso)
	})
}
