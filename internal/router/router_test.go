package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniinventory/internal/auth"
	"miniinventory/internal/errors"
	"miniinventory/internal/handler"
)

func newTestServer(jwtService *auth.JWTService) *echo.Echo {
	e := echo.New()
	// Handlers are not reached by the requests below.
	Register(e, jwtService,
		handler.NewAuthHandler(nil),
		handler.NewProductHandler(nil),
		handler.NewReportHandler(nil),
	)
	return e
}

func TestHealthz(t *testing.T) {
	e := newTestServer(auth.NewJWTService("secret"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSecuredRoutes(t *testing.T) {
	jwtService := auth.NewJWTService("secret")
	e := newTestServer(jwtService)

	valid, err := jwtService.GenerateAccessToken(1, "admin")
	require.NoError(t, err)
	foreign, err := auth.NewJWTService("other-secret").GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		expectedCode int
	}{
		{name: "no token", header: "", expectedCode: http.StatusUnauthorized},
		{name: "token without scheme", header: valid, expectedCode: http.StatusUnauthorized},
		{name: "token signed elsewhere", header: "Bearer " + foreign, expectedCode: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusUnauthorized {
				var resp errors.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "UNAUTHORIZED", resp.Code)
			} else {
				assert.JSONEq(t, `{"user_id":1,"username":"admin"}`, rec.Body.String())
			}
		})
	}
}
