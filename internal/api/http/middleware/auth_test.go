package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/onboardly/dirprov/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter(keyHash string) *gin.Engine {
	r := gin.New()
	r.GET("/protected", APIKeyAuth(keyHash), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAPIKeyAuth(t *testing.T) {
	hash, err := auth.HashAPIKey("ops-key-123")
	require.NoError(t, err)
	r := setupAuthRouter(hash)

	cases := []struct {
		name string
		key  string
		want int
	}{
		{"valid key", "ops-key-123", http.StatusOK},
		{"wrong key", "nope", http.StatusUnauthorized},
		{"missing key", "", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/protected", nil)
			if tc.key != "" {
				req.Header.Set(apiKeyHeader, tc.key)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAPIKeyAuthUnconfigured(t *testing.T) {
	r := setupAuthRouter("")

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set(apiKeyHeader, "anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
