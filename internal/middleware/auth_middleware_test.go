package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/pkg/auth"
)

func newJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test",
	})
}

func newAuthTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(jwtService).JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetInt64("userID")})
	})
	return router
}

func requestWithToken(t *testing.T, router *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeAuthError(t *testing.T, rec *httptest.ResponseRecorder) (code, details string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Error.Code, body.Error.Details
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	jwtService := newJWTService(time.Hour)
	token, _, _, _, err := jwtService.GenerateTokenPair(&models.User{ID: 7, Email: "user@example.com"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	rec := requestWithToken(t, newAuthTestRouter(jwtService), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		UserID int64 `json:"userId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.UserID != 7 {
		t.Errorf("userId = %d, want 7", body.UserID)
	}
}

func TestJWTAuthExpiredTokenReportsExpiredCode(t *testing.T) {
	jwtService := newJWTService(-time.Minute)
	token, _, _, _, err := jwtService.GenerateTokenPair(&models.User{ID: 7, Email: "user@example.com"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	rec := requestWithToken(t, newAuthTestRouter(jwtService), "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	code, details := decodeAuthError(t, rec)
	if code != "AUTH_006" {
		t.Errorf("code = %q, want AUTH_006 for an expired token", code)
	}
	if details != "Token has expired" {
		t.Errorf("details = %q, want the expiry message", details)
	}
}

func TestJWTAuthMalformedTokenReportsFormatDetail(t *testing.T) {
	rec := requestWithToken(t, newAuthTestRouter(newJWTService(time.Hour)), "Bearer not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	code, details := decodeAuthError(t, rec)
	if code != "AUTH_005" {
		t.Errorf("code = %q, want AUTH_005", code)
	}
	if details != "Invalid token format" {
		t.Errorf("details = %q, want the format message", details)
	}
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec := requestWithToken(t, newAuthTestRouter(newJWTService(time.Hour)), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
