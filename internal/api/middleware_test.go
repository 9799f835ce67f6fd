package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, secret string, uid string, expiresAt time.Time) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gymbuddy",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/secret", AuthMiddleware(testSecret), func(c *gin.Context) {
		userID, err := getUserIDFromContext(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
	})
	return router
}

// TestAuthMiddleware_ValidToken verifies a signed bearer token passes and the
// user id lands in the handler context.
func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := protectedRouter()
	uid := "507f1f77bcf86cd799439011"
	token := signToken(t, testSecret, uid, time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
}

// TestAuthMiddleware_MissingHeader verifies requests without an Authorization
// header are rejected.
func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// TestAuthMiddleware_ExpiredToken verifies expired tokens are rejected.
func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router := protectedRouter()
	token := signToken(t, testSecret, "507f1f77bcf86cd799439011", time.Now().Add(-time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// TestAuthMiddleware_WrongSecret verifies tokens signed with another secret
// are rejected.
func TestAuthMiddleware_WrongSecret(t *testing.T) {
	router := protectedRouter()
	token := signToken(t, "some-other-secret", "507f1f77bcf86cd799439011", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// TestAuthMiddleware_MalformedHeader verifies non-bearer headers are rejected.
func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
