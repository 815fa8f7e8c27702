package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	var username string
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		username, _ = c.Get(ContextUsername).(string)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, username
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, "secret", jwt.MapClaims{
		"username": "user1",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	for _, scheme := range []string{"Bearer", "BEARER", "bearer"} {
		rec, called, username := runAuth(t, scheme+" "+token)
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("%s: expected next to run, got %d", scheme, rec.Code)
		}
		if username != "user1" {
			t.Fatalf("%s: username not set, got %q", scheme, username)
		}
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired := signToken(t, "secret", jwt.MapClaims{
		"username": "user1",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	})
	noExp := signToken(t, "secret", jwt.MapClaims{"username": "user1"})
	wrongKey := signToken(t, "other", jwt.MapClaims{
		"username": "user1",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	noUser := signToken(t, "secret", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"no token":       "Bearer ",
		"garbage":        "Bearer not-a-token",
		"expired":        "Bearer " + expired,
		"no exp":         "Bearer " + noExp,
		"wrong key":      "Bearer " + wrongKey,
		"no username":    "Bearer " + noUser,
	}

	for name, header := range cases {
		rec, called, _ := runAuth(t, header)
		if called {
			t.Errorf("%s: next should not run", name)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"success":false`) {
			t.Errorf("%s: unexpected body %s", name, rec.Body.String())
		}
	}
}

func TestAuthMiddleware_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"username": "user1",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec, called, _ := runAuth(t, "Bearer "+signed)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for HS512 token, got %d", rec.Code)
	}
}
