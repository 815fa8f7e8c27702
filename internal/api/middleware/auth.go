package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ContextUsername is where Auth stores the token's username.
const ContextUsername = "username"

type authFailure struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, authFailure{Success: false, Msg: msg})
}

// Auth validates an HS256 bearer token and stores its username in the
// context. The scheme is matched case-insensitively so the "BEARER <jwt>"
// string returned by login can be sent back unchanged.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "No token provided.")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return unauthorized(c, "Invalid authorization header.")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			}, jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return unauthorized(c, "Invalid or expired token.")
			}

			username, _ := claims["username"].(string)
			if username == "" {
				return unauthorized(c, "Token missing username.")
			}

			c.Set(ContextUsername, username)
			return next(c)
		}
	}
}
