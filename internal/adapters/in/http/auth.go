package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"freelance/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const callerKey = "caller"

var errUnauthenticated = errors.New("unauthenticated")

// Claims is the token payload issued by the identity provider.
type Claims struct {
	AccountID int64  `json:"account_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator turns HS256 bearer tokens into a kernel.Caller.
type Authenticator struct {
	secret []byte
	logger *slog.Logger
}

func NewAuthenticator(secret string, logger *slog.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), logger: logger.With("component", "auth")}
}

// Issue signs a token for caller. Used by local tooling and tests; production
// tokens come from the identity provider sharing the secret.
func (a *Authenticator) Issue(caller kernel.Caller, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: caller.AccountID().Int64(),
		Role:      caller.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse validates the signature and expiry of token and builds the caller.
func (a *Authenticator) Parse(token string) (kernel.Caller, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return kernel.Caller{}, fmt.Errorf("parse token: %w", err)
	}

	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Caller{}, err
	}
	return kernel.NewCaller(kernel.ID(claims.AccountID), role)
}

// Middleware requires "Authorization: Bearer <token>". The websocket
// handshake cannot set headers from a browser, so a token query parameter is
// accepted as well.
func (a *Authenticator) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
			scheme, value, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				a.logger.WarnContext(c.Request().Context(), "malformed authorization header")
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: http.StatusUnauthorized, Message: errUnauthenticated.Error()})
			}
			token = value
		}
		if token == "" {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: http.StatusUnauthorized, Message: errUnauthenticated.Error()})
		}

		caller, err := a.Parse(token)
		if err != nil {
			a.logger.WarnContext(c.Request().Context(), "token rejected", "error", err)
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: http.StatusUnauthorized, Message: errUnauthenticated.Error()})
		}

		c.Set(callerKey, caller)
		return next(c)
	}
}

// CallerFrom returns the caller stored by Middleware.
func CallerFrom(c echo.Context) (kernel.Caller, error) {
	caller, ok := c.Get(callerKey).(kernel.Caller)
	if !ok {
		return kernel.Caller{}, errUnauthenticated
	}
	return caller, nil
}
