package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	principalContextKey = "principal"
	scopeContextKey     = "scope"
)

// Claims are the bearer token fields the tracker reads. Tokens are issued by
// the shop's identity service.
type Claims struct {
	BranchID  string `json:"branch_id,omitempty"`
	Superuser bool   `json:"is_superuser,omitempty"`
	jwt.RegisteredClaims
}

// ScopeResolver computes the branches a principal may see.
type ScopeResolver interface {
	VisibleBranchIDs(ctx context.Context, principal branch.Principal) (branch.Scope, error)
}

// AuthMiddleware validates the HS256 bearer token and stores the principal
// and its resolved branch scope on the echo context.
func AuthMiddleware(secret string, resolver ScopeResolver, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			claims, err := parseToken(tokenString, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			principal, err := principalFromClaims(claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			ctx := c.Request().Context()
			scope, err := resolver.VisibleBranchIDs(ctx, principal)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to resolve branch scope", "error", err, "user_id", principal.UserID())
				return echo.NewHTTPError(http.StatusInternalServerError)
			}

			c.Set(principalContextKey, principal)
			c.Set(scopeContextKey, scope)
			return next(c)
		}
	}
}

// GenerateToken signs claims for userID. It is used by tests and local tooling.
func GenerateToken(secret, userID string, branchID *kernel.UUID, superuser bool) (string, error) {
	claims := Claims{
		Superuser: superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	}
	if branchID != nil {
		claims.BranchID = branchID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("authorization header missing")
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New("invalid authorization format: missing Bearer prefix")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", errors.New("invalid authorization format: empty token")
	}
	return token, nil
}

func parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func principalFromClaims(claims *Claims) (branch.Principal, error) {
	var branchID *kernel.UUID
	if claims.BranchID != "" {
		id, err := kernel.UUIDFromString(claims.BranchID)
		if err != nil {
			return branch.Principal{}, err
		}
		branchID = &id
	}

	if claims.Superuser {
		return branch.NewSuperuser(claims.Subject, branchID)
	}
	return branch.NewPrincipal(claims.Subject, branchID)
}

// identity returns what AuthMiddleware stored. Routes outside the middleware
// get an empty scope and a zero principal.
func identity(c echo.Context) (branch.Principal, branch.Scope) {
	principal, _ := c.Get(principalContextKey).(branch.Principal)
	scope, ok := c.Get(scopeContextKey).(branch.Scope)
	if !ok {
		scope = branch.EmptyScope()
	}
	return principal, scope
}
