package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"farmadelivery/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// ActorClaims carries the caller identity: Subject is the id of the customer,
// pharmacy, courier or admin the token represents.
type ActorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SignActorToken issues an HS256 token for actor valid for ttl.
func SignActorToken(secret []byte, actor kernel.Actor, now time.Time, ttl time.Duration) (string, error) {
	if err := actor.Validate(); err != nil {
		return "", err
	}
	if len(secret) == 0 {
		return "", errors.New("token secret is empty")
	}

	claims := ActorClaims{
		Role: string(actor.Role()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseActorToken verifies raw and returns the actor it names.
func ParseActorToken(secret []byte, raw string) (kernel.Actor, error) {
	var claims ActorClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return kernel.Actor{}, err
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("subject: %w", err)
	}
	return kernel.NewActor(id, kernel.Role(strings.ToUpper(claims.Role)))
}

// ActorMiddleware resolves the Bearer token into a kernel.Actor. Requests
// without a valid token are answered with 401.
func ActorMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			actor, err := ParseActorToken(secret, strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	return actor, nil
}
