package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"edge_api/internal/lib/jwt"
	"edge_api/internal/lib/logger/sl"
	"edge_api/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
)

const (
	// UserIDKey ключ контекста echo с идентификатором вызывающего
	UserIDKey = "user_id"

	tokenCacheCleanup = 10 * time.Minute
)

// Auth проверяет bearer-токен Supabase. Проверенные токены кэшируются в памяти
// до истечения exp.
type Auth struct {
	log    *slog.Logger
	secret string
	cache  *cache.Cache
}

func NewAuth(log *slog.Logger, secret string) *Auth {
	return &Auth{
		log:    log,
		secret: secret,
		cache:  cache.New(cache.NoExpiration, tokenCacheCleanup),
	}
}

func (a *Auth) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "middleware.Auth.RequireUser"

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
		}
		token = strings.TrimSpace(token)

		if sub, ok := a.cache.Get(token); ok {
			c.Set(UserIDKey, sub.(string))
			return next(c)
		}

		claims, err := jwt.Parse(token, a.secret)
		if err != nil {
			a.log.With(slog.String("op", op)).Warn("token rejected", sl.Err(err))
			return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
		}

		ttl := cache.DefaultExpiration
		if claims.ExpiresAt != nil {
			ttl = time.Until(claims.ExpiresAt.Time)
		}
		if ttl > 0 {
			a.cache.Set(token, claims.Subject, ttl)
		}

		c.Set(UserIDKey, claims.Subject)

		return next(c)
	}
}
