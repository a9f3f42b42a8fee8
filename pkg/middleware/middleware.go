package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"github.com/libstack/lending-service/pkg/auth"
	"github.com/libstack/lending-service/pkg/logger"
)

const (
	AuthorizationHeader = "Authorization"
	bearer              = "Bearer "
)

// AuthContext resolves the caller's identity. The identity provider in
// front of the service passes it as trusted X-User-* headers; callers
// reaching the service directly may present a Bearer token signed with
// the shared key instead.
func AuthContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		p := auth.Profile{
			Username: req.Header.Get(auth.XUserNameHeader),
			Role:     req.Header.Get(auth.XUserRoleHeader),
			Status:   req.Header.Get(auth.XUserStatusHeader),
		}
		if p.Username == "" {
			bp, err := bearerProfile(req.Header.Get(AuthorizationHeader))
			if err != nil {
				return err
			}
			p = bp
		}
		if p.Username == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "user-name is empty")
		}
		if p.Role == "" {
			p.Role = auth.RolePatron
		}
		if p.Status == "" {
			p.Status = auth.StatusActive
		}
		c.SetRequest(req.WithContext(auth.SetIdentity(req.Context(), p)))
		return next(c)
	}
}

// bearerProfile extracts the profile embedded in a Bearer token. An
// absent header is not an error; the caller decides whether anonymous
// is acceptable.
func bearerProfile(authorization string) (auth.Profile, error) {
	if authorization == "" {
		return auth.Profile{}, nil
	}
	if !strings.HasPrefix(authorization, bearer) {
		return auth.Profile{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization Header")
	}
	tokenStr := strings.TrimPrefix(authorization, bearer)
	claims := new(auth.Claims)

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return auth.JWTKey, nil
	})
	if err != nil || !token.Valid {
		return auth.Profile{}, echo.NewHTTPError(http.StatusUnauthorized, "JwtAccessDenied")
	}
	// tokens without exp never expire
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return auth.Profile{}, echo.NewHTTPError(http.StatusUnauthorized, "TokenExpired")
	}
	return claims.Profile, nil
}

// StaffOnly rejects callers that are neither librarians nor admins.
func StaffOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := auth.Identity(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		if !p.IsStaff() {
			return echo.NewHTTPError(http.StatusForbidden, "staff role required")
		}
		return next(c)
	}
}

func NewRateLimiter(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func RequestLoggerConfig() middleware.RequestLoggerConfig {
	cfg := logger.Log{LogLevel: zapcore.DebugLevel, Sink: ""}
	log := logger.NewLogger(cfg, "echo")
	c := middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
	return c
}
