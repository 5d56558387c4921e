package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"stock-advisor/config"
	"stock-advisor/internal/repository"
	"stock-advisor/internal/service"
	appMiddleware "stock-advisor/pkg/middleware"
	"stock-advisor/pkg/ratelimit"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	cfg       *config.Config
	service   *service.Service
	repo      *repository.Repository
	quota     *ratelimit.DailyQuota
}

func NewHttpAPIHandler(
	ctx context.Context,
	e *echo.Echo,
	validator *goValidator.Validate,
	cfg *config.Config,
	svc *service.Service,
	repo *repository.Repository,
	quota *ratelimit.DailyQuota,
) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      e,
		validator: validator,
		cfg:       cfg,
		service:   svc,
		repo:      repo,
		quota:     quota,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     splitOrigins(h.cfg.API.AllowedOrigins),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	h.echo.GET("/", h.Root)
	h.echo.GET("/health", h.Health)
	h.echo.POST("/auth/login", h.Login)

	authenticated := h.echo.Group("", appMiddleware.JWTAuth(h.cfg.Auth.SecretKey))
	authenticated.GET("/ping", h.Ping, appMiddleware.DailyQuota(h.quota))
	authenticated.GET("/news/:symbol", h.News)
	authenticated.GET("/equity/:symbol", h.Equity)
	authenticated.GET("/indicators/:symbol", h.Indicators)
	authenticated.GET("/sentiment/:symbol", h.Sentiment)
	authenticated.GET("/decision/:symbol", h.Decision)
	authenticated.GET("/agent/:symbol", h.Agent, appMiddleware.DailyQuota(h.quota))
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func queryBool(c echo.Context, name string, fallback bool) bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
