package http

import (
	"fmt"
	"net/http"

	"stock-advisor/internal/dto"
	appMiddleware "stock-advisor/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "AI stock advisor backend running!"})
}

func (h *HttpAPIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HttpAPIHandler) Login(c echo.Context) error {
	req := new(dto.LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, err := h.service.AuthService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid username/password"})
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *HttpAPIHandler) Ping(c echo.Context) error {
	identity := appMiddleware.IdentityFromContext(c)
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Hello %s, you are authenticated!", identity),
	})
}
