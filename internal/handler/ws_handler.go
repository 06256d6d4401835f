package handler

import (
	"carshop/internal/config"
	"carshop/internal/middleware"
	"carshop/internal/notifier"

	"github.com/labstack/echo/v4"
)

// /ws の注文通知チャンネル
type WSHandler struct {
	hub *notifier.Hub
}

func NewWSHandler(hub *notifier.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

func (h *WSHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// ブラウザからはAuthorizationヘッダを付けられないので ?token= で認証する
	e.GET("/ws", h.serve, middleware.AuthJWT(cfg))
}

func (h *WSHandler) serve(c echo.Context) error {
	return notifier.ServeWS(h.hub, c.Response(), c.Request())
}
