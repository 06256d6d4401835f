package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//AuthJWTがcontextに積んだroleを見て、ADMIN以外を弾きます。
//商品・ブランド・注文・統計・監査ログの管理APIにAuthJWTの後段で挟む前提。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				//roleが無い＝AuthJWTを通っていない
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != "ADMIN" {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
