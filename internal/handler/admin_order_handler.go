package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"carshop/internal/config"
	"carshop/internal/domain/model"
	"carshop/internal/middleware"
	"carshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	orderUC *usecase.OrderUsecase
	statsUC *usecase.StatsUsecase
}

func NewAdminOrderHandler(orderUC *usecase.OrderUsecase, statsUC *usecase.StatsUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orderUC: orderUC, statsUC: statsUC}
}

type OrderUpdateRequest struct {
	// nilなら明細は触らない
	Products *[]usecase.OrderLine `json:"products"`
	// ステータスは名前で受ける（"PURCHASED"など）
	Status *string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.PUT("/orders/:id", h.update)
	admin.GET("/statistics/sales", h.salesStatistics)
}

func (h *AdminOrderHandler) update(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req OrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.UpdateOrderInput{Products: req.Products}
	if req.Status != nil {
		st, ok := model.ParseOrderStatus(strings.TrimSpace(*req.Status))
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
		}
		in.Status = &st
	}

	out, err := h.orderUC.UpdateOrder(c.Request().Context(), actorID, orderID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// date_from/date_till はRFC3339か日付（YYYY-MM-DD）で受ける
func parseStatsTime(v string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (h *AdminOrderHandler) salesStatistics(c echo.Context) error {
	in := usecase.SalesStatsInput{
		Pitch:     usecase.AxlePitch(strings.ToUpper(c.QueryParam("axle_pitch"))),
		CountMode: c.QueryParam("count_mode") == "1" || c.QueryParam("count_mode") == "true",
	}

	if v := c.QueryParam("date_from"); v != "" {
		t, ok := parseStatsTime(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date_from"})
		}
		in.DateFrom = &t
	}
	if v := c.QueryParam("date_till"); v != "" {
		t, ok := parseStatsTime(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date_till"})
		}
		in.DateTill = &t
	}

	//0（WAITING_DISCOUNT_APPROVAL）も有効な値なので空文字とだけ区別する
	if v := c.QueryParam("order_status"); v != "" {
		st, ok := model.ParseOrderStatus(strings.ToUpper(v))
		if !ok {
			n, err := strconv.Atoi(v)
			if err != nil || !model.OrderStatus(n).Valid() {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order_status"})
			}
			st = model.OrderStatus(n)
		}
		in.Status = &st
	}

	if v := c.QueryParam("product_brand"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_brand"})
		}
		in.BrandID = &id
	}
	if v := c.QueryParam("product_model"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_model"})
		}
		in.ModelID = &id
	}

	out, err := h.statsUC.GetSalesStatistics(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	if in.CountMode {
		return c.JSON(http.StatusOK, out.Counts)
	}
	return c.JSON(http.StatusOK, out.Orders)
}
