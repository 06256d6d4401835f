package handler

import (
	"net/http"
	"strconv"

	"carshop/internal/config"
	"carshop/internal/middleware"
	"carshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /brands と /models の公開読み取り＋管理者書き込み
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

type BrandRequest struct {
	Name string `json:"name"`
}

type CarModelRequest struct {
	BrandID int64  `json:"brand_id"`
	Name    string `json:"name"`
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/brands", h.listBrands)
	e.GET("/models", h.listModels)

	admin := e.Group("")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/brands", h.createBrand)
	admin.PUT("/brands/:id", h.updateBrand)
	admin.DELETE("/brands/:id", h.deleteBrand)

	admin.POST("/models", h.createModel)
	admin.PUT("/models/:id", h.updateModel)
	admin.DELETE("/models/:id", h.deleteModel)
}

func (h *CatalogHandler) listBrands(c echo.Context) error {
	out, err := h.uc.ListBrands(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) createBrand(c echo.Context) error {
	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.CreateBrand(c.Request().Context(), usecase.BrandInput{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CatalogHandler) updateBrand(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.UpdateBrand(c.Request().Context(), id, usecase.BrandInput{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) deleteBrand(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.DeleteBrand(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *CatalogHandler) listModels(c echo.Context) error {
	var brandID *int64
	if v := c.QueryParam("brand_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid brand_id"})
		}
		brandID = &id
	}

	out, err := h.uc.ListCarModels(c.Request().Context(), brandID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) createModel(c echo.Context) error {
	var req CarModelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.CreateCarModel(c.Request().Context(), usecase.CarModelInput{
		BrandID: req.BrandID,
		Name:    req.Name,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CatalogHandler) updateModel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req CarModelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.UpdateCarModel(c.Request().Context(), id, usecase.CarModelInput{
		BrandID: req.BrandID,
		Name:    req.Name,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) deleteModel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.DeleteCarModel(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
