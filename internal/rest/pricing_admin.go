package rest

import (
	"context"
	"net/http"

	"priceWise/business/pricing"
	"priceWise/domain"
	"priceWise/pkg/logger"
	"priceWise/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PricingAdminHandler struct {
		validate *validator.Validate
		service  PricingAdminService
	}

	PricingAdminService interface {
		Fit(ctx context.Context) (pricing.FitReport, error)
		GetItemConfig(ctx context.Context, itemID string) (domain.ItemPricingConfig, bool, error)
		UpsertItemConfig(ctx context.Context, cfg domain.ItemPricingConfig) error
	}

	ConfigQuery struct {
		ItemID string `query:"item_id" validate:"required"`
	}

	UpsertConfigRequest struct {
		ItemID            string  `json:"item_id" validate:"required"`
		Explore           float64 `json:"explore" validate:"omitempty,min=0"`
		Lambda            float64 `json:"lambda" validate:"omitempty,min=0"`
		MinObservations   int     `json:"min_observations" validate:"omitempty,min=1"`
		MinMargin         float64 `json:"min_margin" validate:"omitempty,min=0"`
		ConversionFloor   float64 `json:"conversion_floor" validate:"omitempty,min=0,max=1"`
		GridLowerMargin   float64 `json:"grid_lower_margin" validate:"omitempty,gt=0,lte=1"`
		GridUpperMargin   float64 `json:"grid_upper_margin" validate:"omitempty,gte=1"`
		GridMinCandidates int     `json:"grid_min_candidates" validate:"omitempty,min=2"`
	}
)

func NewPricingAdminHandler(svc PricingAdminService) *PricingAdminHandler {
	return &PricingAdminHandler{
		validate: validator.New(),
		service:  svc,
	}
}

// POST /api/v1/admin/pricing/fit
func (h *PricingAdminHandler) Fit(c echo.Context) error {
	report, err := h.service.Fit(c.Request().Context())
	if err != nil {
		metrics.FitRunsTotal.WithLabelValues("error").Inc()
		logger.Error("pricing_fit_failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.FitRunsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

// GET /api/v1/admin/pricing/config?item_id=...
func (h *PricingAdminHandler) GetConfig(c echo.Context) error {
	var q ConfigQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	cfg, ok, err := h.service.GetItemConfig(c.Request().Context(), q.ItemID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "no config for item " + q.ItemID})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cfg))
}

// PUT /api/v1/admin/pricing/config
func (h *PricingAdminHandler) UpsertConfig(c echo.Context) error {
	var req UpsertConfigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	cfg := domain.ItemPricingConfig{
		ItemID:            req.ItemID,
		Explore:           req.Explore,
		Lambda:            req.Lambda,
		MinObservations:   req.MinObservations,
		MinMargin:         req.MinMargin,
		ConversionFloor:   req.ConversionFloor,
		GridLowerMargin:   req.GridLowerMargin,
		GridUpperMargin:   req.GridUpperMargin,
		GridMinCandidates: req.GridMinCandidates,
	}

	if err := h.service.UpsertItemConfig(c.Request().Context(), cfg); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("config saved"))
}
