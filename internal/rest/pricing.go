package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"priceWise/business/pricing"
	"priceWise/domain"
	"priceWise/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PricingHandler struct {
		validate       *validator.Validate
		pricingService PricingService
	}

	PricingService interface {
		RecommendPrice(ctx context.Context, pctx domain.Context) (domain.DecisionRecord, error)
		ExplainDecision(ctx context.Context, decisionID string) ([]byte, string, error)
		GridForItem(itemID string) (pricing.PriceGrid, error)
	}

	RecommendRequest struct {
		ItemID    string `json:"item_id" validate:"required"`
		Date      string `json:"date,omitempty"`
		Weekday   string `json:"weekday,omitempty"`
		Month     int    `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
		IsEvent   bool   `json:"is_event"`
		EventName string `json:"event_name,omitempty"`
	}

	RecommendResponse struct {
		Decision domain.DecisionRecord `json:"decision"`
		Summary  string                `json:"summary"`
	}

	ExplainResponse struct {
		Decision any    `json:"decision"`
		Summary  string `json:"summary"`
	}
)

func NewPricingHandler(svc PricingService) *PricingHandler {
	return &PricingHandler{
		validate:       validator.New(),
		pricingService: svc,
	}
}

// POST /api/v1/pricing/recommend
func (h *PricingHandler) Recommend(c echo.Context) error {
	started := time.Now()

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	pctx, err := buildContext(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	rec, err := h.pricingService.RecommendPrice(c.Request().Context(), pctx)
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	metrics.RecommendRequests.Inc()
	metrics.RecommendLatency.Observe(time.Since(started).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(RecommendResponse{
		Decision: rec,
		Summary:  rec.Rationale,
	}))
}

// GET /api/v1/pricing/decisions/:id/explain
func (h *PricingHandler) ExplainDecision(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "decision id is required"})
	}

	raw, _, err := h.pricingService.ExplainDecision(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSONBlob(http.StatusOK, raw)
}

// GET /api/v1/pricing/grids/:item_id
func (h *PricingHandler) GetGrid(c echo.Context) error {
	itemID := c.Param("item_id")
	if itemID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "item_id is required"})
	}

	grid, err := h.pricingService.GridForItem(itemID)
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(grid))
}

// buildContext turns the request into a pricing context. A date, when
// given, wins over explicit weekday/month fields.
func buildContext(req RecommendRequest) (domain.Context, error) {
	pctx := domain.Context{
		ItemID:    req.ItemID,
		Weekday:   req.Weekday,
		Month:     req.Month,
		IsEvent:   req.IsEvent,
		EventName: req.EventName,
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return domain.Context{}, err
		}
		pctx.Weekday = date.Weekday().String()
		pctx.Month = int(date.Month())
	}

	if pctx.Weekday == "" || pctx.Month == 0 {
		return domain.Context{}, errors.New("either date or weekday and month are required")
	}

	return pctx, nil
}
