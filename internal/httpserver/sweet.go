package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/NagbhushanPai/Incubyte-Project/internal/events"
	"github.com/NagbhushanPai/Incubyte-Project/internal/logging"
	"github.com/NagbhushanPai/Incubyte-Project/internal/repo"
	"github.com/NagbhushanPai/Incubyte-Project/internal/service"
)

type SweetHTTP struct {
	Svc      *service.SweetService
	Producer *events.Producer
}

type createSweetRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int64   `json:"quantity"`
}

type quantityRequest struct {
	Quantity *int64 `json:"quantity"`
}

func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	if err := p.PublishEvent(c.Request().Context(), topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "topic", topic, "error", err)
	}
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return &v
	}
	return nil
}

func sweetID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}
	return id, nil
}

func (h *SweetHTTP) CreateSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.create")

	var req createSweetRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("sweet_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Price == nil || req.Quantity == nil {
		l.Warn("sweet_create_failed", "status", 400, "reason", "missing fields")
		return echo.NewHTTPError(http.StatusBadRequest, "missing fields")
	}

	sweet, err := h.Svc.Create(ctx, service.CreateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
		Quantity: *req.Quantity,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("sweet_create_failed", "status", 400, "reason", "missing fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "missing fields")
		}
		l.Error("sweet_create_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}

	publish(c, h.Producer, events.TopicSweetEvents, sweet.ID.String(), map[string]any{
		"type":    "sweet_created",
		"sweetID": sweet.ID,
		"name":    sweet.Name,
	})

	l.Info("sweet_create_success", "sweet_id", sweet.ID)
	return c.JSON(http.StatusCreated, sweet)
}

func (h *SweetHTTP) GetSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.get")

	id, err := sweetID(c)
	if err != nil {
		return err
	}

	sweet, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("sweet_get_failed", "status", 404, "sweet_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "sweet not found")
		}
		l.Error("sweet_get_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}

	return c.JSON(http.StatusOK, sweet)
}

func (h *SweetHTTP) ListSweets(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("sweet_list_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *SweetHTTP) SearchSweets(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.search")

	filter := repo.SearchFilter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		MinPrice: parseFloatPtr(c.QueryParam("minPrice")),
		MaxPrice: parseFloatPtr(c.QueryParam("maxPrice")),
	}

	items, err := h.Svc.Search(ctx, filter)
	if err != nil {
		l.Error("sweet_search_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *SweetHTTP) UpdateSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.update")

	id, err := sweetID(c)
	if err != nil {
		return err
	}

	var patch repo.SweetPatch
	if err := c.Bind(&patch); err != nil {
		l.Warn("sweet_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sweet, err := h.Svc.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("sweet_update_failed", "status", 404, "sweet_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "sweet not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("sweet_update_failed", "status", 400, "reason", "invalid fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid fields")
		default:
			l.Error("sweet_update_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}
	}

	publish(c, h.Producer, events.TopicSweetEvents, sweet.ID.String(), map[string]any{
		"type":    "sweet_updated",
		"sweetID": sweet.ID,
		"name":    sweet.Name,
	})

	l.Info("sweet_update_success", "sweet_id", sweet.ID)
	return c.JSON(http.StatusOK, sweet)
}

func (h *SweetHTTP) DeleteSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.delete")

	id, err := sweetID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("sweet_delete_failed", "status", 404, "sweet_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "sweet not found")
		}
		l.Error("sweet_delete_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}

	publish(c, h.Producer, events.TopicSweetEvents, id.String(), map[string]any{
		"type":    "sweet_deleted",
		"sweetID": id,
	})

	l.Info("sweet_delete_success", "sweet_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *SweetHTTP) PurchaseSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.purchase")

	id, err := sweetID(c)
	if err != nil {
		return err
	}

	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("sweet_purchase_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// An omitted quantity buys a single unit.
	qty := int64(1)
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	sweet, err := h.Svc.Purchase(ctx, id, qty)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("sweet_purchase_failed", "status", 400, "reason", "invalid quantity")
			return echo.NewHTTPError(http.StatusBadRequest, "invalid quantity")
		case errors.Is(err, service.ErrInsufficientStock):
			l.Warn("sweet_purchase_failed", "status", 400, "reason", "insufficient stock", "sweet_id", id)
			return echo.NewHTTPError(http.StatusBadRequest, "insufficient stock")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("sweet_purchase_failed", "status", 404, "sweet_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "sweet not found")
		default:
			l.Error("sweet_purchase_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}
	}

	publish(c, h.Producer, events.TopicSweetEvents, sweet.ID.String(), map[string]any{
		"type":     "sweet_purchased",
		"sweetID":  sweet.ID,
		"quantity": qty,
	})

	l.Info("sweet_purchase_success", "sweet_id", sweet.ID, "quantity", qty)
	return c.JSON(http.StatusOK, sweet)
}

func (h *SweetHTTP) RestockSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.restock")

	id, err := sweetID(c)
	if err != nil {
		return err
	}

	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("sweet_restock_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	qty := int64(0)
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	sweet, err := h.Svc.Restock(ctx, id, qty)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("sweet_restock_failed", "status", 400, "reason", "invalid quantity")
			return echo.NewHTTPError(http.StatusBadRequest, "invalid quantity")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("sweet_restock_failed", "status", 404, "sweet_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "sweet not found")
		default:
			l.Error("sweet_restock_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}
	}

	publish(c, h.Producer, events.TopicSweetEvents, sweet.ID.String(), map[string]any{
		"type":     "sweet_restocked",
		"sweetID":  sweet.ID,
		"quantity": qty,
	})

	l.Info("sweet_restock_success", "sweet_id", sweet.ID, "quantity", qty)
	return c.JSON(http.StatusOK, sweet)
}
