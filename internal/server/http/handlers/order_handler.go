package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/coffeeshop/internal/idempotency"
	"github.com/polkiloo/coffeeshop/internal/server/http/dto"
	"github.com/polkiloo/coffeeshop/internal/usecase"
	"github.com/polkiloo/coffeeshop/pkg/api"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req api.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.logger, bindingError(err))
		return
	}

	key := c.GetHeader(idempotency.HeaderKey)
	order, replayed, err := h.facade.CreateOrder(c.Request.Context(), key, dto.CreateOrder(req))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	if replayed {
		c.Header(headerReplayed, "true")
		respond(c, http.StatusOK, dto.Order(*order), messageOrderCreated)
		return
	}
	respond(c, http.StatusCreated, dto.Order(*order), messageOrderCreated)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := usecase.ParseOrderFilter(c.Query("status"), c.Query("customer"), c.Query("from"), c.Query("to"))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.Orders(orders), messageOrdersFetched)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.Order(*order), messageOrderFetched)
}

// ChangeStatus handles POST /api/orders/:id/change-status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req api.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.logger, bindingError(err))
		return
	}

	status, err := usecase.ParseStatus(req.Status)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	order, err := h.facade.ChangeOrderStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.Order(*order), messageStatusUpdated)
}

// Stats handles GET /api/orders/stats.
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.facade.OrderStats(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.Stats(stats), messageStatsFetched)
}
