package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/coffeeshop/internal/server/http/dto"
)

// DrinkHandler serves the catalog.
type DrinkHandler struct {
	facade CatalogFacade
	logger *slog.Logger
}

// NewDrinkHandler constructs DrinkHandler.
func NewDrinkHandler(facade CatalogFacade, logger *slog.Logger) *DrinkHandler {
	return &DrinkHandler{facade: facade, logger: logger}
}

// List handles GET /api/drinks.
func (h *DrinkHandler) List(c *gin.Context) {
	drinks, err := h.facade.Drinks(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.Drinks(drinks), messageDrinksFetched)
}

// Get handles GET /api/drinks/:id.
func (h *DrinkHandler) Get(c *gin.Context) {
	drink, err := h.facade.Drink(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.Drink(*drink), messageDrinkFetched)
}
